package services

import (
	"errors"
	"net/http"
)

// Kind classifies a service failure into the transport-facing error taxonomy.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnauthorized
	KindConflict
	KindBadRequest
	KindValidation
)

// FieldError describes a single input field constraint violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a terminal, user-visible service failure. Transports map its Kind
// 1:1 to a protocol-appropriate status code.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string { return e.Message }

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewBadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func NewValidation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// AsError unwraps err into a service Error when possible.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// HTTPStatus maps a service failure to its HTTP status code. Unknown errors map
// to 500.
func HTTPStatus(err error) int {
	se, ok := AsError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
