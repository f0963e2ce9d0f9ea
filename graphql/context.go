package graphql

import (
	"context"

	"github.com/hyeonss0417/bulletin-board/models"
	"github.com/hyeonss0417/bulletin-board/services"
)

type contextKey int

const callerKey contextKey = iota

// WithCaller returns a context carrying the resolved caller identity.
func WithCaller(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, callerKey, user)
}

// CallerFromContext returns the caller placed by the transport, if any.
func CallerFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(callerKey).(*models.User)
	return user, ok
}

func requireCaller(ctx context.Context) (*models.User, error) {
	user, ok := CallerFromContext(ctx)
	if !ok {
		return nil, services.NewUnauthorized("로그인이 필요합니다")
	}
	return user, nil
}
