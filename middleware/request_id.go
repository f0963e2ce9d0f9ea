package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a uuid, reusing the inbound header when the
// client already supplied one. The id is echoed in the response and picked up
// by the access logger.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Writer.Header().Set(requestIDHeader, id)
		ctx.Next()
	}
}
