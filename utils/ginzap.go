package utils

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinZap returns a gin middleware that logs each request through the global zap logger.
func GinZap() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		query := ctx.Request.URL.RawQuery

		ctx.Next()

		if Logger == nil {
			return
		}
		Logger.Info(path,
			zap.Int("status", ctx.Writer.Status()),
			zap.String("method", ctx.Request.Method),
			zap.String("query", query),
			zap.String("ip", ctx.ClientIP()),
			zap.String("request_id", ctx.Writer.Header().Get("X-Request-ID")),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// RecoveryWithZap returns a gin middleware that recovers from panics, logs the
// stack, and responds with a standard 500 envelope.
func RecoveryWithZap() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				if Logger != nil {
					Logger.Error("panic recovered",
						zap.Any("error", err),
						zap.String("path", ctx.Request.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)
				}
				Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
				ctx.Abort()
			}
		}()
		ctx.Next()
	}
}
