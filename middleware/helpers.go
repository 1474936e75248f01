package middleware

import (
	"context"
	"log/slog"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// GetRequestIDFromContext returns the id assigned by chi's RequestID middleware.
func GetRequestIDFromContext(ctx context.Context) string {
	return chiMiddleware.GetReqID(ctx)
}

// LoggerFromContext returns the request scoped logger set by RequestLogger,
// or fallback when there is none.
func LoggerFromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return l
	}
	return fallback
}
