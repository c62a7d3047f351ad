// Package context carries per-request values between the HTTP layer and the services.
package context

import (
	"context"
	"log/slog"

	"ridehail/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID holds the request ID in both echo.Context and context.Context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger holds the request-scoped logger in context.Context.
	KeyLogger ContextKey = "logger"

	// KeyAccount holds the authenticated account in echo.Context.
	KeyAccount ContextKey = "account"

	// KeyToken holds the session token presented with the request.
	KeyToken ContextKey = "token"
)

// WithRequest returns a context carrying the request ID and a logger tagged with it.
func WithRequest(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, KeyRequestID, requestID)
	if logger != nil {
		ctx = context.WithValue(ctx, KeyLogger, logger.With(slog.String(string(KeyRequestID), requestID)))
	}

	return ctx
}

// RequestIDFromContext returns the request ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

// LoggerFromContext returns the request-scoped logger, or fallback outside a request.
func LoggerFromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// SetAccount stores the authenticated account in echo.Context.
func SetAccount(c echo.Context, account *entity.Account) {
	c.Set(string(KeyAccount), account)
}

// GetAccount returns the authenticated account, or nil if the request is anonymous.
func GetAccount(c echo.Context) *entity.Account {
	account, _ := c.Get(string(KeyAccount)).(*entity.Account)

	return account
}

// SetToken stores the presented session token in echo.Context.
func SetToken(c echo.Context, token string) {
	c.Set(string(KeyToken), token)
}

// GetToken returns the presented session token, or "" if none was sent.
func GetToken(c echo.Context) string {
	token, _ := c.Get(string(KeyToken)).(string)

	return token
}
