package tenant

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mentionkit/pkg/logger"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithID stores the tenant identifier in ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IDFromContext returns the tenant identifier set by Middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// MustIDFromContext is IDFromContext for handlers mounted behind Middleware.
// Panics if no tenant is present.
func MustIDFromContext(ctx context.Context) string {
	id, ok := IDFromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return id
}

// LoggerExtractor adds "tenant_id" to log records made with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return logger.TenantID(id), true
		}
		return slog.Attr{}, false
	}
}
