package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

type contextKey struct{}

// WithAccount returns a copy of ctx carrying a.
func WithAccount(ctx context.Context, a catalog.Account) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext returns the account stored by WithAccount.
func FromContext(ctx context.Context) (catalog.Account, bool) {
	a, ok := ctx.Value(contextKey{}).(catalog.Account)
	return a, ok
}

// IDFromContext is FromContext reduced to the account ID.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	a, ok := FromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return a.ID, true
}

// LoggerExtractor adds account_id to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return logger.AccountID(id), true
		}
		return slog.Attr{}, false
	}
}
