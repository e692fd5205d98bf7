package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

// Provider loads accounts. catalog.Storage satisfies it.
type Provider interface {
	GetAccount(ctx context.Context, id uuid.UUID) (catalog.Account, error)
}

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type options struct {
	cache        Cache
	errorHandler ErrorHandler
	log          *slog.Logger
	skipPaths    []string
}

// Option configures Middleware.
type Option func(*options)

// WithCache caches resolved accounts. A nil cache disables caching.
func WithCache(c Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithErrorHandler replaces the plain text error response.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSkipPaths bypasses resolution for exact path matches.
func WithSkipPaths(paths ...string) Option {
	return func(o *options) { o.skipPaths = append(o.skipPaths, paths...) }
}

// Middleware resolves the account and stores it in the request context.
// Requests that name no account pass through without one.
func Middleware(resolve Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	o := &options{
		cache:        noopCache{},
		errorHandler: DefaultErrorHandler,
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(o.skipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			id, err := resolve(r)
			if err != nil {
				o.errorHandler(w, r, err)
				return
			}
			if id == uuid.Nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			acc, ok := o.cache.Get(ctx, id)
			if !ok {
				acc, err = provider.GetAccount(ctx, id)
				if err != nil {
					if errors.Is(err, catalog.ErrNotFound) {
						err = errors.Join(ErrAccountNotFound, err)
					} else {
						o.log.ErrorContext(ctx, "load account", logger.AccountID(id), logger.Error(err))
					}
					o.errorHandler(w, r, err)
					return
				}
				if err := o.cache.Set(ctx, acc); err != nil {
					o.log.WarnContext(ctx, "cache account", logger.AccountID(id), logger.Error(err))
				}
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(ctx, acc)))
		})
	}
}

// Require rejects requests without an account in context with ErrNoAccount.
// A nil handler selects DefaultErrorHandler.
func Require(h ErrorHandler) func(http.Handler) http.Handler {
	if h == nil {
		h = DefaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				h(w, r, ErrNoAccount)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DefaultErrorHandler answers with a plain-text status.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := Status(err)
	http.Error(w, http.StatusText(status), status)
}

// Status maps the package errors to HTTP status codes.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoAccount):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
