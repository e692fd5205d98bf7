// Package editor exposes the template editor over a JSON HTTP API.
package editor

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/varlayer/handler"
	"github.com/dmitrymomot/varlayer/pkg/binder"
	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/svc/account"
	"github.com/dmitrymomot/varlayer/svc/catalog"
	"github.com/dmitrymomot/varlayer/svc/editor"
)

// Module mounts the editor API. Create it with NewModule.
type Module struct {
	svc          *editor.Service
	accounts     account.Provider
	accountCache account.Cache
	log          *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// Option configures a Module.
type Option func(*Module)

// WithLogger sets the logger used by the error handler and the account
// middleware.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// WithAccountCache caches account lookups of the account middleware.
func WithAccountCache(c account.Cache) Option {
	return func(m *Module) { m.accountCache = c }
}

// NewModule returns a Module serving svc. accounts resolves the account of
// every request.
func NewModule(svc *editor.Service, accounts account.Provider, opts ...Option) *Module {
	m := &Module{svc: svc, accounts: accounts, log: logger.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	m.errorHandler = handler.NewErrorHandler[handler.Context](m.log, mapError)
	return m
}

// Handle returns the API router. Every route requires an account named by
// the X-Account-ID header.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	accountError := func(w http.ResponseWriter, r *http.Request, err error) {
		m.errorHandler(handler.NewContext(w, r), err)
	}
	r.Use(
		account.Middleware(account.NewHeaderResolver(account.DefaultHeader), m.accounts,
			account.WithCache(m.accountCache),
			account.WithErrorHandler(accountError),
			account.WithLogger(m.log),
		),
		account.Require(accountError),
	)

	r.Get("/projects", wrap(m, m.listProjects))
	r.Post("/projects", wrap(m, m.createProject))
	r.Patch("/projects/{projectID}", wrap(m, m.updateProject))

	r.Route("/projects/{projectID}/audiences", func(r chi.Router) {
		r.Get("/", wrap(m, m.listAudiences))
		r.Post("/", wrap(m, m.createAudience))
		r.Patch("/{audienceID}", wrap(m, m.updateAudience))
		r.Delete("/{audienceID}", wrap(m, m.deleteAudience))
	})

	r.Route("/projects/{projectID}/templates", func(r chi.Router) {
		r.Get("/", wrap(m, m.listTemplates))
		r.Post("/", wrap(m, m.createTemplate))

		r.Route("/{templateID}", func(r chi.Router) {
			r.Get("/", wrap(m, m.getTemplate))
			r.Patch("/", wrap(m, m.updateTemplate))
			r.Delete("/", wrap(m, m.deleteTemplate))
			r.Get("/preview", wrap(m, m.preview))
			r.Get("/audit", wrap(m, m.audit))

			r.Post("/sections", wrap(m, m.addSection))
			r.Delete("/sections/{sectionID}", wrap(m, m.deleteSection))

			r.Post("/sections/{sectionID}/variables", wrap(m, m.createVariable))
			r.Patch("/sections/{sectionID}/variables/{variableID}", wrap(m, m.renameVariable))
			r.Delete("/sections/{sectionID}/variables/{variableID}", wrap(m, m.deleteVariable))
		})
	})

	return r
}

// wrap binds the JSON body first and path parameters last, so the URL
// always wins.
func wrap[R any](m *Module, h handler.HandlerFunc[handler.Context, R]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binder.JSON(), binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, R](m.errorHandler),
	)
}

func mapError(err error) (handler.HTTPError, bool) {
	switch {
	case errors.Is(err, editor.ErrSelectionNotFound):
		return handler.NewHTTPError(http.StatusUnprocessableEntity, "selection_not_found",
			"the selected text could not be located in the template"), true
	case errors.Is(err, editor.ErrImageNotFound):
		return handler.NewHTTPError(http.StatusUnprocessableEntity, "image_not_found",
			"no image with this source exists in the template"), true
	case errors.Is(err, editor.ErrSectionNotFound):
		return handler.NewHTTPError(http.StatusNotFound, "section_not_found", "section not found"), true
	case errors.Is(err, editor.ErrVariableNotFound):
		return handler.NewHTTPError(http.StatusNotFound, "variable_not_found", "variable not found"), true
	case errors.Is(err, account.ErrInvalidIdentifier):
		return handler.NewHTTPError(http.StatusBadRequest, "invalid_account", "invalid account identifier"), true
	case errors.Is(err, account.ErrNoAccount):
		return handler.NewHTTPError(http.StatusUnauthorized, "account_required", "an account is required"), true
	case errors.Is(err, account.ErrAccountNotFound):
		return handler.NewHTTPError(http.StatusNotFound, "account_not_found", "account not found"), true
	case errors.Is(err, catalog.ErrDuplicateName):
		return handler.NewHTTPError(http.StatusConflict, "duplicate_name",
			"a variable with this name already exists in the section"), true
	case errors.Is(err, catalog.ErrNotFound):
		return handler.NewHTTPError(http.StatusNotFound, "not_found", "resource not found"), true
	}
	return handler.HTTPError{}, false
}
