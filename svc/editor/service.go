package editor

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

// Scope addresses one template of one account.
type Scope struct {
	AccountID  uuid.UUID
	ProjectID  uuid.UUID
	TemplateID uuid.UUID
}

func (s Scope) attrs() []any {
	return []any{logger.AccountID(s.AccountID), logger.ProjectID(s.ProjectID), logger.TemplateID(s.TemplateID)}
}

// Service is safe for concurrent use.
type Service struct {
	store catalog.Storage
	cache PreviewCache
	log   *slog.Logger
	newID func() uuid.UUID
}

// Option configures a Service.
type Option func(*Service)

// WithPreviewCache memoizes rendered previews.
func WithPreviewCache(c PreviewCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets the logger. The service adds its own component attribute.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDGenerator replaces uuid.New for variable IDs.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService returns a Service backed by store. Logging is discarded and
// previews are not cached unless configured by opts.
func NewService(store catalog.Storage, opts ...Option) *Service {
	s := &Service{
		store: store,
		cache: noopPreviewCache{},
		log:   logger.Discard(),
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("editor"))
	return s
}

func (s *Service) load(ctx context.Context, scope Scope) (catalog.Template, error) {
	return s.store.GetTemplate(ctx, scope.AccountID, scope.ProjectID, scope.TemplateID)
}

func (s *Service) section(ctx context.Context, scope Scope, sectionID uuid.UUID) (catalog.Template, catalog.Section, error) {
	t, err := s.load(ctx, scope)
	if err != nil {
		return catalog.Template{}, catalog.Section{}, err
	}
	sec, ok := t.Section(sectionID)
	if !ok {
		return catalog.Template{}, catalog.Section{}, ErrSectionNotFound
	}
	return t, sec, nil
}
