package editor

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/pkg/placeholder"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

// AddSection appends an empty section to the template.
func (s *Service) AddSection(ctx context.Context, scope Scope) (catalog.Section, error) {
	if _, err := s.load(ctx, scope); err != nil {
		return catalog.Section{}, err
	}
	sec, err := s.store.CreateSection(ctx, scope.TemplateID)
	if err != nil {
		s.log.ErrorContext(ctx, "add section", append(scope.attrs(), logger.Error(err))...)
		return catalog.Section{}, err
	}
	return sec, nil
}

// DeleteSection removes a section with its variables and strips every
// marker those variables own from the raw HTML.
func (s *Service) DeleteSection(ctx context.Context, scope Scope, sectionID uuid.UUID) error {
	t, sec, err := s.section(ctx, scope, sectionID)
	if err != nil {
		return err
	}

	raw := t.RawHTML
	for _, v := range sec.Variables {
		raw = strip(raw, v)
	}

	if err := s.store.DeleteSection(ctx, scope.TemplateID, sectionID, raw); err != nil {
		s.log.ErrorContext(ctx, "delete section", append(scope.attrs(), logger.SectionID(sectionID), logger.Error(err))...)
		return err
	}
	s.log.DebugContext(ctx, "section deleted", append(scope.attrs(),
		logger.SectionID(sectionID),
		slog.Int("variables", len(sec.Variables)),
	)...)
	return nil
}

// strip removes v's markers from raw. Text tokens are replaced by the
// default value.
func strip(raw string, v catalog.Variable) string {
	id := v.ID.String()
	if v.Type == placeholder.KindImage {
		return placeholder.RemoveImage(raw, id)
	}
	return placeholder.RemoveText(raw, id, v.DefaultValue)
}
