package editor

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/pkg/placeholder"
	"github.com/dmitrymomot/varlayer/pkg/sanitizer"
	"github.com/dmitrymomot/varlayer/pkg/validator"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

const (
	maxVariableNameLen = 64
	maxSelectionLen    = 10000
	maxImageSrcSize    = 4096
)

// CreateTextVariableParams describes a text selection gesture.
type CreateTextVariableParams struct {
	SectionID    uuid.UUID
	Name         string
	SelectedText string
	// OccurrenceIndex picks the match explicitly when set.
	OccurrenceIndex *int
	// SelectionOffset is where the selection starts, in runes, within the
	// preview's visible text.
	SelectionOffset *int
}

// Validate checks sizes and that explicit indexes are not negative.
func (p CreateTextVariableParams) Validate() error {
	return validator.Apply(
		validator.RequiredString("selected_text", p.SelectedText),
		validator.MaxLenString("selected_text", p.SelectedText, maxSelectionLen),
		validator.MaxLenString("name", p.Name, maxVariableNameLen),
		validator.When(p.OccurrenceIndex != nil, validator.MinInt("occurrence_index", deref(p.OccurrenceIndex), 0)),
		validator.When(p.SelectionOffset != nil, validator.MinInt("selection_offset", deref(p.SelectionOffset), 0)),
	)
}

// CreateImageVariableParams describes a click on an image.
type CreateImageVariableParams struct {
	SectionID uuid.UUID
	Name      string
	Src       string
}

func (p CreateImageVariableParams) Validate() error {
	return validator.Apply(
		validator.RequiredString("src", p.Src),
		validator.MaxBytes("src", p.Src, maxImageSrcSize),
		validator.MaxLenString("name", p.Name, maxVariableNameLen),
	)
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// CreateTextVariable turns the selected text into a variable whose default
// value is the selection.
func (s *Service) CreateTextVariable(ctx context.Context, scope Scope, p CreateTextVariableParams) (catalog.Variable, error) {
	if err := p.Validate(); err != nil {
		return catalog.Variable{}, err
	}
	t, sec, err := s.section(ctx, scope, p.SectionID)
	if err != nil {
		return catalog.Variable{}, err
	}

	occurrence := deref(p.OccurrenceIndex)
	if p.OccurrenceIndex == nil && p.SelectionOffset != nil {
		preview := placeholder.Preview(t.RawHTML, t.Placeholders())
		occurrence = placeholder.PreviewOccurrence(preview, p.SelectedText, *p.SelectionOffset)
	}

	id := s.newID()
	res, ok := placeholder.InsertText(t.RawHTML, p.SelectedText, id.String(), occurrence)
	if !ok {
		s.log.DebugContext(ctx, "selection not found", append(scope.attrs(), logger.Occurrence(occurrence))...)
		return catalog.Variable{}, ErrSelectionNotFound
	}

	v := &catalog.Variable{
		ID:           id,
		SectionID:    sec.ID,
		Name:         variableName(p.Name, res.DefaultValue, placeholder.KindText, sec),
		Type:         placeholder.KindText,
		DefaultValue: res.DefaultValue,
	}
	return s.createVariable(ctx, scope, v, res.HTML)
}

// CreateImageVariable marks the first <img> whose src equals p.Src.
func (s *Service) CreateImageVariable(ctx context.Context, scope Scope, p CreateImageVariableParams) (catalog.Variable, error) {
	if err := p.Validate(); err != nil {
		return catalog.Variable{}, err
	}
	t, sec, err := s.section(ctx, scope, p.SectionID)
	if err != nil {
		return catalog.Variable{}, err
	}

	id := s.newID()
	res, ok := placeholder.InsertImage(t.RawHTML, p.Src, id.String())
	if !ok {
		s.log.DebugContext(ctx, "image not found", scope.attrs()...)
		return catalog.Variable{}, ErrImageNotFound
	}

	v := &catalog.Variable{
		ID:           id,
		SectionID:    sec.ID,
		Name:         variableName(p.Name, res.DefaultValue, placeholder.KindImage, sec),
		Type:         placeholder.KindImage,
		DefaultValue: res.DefaultValue,
	}
	return s.createVariable(ctx, scope, v, res.HTML)
}

func (s *Service) createVariable(ctx context.Context, scope Scope, v *catalog.Variable, raw string) (catalog.Variable, error) {
	attrs := append(scope.attrs(), logger.SectionID(v.SectionID), logger.VariableID(v.ID), logger.VariableKind(string(v.Type)))
	if err := s.store.CreateVariable(ctx, scope.TemplateID, v, raw); err != nil {
		s.log.ErrorContext(ctx, "create variable", append(attrs, logger.Error(err))...)
		return catalog.Variable{}, err
	}
	s.log.DebugContext(ctx, "variable created", attrs...)
	return *v, nil
}

// RenameVariable changes a variable's display name.
func (s *Service) RenameVariable(ctx context.Context, scope Scope, sectionID, variableID uuid.UUID, name string) (catalog.Variable, error) {
	name = cleanName(name)
	err := validator.Apply(
		validator.RequiredString("name", name),
		validator.MaxLenString("name", name, maxVariableNameLen),
	)
	if err != nil {
		return catalog.Variable{}, err
	}
	if _, _, err := s.variable(ctx, scope, sectionID, variableID); err != nil {
		return catalog.Variable{}, err
	}
	return s.store.RenameVariable(ctx, scope.TemplateID, sectionID, variableID, name)
}

// DeleteVariable removes the variable and its marker. A text token is
// replaced by the variable's default value.
func (s *Service) DeleteVariable(ctx context.Context, scope Scope, sectionID, variableID uuid.UUID) error {
	t, v, err := s.variable(ctx, scope, sectionID, variableID)
	if err != nil {
		return err
	}

	attrs := append(scope.attrs(), logger.SectionID(sectionID), logger.VariableID(variableID))
	if err := s.store.DeleteVariable(ctx, scope.TemplateID, sectionID, variableID, strip(t.RawHTML, v)); err != nil {
		s.log.ErrorContext(ctx, "delete variable", append(attrs, logger.Error(err))...)
		return err
	}
	s.log.DebugContext(ctx, "variable deleted", attrs...)
	return nil
}

func (s *Service) variable(ctx context.Context, scope Scope, sectionID, variableID uuid.UUID) (catalog.Template, catalog.Variable, error) {
	t, sec, err := s.section(ctx, scope, sectionID)
	if err != nil {
		return catalog.Template{}, catalog.Variable{}, err
	}
	v, ok := sec.Variable(variableID)
	if !ok {
		return catalog.Template{}, catalog.Variable{}, ErrVariableNotFound
	}
	return t, v, nil
}

// cleanName normalizes a user supplied name to a single trimmed line.
var cleanName = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.SingleLine)

// variableName returns name when given. Otherwise it derives one from the
// default value, unique within the section.
func variableName(name, defaultValue string, kind placeholder.Kind, sec catalog.Section) string {
	if name = cleanName(name); name != "" {
		return name
	}

	base := defaultValue
	if kind == placeholder.KindImage {
		base = sanitizer.FileName(base)
	}
	base = sanitizer.Apply(base, cleanName, sanitizer.Truncate(maxVariableNameLen), sanitizer.Trim)
	if base == "" {
		base = string(kind)
	}

	taken := make(map[string]bool, len(sec.Variables))
	for _, v := range sec.Variables {
		taken[v.Name] = true
	}
	candidate := base
	for n := 2; taken[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = sanitizer.MaxLength(base, maxVariableNameLen-utf8.RuneCountInString(suffix)) + suffix
	}
	return candidate
}
