package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/validator"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

const (
	maxNameLen     = 255
	maxRawHTMLSize = 2 << 20
)

// ProjectParams carries the editable fields of a project.
type ProjectParams struct {
	Name string `json:"name"`
}

// Validate requires a name of at most 255 runes.
func (p ProjectParams) Validate() error {
	return validator.Apply(
		validator.RequiredString("name", p.Name),
		validator.MaxLenString("name", p.Name, maxNameLen),
	)
}

// TemplateParams carries the editable fields of a template.
type TemplateParams struct {
	Name    string `json:"name"`
	RawHTML string `json:"raw_html"`
}

// Validate requires a name and caps the raw HTML at 2 MiB.
func (p TemplateParams) Validate() error {
	return validator.Apply(
		validator.RequiredString("name", p.Name),
		validator.MaxLenString("name", p.Name, maxNameLen),
		validator.MaxBytes("raw_html", p.RawHTML, maxRawHTMLSize),
	)
}

// ListProjects returns the account's projects.
func (s *Service) ListProjects(ctx context.Context, accountID uuid.UUID) ([]catalog.Project, error) {
	return s.store.ListProjects(ctx, accountID)
}

// CreateProject adds a project to the account.
func (s *Service) CreateProject(ctx context.Context, accountID uuid.UUID, p ProjectParams) (catalog.Project, error) {
	p.Name = cleanName(p.Name)
	if err := p.Validate(); err != nil {
		return catalog.Project{}, err
	}
	return s.store.CreateProject(ctx, accountID, p.Name)
}

// UpdateProject renames a project of the account.
func (s *Service) UpdateProject(ctx context.Context, accountID, projectID uuid.UUID, p ProjectParams) (catalog.Project, error) {
	p.Name = cleanName(p.Name)
	if err := p.Validate(); err != nil {
		return catalog.Project{}, err
	}
	return s.store.UpdateProject(ctx, accountID, projectID, p.Name)
}

// ListTemplates returns the project's templates without sections, most
// recently updated first.
func (s *Service) ListTemplates(ctx context.Context, accountID, projectID uuid.UUID) ([]catalog.Template, error) {
	return s.store.ListTemplates(ctx, accountID, projectID)
}

// CreateTemplate stores a new template. Its raw HTML is also kept as the
// original markup.
func (s *Service) CreateTemplate(ctx context.Context, accountID, projectID uuid.UUID, p TemplateParams) (catalog.Template, error) {
	p.Name = cleanName(p.Name)
	if err := p.Validate(); err != nil {
		return catalog.Template{}, err
	}
	return s.store.CreateTemplate(ctx, accountID, projectID, p.Name, p.RawHTML)
}

// Template returns the template with its sections and variables in
// position order.
func (s *Service) Template(ctx context.Context, scope Scope) (catalog.Template, error) {
	return s.load(ctx, scope)
}

// UpdateTemplate replaces the name and raw HTML. Markers are not checked
// against the variables; Audit reports any drift.
func (s *Service) UpdateTemplate(ctx context.Context, scope Scope, p TemplateParams) (catalog.Template, error) {
	p.Name = cleanName(p.Name)
	if err := p.Validate(); err != nil {
		return catalog.Template{}, err
	}
	return s.store.UpdateTemplate(ctx, scope.AccountID, scope.ProjectID, scope.TemplateID, p.Name, p.RawHTML)
}

// DeleteTemplate removes the template with its sections and variables.
func (s *Service) DeleteTemplate(ctx context.Context, scope Scope) error {
	return s.store.DeleteTemplate(ctx, scope.AccountID, scope.ProjectID, scope.TemplateID)
}
