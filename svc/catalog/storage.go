package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Storage is the persistence contract of the editor.
type Storage interface {
	// GetAccount returns ErrNotFound for an unknown id.
	GetAccount(ctx context.Context, id uuid.UUID) (Account, error)
	CreateAccount(ctx context.Context, name string) (Account, error)

	// ListProjects returns the account's projects, oldest first.
	ListProjects(ctx context.Context, accountID uuid.UUID) ([]Project, error)
	CreateProject(ctx context.Context, accountID uuid.UUID, name string) (Project, error)
	UpdateProject(ctx context.Context, accountID, projectID uuid.UUID, name string) (Project, error)

	// ListAudiences returns the project's audiences, most recently updated
	// first.
	ListAudiences(ctx context.Context, accountID, projectID uuid.UUID) ([]Audience, error)
	CreateAudience(ctx context.Context, accountID, projectID uuid.UUID, name, details string) (Audience, error)
	UpdateAudience(ctx context.Context, accountID, projectID, audienceID uuid.UUID, name, details string) (Audience, error)
	DeleteAudience(ctx context.Context, accountID, projectID, audienceID uuid.UUID) error

	// ListTemplates returns the project's templates without sections, most
	// recently updated first.
	ListTemplates(ctx context.Context, accountID, projectID uuid.UUID) ([]Template, error)
	CreateTemplate(ctx context.Context, accountID, projectID uuid.UUID, name, rawHTML string) (Template, error)
	// GetTemplate returns the template with its sections and variables,
	// both ordered by position.
	GetTemplate(ctx context.Context, accountID, projectID, templateID uuid.UUID) (Template, error)
	UpdateTemplate(ctx context.Context, accountID, projectID, templateID uuid.UUID, name, rawHTML string) (Template, error)
	DeleteTemplate(ctx context.Context, accountID, projectID, templateID uuid.UUID) error

	// CreateSection appends a section at the next position.
	CreateSection(ctx context.Context, templateID uuid.UUID) (Section, error)
	// DeleteSection removes the section and its variables, renumbers the
	// remaining sections 1..n and stores rawHTML, atomically.
	DeleteSection(ctx context.Context, templateID, sectionID uuid.UUID, rawHTML string) error

	// CreateVariable inserts v at the next position of its section and
	// stores rawHTML, atomically. Position and timestamps are set on v.
	CreateVariable(ctx context.Context, templateID uuid.UUID, v *Variable, rawHTML string) error
	// RenameVariable returns ErrDuplicateName when the section already has
	// a variable with that name.
	RenameVariable(ctx context.Context, templateID, sectionID, variableID uuid.UUID, name string) (Variable, error)
	// DeleteVariable removes the variable and stores rawHTML, atomically.
	DeleteVariable(ctx context.Context, templateID, sectionID, variableID uuid.UUID, rawHTML string) error
}
