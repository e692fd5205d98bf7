package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/placeholder"
)

// Account is a tenant. Every project belongs to exactly one account.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Project groups the templates and audiences of an account.
type Project struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Audience is a named recipient group of a project. Details is free text.
type Audience struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Template is an email template. OriginalRawHTML is the markup as first
// uploaded, before any variable was placed.
type Template struct {
	ID              uuid.UUID `json:"id"`
	ProjectID       uuid.UUID `json:"project_id"`
	Name            string    `json:"name"`
	RawHTML         string    `json:"raw_html"`
	OriginalRawHTML string    `json:"original_raw_html,omitempty"`
	Sections        []Section `json:"sections,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Section groups variables. Positions start at 1.
type Section struct {
	ID         uuid.UUID  `json:"id"`
	TemplateID uuid.UUID  `json:"template_id"`
	Position   int        `json:"position"`
	Variables  []Variable `json:"variables"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Variable is a placeholder placed in the template's raw HTML. Its ID is
// the one written into the marker.
type Variable struct {
	ID           uuid.UUID        `json:"id"`
	SectionID    uuid.UUID        `json:"section_id"`
	Name         string           `json:"name"`
	Type         placeholder.Kind `json:"variable_type"`
	DefaultValue string           `json:"default_value"`
	Position     int              `json:"position"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Placeholder converts v for the markup engine.
func (v Variable) Placeholder() placeholder.Variable {
	return placeholder.Variable{ID: v.ID.String(), Kind: v.Type, DefaultValue: v.DefaultValue}
}

// Section returns the section with the given ID.
func (t Template) Section(id uuid.UUID) (Section, bool) {
	for _, s := range t.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Variables returns every variable of every section, in section order.
func (t Template) Variables() []Variable {
	var vars []Variable
	for _, s := range t.Sections {
		vars = append(vars, s.Variables...)
	}
	return vars
}

// Placeholders returns Variables converted for the markup engine.
func (t Template) Placeholders() []placeholder.Variable {
	vars := t.Variables()
	out := make([]placeholder.Variable, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Placeholder())
	}
	return out
}

// Variable returns the variable with the given ID in section s.
func (s Section) Variable(id uuid.UUID) (Variable, bool) {
	for _, v := range s.Variables {
		if v.ID == id {
			return v, true
		}
	}
	return Variable{}, false
}
