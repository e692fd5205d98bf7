package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-process Storage for tests and local runs. It is
// safe for concurrent use and hands out copies, never its own records.
type MemoryStorage struct {
	mu        sync.RWMutex
	now       func() time.Time
	accounts  map[uuid.UUID]Account
	projects  map[uuid.UUID]Project
	audiences map[uuid.UUID]Audience
	templates map[uuid.UUID]Template
	sections  map[uuid.UUID]Section
	variables map[uuid.UUID]Variable
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		now:       func() time.Time { return time.Now().UTC() },
		accounts:  make(map[uuid.UUID]Account),
		projects:  make(map[uuid.UUID]Project),
		audiences: make(map[uuid.UUID]Audience),
		templates: make(map[uuid.UUID]Template),
		sections:  make(map[uuid.UUID]Section),
		variables: make(map[uuid.UUID]Variable),
	}
}

func (m *MemoryStorage) GetAccount(_ context.Context, id uuid.UUID) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	return a, nil
}

func (m *MemoryStorage) CreateAccount(_ context.Context, name string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := Account{ID: uuid.New(), Name: name, CreatedAt: m.now()}
	m.accounts[a.ID] = a
	return a, nil
}

func (m *MemoryStorage) ListProjects(_ context.Context, accountID uuid.UUID) ([]Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	projects := []Project{}
	for _, p := range m.projects {
		if p.AccountID == accountID {
			projects = append(projects, p)
		}
	}
	slices.SortFunc(projects, func(a, b Project) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return projects, nil
}

func (m *MemoryStorage) CreateProject(_ context.Context, accountID uuid.UUID, name string) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[accountID]; !ok {
		return Project{}, fmt.Errorf("%w: account %s", ErrNotFound, accountID)
	}
	now := m.now()
	p := Project{ID: uuid.New(), AccountID: accountID, Name: name, CreatedAt: now, UpdatedAt: now}
	m.projects[p.ID] = p
	return p, nil
}

func (m *MemoryStorage) UpdateProject(_ context.Context, accountID, projectID uuid.UUID, name string) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkProject(accountID, projectID); err != nil {
		return Project{}, err
	}
	p := m.projects[projectID]
	p.Name = name
	p.UpdatedAt = m.now()
	m.projects[projectID] = p
	return p, nil
}

func (m *MemoryStorage) ListAudiences(_ context.Context, accountID, projectID uuid.UUID) ([]Audience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkProject(accountID, projectID); err != nil {
		return nil, err
	}
	audiences := []Audience{}
	for _, a := range m.audiences {
		if a.ProjectID == projectID {
			audiences = append(audiences, a)
		}
	}
	slices.SortFunc(audiences, func(a, b Audience) int {
		return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return audiences, nil
}

func (m *MemoryStorage) CreateAudience(_ context.Context, accountID, projectID uuid.UUID, name, details string) (Audience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkProject(accountID, projectID); err != nil {
		return Audience{}, err
	}
	now := m.now()
	a := Audience{ID: uuid.New(), ProjectID: projectID, Name: name, Details: details, CreatedAt: now, UpdatedAt: now}
	m.audiences[a.ID] = a
	return a, nil
}

func (m *MemoryStorage) UpdateAudience(_ context.Context, accountID, projectID, audienceID uuid.UUID, name, details string) (Audience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.scopedAudience(accountID, projectID, audienceID)
	if err != nil {
		return Audience{}, err
	}
	a.Name = name
	a.Details = details
	a.UpdatedAt = m.now()
	m.audiences[audienceID] = a
	return a, nil
}

func (m *MemoryStorage) DeleteAudience(_ context.Context, accountID, projectID, audienceID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.scopedAudience(accountID, projectID, audienceID); err != nil {
		return err
	}
	delete(m.audiences, audienceID)
	return nil
}

func (m *MemoryStorage) scopedAudience(accountID, projectID, audienceID uuid.UUID) (Audience, error) {
	if err := m.checkProject(accountID, projectID); err != nil {
		return Audience{}, err
	}
	a, ok := m.audiences[audienceID]
	if !ok || a.ProjectID != projectID {
		return Audience{}, fmt.Errorf("%w: audience %s", ErrNotFound, audienceID)
	}
	return a, nil
}

func (m *MemoryStorage) checkProject(accountID, projectID uuid.UUID) error {
	p, ok := m.projects[projectID]
	if !ok || p.AccountID != accountID {
		return fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}
	return nil
}

// scopedTemplate returns the stored template if it belongs to the project
// and account.
func (m *MemoryStorage) scopedTemplate(accountID, projectID, templateID uuid.UUID) (Template, error) {
	if err := m.checkProject(accountID, projectID); err != nil {
		return Template{}, err
	}
	t, ok := m.templates[templateID]
	if !ok || t.ProjectID != projectID {
		return Template{}, fmt.Errorf("%w: template %s", ErrNotFound, templateID)
	}
	return t, nil
}

func (m *MemoryStorage) ListTemplates(_ context.Context, accountID, projectID uuid.UUID) ([]Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkProject(accountID, projectID); err != nil {
		return nil, err
	}
	templates := []Template{}
	for _, t := range m.templates {
		if t.ProjectID == projectID {
			templates = append(templates, Template{
				ID: t.ID, ProjectID: t.ProjectID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
			})
		}
	}
	slices.SortFunc(templates, func(a, b Template) int {
		return cmp.Or(b.UpdatedAt.Compare(a.UpdatedAt), cmp.Compare(a.ID.String(), b.ID.String()))
	})
	return templates, nil
}

func (m *MemoryStorage) CreateTemplate(_ context.Context, accountID, projectID uuid.UUID, name, rawHTML string) (Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkProject(accountID, projectID); err != nil {
		return Template{}, err
	}
	now := m.now()
	t := Template{
		ID:              uuid.New(),
		ProjectID:       projectID,
		Name:            name,
		RawHTML:         rawHTML,
		OriginalRawHTML: rawHTML,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.templates[t.ID] = t
	return t, nil
}

func (m *MemoryStorage) GetTemplate(_ context.Context, accountID, projectID, templateID uuid.UUID) (Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, err := m.scopedTemplate(accountID, projectID, templateID)
	if err != nil {
		return Template{}, err
	}
	t.Sections = m.sectionsOf(templateID)
	return t, nil
}

func (m *MemoryStorage) sectionsOf(templateID uuid.UUID) []Section {
	var sections []Section
	for _, s := range m.sections {
		if s.TemplateID != templateID {
			continue
		}
		s.Variables = m.variablesOf(s.ID)
		sections = append(sections, s)
	}
	slices.SortFunc(sections, func(a, b Section) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), a.CreatedAt.Compare(b.CreatedAt))
	})
	return sections
}

func (m *MemoryStorage) variablesOf(sectionID uuid.UUID) []Variable {
	vars := []Variable{}
	for _, v := range m.variables {
		if v.SectionID == sectionID {
			vars = append(vars, v)
		}
	}
	slices.SortFunc(vars, func(a, b Variable) int { return cmp.Compare(a.Position, b.Position) })
	return vars
}

// UpdateTemplate returns the template reloaded with its sections.
func (m *MemoryStorage) UpdateTemplate(ctx context.Context, accountID, projectID, templateID uuid.UUID, name, rawHTML string) (Template, error) {
	m.mu.Lock()
	t, err := m.scopedTemplate(accountID, projectID, templateID)
	if err != nil {
		m.mu.Unlock()
		return Template{}, err
	}
	t.Name = name
	t.RawHTML = rawHTML
	t.UpdatedAt = m.now()
	m.templates[templateID] = t
	m.mu.Unlock()

	return m.GetTemplate(ctx, accountID, projectID, templateID)
}

func (m *MemoryStorage) DeleteTemplate(_ context.Context, accountID, projectID, templateID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.scopedTemplate(accountID, projectID, templateID); err != nil {
		return err
	}
	for id, s := range m.sections {
		if s.TemplateID == templateID {
			m.deleteSectionLocked(id)
		}
	}
	delete(m.templates, templateID)
	return nil
}

func (m *MemoryStorage) CreateSection(_ context.Context, templateID uuid.UUID) (Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.templates[templateID]; !ok {
		return Section{}, fmt.Errorf("%w: template %s", ErrNotFound, templateID)
	}
	pos := 0
	for _, s := range m.sections {
		if s.TemplateID == templateID {
			pos = max(pos, s.Position)
		}
	}
	s := Section{ID: uuid.New(), TemplateID: templateID, Position: pos + 1, CreatedAt: m.now()}
	m.sections[s.ID] = s

	s.Variables = []Variable{}
	return s, nil
}

func (m *MemoryStorage) DeleteSection(_ context.Context, templateID, sectionID uuid.UUID, rawHTML string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.templates[templateID]
	if !ok {
		return fmt.Errorf("%w: template %s", ErrNotFound, templateID)
	}
	if s, ok := m.sections[sectionID]; !ok || s.TemplateID != templateID {
		return fmt.Errorf("%w: section %s", ErrNotFound, sectionID)
	}

	m.deleteSectionLocked(sectionID)
	for i, s := range m.sectionsOf(templateID) {
		s.Variables = nil
		s.Position = i + 1
		m.sections[s.ID] = s
	}

	t.RawHTML = rawHTML
	t.UpdatedAt = m.now()
	m.templates[templateID] = t
	return nil
}

func (m *MemoryStorage) deleteSectionLocked(sectionID uuid.UUID) {
	for id, v := range m.variables {
		if v.SectionID == sectionID {
			delete(m.variables, id)
		}
	}
	delete(m.sections, sectionID)
}

func (m *MemoryStorage) CreateVariable(_ context.Context, templateID uuid.UUID, v *Variable, rawHTML string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.templates[templateID]
	if !ok {
		return fmt.Errorf("%w: template %s", ErrNotFound, templateID)
	}
	if s, ok := m.sections[v.SectionID]; !ok || s.TemplateID != templateID {
		return fmt.Errorf("%w: section %s", ErrNotFound, v.SectionID)
	}
	if _, exists := m.variables[v.ID]; exists {
		return fmt.Errorf("catalog: variable %s already exists", v.ID)
	}

	pos := 0
	for _, other := range m.variables {
		if other.SectionID != v.SectionID {
			continue
		}
		if other.Name == v.Name {
			return fmt.Errorf("%w: create variable %q", ErrDuplicateName, v.Name)
		}
		pos = max(pos, other.Position)
	}

	now := m.now()
	v.Position = pos + 1
	v.CreatedAt = now
	v.UpdatedAt = now
	m.variables[v.ID] = *v

	t.RawHTML = rawHTML
	t.UpdatedAt = now
	m.templates[templateID] = t
	return nil
}

func (m *MemoryStorage) RenameVariable(_ context.Context, templateID, sectionID, variableID uuid.UUID, name string) (Variable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, err := m.scopedVariable(templateID, sectionID, variableID)
	if err != nil {
		return Variable{}, err
	}
	for id, other := range m.variables {
		if id != variableID && other.SectionID == sectionID && other.Name == name {
			return Variable{}, fmt.Errorf("%w: rename variable %q", ErrDuplicateName, name)
		}
	}
	v.Name = name
	v.UpdatedAt = m.now()
	m.variables[variableID] = v
	return v, nil
}

func (m *MemoryStorage) DeleteVariable(_ context.Context, templateID, sectionID, variableID uuid.UUID, rawHTML string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.scopedVariable(templateID, sectionID, variableID); err != nil {
		return err
	}
	delete(m.variables, variableID)

	t := m.templates[templateID]
	t.RawHTML = rawHTML
	t.UpdatedAt = m.now()
	m.templates[templateID] = t
	return nil
}

func (m *MemoryStorage) scopedVariable(templateID, sectionID, variableID uuid.UUID) (Variable, error) {
	s, ok := m.sections[sectionID]
	if !ok || s.TemplateID != templateID {
		return Variable{}, fmt.Errorf("%w: section %s", ErrNotFound, sectionID)
	}
	v, ok := m.variables[variableID]
	if !ok || v.SectionID != sectionID {
		return Variable{}, fmt.Errorf("%w: variable %s", ErrNotFound, variableID)
	}
	return v, nil
}
