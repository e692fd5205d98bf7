package editor_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/varlayer/pkg/placeholder"
	"github.com/dmitrymomot/varlayer/pkg/validator"
	"github.com/dmitrymomot/varlayer/svc/catalog"
	"github.com/dmitrymomot/varlayer/svc/editor"
)

// spyStore records the atomic writes and can make them fail.
type spyStore struct {
	*catalog.MemoryStorage
	mock.Mock
}

func (s *spyStore) CreateVariable(ctx context.Context, templateID uuid.UUID, v *catalog.Variable, raw string) error {
	if err := s.Called(templateID, raw).Error(0); err != nil {
		return err
	}
	return s.MemoryStorage.CreateVariable(ctx, templateID, v, raw)
}

func (s *spyStore) DeleteVariable(ctx context.Context, templateID, sectionID, variableID uuid.UUID, raw string) error {
	if err := s.Called(templateID, raw).Error(0); err != nil {
		return err
	}
	return s.MemoryStorage.DeleteVariable(ctx, templateID, sectionID, variableID, raw)
}

type env struct {
	store   *spyStore
	svc     *editor.Service
	scope   editor.Scope
	section uuid.UUID
}

func newEnv(t *testing.T, raw string, opts ...editor.Option) env {
	t.Helper()
	ctx := context.Background()

	store := &spyStore{MemoryStorage: catalog.NewMemoryStorage()}
	acc, err := store.CreateAccount(ctx, "Acme")
	require.NoError(t, err)
	proj, err := store.CreateProject(ctx, acc.ID, "Main")
	require.NoError(t, err)
	tmpl, err := store.CreateTemplate(ctx, acc.ID, proj.ID, "Welcome", raw)
	require.NoError(t, err)
	sec, err := store.CreateSection(ctx, tmpl.ID)
	require.NoError(t, err)

	return env{
		store:   store,
		svc:     editor.NewService(store, opts...),
		scope:   editor.Scope{AccountID: acc.ID, ProjectID: proj.ID, TemplateID: tmpl.ID},
		section: sec.ID,
	}
}

func (e env) rawHTML(t *testing.T) string {
	t.Helper()
	tmpl, err := e.svc.Template(context.Background(), e.scope)
	require.NoError(t, err)
	return tmpl.RawHTML
}

func intPtr(n int) *int { return &n }

func fixedID(id uuid.UUID) editor.Option {
	return editor.WithIDGenerator(func() uuid.UUID { return id })
}

func TestCreateTextVariable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	id := uuid.New()

	e := newEnv(t, "<p>Hello World</p>", fixedID(id))
	e.store.On("CreateVariable", e.scope.TemplateID, mock.Anything).Return(nil)

	v, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:    e.section,
		SelectedText: "World",
	})
	require.NoError(t, err)

	assert.Equal(t, id, v.ID)
	assert.Equal(t, "World", v.Name)
	assert.Equal(t, "World", v.DefaultValue)
	assert.Equal(t, placeholder.KindText, v.Type)
	assert.Equal(t, 1, v.Position)
	assert.Equal(t, "<p>Hello "+placeholder.Token(id.String())+"</p>", e.rawHTML(t))
	e.store.AssertNumberOfCalls(t, "CreateVariable", 1)
}

func TestCreateTextVariable_Occurrence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	id := uuid.New()
	token := placeholder.Token(id.String())

	tests := []struct {
		name   string
		params editor.CreateTextVariableParams
		want   string
	}{
		{
			name:   "explicit index",
			params: editor.CreateTextVariableParams{SelectedText: "cat", OccurrenceIndex: intPtr(2)},
			want:   "<p>cat cat " + token + "</p>",
		},
		{
			name:   "selection offset",
			params: editor.CreateTextVariableParams{SelectedText: "cat", SelectionOffset: intPtr(4)},
			want:   "<p>cat " + token + " cat</p>",
		},
		{
			name:   "explicit index wins",
			params: editor.CreateTextVariableParams{SelectedText: "cat", OccurrenceIndex: intPtr(0), SelectionOffset: intPtr(8)},
			want:   "<p>" + token + " cat cat</p>",
		},
		{
			name:   "defaults to first",
			params: editor.CreateTextVariableParams{SelectedText: "cat"},
			want:   "<p>" + token + " cat cat</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newEnv(t, "<p>cat cat cat</p>", fixedID(id))
			e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

			tt.params.SectionID = e.section
			_, err := e.svc.CreateTextVariable(ctx, e.scope, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.rawHTML(t))
		})
	}
}

func TestCreateTextVariable_OffsetCountsPreviewText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first, second := uuid.New(), uuid.New()
	ids := []uuid.UUID{first, second}
	e := newEnv(t, "<p>Dear Ann, welcome Ann</p>", editor.WithIDGenerator(func() uuid.UUID {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID: e.section, SelectedText: "welcome",
	})
	require.NoError(t, err)

	// The preview reads "Dear Ann, welcome Ann"; the second "Ann" starts at 18.
	_, err = e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID: e.section, SelectedText: "Ann", SelectionOffset: intPtr(18),
	})
	require.NoError(t, err)

	want := "<p>Dear Ann, " + placeholder.Token(first.String()) + " " + placeholder.Token(second.String()) + "</p>"
	assert.Equal(t, want, e.rawHTML(t))
}

func TestCreateTextVariable_NextToExistingToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	second := uuid.MustParse("b744b29e-2f0b-4bd1-9d4c-3f7a2c9e1a10")

	tests := []struct {
		name   string
		params editor.CreateTextVariableParams
	}{
		{"first match", editor.CreateTextVariableParams{SelectedText: "8"}},
		{"selection offset", editor.CreateTextVariableParams{SelectedText: "8", SelectionOffset: intPtr(14)}},
		{"explicit index", editor.CreateTextVariableParams{SelectedText: "8", OccurrenceIndex: intPtr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ids := []uuid.UUID{first, second}
			e := newEnv(t, "<p>John was here 8 days</p>", editor.WithIDGenerator(func() uuid.UUID {
				id := ids[0]
				ids = ids[1:]
				return id
			}))
			e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

			_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
				SectionID: e.section, SelectedText: "John",
			})
			require.NoError(t, err)

			tt.params.SectionID = e.section
			_, err = e.svc.CreateTextVariable(ctx, e.scope, tt.params)
			require.NoError(t, err)

			want := "<p>" + placeholder.Token(first.String()) + " was here " + placeholder.Token(second.String()) + " days</p>"
			assert.Equal(t, want, e.rawHTML(t))

			report, err := e.svc.Audit(ctx, e.scope)
			require.NoError(t, err)
			assert.True(t, report.Clean(), "%+v", report)
		})
	}
}

func TestCreateTextVariable_SelectionInsideAnotherDefault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	first, second := uuid.New(), uuid.New()
	ids := []uuid.UUID{first, second}
	e := newEnv(t, "<p>Dear Ann Lee, bye Ann</p>", editor.WithIDGenerator(func() uuid.UUID {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID: e.section, SelectedText: "Dear Ann Lee",
	})
	require.NoError(t, err)

	// The preview reads "Dear Ann Lee, bye Ann"; the selected "Ann" starts at 18
	// and is the first one outside the variable.
	_, err = e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID: e.section, SelectedText: "Ann", SelectionOffset: intPtr(18),
	})
	require.NoError(t, err)

	want := "<p>" + placeholder.Token(first.String()) + ", bye " + placeholder.Token(second.String()) + "</p>"
	assert.Equal(t, want, e.rawHTML(t))
}

func TestCreateTextVariable_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>Hello World</p>")

	_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:    e.section,
		SelectedText: "Goodbye",
	})
	assert.ErrorIs(t, err, editor.ErrSelectionNotFound)

	_, err = e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:       e.section,
		SelectedText:    "World",
		OccurrenceIndex: intPtr(1),
	})
	assert.ErrorIs(t, err, editor.ErrSelectionNotFound)

	e.store.AssertNotCalled(t, "CreateVariable", mock.Anything, mock.Anything)
	assert.Equal(t, "<p>Hello World</p>", e.rawHTML(t))
}

func TestCreateTextVariable_PersistenceFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>Hello World</p>")
	boom := errors.New("connection reset")
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(boom)

	_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:    e.section,
		SelectedText: "World",
	})
	assert.ErrorIs(t, err, boom)

	tmpl, err := e.svc.Template(ctx, e.scope)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello World</p>", tmpl.RawHTML)
	assert.Empty(t, tmpl.Variables())
}

func TestService_LogsComponentOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := newEnv(t, "<p>Hello World</p>", editor.WithLogger(log))
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:    e.section,
		SelectedText: "World",
	})
	require.NoError(t, err)

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, `"msg":"variable created"`) {
			line = l
		}
	}
	require.NotEmpty(t, line, buf.String())
	assert.Equal(t, 1, strings.Count(line, `"component":`), line)
	assert.Contains(t, line, `"component":"editor"`)
}

func TestCreateTextVariable_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>Hello World</p>")

	_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:       e.section,
		SelectedText:    "  ",
		OccurrenceIndex: intPtr(-1),
	})
	errs := validator.ExtractValidationErrors(err)
	require.NotNil(t, errs)
	assert.True(t, errs.Has("selected_text"))
	assert.True(t, errs.Has("occurrence_index"))
}

func TestCreateTextVariable_Scope(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>Hello World</p>")

	_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:    uuid.New(),
		SelectedText: "World",
	})
	assert.ErrorIs(t, err, editor.ErrSectionNotFound)

	foreign := e.scope
	foreign.AccountID = uuid.New()
	_, err = e.svc.CreateTextVariable(ctx, foreign, editor.CreateTextVariableParams{
		SectionID:    e.section,
		SelectedText: "World",
	})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCreateTextVariable_DerivedNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>cat cat</p><p>a   very\n long   selection</p><p>footer</p>")
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	var names []string
	for _, p := range []editor.CreateTextVariableParams{
		{SelectedText: "cat"},
		{SelectedText: "cat"},
		{SelectedText: "a very long selection"},
		{SelectedText: "footer", Name: "  custom  "},
	} {
		p.SectionID = e.section
		v, err := e.svc.CreateTextVariable(ctx, e.scope, p)
		require.NoError(t, err)
		names = append(names, v.Name)
	}

	assert.Equal(t, []string{"cat", "cat (2)", "a very long selection", "custom"}, names)
}

func TestCreateImageVariable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	id := uuid.New()

	e := newEnv(t, `<img src="https://cdn.example.com/img/logo.png?v=2">`, fixedID(id))
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	_, err := e.svc.CreateImageVariable(ctx, e.scope, editor.CreateImageVariableParams{
		SectionID: e.section,
		Src:       "https://cdn.example.com/img/other.png",
	})
	assert.ErrorIs(t, err, editor.ErrImageNotFound)
	e.store.AssertNotCalled(t, "CreateVariable", mock.Anything, mock.Anything)

	v, err := e.svc.CreateImageVariable(ctx, e.scope, editor.CreateImageVariableParams{
		SectionID: e.section,
		Src:       "https://cdn.example.com/img/logo.png?v=2",
	})
	require.NoError(t, err)
	assert.Equal(t, placeholder.KindImage, v.Type)
	assert.Equal(t, "logo.png", v.Name)
	assert.Equal(t, "https://cdn.example.com/img/logo.png?v=2", v.DefaultValue)
	assert.Equal(t,
		`<img src="https://cdn.example.com/img/logo.png?v=2" `+placeholder.Attribute(id.String())+`>`,
		e.rawHTML(t),
	)
}

func TestDeleteVariable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>Fish &amp; Chips</p>")
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	v, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:    e.section,
		SelectedText: "Fish & Chips",
	})
	require.NoError(t, err)

	t.Run("persistence failure keeps the marker", func(t *testing.T) {
		e.store.On("DeleteVariable", mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()
		err := e.svc.DeleteVariable(ctx, e.scope, e.section, v.ID)
		assert.Error(t, err)
		assert.True(t, placeholder.HasText(e.rawHTML(t), v.ID.String()))
	})

	t.Run("restores the default value", func(t *testing.T) {
		e.store.On("DeleteVariable", mock.Anything, mock.Anything).Return(nil)
		require.NoError(t, e.svc.DeleteVariable(ctx, e.scope, e.section, v.ID))
		assert.Equal(t, "<p>Fish &amp; Chips</p>", e.rawHTML(t))

		err := e.svc.DeleteVariable(ctx, e.scope, e.section, v.ID)
		assert.ErrorIs(t, err, editor.ErrVariableNotFound)
	})
}

func TestRenameVariable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>Hello World</p>")
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	v, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{
		SectionID:    e.section,
		SelectedText: "World",
	})
	require.NoError(t, err)

	renamed, err := e.svc.RenameVariable(ctx, e.scope, e.section, v.ID, " recipient ")
	require.NoError(t, err)
	assert.Equal(t, "recipient", renamed.Name)

	renamed, err = e.svc.RenameVariable(ctx, e.scope, e.section, v.ID, "first\n  name\x00")
	require.NoError(t, err)
	assert.Equal(t, "first name", renamed.Name)

	_, err = e.svc.RenameVariable(ctx, e.scope, e.section, v.ID, "\n\t")
	assert.True(t, validator.IsValidationError(err))

	_, err = e.svc.RenameVariable(ctx, e.scope, e.section, v.ID, "")
	assert.True(t, validator.IsValidationError(err))

	_, err = e.svc.RenameVariable(ctx, e.scope, e.section, uuid.New(), "x")
	assert.ErrorIs(t, err, editor.ErrVariableNotFound)
}

func TestDeleteSection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	raw := `<p>Hello World</p><img src="a.png">`
	e := newEnv(t, raw)
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	_, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{SectionID: e.section, SelectedText: "World"})
	require.NoError(t, err)
	_, err = e.svc.CreateImageVariable(ctx, e.scope, editor.CreateImageVariableParams{SectionID: e.section, Src: "a.png"})
	require.NoError(t, err)

	second, err := e.svc.AddSection(ctx, e.scope)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)

	require.NoError(t, e.svc.DeleteSection(ctx, e.scope, e.section))

	tmpl, err := e.svc.Template(ctx, e.scope)
	require.NoError(t, err)
	assert.Equal(t, raw, tmpl.RawHTML)
	require.Len(t, tmpl.Sections, 1)
	assert.Equal(t, second.ID, tmpl.Sections[0].ID)
	assert.Equal(t, 1, tmpl.Sections[0].Position)

	assert.ErrorIs(t, e.svc.DeleteSection(ctx, e.scope, e.section), editor.ErrSectionNotFound)
}

func TestAudit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>Hello World</p>")
	e.store.On("CreateVariable", mock.Anything, mock.Anything).Return(nil)

	v, err := e.svc.CreateTextVariable(ctx, e.scope, editor.CreateTextVariableParams{SectionID: e.section, SelectedText: "World"})
	require.NoError(t, err)

	report, err := e.svc.Audit(ctx, e.scope)
	require.NoError(t, err)
	assert.True(t, report.Clean())

	orphan := uuid.NewString()
	_, err = e.svc.UpdateTemplate(ctx, e.scope, editor.TemplateParams{
		Name:    "Welcome",
		RawHTML: "<p>Hello " + placeholder.Token(orphan) + placeholder.Token(orphan) + "</p>",
	})
	require.NoError(t, err)

	report, err = e.svc.Audit(ctx, e.scope)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, []string{orphan}, report.OrphanIDs)
	assert.Equal(t, []uuid.UUID{v.ID}, report.MissingVariables)
	assert.Equal(t, []string{orphan}, report.DuplicateIDs)
}

func TestProjectsAndTemplates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>x</p>")

	_, err := e.svc.CreateProject(ctx, e.scope.AccountID, editor.ProjectParams{})
	assert.True(t, validator.IsValidationError(err))

	p, err := e.svc.CreateProject(ctx, e.scope.AccountID, editor.ProjectParams{Name: " Promo "})
	require.NoError(t, err)
	assert.Equal(t, "Promo", p.Name)

	projects, err := e.svc.ListProjects(ctx, e.scope.AccountID)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	tmpl, err := e.svc.CreateTemplate(ctx, e.scope.AccountID, p.ID, editor.TemplateParams{Name: "Sale", RawHTML: "<p>50% off</p>"})
	require.NoError(t, err)

	list, err := e.svc.ListTemplates(ctx, e.scope.AccountID, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tmpl.ID, list[0].ID)

	scope := editor.Scope{AccountID: e.scope.AccountID, ProjectID: p.ID, TemplateID: tmpl.ID}
	require.NoError(t, e.svc.DeleteTemplate(ctx, scope))
	_, err = e.svc.Template(ctx, scope)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestUpdateProject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>x</p>")

	p, err := e.svc.UpdateProject(ctx, e.scope.AccountID, e.scope.ProjectID, editor.ProjectParams{Name: " Spring\r\n sale "})
	require.NoError(t, err)
	assert.Equal(t, "Spring sale", p.Name)
	assert.Equal(t, e.scope.ProjectID, p.ID)

	_, err = e.svc.UpdateProject(ctx, e.scope.AccountID, e.scope.ProjectID, editor.ProjectParams{Name: "  "})
	assert.True(t, validator.IsValidationError(err))

	_, err = e.svc.UpdateProject(ctx, uuid.New(), e.scope.ProjectID, editor.ProjectParams{Name: "Other"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestAudiences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	e := newEnv(t, "<p>x</p>")
	acc, proj := e.scope.AccountID, e.scope.ProjectID

	a, err := e.svc.CreateAudience(ctx, acc, proj, editor.AudienceParams{Name: " Returning\n customers ", Details: "Ordered twice"})
	require.NoError(t, err)
	assert.Equal(t, "Returning customers", a.Name)
	assert.Equal(t, "Ordered twice", a.Details)

	updated, err := e.svc.UpdateAudience(ctx, acc, proj, a.ID, editor.AudienceParams{Name: "Loyal", Details: ""})
	require.NoError(t, err)
	assert.Equal(t, "Loyal", updated.Name)
	assert.Empty(t, updated.Details)

	list, err := e.svc.ListAudiences(ctx, acc, proj)
	require.NoError(t, err)
	assert.Equal(t, []catalog.Audience{updated}, list)

	require.NoError(t, e.svc.DeleteAudience(ctx, acc, proj, a.ID))
	assert.ErrorIs(t, e.svc.DeleteAudience(ctx, acc, proj, a.ID), catalog.ErrNotFound)

	t.Run("validation", func(t *testing.T) {
		_, err := e.svc.CreateAudience(ctx, acc, proj, editor.AudienceParams{})
		assert.True(t, validator.IsValidationError(err))

		_, err = e.svc.CreateAudience(ctx, acc, proj, editor.AudienceParams{Name: "Big", Details: strings.Repeat("x", 64<<10+1)})
		assert.True(t, validator.IsValidationError(err))

		_, err = e.svc.UpdateAudience(ctx, acc, proj, uuid.New(), editor.AudienceParams{Name: ""})
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("other account", func(t *testing.T) {
		_, err := e.svc.ListAudiences(ctx, uuid.New(), proj)
		assert.ErrorIs(t, err, catalog.ErrNotFound)

		_, err = e.svc.CreateAudience(ctx, uuid.New(), proj, editor.AudienceParams{Name: "x"})
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}
