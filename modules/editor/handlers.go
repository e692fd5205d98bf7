package editor

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/handler"
	"github.com/dmitrymomot/varlayer/pkg/placeholder"
	"github.com/dmitrymomot/varlayer/pkg/validator"
	"github.com/dmitrymomot/varlayer/svc/account"
	"github.com/dmitrymomot/varlayer/svc/editor"
)

type emptyRequest struct{}

type createProjectRequest struct {
	Name string `json:"name"`
}

type projectRequest struct {
	ProjectID uuid.UUID `path:"projectID" json:"-"`
	Name      string    `json:"name"`
	RawHTML   string    `json:"raw_html"`
}

type audienceRequest struct {
	ProjectID  uuid.UUID `path:"projectID" json:"-"`
	AudienceID uuid.UUID `path:"audienceID" json:"-"`
	Name       string    `json:"name"`
	Details    string    `json:"details"`
}

type templateRequest struct {
	ProjectID  uuid.UUID `path:"projectID" json:"-"`
	TemplateID uuid.UUID `path:"templateID" json:"-"`
	Name       string    `json:"name"`
	RawHTML    string    `json:"raw_html"`
}

type sectionRequest struct {
	ProjectID  uuid.UUID `path:"projectID" json:"-"`
	TemplateID uuid.UUID `path:"templateID" json:"-"`
	SectionID  uuid.UUID `path:"sectionID" json:"-"`
}

type createVariableRequest struct {
	ProjectID  uuid.UUID `path:"projectID" json:"-"`
	TemplateID uuid.UUID `path:"templateID" json:"-"`
	SectionID  uuid.UUID `path:"sectionID" json:"-"`

	VariableType    string `json:"variable_type"`
	Name            string `json:"name"`
	SelectedText    string `json:"selected_text"`
	OccurrenceIndex *int   `json:"occurrence_index"`
	SelectionOffset *int   `json:"selection_offset"`
	Src             string `json:"src"`
}

type variableRequest struct {
	ProjectID  uuid.UUID `path:"projectID" json:"-"`
	TemplateID uuid.UUID `path:"templateID" json:"-"`
	SectionID  uuid.UUID `path:"sectionID" json:"-"`
	VariableID uuid.UUID `path:"variableID" json:"-"`
	Name       string    `json:"name"`
}

func scope(ctx handler.Context, projectID, templateID uuid.UUID) editor.Scope {
	accountID, _ := account.IDFromContext(ctx)
	return editor.Scope{AccountID: accountID, ProjectID: projectID, TemplateID: templateID}
}

func accountID(ctx handler.Context) uuid.UUID {
	id, _ := account.IDFromContext(ctx)
	return id
}

func created(data any) handler.Response {
	return handler.JSON(data, handler.WithJSONStatus(http.StatusCreated))
}

func (m *Module) listProjects(ctx handler.Context, _ emptyRequest) handler.Response {
	projects, err := m.svc.ListProjects(ctx, accountID(ctx))
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(projects, handler.WithJSONMeta(map[string]any{"total": len(projects)}))
}

func (m *Module) createProject(ctx handler.Context, req createProjectRequest) handler.Response {
	p, err := m.svc.CreateProject(ctx, accountID(ctx), editor.ProjectParams{Name: req.Name})
	if err != nil {
		return handler.Fail(err)
	}
	return created(p)
}

func (m *Module) updateProject(ctx handler.Context, req projectRequest) handler.Response {
	p, err := m.svc.UpdateProject(ctx, accountID(ctx), req.ProjectID, editor.ProjectParams{Name: req.Name})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(p)
}

func (m *Module) listAudiences(ctx handler.Context, req audienceRequest) handler.Response {
	audiences, err := m.svc.ListAudiences(ctx, accountID(ctx), req.ProjectID)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(audiences, handler.WithJSONMeta(map[string]any{"total": len(audiences)}))
}

func (m *Module) createAudience(ctx handler.Context, req audienceRequest) handler.Response {
	a, err := m.svc.CreateAudience(ctx, accountID(ctx), req.ProjectID, editor.AudienceParams{
		Name:    req.Name,
		Details: req.Details,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return created(a)
}

func (m *Module) updateAudience(ctx handler.Context, req audienceRequest) handler.Response {
	a, err := m.svc.UpdateAudience(ctx, accountID(ctx), req.ProjectID, req.AudienceID, editor.AudienceParams{
		Name:    req.Name,
		Details: req.Details,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(a)
}

func (m *Module) deleteAudience(ctx handler.Context, req audienceRequest) handler.Response {
	if err := m.svc.DeleteAudience(ctx, accountID(ctx), req.ProjectID, req.AudienceID); err != nil {
		return handler.Fail(err)
	}
	return handler.NoContent()
}

func (m *Module) listTemplates(ctx handler.Context, req projectRequest) handler.Response {
	templates, err := m.svc.ListTemplates(ctx, accountID(ctx), req.ProjectID)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(templates, handler.WithJSONMeta(map[string]any{"total": len(templates)}))
}

func (m *Module) createTemplate(ctx handler.Context, req projectRequest) handler.Response {
	t, err := m.svc.CreateTemplate(ctx, accountID(ctx), req.ProjectID, editor.TemplateParams{
		Name:    req.Name,
		RawHTML: req.RawHTML,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return created(t)
}

func (m *Module) getTemplate(ctx handler.Context, req templateRequest) handler.Response {
	t, err := m.svc.Template(ctx, scope(ctx, req.ProjectID, req.TemplateID))
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(t)
}

func (m *Module) updateTemplate(ctx handler.Context, req templateRequest) handler.Response {
	t, err := m.svc.UpdateTemplate(ctx, scope(ctx, req.ProjectID, req.TemplateID), editor.TemplateParams{
		Name:    req.Name,
		RawHTML: req.RawHTML,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(t)
}

func (m *Module) deleteTemplate(ctx handler.Context, req templateRequest) handler.Response {
	if err := m.svc.DeleteTemplate(ctx, scope(ctx, req.ProjectID, req.TemplateID)); err != nil {
		return handler.Fail(err)
	}
	return handler.NoContent()
}

func (m *Module) preview(ctx handler.Context, req templateRequest) handler.Response {
	html, err := m.svc.Preview(ctx, scope(ctx, req.ProjectID, req.TemplateID))
	if err != nil {
		return handler.Fail(err)
	}
	return handler.HTML(html)
}

func (m *Module) audit(ctx handler.Context, req templateRequest) handler.Response {
	report, err := m.svc.Audit(ctx, scope(ctx, req.ProjectID, req.TemplateID))
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(report, handler.WithJSONMeta(map[string]any{"clean": report.Clean()}))
}

func (m *Module) addSection(ctx handler.Context, req sectionRequest) handler.Response {
	sec, err := m.svc.AddSection(ctx, scope(ctx, req.ProjectID, req.TemplateID))
	if err != nil {
		return handler.Fail(err)
	}
	return created(sec)
}

func (m *Module) deleteSection(ctx handler.Context, req sectionRequest) handler.Response {
	if err := m.svc.DeleteSection(ctx, scope(ctx, req.ProjectID, req.TemplateID), req.SectionID); err != nil {
		return handler.Fail(err)
	}
	return handler.NoContent()
}

func (m *Module) createVariable(ctx handler.Context, req createVariableRequest) handler.Response {
	if req.VariableType == "" {
		req.VariableType = string(placeholder.KindText)
	}
	err := validator.Apply(validator.OneOfString("variable_type", req.VariableType,
		[]string{string(placeholder.KindText), string(placeholder.KindImage)}))
	if err != nil {
		return handler.Fail(err)
	}

	sc := scope(ctx, req.ProjectID, req.TemplateID)
	if placeholder.Kind(req.VariableType) == placeholder.KindImage {
		v, err := m.svc.CreateImageVariable(ctx, sc, editor.CreateImageVariableParams{
			SectionID: req.SectionID,
			Name:      req.Name,
			Src:       req.Src,
		})
		if err != nil {
			return handler.Fail(err)
		}
		return created(v)
	}

	v, err := m.svc.CreateTextVariable(ctx, sc, editor.CreateTextVariableParams{
		SectionID:       req.SectionID,
		Name:            req.Name,
		SelectedText:    req.SelectedText,
		OccurrenceIndex: req.OccurrenceIndex,
		SelectionOffset: req.SelectionOffset,
	})
	if err != nil {
		return handler.Fail(err)
	}
	return created(v)
}

func (m *Module) renameVariable(ctx handler.Context, req variableRequest) handler.Response {
	v, err := m.svc.RenameVariable(ctx, scope(ctx, req.ProjectID, req.TemplateID), req.SectionID, req.VariableID, req.Name)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(v)
}

func (m *Module) deleteVariable(ctx handler.Context, req variableRequest) handler.Response {
	err := m.svc.DeleteVariable(ctx, scope(ctx, req.ProjectID, req.TemplateID), req.SectionID, req.VariableID)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.NoContent()
}
