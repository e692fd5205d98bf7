package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/varlayer/pkg/pg"
	"github.com/dmitrymomot/varlayer/pkg/placeholder"
)

// DB is the subset of *pgxpool.Pool used by PGStorage.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier is implemented by both DB and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const variableNameConstraint = "template_variables_section_name_key"

// PGStorage implements Storage on PostgreSQL.
type PGStorage struct {
	db DB
}

var _ Storage = (*PGStorage)(nil)

// NewPGStorage returns a PGStorage on db, usually a *pgxpool.Pool. The
// schema must be migrated with Migrations first.
func NewPGStorage(db DB) *PGStorage {
	return &PGStorage{db: db}
}

func storageErr(op string, err error) error {
	switch {
	case pg.IsNotFoundError(err), pg.IsForeignKeyViolationError(err):
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	case pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == variableNameConstraint:
		return fmt.Errorf("%w: %s", ErrDuplicateName, op)
	}
	return fmt.Errorf("catalog: %s: %w", op, err)
}

func (s *PGStorage) GetAccount(ctx context.Context, id uuid.UUID) (Account, error) {
	a := Account{ID: id}
	err := s.db.QueryRow(ctx,
		`SELECT name, created_at FROM accounts WHERE id = $1`, id,
	).Scan(&a.Name, &a.CreatedAt)
	if err != nil {
		return Account{}, storageErr("get account", err)
	}
	return a, nil
}

func (s *PGStorage) CreateAccount(ctx context.Context, name string) (Account, error) {
	a := Account{ID: uuid.New(), Name: name}
	err := s.db.QueryRow(ctx,
		`INSERT INTO accounts (id, name) VALUES ($1, $2) RETURNING created_at`, a.ID, a.Name,
	).Scan(&a.CreatedAt)
	if err != nil {
		return Account{}, storageErr("create account", err)
	}
	return a, nil
}

func (s *PGStorage) ListProjects(ctx context.Context, accountID uuid.UUID) ([]Project, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, account_id, name, created_at, updated_at
		   FROM projects
		  WHERE account_id = $1
		  ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, storageErr("list projects", err)
	}
	projects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Project, error) {
		var p Project
		err := row.Scan(&p.ID, &p.AccountID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	})
	if err != nil {
		return nil, storageErr("list projects", err)
	}
	return projects, nil
}

func (s *PGStorage) CreateProject(ctx context.Context, accountID uuid.UUID, name string) (Project, error) {
	p := Project{ID: uuid.New(), AccountID: accountID, Name: name}
	err := s.db.QueryRow(ctx,
		`INSERT INTO projects (id, account_id, name) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`, p.ID, p.AccountID, p.Name,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Project{}, storageErr("create project", err)
	}
	return p, nil
}

func checkProject(ctx context.Context, q querier, accountID, projectID uuid.UUID) error {
	var ok bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND account_id = $2)`, projectID, accountID,
	).Scan(&ok)
	if err != nil {
		return storageErr("check project", err)
	}
	if !ok {
		return fmt.Errorf("%w: project %s", ErrNotFound, projectID)
	}
	return nil
}

func (s *PGStorage) UpdateProject(ctx context.Context, accountID, projectID uuid.UUID, name string) (Project, error) {
	p := Project{ID: projectID, AccountID: accountID, Name: name}
	err := s.db.QueryRow(ctx,
		`UPDATE projects SET name = $3, updated_at = now()
		  WHERE id = $1 AND account_id = $2
		 RETURNING created_at, updated_at`, projectID, accountID, name,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Project{}, storageErr("update project", err)
	}
	return p, nil
}

func (s *PGStorage) ListAudiences(ctx context.Context, accountID, projectID uuid.UUID) ([]Audience, error) {
	if err := checkProject(ctx, s.db, accountID, projectID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, project_id, name, details, created_at, updated_at
		   FROM audiences
		  WHERE project_id = $1
		  ORDER BY updated_at DESC, id`, projectID)
	if err != nil {
		return nil, storageErr("list audiences", err)
	}
	audiences, err := pgx.CollectRows(rows, scanAudience)
	if err != nil {
		return nil, storageErr("list audiences", err)
	}
	return audiences, nil
}

func scanAudience(row pgx.CollectableRow) (Audience, error) {
	var a Audience
	err := row.Scan(&a.ID, &a.ProjectID, &a.Name, &a.Details, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *PGStorage) CreateAudience(ctx context.Context, accountID, projectID uuid.UUID, name, details string) (Audience, error) {
	if err := checkProject(ctx, s.db, accountID, projectID); err != nil {
		return Audience{}, err
	}
	a := Audience{ID: uuid.New(), ProjectID: projectID, Name: name, Details: details}
	err := s.db.QueryRow(ctx,
		`INSERT INTO audiences (id, project_id, name, details) VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`, a.ID, projectID, name, details,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Audience{}, storageErr("create audience", err)
	}
	return a, nil
}

func (s *PGStorage) UpdateAudience(ctx context.Context, accountID, projectID, audienceID uuid.UUID, name, details string) (Audience, error) {
	rows, err := s.db.Query(ctx,
		`UPDATE audiences a
		    SET name = $4, details = $5, updated_at = now()
		   FROM projects p
		  WHERE a.id = $1 AND a.project_id = $2 AND p.id = a.project_id AND p.account_id = $3
		 RETURNING a.id, a.project_id, a.name, a.details, a.created_at, a.updated_at`,
		audienceID, projectID, accountID, name, details)
	if err != nil {
		return Audience{}, storageErr("update audience", err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAudience)
	if err != nil {
		return Audience{}, storageErr("update audience", err)
	}
	return a, nil
}

func (s *PGStorage) DeleteAudience(ctx context.Context, accountID, projectID, audienceID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM audiences a
		  USING projects p
		  WHERE a.id = $1 AND a.project_id = $2 AND p.id = a.project_id AND p.account_id = $3`,
		audienceID, projectID, accountID)
	if err != nil {
		return storageErr("delete audience", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: delete audience", ErrNotFound)
	}
	return nil
}

func (s *PGStorage) ListTemplates(ctx context.Context, accountID, projectID uuid.UUID) ([]Template, error) {
	if err := checkProject(ctx, s.db, accountID, projectID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, project_id, name, created_at, updated_at
		   FROM email_templates
		  WHERE project_id = $1
		  ORDER BY updated_at DESC, id`, projectID)
	if err != nil {
		return nil, storageErr("list templates", err)
	}
	templates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Template, error) {
		var t Template
		err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	})
	if err != nil {
		return nil, storageErr("list templates", err)
	}
	return templates, nil
}

func (s *PGStorage) CreateTemplate(ctx context.Context, accountID, projectID uuid.UUID, name, rawHTML string) (Template, error) {
	if err := checkProject(ctx, s.db, accountID, projectID); err != nil {
		return Template{}, err
	}
	t := Template{ID: uuid.New(), ProjectID: projectID, Name: name, RawHTML: rawHTML, OriginalRawHTML: rawHTML}
	err := s.db.QueryRow(ctx,
		`INSERT INTO email_templates (id, project_id, name, raw_html, original_raw_html)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING created_at, updated_at`, t.ID, t.ProjectID, t.Name, t.RawHTML,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Template{}, storageErr("create template", err)
	}
	return t, nil
}

func (s *PGStorage) GetTemplate(ctx context.Context, accountID, projectID, templateID uuid.UUID) (Template, error) {
	var t Template
	err := s.db.QueryRow(ctx,
		`SELECT t.id, t.project_id, t.name, t.raw_html, t.original_raw_html, t.created_at, t.updated_at
		   FROM email_templates t
		   JOIN projects p ON p.id = t.project_id
		  WHERE t.id = $1 AND t.project_id = $2 AND p.account_id = $3`, templateID, projectID, accountID,
	).Scan(&t.ID, &t.ProjectID, &t.Name, &t.RawHTML, &t.OriginalRawHTML, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Template{}, storageErr("get template", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, template_id, position, created_at
		   FROM template_sections
		  WHERE template_id = $1
		  ORDER BY position, created_at`, templateID)
	if err != nil {
		return Template{}, storageErr("list sections", err)
	}
	t.Sections, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (Section, error) {
		sec := Section{Variables: []Variable{}}
		err := row.Scan(&sec.ID, &sec.TemplateID, &sec.Position, &sec.CreatedAt)
		return sec, err
	})
	if err != nil {
		return Template{}, storageErr("list sections", err)
	}

	rows, err = s.db.Query(ctx,
		`SELECT v.id, v.section_id, v.name, v.variable_type, v.default_value, v.position, v.created_at, v.updated_at
		   FROM template_variables v
		   JOIN template_sections s ON s.id = v.section_id
		  WHERE s.template_id = $1
		  ORDER BY v.position, v.created_at`, templateID)
	if err != nil {
		return Template{}, storageErr("list variables", err)
	}
	vars, err := pgx.CollectRows(rows, scanVariable)
	if err != nil {
		return Template{}, storageErr("list variables", err)
	}

	index := make(map[uuid.UUID]int, len(t.Sections))
	for i, sec := range t.Sections {
		index[sec.ID] = i
	}
	for _, v := range vars {
		if i, ok := index[v.SectionID]; ok {
			t.Sections[i].Variables = append(t.Sections[i].Variables, v)
		}
	}
	return t, nil
}

func scanVariable(row pgx.CollectableRow) (Variable, error) {
	var (
		v    Variable
		kind string
	)
	err := row.Scan(&v.ID, &v.SectionID, &v.Name, &kind, &v.DefaultValue, &v.Position, &v.CreatedAt, &v.UpdatedAt)
	v.Type = placeholder.Kind(kind)
	return v, err
}

func (s *PGStorage) UpdateTemplate(ctx context.Context, accountID, projectID, templateID uuid.UUID, name, rawHTML string) (Template, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE email_templates t
		    SET name = $4, raw_html = $5, updated_at = now()
		   FROM projects p
		  WHERE t.id = $1 AND t.project_id = $2 AND p.id = t.project_id AND p.account_id = $3`,
		templateID, projectID, accountID, name, rawHTML)
	if err != nil {
		return Template{}, storageErr("update template", err)
	}
	if tag.RowsAffected() == 0 {
		return Template{}, fmt.Errorf("%w: update template", ErrNotFound)
	}
	return s.GetTemplate(ctx, accountID, projectID, templateID)
}

func (s *PGStorage) DeleteTemplate(ctx context.Context, accountID, projectID, templateID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM email_templates t
		  USING projects p
		  WHERE t.id = $1 AND t.project_id = $2 AND p.id = t.project_id AND p.account_id = $3`,
		templateID, projectID, accountID)
	if err != nil {
		return storageErr("delete template", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: delete template", ErrNotFound)
	}
	return nil
}

// lockTemplate serializes structural changes to one template.
func lockTemplate(ctx context.Context, tx pgx.Tx, templateID uuid.UUID) error {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM email_templates WHERE id = $1 FOR UPDATE`, templateID).Scan(&id)
	if err != nil {
		return storageErr("lock template", err)
	}
	return nil
}

func setRawHTML(ctx context.Context, tx pgx.Tx, templateID uuid.UUID, rawHTML string) error {
	_, err := tx.Exec(ctx,
		`UPDATE email_templates SET raw_html = $2, updated_at = now() WHERE id = $1`, templateID, rawHTML)
	if err != nil {
		return storageErr("store raw html", err)
	}
	return nil
}

func (s *PGStorage) CreateSection(ctx context.Context, templateID uuid.UUID) (Section, error) {
	sec := Section{ID: uuid.New(), TemplateID: templateID, Variables: []Variable{}}
	err := pg.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := lockTemplate(ctx, tx, templateID); err != nil {
			return err
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO template_sections (id, template_id, position)
			 SELECT $1, $2, COALESCE(MAX(position), 0) + 1 FROM template_sections WHERE template_id = $2
			 RETURNING position, created_at`, sec.ID, templateID,
		).Scan(&sec.Position, &sec.CreatedAt)
		if err != nil {
			return storageErr("create section", err)
		}
		return nil
	})
	if err != nil {
		return Section{}, err
	}
	return sec, nil
}

func (s *PGStorage) DeleteSection(ctx context.Context, templateID, sectionID uuid.UUID, rawHTML string) error {
	return pg.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := lockTemplate(ctx, tx, templateID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`DELETE FROM template_sections WHERE id = $1 AND template_id = $2`, sectionID, templateID)
		if err != nil {
			return storageErr("delete section", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: delete section", ErrNotFound)
		}
		_, err = tx.Exec(ctx,
			`UPDATE template_sections s
			    SET position = r.rn
			   FROM (SELECT id, row_number() OVER (ORDER BY position, created_at) AS rn
			           FROM template_sections
			          WHERE template_id = $1) r
			  WHERE s.id = r.id AND s.position <> r.rn`, templateID)
		if err != nil {
			return storageErr("renumber sections", err)
		}
		return setRawHTML(ctx, tx, templateID, rawHTML)
	})
}

func (s *PGStorage) CreateVariable(ctx context.Context, templateID uuid.UUID, v *Variable, rawHTML string) error {
	return pg.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := lockTemplate(ctx, tx, templateID); err != nil {
			return err
		}
		var owned bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM template_sections WHERE id = $1 AND template_id = $2)`,
			v.SectionID, templateID,
		).Scan(&owned)
		if err != nil {
			return storageErr("check section", err)
		}
		if !owned {
			return fmt.Errorf("%w: section %s", ErrNotFound, v.SectionID)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO template_variables (id, section_id, name, variable_type, default_value, position)
			 SELECT $1, $2, $3, $4, $5, COALESCE(MAX(position), 0) + 1 FROM template_variables WHERE section_id = $2
			 RETURNING position, created_at, updated_at`,
			v.ID, v.SectionID, v.Name, string(v.Type), v.DefaultValue,
		).Scan(&v.Position, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return storageErr("create variable", err)
		}
		return setRawHTML(ctx, tx, templateID, rawHTML)
	})
}

func (s *PGStorage) RenameVariable(ctx context.Context, templateID, sectionID, variableID uuid.UUID, name string) (Variable, error) {
	rows, err := s.db.Query(ctx,
		`UPDATE template_variables v
		    SET name = $4, updated_at = now()
		   FROM template_sections s
		  WHERE v.id = $3 AND v.section_id = $2 AND s.id = v.section_id AND s.template_id = $1
		 RETURNING v.id, v.section_id, v.name, v.variable_type, v.default_value, v.position, v.created_at, v.updated_at`,
		templateID, sectionID, variableID, name)
	if err != nil {
		return Variable{}, storageErr("rename variable", err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, scanVariable)
	if err != nil {
		return Variable{}, storageErr("rename variable", err)
	}
	return v, nil
}

func (s *PGStorage) DeleteVariable(ctx context.Context, templateID, sectionID, variableID uuid.UUID, rawHTML string) error {
	return pg.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := lockTemplate(ctx, tx, templateID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`DELETE FROM template_variables v
			  USING template_sections s
			  WHERE v.id = $1 AND v.section_id = $2 AND s.id = v.section_id AND s.template_id = $3`,
			variableID, sectionID, templateID)
		if err != nil {
			return storageErr("delete variable", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: delete variable", ErrNotFound)
		}
		return setRawHTML(ctx, tx, templateID, rawHTML)
	})
}
