package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/bryanwahyu/venture-studio/internal/domain/projects"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *projects.Project) error {
	const q = `
INSERT INTO projects (id, user_id, name, description, stage, status, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?);
`
	p.CreatedAt = nowIfZero(p.CreatedAt)
	p.UpdatedAt = nowIfZero(p.UpdatedAt)
	_, err := r.db.ExecContext(ctx, q, p.ID, p.UserID, p.Name, p.Description, string(p.Stage), string(p.Status), p.CreatedAt, p.UpdatedAt)
	return mapErr("create project", err)
}

func (r *ProjectRepository) Get(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	const q = `
SELECT id, user_id, name, description, stage, status, created_at, updated_at
FROM projects WHERE id=?;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, mapErr("get project", err)
	}
	return p, nil
}

// ListByUser returns the user's projects, most recently updated first.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*projects.Project, error) {
	q := `
SELECT id, user_id, name, description, stage, status, created_at, updated_at
FROM projects
WHERE user_id=?`
	args := []any{userID}
	if !includeArchived {
		q += ` AND status=?`
		args = append(args, string(projects.StatusActive))
	}
	q += `
ORDER BY updated_at DESC, id DESC;`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapErr("list projects", err)
	}
	defer rows.Close()

	out := []*projects.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, mapErr("scan project", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *projects.Project) error {
	const q = `
UPDATE projects SET name=?, description=?, stage=?, status=?, updated_at=?
WHERE id=?;
`
	p.UpdatedAt = nowIfZero(p.UpdatedAt)
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, string(p.Stage), string(p.Status), p.UpdatedAt, p.ID)
	if err != nil {
		return mapErr("update project", err)
	}
	return expectOne("update project", res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*projects.Project, error) {
	var p projects.Project
	var stage, status string
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &stage, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Stage = projects.Stage(stage)
	p.Status = projects.Status(status)
	return &p, nil
}

type ProjectDataRepository struct {
	db *sql.DB
}

func NewProjectDataRepository(db *sql.DB) *ProjectDataRepository {
	return &ProjectDataRepository{db: db}
}

// Upsert writes the section document, replacing any previous version.
func (r *ProjectDataRepository) Upsert(ctx context.Context, s *projects.Section) error {
	const q = `
INSERT INTO project_data (project_id, section, data, updated_at)
VALUES (?,?,?,?)
ON DUPLICATE KEY UPDATE
  data=VALUES(data), updated_at=VALUES(updated_at);
`
	s.UpdatedAt = nowIfZero(s.UpdatedAt)
	_, err := r.db.ExecContext(ctx, q, s.ProjectID, s.Name, jsonOrEmpty(string(s.Data)), s.UpdatedAt)
	return mapErr("upsert project data", err)
}

func (r *ProjectDataRepository) Get(ctx context.Context, projectID uuid.UUID, section string) (*projects.Section, error) {
	const q = `
SELECT project_id, section, data, updated_at
FROM project_data WHERE project_id=? AND section=?;
`
	s, err := scanSection(r.db.QueryRowContext(ctx, q, projectID, section))
	if err != nil {
		return nil, mapErr("get project data", err)
	}
	return s, nil
}

func (r *ProjectDataRepository) List(ctx context.Context, projectID uuid.UUID) ([]*projects.Section, error) {
	const q = `
SELECT project_id, section, data, updated_at
FROM project_data WHERE project_id=?
ORDER BY section;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, mapErr("list project data", err)
	}
	defer rows.Close()

	out := []*projects.Section{}
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, mapErr("scan project data", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSection(row rowScanner) (*projects.Section, error) {
	var s projects.Section
	var data []byte
	if err := row.Scan(&s.ProjectID, &s.Name, &data, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Data = json.RawMessage(data)
	return &s, nil
}
