package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Save inserts an analysis run
func (r *RunRepository) Save(ctx context.Context, a *domain.Run) error {
	const q = `
INSERT INTO analysis_runs
  (id, user_id, project_id, capability, ai_model, fallback, duration_ms, result_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8::jsonb,$9)
ON CONFLICT (id) DO UPDATE SET
  ai_model=EXCLUDED.ai_model,
  fallback=EXCLUDED.fallback,
  duration_ms=EXCLUDED.duration_ms,
  result_json=EXCLUDED.result_json;
`
	a.CreatedAt = nowIfZero(a.CreatedAt)
	_, err := r.db.ExecContext(ctx, q, a.ID, nullUUID(a.UserID), nullUUID(a.ProjectID), string(a.Capability),
		stringOrDash(a.AIModel), a.Fallback, a.DurationMS, jsonOrEmpty(a.Result), a.CreatedAt)
	return mapErr("save analysis run", err)
}

// Paginate returns a page of the user's runs ordered by created_at desc
func (r *RunRepository) Paginate(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*domain.Run, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, user_id, project_id, capability, ai_model, fallback, duration_ms, result_json, created_at
FROM analysis_runs
WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.db.QueryContext(ctx, q, userID, pageSize, offset)
	if err != nil {
		return nil, mapErr("list analysis runs", err)
	}
	defer rows.Close()

	out := []*domain.Run{}
	for rows.Next() {
		var a domain.Run
		var user, project uuid.NullUUID
		var capability string
		var result []byte
		if err := rows.Scan(&a.ID, &user, &project, &capability, &a.AIModel, &a.Fallback, &a.DurationMS, &result, &a.CreatedAt); err != nil {
			return nil, mapErr("scan analysis run", err)
		}
		a.UserID, a.ProjectID = uuidPtr(user), uuidPtr(project)
		a.Capability = domain.Capability(capability)
		a.Result = string(result)
		out = append(out, &a)
	}
	return out, rows.Err()
}
