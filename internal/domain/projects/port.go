package projects

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists projects. Get returns apperr.ErrNotFound for a
// missing row.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
}

// DataRepository is the per-project document store (project_data).
type DataRepository interface {
	Upsert(ctx context.Context, s *Section) error
	Get(ctx context.Context, projectID uuid.UUID, section string) (*Section, error)
	List(ctx context.Context, projectID uuid.UUID) ([]*Section, error)
}
