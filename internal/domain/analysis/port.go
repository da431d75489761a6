package analysis

import (
	"context"

	"github.com/google/uuid"
)

// RunRepository port for persisting and querying analysis runs
type RunRepository interface {
	Save(ctx context.Context, r *Run) error
	Paginate(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*Run, error)
}
