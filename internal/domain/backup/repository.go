package backup

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for backup jobs
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)
	FindRecent(ctx context.Context, limit int) ([]Job, error)
	FindRunning(ctx context.Context) ([]Job, error)
	Save(ctx context.Context, j *Job) error
}
