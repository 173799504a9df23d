package planning

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectRepository persists projects
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindByCode(ctx context.Context, code string) (*Project, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Project, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Project, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatusCount is one bucket of the task status histogram
type StatusCount struct {
	Status string
	Count  int64
}

// TaskRepository persists tasks
type TaskRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Task, error)
	FindByProjectAndName(ctx context.Context, projectID uuid.UUID, name string) (*Task, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Task, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	Save(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
