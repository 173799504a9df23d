package resourcing

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResourceRepository persists resources
type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Resource, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Resource, error)
	FindByName(ctx context.Context, name string) (*Resource, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Resource, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, r *Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssignmentRepository persists assignments
type AssignmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Assignment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SumHoursByResource returns assigned hours keyed by resource ID.
	// Resources without assignments are absent from the map.
	SumHoursByResource(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error)
	Save(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
