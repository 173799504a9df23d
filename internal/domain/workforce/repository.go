package workforce

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeRepository persists employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Employee, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRole(ctx context.Context, role Role) (bool, error)
	Save(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}
