package resourcing

import (
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Assignment allocates hours of a resource to a task
type Assignment struct {
	shared.BaseEntity
	TaskID     uuid.UUID
	ResourceID uuid.UUID
	Hours      decimal.Decimal
}

// NewAssignment creates an assignment
func NewAssignment(taskID, resourceID uuid.UUID, hours decimal.Decimal) (*Assignment, error) {
	if taskID == uuid.Nil {
		return nil, shared.NewValidationError("task is required")
	}
	if resourceID == uuid.Nil {
		return nil, shared.NewValidationError("resource is required")
	}
	if hours.IsNegative() {
		return nil, shared.NewValidationError("hours must be >= 0")
	}
	return &Assignment{
		BaseEntity: shared.NewBaseEntity(),
		TaskID:     taskID,
		ResourceID: resourceID,
		Hours:      hours,
	}, nil
}
