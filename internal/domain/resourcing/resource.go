package resourcing

import (
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ResourceType distinguishes people from machines
type ResourceType string

const (
	ResourceTypeLabor     ResourceType = "labor"
	ResourceTypeEquipment ResourceType = "equipment"
)

// AllResourceTypes lists resource types in display order
var AllResourceTypes = []ResourceType{ResourceTypeLabor, ResourceTypeEquipment}

// String returns the string representation of ResourceType
func (t ResourceType) String() string {
	return string(t)
}

// IsValid returns true if the type is known
func (t ResourceType) IsValid() bool {
	return t == ResourceTypeLabor || t == ResourceTypeEquipment
}

// DefaultCapacityHoursPerWeek is used when no capacity is given
var DefaultCapacityHoursPerWeek = decimal.NewFromInt(40)

// Resource is a crew or a piece of equipment that can be assigned to tasks
type Resource struct {
	shared.BaseEntity
	Name                 string
	Type                 ResourceType
	Rate                 decimal.Decimal
	CapacityHoursPerWeek decimal.Decimal
	IsActive             bool
}

// ResourceInput carries the editable fields of a resource
type ResourceInput struct {
	Name                 string
	Type                 ResourceType
	Rate                 decimal.Decimal
	CapacityHoursPerWeek *decimal.Decimal
	IsActive             bool
}

// NewResource creates a resource from validated input
func NewResource(in ResourceInput) (*Resource, error) {
	r := &Resource{BaseEntity: shared.NewBaseEntity()}
	if err := r.Update(in); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces the editable fields
func (r *Resource) Update(in ResourceInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if !in.Type.IsValid() {
		return shared.NewValidationError("type must be labor or equipment")
	}
	if in.Rate.IsNegative() {
		return shared.NewValidationError("rate must be >= 0")
	}
	capacity := DefaultCapacityHoursPerWeek
	if in.CapacityHoursPerWeek != nil {
		capacity = *in.CapacityHoursPerWeek
	}
	if capacity.IsNegative() {
		return shared.NewValidationError("capacity_hours_per_week must be >= 0")
	}
	r.Name = name
	r.Type = in.Type
	r.Rate = in.Rate
	r.CapacityHoursPerWeek = capacity
	r.IsActive = in.IsActive
	r.Touch()
	return nil
}
