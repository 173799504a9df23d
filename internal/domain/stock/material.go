package stock

import (
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultUnit is used when a material is created without a unit
const DefaultUnit = "unit"

// Material is a stocked item. After creation its quantity on hand changes
// only through ledger transactions.
type Material struct {
	shared.BaseEntity
	Name           string
	Unit           string
	UnitCost       decimal.Decimal
	QuantityOnHand decimal.Decimal
	ReorderLevel   decimal.Decimal
	IsActive       bool
}

// MaterialInput carries the editable fields of a material
type MaterialInput struct {
	Name         string
	Unit         string
	UnitCost     decimal.Decimal
	ReorderLevel decimal.Decimal
	IsActive     bool
}

// NewMaterial creates a material with an opening quantity
func NewMaterial(in MaterialInput, openingQuantity decimal.Decimal) (*Material, error) {
	m := &Material{BaseEntity: shared.NewBaseEntity(), QuantityOnHand: openingQuantity}
	if err := m.Update(in); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the editable fields. Quantity on hand is not editable.
func (m *Material) Update(in MaterialInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("name is required")
	}
	if in.UnitCost.IsNegative() {
		return shared.NewValidationError("unit_cost must be >= 0")
	}
	if in.ReorderLevel.IsNegative() {
		return shared.NewValidationError("reorder_level must be >= 0")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = DefaultUnit
	}
	m.Name = name
	m.Unit = unit
	m.UnitCost = in.UnitCost
	m.ReorderLevel = in.ReorderLevel
	m.IsActive = in.IsActive
	m.Touch()
	return nil
}

// IsLowStock reports whether quantity on hand has fallen to the reorder level
func (m *Material) IsLowStock() bool {
	return m.QuantityOnHand.LessThanOrEqual(m.ReorderLevel)
}
