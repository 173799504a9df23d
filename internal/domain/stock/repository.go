package stock

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialRepository persists materials
type MaterialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Material, error)
	FindByName(ctx context.Context, name string) (*Material, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Material, error)
	// FindLowStock returns materials at or below their reorder level ordered by name
	FindLowStock(ctx context.Context, limit int) ([]Material, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, m *Material) error
	// AddQuantity applies delta relative to the stored value and returns the new quantity
	AddQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionWithMaterial is a ledger entry joined with its material's
// current name, unit and unit cost
type TransactionWithMaterial struct {
	Transaction
	MaterialName string
	MaterialUnit string
	UnitCost     decimal.Decimal
}

// TransactionRepository persists ledger entries. Entries are never updated.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	// FindAll returns entries newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]TransactionWithMaterial, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindByType returns every entry of the given type
	FindByType(ctx context.Context, txType TransactionType) ([]TransactionWithMaterial, error)
}
