package stock

import (
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialResponse represents a material in API responses
type MaterialResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Unit           string          `json:"unit"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
	IsActive       bool            `json:"is_active"`
	IsLowStock     bool            `json:"is_low_stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToMaterialResponse converts a domain material
func ToMaterialResponse(m *stock.Material) MaterialResponse {
	return MaterialResponse{
		ID:             m.ID,
		Name:           m.Name,
		Unit:           m.Unit,
		UnitCost:       m.UnitCost,
		QuantityOnHand: m.QuantityOnHand,
		ReorderLevel:   m.ReorderLevel,
		IsActive:       m.IsActive,
		IsLowStock:     m.IsLowStock(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ToMaterialResponses converts a slice of materials
func ToMaterialResponses(materials []stock.Material) []MaterialResponse {
	out := make([]MaterialResponse, len(materials))
	for i := range materials {
		out[i] = ToMaterialResponse(&materials[i])
	}
	return out
}

// CreateMaterialRequest creates a material with an opening quantity
type CreateMaterialRequest struct {
	Name           string          `json:"name" binding:"required,max=200"`
	Unit           string          `json:"unit" binding:"max=50"`
	UnitCost       decimal.Decimal `json:"unit_cost" binding:"decimal_gte0"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	ReorderLevel   decimal.Decimal `json:"reorder_level" binding:"decimal_gte0"`
	IsActive       *bool           `json:"is_active"`
}

// UpdateMaterialRequest edits a material. Quantity on hand is deliberately absent.
type UpdateMaterialRequest struct {
	Name         string          `json:"name" binding:"required,max=200"`
	Unit         string          `json:"unit" binding:"max=50"`
	UnitCost     decimal.Decimal `json:"unit_cost" binding:"decimal_gte0"`
	ReorderLevel decimal.Decimal `json:"reorder_level" binding:"decimal_gte0"`
	IsActive     *bool           `json:"is_active"`
}

// MaterialListFilter represents filter options for the material list
type MaterialListFilter struct {
	Search   string `form:"search"`
	LowStock *bool  `form:"low_stock"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name created_at quantity_on_hand unit_cost"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ApplyTransactionRequest records a stock movement
type ApplyTransactionRequest struct {
	MaterialID uuid.UUID       `json:"material_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Date       string          `json:"date"` // YYYY-MM-DD, defaults to today
	Note       string          `json:"note" binding:"max=500"`
}

// TransactionResponse represents a ledger entry
type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	MaterialID   uuid.UUID       `json:"material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	MaterialUnit string          `json:"material_unit,omitempty"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Delta        decimal.Decimal `json:"delta"`
	Date         string          `json:"date"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToTransactionResponse converts a ledger entry
func ToTransactionResponse(tx *stock.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         tx.ID,
		MaterialID: tx.MaterialID,
		Type:       tx.Type.String(),
		Quantity:   tx.Quantity,
		Delta:      tx.Delta(),
		Date:       tx.Date.Format(time.DateOnly),
		Note:       tx.Note,
		CreatedAt:  tx.CreatedAt,
	}
}

// ToTransactionResponses converts joined ledger entries
func ToTransactionResponses(rows []stock.TransactionWithMaterial) []TransactionResponse {
	out := make([]TransactionResponse, len(rows))
	for i := range rows {
		r := ToTransactionResponse(&rows[i].Transaction)
		r.MaterialName = rows[i].MaterialName
		r.MaterialUnit = rows[i].MaterialUnit
		out[i] = r
	}
	return out
}

// ApplyTransactionResult is the outcome of a ledger write
type ApplyTransactionResult struct {
	Transaction    TransactionResponse `json:"transaction"`
	QuantityOnHand decimal.Decimal     `json:"quantity_on_hand"`
}

// TransactionListFilter represents filter options for the ledger list
type TransactionListFilter struct {
	MaterialID *uuid.UUID `form:"material_id"`
	Type       string     `form:"type" binding:"omitempty,oneof=receive consume adjust"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}
