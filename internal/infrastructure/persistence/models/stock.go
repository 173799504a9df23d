package models

import (
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuantityScale matches the decimal(18,4) quantity columns
const QuantityScale = stock.QuantityScale

// MaterialModel is the persistence model for stock.Material
type MaterialModel struct {
	BaseModel
	Name           string          `gorm:"type:varchar(200);not null;index"`
	Unit           string          `gorm:"type:varchar(50);not null;default:'unit'"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	QuantityOnHand decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive       bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MaterialModel) TableName() string {
	return "materials"
}

func (m *MaterialModel) ToDomain() *stock.Material {
	return &stock.Material{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		Unit:           m.Unit,
		UnitCost:       m.UnitCost,
		QuantityOnHand: m.QuantityOnHand.Round(QuantityScale),
		ReorderLevel:   m.ReorderLevel,
		IsActive:       m.IsActive,
	}
}

func (m *MaterialModel) FromDomain(mat *stock.Material) {
	m.FromDomainBaseEntity(mat.BaseEntity)
	m.Name = mat.Name
	m.Unit = mat.Unit
	m.UnitCost = mat.UnitCost
	m.QuantityOnHand = mat.QuantityOnHand
	m.ReorderLevel = mat.ReorderLevel
	m.IsActive = mat.IsActive
}

func MaterialModelFromDomain(mat *stock.Material) *MaterialModel {
	m := &MaterialModel{}
	m.FromDomain(mat)
	return m
}

// MaterialTransactionModel is the persistence model for stock.Transaction.
// Rows are inserted once and never updated.
type MaterialTransactionModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type       string          `gorm:"type:varchar(20);not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Date       time.Time       `gorm:"column:tx_date;type:date;not null"`
	Note       string          `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MaterialTransactionModel) TableName() string {
	return "material_transactions"
}

func (m *MaterialTransactionModel) ToDomain() *stock.Transaction {
	return &stock.Transaction{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Type:       stock.TransactionType(m.Type),
		Quantity:   m.Quantity,
		Date:       stock.TruncateToDate(m.Date),
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
	}
}

func MaterialTransactionModelFromDomain(t *stock.Transaction) *MaterialTransactionModel {
	return &MaterialTransactionModel{
		ID:         t.ID,
		MaterialID: t.MaterialID,
		Type:       string(t.Type),
		Quantity:   t.Quantity,
		Date:       t.Date,
		Note:       t.Note,
		CreatedAt:  t.CreatedAt,
	}
}
