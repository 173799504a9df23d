package persistence

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMaterialTransactionRepository implements stock.TransactionRepository
// using GORM. It only inserts and reads.
type GormMaterialTransactionRepository struct {
	db *gorm.DB
}

// NewGormMaterialTransactionRepository creates a new GormMaterialTransactionRepository
func NewGormMaterialTransactionRepository(db *gorm.DB) *GormMaterialTransactionRepository {
	return &GormMaterialTransactionRepository{db: db}
}

type transactionRow struct {
	models.MaterialTransactionModel
	MaterialName string
	MaterialUnit string
	UnitCost     decimal.Decimal
}

func (row *transactionRow) toDomain() stock.TransactionWithMaterial {
	return stock.TransactionWithMaterial{
		Transaction:  *row.MaterialTransactionModel.ToDomain(),
		MaterialName: row.MaterialName,
		MaterialUnit: row.MaterialUnit,
		UnitCost:     row.UnitCost,
	}
}

// Create appends a ledger entry
func (r *GormMaterialTransactionRepository) Create(ctx context.Context, tx *stock.Transaction) error {
	return translateError(
		r.db.WithContext(ctx).Create(models.MaterialTransactionModelFromDomain(tx)).Error,
		"material transaction",
	)
}

// FindAll returns entries newest first, joined with their material
func (r *GormMaterialTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.TransactionWithMaterial, error) {
	query := r.filtered(r.joined(ctx), filter).
		Order("t.tx_date DESC").
		Order("t.created_at DESC").
		Order("t.id ASC")
	return r.scan(applyPaging(query, filter))
}

// FindByType returns every entry of txType
func (r *GormMaterialTransactionRepository) FindByType(ctx context.Context, txType stock.TransactionType) ([]stock.TransactionWithMaterial, error) {
	query := r.joined(ctx).
		Where("t.type = ?", txType.String()).
		Order("t.tx_date ASC").
		Order("t.created_at ASC")
	return r.scan(query)
}

// Count counts entries matching the filter
func (r *GormMaterialTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Table(models.MaterialTransactionModel{}.TableName() + " AS t")
	err := r.filtered(query, filter).Count(&count).Error
	return count, err
}

func (r *GormMaterialTransactionRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table(models.MaterialTransactionModel{}.TableName() + " AS t").
		Select("t.*, m.name AS material_name, m.unit AS material_unit, m.unit_cost AS unit_cost").
		Joins("JOIN " + models.MaterialModel{}.TableName() + " m ON m.id = t.material_id")
}

func (r *GormMaterialTransactionRepository) filtered(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if v, ok := filter.Filters["material_id"]; ok {
		query = query.Where("t.material_id = ?", stringify(v))
	}
	if v, ok := filter.Filters["type"]; ok {
		query = query.Where("t.type = ?", stringify(v))
	}
	return query
}

func (r *GormMaterialTransactionRepository) scan(query *gorm.DB) ([]stock.TransactionWithMaterial, error) {
	var rows []transactionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]stock.TransactionWithMaterial, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

var _ stock.TransactionRepository = (*GormMaterialTransactionRepository)(nil)
