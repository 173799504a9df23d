package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const materialEntity = "material"

// GormMaterialRepository implements stock.MaterialRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// FindByID finds a material by its ID
func (r *GormMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Material, error) {
	var m models.MaterialModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, materialEntity)
	}
	return m.ToDomain(), nil
}

// FindByName returns the oldest material with the given name
func (r *GormMaterialRepository) FindByName(ctx context.Context, name string) (*stock.Material, error) {
	var m models.MaterialModel
	err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		Order("created_at ASC").
		First(&m).Error
	if err != nil {
		return nil, translateError(err, materialEntity)
	}
	return m.ToDomain(), nil
}

// FindAll finds all materials matching the filter
func (r *GormMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.Material, error) {
	var rows []models.MaterialModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.MaterialModel{}), filter)
	query = applyPaging(applySort(query, filter, MaterialSortFields, "name"), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return materialsToDomain(rows), nil
}

// FindLowStock returns materials at or below their reorder level by name
func (r *GormMaterialRepository) FindLowStock(ctx context.Context, limit int) ([]stock.Material, error) {
	var rows []models.MaterialModel
	query := r.db.WithContext(ctx).
		Where("quantity_on_hand <= reorder_level").
		Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return materialsToDomain(rows), nil
}

// Count counts materials matching the filter
func (r *GormMaterialRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.MaterialModel{}), filter).Count(&count).Error
	return count, err
}

// Save inserts or updates a material. On update the stored quantity is
// left alone; it only moves through AddQuantity.
func (r *GormMaterialRepository) Save(ctx context.Context, mat *stock.Material) error {
	m := models.MaterialModelFromDomain(mat)
	db := r.db.WithContext(ctx)

	var exists int64
	if err := db.Model(&models.MaterialModel{}).Where("id = ?", m.ID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return translateError(db.Create(m).Error, materialEntity)
	}
	err := db.Model(&models.MaterialModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"name":          m.Name,
		"unit":          m.Unit,
		"unit_cost":     m.UnitCost,
		"reorder_level": m.ReorderLevel,
		"is_active":     m.IsActive,
		"updated_at":    m.UpdatedAt,
	}).Error
	return translateError(err, materialEntity)
}

// AddQuantity applies delta with a relative update and returns the new
// quantity on hand.
func (r *GormMaterialRepository) AddQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.MaterialModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity_on_hand": gorm.Expr("quantity_on_hand + ?", delta),
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, shared.NewNotFoundError(materialEntity)
	}

	var m models.MaterialModel
	if err := db.Select("quantity_on_hand").First(&m, "id = ?", id).Error; err != nil {
		return decimal.Zero, translateError(err, materialEntity)
	}
	return m.QuantityOnHand.Round(models.QuantityScale), nil
}

// Delete removes the material and its ledger entries
func (r *GormMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("material_id = ?", id).Delete(&models.MaterialTransactionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.MaterialModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError(materialEntity)
		}
		return nil
	})
}

func (r *GormMaterialRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name", "unit")
	if low, ok := filter.Filters["low_stock"].(bool); ok && low {
		query = query.Where("quantity_on_hand <= reorder_level")
	}
	return applyEquals(query, filter.Filters, "is_active")
}

func materialsToDomain(rows []models.MaterialModel) []stock.Material {
	out := make([]stock.Material, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ stock.MaterialRepository = (*GormMaterialRepository)(nil)
