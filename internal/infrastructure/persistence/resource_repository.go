package persistence

import (
	"context"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const resourceEntity = "resource"

// GormResourceRepository implements resourcing.ResourceRepository using GORM
type GormResourceRepository struct {
	db *gorm.DB
}

// NewGormResourceRepository creates a new GormResourceRepository
func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

// FindByID finds a resource by its ID
func (r *GormResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resourcing.Resource, error) {
	var m models.ResourceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, resourceEntity)
	}
	return m.ToDomain(), nil
}

func (r *GormResourceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]resourcing.Resource, error) {
	if len(ids) == 0 {
		return []resourcing.Resource{}, nil
	}
	var rows []models.ResourceModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return resourcesToDomain(rows), nil
}

// FindByName returns the oldest resource with the given name
func (r *GormResourceRepository) FindByName(ctx context.Context, name string) (*resourcing.Resource, error) {
	var m models.ResourceModel
	err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		Order("created_at ASC").
		First(&m).Error
	if err != nil {
		return nil, translateError(err, resourceEntity)
	}
	return m.ToDomain(), nil
}

// FindAll finds all resources matching the filter
func (r *GormResourceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]resourcing.Resource, error) {
	var rows []models.ResourceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ResourceModel{}), filter)
	query = applyPaging(applySort(query, filter, ResourceSortFields, "name"), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return resourcesToDomain(rows), nil
}

// Count counts resources matching the filter
func (r *GormResourceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ResourceModel{}), filter).Count(&count).Error
	return count, err
}

// Save inserts or updates a resource
func (r *GormResourceRepository) Save(ctx context.Context, res *resourcing.Resource) error {
	return translateError(r.db.WithContext(ctx).Save(models.ResourceModelFromDomain(res)).Error, resourceEntity)
}

// Delete removes the resource and its assignments
func (r *GormResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).Delete(&models.AssignmentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ResourceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError(resourceEntity)
		}
		return nil
	})
}

func (r *GormResourceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name")
	return applyEquals(query, filter.Filters, "type", "is_active")
}

func resourcesToDomain(rows []models.ResourceModel) []resourcing.Resource {
	out := make([]resourcing.Resource, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ resourcing.ResourceRepository = (*GormResourceRepository)(nil)
