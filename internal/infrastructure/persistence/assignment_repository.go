package persistence

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const assignmentEntity = "assignment"

// GormAssignmentRepository implements resourcing.AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindByID finds an assignment by its ID
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*resourcing.Assignment, error) {
	var m models.AssignmentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, assignmentEntity)
	}
	return m.ToDomain(), nil
}

// FindAll finds all assignments matching the filter
func (r *GormAssignmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]resourcing.Assignment, error) {
	var rows []models.AssignmentModel
	query := applyEquals(r.db.WithContext(ctx).Model(&models.AssignmentModel{}), filter.Filters, "task_id", "resource_id")
	query = applyPaging(applySort(query, filter, AssignmentSortFields, "created_at"), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]resourcing.Assignment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Count counts assignments matching the filter
func (r *GormAssignmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := applyEquals(r.db.WithContext(ctx).Model(&models.AssignmentModel{}), filter.Filters, "task_id", "resource_id").
		Count(&count).Error
	return count, err
}

type hoursRow struct {
	ResourceID uuid.UUID
	Hours      decimal.Decimal
}

// SumHoursByResource totals assigned hours per resource in SQL
func (r *GormAssignmentRepository) SumHoursByResource(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []hoursRow
	err := r.db.WithContext(ctx).Model(&models.AssignmentModel{}).
		Select("resource_id, SUM(hours) AS hours").
		Group("resource_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.ResourceID] = row.Hours
	}
	return out, nil
}

// Save inserts or updates an assignment
func (r *GormAssignmentRepository) Save(ctx context.Context, a *resourcing.Assignment) error {
	return translateError(r.db.WithContext(ctx).Save(models.AssignmentModelFromDomain(a)).Error, assignmentEntity)
}

// Delete removes one assignment
func (r *GormAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AssignmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(assignmentEntity)
	}
	return nil
}

var _ resourcing.AssignmentRepository = (*GormAssignmentRepository)(nil)
