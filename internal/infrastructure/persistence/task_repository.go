package persistence

import (
	"context"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const taskEntity = "task"

// GormTaskRepository implements planning.TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by its ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.Task, error) {
	var m models.TaskModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, taskEntity)
	}
	return m.ToDomain(), nil
}

func (r *GormTaskRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]planning.Task, error) {
	if len(ids) == 0 {
		return []planning.Task{}, nil
	}
	var rows []models.TaskModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return tasksToDomain(rows), nil
}

// FindByProjectAndName is used by the seeder to stay idempotent
func (r *GormTaskRepository) FindByProjectAndName(ctx context.Context, projectID uuid.UUID, name string) (*planning.Task, error) {
	var m models.TaskModel
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND name = ?", projectID, strings.TrimSpace(name)).
		First(&m).Error
	if err != nil {
		return nil, translateError(err, taskEntity)
	}
	return m.ToDomain(), nil
}

// FindAll finds all tasks matching the filter
func (r *GormTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]planning.Task, error) {
	var rows []models.TaskModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TaskModel{}), filter)
	query = applyPaging(applySort(query, filter, TaskSortFields, "wbs"), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return tasksToDomain(rows), nil
}

// Count counts tasks matching the filter
func (r *GormTaskRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.TaskModel{}), filter).Count(&count).Error
	return count, err
}

// CountByStatus groups every task by its stored status
func (r *GormTaskRepository) CountByStatus(ctx context.Context) ([]planning.StatusCount, error) {
	var rows []planning.StatusCount
	err := r.db.WithContext(ctx).Model(&models.TaskModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Save inserts or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, t *planning.Task) error {
	return translateError(r.db.WithContext(ctx).Save(models.TaskModelFromDomain(t)).Error, taskEntity)
}

// Delete removes the task and its assignments
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.AssignmentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.TaskModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError(taskEntity)
		}
		return nil
	})
}

func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name", "wbs")
	return applyEquals(query, filter.Filters, "project_id", "owner_id", "status")
}

func tasksToDomain(rows []models.TaskModel) []planning.Task {
	out := make([]planning.Task, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ planning.TaskRepository = (*GormTaskRepository)(nil)
