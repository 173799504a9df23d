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

const projectEntity = "project"

// GormProjectRepository implements planning.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.Project, error) {
	var m models.ProjectModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, projectEntity)
	}
	return m.ToDomain(), nil
}

// FindByCode finds a project by its exact code
func (r *GormProjectRepository) FindByCode(ctx context.Context, code string) (*planning.Project, error) {
	var m models.ProjectModel
	if err := r.db.WithContext(ctx).Where("code = ?", strings.TrimSpace(code)).First(&m).Error; err != nil {
		return nil, translateError(err, projectEntity)
	}
	return m.ToDomain(), nil
}

func (r *GormProjectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]planning.Project, error) {
	if len(ids) == 0 {
		return []planning.Project{}, nil
	}
	var rows []models.ProjectModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return projectsToDomain(rows), nil
}

// FindAll finds all projects matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]planning.Project, error) {
	var rows []models.ProjectModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProjectModel{}), filter)
	query = applyPaging(applySort(query, filter, ProjectSortFields, "code"), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return projectsToDomain(rows), nil
}

// Count counts projects matching the filter
func (r *GormProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProjectModel{}), filter).Count(&count).Error
	return count, err
}

func (r *GormProjectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectModel{}).
		Where("code = ?", strings.TrimSpace(code)).
		Count(&count).Error
	return count > 0, err
}

// Save inserts or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *planning.Project) error {
	return translateError(r.db.WithContext(ctx).Save(models.ProjectModelFromDomain(p)).Error, projectEntity)
}

// Delete removes the project with its tasks and their assignments
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.TaskModel{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.AssignmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.TaskModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProjectModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError(projectEntity)
		}
		return nil
	})
}

func (r *GormProjectRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "code", "name", "client")
	return applyEquals(query, filter.Filters, "project_manager_id")
}

func projectsToDomain(rows []models.ProjectModel) []planning.Project {
	out := make([]planning.Project, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ planning.ProjectRepository = (*GormProjectRepository)(nil)
