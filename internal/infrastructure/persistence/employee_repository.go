package persistence

import (
	"context"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const employeeEntity = "employee"

// GormEmployeeRepository implements workforce.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by its ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	var m models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, employeeEntity)
	}
	return m.ToDomain(), nil
}

// FindByEmail matches the email case-insensitively
func (r *GormEmployeeRepository) FindByEmail(ctx context.Context, email string) (*workforce.Employee, error) {
	var m models.EmployeeModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error
	if err != nil {
		return nil, translateError(err, employeeEntity)
	}
	return m.ToDomain(), nil
}

// FindByIDs returns the employees among ids that exist, in no particular order
func (r *GormEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]workforce.Employee, error) {
	if len(ids) == 0 {
		return []workforce.Employee{}, nil
	}
	var rows []models.EmployeeModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return employeesToDomain(rows), nil
}

// FindAll finds all employees matching the filter
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	var rows []models.EmployeeModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EmployeeModel{}), filter)
	query = applyPaging(applySort(query, filter, EmployeeSortFields, "name"), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return employeesToDomain(rows), nil
}

// Count counts employees matching the filter
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.EmployeeModel{}), filter).Count(&count).Error
	return count, err
}

func (r *GormEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *GormEmployeeRepository) ExistsByRole(ctx context.Context, role workforce.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Where("role = ?", role.String()).
		Count(&count).Error
	return count > 0, err
}

// Save inserts or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, e *workforce.Employee) error {
	return translateError(r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(e)).Error, employeeEntity)
}

// Delete removes the employee. Projects they manage and tasks they own
// are kept with the reference cleared.
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProjectModel{}).
			Where("project_manager_id = ?", id).
			Update("project_manager_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TaskModel{}).
			Where("owner_id = ?", id).
			Update("owner_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.EmployeeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFoundError(employeeEntity)
		}
		return nil
	})
}

func (r *GormEmployeeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search, "name", "email")
	return applyEquals(query, filter.Filters, "role")
}

func employeesToDomain(rows []models.EmployeeModel) []workforce.Employee {
	out := make([]workforce.Employee, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ workforce.EmployeeRepository = (*GormEmployeeRepository)(nil)
