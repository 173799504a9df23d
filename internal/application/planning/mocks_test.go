package planning

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByCode(ctx context.Context, code string) (*planning.Project, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]planning.Project, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]planning.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]planning.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]planning.Project), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *planning.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]planning.Task, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]planning.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByProjectAndName(ctx context.Context, projectID uuid.UUID, name string) (*planning.Task, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]planning.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]planning.Task), args.Error(1)
}

func (m *MockTaskRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountByStatus(ctx context.Context) ([]planning.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]planning.StatusCount), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, t *planning.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByEmail(ctx context.Context, email string) (*workforce.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]workforce.Employee, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Employee, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]workforce.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByRole(ctx context.Context, role workforce.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, e *workforce.Employee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
