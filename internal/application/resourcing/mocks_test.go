package resourcing

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/planning"
	"github.com/Swarup9437/pm-tool/internal/domain/resourcing"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resourcing.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resourcing.Resource), args.Error(1)
}

func (m *MockResourceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]resourcing.Resource, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]resourcing.Resource), args.Error(1)
}

func (m *MockResourceRepository) FindByName(ctx context.Context, name string) (*resourcing.Resource, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resourcing.Resource), args.Error(1)
}

func (m *MockResourceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]resourcing.Resource, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]resourcing.Resource), args.Error(1)
}

func (m *MockResourceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResourceRepository) Save(ctx context.Context, r *resourcing.Resource) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*resourcing.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resourcing.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]resourcing.Assignment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]resourcing.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) SumHoursByResource(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[uuid.UUID]decimal.Decimal), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, a *resourcing.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
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
