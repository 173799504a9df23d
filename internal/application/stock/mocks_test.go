package stock

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockMaterialRepository is a mock implementation of stock.MaterialRepository
type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindByName(ctx context.Context, name string) (*stock.Material, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.Material, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindLowStock(ctx context.Context, limit int) ([]stock.Material, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]stock.Material), args.Error(1)
}

func (m *MockMaterialRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaterialRepository) Save(ctx context.Context, material *stock.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialRepository) AddQuantity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of stock.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *stock.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]stock.TransactionWithMaterial, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]stock.TransactionWithMaterial), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) FindByType(ctx context.Context, txType stock.TransactionType) ([]stock.TransactionWithMaterial, error) {
	args := m.Called(ctx, txType)
	return args.Get(0).([]stock.TransactionWithMaterial), args.Error(1)
}

type countingMetrics struct {
	applied map[string]int
}

func (c *countingMetrics) LedgerTransactionApplied(txType string) {
	if c.applied == nil {
		c.applied = make(map[string]int)
	}
	c.applied[txType]++
}
