package stock

import (
	"context"
	"testing"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMaterialService_Create(t *testing.T) {
	repo := new(MockMaterialRepository)
	svc := NewMaterialService(repo)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*stock.Material")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateMaterialRequest{
		Name:           "Steel Rods",
		Unit:           "ton",
		UnitCost:       decimal.NewFromInt(520),
		QuantityOnHand: decimal.NewFromInt(2),
		ReorderLevel:   decimal.NewFromInt(5),
	})

	require.NoError(t, err)
	assert.True(t, resp.IsActive, "materials are active unless stated otherwise")
	assert.True(t, resp.IsLowStock)
	repo.AssertExpectations(t)
}

func TestMaterialService_Create_Invalid(t *testing.T) {
	repo := new(MockMaterialRepository)
	svc := NewMaterialService(repo)

	_, err := svc.Create(context.Background(), CreateMaterialRequest{Name: "Sand", UnitCost: decimal.NewFromInt(-1)})

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMaterialService_UpdateDoesNotTouchQuantity(t *testing.T) {
	repo := new(MockMaterialRepository)
	svc := NewMaterialService(repo)
	cement := newCement(t)

	repo.On("FindByID", mock.Anything, cement.ID).Return(cement, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(m *stock.Material) bool {
		return m.QuantityOnHand.Equal(decimal.NewFromInt(120)) && m.UnitCost.Equal(decimal.NewFromInt(5))
	})).Return(nil)

	inactive := false
	resp, err := svc.Update(context.Background(), cement.ID, UpdateMaterialRequest{
		Name:         "Cement",
		Unit:         "bag",
		UnitCost:     decimal.NewFromInt(5),
		ReorderLevel: decimal.NewFromInt(50),
		IsActive:     &inactive,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	repo.AssertExpectations(t)
}

func TestMaterialService_List_DefaultsToNameOrder(t *testing.T) {
	repo := new(MockMaterialRepository)
	svc := NewMaterialService(repo)
	low := true

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "name" && f.OrderDir == "asc" && f.Filters["low_stock"] == true
	})).Return([]stock.Material{*newCement(t)}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	items, total, err := svc.List(context.Background(), MaterialListFilter{LowStock: &low})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestMaterialService_Delete_NotFound(t *testing.T) {
	repo := new(MockMaterialRepository)
	svc := NewMaterialService(repo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("material"))

	err := svc.Delete(context.Background(), id)

	assert.True(t, shared.IsNotFound(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestMaterialService_EnsureMaterial(t *testing.T) {
	repo := new(MockMaterialRepository)
	svc := NewMaterialService(repo)
	cement := newCement(t)

	repo.On("FindByName", mock.Anything, "Cement").Return(cement, nil).Once()
	m, created, err := svc.EnsureMaterial(context.Background(), stock.MaterialInput{Name: "Cement"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cement.ID, m.ID)

	repo.On("FindByName", mock.Anything, "Sand").Return(nil, shared.NewNotFoundError("material")).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	m, created, err = svc.EnsureMaterial(context.Background(), stock.MaterialInput{Name: "Sand", Unit: "m3"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, m.QuantityOnHand.IsZero())
}
