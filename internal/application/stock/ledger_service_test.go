package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decimalEq(want string) any {
	w := decimal.RequireFromString(want)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(w) })
}

func newCement(t *testing.T) *stock.Material {
	t.Helper()
	m, err := stock.NewMaterial(stock.MaterialInput{
		Name:         "Cement",
		Unit:         "bag",
		UnitCost:     decimal.RequireFromString("4.5"),
		ReorderLevel: decimal.NewFromInt(50),
		IsActive:     true,
	}, decimal.NewFromInt(120))
	require.NoError(t, err)
	return m
}

func setupLedger(t *testing.T) (*LedgerService, *MockMaterialRepository, *MockTransactionRepository, *countingMetrics) {
	t.Helper()
	materialRepo := new(MockMaterialRepository)
	txRepo := new(MockTransactionRepository)
	svc := NewLedgerService(txRepo, NewNoOpTransactionScope(materialRepo, txRepo), nil)
	metrics := &countingMetrics{}
	svc.SetMetrics(metrics)
	return svc, materialRepo, txRepo, metrics
}

func TestLedgerService_ApplyTransaction_Receive(t *testing.T) {
	svc, materialRepo, txRepo, metrics := setupLedger(t)
	cement := newCement(t)

	materialRepo.On("FindByID", mock.Anything, cement.ID).Return(cement, nil)
	txRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *stock.Transaction) bool {
		return tx.MaterialID == cement.ID && tx.Type == stock.TransactionTypeReceive && tx.Note == "delivery"
	})).Return(nil)
	materialRepo.On("AddQuantity", mock.Anything, cement.ID, decimalEq("30")).Return(decimal.NewFromInt(150), nil)

	result, err := svc.ApplyTransaction(context.Background(), ApplyTransactionRequest{
		MaterialID: cement.ID,
		Type:       "receive",
		Quantity:   decimal.NewFromInt(30),
		Date:       "2024-03-01",
		Note:       "delivery",
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(result.QuantityOnHand))
	assert.Equal(t, "2024-03-01", result.Transaction.Date)
	assert.Equal(t, 1, metrics.applied["receive"])
	materialRepo.AssertExpectations(t)
	txRepo.AssertExpectations(t)
}

func TestLedgerService_ApplyTransaction_ConsumeSubtracts(t *testing.T) {
	svc, materialRepo, txRepo, _ := setupLedger(t)
	cement := newCement(t)

	materialRepo.On("FindByID", mock.Anything, cement.ID).Return(cement, nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	materialRepo.On("AddQuantity", mock.Anything, cement.ID, decimalEq("-10")).Return(decimal.NewFromInt(110), nil)

	result, err := svc.ApplyTransaction(context.Background(), ApplyTransactionRequest{
		MaterialID: cement.ID,
		Type:       "consume",
		Quantity:   decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-10).Equal(result.Transaction.Delta))
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), result.Transaction.Date)
}

func TestLedgerService_ApplyTransaction_NegativeReceiveLowersStock(t *testing.T) {
	svc, materialRepo, txRepo, _ := setupLedger(t)
	cement := newCement(t)

	materialRepo.On("FindByID", mock.Anything, cement.ID).Return(cement, nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	materialRepo.On("AddQuantity", mock.Anything, cement.ID, decimalEq("-3")).Return(decimal.NewFromInt(117), nil)

	result, err := svc.ApplyTransaction(context.Background(), ApplyTransactionRequest{
		MaterialID: cement.ID,
		Type:       "receive",
		Quantity:   decimal.NewFromInt(-3),
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-3).Equal(result.Transaction.Delta))
	assert.True(t, decimal.NewFromInt(117).Equal(result.QuantityOnHand))
	materialRepo.AssertExpectations(t)
}

func TestLedgerService_ApplyTransaction_AdjustKeepsSign(t *testing.T) {
	svc, materialRepo, txRepo, _ := setupLedger(t)
	cement := newCement(t)

	materialRepo.On("FindByID", mock.Anything, cement.ID).Return(cement, nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	materialRepo.On("AddQuantity", mock.Anything, cement.ID, decimalEq("-2.5")).Return(decimal.RequireFromString("117.5"), nil)

	result, err := svc.ApplyTransaction(context.Background(), ApplyTransactionRequest{
		MaterialID: cement.ID,
		Type:       "adjust",
		Quantity:   decimal.RequireFromString("-2.5"),
		Note:       "stock count",
	})

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("117.5").Equal(result.QuantityOnHand))
}

func TestLedgerService_ApplyTransaction_Failures(t *testing.T) {
	cementID := uuid.New()

	tests := []struct {
		name     string
		found    bool
		req      ApplyTransactionRequest
		wantCode string
	}{
		{
			name:     "material not found",
			found:    false,
			req:      ApplyTransactionRequest{MaterialID: cementID, Type: "bogus", Quantity: decimal.Zero},
			wantCode: shared.CodeNotFound,
		},
		{
			name:     "invalid type checked before quantity",
			found:    true,
			req:      ApplyTransactionRequest{MaterialID: cementID, Type: "transfer", Quantity: decimal.Zero},
			wantCode: shared.CodeInvalidInput,
		},
		{
			name:     "zero quantity",
			found:    true,
			req:      ApplyTransactionRequest{MaterialID: cementID, Type: "adjust", Quantity: decimal.Zero},
			wantCode: shared.CodeInvalidInput,
		},
		{
			name:     "missing type on unknown material",
			found:    false,
			req:      ApplyTransactionRequest{MaterialID: cementID},
			wantCode: shared.CodeNotFound,
		},
		{
			name:     "missing type",
			found:    true,
			req:      ApplyTransactionRequest{MaterialID: cementID, Quantity: decimal.NewFromInt(1)},
			wantCode: shared.CodeInvalidInput,
		},
		{
			name:     "quantity finer than stored scale",
			found:    true,
			req:      ApplyTransactionRequest{MaterialID: cementID, Type: "consume", Quantity: decimal.RequireFromString("0.00001")},
			wantCode: shared.CodeInvalidInput,
		},
		{
			name:     "bad date",
			found:    true,
			req:      ApplyTransactionRequest{MaterialID: cementID, Type: "receive", Quantity: decimal.NewFromInt(1), Date: "03/01/2024"},
			wantCode: shared.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, materialRepo, txRepo, metrics := setupLedger(t)
			if tt.found {
				cement := newCement(t)
				cement.ID = cementID
				materialRepo.On("FindByID", mock.Anything, cementID).Return(cement, nil)
			} else {
				materialRepo.On("FindByID", mock.Anything, cementID).Return(nil, shared.NewNotFoundError("material"))
			}

			_, err := svc.ApplyTransaction(context.Background(), tt.req)

			var de *shared.DomainError
			require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
			assert.Equal(t, tt.wantCode, de.Code)
			txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			materialRepo.AssertNotCalled(t, "AddQuantity", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, metrics.applied)
		})
	}
}

func TestLedgerService_ApplyTransaction_InvalidTypeMessage(t *testing.T) {
	svc, materialRepo, _, _ := setupLedger(t)
	cement := newCement(t)
	materialRepo.On("FindByID", mock.Anything, cement.ID).Return(cement, nil)

	_, err := svc.ApplyTransaction(context.Background(), ApplyTransactionRequest{MaterialID: cement.ID, Type: "x", Quantity: decimal.NewFromInt(1)})
	assert.EqualError(t, err, "invalid transaction type")

	_, err = svc.ApplyTransaction(context.Background(), ApplyTransactionRequest{MaterialID: cement.ID, Type: "receive"})
	assert.EqualError(t, err, "quantity cannot be 0")
}

func TestLedgerService_ApplyTransaction_RepositoryErrorPropagates(t *testing.T) {
	svc, materialRepo, txRepo, metrics := setupLedger(t)
	cement := newCement(t)
	dbErr := errors.New("disk full")

	materialRepo.On("FindByID", mock.Anything, cement.ID).Return(cement, nil)
	txRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	materialRepo.On("AddQuantity", mock.Anything, cement.ID, mock.Anything).Return(decimal.Zero, dbErr)

	_, err := svc.ApplyTransaction(context.Background(), ApplyTransactionRequest{MaterialID: cement.ID, Type: "receive", Quantity: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, metrics.applied)
}

func TestLedgerService_ListTransactions(t *testing.T) {
	svc, _, txRepo, _ := setupLedger(t)
	materialID := uuid.New()
	entry, err := stock.NewTransaction(materialID, stock.TransactionTypeConsume, decimal.NewFromInt(10), time.Time{}, "")
	require.NoError(t, err)

	rows := []stock.TransactionWithMaterial{{Transaction: *entry, MaterialName: "Cement", MaterialUnit: "bag", UnitCost: decimal.NewFromInt(5)}}
	txRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["material_id"] == materialID && f.Filters["type"] == "consume"
	})).Return(rows, nil)
	txRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	list, total, err := svc.ListTransactions(context.Background(), TransactionListFilter{MaterialID: &materialID, Type: "consume"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Cement", list[0].MaterialName)
	assert.True(t, decimal.NewFromInt(-10).Equal(list[0].Delta))
}
