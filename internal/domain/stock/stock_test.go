package stock

import (
	"errors"
	"testing"
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedDelta(t *testing.T) {
	ten := decimal.NewFromInt(10)

	assert.True(t, ten.Equal(SignedDelta(TransactionTypeReceive, ten)))
	assert.True(t, ten.Neg().Equal(SignedDelta(TransactionTypeConsume, ten)))
	assert.True(t, ten.Neg().Equal(SignedDelta(TransactionTypeAdjust, ten.Neg())))
	assert.True(t, ten.Equal(SignedDelta(TransactionTypeAdjust, ten)))

	// signs pass through for every type
	assert.True(t, ten.Neg().Equal(SignedDelta(TransactionTypeReceive, ten.Neg())))
	assert.True(t, ten.Equal(SignedDelta(TransactionTypeConsume, ten.Neg())))
}

func TestParseTransactionType(t *testing.T) {
	tt, err := ParseTransactionType(" Receive ")
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeReceive, tt)

	_, err = ParseTransactionType("transfer")
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestNewTransaction(t *testing.T) {
	materialID := uuid.New()

	t.Run("defaults date to today", func(t *testing.T) {
		tx, err := NewTransaction(materialID, TransactionTypeReceive, decimal.NewFromInt(5), time.Time{}, " delivery ")
		require.NoError(t, err)
		assert.Equal(t, TruncateToDate(time.Now()), tx.Date)
		assert.Equal(t, "delivery", tx.Note)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewTransaction(materialID, TransactionTypeAdjust, decimal.Zero, time.Time{}, "")
		assert.ErrorIs(t, err, ErrZeroQuantity)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewTransaction(materialID, TransactionType("gift"), decimal.NewFromInt(1), time.Time{}, "")
		assert.ErrorIs(t, err, ErrInvalidTransactionType)
	})

	t.Run("negative quantities keep their sign", func(t *testing.T) {
		tx, err := NewTransaction(materialID, TransactionTypeReceive, decimal.NewFromInt(-3), time.Time{}, "returned")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-3).Equal(tx.Delta()))

		tx, err = NewTransaction(materialID, TransactionTypeConsume, decimal.NewFromInt(-3), time.Time{}, "")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(3).Equal(tx.Delta()))

		tx, err = NewTransaction(materialID, TransactionTypeAdjust, decimal.NewFromInt(-3), time.Time{}, "count")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-3).Equal(tx.Delta()))
	})

	t.Run("rejects quantities finer than the stored scale", func(t *testing.T) {
		_, err := NewTransaction(materialID, TransactionTypeReceive, decimal.RequireFromString("0.00001"), time.Time{}, "")
		assert.ErrorIs(t, err, ErrQuantityPrecision)

		tx, err := NewTransaction(materialID, TransactionTypeReceive, decimal.RequireFromString("0.0001"), time.Time{}, "")
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("0.0001").Equal(tx.Quantity))
	})
}

func TestMaterial_LowStock(t *testing.T) {
	steel, err := NewMaterial(MaterialInput{Name: "Steel Rods", Unit: "ton", UnitCost: decimal.NewFromInt(520), ReorderLevel: decimal.NewFromInt(5), IsActive: true}, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, steel.IsLowStock())

	cement, err := NewMaterial(MaterialInput{Name: "Cement", UnitCost: decimal.RequireFromString("4.5"), ReorderLevel: decimal.NewFromInt(50)}, decimal.NewFromInt(120))
	require.NoError(t, err)
	assert.False(t, cement.IsLowStock())
	assert.Equal(t, DefaultUnit, cement.Unit)

	atLevel, err := NewMaterial(MaterialInput{Name: "Sand", ReorderLevel: decimal.NewFromInt(5)}, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, atLevel.IsLowStock())
}

func TestMaterial_UpdateKeepsQuantity(t *testing.T) {
	m, err := NewMaterial(MaterialInput{Name: "Cement"}, decimal.NewFromInt(120))
	require.NoError(t, err)

	require.NoError(t, m.Update(MaterialInput{Name: "Cement 50kg", Unit: "bag", UnitCost: decimal.NewFromInt(5)}))
	assert.True(t, decimal.NewFromInt(120).Equal(m.QuantityOnHand))

	assert.Error(t, m.Update(MaterialInput{Name: "Cement", UnitCost: decimal.NewFromInt(-1)}))
}
