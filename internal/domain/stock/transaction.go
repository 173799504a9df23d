package stock

import (
	"strings"
	"time"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of stock movement
type TransactionType string

const (
	// TransactionTypeReceive adds stock
	TransactionTypeReceive TransactionType = "receive"
	// TransactionTypeConsume removes stock
	TransactionTypeConsume TransactionType = "consume"
	// TransactionTypeAdjust applies a signed correction supplied by the caller
	TransactionTypeAdjust TransactionType = "adjust"
)

// AllTransactionTypes lists transaction types in display order
var AllTransactionTypes = []TransactionType{
	TransactionTypeReceive,
	TransactionTypeConsume,
	TransactionTypeAdjust,
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeReceive, TransactionTypeConsume, TransactionTypeAdjust:
		return true
	}
	return false
}

// ParseTransactionType converts a raw string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidTransactionType
	}
	return t, nil
}

// Ledger validation errors
var (
	ErrInvalidTransactionType = shared.NewValidationError("invalid transaction type")
	ErrZeroQuantity           = shared.NewValidationError("quantity cannot be 0")
	ErrQuantityPrecision      = shared.NewValidationError("quantity has more than 4 decimal places")
)

// QuantityScale is the number of decimal places kept for stock quantities
const QuantityScale = 4

// SignedDelta returns the effect of a movement on quantity on hand.
// Consume negates the quantity; receive and adjust apply it as given, so a
// negative receive lowers stock.
func SignedDelta(t TransactionType, quantity decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeConsume {
		return quantity.Neg()
	}
	return quantity
}

// Transaction is an immutable ledger entry against one material
type Transaction struct {
	ID         uuid.UUID
	MaterialID uuid.UUID
	Type       TransactionType
	Quantity   decimal.Decimal
	Date       time.Time
	Note       string
	CreatedAt  time.Time
}

// NewTransaction validates and builds a ledger entry. A zero date means today.
func NewTransaction(materialID uuid.UUID, txType TransactionType, quantity decimal.Decimal, date time.Time, note string) (*Transaction, error) {
	if materialID == uuid.Nil {
		return nil, shared.NewValidationError("material is required")
	}
	if !txType.IsValid() {
		return nil, ErrInvalidTransactionType
	}
	if quantity.IsZero() {
		return nil, ErrZeroQuantity
	}
	if !quantity.Equal(quantity.Round(QuantityScale)) {
		return nil, ErrQuantityPrecision
	}
	now := time.Now()
	if date.IsZero() {
		date = now
	}
	return &Transaction{
		ID:         uuid.New(),
		MaterialID: materialID,
		Type:       txType,
		Quantity:   quantity,
		Date:       TruncateToDate(date),
		Note:       strings.TrimSpace(note),
		CreatedAt:  now,
	}, nil
}

// Delta returns the signed effect of this entry
func (t *Transaction) Delta() decimal.Decimal {
	return SignedDelta(t.Type, t.Quantity)
}

// TruncateToDate drops the time of day, keeping the UTC calendar date
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
