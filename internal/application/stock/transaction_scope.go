package stock

import (
	"context"

	"github.com/Swarup9437/pm-tool/internal/domain/stock"
)

// TransactionScope provides transactional access to the ledger repositories.
// Every repository operation performed inside Execute is part of one database
// transaction, committed when fn returns nil and rolled back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to the current transaction.
type TransactionalRepositories interface {
	MaterialRepo() stock.MaterialRepository
	TransactionRepo() stock.TransactionRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// Used in tests where atomicity is not under test.
type NoOpTransactionScope struct {
	materialRepo    stock.MaterialRepository
	transactionRepo stock.TransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope.
func NewNoOpTransactionScope(materialRepo stock.MaterialRepository, transactionRepo stock.TransactionRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		materialRepo:    materialRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// MaterialRepo returns the material repository.
func (s *NoOpTransactionScope) MaterialRepo() stock.MaterialRepository {
	return s.materialRepo
}

// TransactionRepo returns the ledger repository.
func (s *NoOpTransactionScope) TransactionRepo() stock.TransactionRepository {
	return s.transactionRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
