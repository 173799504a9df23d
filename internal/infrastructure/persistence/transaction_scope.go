package persistence

import (
	"context"

	appstock "github.com/Swarup9437/pm-tool/internal/application/stock"
	"github.com/Swarup9437/pm-tool/internal/domain/stock"
	"gorm.io/gorm"
)

// GormTransactionScope implements the stock TransactionScope with a GORM
// transaction. fn's error or panic rolls back; a nil return commits.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn with repositories bound to one transaction.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) MaterialRepo() stock.MaterialRepository {
	return NewGormMaterialRepository(r.tx)
}

func (r *gormTransactionalRepositories) TransactionRepo() stock.TransactionRepository {
	return NewGormMaterialTransactionRepository(r.tx)
}

var (
	_ appstock.TransactionScope          = (*GormTransactionScope)(nil)
	_ appstock.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
