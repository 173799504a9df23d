package persistence

import (
	"errors"
	"strings"

	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver and gorm errors onto domain errors. entity
// names the table's subject in messages, e.g. "project".
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(entity)
	case isUniqueViolation(err):
		return shared.WrapDomainError(shared.CodeAlreadyExists, entity+" already exists", err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value")
}
