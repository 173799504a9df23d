package persistence

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Swarup9437/pm-tool/internal/domain/shared"
	"github.com/Swarup9437/pm-tool/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database backed by sqlmock with the postgres dialect
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return NewDatabaseFromGorm(gormDB, config.DriverPostgres), mock, mockDB
}

func TestNewDatabase_SQLiteFile(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "pm.db"),
	}
	db, err := NewDatabase(cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, config.DriverSQLite, db.Driver)
	require.NoError(t, db.AutoMigrate())
	require.NoError(t, db.Ping(context.Background()))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectPing()
	require.NoError(t, db.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, db.Ping(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_TransactionCommitAndRollback(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, db.Transaction(context.Background(), func(tx *gorm.DB) error { return nil }))

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := db.Transaction(context.Background(), func(tx *gorm.DB) error { return errors.New("abort") })
	assert.EqualError(t, err, "abort")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialRepository_AddQuantityIsRelative(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormMaterialRepository(db.DB)
	id := uuid.New()

	mock.ExpectExec(`UPDATE "materials" SET "quantity_on_hand"=quantity_on_hand \+ \$1,"updated_at"=\$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "quantity_on_hand" FROM "materials" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"quantity_on_hand"}).AddRow("130.5000"))

	qty, err := repo.AddQuantity(context.Background(), id, decimal.RequireFromString("10.5"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("130.5").Equal(qty))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil, "project"))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound, "project"), shared.ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey, "project"), shared.ErrAlreadyExists)
	assert.ErrorIs(t,
		translateError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_code" (SQLSTATE 23505)`), "project"),
		shared.ErrAlreadyExists)
	assert.ErrorIs(t,
		translateError(errors.New("UNIQUE constraint failed: employees.email"), "employee"),
		shared.ErrAlreadyExists)

	other := errors.New("disk full")
	assert.Equal(t, other, translateError(other, "project"))
}
