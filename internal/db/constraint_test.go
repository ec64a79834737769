package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestEnsureBookingConstraint(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE OR REPLACE FUNCTION hm_minutes`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`appointments_no_overlap`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureBookingConstraint(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureBookingConstraint_ReportsFailure(t *testing.T) {
	db, mock := newMockDB(t)

	denied := errors.New("permission denied to create extension")
	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).WillReturnError(denied)

	err := EnsureBookingConstraint(db)
	require.Error(t, err)
	assert.ErrorIs(t, err, denied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
