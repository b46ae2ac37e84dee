package database_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"scheduling-service/database"
)

func TestMigrate(t *testing.T) {
	t.Run("creates table and index", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		dbMock.ExpectExec(`CREATE TABLE IF NOT EXISTS decisions`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbMock.ExpectExec(`CREATE INDEX IF NOT EXISTS decisions_user_id_idx`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, database.Migrate(t.Context(), db))
		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("stops on first failure", func(t *testing.T) {
		db, dbMock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		dbMock.ExpectExec(`CREATE TABLE IF NOT EXISTS decisions`).
			WillReturnError(errors.New("permission denied"))

		err = database.Migrate(t.Context(), db)
		require.ErrorContains(t, err, "permission denied")
		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}
