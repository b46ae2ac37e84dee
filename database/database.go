package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `CREATE TABLE IF NOT EXISTS decisions (
	id UUID PRIMARY KEY,
	user_id TEXT NOT NULL,
	requested_at TIMESTAMP NOT NULL,
	accepted BOOLEAN NOT NULL,
	status_message TEXT,
	decided_at TIMESTAMPTZ NOT NULL
)`

const index = `CREATE INDEX IF NOT EXISTS decisions_user_id_idx ON decisions (user_id, decided_at)`

func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxIdleConns(5)

	return db, nil
}

// Migrate creates the audit tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{schema, index} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
