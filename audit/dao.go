package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Accessor reads and writes the decisions table.
type Accessor struct {
	db *sql.DB
}

func NewAccessor(db *sql.DB) *Accessor {
	return &Accessor{db: db}
}

func (a *Accessor) InsertDecision(ctx context.Context, d Decision) (Decision, error) {
	if err := d.Validate(); err != nil {
		return Decision{}, fmt.Errorf("validate: %w", err)
	}

	d.ID = uuid.New()
	if d.DecidedAt.IsZero() {
		d.DecidedAt = time.Now().UTC()
	}

	query := `INSERT INTO decisions (id, user_id, requested_at, accepted, status_message, decided_at) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := a.db.ExecContext(ctx, query, d.ID, d.UserID, d.RequestedAt, d.Accepted, d.StatusMessage, d.DecidedAt); err != nil {
		return Decision{}, fmt.Errorf("exec context: %w", err)
	}

	return d, nil
}

func (a *Accessor) GetDecisions(ctx context.Context, userID string) ([]Decision, error) {
	var decisions []Decision

	query := `SELECT id, user_id, requested_at, accepted, status_message, decided_at FROM decisions WHERE user_id = $1 ORDER BY decided_at`
	rows, err := a.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d Decision
		if err := rows.Scan(&d.ID, &d.UserID, &d.RequestedAt, &d.Accepted, &d.StatusMessage, &d.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		decisions = append(decisions, d)
	}

	return decisions, rows.Err()
}
