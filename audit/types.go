package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDisabled = errors.New("audit log disabled")

// Decision is one scheduling outcome as recorded in the audit log.
type Decision struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"userId"`
	RequestedAt   time.Time `json:"requestedAt"`
	Accepted      bool      `json:"accepted"`
	StatusMessage *string   `json:"statusMessage"`
	DecidedAt     time.Time `json:"decidedAt"`
}

func (d *Decision) Validate() error {
	if d.UserID == "" {
		return errors.New("user ID is required")
	}
	if !d.Accepted && d.StatusMessage == nil {
		return errors.New("status message is required for rejected decisions")
	}
	return nil
}

// Recorder stores and reads back scheduling decisions.
type Recorder interface {
	InsertDecision(ctx context.Context, d Decision) (Decision, error)
	GetDecisions(ctx context.Context, userID string) ([]Decision, error)
}

// Nop is the Recorder used when no database is configured.
type Nop struct{}

func (Nop) InsertDecision(_ context.Context, d Decision) (Decision, error) {
	return d, nil
}

func (Nop) GetDecisions(context.Context, string) ([]Decision, error) {
	return nil, ErrDisabled
}
