// Package history records the outcome of every dispatched box action.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/boxbuddy/boxbuddy/internal/model"
)

// Entry is one dispatched action and its result
type Entry struct {
	ID         string
	Action     model.Action
	Box        string
	Success    bool
	Detail     string // failure detail, empty on success
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the action took
func (e Entry) Duration() time.Duration {
	if e.FinishedAt.Before(e.StartedAt) {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}

// Recorder is a destination for history entries.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Store is a Recorder that can also read entries back
type Store interface {
	Recorder
	// List returns up to limit entries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// NewEntry starts an entry for the given action. IDs are time ordered.
func NewEntry(action model.Action, box string, startedAt time.Time) Entry {
	return Entry{
		ID:        newID(),
		Action:    action,
		Box:       box,
		StartedAt: startedAt,
	}
}

// Finish stamps the result onto the entry
func (e Entry) Finish(err error, finishedAt time.Time) Entry {
	e.FinishedAt = finishedAt
	e.Success = err == nil
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
