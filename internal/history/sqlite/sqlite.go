// Package sqlite stores action history in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/boxbuddy/boxbuddy/internal/history"
	"github.com/boxbuddy/boxbuddy/internal/model"
)

// Store keeps action history in a SQLite database
type Store struct {
	db *sql.DB
}

var _ history.Store = (*Store)(nil)

// New opens or creates a history database.
// DSN format:
//   - "sqlite:///path/to/file.db"
//   - "/path/to/file.db" (without prefix)
//   - ":memory:" (in-memory database)
func New(dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("empty SQLite DSN")
	}

	if strings.HasPrefix(strings.ToLower(dsn), "sqlite://") {
		dsn = dsn[len("sqlite://"):]
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// Every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return store, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS action_history(
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		box TEXT NOT NULL,
		success INTEGER NOT NULL,
		detail TEXT,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);`
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

// Record implements history.Recorder
func (s *Store) Record(ctx context.Context, e history.Entry) error {
	success := 0
	if e.Success {
		success = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO action_history(id, action, box, success, detail, started_at, finished_at)
		VALUES(?, ?, ?, ?, ?, ?, ?);`,
		e.ID, e.Action.String(), e.Box, success, e.Detail,
		e.StartedAt.UnixNano(), e.FinishedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record %s for %s: %w", e.Action, e.Box, err)
	}
	return nil
}

// List implements history.Store
func (s *Store) List(ctx context.Context, limit int) ([]history.Entry, error) {
	query := `SELECT id, action, box, success, detail, started_at, finished_at
		FROM action_history ORDER BY started_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []history.Entry
	for rows.Next() {
		var (
			e                 history.Entry
			action            string
			success           int
			detail            sql.NullString
			started, finished int64
		)
		if err := rows.Scan(&e.ID, &action, &e.Box, &success, &detail, &started, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		parsed, ok := model.ParseAction(action)
		if !ok {
			return nil, fmt.Errorf("unknown action %q in history", action)
		}
		e.Action = parsed
		e.Success = success != 0
		e.Detail = detail.String
		e.StartedAt = time.Unix(0, started)
		e.FinishedAt = time.Unix(0, finished)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
