package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// publishRetries bounds how long a write waits on a flaky feed
const publishRetries = 3

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// sendEvent publishes a change signal for a committed write.
// Errors are logged but not returned (fire-and-forget pattern).
func sendEvent(p events.Publisher, boardID types.BoardID, taskID types.TaskID, scope events.Scope) {
	if p == nil {
		return
	}
	if err := events.PublishWithRetry(p, events.Changed(boardID, taskID, scope), publishRetries); err != nil {
		log.Printf("failed to send %s event for board %s: %v", scope, boardID, err)
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// boardOfTask looks up the board a task belongs to.
// Returns models.ErrTaskNotFound when the row is gone.
func boardOfTask(ctx context.Context, q querier, taskID types.TaskID) (types.BoardID, error) {
	var boardID string
	err := q.QueryRowContext(ctx, "SELECT board_id FROM tasks WHERE id = ?", string(taskID)).Scan(&boardID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", models.ErrTaskNotFound, taskID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get board of task %s: %w", taskID, err)
	}
	return types.BoardID(boardID), nil
}

// nullTime converts an optional timestamp into a column value
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// nullTimeToPtr converts sql.NullTime to *time.Time.
// Returns nil if the value is not valid.
func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	v := nt.Time
	return &v
}

// nullString converts an optional id into a column value
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
