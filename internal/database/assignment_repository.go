package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ============================================================================
// Assignment Operations
// ============================================================================

// AssignmentRepo handles the task/user join rows
type AssignmentRepo struct {
	db  *sql.DB
	pub events.Publisher
}

// Create assigns a user to a task. Assigning someone twice is a no-op.
// Returns models.ErrTaskNotFound when the task row is gone.
func (r *AssignmentRepo) Create(ctx context.Context, taskID types.TaskID, userID types.UserID) error {
	var (
		boardID types.BoardID
		changed bool
	)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		boardID, err = boardOfTask(ctx, tx, taskID)
		if err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO assignments (task_id, user_id, created_at) VALUES (?, ?, ?)`,
			string(taskID), string(userID), time.Now().UTC(),
		)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		changed = n > 0
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to assign %s to task %s: %w", userID, taskID, err)
	}

	if changed {
		sendEvent(r.pub, boardID, taskID, events.ScopeAssignments)
	}
	return nil
}

// Delete removes a user from a task. Removing an absent assignment is a no-op.
// Returns models.ErrTaskNotFound when the task row is gone.
func (r *AssignmentRepo) Delete(ctx context.Context, taskID types.TaskID, userID types.UserID) error {
	var (
		boardID types.BoardID
		changed bool
	)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		boardID, err = boardOfTask(ctx, tx, taskID)
		if err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`DELETE FROM assignments WHERE task_id = ? AND user_id = ?`,
			string(taskID), string(userID),
		)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		changed = n > 0
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to unassign %s from task %s: %w", userID, taskID, err)
	}

	if changed {
		sendEvent(r.pub, boardID, taskID, events.ScopeAssignments)
	}
	return nil
}
