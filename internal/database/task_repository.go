package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ============================================================================
// Task Operations
// ============================================================================

// TaskRepo handles task rows and the board snapshot query
type TaskRepo struct {
	db  *sql.DB
	pub events.Publisher
}

const taskColumns = `
	t.id, t.board_id, t.title, t.description, t.status,
	t.due_date, t.completed_at, t.created_at,
	c.id, c.name, c.color`

const taskFrom = `
	FROM tasks t
	LEFT JOIN categories c ON c.id = t.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		id, boardID, status      string
		dueDate, completedAt     sql.NullTime
		catID, catName, catColor sql.NullString
	)
	t := &models.Task{}
	if err := row.Scan(
		&id, &boardID, &t.Title, &t.Description, &status,
		&dueDate, &completedAt, &t.CreatedAt,
		&catID, &catName, &catColor,
	); err != nil {
		return nil, err
	}

	t.ID = types.TaskID(id)
	t.BoardID = types.BoardID(boardID)
	t.Status = models.Status(status)
	t.DueDate = nullTimeToPtr(dueDate)
	t.CompletedAt = nullTimeToPtr(completedAt)
	if catID.Valid {
		t.Category = &models.Category{
			ID:    types.CategoryID(catID.String),
			Name:  catName.String,
			Color: catColor.String,
		}
	}
	return t, nil
}

// ListByBoard returns the authoritative snapshot of a board: every task with
// its category and assignees, read in one transaction. Assignments whose user
// row is missing become placeholders, and each task is normalized so it
// satisfies the entity invariants.
func (r *TaskRepo) ListByBoard(ctx context.Context, boardID types.BoardID) ([]*models.Task, error) {
	var tasks []*models.Task

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM boards WHERE id = ?", string(boardID)).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
		}
		if err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx,
			`SELECT `+taskColumns+taskFrom+`
			 WHERE t.board_id = ?
			 ORDER BY t.created_at DESC, t.id`,
			string(boardID),
		)
		if err != nil {
			return err
		}
		byID := make(map[types.TaskID]*models.Task)
		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				rows.Close()
				return err
			}
			tasks = append(tasks, t)
			byID[t.ID] = t
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		arows, err := tx.QueryContext(ctx,
			`SELECT a.task_id, a.user_id, u.name, u.avatar_url
			 FROM assignments a
			 JOIN tasks t ON t.id = a.task_id
			 LEFT JOIN users u ON u.id = a.user_id
			 WHERE t.board_id = ?
			 ORDER BY a.created_at, a.rowid`,
			string(boardID),
		)
		if err != nil {
			return err
		}
		defer arows.Close()

		for arows.Next() {
			var taskID, userID string
			var name, avatar sql.NullString
			if err := arows.Scan(&taskID, &userID, &name, &avatar); err != nil {
				return err
			}
			t, ok := byID[types.TaskID(taskID)]
			if !ok {
				continue
			}
			t.Assignees = append(t.Assignees, assignee(types.UserID(userID), name, avatar))
		}
		return arows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks of board %s: %w", boardID, err)
	}

	for _, t := range tasks {
		models.Normalize(t)
	}
	return tasks, nil
}

// GetByID loads one task with its category and assignees
func (r *TaskRepo) GetByID(ctx context.Context, id types.TaskID) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+taskFrom+` WHERE t.id = ?`, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT a.user_id, u.name, u.avatar_url
		 FROM assignments a
		 LEFT JOIN users u ON u.id = a.user_id
		 WHERE a.task_id = ?
		 ORDER BY a.created_at, a.rowid`,
		string(id),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignees of task %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var name, avatar sql.NullString
		if err := rows.Scan(&userID, &name, &avatar); err != nil {
			return nil, err
		}
		t.Assignees = append(t.Assignees, assignee(types.UserID(userID), name, avatar))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return models.Normalize(t), nil
}

func assignee(id types.UserID, name, avatar sql.NullString) models.Assignee {
	if !name.Valid {
		return models.UnknownAssignee(id)
	}
	return models.Assignee{UserID: id, Name: name.String, AvatarURL: avatar.String}
}

// Create inserts a new backlog task with no assignees
func (r *TaskRepo) Create(ctx context.Context, boardID types.BoardID, nt models.NewTask) (*models.Task, error) {
	t := &models.Task{
		ID:          nt.ID,
		BoardID:     boardID,
		Title:       strings.TrimSpace(nt.Title),
		Description: nt.Description,
		Status:      models.StatusBacklog,
		DueDate:     nt.DueDate,
		CreatedAt:   time.Now().UTC(),
	}
	if t.ID.IsZero() {
		t.ID = types.NewTaskID()
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM boards WHERE id = ?", string(boardID)).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
		}
		if err != nil {
			return err
		}

		if nt.Category != nil && nt.Category.ID != "" {
			cat, err := lookupCategory(ctx, tx, boardID, nt.Category.ID)
			if err != nil {
				return err
			}
			t.Category = cat
		}

		var catID string
		if t.Category != nil {
			catID = string(t.Category.ID)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tasks (id, board_id, title, description, status, due_date, category_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			string(t.ID), string(boardID), t.Title, t.Description, string(t.Status),
			nullTime(t.DueDate), nullString(catID), t.CreatedAt,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	sendEvent(r.pub, boardID, t.ID, events.ScopeTasks)
	return t, nil
}

// UpdateFields writes the set fields of a partial update.
// Returns models.ErrTaskNotFound when the task row is gone.
func (r *TaskRepo) UpdateFields(ctx context.Context, id types.TaskID, fields models.TaskFields) error {
	if fields.IsEmpty() {
		return nil
	}
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			return models.ErrEmptyTitle
		}
		if len(title) > models.MaxTitleLength {
			return models.ErrTitleTooLong
		}
		fields.Title = &title
	}
	if fields.Status != nil && !fields.Status.Valid() {
		return models.ErrInvalidStatus
	}

	var boardID types.BoardID
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		boardID, err = boardOfTask(ctx, tx, id)
		if err != nil {
			return err
		}

		var sets []string
		var args []any
		set := func(column string, value any) {
			sets = append(sets, column+" = ?")
			args = append(args, value)
		}

		if fields.Title != nil {
			set("title", *fields.Title)
		}
		if fields.Description != nil {
			set("description", *fields.Description)
		}
		if fields.Status != nil {
			set("status", string(*fields.Status))
		}
		if fields.CompletedAt.Set {
			set("completed_at", nullTime(fields.CompletedAt.Time))
		}
		if fields.DueDate.Set {
			set("due_date", nullTime(fields.DueDate.Time))
		}
		if fields.Category != nil {
			if fields.Category.ID == "" {
				set("category_id", nil)
			} else {
				if _, err := lookupCategory(ctx, tx, boardID, fields.Category.ID); err != nil {
					return err
				}
				set("category_id", string(fields.Category.ID))
			}
		}

		args = append(args, string(id))
		result, err := tx.ExecContext(ctx,
			"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, err)
	}

	sendEvent(r.pub, boardID, id, events.ScopeTasks)
	return nil
}

// Delete removes a task; its assignments go with it
func (r *TaskRepo) Delete(ctx context.Context, id types.TaskID) error {
	var boardID types.BoardID
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		boardID, err = boardOfTask(ctx, tx, id)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", string(id))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}

	sendEvent(r.pub, boardID, id, events.ScopeTasks)
	return nil
}

func lookupCategory(ctx context.Context, tx *sql.Tx, boardID types.BoardID, id types.CategoryID) (*models.Category, error) {
	cat := &models.Category{ID: id}
	err := tx.QueryRowContext(ctx,
		`SELECT name, color FROM categories WHERE id = ? AND board_id = ?`,
		string(id), string(boardID),
	).Scan(&cat.Name, &cat.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}
