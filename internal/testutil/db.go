package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// SetupTestDB creates an in-memory database with the full schema.
// It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo creates a repository over a fresh in-memory database.
// Writes publish nothing.
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t), nil)
}

// CreateTestBoard creates a board and returns its ID
func CreateTestBoard(t *testing.T, repo *database.Repository, name string) types.BoardID {
	t.Helper()
	b, err := repo.CreateBoard(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}
	return b.ID
}

// CreateTestUser registers a user
func CreateTestUser(t *testing.T, repo *database.Repository, id types.UserID, name string) {
	t.Helper()
	if _, err := repo.UpsertUser(context.Background(), models.User{ID: id, Name: name}); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestTask creates a backlog task and returns its ID
func CreateTestTask(t *testing.T, repo *database.Repository, boardID types.BoardID, title string) types.TaskID {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), boardID, models.NewTask{Title: title})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task.ID
}

// ClaimTestTask assigns the user and sets the status, the way a completed
// move would have persisted it
func ClaimTestTask(t *testing.T, repo *database.Repository, taskID types.TaskID, userID types.UserID, status models.Status) {
	t.Helper()
	ctx := context.Background()

	if err := repo.CreateAssignment(ctx, taskID, userID); err != nil {
		t.Fatalf("Failed to assign test task: %v", err)
	}

	after := &models.Task{Status: status}
	if status == models.StatusDone {
		now := time.Now().UTC()
		after.CompletedAt = &now
	}
	if err := repo.UpdateTaskFields(ctx, taskID, models.StatusFields(after)); err != nil {
		t.Fatalf("Failed to set test task status: %v", err)
	}
}
