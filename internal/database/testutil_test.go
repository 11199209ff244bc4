package database

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the full schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), ":memory:")
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

func (p *recordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// setupTestRepo returns a repository over a fresh database, its publisher
// and one board
func setupTestRepo(t *testing.T) (*Repository, *recordingPublisher, *models.Board) {
	t.Helper()
	pub := &recordingPublisher{}
	repo := NewRepository(setupTestDB(t), pub)

	board, err := repo.CreateBoard(context.Background(), "Team")
	require.NoError(t, err)
	return repo, pub, board
}

func createUser(t *testing.T, repo *Repository, id, name string) *models.User {
	t.Helper()
	u, err := repo.UpsertUser(context.Background(), models.User{ID: types.UserID(id), Name: name})
	require.NoError(t, err)
	return u
}

func createTask(t *testing.T, repo *Repository, boardID types.BoardID, title string) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), boardID, models.NewTask{Title: title})
	require.NoError(t, err)
	return task
}

func findTask(tasks []*models.Task, id types.TaskID) *models.Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
