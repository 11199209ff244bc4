package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

func TestCreateAssignment_Idempotent(t *testing.T) {
	repo, pub, board := setupTestRepo(t)
	ctx := context.Background()

	createUser(t, repo, "alice", "Alice")
	task := createTask(t, repo, board.ID, "Claim me")
	pub.Reset()

	require.NoError(t, repo.CreateAssignment(ctx, task.ID, "alice"))
	require.NoError(t, repo.CreateAssignment(ctx, task.ID, "alice"))

	got, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Len(t, got.Assignees, 1, "a second claim must not duplicate the assignee")

	evs := pub.Events()
	require.Len(t, evs, 1, "only the write that changed something publishes")
	assert.Equal(t, events.ScopeAssignments, evs[0].Scope)
	assert.Equal(t, board.ID, evs[0].BoardID)
	t.Logf("✓ duplicate claim ignored")
}

func TestCreateAssignment_MissingTask(t *testing.T) {
	repo, pub, _ := setupTestRepo(t)

	err := repo.CreateAssignment(context.Background(), types.NewTaskID(), "alice")
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
	assert.Empty(t, pub.Events())
}

func TestDeleteAssignment(t *testing.T) {
	repo, pub, board := setupTestRepo(t)
	ctx := context.Background()

	task := createTask(t, repo, board.ID, "Unclaim me")
	require.NoError(t, repo.CreateAssignment(ctx, task.ID, "alice"))
	require.NoError(t, repo.CreateAssignment(ctx, task.ID, "bob"))
	pub.Reset()

	require.NoError(t, repo.DeleteAssignment(ctx, task.ID, "alice"))

	got, err := repo.GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignees, 1)
	assert.Equal(t, types.UserID("bob"), got.Assignees[0].UserID)

	// Absent assignment
	require.NoError(t, repo.DeleteAssignment(ctx, task.ID, "alice"))
	assert.Len(t, pub.Events(), 1)

	err = repo.DeleteAssignment(ctx, types.NewTaskID(), "bob")
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
}
