package taskboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

// Same as TestTwoViewersConverge but over the local daemon: each viewer has
// its own socket client, as two terminals on one machine would.
func TestTwoViewersConverge_Daemon(t *testing.T) {
	ctx := context.Background()
	server, socketPath := testutil.SetupTestDaemon(t)

	db := testutil.SetupTestDB(t)
	seed := database.NewRepository(db, nil)
	boardID := testutil.CreateTestBoard(t, seed, "Team")
	taskID := testutil.CreateTestTask(t, seed, boardID, "Ship it")

	start := func(viewer models.Assignee) (*taskboard.Service, *database.Repository) {
		client := testutil.SetupTestClient(t, socketPath)
		repo := database.NewRepository(db, client)
		s := taskboard.New(repo, boardID, viewer,
			taskboard.WithFeed(client),
			taskboard.WithDebounce(20*time.Millisecond),
			taskboard.WithPersistTimeout(2*time.Second))
		require.NoError(t, s.Start(ctx))
		t.Cleanup(func() { _ = s.Close() })
		return s, repo
	}
	alice, _ := start(models.Assignee{UserID: "alice", Name: "Alice"})
	bob, _ := start(models.Assignee{UserID: "bob", Name: "Bob"})

	if !testutil.WaitForClientCount(t, server, 2, 2*time.Second) {
		testutil.LogServerState(t, server, "clients missing")
		t.Fatal("both clients should be connected")
	}

	p, err := bob.MoveTask(ctx, taskID, models.LaneMyTasks)
	require.NoError(t, err)
	require.NoError(t, p.Wait(ctx))

	ok := testutil.WaitForCondition(t, func() bool {
		got, err := alice.Task(taskID)
		return err == nil && got.HasAssignee("bob")
	}, 3*time.Second, "alice sees bob's claim")
	require.True(t, ok)
	assert.Len(t, alice.Lanes().Backlog, 1)
	assert.Empty(t, alice.Lanes().MyTasks)
	t.Logf("✓ change crossed the daemon")
}
