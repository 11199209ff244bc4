package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/tui/state"
)

func setupModel(t *testing.T) *tui.Model {
	t.Helper()
	ctx := context.Background()
	repo := testutil.SetupTestRepo(t)
	boardID := testutil.CreateTestBoard(t, repo, "Release")
	testutil.CreateTestTask(t, repo, boardID, "Open work")
	mine := testutil.CreateTestTask(t, repo, boardID, "My work")
	testutil.ClaimTestTask(t, repo, mine, "alice", models.StatusInProgress)

	b, err := repo.GetBoard(ctx, boardID)
	require.NoError(t, err)

	hooks := tui.NewHooks()
	svc := taskboard.New(repo, boardID, models.Assignee{UserID: "alice", Name: "alice"}, hooks.Options()...)
	require.NoError(t, svc.Start(ctx))
	t.Cleanup(func() { _ = svc.Close() })

	m := tui.InitialModel(ctx, svc, b, nil, hooks, false)
	return &m
}

// ============================================================================
// BOARD
// ============================================================================

func TestView_Loading(t *testing.T) {
	m := setupModel(t)
	v := View(m)
	assert.True(t, v.AltScreen)
	assert.Equal(t, "Loading...", v.Content)
}

func TestView_Board(t *testing.T) {
	m := setupModel(t)
	m.UiState.SetWidth(120)
	m.UiState.SetHeight(30)

	out := View(m).Content
	for _, want := range []string{"Release", "Backlog (1)", "My Tasks (1)", "Done (0)", "Open work", "My work", "manual refresh"} {
		assert.Contains(t, out, want)
	}
	t.Logf("✓ board rendered all three lanes")

	t.Run("notification in header", func(t *testing.T) {
		m.NotificationState.Add(state.LevelError, "save failed")
		assert.Contains(t, View(m).Content, "save failed")
		m.NotificationState.Clear()
	})
}

// ============================================================================
// DIALOGS
// ============================================================================

func TestView_Dialogs(t *testing.T) {
	m := setupModel(t)
	m.UiState.SetWidth(120)
	m.UiState.SetHeight(40)

	t.Run("help", func(t *testing.T) {
		m.UiState.SetMode(state.HelpMode)
		assert.Contains(t, View(m).Content, "Keys")
	})

	t.Run("delete confirm", func(t *testing.T) {
		m.DeleteTarget = m.CurrentTask()
		m.UiState.SetMode(state.DeleteConfirmMode)
		assert.Contains(t, View(m).Content, "y to delete")
		assert.Nil(t, RenderDeleteConfirmLayer(&tui.Model{UiState: m.UiState}))
	})

	t.Run("add task", func(t *testing.T) {
		m.UiState.SetMode(state.AddTaskMode)
		assert.Contains(t, View(m).Content, "New task")
	})

	t.Run("detail", func(t *testing.T) {
		m.Detail.SetWidth(60)
		m.Detail.SetHeight(10)
		m.Detail.SetContent("Detail body")
		m.UiState.SetMode(state.DetailMode)
		assert.Contains(t, View(m).Content, "Detail body")
	})

	m.UiState.SetMode(state.NormalMode)
	assert.NotContains(t, View(m).Content, "New task")
}

