package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ============================================================================
// Color Validation Tests
// ============================================================================

func TestValidateColorHex_Valid(t *testing.T) {
	tests := []string{
		"#FF0000", // Red
		"#00FF00", // Green
		"#0000FF", // Blue
		"#FFFFFF", // White
		"#000000", // Black
		"#ff5733", // Lowercase
		"#AbCdEf", // Mixed case
	}

	for _, color := range tests {
		t.Run(color, func(t *testing.T) {
			assert.NoError(t, ValidateColorHex(color))
		})
	}
}

func TestValidateColorHex_Invalid(t *testing.T) {
	tests := []struct {
		color       string
		description string
	}{
		{"FF0000", "missing # prefix"},
		{"#FFF", "too short (3 chars)"},
		{"#FF00000", "too long (7 chars)"},
		{"#GGGGGG", "invalid hex characters"},
		{"#FF 000", "contains space"},
		{"", "empty string"},
		{"#", "only # symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			err := ValidateColorHex(tt.color)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

// ============================================================================
// Argument Parsing Tests
// ============================================================================

func TestParseLane(t *testing.T) {
	tests := []struct {
		in   string
		want models.Lane
	}{
		{"backlog", models.LaneBacklog},
		{"my-tasks", models.LaneMyTasks},
		{"mine", models.LaneMyTasks},
		{"In_Progress", models.LaneMyTasks},
		{" done ", models.LaneDone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLane(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLane("archive")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Contains(t, err.Error(), "archive")
}

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2026-03-14")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 14, d.Day())

	for _, clear := range []string{"", "none", "NONE"} {
		d, err := ParseDueDate(clear)
		assert.NoError(t, err)
		assert.Nil(t, d, "%q clears the due date", clear)
	}

	_, err = ParseDueDate("14/03/2026")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "7f1c2a9e", ShortID("7f1c2a9e-0d4b-4c55-9a1e-3b2f6d8e0c11"))
	assert.Equal(t, "abc", ShortID("abc"))
}

// ============================================================================
// Lookup Tests
// ============================================================================

func TestResolveBoard(t *testing.T) {
	ctx := context.Background()
	repo := testutil.SetupTestRepo(t)
	teamID := testutil.CreateTestBoard(t, repo, "Team")

	t.Run("by id", func(t *testing.T) {
		b, err := ResolveBoard(ctx, repo, string(teamID))
		require.NoError(t, err)
		assert.Equal(t, "Team", b.Name)
	})

	t.Run("by name ignoring case", func(t *testing.T) {
		b, err := ResolveBoard(ctx, repo, "team")
		require.NoError(t, err)
		assert.Equal(t, teamID, b.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ResolveBoard(ctx, repo, "nope")
		assert.ErrorIs(t, err, database.ErrBoardNotFound)
		assert.Equal(t, ExitNotFound, ExitCode(err))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ResolveBoard(ctx, repo, "  ")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		testutil.CreateTestBoard(t, repo, "Dup")
		testutil.CreateTestBoard(t, repo, "dup")
		_, err := ResolveBoard(ctx, repo, "Dup")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestResolveTask(t *testing.T) {
	ctx := context.Background()
	repo := testutil.SetupTestRepo(t)
	boardID := testutil.CreateTestBoard(t, repo, "Team")

	created, err := repo.CreateTask(ctx, boardID, models.NewTask{ID: "abcd1234-0000", Title: "First"})
	require.NoError(t, err)
	_, err = repo.CreateTask(ctx, boardID, models.NewTask{ID: "abcd9999-0000", Title: "Second"})
	require.NoError(t, err)

	t.Run("full id needs no board", func(t *testing.T) {
		got, err := ResolveTask(ctx, repo, "", string(created.ID))
		require.NoError(t, err)
		assert.Equal(t, "First", got.Title)
	})

	t.Run("prefix needs a board", func(t *testing.T) {
		_, err := ResolveTask(ctx, repo, "", "abcd1")
		assert.ErrorIs(t, err, models.ErrTaskNotFound)

		got, err := ResolveTask(ctx, repo, "Team", "abcd1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		_, err := ResolveTask(ctx, repo, "Team", "abcd")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("short prefix", func(t *testing.T) {
		_, err := ResolveTask(ctx, repo, "Team", "ab")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := ResolveTask(ctx, repo, "Team", "ffff")
		assert.ErrorIs(t, err, models.ErrTaskNotFound)
	})
}

func TestResolveCategory(t *testing.T) {
	ctx := context.Background()
	repo := testutil.SetupTestRepo(t)
	boardID := testutil.CreateTestBoard(t, repo, "Team")

	bug, err := repo.CreateCategory(ctx, boardID, "Bug", "#FF0000")
	require.NoError(t, err)

	got, err := ResolveCategory(ctx, repo, boardID, "bug")
	require.NoError(t, err)
	assert.Equal(t, bug.ID, got.ID)

	got, err = ResolveCategory(ctx, repo, boardID, string(bug.ID))
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", got.Color)

	_, err = ResolveCategory(ctx, repo, boardID, "feature")
	assert.ErrorIs(t, err, database.ErrCategoryNotFound)
}

// ============================================================================
// CLI Wiring Tests
// ============================================================================

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	cfg := config.Default()
	cfg.Feed = config.FeedNone
	a, err := app.New(context.Background(), cfg,
		app.WithDB(testutil.SetupTestDB(t)),
		app.WithFeed(nil),
		app.WithViewer("tester"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return &CLI{App: a, ctx: context.Background()}
}

func TestGetCLIFromContext_UsesCarriedApp(t *testing.T) {
	c := newTestCLI(t)
	ctx := ContextWithApp(context.Background(), c.App)

	got, err := GetCLIFromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, c.App, got.App)

	// Closing a borrowed app is a no-op
	require.NoError(t, got.Close())
	_, err = got.App.Repo().ListBoards(ctx)
	assert.NoError(t, err)
}

func TestLoadBoard_SettlesMutation(t *testing.T) {
	ctx := context.Background()
	c := newTestCLI(t)
	repo := c.App.Repo()
	boardID := testutil.CreateTestBoard(t, repo, "Team")
	taskID := testutil.CreateTestTask(t, repo, boardID, "Claim me")

	s, err := c.LoadBoard(ctx, boardID)
	require.NoError(t, err)
	assert.Len(t, s.Lanes().Backlog, 1, "loaded without being started")

	p, err := s.MoveTask(ctx, taskID, models.LaneMyTasks)
	require.NoError(t, Settle(ctx, p, err))
	require.NoError(t, s.Close())

	stored, err := repo.GetTask(ctx, taskID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, stored.Status)
	assert.True(t, stored.HasAssignee("tester"))

	_, err = c.LoadBoard(ctx, types.BoardID("missing"))
	assert.ErrorIs(t, err, database.ErrBoardNotFound)
	t.Logf("✓ one-shot board load and settle")
}
