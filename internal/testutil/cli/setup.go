package cli

import (
	"context"
	"testing"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/types"
)

// TestViewer is the identity CLI tests run as
const TestViewer types.UserID = "tester"

// SetupCLITest creates an in-memory DB and returns both the repository and
// App instance. This lives in its own package so service tests can import
// testutil without pulling in the app.
func SetupCLITest(t *testing.T) (*database.Repository, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := config.Default()
	cfg.Feed = config.FeedNone

	// No feed: event publishing is tested elsewhere
	appInstance, err := app.New(context.Background(), cfg,
		app.WithDB(db),
		app.WithFeed(nil),
		app.WithViewer(TestViewer))
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	t.Cleanup(func() { _ = appInstance.Close() })

	return appInstance.Repo(), appInstance
}

// CreateTestBoard wraps testutil.CreateTestBoard for CLI tests
func CreateTestBoard(t *testing.T, repo *database.Repository, name string) types.BoardID {
	t.Helper()
	return testutil.CreateTestBoard(t, repo, name)
}

// CreateTestTask wraps testutil.CreateTestTask for CLI tests
func CreateTestTask(t *testing.T, repo *database.Repository, boardID types.BoardID, title string) types.TaskID {
	t.Helper()
	return testutil.CreateTestTask(t, repo, boardID, title)
}
