package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "lanes.db")
	cfg.SocketPath = filepath.Join(t.TempDir(), "lanes.sock")
	cfg.Feed = config.FeedNone
	cfg.Viewer = "alice"
	return cfg
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, a.Close()) }()

	assert.NotNil(t, a.Repo())
	assert.False(t, a.Live(), "feed none means no live updates")

	boards, err := a.Repo().ListBoards(ctx)
	require.NoError(t, err)
	assert.Empty(t, boards)
}

func TestNew_MissingDaemonIsNotFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Feed = config.FeedDaemon

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	assert.False(t, a.Live())
}

func TestNew_RedisFeed(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Feed = config.FeedRedis
	cfg.Redis.Addr = mr.Addr()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	assert.True(t, a.Live())

	t.Run("unreachable redis degrades", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Feed = config.FeedRedis
		cfg.Redis.Addr = "127.0.0.1:1"

		a, err := New(context.Background(), cfg)
		require.NoError(t, err)
		defer func() { _ = a.Close() }()
		assert.False(t, a.Live())
	})
}

func TestViewer(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t))
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	v, err := a.Viewer(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Assignee{UserID: "alice", Name: "alice"}, v, "unregistered viewers use their id")

	_, err = a.Repo().UpsertUser(ctx, models.User{ID: "alice", Name: "Alice Liddell"})
	require.NoError(t, err)
	v, err = a.Viewer(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", v.Name)

	other, err := New(ctx, testConfig(t), WithViewer("bob"))
	require.NoError(t, err)
	defer func() { _ = other.Close() }()
	v, err = other.Viewer(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", string(v.UserID))
}

func TestBoard(t *testing.T) {
	ctx := context.Background()
	db, err := database.InitDB(ctx, ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	cfg := testConfig(t)
	cfg.PersistTimeout = time.Second
	a, err := New(ctx, cfg, WithDB(db), WithFeed(nil))
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	_, err = a.Board(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrBoardNotFound)

	b, err := a.Repo().CreateBoard(ctx, "Team")
	require.NoError(t, err)
	_, err = a.Repo().CreateTask(ctx, b.ID, models.NewTask{Title: "First"})
	require.NoError(t, err)

	s, err := a.Board(ctx, b.ID)
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	defer func() { _ = s.Close() }()

	assert.Equal(t, b.ID, s.BoardID())
	assert.Equal(t, "alice", string(s.Viewer().UserID))
	assert.Len(t, s.Lanes().Backlog, 1)

	// the app does not own an injected database
	require.NoError(t, a.Close())
	assert.NoError(t, db.PingContext(ctx))
}
