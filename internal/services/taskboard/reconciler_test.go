package taskboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// startWithFeed starts a service on a fake feed and waits for the first
// subscription
func startWithFeed(t *testing.T, store *memStore, feed *fakeFeed, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{
		WithFeed(feed),
		WithPersistTimeout(2 * time.Second),
		WithResubscribeDelay(10 * time.Millisecond),
	}, opts...)
	s := New(store, testBoard, alice, opts...)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	require.Eventually(t, func() bool { return feed.Count() >= 1 },
		time.Second, 5*time.Millisecond, "service never subscribed")
	return s
}

// ============================================================================
// FOLDING
// ============================================================================

func TestReconcile_Idempotent(t *testing.T) {
	store := newMemStore(
		task("T", models.StatusBacklog),
		task("U", models.StatusInProgress, alice),
		task("V", models.StatusDone, bob),
	)
	s := newLoadedService(t, store, alice)
	first := s.Lanes()

	require.NoError(t, s.Reconcile(context.Background()))
	assert.Equal(t, first, s.Lanes())
	assert.Equal(t, 3, first.Len())
}

func TestReconcile_AppliesRemoteChanges(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog), task("U", models.StatusBacklog))
	s := newLoadedService(t, store, alice)

	store.Remove("U")
	store.Set(task("W", models.StatusInProgress, alice))
	renamed := task("T", models.StatusBacklog)
	renamed.Title = "Renamed"
	store.Set(renamed)

	require.NoError(t, s.Reconcile(context.Background()))

	lanes := s.Lanes()
	assert.Equal(t, []types.TaskID{"T"}, laneIDs(lanes, models.LaneBacklog))
	assert.Equal(t, []types.TaskID{"W"}, laneIDs(lanes, models.LaneMyTasks))
	got, err := s.Task("T")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestReconcile_NormalizesRows(t *testing.T) {
	orphan := task("T", models.StatusInProgress)
	stray := task("U", models.StatusBacklog, alice)
	completed := at(2)
	stray.CompletedAt = &completed
	dup := task("V", models.StatusInProgress, alice, alice)

	store := newMemStore(orphan, stray, dup)
	s := newLoadedService(t, store, alice)

	got, err := s.Task("T")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBacklog, got.Status, "active task without assignees falls back to backlog")

	got, err = s.Task("U")
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)

	got, err = s.Task("V")
	require.NoError(t, err)
	assert.Equal(t, []models.Assignee{alice}, got.Assignees)

	lanes := s.Lanes()
	for _, lane := range models.AllLanes {
		for _, tk := range lanes.Get(lane) {
			assert.NoError(t, tk.Validate(), "task %s", tk.ID)
		}
	}
}

func TestReconcile_ListFailureKeepsState(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	s := newLoadedService(t, store, alice)
	before := s.Lanes()

	store.Fail("ListTasks", errors.New("database is locked"))
	store.Remove("T")

	err := s.Reconcile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.Equal(t, before, s.Lanes())
}

func TestReconcile_FetchOlderThanResolvedWrite(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	s := newLoadedService(t, store, alice)
	ctx := context.Background()

	for len(store.listed) > 0 {
		<-store.listed
	}
	releaseList := store.HoldList()
	defer releaseList()

	errc := make(chan error, 1)
	go func() { errc <- s.Reconcile(ctx) }()

	select {
	case <-store.listed:
	case <-time.After(time.Second):
		t.Fatal("reconcile never listed")
	}

	// The fetch has its snapshot; the move lands after it
	p, err := s.MoveTask(ctx, "T", models.LaneMyTasks)
	require.NoError(t, err)
	require.NoError(t, wait(t, p))

	releaseList()
	require.NoError(t, <-errc)

	got, err := s.Task("T")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status, "a fetch older than the write does not undo it")

	require.NoError(t, s.Reconcile(ctx))
	got, err = s.Task("T")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)
}

// ============================================================================
// CHANGE FEED
// ============================================================================

func TestWatch_DebouncesBursts(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	feed := &fakeFeed{}
	startWithFeed(t, store, feed, WithDebounce(50*time.Millisecond))

	lists := store.Lists()
	for range 5 {
		require.True(t, feed.Signal(events.ScopeTasks, "T"))
	}

	require.Eventually(t, func() bool { return store.Lists() == lists+1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, lists+1, store.Lists(), "a burst causes exactly one refetch")
}

func TestWatch_ContinuousBurstStillRefetches(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	feed := &fakeFeed{}
	startWithFeed(t, store, feed, WithDebounce(40*time.Millisecond))

	lists := store.Lists()
	deadline := time.Now().Add(600 * time.Millisecond)
	for time.Now().Before(deadline) {
		feed.Signal(events.ScopeAssignments, "T")
		time.Sleep(10 * time.Millisecond)
	}

	assert.GreaterOrEqual(t, store.Lists()-lists, 2, "refetches are not starved by a steady stream")
}

func TestWatch_PicksUpRemoteChange(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	feed := &fakeFeed{}
	s := startWithFeed(t, store, feed, WithDebounce(10*time.Millisecond))

	store.Set(task("T", models.StatusInProgress, bob))
	require.True(t, feed.Signal(events.ScopeAssignments, "T"))

	require.Eventually(t, func() bool {
		got, err := s.Task("T")
		return err == nil && got.Status == models.StatusInProgress
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []types.TaskID{"T"}, laneIDs(s.Lanes(), models.LaneBacklog),
		"another user's claim stays in the viewer's backlog")
}

func TestWatch_IgnoresOtherBoards(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	feed := &fakeFeed{}
	startWithFeed(t, store, feed, WithDebounce(10*time.Millisecond))

	lists := store.Lists()
	require.True(t, feed.Current().Deliver(events.Changed("board-2", "X", events.ScopeTasks)))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, lists, store.Lists())
}

func TestWatch_ResubscribesAndRefetches(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	feed := &fakeFeed{}
	s := startWithFeed(t, store, feed, WithDebounce(10*time.Millisecond))

	lists := store.Lists()
	store.Set(task("U", models.StatusBacklog))

	// Signals for U were lost while the feed was down
	feed.Current().Fail(errors.New("connection reset"))

	require.Eventually(t, func() bool { return feed.Count() == 2 },
		time.Second, 5*time.Millisecond, "service never resubscribed")
	require.Eventually(t, func() bool { return store.Lists() > lists },
		time.Second, 5*time.Millisecond, "resubscribe is followed by a refetch")
	require.Eventually(t, func() bool {
		_, err := s.Task("U")
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestWatch_RecoversFromSubscribeErrors(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	feed := &fakeFeed{err: errors.New("connection refused")}

	s := New(store, testBoard, alice,
		WithFeed(feed),
		WithDebounce(10*time.Millisecond),
		WithResubscribeDelay(10*time.Millisecond))
	require.NoError(t, s.Start(context.Background()), "a missing feed does not block startup")
	t.Cleanup(func() { _ = s.Close() })

	_, err := s.Task("T")
	require.NoError(t, err)

	lists := store.Lists()
	feed.mu.Lock()
	feed.err = nil
	feed.mu.Unlock()

	require.Eventually(t, func() bool { return feed.Count() == 1 },
		2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return store.Lists() > lists },
		time.Second, 5*time.Millisecond)
}

func TestWatch_ReconcileFailureIsReported(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	feed := &fakeFeed{}
	failures := make(chan error, 4)
	startWithFeed(t, store, feed,
		WithDebounce(10*time.Millisecond),
		WithFailureHook(func(err error) {
			select {
			case failures <- err:
			default:
			}
		}))

	store.Fail("ListTasks", errors.New("disk I/O error"))
	require.True(t, feed.Signal(events.ScopeTasks, "T"))

	select {
	case err := <-failures:
		assert.Contains(t, err.Error(), "disk I/O error")
	case <-time.After(time.Second):
		t.Fatal("reconcile failure not reported")
	}
}

func TestStart_Twice(t *testing.T) {
	s := New(newMemStore(), testBoard, alice)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

func TestStart_RetryAfterFailedLoad(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	store.Fail("ListTasks", errors.New("database is locked"))
	s := New(store, testBoard, alice)
	t.Cleanup(func() { _ = s.Close() })

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyStarted)
	assert.Contains(t, err.Error(), "database is locked")

	store.Fail("ListTasks", nil)
	require.NoError(t, s.Start(context.Background()), "a failed first load can be retried")
	assert.Equal(t, []types.TaskID{"T"}, laneIDs(s.Lanes(), models.LaneBacklog))
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
	t.Logf("✓ start retried after failed load")
}

func TestClose_WaitsForWrites(t *testing.T) {
	store := newMemStore(task("T", models.StatusBacklog))
	s := New(store, testBoard, alice, WithPersistTimeout(time.Second))
	require.NoError(t, s.Start(context.Background()))

	release := store.Hold()
	p, err := s.MoveTask(context.Background(), "T", models.LaneDone)
	require.NoError(t, err)

	closed := make(chan struct{})
	go func() {
		_ = s.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned with a write in flight")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close never returned")
	}
	assert.Equal(t, PhaseConfirmed, p.Phase())
}
