package taskboard

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ============================================================================
// FIXTURES
// ============================================================================

const testBoard types.BoardID = "board-1"

var (
	alice = models.Assignee{UserID: "alice", Name: "Alice"}
	bob   = models.Assignee{UserID: "bob", Name: "Bob"}

	base = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

func task(id string, status models.Status, assignees ...models.Assignee) *models.Task {
	t := &models.Task{
		ID:        types.TaskID(id),
		BoardID:   testBoard,
		Title:     "Task " + id,
		Status:    status,
		Assignees: assignees,
		CreatedAt: base,
	}
	if status == models.StatusDone {
		done := at(1)
		t.CompletedAt = &done
	}
	return t
}

func laneIDs(l board.Lanes, lane models.Lane) []types.TaskID {
	var ids []types.TaskID
	for _, t := range l.Get(lane) {
		ids = append(ids, t.ID)
	}
	return ids
}

// ============================================================================
// IN-MEMORY STORE
// ============================================================================

// memStore is a Store whose writes can be held open or made to fail
type memStore struct {
	mu    sync.Mutex
	tasks []*models.Task
	calls []string
	lists int
	fail  map[string]error

	hold     chan struct{} // writes block until closed
	listHold chan struct{} // ListTasks blocks after its snapshot until closed
	listed   chan struct{} // signalled after each ListTasks snapshot
}

func newMemStore(tasks ...*models.Task) *memStore {
	return &memStore{
		tasks:  models.CloneTasks(tasks),
		fail:   make(map[string]error),
		listed: make(chan struct{}, 16),
	}
}

func (m *memStore) index(id types.TaskID) int {
	return slices.IndexFunc(m.tasks, func(t *models.Task) bool { return t.ID == id })
}

func (m *memStore) notFound(id types.TaskID) error {
	return fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
}

// Hold blocks every write until the returned release is called
func (m *memStore) Hold() (release func()) {
	ch := make(chan struct{})
	m.mu.Lock()
	m.hold = ch
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.hold = nil
			m.mu.Unlock()
			close(ch)
		})
	}
}

// HoldList blocks ListTasks after it has taken its snapshot
func (m *memStore) HoldList() (release func()) {
	ch := make(chan struct{})
	m.mu.Lock()
	m.listHold = ch
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.listHold = nil
			m.mu.Unlock()
			close(ch)
		})
	}
}

func (m *memStore) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = err
}

func (m *memStore) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

func (m *memStore) Lists() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}

// Get returns the stored task, or nil
func (m *memStore) Get(id types.TaskID) *models.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		return m.tasks[i].Clone()
	}
	return nil
}

// Set writes a task as another client would
func (m *memStore) Set(t *models.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(t.ID); i >= 0 {
		m.tasks[i] = t.Clone()
		return
	}
	m.tasks = append(m.tasks, t.Clone())
}

// Remove deletes a task as another client would
func (m *memStore) Remove(id types.TaskID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		m.tasks = slices.Delete(m.tasks, i, i+1)
	}
}

func (m *memStore) write(ctx context.Context, op string, fn func() error) error {
	m.mu.Lock()
	m.calls = append(m.calls, op)
	hold := m.hold
	err := m.fail[op]
	m.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return fn()
}

func (m *memStore) ListTasks(ctx context.Context, boardID types.BoardID) ([]*models.Task, error) {
	m.mu.Lock()
	m.lists++
	snapshot := models.CloneTasks(m.tasks)
	err := m.fail["ListTasks"]
	hold := m.listHold
	m.mu.Unlock()

	select {
	case m.listed <- struct{}{}:
	default:
	}
	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (m *memStore) CreateTask(ctx context.Context, boardID types.BoardID, nt models.NewTask) (*models.Task, error) {
	var created *models.Task
	err := m.write(ctx, "CreateTask", func() error {
		created = &models.Task{
			ID:          nt.ID,
			BoardID:     boardID,
			Title:       nt.Title,
			Description: nt.Description,
			Status:      models.StatusBacklog,
			DueDate:     nt.DueDate,
			Category:    nt.Category,
			CreatedAt:   time.Now(),
		}
		m.tasks = append(m.tasks, created.Clone())
		return nil
	})
	return created, err
}

func (m *memStore) UpdateTaskFields(ctx context.Context, id types.TaskID, fields models.TaskFields) error {
	return m.write(ctx, "UpdateTaskFields", func() error {
		i := m.index(id)
		if i < 0 {
			return m.notFound(id)
		}
		m.tasks[i] = fields.Apply(m.tasks[i])
		return nil
	})
}

func (m *memStore) CreateAssignment(ctx context.Context, taskID types.TaskID, userID types.UserID) error {
	return m.write(ctx, "CreateAssignment", func() error {
		i := m.index(taskID)
		if i < 0 {
			return m.notFound(taskID)
		}
		t := m.tasks[i].Clone()
		t.Assignees = t.WithAssignee(models.Assignee{UserID: userID, Name: string(userID)})
		m.tasks[i] = t
		return nil
	})
}

func (m *memStore) DeleteAssignment(ctx context.Context, taskID types.TaskID, userID types.UserID) error {
	return m.write(ctx, "DeleteAssignment", func() error {
		i := m.index(taskID)
		if i < 0 {
			return m.notFound(taskID)
		}
		t := m.tasks[i].Clone()
		t.Assignees = t.WithoutAssignee(userID)
		m.tasks[i] = t
		return nil
	})
}

func (m *memStore) DeleteTask(ctx context.Context, id types.TaskID) error {
	return m.write(ctx, "DeleteTask", func() error {
		i := m.index(id)
		if i < 0 {
			return m.notFound(id)
		}
		m.tasks = slices.Delete(m.tasks, i, i+1)
		return nil
	})
}

// ============================================================================
// FAKE FEED
// ============================================================================

type fakeFeed struct {
	mu   sync.Mutex
	subs []*events.Subscription
	err  error
}

func (f *fakeFeed) Subscribe(ctx context.Context, boardID types.BoardID) (*events.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	sub := events.NewSubscription(events.DefaultSubscriptionBuffer, nil)
	f.subs = append(f.subs, sub)
	return sub, nil
}

func (f *fakeFeed) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *fakeFeed) Current() *events.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.subs) == 0 {
		return nil
	}
	return f.subs[len(f.subs)-1]
}

func (f *fakeFeed) Signal(scope events.Scope, taskID types.TaskID) bool {
	sub := f.Current()
	if sub == nil {
		return false
	}
	return sub.Deliver(events.Changed(testBoard, taskID, scope))
}

// ============================================================================
// SERVICE HELPERS
// ============================================================================

// newLoadedService returns a service that has already fetched the board
func newLoadedService(t *testing.T, store Store, viewer models.Assignee, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithPersistTimeout(2 * time.Second)}, opts...)
	s := New(store, testBoard, viewer, opts...)
	require.NoError(t, s.Reconcile(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func wait(t *testing.T, p *Pending) error {
	t.Helper()
	require.NotNil(t, p)
	select {
	case <-p.Done():
		return p.Err()
	case <-time.After(3 * time.Second):
		t.Fatal("mutation never resolved")
		return nil
	}
}
