// Package taskboard keeps one viewer's live copy of a board. Changes are
// applied locally first and persisted in the background, with rollback on
// failure, while a change feed folds other clients' writes back in.
package taskboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Store is the persistence the service needs. database.Repository
// satisfies it.
type Store interface {
	ListTasks(ctx context.Context, boardID types.BoardID) ([]*models.Task, error)
	CreateTask(ctx context.Context, boardID types.BoardID, nt models.NewTask) (*models.Task, error)
	UpdateTaskFields(ctx context.Context, id types.TaskID, fields models.TaskFields) error
	// CreateAssignment must treat an existing assignment as success
	CreateAssignment(ctx context.Context, taskID types.TaskID, userID types.UserID) error
	DeleteAssignment(ctx context.Context, taskID types.TaskID, userID types.UserID) error
	DeleteTask(ctx context.Context, id types.TaskID) error
}

// Service is the board as seen by one viewer
type Service struct {
	store   Store
	feed    events.Subscriber
	boardID types.BoardID
	viewer  models.Assignee
	now     func() time.Time

	persistTimeout   time.Duration
	debounce         time.Duration
	resubscribeDelay time.Duration

	lanesHook   func(board.Lanes)
	failureHook func(error)
	hookMu      sync.Mutex

	mu sync.Mutex
	st *state

	// fetchMu keeps refetches from overlapping
	fetchMu sync.Mutex
	trigger chan struct{}

	persisting sync.WaitGroup
	loops      sync.WaitGroup
	cancel     context.CancelFunc
	started    bool
}

// New creates a service for viewer on boardID. Nothing is loaded until
// Start or Reconcile is called.
func New(store Store, boardID types.BoardID, viewer models.Assignee, opts ...Option) *Service {
	s := &Service{
		store:            store,
		boardID:          boardID,
		viewer:           viewer,
		now:              time.Now,
		persistTimeout:   DefaultPersistTimeout,
		debounce:         DefaultDebounce,
		resubscribeDelay: DefaultResubscribeDelay,
		st:               newState(viewer.UserID),
		trigger:          make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BoardID returns the board this service tracks
func (s *Service) BoardID() types.BoardID {
	return s.boardID
}

// Viewer returns the identity used for lanes and permissions
func (s *Service) Viewer() models.Assignee {
	return s.viewer
}

// Lanes returns a deep copy of the viewer's current lanes
func (s *Service) Lanes() board.Lanes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.lanes().Clone()
}

// Task returns a copy of one task from local state
func (s *Service) Task(id types.TaskID) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.st.find(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	return t.Clone(), nil
}

// IsPending reports whether the task has an unresolved mutation
func (s *Service) IsPending(id types.TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.st.pending[id]
	return ok
}

// MoveTask moves a task into a lane. Permission and validation failures are
// returned immediately with nothing applied. Otherwise the move is already
// visible in Lanes when MoveTask returns and the Pending reports how the
// write went. Moving a task into the lane it is already in does nothing.
func (s *Service) MoveTask(ctx context.Context, id types.TaskID, target models.Lane) (*Pending, error) {
	s.mu.Lock()
	t, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := board.CanMove(t, target, s.viewer.UserID); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if board.LaneOf(t, s.viewer.UserID) == target {
		s.mu.Unlock()
		return settled(id), nil
	}
	return s.transition(ctx, "move", board.Move(t, target, s.viewer, s.now()))
}

// ToggleCompletion completes an open task or reopens a done one into the
// viewer's lane. Claimed tasks can only be toggled by their assignees.
func (s *Service) ToggleCompletion(ctx context.Context, id types.TaskID) (*Pending, error) {
	s.mu.Lock()
	t, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := board.CanToggleCompletion(t, s.viewer.UserID); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return s.transition(ctx, "toggle", board.ToggleCompletion(t, s.viewer, s.now()))
}

// Claim adds the viewer to the task's assignees without changing its status.
// Claiming twice is a no-op.
func (s *Service) Claim(ctx context.Context, id types.TaskID) (*Pending, error) {
	s.mu.Lock()
	t, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := board.CanClaim(t, s.viewer.UserID); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	tr := board.Claim(t, s.viewer)
	if !tr.Claimed {
		s.mu.Unlock()
		return settled(id), nil
	}
	return s.transition(ctx, "claim", tr)
}

// Unclaim removes the viewer from the task's assignees. A claimed task left
// without assignees goes back to backlog.
func (s *Service) Unclaim(ctx context.Context, id types.TaskID) (*Pending, error) {
	s.mu.Lock()
	t, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := board.CanUnclaim(t, s.viewer.UserID); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return s.transition(ctx, "unclaim", board.Unclaim(t, s.viewer))
}

// transition validates and applies tr, then persists it: the assignment is
// created first, then status and completion time are written, and a dropped
// assignment is deleted last so the store never sees an active task with no
// assignees. Caller holds s.mu; transition releases it.
func (s *Service) transition(ctx context.Context, kind string, tr board.Transition) (*Pending, error) {
	if err := tr.After.Validate(); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%s task %s: %w", kind, tr.After.ID, err)
	}
	m := s.begin(kind, tr.After.ID, tr.Before, tr.After)
	s.mu.Unlock()

	id := tr.After.ID
	viewer := s.viewer.UserID
	fields := models.StatusFields(tr.After)
	statusChanged := tr.StatusChanged()

	return s.launch(ctx, m, func(ctx context.Context) error {
		if tr.Claimed {
			if err := s.store.CreateAssignment(ctx, id, viewer); err != nil {
				return err
			}
			m.wrote.Store(true)
		}
		if statusChanged {
			if err := s.store.UpdateTaskFields(ctx, id, fields); err != nil {
				return err
			}
			m.wrote.Store(true)
		}
		if tr.Dropped {
			if err := s.store.DeleteAssignment(ctx, id, viewer); err != nil {
				return err
			}
		}
		return nil
	}), nil
}

// AddTask creates a backlog task. The returned task is already in Lanes.
func (s *Service) AddTask(ctx context.Context, nt models.NewTask) (*models.Task, *Pending, error) {
	if nt.ID.IsZero() {
		nt.ID = types.NewTaskID()
	}
	nt.Title = strings.TrimSpace(nt.Title)

	t := &models.Task{
		ID:          nt.ID,
		BoardID:     s.boardID,
		Title:       nt.Title,
		Description: nt.Description,
		Status:      models.StatusBacklog,
		DueDate:     nt.DueDate,
		CreatedAt:   s.now(),
	}
	if nt.Category != nil && nt.Category.ID != "" {
		cat := *nt.Category
		t.Category = &cat
	}
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	if s.st.find(t.ID) != nil {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: task %s already exists", models.ErrValidation, t.ID)
	}
	m := s.begin("add", t.ID, nil, t)
	s.mu.Unlock()

	p := s.launch(ctx, m, func(ctx context.Context) error {
		_, err := s.store.CreateTask(ctx, s.boardID, nt)
		return err
	})
	return t.Clone(), p, nil
}

// UpdateTask edits title, description, due date or category. Status changes
// go through MoveTask, ToggleCompletion, Claim and Unclaim.
func (s *Service) UpdateTask(ctx context.Context, id types.TaskID, fields models.TaskFields) (*Pending, error) {
	if fields.Status != nil || fields.CompletedAt.Set {
		return nil, fmt.Errorf("%w: status cannot be edited directly, move the task instead", models.ErrValidation)
	}
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		fields.Title = &title
	}

	s.mu.Lock()
	t, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if fields.IsEmpty() {
		s.mu.Unlock()
		return settled(id), nil
	}
	after := fields.Apply(t)
	if err := after.Validate(); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	m := s.begin("update", id, t, after)
	s.mu.Unlock()

	return s.launch(ctx, m, func(ctx context.Context) error {
		return s.store.UpdateTaskFields(ctx, id, fields)
	}), nil
}

// DeleteTask removes a task. Claimed tasks can only be deleted by their
// assignees. A task someone else already deleted counts as deleted.
func (s *Service) DeleteTask(ctx context.Context, id types.TaskID) (*Pending, error) {
	s.mu.Lock()
	t, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := board.CanDelete(t, s.viewer.UserID); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	m := s.begin("delete", id, t, nil)
	s.mu.Unlock()

	return s.launch(ctx, m, func(ctx context.Context) error {
		err := s.store.DeleteTask(ctx, id)
		if errors.Is(err, models.ErrTaskNotFound) {
			return nil
		}
		return err
	}), nil
}

// Reorder moves a task to index within its current lane. The order is a
// local display preference and is never persisted.
func (s *Service) Reorder(id types.TaskID, index int) error {
	s.mu.Lock()
	lanes := s.st.lanes()
	lane, from, ok := lanes.Find(id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}

	tasks := lanes.Get(lane)
	ids := make([]types.TaskID, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	index = max(0, min(index, len(ids)-1))
	if index == from {
		s.mu.Unlock()
		return nil
	}
	ids = slices.Delete(ids, from, from+1)
	ids = slices.Insert(ids, index, id)
	s.st.order[lane] = ids
	s.mu.Unlock()

	s.notify()
	return nil
}

// notify hands the current lanes to the lanes hook. Hooks run one at a time
// and always see state at least as new as the previous call.
func (s *Service) notify() {
	if s.lanesHook == nil {
		return
	}
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.lanesHook(s.Lanes())
}

func (s *Service) reportFailure(err error) {
	if s.failureHook != nil {
		s.failureHook(err)
	}
}
