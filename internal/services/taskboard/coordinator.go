package taskboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Phase is the lifecycle position of one optimistic mutation
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseOptimistic
	PhasePersisting
	PhaseConfirmed
	PhaseRolledBack
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseOptimistic:
		return "optimistic-applied"
	case PhasePersisting:
		return "persisting"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseRolledBack:
		return "rolled-back"
	}
	return fmt.Sprintf("phase(%d)", int32(p))
}

// Terminal reports whether the mutation has resolved
func (p Phase) Terminal() bool {
	return p == PhaseConfirmed || p == PhaseRolledBack
}

// persistFunc writes one mutation to the store
type persistFunc func(ctx context.Context) error

type mutation struct {
	taskID types.TaskID
	kind   string

	// before is the task prior to the change; nil when the change creates it
	before *models.Task

	// snapshot is the full task list prior to the change, and generation the
	// state generation right after the change was applied
	snapshot   []*models.Task
	generation uint64

	// authoritative is the latest store value seen while pending; nil means
	// the store had no such task
	authoritative *models.Task
	refetched     bool

	// wrote is set once any store call of the persist step has committed, so
	// a rollback may leave the store partly changed
	wrote atomic.Bool

	phase atomic.Int32
	done  chan struct{}
	err   error
}

// park records a refetched value for the pending task. Caller holds Service.mu.
func (m *mutation) park(t *models.Task) {
	m.authoritative = t.Clone()
	m.refetched = true
}

func (m *mutation) setPhase(p Phase) {
	m.phase.Store(int32(p))
}

// Pending tracks a mutation whose persistence runs in the background.
// Local state already reflects the change when a Pending is handed out.
type Pending struct {
	m *mutation
}

// settled returns a Pending for a change that needed no store write
func settled(id types.TaskID) *Pending {
	m := &mutation{taskID: id, kind: "noop", done: make(chan struct{})}
	m.setPhase(PhaseConfirmed)
	close(m.done)
	return &Pending{m: m}
}

// TaskID returns the task the mutation targets
func (p *Pending) TaskID() types.TaskID {
	return p.m.taskID
}

// Phase returns the current lifecycle position
func (p *Pending) Phase() Phase {
	return Phase(p.m.phase.Load())
}

// Done is closed once the mutation is confirmed or rolled back
func (p *Pending) Done() <-chan struct{} {
	return p.m.done
}

// Err returns the persistence failure, or nil while pending or once confirmed
func (p *Pending) Err() error {
	select {
	case <-p.m.done:
		return p.m.err
	default:
		return nil
	}
}

// Wait blocks until the mutation resolves. A rolled-back mutation returns an
// error wrapping models.ErrPersistence; local state is already restored.
// Cancelling ctx stops the wait, not the write.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.m.done:
		return p.m.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// lookup returns the task a new mutation may target. Caller holds s.mu.
func (s *Service) lookup(id types.TaskID) (*models.Task, error) {
	t := s.st.find(id)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrTaskNotFound, id)
	}
	if _, busy := s.st.pending[id]; busy {
		return nil, fmt.Errorf("%w: %s", models.ErrMoveInFlight, id)
	}
	return t, nil
}

// begin applies a change to local state and registers it as pending.
// after == nil removes the task. Caller holds s.mu.
func (s *Service) begin(kind string, id types.TaskID, before, after *models.Task) *mutation {
	m := &mutation{
		taskID:   id,
		kind:     kind,
		before:   before.Clone(),
		snapshot: models.CloneTasks(s.st.tasks),
		done:     make(chan struct{}),
	}
	if after == nil {
		s.st.remove(id)
		s.st.pruneOrder()
	} else {
		s.st.put(after.Clone())
	}
	m.generation = s.st.generation
	s.st.pending[id] = m
	s.st.seq++
	m.setPhase(PhaseOptimistic)
	return m
}

// launch publishes the optimistic state and persists in the background.
// The write outlives ctx cancellation; it is bounded by the persist timeout.
func (s *Service) launch(ctx context.Context, m *mutation, persist persistFunc) *Pending {
	s.notify()

	m.setPhase(PhasePersisting)
	s.persisting.Add(1)
	go func() {
		defer s.persisting.Done()

		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
		defer cancel()

		s.resolve(m, persist(pctx))
	}()
	return &Pending{m: m}
}

// resolve moves a mutation to its terminal phase. On failure local state is
// rolled back before the error is reported anywhere.
func (s *Service) resolve(m *mutation, err error) {
	s.mu.Lock()
	delete(s.st.pending, m.taskID)
	s.st.seq++
	s.st.resolved[m.taskID] = s.st.seq

	if err == nil {
		m.setPhase(PhaseConfirmed)
		again := m.refetched
		s.mu.Unlock()

		slog.Debug("mutation confirmed", "kind", m.kind, "task_id", m.taskID, "board_id", s.boardID)
		if again {
			s.requestReconcile()
		}
		close(m.done)
		return
	}

	err = persistenceError(m, err)
	s.st.restore(m)
	m.err = err
	m.setPhase(PhaseRolledBack)
	s.mu.Unlock()

	slog.Warn("mutation rolled back",
		"kind", m.kind,
		"task_id", m.taskID,
		"board_id", s.boardID,
		"error", err)

	s.notify()
	if m.refetched || m.wrote.Load() || errors.Is(err, models.ErrStaleReference) {
		s.requestReconcile()
	}
	s.reportFailure(err)
	close(m.done)
}

func persistenceError(m *mutation, err error) error {
	if errors.Is(err, models.ErrTaskNotFound) {
		return fmt.Errorf("%w: %w: %s task %s: %w", models.ErrPersistence, models.ErrStaleReference, m.kind, m.taskID, err)
	}
	return fmt.Errorf("%w: %s task %s: %w", models.ErrPersistence, m.kind, m.taskID, err)
}
