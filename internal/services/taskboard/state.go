package taskboard

import (
	"slices"

	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// state is the single mutable view of one board. Lanes are derived from it
// on demand and never stored. Every access goes through Service.mu.
type state struct {
	viewer types.UserID
	tasks  []*models.Task

	// manual in-lane ordering, applied after partitioning
	order map[models.Lane][]types.TaskID

	// unresolved mutations, at most one per task
	pending map[types.TaskID]*mutation

	// seq value at which each task's latest mutation resolved. A refetch that
	// started before that point may carry pre-write rows for the task.
	resolved map[types.TaskID]uint64

	// generation changes whenever tasks changes
	generation uint64

	// seq advances whenever a mutation starts or resolves
	seq uint64
}

func newState(viewer types.UserID) *state {
	return &state{
		viewer:   viewer,
		order:    make(map[models.Lane][]types.TaskID),
		pending:  make(map[types.TaskID]*mutation),
		resolved: make(map[types.TaskID]uint64),
	}
}

func (st *state) index(id types.TaskID) int {
	return slices.IndexFunc(st.tasks, func(t *models.Task) bool { return t.ID == id })
}

func (st *state) find(id types.TaskID) *models.Task {
	if i := st.index(id); i >= 0 {
		return st.tasks[i]
	}
	return nil
}

// put replaces the task with the same id, or appends it
func (st *state) put(t *models.Task) {
	if i := st.index(t.ID); i >= 0 {
		st.tasks[i] = t
	} else {
		st.tasks = append(st.tasks, t)
	}
	st.generation++
	st.pruneOrder()
}

func (st *state) remove(id types.TaskID) {
	if i := st.index(id); i >= 0 {
		st.tasks = slices.Delete(st.tasks, i, i+1)
		st.generation++
	}
}

func (st *state) lanes() board.Lanes {
	return board.ApplyOrder(board.Partition(st.tasks, st.viewer), st.order)
}

// fold merges an authoritative task list fetched after seq startSeq.
//
// Tasks with an unresolved mutation keep their local value; the fetched value
// is parked on the mutation and used if it rolls back. Tasks whose mutation
// resolved while the fetch was running also keep their local value, and the
// caller is told to fetch again. Every other task takes the fetched value.
func (st *state) fold(fetched []*models.Task, startSeq uint64) (again bool) {
	recentlyResolved := func(id types.TaskID) bool {
		seq, ok := st.resolved[id]
		return ok && seq > startSeq
	}

	seen := make(map[types.TaskID]struct{}, len(fetched))
	next := make([]*models.Task, 0, len(fetched))

	for _, t := range fetched {
		seen[t.ID] = struct{}{}
		if m, ok := st.pending[t.ID]; ok {
			m.park(t)
			if local := st.find(t.ID); local != nil {
				next = append(next, local)
			}
			continue
		}
		if recentlyResolved(t.ID) {
			again = true
			if local := st.find(t.ID); local != nil {
				next = append(next, local)
			}
			continue
		}
		next = append(next, t.Clone())
	}

	// Local tasks the store did not return
	for _, t := range st.tasks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		if m, ok := st.pending[t.ID]; ok {
			m.park(nil)
			next = append(next, t)
			continue
		}
		if recentlyResolved(t.ID) {
			again = true
			next = append(next, t)
		}
	}

	// Pending deletes of rows the store no longer has
	for id, m := range st.pending {
		if _, ok := seen[id]; !ok && st.find(id) == nil {
			m.park(nil)
		}
	}

	for id, seq := range st.resolved {
		if seq <= startSeq {
			delete(st.resolved, id)
		}
	}

	st.tasks = next
	st.generation++
	st.pruneOrder()
	return again
}

// restore undoes a rolled-back mutation. When nothing else touched the task
// list since the mutation was applied, the pre-mutation snapshot comes back
// in full; otherwise only the mutated task is reset, to the authoritative
// value if a refetch arrived meanwhile.
func (st *state) restore(m *mutation) {
	if st.generation == m.generation {
		st.tasks = m.snapshot
		st.generation++
		st.pruneOrder()
		return
	}

	value := m.before
	if m.refetched {
		value = m.authoritative
	}
	if value == nil {
		st.remove(m.taskID)
		st.pruneOrder()
		return
	}
	st.put(value.Clone())
}

// pruneOrder drops overlay entries for tasks that are gone or no longer in
// the overlay's lane. A task that comes back takes its sorted position.
func (st *state) pruneOrder() {
	for lane, ids := range st.order {
		ids = slices.DeleteFunc(ids, func(id types.TaskID) bool {
			t := st.find(id)
			return t == nil || board.LaneOf(t, st.viewer) != lane
		})
		if len(ids) == 0 {
			delete(st.order, lane)
			continue
		}
		st.order[lane] = ids
	}
}
