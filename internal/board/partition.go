// Package board holds the pure lane logic of a task board: which lane a task
// belongs to for a viewer, whether a viewer may move it, and what a move does
// to the task. Nothing here touches a store or a clock it was not handed.
package board

import (
	"cmp"
	"slices"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Lanes is the board as one viewer sees it
type Lanes struct {
	Backlog []*models.Task
	MyTasks []*models.Task
	Done    []*models.Task
}

// Get returns the tasks of one lane
func (l Lanes) Get(lane models.Lane) []*models.Task {
	switch lane {
	case models.LaneBacklog:
		return l.Backlog
	case models.LaneMyTasks:
		return l.MyTasks
	case models.LaneDone:
		return l.Done
	}
	return nil
}

func (l *Lanes) set(lane models.Lane, tasks []*models.Task) {
	switch lane {
	case models.LaneBacklog:
		l.Backlog = tasks
	case models.LaneMyTasks:
		l.MyTasks = tasks
	case models.LaneDone:
		l.Done = tasks
	}
}

// Len returns the number of tasks across all lanes
func (l Lanes) Len() int {
	return len(l.Backlog) + len(l.MyTasks) + len(l.Done)
}

// Find returns the lane and index of a task, or ok=false
func (l Lanes) Find(id types.TaskID) (lane models.Lane, index int, ok bool) {
	for _, ln := range models.AllLanes {
		if i := slices.IndexFunc(l.Get(ln), func(t *models.Task) bool { return t.ID == id }); i >= 0 {
			return ln, i, true
		}
	}
	return "", -1, false
}

// Clone deep-copies every task so callers cannot reach shared state
func (l Lanes) Clone() Lanes {
	return Lanes{
		Backlog: models.CloneTasks(l.Backlog),
		MyTasks: models.CloneTasks(l.MyTasks),
		Done:    models.CloneTasks(l.Done),
	}
}

// LaneOf returns the single lane a task is shown in for the viewer.
// Another user's in-progress claim shows up as open work in backlog.
func LaneOf(t *models.Task, viewer types.UserID) models.Lane {
	switch t.Status {
	case models.StatusDone:
		return models.LaneDone
	case models.StatusInProgress:
		if t.HasAssignee(viewer) {
			return models.LaneMyTasks
		}
	}
	return models.LaneBacklog
}

// Partition splits a flat task list into the viewer's lanes.
// The result depends only on its inputs; the input slice is not reordered.
func Partition(tasks []*models.Task, viewer types.UserID) Lanes {
	var lanes Lanes
	for _, t := range tasks {
		if t == nil {
			continue
		}
		switch LaneOf(t, viewer) {
		case models.LaneDone:
			lanes.Done = append(lanes.Done, t)
		case models.LaneMyTasks:
			lanes.MyTasks = append(lanes.MyTasks, t)
		default:
			lanes.Backlog = append(lanes.Backlog, t)
		}
	}

	slices.SortStableFunc(lanes.Backlog, compareOpen)
	slices.SortStableFunc(lanes.MyTasks, compareOpen)
	slices.SortStableFunc(lanes.Done, compareDone)
	return lanes
}

// ApplyOrder reorders each lane by a manual order overlay. Tasks listed in
// the overlay come first in overlay order; the rest keep partition order.
func ApplyOrder(lanes Lanes, order map[models.Lane][]types.TaskID) Lanes {
	for lane, ids := range order {
		if len(ids) == 0 {
			continue
		}
		rank := make(map[types.TaskID]int, len(ids))
		for i, id := range ids {
			rank[id] = i
		}
		tasks := slices.Clone(lanes.Get(lane))
		slices.SortStableFunc(tasks, func(a, b *models.Task) int {
			ra, okA := rank[a.ID]
			rb, okB := rank[b.ID]
			switch {
			case okA && okB:
				return cmp.Compare(ra, rb)
			case okA:
				return -1
			case okB:
				return 1
			}
			return 0
		})
		lanes.set(lane, tasks)
	}
	return lanes
}

// compareOpen orders backlog and my-tasks: dated tasks by due date ascending,
// then undated tasks newest first
func compareOpen(a, b *models.Task) int {
	switch {
	case a.DueDate != nil && b.DueDate != nil:
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	case a.DueDate != nil:
		return -1
	case b.DueDate != nil:
		return 1
	}
	return tieBreak(a, b)
}

// compareDone orders done by completion time, newest first, never-completed last
func compareDone(a, b *models.Task) int {
	switch {
	case a.CompletedAt != nil && b.CompletedAt != nil:
		if c := b.CompletedAt.Compare(*a.CompletedAt); c != 0 {
			return c
		}
	case a.CompletedAt != nil:
		return -1
	case b.CompletedAt != nil:
		return 1
	}
	return tieBreak(a, b)
}

// tieBreak makes the ordering total: newest created first, then id
func tieBreak(a, b *models.Task) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
