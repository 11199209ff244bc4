package board

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/models"
)

// Transition is the outcome of applying a change to a task
type Transition struct {
	Before  *models.Task
	After   *models.Task
	From    models.Lane
	To      models.Lane
	Claimed bool // viewer was added to the assignee set
	Dropped bool // viewer was removed from the assignee set
}

// StatusChanged reports whether the status or completion time must be written
func (tr Transition) StatusChanged() bool {
	if tr.Before.Status != tr.After.Status {
		return true
	}
	a, b := tr.Before.CompletedAt, tr.After.CompletedAt
	switch {
	case a == nil && b == nil:
		return false
	case a == nil || b == nil:
		return true
	}
	return !a.Equal(*b)
}

// Move computes the task fields implied by moving it into the target lane.
// The caller is expected to have passed CanMove. Only status, completed-at
// and the assignee set change; the input task is not modified.
func Move(t *models.Task, target models.Lane, viewer models.Assignee, now time.Time) Transition {
	after := t.Clone()
	tr := Transition{Before: t, From: LaneOf(t, viewer.UserID), To: target}

	switch target {
	case models.LaneMyTasks:
		after.Status = models.StatusInProgress
		after.CompletedAt = nil
		tr.Claimed = !t.HasAssignee(viewer.UserID)
		after.Assignees = t.WithAssignee(viewer)
	case models.LaneDone:
		after.Status = models.StatusDone
		completed := now
		after.CompletedAt = &completed
		tr.Claimed = !t.HasAssignee(viewer.UserID)
		after.Assignees = t.WithAssignee(viewer)
	case models.LaneBacklog:
		after.Status = models.StatusBacklog
		after.CompletedAt = nil
	}

	tr.After = after
	return tr
}

// ToggleCompletion completes an open task or reopens a done one into the
// viewer's lane. It is Move with the target chosen from the current status.
func ToggleCompletion(t *models.Task, viewer models.Assignee, now time.Time) Transition {
	if t.Status == models.StatusDone {
		return Move(t, models.LaneMyTasks, viewer, now)
	}
	return Move(t, models.LaneDone, viewer, now)
}

// Claim adds the viewer to the assignee set without touching the status
func Claim(t *models.Task, viewer models.Assignee) Transition {
	after := t.Clone()
	after.Assignees = t.WithAssignee(viewer)
	return Transition{
		Before:  t,
		After:   after,
		From:    LaneOf(t, viewer.UserID),
		To:      LaneOf(after, viewer.UserID),
		Claimed: !t.HasAssignee(viewer.UserID),
	}
}

// Unclaim removes the viewer from the assignee set. A task left without
// assignees falls back to backlog and loses its completion time.
func Unclaim(t *models.Task, viewer models.Assignee) Transition {
	after := t.Clone()
	after.Assignees = t.WithoutAssignee(viewer.UserID)
	if after.IsUnassigned() {
		after.Status = models.StatusBacklog
		after.CompletedAt = nil
	}
	return Transition{
		Before:  t,
		After:   after,
		From:    LaneOf(t, viewer.UserID),
		To:      LaneOf(after, viewer.UserID),
		Dropped: t.HasAssignee(viewer.UserID),
	}
}
