package board

import (
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

func deny(t *models.Task, format string, args ...any) error {
	return fmt.Errorf("%w: task %s: %s", models.ErrPermissionDenied, t.ID, fmt.Sprintf(format, args...))
}

// CanMove decides whether the viewer may move a task into the target lane.
//
// Moving into my-tasks or done is always allowed because the mover claims the
// task. Moving into backlog is allowed and keeps the assignees. Moving out of
// done is reserved for the task's assignees.
func CanMove(t *models.Task, target models.Lane, viewer types.UserID) error {
	if !target.Valid() {
		return models.ErrInvalidLane
	}
	if viewer.IsZero() {
		return deny(t, "no viewer identity")
	}

	from := LaneOf(t, viewer)
	if from == models.LaneDone && target != models.LaneDone && !t.HasAssignee(viewer) {
		return deny(t, "only an assignee can reopen completed work")
	}

	if target == models.LaneDone {
		// completion is never valid without the completer tracked as an assignee
		claimed := &models.Task{Assignees: t.WithAssignee(models.Assignee{UserID: viewer})}
		if !claimed.HasAssignee(viewer) {
			return deny(t, "completion requires the viewer to be an assignee")
		}
	}
	return nil
}

// CanToggleCompletion decides whether the viewer may complete or reopen a task
// through a non-drag affordance. Claimed tasks are protected from non-assignees.
func CanToggleCompletion(t *models.Task, viewer types.UserID) error {
	if viewer.IsZero() {
		return deny(t, "no viewer identity")
	}
	if !t.IsUnassigned() && !t.HasAssignee(viewer) {
		return deny(t, "only an assignee can change completion of a claimed task")
	}
	return nil
}

// CanDelete applies the same ownership rule as completion
func CanDelete(t *models.Task, viewer types.UserID) error {
	if viewer.IsZero() {
		return deny(t, "no viewer identity")
	}
	if !t.IsUnassigned() && !t.HasAssignee(viewer) {
		return deny(t, "only an assignee can delete a claimed task")
	}
	return nil
}

// CanClaim decides whether the viewer may add themselves as an assignee
func CanClaim(t *models.Task, viewer types.UserID) error {
	if viewer.IsZero() {
		return deny(t, "no viewer identity")
	}
	return nil
}

// CanUnclaim decides whether the viewer may remove themselves as an assignee
func CanUnclaim(t *models.Task, viewer types.UserID) error {
	if viewer.IsZero() {
		return deny(t, "no viewer identity")
	}
	if !t.HasAssignee(viewer) {
		return deny(t, "viewer is not an assignee")
	}
	return nil
}
