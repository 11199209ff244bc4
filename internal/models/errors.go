package models

import (
	"errors"
	"fmt"
)

// Error taxonomy for board operations. Callers classify with errors.Is;
// the concrete error usually wraps one of these with task context.
var (
	// ErrPermissionDenied is returned when the gate rejects an action.
	// Nothing has been applied when this is returned.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation is returned when a task would violate an entity invariant.
	// Nothing has been applied when this is returned.
	ErrValidation = errors.New("validation failed")

	// ErrPersistence is returned when a store write fails after an optimistic
	// apply. Local state has already been rolled back when this is reported.
	ErrPersistence = errors.New("persistence failed")

	// ErrStaleReference is returned when a write targets a task that no longer
	// exists in the store. It is always reported together with ErrPersistence.
	ErrStaleReference = errors.New("task no longer exists")

	// ErrTaskNotFound is returned when a task id is not present locally or in the store
	ErrTaskNotFound = errors.New("task not found")

	// ErrMoveInFlight is returned when a task already has an unresolved mutation
	ErrMoveInFlight = errors.New("task has a pending change")
)

// Validation errors, all matching ErrValidation
var (
	ErrEmptyTitle     = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTitleTooLong   = fmt.Errorf("%w: task title cannot exceed %d characters", ErrValidation, MaxTitleLength)
	ErrInvalidStatus  = fmt.Errorf("%w: status must be backlog, in_progress or done", ErrValidation)
	ErrInvalidLane    = fmt.Errorf("%w: lane must be backlog, my-tasks or done", ErrValidation)
	ErrUnassigned     = fmt.Errorf("%w: task without assignees must stay in backlog", ErrValidation)
	ErrDuplicateClaim = fmt.Errorf("%w: assignee listed more than once", ErrValidation)
	ErrCompletedAt    = fmt.Errorf("%w: completed-at is only allowed on done tasks", ErrValidation)
)
