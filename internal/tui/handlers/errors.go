package handlers

import (
	"errors"

	"github.com/thenoetrevino/lanes/internal/models"
)

// describe turns a service error into a one-line notification
func describe(err error) string {
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		return "Only the task's assignees can do that"
	case errors.Is(err, models.ErrMoveInFlight):
		return "Still saving the previous change to this task"
	case errors.Is(err, models.ErrStaleReference):
		return "That task was changed elsewhere; the board was refreshed"
	case errors.Is(err, models.ErrPersistence):
		return "Change not saved and undone: " + err.Error()
	case errors.Is(err, models.ErrTaskNotFound):
		return "That task no longer exists"
	}
	return err.Error()
}
