package cli

import (
	"errors"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, feed errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task not found, board not found, user not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty titles, unknown lanes, bad colors, or a status edit
	// that has to go through a move.
	ExitValidation = 5

	// ExitPermission indicates the viewer may not perform the action.
	// Use for: Moving or completing a task claimed by someone else.
	ExitPermission = 6
)

// exitError carries the exit code a failed command should terminate with
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// WithExitCode attaches an explicit exit code to err
func WithExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// reportedError marks an error whose message the user has already seen
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already printed by a formatter, so
// main does not print it twice
func Reported(err error) bool {
	var re *reportedError
	return errors.As(err, &re)
}

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}

	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		return ExitPermission
	case errors.Is(err, models.ErrTaskNotFound),
		errors.Is(err, database.ErrBoardNotFound),
		errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrCategoryNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrValidation):
		return ExitValidation
	}
	return ExitError
}

// ErrorCode returns the machine readable code reported in JSON errors
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		return "PERMISSION_DENIED"
	case errors.Is(err, models.ErrMoveInFlight):
		return "CHANGE_IN_FLIGHT"
	case errors.Is(err, models.ErrStaleReference):
		return "STALE_REFERENCE"
	case errors.Is(err, models.ErrPersistence):
		return "PERSISTENCE_ERROR"
	case errors.Is(err, models.ErrTaskNotFound):
		return "TASK_NOT_FOUND"
	case errors.Is(err, database.ErrBoardNotFound):
		return "BOARD_NOT_FOUND"
	case errors.Is(err, database.ErrUserNotFound):
		return "USER_NOT_FOUND"
	case errors.Is(err, database.ErrCategoryNotFound):
		return "CATEGORY_NOT_FOUND"
	case errors.Is(err, models.ErrValidation):
		return "VALIDATION_ERROR"
	}
	return "ERROR"
}
