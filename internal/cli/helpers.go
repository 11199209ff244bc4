package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
	"github.com/thenoetrevino/lanes/internal/types"
)

// BoardEnvVar names the environment variable `lanes use board` exports
const BoardEnvVar = "LANES_BOARD"

// DueDateLayout is the format accepted by --due
const DueDateLayout = "2006-01-02"

// minPrefixLength is the shortest task id prefix accepted on the command line
const minPrefixLength = 4

var colorHex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateColorHex validates that a color string is in valid hex format #RRGGBB
func ValidateColorHex(color string) error {
	if !colorHex.MatchString(color) {
		return fmt.Errorf("%w: color must be in hex format #RRGGBB (e.g., #FF0000), got: %s", models.ErrValidation, color)
	}
	return nil
}

// ParseDueDate parses a --due value. An empty string or "none" clears it.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	d, err := time.ParseInLocation(DueDateLayout, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: due date must look like %s, got: %s", models.ErrValidation, DueDateLayout, s)
	}
	return &d, nil
}

// ParseLane maps a lane argument, accepting the same aliases as the board
func ParseLane(s string) (models.Lane, error) {
	lane, err := models.ParseLane(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("invalid lane '%s' (must be: backlog, my-tasks, done): %w", s, err)
	}
	return lane, nil
}

// BoardRef returns ref, or the board selected with `lanes use board` when
// ref is blank
func BoardRef(ref string) string {
	if strings.TrimSpace(ref) != "" {
		return ref
	}
	return os.Getenv(BoardEnvVar)
}

// ResolveBoard finds a board by id, or by case-insensitive name when no id
// matches. Ambiguous names are a validation error.
func ResolveBoard(ctx context.Context, repo *database.Repository, ref string) (*models.Board, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, WithExitCode(fmt.Errorf("%w: board is required, pass it or run 'eval $(lanes use board <board>)'", models.ErrValidation), ExitUsage)
	}

	b, err := repo.GetBoard(ctx, types.BoardID(ref))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, database.ErrBoardNotFound) {
		return nil, err
	}

	boards, err := repo.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	var found []*models.Board
	for _, b := range boards {
		if strings.EqualFold(b.Name, ref) {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", database.ErrBoardNotFound, ref)
	case 1:
		return found[0], nil
	}
	return nil, fmt.Errorf("%w: %d boards are named %q, use the board id", models.ErrValidation, len(found), ref)
}

// ResolveTask finds a task by full id. When boardRef is set an unambiguous
// id prefix on that board is accepted too.
func ResolveTask(ctx context.Context, repo *database.Repository, boardRef, ref string) (*models.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: task id is required", models.ErrValidation)
	}

	t, err := repo.GetTask(ctx, types.TaskID(ref))
	if err == nil || !errors.Is(err, models.ErrTaskNotFound) || boardRef == "" {
		return t, err
	}
	if len(ref) < minPrefixLength {
		return nil, fmt.Errorf("%w: task id prefix must be at least %d characters", models.ErrValidation, minPrefixLength)
	}

	b, err := ResolveBoard(ctx, repo, boardRef)
	if err != nil {
		return nil, err
	}
	tasks, err := repo.ListTasks(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	var found *models.Task
	for _, t := range tasks {
		if !strings.HasPrefix(string(t.ID), ref) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: task id prefix %q is ambiguous", models.ErrValidation, ref)
		}
		found = t
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrTaskNotFound, ref)
	}
	return found, nil
}

// ResolveCategory finds a category of the board by id or case-insensitive name
func ResolveCategory(ctx context.Context, repo *database.Repository, boardID types.BoardID, ref string) (*models.Category, error) {
	cats, err := repo.GetCategories(ctx, boardID)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		if string(c.ID) == ref || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", database.ErrCategoryNotFound, ref)
}

// LoadBoard builds a service for the board and loads it once. It is not
// started: one-shot commands neither watch the feed nor need to.
// The caller closes it, which waits for pending writes.
func (c *CLI) LoadBoard(ctx context.Context, boardID types.BoardID) (*taskboard.Service, error) {
	s, err := c.App.Board(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if err := s.Reconcile(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Mutate runs op against the task's board and waits for the write. It
// returns the task as the board holds it afterwards, or nil once it is gone.
func (c *CLI) Mutate(ctx context.Context, t *models.Task, op func(*taskboard.Service) (*taskboard.Pending, error)) (*models.Task, error) {
	s, err := c.LoadBoard(ctx, t.BoardID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	p, err := op(s)
	if err := Settle(ctx, p, err); err != nil {
		return nil, err
	}
	after, err := s.Task(t.ID)
	if errors.Is(err, models.ErrTaskNotFound) {
		return nil, nil
	}
	return after, err
}

// Settle waits for a mutation started by a command to resolve
func Settle(ctx context.Context, p *taskboard.Pending, err error) error {
	if err != nil {
		return err
	}
	return p.Wait(ctx)
}

// ShortID abbreviates a task id for human-readable output
func ShortID(id types.TaskID) string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
