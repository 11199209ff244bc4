package models

import (
	"slices"
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Task represents a single work item on a board
type Task struct {
	ID          types.TaskID
	BoardID     types.BoardID
	Title       string
	Description string
	Status      Status
	DueDate     *time.Time // Optional
	CompletedAt *time.Time // Set only when the task was completed
	Category    *Category  // Optional, denormalized for display
	Assignees   []Assignee // Ordered by claim time, at most one entry per user
	CreatedAt   time.Time
}

// Assignee is the denormalized display record of a user assigned to a task
type Assignee struct {
	UserID    types.UserID
	Name      string
	AvatarURL string
}

// Category is the denormalized display record of a task category
type Category struct {
	ID    types.CategoryID
	Name  string
	Color string // Hex color code (e.g., "#7D56F4")
}

// User is a board member that can claim tasks
type User struct {
	ID        types.UserID
	Name      string
	AvatarURL string
}

// Board is the container a change feed is scoped to
type Board struct {
	ID        types.BoardID
	Name      string
	CreatedAt time.Time
}

// UnknownAssignee is the placeholder used when an assignment points at a
// user the store could not resolve
func UnknownAssignee(id types.UserID) Assignee {
	return Assignee{UserID: id, Name: UnknownUserName}
}

// AssigneeFromUser builds the assignee record for a user
func AssigneeFromUser(u User) Assignee {
	return Assignee{UserID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

// HasAssignee reports whether the user is among the task's assignees
func (t *Task) HasAssignee(id types.UserID) bool {
	return slices.ContainsFunc(t.Assignees, func(a Assignee) bool {
		return a.UserID == id
	})
}

// IsUnassigned reports whether nobody has claimed the task
func (t *Task) IsUnassigned() bool {
	return len(t.Assignees) == 0
}

// WithAssignee returns the assignee list with a appended, unless the user is
// already present. The receiver is never modified.
func (t *Task) WithAssignee(a Assignee) []Assignee {
	out := slices.Clone(t.Assignees)
	if t.HasAssignee(a.UserID) {
		return out
	}
	return append(out, a)
}

// WithoutAssignee returns the assignee list with the user removed.
// The receiver is never modified.
func (t *Task) WithoutAssignee(id types.UserID) []Assignee {
	return slices.DeleteFunc(slices.Clone(t.Assignees), func(a Assignee) bool {
		return a.UserID == id
	})
}

// Clone returns a deep copy of the task
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.DueDate = cloneTime(t.DueDate)
	c.CompletedAt = cloneTime(t.CompletedAt)
	if t.Category != nil {
		cat := *t.Category
		c.Category = &cat
	}
	c.Assignees = slices.Clone(t.Assignees)
	return &c
}

// CloneTasks deep-copies a task list
func CloneTasks(tasks []*Task) []*Task {
	if tasks == nil {
		return nil
	}
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
