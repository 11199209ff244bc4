package types

import "github.com/google/uuid"

// ID types give opaque store identifiers a domain meaning.
// All of them are UUID strings generated client-side so a task can be
// placed in local state before the store has acknowledged it.

// BoardID identifies a board (the scope of a change feed subscription)
type BoardID string

// TaskID identifies a task, unique within a board
type TaskID string

// UserID identifies a user that can view a board and claim tasks
type UserID string

// CategoryID identifies a board category
type CategoryID string

// NewBoardID returns a fresh random board identifier
func NewBoardID() BoardID {
	return BoardID(uuid.NewString())
}

// NewTaskID returns a fresh random task identifier
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

// NewCategoryID returns a fresh random category identifier
func NewCategoryID() CategoryID {
	return CategoryID(uuid.NewString())
}

func (id BoardID) String() string    { return string(id) }
func (id TaskID) String() string     { return string(id) }
func (id UserID) String() string     { return string(id) }
func (id CategoryID) String() string { return string(id) }

// IsZero reports whether the id is unset
func (id TaskID) IsZero() bool { return id == "" }

// IsZero reports whether the id is unset
func (id UserID) IsZero() bool { return id == "" }
