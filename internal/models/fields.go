package models

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// NullableTime is a partial-update value for an optional timestamp.
// Set=false leaves the column alone; Set=true writes Time, and a nil Time
// clears the column.
type NullableTime struct {
	Set  bool
	Time *time.Time
}

// SetTime returns a NullableTime that writes t (nil clears)
func SetTime(t *time.Time) NullableTime {
	return NullableTime{Set: true, Time: cloneTime(t)}
}

// TaskFields is a partial update of a task row.
// Fields with pointers are optional - nil means don't update.
type TaskFields struct {
	Title       *string
	Description *string
	Status      *Status
	CompletedAt NullableTime
	DueDate     NullableTime
	Category    *Category // Non-nil with empty ID clears the category
}

// IsEmpty reports whether the update touches no field
func (f TaskFields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.Status == nil &&
		!f.CompletedAt.Set && !f.DueDate.Set && f.Category == nil
}

// Apply copies the set fields onto a clone of t
func (f TaskFields) Apply(t *Task) *Task {
	out := t.Clone()
	if f.Title != nil {
		out.Title = *f.Title
	}
	if f.Description != nil {
		out.Description = *f.Description
	}
	if f.Status != nil {
		out.Status = *f.Status
	}
	if f.CompletedAt.Set {
		out.CompletedAt = cloneTime(f.CompletedAt.Time)
	}
	if f.DueDate.Set {
		out.DueDate = cloneTime(f.DueDate.Time)
	}
	if f.Category != nil {
		if f.Category.ID == "" {
			out.Category = nil
		} else {
			cat := *f.Category
			out.Category = &cat
		}
	}
	return out
}

// StatusFields builds the partial update that persists a task's status and
// completion timestamp
func StatusFields(t *Task) TaskFields {
	status := t.Status
	return TaskFields{
		Status:      &status,
		CompletedAt: SetTime(t.CompletedAt),
	}
}

// NewTask describes a task to be created
type NewTask struct {
	ID          types.TaskID // Optional; generated when empty
	Title       string
	Description string
	DueDate     *time.Time
	Category    *Category // Optional
}
