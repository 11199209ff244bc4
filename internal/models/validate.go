package models

import "github.com/thenoetrevino/lanes/internal/types"

// Validate checks the entity invariants of a task:
//   - title is present and bounded
//   - status is known
//   - a task in progress or done has at least one assignee
//   - each user appears at most once in the assignee set
//   - completed-at is only set on done tasks
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	if t.Status != StatusBacklog && t.IsUnassigned() {
		return ErrUnassigned
	}
	seen := make(map[types.UserID]struct{}, len(t.Assignees))
	for _, a := range t.Assignees {
		if _, dup := seen[a.UserID]; dup {
			return ErrDuplicateClaim
		}
		seen[a.UserID] = struct{}{}
	}
	if t.CompletedAt != nil && t.Status != StatusDone {
		return ErrCompletedAt
	}
	return nil
}

// Normalize repairs a task read from the store so it satisfies Validate's
// structural invariants. Unknown or assignee-less active statuses fall back
// to backlog, duplicate assignees are collapsed keeping the first entry, and
// a stray completed-at is dropped. Title problems are left alone.
func Normalize(t *Task) *Task {
	if len(t.Assignees) > 1 {
		seen := make(map[types.UserID]struct{}, len(t.Assignees))
		kept := t.Assignees[:0:0]
		for _, a := range t.Assignees {
			if _, dup := seen[a.UserID]; dup {
				continue
			}
			seen[a.UserID] = struct{}{}
			kept = append(kept, a)
		}
		t.Assignees = kept
	}
	if !t.Status.Valid() || (t.Status != StatusBacklog && t.IsUnassigned()) {
		t.Status = StatusBacklog
	}
	if t.Status != StatusDone {
		t.CompletedAt = nil
	}
	return t
}
