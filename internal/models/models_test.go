package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestValidationErrors_MatchTaxonomy(t *testing.T) {
	for _, err := range []error{
		ErrEmptyTitle, ErrTitleTooLong, ErrInvalidStatus, ErrInvalidLane,
		ErrUnassigned, ErrDuplicateClaim, ErrCompletedAt,
	} {
		assert.ErrorIs(t, err, ErrValidation, err.Error())
		assert.NotErrorIs(t, err, ErrPermissionDenied)
	}
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestTask_Validate(t *testing.T) {
	now := time.Now()
	alice := Assignee{UserID: "alice", Name: "Alice"}

	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{"backlog without assignees", Task{Title: "a", Status: StatusBacklog}, nil},
		{"in progress with assignee", Task{Title: "a", Status: StatusInProgress, Assignees: []Assignee{alice}}, nil},
		{"done with completion", Task{Title: "a", Status: StatusDone, CompletedAt: &now, Assignees: []Assignee{alice}}, nil},
		{"done relabeled without completion", Task{Title: "a", Status: StatusDone, Assignees: []Assignee{alice}}, nil},
		{"in progress unassigned", Task{Title: "a", Status: StatusInProgress}, ErrUnassigned},
		{"done unassigned", Task{Title: "a", Status: StatusDone, CompletedAt: &now}, ErrUnassigned},
		{"empty title", Task{Status: StatusBacklog}, ErrEmptyTitle},
		{"unknown status", Task{Title: "a", Status: "blocked"}, ErrInvalidStatus},
		{"duplicate assignee", Task{Title: "a", Status: StatusInProgress, Assignees: []Assignee{alice, alice}}, ErrDuplicateClaim},
		{"completed-at on backlog", Task{Title: "a", Status: StatusBacklog, CompletedAt: &now}, ErrCompletedAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestNormalize_FallsBackToBacklog(t *testing.T) {
	now := time.Now()
	task := Normalize(&Task{Title: "a", Status: StatusDone, CompletedAt: &now})

	assert.Equal(t, StatusBacklog, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.NoError(t, task.Validate())
}

func TestNormalize_CollapsesDuplicateAssignees(t *testing.T) {
	task := Normalize(&Task{
		Title:  "a",
		Status: StatusInProgress,
		Assignees: []Assignee{
			{UserID: "alice", Name: "Alice"},
			{UserID: "bob", Name: "Bob"},
			{UserID: "alice", Name: "Alice again"},
		},
	})

	require.Len(t, task.Assignees, 2)
	assert.Equal(t, "Alice", task.Assignees[0].Name)
	assert.Equal(t, types.UserID("bob"), task.Assignees[1].UserID)
	assert.Equal(t, StatusInProgress, task.Status)
}

// ============================================================================
// Assignee Helpers
// ============================================================================

func TestWithAssignee_IsIdempotent(t *testing.T) {
	task := &Task{Assignees: []Assignee{{UserID: "alice"}}}

	once := task.WithAssignee(Assignee{UserID: "bob"})
	task.Assignees = once
	twice := task.WithAssignee(Assignee{UserID: "bob"})

	assert.Len(t, once, 2)
	assert.Equal(t, once, twice)
}

func TestWithoutAssignee_DoesNotMutateReceiver(t *testing.T) {
	task := &Task{Assignees: []Assignee{{UserID: "alice"}, {UserID: "bob"}}}

	out := task.WithoutAssignee("alice")

	assert.Len(t, out, 1)
	assert.Len(t, task.Assignees, 2)
	assert.True(t, task.HasAssignee("alice"))
}

func TestClone_IsDeep(t *testing.T) {
	due := time.Now()
	orig := &Task{
		ID:        "t1",
		DueDate:   &due,
		Category:  &Category{ID: "c1", Name: "Ops"},
		Assignees: []Assignee{{UserID: "alice"}},
	}

	c := orig.Clone()
	c.Assignees[0].Name = "changed"
	c.Category.Name = "changed"
	*c.DueDate = due.Add(time.Hour)

	assert.Empty(t, orig.Assignees[0].Name)
	assert.Equal(t, "Ops", orig.Category.Name)
	assert.Equal(t, due, *orig.DueDate)
}

// ============================================================================
// Parsing
// ============================================================================

func TestParseLane(t *testing.T) {
	for in, want := range map[string]Lane{
		"backlog":     LaneBacklog,
		"my-tasks":    LaneMyTasks,
		"mine":        LaneMyTasks,
		"in_progress": LaneMyTasks,
		"done":        LaneDone,
	} {
		got, err := ParseLane(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLane("archive")
	assert.ErrorIs(t, err, ErrInvalidLane)
}

func TestTaskFields_Apply(t *testing.T) {
	now := time.Now()
	title := "new"
	task := &Task{Title: "old", Status: StatusDone, CompletedAt: &now, Category: &Category{ID: "c1"}}

	out := TaskFields{Title: &title, CompletedAt: SetTime(nil), Category: &Category{}}.Apply(task)

	assert.Equal(t, "new", out.Title)
	assert.Nil(t, out.CompletedAt)
	assert.Nil(t, out.Category)
	assert.Equal(t, "old", task.Title, "receiver untouched")
	assert.NotNil(t, task.CompletedAt)
}
