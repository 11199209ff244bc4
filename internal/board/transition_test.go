package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/models"
)

func TestMove_ClaimIntoMyTasks(t *testing.T) {
	task := &models.Task{ID: "t", Title: "T", Status: models.StatusBacklog}
	u := assignee("u")

	tr := Move(task, models.LaneMyTasks, u, base)

	assert.Equal(t, models.StatusInProgress, tr.After.Status)
	assert.Equal(t, []models.Assignee{u}, tr.After.Assignees)
	assert.Nil(t, tr.After.CompletedAt)
	assert.True(t, tr.Claimed)
	assert.Equal(t, models.LaneBacklog, tr.From)
	assert.Equal(t, models.LaneMyTasks, tr.To)
	assert.Equal(t, models.LaneMyTasks, LaneOf(tr.After, u.UserID))
	assert.True(t, tr.StatusChanged())

	// input untouched
	assert.Equal(t, models.StatusBacklog, task.Status)
	assert.Empty(t, task.Assignees)
}

func TestMove_CompleteOwnTask(t *testing.T) {
	u := assignee("u")
	task := &models.Task{ID: "t", Title: "T", Status: models.StatusInProgress, Assignees: []models.Assignee{u}}
	moveTime := time.Now()

	tr := Move(task, models.LaneDone, u, moveTime)

	assert.Equal(t, models.StatusDone, tr.After.Status)
	require.NotNil(t, tr.After.CompletedAt)
	assert.False(t, tr.After.CompletedAt.Before(moveTime))
	assert.Equal(t, []models.Assignee{u}, tr.After.Assignees)
	assert.False(t, tr.Claimed)
	assert.NoError(t, tr.After.Validate())
}

func TestMove_CompletingUnassignedTaskClaimsIt(t *testing.T) {
	task := &models.Task{ID: "t", Title: "T", Status: models.StatusBacklog}
	v := assignee("v")

	tr := Move(task, models.LaneDone, v, base)

	assert.True(t, tr.Claimed)
	assert.True(t, tr.After.HasAssignee(v.UserID))
	assert.NoError(t, tr.After.Validate(), "done is never assignee-less")
}

func TestMove_BacklogKeepsAssignees(t *testing.T) {
	u := assignee("u")
	task := &models.Task{ID: "t", Title: "T", Status: models.StatusDone, CompletedAt: at(1), Assignees: []models.Assignee{u}}

	tr := Move(task, models.LaneBacklog, u, base)

	assert.Equal(t, models.StatusBacklog, tr.After.Status)
	assert.Nil(t, tr.After.CompletedAt)
	assert.Equal(t, []models.Assignee{u}, tr.After.Assignees)
	assert.False(t, tr.Claimed)
}

func TestMove_OnlyTouchesStatusFields(t *testing.T) {
	task := &models.Task{
		ID:          "t",
		Title:       "T",
		Description: "d",
		Status:      models.StatusBacklog,
		DueDate:     at(3),
		Category:    &models.Category{ID: "c", Name: "Ops"},
		CreatedAt:   base,
	}

	after := Move(task, models.LaneMyTasks, assignee("u"), base).After

	assert.Equal(t, task.Title, after.Title)
	assert.Equal(t, task.Description, after.Description)
	assert.Equal(t, task.DueDate, after.DueDate)
	assert.Equal(t, task.Category, after.Category)
	assert.Equal(t, task.CreatedAt, after.CreatedAt)
}

func TestMove_ClaimIsIdempotent(t *testing.T) {
	u := assignee("u")
	task := &models.Task{ID: "t", Title: "T", Status: models.StatusBacklog}

	first := Move(task, models.LaneMyTasks, u, base).After
	second := Move(first, models.LaneMyTasks, u, base)

	assert.Len(t, second.After.Assignees, 1)
	assert.False(t, second.Claimed)
	assert.False(t, second.StatusChanged())
}

func TestToggleCompletion(t *testing.T) {
	u := assignee("u")
	open := &models.Task{ID: "t", Title: "T", Status: models.StatusInProgress, Assignees: []models.Assignee{u}}

	done := ToggleCompletion(open, u, base).After
	assert.Equal(t, models.StatusDone, done.Status)

	reopened := ToggleCompletion(done, u, base).After
	assert.Equal(t, models.StatusInProgress, reopened.Status)
	assert.Nil(t, reopened.CompletedAt)
}

func TestUnclaim_LastAssigneeFallsBackToBacklog(t *testing.T) {
	u := assignee("u")
	task := &models.Task{ID: "t", Title: "T", Status: models.StatusDone, CompletedAt: at(1), Assignees: []models.Assignee{u}}

	tr := Unclaim(task, u)

	assert.True(t, tr.Dropped)
	assert.Empty(t, tr.After.Assignees)
	assert.Equal(t, models.StatusBacklog, tr.After.Status)
	assert.Nil(t, tr.After.CompletedAt)
	assert.NoError(t, tr.After.Validate())
}

func TestUnclaim_OtherAssigneesKeepStatus(t *testing.T) {
	u, v := assignee("u"), assignee("v")
	task := &models.Task{ID: "t", Title: "T", Status: models.StatusInProgress, Assignees: []models.Assignee{u, v}}

	tr := Unclaim(task, u)

	assert.Equal(t, models.StatusInProgress, tr.After.Status)
	assert.Equal(t, []models.Assignee{v}, tr.After.Assignees)
	assert.Equal(t, models.LaneMyTasks, tr.From)
	assert.Equal(t, models.LaneBacklog, tr.To)
}

func TestClaim_KeepsStatus(t *testing.T) {
	task := &models.Task{ID: "t", Title: "T", Status: models.StatusBacklog}

	tr := Claim(task, assignee("u"))

	assert.True(t, tr.Claimed)
	assert.Equal(t, models.StatusBacklog, tr.After.Status)
	assert.False(t, tr.StatusChanged())
}
