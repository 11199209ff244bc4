package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// TaskView is the JSON shape of a task as one viewer sees it
type TaskView struct {
	ID          string         `json:"id"`
	BoardID     string         `json:"board_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"`
	Lane        string         `json:"lane"`
	Category    *CategoryView  `json:"category,omitempty"`
	Assignees   []AssigneeView `json:"assignees"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`

	task *models.Task
}

// AssigneeView is the JSON shape of an assignee
type AssigneeView struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// CategoryView is the JSON shape of a category
type CategoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// NewTaskView builds the view of t for viewer
func NewTaskView(t *models.Task, viewer types.UserID) TaskView {
	v := TaskView{
		ID:          string(t.ID),
		BoardID:     string(t.BoardID),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Lane:        string(board.LaneOf(t, viewer)),
		Assignees:   make([]AssigneeView, 0, len(t.Assignees)),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		task:        t,
	}
	if t.Category != nil {
		v.Category = NewCategoryView(t.Category)
	}
	for _, a := range t.Assignees {
		v.Assignees = append(v.Assignees, AssigneeView{
			UserID:    string(a.UserID),
			Name:      a.Name,
			AvatarURL: a.AvatarURL,
		})
	}
	return v
}

// NewCategoryView builds the view of a category
func NewCategoryView(c *models.Category) *CategoryView {
	return &CategoryView{ID: string(c.ID), Name: c.Name, Color: c.Color}
}

// GetID returns the task id for quiet output
func (v TaskView) GetID() string {
	return v.ID
}

// String renders the task as one board line
func (v TaskView) String() string {
	title := v.Title
	if v.Status == string(models.StatusDone) {
		title = styles.DoneStyle.Render(title)
	} else if v.Lane == string(models.LaneMyTasks) {
		title = styles.MineStyle.Render(title)
	}

	parts := []string{styles.SubtitleStyle.Render(ShortID(types.TaskID(v.ID))), title}
	if v.task != nil {
		if v.task.Category != nil {
			parts = append(parts, styles.RenderCategoryChip(v.task.Category))
		}
		if len(v.task.Assignees) > 0 {
			parts = append(parts, styles.RenderAssignees(v.task.Assignees))
		}
	}
	if v.DueDate != nil {
		parts = append(parts, styles.SubtitleStyle.Render("due "+v.DueDate.Format(DueDateLayout)))
	}
	return strings.Join(parts, "  ")
}

// BoardView is the JSON shape of a board
type BoardView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBoardView builds the view of a board
func NewBoardView(b *models.Board) BoardView {
	return BoardView{ID: string(b.ID), Name: b.Name, CreatedAt: b.CreatedAt}
}

// GetID returns the board id for quiet output
func (v BoardView) GetID() string {
	return v.ID
}

func (v BoardView) String() string {
	return fmt.Sprintf("%s  %s", styles.SubtitleStyle.Render(v.ID), styles.TitleStyle.Render(v.Name))
}

// LanesView is the JSON shape of a board partitioned for one viewer
type LanesView struct {
	Board   BoardView  `json:"board"`
	Viewer  string     `json:"viewer"`
	Backlog []TaskView `json:"backlog"`
	MyTasks []TaskView `json:"my_tasks"`
	Done    []TaskView `json:"done"`
}

// NewLanesView builds the view of the viewer's lanes
func NewLanesView(b *models.Board, viewer types.UserID, lanes board.Lanes) LanesView {
	conv := func(tasks []*models.Task) []TaskView {
		out := make([]TaskView, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, NewTaskView(t, viewer))
		}
		return out
	}
	return LanesView{
		Board:   NewBoardView(b),
		Viewer:  string(viewer),
		Backlog: conv(lanes.Backlog),
		MyTasks: conv(lanes.MyTasks),
		Done:    conv(lanes.Done),
	}
}

// GetID returns the board id for quiet output
func (v LanesView) GetID() string {
	return v.Board.ID
}

// String renders the three lanes one after another
func (v LanesView) String() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(v.Board.Name))
	b.WriteString(styles.SubtitleStyle.Render("  as @" + v.Viewer))
	b.WriteString("\n")

	section := func(name string, tasks []TaskView) {
		b.WriteString(styles.SectionStyle.Render(fmt.Sprintf("%s (%d)", name, len(tasks))))
		b.WriteString("\n")
		if len(tasks) == 0 {
			b.WriteString("  " + styles.SubtitleStyle.Render("nothing here") + "\n")
			return
		}
		for _, t := range tasks {
			b.WriteString("  " + t.String() + "\n")
		}
	}
	section("Backlog", v.Backlog)
	section("My Tasks", v.MyTasks)
	section("Done", v.Done)
	return strings.TrimRight(b.String(), "\n")
}

// GetID returns the category id for quiet output
func (v *CategoryView) GetID() string {
	return v.ID
}

// UserView is the JSON shape of a registered user
type UserView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// NewUserView builds the view of a user
func NewUserView(u *models.User) UserView {
	return UserView{ID: string(u.ID), Name: u.Name, AvatarURL: u.AvatarURL}
}

// GetID returns the user id for quiet output
func (v UserView) GetID() string {
	return v.ID
}

func (v UserView) String() string {
	return fmt.Sprintf("%s  %s", styles.TitleStyle.Render("@"+v.ID), v.Name)
}
