package state

import "github.com/thenoetrevino/lanes/internal/models"

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	HelpMode                      // Displaying help screen
	DeleteConfirmMode             // Confirming task deletion
	DetailMode                    // Reading one task
	AddTaskMode                   // Typing the title of a new task
)

// UIState manages the user interface state.
// This includes lane and task selection, per-lane scrolling, terminal
// dimensions and the current interaction mode.
type UIState struct {
	// selectedLane is the index into models.AllLanes of the selected lane
	selectedLane int

	// selectedTask is the index of the selected task within the selected lane
	selectedTask int

	width  int
	height int

	mode Mode

	// taskScrollOffsets is the index of the first visible task per lane
	taskScrollOffsets map[models.Lane]int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:              NormalMode,
		taskScrollOffsets: make(map[models.Lane]int),
	}
}

// SelectedLane returns the index of the selected lane
func (s *UIState) SelectedLane() int {
	return s.selectedLane
}

// SetSelectedLane selects a lane, clamped to the three lanes
func (s *UIState) SetSelectedLane(index int) {
	s.selectedLane = max(0, min(index, len(models.AllLanes)-1))
}

// Lane returns the selected lane
func (s *UIState) Lane() models.Lane {
	return models.AllLanes[s.selectedLane]
}

// SelectedTask returns the index of the currently selected task.
func (s *UIState) SelectedTask() int {
	return s.selectedTask
}

// SetSelectedTask updates the selected task index.
func (s *UIState) SetSelectedTask(index int) {
	s.selectedTask = max(index, 0)
}

// ClampSelection keeps the task selection inside a lane of n tasks
func (s *UIState) ClampSelection(n int) {
	if s.selectedTask >= n {
		s.selectedTask = max(n-1, 0)
	}
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width.
func (s *UIState) SetWidth(width int) {
	s.width = width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the height left for the lanes.
// This is terminal height minus header and status bar, ensuring a minimum of 5.
func (s *UIState) ContentHeight() int {
	const headerHeight = 2    // board title + gap line
	const statusBarHeight = 1 // status bar
	return max(s.height-headerHeight-statusBarHeight, 5)
}

// LaneWidth splits the terminal width evenly between the lanes
func (s *UIState) LaneWidth() int {
	return max(s.width/len(models.AllLanes), 20)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// TaskScrollOffset returns the first visible task of a lane
func (s *UIState) TaskScrollOffset(lane models.Lane) int {
	return s.taskScrollOffsets[lane]
}

// EnsureTaskVisible scrolls the selected lane so the selected task is within
// the visible window of maxVisible tasks
func (s *UIState) EnsureTaskVisible(maxVisible int) {
	if maxVisible < 1 {
		maxVisible = 1
	}
	lane := s.Lane()
	offset := s.taskScrollOffsets[lane]
	switch {
	case s.selectedTask < offset:
		offset = s.selectedTask
	case s.selectedTask >= offset+maxVisible:
		offset = s.selectedTask - maxVisible + 1
	}
	s.taskScrollOffsets[lane] = max(offset, 0)
}
