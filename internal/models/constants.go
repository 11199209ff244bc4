package models

// ============================================================================
// STATUS CONSTANTS
// ============================================================================

// Status is the persisted workflow state of a task
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus maps a user supplied string to a Status
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// ============================================================================
// LANE CONSTANTS
// ============================================================================

// Lane is a derived partition of the board for one viewer. Lanes are never
// stored; they are recomputed from task status and assignees.
type Lane string

const (
	LaneBacklog Lane = "backlog"
	LaneMyTasks Lane = "my-tasks"
	LaneDone    Lane = "done"
)

// AllLanes lists the lanes in display order
var AllLanes = []Lane{LaneBacklog, LaneMyTasks, LaneDone}

// Valid reports whether l is one of the known lanes
func (l Lane) Valid() bool {
	switch l {
	case LaneBacklog, LaneMyTasks, LaneDone:
		return true
	}
	return false
}

// ParseLane maps a user supplied lane name to a Lane.
// "mine" and "in_progress" are accepted as aliases for my-tasks.
func ParseLane(s string) (Lane, error) {
	switch s {
	case "mine", "in_progress", "in-progress":
		return LaneMyTasks, nil
	}
	l := Lane(s)
	if !l.Valid() {
		return "", ErrInvalidLane
	}
	return l, nil
}

// ============================================================================
// DISPLAY CONSTANTS
// ============================================================================

// UnknownUserName is shown for assignments whose user row no longer exists
const UnknownUserName = "Unknown user"

// MaxTitleLength is the longest title accepted for a task
const MaxTitleLength = 255
