package events

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// ProtocolVersion is carried on every wire message. Receivers log a warning
// on mismatch rather than dropping the message.
const ProtocolVersion = 1

// EventType indicates what kind of signal a message carries
type EventType string

const (
	EventChanged EventType = "changed"
	EventPing    EventType = "ping"
	EventPong    EventType = "pong"
)

// Scope names the kind of row that changed on a board
type Scope string

const (
	ScopeTasks       Scope = "tasks"
	ScopeAssignments Scope = "assignments"
)

// Event is a change signal for one board. It says that something changed,
// not what the new value is; receivers refetch.
type Event struct {
	Type       EventType     `json:"type"`
	BoardID    types.BoardID `json:"board_id,omitempty"` // empty = every board
	Scope      Scope         `json:"scope,omitempty"`
	TaskID     types.TaskID  `json:"task_id,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	SequenceID int64         `json:"sequence_id,omitempty"` // assigned by the daemon
}

// Matches reports whether the event is relevant to a subscriber of boardID.
// An empty board on either side matches everything.
func (e Event) Matches(boardID types.BoardID) bool {
	return e.BoardID == "" || boardID == "" || e.BoardID == boardID
}

// SubscribeMessage is sent by clients to pick the board they want signals for
type SubscribeMessage struct {
	BoardID types.BoardID `json:"board_id,omitempty"` // empty = every board
}

// Wire message types
const (
	MsgEvent     = "event"
	MsgSubscribe = "subscribe"
	MsgPing      = "ping"
	MsgPong      = "pong"
)

// Message wraps events and control messages on the socket
type Message struct {
	Version   int               `json:"version"`
	Type      string            `json:"type"` // one of the Msg* constants
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}
