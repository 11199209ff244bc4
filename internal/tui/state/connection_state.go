package state

// ConnectionStatus describes how the board learns about other clients' changes
type ConnectionStatus int

const (
	// Polling means no change feed is connected; the board refreshes on demand
	Polling ConnectionStatus = iota
	// Live means a change feed is connected
	Live
	// OutOfSync means the last refetch failed
	OutOfSync
)

func (s ConnectionStatus) String() string {
	switch s {
	case Live:
		return "live"
	case OutOfSync:
		return "out of sync"
	}
	return "manual refresh"
}

// ConnectionState tracks the sync status shown in the status bar
type ConnectionState struct {
	status ConnectionStatus
	live   bool
}

// NewConnectionState starts Live when a feed is connected, else Polling
func NewConnectionState(live bool) *ConnectionState {
	s := &ConnectionState{live: live}
	s.Recover()
	return s
}

// Status returns the current status
func (s *ConnectionState) Status() ConnectionStatus {
	return s.status
}

// MarkOutOfSync records a failed refetch
func (s *ConnectionState) MarkOutOfSync() {
	s.status = OutOfSync
}

// Recover returns to the status the board started with
func (s *ConnectionState) Recover() {
	if s.live {
		s.status = Live
	} else {
		s.status = Polling
	}
}
