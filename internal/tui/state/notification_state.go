package state

// NotificationLevel orders notifications by severity
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	// LevelWarning is used for changes that were undone
	LevelWarning
	LevelError
)

// maxNotifications caps the history; older messages are dropped first
const maxNotifications = 8

// Notification is one message for the header line
type Notification struct {
	Level   NotificationLevel
	Message string
}

// NotificationState keeps the messages raised since the last key press.
// Only the newest is drawn.
type NotificationState struct {
	items []Notification
}

func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add records a message, dropping the oldest beyond maxNotifications
func (s *NotificationState) Add(level NotificationLevel, message string) {
	if len(s.items) == maxNotifications {
		s.items = append(s.items[:0], s.items[1:]...)
	}
	s.items = append(s.items, Notification{Level: level, Message: message})
}

func (s *NotificationState) Clear() {
	s.items = s.items[:0]
}

// All returns the kept messages, oldest first
func (s *NotificationState) All() []Notification {
	return s.items
}

func (s *NotificationState) HasAny() bool {
	return len(s.items) > 0
}

// Latest returns the newest message
func (s *NotificationState) Latest() (Notification, bool) {
	if len(s.items) == 0 {
		return Notification{}, false
	}
	return s.items[len(s.items)-1], true
}
