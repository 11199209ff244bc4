package events

import (
	"errors"
	"os"
	"syscall"
)

var (
	ErrNotConnected = errors.New("not connected to daemon")
	ErrQueueFull    = errors.New("event queue full")
	ErrFeedClosed   = errors.New("change feed closed")
)

// ErrorCode says why the daemon socket could not be used
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

const startHint = "Start the daemon: lanes-daemon &"

// DaemonError is a dial failure with a hint for the user
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Err     error
}

func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

func (e *DaemonError) Unwrap() error {
	return e.Err
}

// dialFailures is checked in order; the first match classifies the error
var dialFailures = []struct {
	match func(error) bool
	code  ErrorCode
	msg   string
	hint  string
}{
	{
		match: func(err error) bool { return os.IsNotExist(err) || errors.Is(err, syscall.ENOENT) },
		code:  ErrSocketNotFound,
		msg:   "Socket file not found",
		hint:  startHint,
	},
	{
		match: func(err error) bool { return os.IsPermission(err) || errors.Is(err, syscall.EACCES) },
		code:  ErrSocketPermission,
		msg:   "Permission denied",
		hint:  "Check the socket directory permissions: chmod 700 ~/.lanes/",
	},
	{
		match: func(err error) bool { return errors.Is(err, syscall.ECONNREFUSED) },
		code:  ErrConnectionRefused,
		msg:   "Connection refused",
		hint:  "The daemon may have crashed. Remove the stale socket and restart it",
	},
}

// ClassifyDaemonError wraps a dial error in a DaemonError. Errors matching
// no known cause are reported as a daemon that is not running.
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}
	for _, f := range dialFailures {
		if f.match(err) {
			return &DaemonError{Code: f.code, Message: f.msg, Hint: f.hint, Err: err}
		}
	}
	return &DaemonError{Code: ErrDaemonNotRunning, Message: "Daemon not running", Hint: startHint, Err: err}
}
