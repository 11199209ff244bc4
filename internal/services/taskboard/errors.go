package taskboard

import "errors"

// ErrAlreadyStarted is returned when Start is called twice
var ErrAlreadyStarted = errors.New("board service already started")
