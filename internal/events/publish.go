package events

import (
	"log/slog"
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff.
// Returns the error from the final attempt if all retries fail.
//
// Signals are hints; callers log the failure and carry on, since the
// write they describe has already been committed.
func PublishWithRetry(p Publisher, event Event, maxRetries int) error {
	if p == nil {
		return nil
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := p.Publish(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"scope", event.Scope,
					"board_id", event.BoardID)
			}
			return nil
		}

		lastErr = err

		if attempt < maxRetries-1 {
			// 50ms, 100ms, 200ms
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			time.Sleep(delay)
		}
	}

	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"scope", event.Scope,
		"board_id", event.BoardID,
		"error", lastErr)

	return lastErr
}

// Changed builds a change signal for a board scope stamped with the current time
func Changed(boardID types.BoardID, taskID types.TaskID, scope Scope) Event {
	return Event{
		Type:      EventChanged,
		BoardID:   boardID,
		TaskID:    taskID,
		Scope:     scope,
		Timestamp: time.Now(),
	}
}
