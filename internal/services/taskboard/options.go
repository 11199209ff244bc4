package taskboard

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/events"
)

const (
	// DefaultPersistTimeout bounds the store writes of one mutation
	DefaultPersistTimeout = 10 * time.Second

	// DefaultDebounce is the quiet period before a signal burst is refetched
	DefaultDebounce = 150 * time.Millisecond

	// DefaultResubscribeDelay is the first wait after the feed drops
	DefaultResubscribeDelay = time.Second

	// maxResubscribeDelay caps the exponential resubscribe backoff
	maxResubscribeDelay = 30 * time.Second

	// maxDebounceFactor caps how long a continuous burst can postpone a
	// refetch, as a multiple of the debounce window
	maxDebounceFactor = 4
)

// Option is a functional option for configuring a Service
type Option func(*Service)

// WithFeed sets the change feed the reconciler subscribes to
func WithFeed(feed events.Subscriber) Option {
	return func(s *Service) {
		s.feed = feed
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithPersistTimeout bounds each mutation's store writes; a timeout rolls back
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// WithDebounce sets the trailing-edge window for change signals
func WithDebounce(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// WithResubscribeDelay sets the initial backoff after the feed drops
func WithResubscribeDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.resubscribeDelay = d
		}
	}
}

// WithLanesHook is called with fresh lanes after every local change,
// rollback and reconciliation. It must not call back into the service's
// mutating methods synchronously.
func WithLanesHook(fn func(board.Lanes)) Option {
	return func(s *Service) {
		s.lanesHook = fn
	}
}

// WithFailureHook receives every rolled-back mutation and failed
// reconciliation, after local state has been repaired
func WithFailureHook(fn func(error)) Option {
	return func(s *Service) {
		s.failureHook = fn
	}
}
