package events

import "sync"

// DefaultSubscriptionBuffer is the event buffer used by the built-in feeds
const DefaultSubscriptionBuffer = 16

// Subscription is a live stream of change signals for one board.
//
// Events are hints: when the buffer is full newer signals are dropped, which
// is harmless because a single pending signal already causes a full refetch.
// A terminal failure is reported once on Errors() and then Done() closes.
type Subscription struct {
	events chan Event
	errors chan error
	done   chan struct{}

	once sync.Once
	stop func()
}

// NewSubscription creates a subscription. stop is called once on Close and
// releases whatever the feed holds for it; it may be nil.
func NewSubscription(buffer int, stop func()) *Subscription {
	if buffer <= 0 {
		buffer = DefaultSubscriptionBuffer
	}
	return &Subscription{
		events: make(chan Event, buffer),
		errors: make(chan error, 1),
		done:   make(chan struct{}),
		stop:   stop,
	}
}

// Events returns the signal channel. It is never closed; watch Done().
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Errors returns a channel carrying at most one terminal error
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Done is closed once the subscription has ended for any reason
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Deliver hands an event to the subscriber without blocking.
// It returns false when the event was dropped.
func (s *Subscription) Deliver(e Event) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.events <- e:
		return true
	default:
		return false
	}
}

// Fail ends the subscription with err
func (s *Subscription) Fail(err error) {
	s.once.Do(func() {
		if err != nil {
			s.errors <- err
		}
		close(s.done)
		if s.stop != nil {
			s.stop()
		}
	})
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() error {
	s.Fail(nil)
	return nil
}
