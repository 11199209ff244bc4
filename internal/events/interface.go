package events

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Publisher sends change signals to other clients. Implementations return
// promptly; a lost signal only delays other clients until their next refetch.
type Publisher interface {
	Publish(event Event) error
}

// Subscriber opens a signal stream for one board
type Subscriber interface {
	Subscribe(ctx context.Context, boardID types.BoardID) (*Subscription, error)
}

// Feed is a full change feed: both directions plus teardown
type Feed interface {
	Publisher
	Subscriber
	Close() error
}

var (
	_ Feed = (*Client)(nil)
	_ Feed = (*RedisFeed)(nil)
)
