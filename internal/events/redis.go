package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/lanes/internal/types"
)

// DefaultChannelPrefix namespaces the Redis channels used by RedisFeed
const DefaultChannelPrefix = "lanes"

// RedisFeed carries change signals over Redis Pub/Sub so clients on
// different machines sharing one store see each other's writes. Delivery is
// at-most-once, which is enough for refetch hints.
type RedisFeed struct {
	rdb     *redis.Client
	prefix  string
	timeout time.Duration

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewRedisFeed connects a feed with the given options. The connection is
// lazy; use Ping to check it.
func NewRedisFeed(opts *redis.Options, prefix string) *RedisFeed {
	return NewRedisFeedFromClient(redis.NewClient(opts), prefix)
}

// NewRedisFeedFromClient wraps an existing client. The feed owns it afterwards.
func NewRedisFeedFromClient(rdb *redis.Client, prefix string) *RedisFeed {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisFeed{
		rdb:     rdb,
		prefix:  prefix,
		timeout: 2 * time.Second,
		subs:    make(map[*Subscription]struct{}),
	}
}

// BoardChannel returns the channel carrying signals for one board
func BoardChannel(prefix string, boardID types.BoardID) string {
	return fmt.Sprintf("%s:board:%s:changes", prefix, boardID)
}

// Ping checks the Redis connection
func (f *RedisFeed) Ping(ctx context.Context) error {
	if err := f.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Publish sends the event to its board channel
func (f *RedisFeed) Publish(event Event) error {
	if event.BoardID == "" {
		return fmt.Errorf("publish: event has no board")
	}
	if event.Type == "" {
		event.Type = EventChanged
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	if err := f.rdb.Publish(ctx, BoardChannel(f.prefix, event.BoardID), payload).Err(); err != nil {
		return fmt.Errorf("publish to redis: %w", err)
	}
	return nil
}

// Subscribe listens on one board channel, or on every board when boardID is
// empty. It returns once Redis has confirmed the subscription.
func (f *RedisFeed) Subscribe(ctx context.Context, boardID types.BoardID) (*Subscription, error) {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return nil, ErrFeedClosed
	}

	var pubsub *redis.PubSub
	if boardID == "" {
		pubsub = f.rdb.PSubscribe(ctx, BoardChannel(f.prefix, "*"))
	} else {
		pubsub = f.rdb.Subscribe(ctx, BoardChannel(f.prefix, boardID))
	}

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to board %q: %w", boardID, err)
	}

	var sub *Subscription
	sub = NewSubscription(DefaultSubscriptionBuffer, func() {
		if err := pubsub.Close(); err != nil {
			slog.Debug("error closing redis subscription", "error", err)
		}
		f.mu.Lock()
		delete(f.subs, sub)
		f.mu.Unlock()
	})

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		_ = sub.Close()
		return nil, ErrFeedClosed
	}
	f.subs[sub] = struct{}{}
	f.mu.Unlock()

	go f.pump(pubsub, sub, boardID)

	return sub, nil
}

// pump forwards messages until the subscription ends. go-redis reconnects
// the underlying connection itself; a closed channel means the PubSub is gone.
func (f *RedisFeed) pump(pubsub *redis.PubSub, sub *Subscription, boardID types.BoardID) {
	ch := pubsub.Channel()

	for {
		select {
		case <-sub.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				sub.Fail(ErrFeedClosed)
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Warn("dropping malformed change signal", "channel", msg.Channel, "error", err)
				continue
			}
			if event.Type != EventChanged || !event.Matches(boardID) {
				continue
			}
			sub.Deliver(event)
		}
	}
}

// Close ends every open subscription and the Redis client
func (f *RedisFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	subs := make([]*Subscription, 0, len(f.subs))
	for s := range f.subs {
		subs = append(subs, s)
	}
	f.mu.Unlock()

	for _, s := range subs {
		s.Fail(ErrFeedClosed)
	}
	return f.rdb.Close()
}
