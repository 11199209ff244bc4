package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// Client is a connection to the lanes daemon. It publishes change signals in
// debounced batches and carries at most one board subscription at a time;
// subscribing again replaces the previous subscription.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	// Batching configuration
	eventQueue  chan Event
	debounce    time.Duration
	batching    bool
	batcherDone chan struct{}
	closed      bool

	// Reconnection configuration
	maxRetries  int
	baseDelay   time.Duration
	readTimeout time.Duration

	// Subscription state
	boardID    types.BoardID
	sub        *Subscription
	readerDone chan struct{}

	lastSequence int64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a new event client but does not connect.
// The debounce window defaults to 100ms and can be set with
// LANES_EVENT_DEBOUNCE_MS.
func NewClient(socketPath string) (*Client, error) {
	if socketPath == "" {
		return nil, fmt.Errorf("socket path is required")
	}

	debounceMs := 100
	if envVal := os.Getenv("LANES_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		batcherDone: make(chan struct{}),
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		readTimeout: 60 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Connect dials the daemon and starts the reader and batcher goroutines.
// It is a no-op when already connected.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrFeedClosed
	}
	connected := c.conn != nil
	c.mu.Unlock()

	if !connected {
		if err := c.dial(ctx); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.batching {
		c.batching = true
		go c.startBatcher()
	}
	if c.readerDone == nil {
		done := make(chan struct{})
		c.readerDone = done
		go c.readLoop(done)
	}
	return nil
}

// dial opens the socket and announces the current subscription
func (c *Client) dial(ctx context.Context) error {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", ClassifyDaemonError(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.conn != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("Error closing connection: %v", closeErr)
		}
		if c.closed {
			return ErrFeedClosed
		}
		return nil
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)
	// a restarted daemon counts from one again
	c.lastSequence = 0

	if err := c.encoder.Encode(subscribeMessage(c.boardID)); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("Error closing connection: %v", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}
	return nil
}

func subscribeMessage(boardID types.BoardID) Message {
	return Message{
		Version:   ProtocolVersion,
		Type:      MsgSubscribe,
		Subscribe: &SubscribeMessage{BoardID: boardID},
	}
}

// Publish queues an event to be sent to the daemon.
// Events are coalesced per board and scope within the debounce window.
// Returns ErrQueueFull instead of blocking.
func (c *Client) Publish(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrFeedClosed
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

type batchKey struct {
	board types.BoardID
	scope Scope
}

// startBatcher sends one signal per pending board and scope every debounce tick
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	pending := make(map[batchKey]Event)

	flushPending := func() {
		for key, event := range pending {
			if err := c.writeMessage(Message{
				Version: ProtocolVersion,
				Type:    MsgEvent,
				Event:   &event,
			}); err != nil {
				if !isConnectionError(err) {
					log.Printf("Failed to send batched event: %v", err)
				}
			}
			delete(pending, key)
		}
	}

	add := func(event Event) {
		if event.Type == "" {
			event.Type = EventChanged
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now()
		}
		key := batchKey{board: event.BoardID, scope: event.Scope}
		if prev, ok := pending[key]; ok && prev.TaskID != event.TaskID {
			event.TaskID = ""
		}
		pending[key] = event
	}

	for {
		select {
		case <-c.ctx.Done():
			flushPending()
			return

		case event, ok := <-c.eventQueue:
			if !ok {
				flushPending()
				return
			}
			add(event)

		case <-ticker.C:
			flushPending()
		}
	}
}

// writeMessage encodes one message with a short write deadline
func (c *Client) writeMessage(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	return c.encoder.Encode(msg)
}

// readLoop reads from the daemon until the client closes, reconnecting with
// backoff when the connection drops. When reconnection fails the current
// subscription is failed and the loop exits; a later Connect starts a new one.
func (c *Client) readLoop(done chan struct{}) {
	defer close(done)

	for {
		err := c.readEvents()
		if c.ctx.Err() != nil {
			return
		}

		log.Printf("Connection lost: %v, reconnecting...", err)
		c.dropConn()

		if c.reconnect(c.ctx) {
			log.Printf("Reconnected to daemon")
			continue
		}
		if c.ctx.Err() != nil {
			return
		}

		log.Printf("Failed to reconnect after %d attempts, giving up", c.maxRetries)

		c.mu.Lock()
		sub := c.sub
		c.sub = nil
		c.readerDone = nil
		c.mu.Unlock()

		if sub != nil {
			sub.Fail(fmt.Errorf("%w: %w", ErrNotConnected, err))
		}
		return
	}
}

// readEvents decodes messages and hands change signals to the subscription
func (c *Client) readEvents() error {
	for {
		var msg Message

		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return ErrNotConnected
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		if msg.Version != 0 && msg.Version != ProtocolVersion {
			log.Printf("Warning: received message with protocol version %d, expected %d", msg.Version, ProtocolVersion)
		}

		switch msg.Type {
		case MsgEvent:
			if msg.Event == nil || msg.Event.Type != EventChanged {
				continue
			}
			event := *msg.Event

			c.mu.Lock()
			fresh := event.SequenceID == 0 || event.SequenceID > c.lastSequence
			if fresh && event.SequenceID > 0 {
				c.lastSequence = event.SequenceID
			}
			sub, boardID := c.sub, c.boardID
			c.mu.Unlock()

			if fresh && sub != nil && event.Matches(boardID) {
				sub.Deliver(event)
			}

		case MsgPing:
			if err := c.writeMessage(Message{Version: ProtocolVersion, Type: MsgPong}); err != nil {
				if !isConnectionError(err) {
					log.Printf("Failed to send pong: %v", err)
				}
			}
		}
	}
}

func (c *Client) dropConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !isConnectionError(err) {
			log.Printf("Error closing connection: %v", err)
		}
		c.conn = nil
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, ErrNotConnected) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "use of closed network connection")
}

// reconnect attempts to reconnect to the daemon with exponential backoff.
// It tries up to maxRetries times, doubling the delay each time.
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
			if err := c.dial(ctx); err == nil {
				log.Printf("Reconnected to daemon (attempt %d/%d)", i+1, c.maxRetries)
				return true
			}

			log.Printf("Reconnection attempt %d/%d failed, retrying in %v", i+1, c.maxRetries, delay)
			delay *= 2 // 1s, 2s, 4s, 8s, 16s
		}
	}

	return false
}

// Subscribe points the connection at one board, connecting first if needed.
// An empty board subscribes to every board. Any previous subscription on
// this client is closed.
func (c *Client) Subscribe(ctx context.Context, boardID types.BoardID) (*Subscription, error) {
	if err := c.Connect(ctx); err != nil {
		return nil, err
	}

	var sub *Subscription
	sub = NewSubscription(DefaultSubscriptionBuffer, func() { c.release(sub) })

	c.mu.Lock()
	prev := c.sub
	c.sub, c.boardID = sub, boardID
	c.mu.Unlock()

	if err := c.writeMessage(subscribeMessage(boardID)); err != nil {
		c.mu.Lock()
		if c.sub == sub {
			c.sub = nil
		}
		c.mu.Unlock()
		return nil, fmt.Errorf("failed to send subscription: %w", err)
	}

	if prev != nil {
		_ = prev.Close()
	}
	return sub, nil
}

// release detaches a closed subscription if it is still the current one
func (c *Client) release(sub *Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sub == sub {
		c.sub = nil
	}
}

// Close flushes queued events, closes the connection and stops all goroutines.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	// lets the batcher flush before the connection goes away
	close(c.eventQueue)
	batching := c.batching
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if batching {
		<-c.batcherDone
	}
	if sub != nil {
		_ = sub.Close()
	}

	c.cancel()

	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	readerDone := c.readerDone
	c.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	if readerDone != nil {
		<-readerDone
	}
	return err
}
