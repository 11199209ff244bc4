// Package daemon fans change signals out between lanes clients on one
// machine over a Unix domain socket.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/types"
)

// client is one connected socket
type client struct {
	conn      net.Conn
	send      chan events.Message
	boardID   types.BoardID // empty = every board
	lastPong  time.Time
	mu        sync.Mutex // protects boardID and lastPong
	closeOnce sync.Once
}

func (c *client) board() types.BoardID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.boardID
}

// tuning holds the daemon's buffer sizes and health timings
type tuning struct {
	broadcastBuffer int
	clientBuffer    int
	pingInterval    time.Duration
	staleAfter      time.Duration
}

// tuningFromEnv reads LANES_DAEMON_* overrides. A client that misses three
// pings in a row is considered stale.
func tuningFromEnv() tuning {
	ping := time.Duration(envInt("LANES_DAEMON_PING_SECONDS", 30)) * time.Second
	return tuning{
		broadcastBuffer: envInt("LANES_DAEMON_BROADCAST_BUFFER", 100),
		clientBuffer:    envInt("LANES_DAEMON_CLIENT_BUFFER", 10),
		pingInterval:    ping,
		staleAfter:      3 * ping,
	}
}

// envInt reads a positive integer from the environment
func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return def
}

// Server is the lanes signal daemon
type Server struct {
	socketPath string
	listener   net.Listener
	tuning     tuning

	mu      sync.RWMutex
	clients map[*client]struct{}

	ctx          context.Context
	cancel       context.CancelFunc
	broadcast    chan events.Event
	metrics      *Metrics
	sequence     atomic.Int64
	shutdownOnce sync.Once
}

// NewServer creates the socket (removing a stale one) but does not serve yet.
// Buffer sizes and the ping interval can be tuned with LANES_DAEMON_* vars.
func NewServer(socketPath string) (*Server, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale socket: %w", err)
	}

	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	t := tuningFromEnv()
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		socketPath: socketPath,
		listener:   listener,
		tuning:     t,
		clients:    make(map[*client]struct{}),
		ctx:        ctx,
		cancel:     cancel,
		broadcast:  make(chan events.Event, t.broadcastBuffer),
		metrics:    NewMetrics(),
	}, nil
}

// Metrics exposes the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves until ctx is cancelled or Shutdown is called.
// It runs the accept, broadcast and health loops.
func (s *Server) Start(ctx context.Context) error {
	log.Printf("Daemon starting, listening on %s", s.socketPath)

	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-s.ctx.Done()
		cancel()
	}()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(combinedCtx)
	}()

	go s.broadcastLoop(combinedCtx)
	go s.monitorHealth(combinedCtx)

	select {
	case <-combinedCtx.Done():
		log.Println("Daemon context cancelled, shutting down")
	case err := <-acceptErr:
		if err != nil {
			log.Printf("Accept loop error: %v", err)
		}
	}

	return s.Shutdown()
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// deadline lets the loop notice cancellation
		if ul, ok := s.listener.(*net.UnixListener); ok {
			if err := ul.SetDeadline(time.Now().Add(1 * time.Second)); err != nil {
				log.Printf("Error setting listener deadline: %v", err)
			}
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.tuning.clientBuffer),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = struct{}{}
		s.mu.Unlock()

		s.updateClientCount()
		log.Printf("Client connected, total clients: %d", s.getClientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop forwards queued signals until ctx ends
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.broadcast:
			if !ok {
				return
			}
			s.fanOut(event)
		}
	}
}

// fanOut stamps the signal with the next sequence number and queues it for
// every client whose board matches
func (s *Server) fanOut(event events.Event) {
	event.SequenceID = s.sequence.Add(1)
	s.metrics.IncSignalsFanned()
	msg := events.Message{Version: events.ProtocolVersion, Type: events.MsgEvent, Event: &event}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		if event.Matches(c.board()) && !s.sendToClient(c, msg) {
			log.Printf("Client send queue full, signal for board %s dropped", event.BoardID)
		}
	}
}

// handleClient reads messages from a connected client until it hangs up
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		log.Printf("Client disconnected, total clients: %d", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)
	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}
		s.handleMessage(c, msg)
	}
}

// handleMessage applies one client message. Only change signals are
// rebroadcast; anything else on the event channel is ignored.
func (s *Server) handleMessage(c *client, msg events.Message) {
	if msg.Version != 0 && msg.Version != events.ProtocolVersion {
		log.Printf("Warning: received message with protocol version %d, expected %d", msg.Version, events.ProtocolVersion)
	}

	switch msg.Type {
	case events.MsgEvent:
		if msg.Event == nil || msg.Event.Type != events.EventChanged {
			return
		}
		s.metrics.IncSignalsReceived()
		if err := s.Broadcast(*msg.Event); err != nil {
			log.Printf("Dropping signal: %v", err)
		}

	case events.MsgSubscribe:
		if msg.Subscribe == nil {
			return
		}
		c.mu.Lock()
		c.boardID = msg.Subscribe.BoardID
		c.mu.Unlock()
		log.Printf("Client subscribed to board %q", msg.Subscribe.BoardID)

	case events.MsgPong:
		c.mu.Lock()
		c.lastPong = time.Now()
		c.mu.Unlock()
	}
}

func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth pings clients and removes the ones that stop answering
func (s *Server) monitorHealth(ctx context.Context) {
	pingTicker := time.NewTicker(s.tuning.pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			now := time.Now()
			pingMsg := events.Message{Version: events.ProtocolVersion, Type: events.MsgPing}

			// sends happen under the read lock so a removed client is never written to
			s.mu.RLock()
			var stale []*client
			for c := range s.clients {
				c.mu.Lock()
				silent := now.Sub(c.lastPong)
				c.mu.Unlock()

				if silent > s.tuning.staleAfter {
					stale = append(stale, c)
					continue
				}
				if !s.sendToClient(c, pingMsg) {
					log.Printf("Failed to send ping to client (queue full)")
				}
			}
			s.mu.RUnlock()

			for _, c := range stale {
				log.Printf("Removing stale client (no pong for more than %v)", s.tuning.staleAfter)
				s.metrics.IncStaleClients()
				s.removeClient(c)
			}
		}
	}
}

// Broadcast queues a signal for fan-out without blocking
func (s *Server) Broadcast(event events.Event) error {
	select {
	case <-s.ctx.Done():
		return fmt.Errorf("daemon shutting down")
	default:
	}
	select {
	case s.broadcast <- event:
		return nil
	default:
		return fmt.Errorf("broadcast channel full")
	}
}

// Shutdown closes the listener and every client connection, then removes
// the socket file. Safe to call more than once.
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		log.Println("Shutting down daemon...")

		s.cancel()

		if s.listener != nil {
			if closeErr := s.listener.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
				log.Printf("Error closing listener: %v", closeErr)
			}
		}

		s.mu.Lock()
		for c := range s.clients {
			s.closeClient(c)
		}
		s.clients = make(map[*client]struct{})
		s.mu.Unlock()
		s.updateClientCount()

		if removeErr := os.Remove(s.socketPath); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Printf("Warning: failed to remove socket file: %v", removeErr)
		}

		snap := s.metrics.Snapshot()
		slog.Info("daemon stopped",
			"signals_received", snap.SignalsReceived,
			"signals_fanned", snap.SignalsFanned,
			"messages_sent", snap.MessagesSent,
			"messages_dropped", snap.MessagesDropped,
			"stale_clients", snap.StaleClients,
			"uptime", snap.Uptime)
	})

	return nil
}

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}

func (s *Server) closeClient(c *client) {
	if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("Error closing client connection: %v", err)
	}
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// removeClient safely removes a client from the server
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	s.closeClient(c)
	s.updateClientCount()
}

// sendToClient queues a message without blocking. Callers hold s.mu.
// Returns false if the client's queue is full.
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	select {
	case c.send <- msg:
		s.metrics.IncMessagesSent()
		return true
	default:
		s.metrics.IncMessagesDropped()
		return false
	}
}
