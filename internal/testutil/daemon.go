package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/lanes/internal/daemon"
	"github.com/thenoetrevino/lanes/internal/events"
)

// daemonStartTimeout bounds how long SetupTestDaemon waits for the socket
const daemonStartTimeout = 2 * time.Second

// SetupTestDaemon runs a fan-out daemon on a socket in a temp dir until the
// test ends, and returns it with its socket path once the socket accepts.
func SetupTestDaemon(t *testing.T) (*daemon.Server, string) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "lanes.sock")
	server, err := daemon.NewServer(socketPath)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		if err := server.Shutdown(); err != nil {
			t.Logf("daemon shutdown: %v", err)
		}
	})

	go func() {
		if err := server.Start(ctx); err != nil {
			t.Logf("daemon stopped: %v", err)
		}
	}()

	ready := WaitForCondition(t, func() bool {
		_, err := os.Stat(socketPath)
		return err == nil
	}, daemonStartTimeout, "daemon socket "+socketPath)
	if !ready {
		t.Fatal("daemon socket never appeared")
	}
	return server, socketPath
}

// SetupTestClient connects a socket client that is closed when the test ends
func SetupTestClient(t *testing.T, socketPath string) *events.Client {
	t.Helper()

	client, err := events.NewClient(socketPath)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), daemonStartTimeout)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect test client: %v", err)
	}
	return client
}

// WaitForClientCount reports whether the daemon reached want connected
// clients within timeout
func WaitForClientCount(t *testing.T, server *daemon.Server, want int, timeout time.Duration) bool {
	t.Helper()
	return WaitForCondition(t, func() bool {
		return int(server.Metrics().ConnectedClients.Load()) == want
	}, timeout, "daemon client count")
}

// LogServerState dumps the daemon metrics, for failing tests
func LogServerState(t *testing.T, server *daemon.Server, label string) {
	t.Helper()
	t.Logf("daemon state (%s): %+v", label, server.Metrics().Snapshot())
}

// WaitForCondition polls condition every 10ms until it holds or timeout
// passes. On timeout it logs description and returns false.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, description string) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for {
		if condition() {
			return true
		}
		if time.Now().After(deadline) {
			t.Logf("timed out waiting for %s", description)
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
}
