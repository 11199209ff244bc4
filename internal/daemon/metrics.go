package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	SignalsReceived  atomic.Int64 // change signals published by clients
	SignalsFanned    atomic.Int64 // signals accepted for fan-out
	MessagesSent     atomic.Int64 // messages queued to clients, pings included
	MessagesDropped  atomic.Int64 // messages skipped because a client queue was full
	StaleClients     atomic.Int64 // clients removed for missing pongs
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

func (m *Metrics) IncSignalsReceived() { m.SignalsReceived.Add(1) }
func (m *Metrics) IncSignalsFanned()   { m.SignalsFanned.Add(1) }
func (m *Metrics) IncMessagesSent()    { m.MessagesSent.Add(1) }
func (m *Metrics) IncMessagesDropped() { m.MessagesDropped.Add(1) }
func (m *Metrics) IncStaleClients()    { m.StaleClients.Add(1) }

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	SignalsReceived  int64     `json:"signals_received"`
	SignalsFanned    int64     `json:"signals_fanned"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesDropped  int64     `json:"messages_dropped"`
	StaleClients     int64     `json:"stale_clients"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		SignalsReceived:  m.SignalsReceived.Load(),
		SignalsFanned:    m.SignalsFanned.Load(),
		MessagesSent:     m.MessagesSent.Load(),
		MessagesDropped:  m.MessagesDropped.Load(),
		StaleClients:     m.StaleClients.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).Round(time.Second).String(),
	}
}
