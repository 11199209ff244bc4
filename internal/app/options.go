package app

import (
	"database/sql"

	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	db      *sql.DB
	feed    events.Feed
	feedSet bool
	viewer  types.UserID
}

// WithDB uses an already open database instead of the configured path.
// The caller keeps ownership and closes it.
func WithDB(db *sql.DB) Option {
	return func(cfg *appConfig) {
		cfg.db = db
	}
}

// WithFeed uses the given change feed instead of connecting the configured
// one. A nil feed disables live updates.
func WithFeed(feed events.Feed) Option {
	return func(cfg *appConfig) {
		cfg.feed = feed
		cfg.feedSet = true
	}
}

// WithViewer overrides the configured viewer identity
func WithViewer(id types.UserID) Option {
	return func(cfg *appConfig) {
		cfg.viewer = id
	}
}
