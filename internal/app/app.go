package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
	"github.com/thenoetrevino/lanes/internal/types"
	"github.com/thenoetrevino/lanes/internal/user"
)

// feedConnectTimeout bounds the startup probe of the change feed
const feedConnectTimeout = 2 * time.Second

// App holds the store, the change feed and the viewer identity, and hands
// out board services wired to all three.
type App struct {
	cfg  *config.Config
	db   *sql.DB
	repo *database.Repository

	// Change feed for live updates; nil when disabled or unreachable
	feed events.Feed

	viewerID types.UserID
	ownsDB   bool
}

// New opens the database and change feed described by cfg. A feed that
// cannot be reached is not an error: the app runs without live updates.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &appConfig{}
	for _, opt := range opts {
		opt(o)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	a := &App{cfg: cfg, db: o.db}
	if a.db == nil {
		db, err := database.InitDB(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.db = db
		a.ownsDB = true
	}

	if o.feedSet {
		a.feed = o.feed
	} else {
		a.feed = openFeed(ctx, cfg)
	}

	// a nil interface, never a typed nil, so the repository skips publishing
	var pub events.Publisher
	if a.feed != nil {
		pub = a.feed
	}
	a.repo = database.NewRepository(a.db, pub)

	a.viewerID = o.viewer
	if a.viewerID.IsZero() {
		a.viewerID = user.ResolveViewer(cfg.Viewer)
	}
	return a, nil
}

// openFeed connects the configured change feed, or returns nil
func openFeed(ctx context.Context, cfg *config.Config) events.Feed {
	ctx, cancel := context.WithTimeout(ctx, feedConnectTimeout)
	defer cancel()

	switch cfg.Feed {
	case config.FeedDaemon:
		client, err := events.NewClient(cfg.SocketPath)
		if err != nil {
			slog.Warn("invalid daemon socket", "socket_path", cfg.SocketPath, "error", err)
			return nil
		}
		if err := client.Connect(ctx); err != nil {
			slog.Info("daemon not running, live updates disabled", "socket_path", cfg.SocketPath, "error", err)
			_ = client.Close()
			return nil
		}
		return client

	case config.FeedRedis:
		feed := events.NewRedisFeed(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.ChannelPrefix)
		if err := feed.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, live updates disabled", "addr", cfg.Redis.Addr, "error", err)
			_ = feed.Close()
			return nil
		}
		return feed
	}
	return nil
}

// Config returns the configuration the app was built from
func (a *App) Config() *config.Config {
	return a.cfg
}

// Repo returns the repository for direct store access
func (a *App) Repo() *database.Repository {
	return a.repo
}

// Live reports whether a change feed is connected
func (a *App) Live() bool {
	return a.feed != nil
}

// ViewerID returns the configured viewer identity without a store lookup
func (a *App) ViewerID() types.UserID {
	return a.viewerID
}

// Viewer returns the identity "mine" and permissions are evaluated for.
// The display name comes from the users table when the viewer registered.
func (a *App) Viewer(ctx context.Context) (models.Assignee, error) {
	if a.viewerID.IsZero() {
		return models.Assignee{}, fmt.Errorf("%w: no viewer identity", models.ErrPermissionDenied)
	}
	u, err := a.repo.GetUser(ctx, a.viewerID)
	switch {
	case errors.Is(err, database.ErrUserNotFound):
		return models.Assignee{UserID: a.viewerID, Name: string(a.viewerID)}, nil
	case err != nil:
		return models.Assignee{}, err
	}
	return models.AssigneeFromUser(*u), nil
}

// Board builds a service for one board, wired to the app's store and feed
// with the configured timings. The service is not started.
func (a *App) Board(ctx context.Context, boardID types.BoardID, opts ...taskboard.Option) (*taskboard.Service, error) {
	if _, err := a.repo.GetBoard(ctx, boardID); err != nil {
		return nil, err
	}
	viewer, err := a.Viewer(ctx)
	if err != nil {
		return nil, err
	}

	base := []taskboard.Option{
		taskboard.WithPersistTimeout(a.cfg.PersistTimeout),
		taskboard.WithDebounce(a.cfg.Reconcile.Debounce),
		taskboard.WithResubscribeDelay(a.cfg.Reconcile.ResubscribeDelay),
	}
	if a.feed != nil {
		base = append(base, taskboard.WithFeed(a.feed))
	}
	return taskboard.New(a.repo, boardID, viewer, append(base, opts...)...), nil
}

// Close flushes and closes the feed, then the database if the app opened it
func (a *App) Close() error {
	var errs []error
	if a.feed != nil {
		errs = append(errs, a.feed.Close())
	}
	if a.ownsDB && a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
