package cli

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/logging"
)

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with store, feed and viewer
	ctx context.Context

	// owned is false when the app came from the context and belongs to
	// whoever put it there
	owned bool
}

// NewCLI loads the configuration, initializes logging and opens the app.
// A daemon or Redis feed that cannot be reached is not an error.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Init(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &CLI{
		App:   application,
		ctx:   ctx,
		owned: true,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}

type appKey struct{}

// ContextWithApp returns a context carrying an already open app. Commands
// executed with it use that app instead of opening the configured one.
func ContextWithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetCLIFromContext returns a CLI over the app carried by ctx, or opens a
// new one from the user's configuration
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, ctx: ctx}, nil
	}
	return NewCLI(ctx)
}
