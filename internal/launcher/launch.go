// Package launcher runs the interactive board for one board of an App.
package launcher

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/logging"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/tui/components"
	"github.com/thenoetrevino/lanes/internal/tui/core"
)

// Launch starts the TUI for board b and blocks until the user quits or ctx
// is cancelled. Pending writes are resolved before it returns.
func Launch(ctx context.Context, a *app.App, b *models.Board) error {
	cfg := a.Config()

	// The terminal belongs to the board; logs go to file
	if err := logging.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	hooks := tui.NewHooks()
	svc, err := a.Board(ctx, b.ID, hooks.Options()...)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}

	// service cleanup waits for in-flight writes
	defer func() {
		if err := svc.Close(); err != nil {
			slog.Error("error closing board service", "board_id", b.ID, "error", err)
		}
	}()

	components.InitStyles(cfg.Theme)
	tuiApp := core.New(ctx, svc, b, cfg, hooks, a.Live())
	p := tea.NewProgram(tuiApp, tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up", "board_id", b.ID)
		<-errChan
	}

	return nil
}
