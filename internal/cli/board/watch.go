package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	lanesboard "github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/printer"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
)

// defaultPollInterval is how often watch refetches when no change feed is
// connected
const defaultPollInterval = 5 * time.Second

// WatchCmd returns the board watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [board]",
		Short: "Print your lanes every time the board changes",
		Long: `Keep a board open and print your lanes whenever another client changes it.

Changes arrive through the configured feed (the lanes daemon or Redis). When
no feed is reachable the board is refetched every --interval instead.
With --json every update is printed as one JSON object per line.

Examples:
  lanes board watch team
  lanes board watch team --json | jq '.my_tasks | length'
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runWatch)),
	}
	cmd.Flags().Duration("interval", defaultPollInterval, "Refetch interval when no change feed is connected")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runWatch(ctx context.Context, args *handler.Arguments) (any, error) {
	b, err := cli.ResolveBoard(ctx, args.CLI.App.Repo(), cli.BoardRef(args.Arg(0)))
	if err != nil {
		return nil, err
	}

	// Latest lanes win; the printer never falls behind the board
	updates := make(chan lanesboard.Lanes, 1)
	s, err := args.CLI.App.Board(ctx, b.ID,
		taskboard.WithLanesHook(func(l lanesboard.Lanes) {
			select {
			case <-updates:
			default:
			}
			updates <- l
		}),
		taskboard.WithFailureHook(func(err error) {
			slog.Warn("board sync failed", "board_id", b.ID, "error", err)
			printer.Warning(os.Stderr, "sync failed: %v", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Start(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	var poll <-chan time.Time
	if !args.CLI.App.Live() {
		interval, _ := args.GetCmd().Flags().GetDuration("interval")
		if interval > 0 {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			poll = ticker.C
		}
	}

	viewer := s.Viewer().UserID
	last := ""
	for {
		select {
		case <-ctx.Done():
			return nil, nil

		case <-poll:
			if err := s.Reconcile(ctx); err != nil && ctx.Err() == nil {
				slog.Warn("board refetch failed", "board_id", b.ID, "error", err)
			}

		case l := <-updates:
			view := cli.NewLanesView(b, viewer, l)
			out, err := render(view, args.Formatter)
			if err != nil {
				return nil, err
			}
			if out == last {
				continue
			}
			last = out
			fmt.Println(out)
		}
	}
}

func render(view cli.LanesView, f *cli.OutputFormatter) (string, error) {
	if f.JSON {
		data, err := json.Marshal(view)
		return string(data), err
	}
	return view.String() + "\n", nil
}
