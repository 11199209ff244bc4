package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/app"
	lanescli "github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

// ExecuteCLICommand runs cmd with args against testApp and returns stdout
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext is ExecuteCLICommand under ctx. The app rides
// in the context so the command never opens the configured database.
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	if testApp == nil {
		t.Fatal("ExecuteCLICommand needs the app from SetupCLITest")
	}

	testutil.SetupCobraCommand(cmd, args)
	var err error
	out := testutil.CaptureOutput(t, func() {
		err = cmd.ExecuteContext(lanescli.ContextWithApp(ctx, testApp))
	})
	return out, err
}
