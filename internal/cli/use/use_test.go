package use

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/cli"
	clitest "github.com/thenoetrevino/lanes/internal/testutil/cli"
)

func TestUseBoard_Export(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	boardID := clitest.CreateTestBoard(t, repo, "Team")

	cmd := BoardCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	output, err := clitest.ExecuteCLICommand(t, app, cmd, []string{"team"})
	require.NoError(t, err)
	assert.Equal(t, "export "+cli.BoardEnvVar+"="+string(boardID), strings.TrimSpace(output))
	assert.Contains(t, stderr.String(), "Now using board")
	t.Logf("✓ %s", strings.TrimSpace(output))
}

func TestUseBoard_DryRun(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	clitest.CreateTestBoard(t, repo, "Team")

	cmd := BoardCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	output, err := clitest.ExecuteCLICommand(t, app, cmd, []string{"Team", "--dry-run"})
	require.NoError(t, err)
	assert.Empty(t, output, "nothing for eval on a dry run")
	assert.Contains(t, stderr.String(), "Would set "+cli.BoardEnvVar)
}

func TestUseBoard_Clear(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	cmd := BoardCmd()
	cmd.SetErr(&bytes.Buffer{})
	output, err := clitest.ExecuteCLICommand(t, app, cmd, []string{"--clear"})
	require.NoError(t, err)
	assert.Equal(t, "unset "+cli.BoardEnvVar, strings.TrimSpace(output))
}

func TestUseBoard_Show(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)
	boardID := clitest.CreateTestBoard(t, repo, "Team")

	t.Run("unset", func(t *testing.T) {
		t.Setenv(cli.BoardEnvVar, "")
		output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--show"})
		require.NoError(t, err)
		assert.Contains(t, output, "No board context set")
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv(cli.BoardEnvVar, string(boardID))
		output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--show"})
		require.NoError(t, err)
		assert.Contains(t, output, "Current board: "+string(boardID)+" (Team)")
	})

	t.Run("stale", func(t *testing.T) {
		t.Setenv(cli.BoardEnvVar, "gone")
		output, err := clitest.ExecuteCLICommand(t, app, BoardCmd(), []string{"--show"})
		require.NoError(t, err)
		assert.Contains(t, output, "board not found")
	})
}

func TestUseBoard_Errors(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	cmd := BoardCmd()
	cmd.SetErr(&bytes.Buffer{})
	_, err := clitest.ExecuteCLICommand(t, app, cmd, nil)
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))

	cmd = BoardCmd()
	cmd.SetErr(&bytes.Buffer{})
	_, err = clitest.ExecuteCLICommand(t, app, cmd, []string{"missing"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
}
