package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/testutil"
	clitest "github.com/thenoetrevino/lanes/internal/testutil/cli"
)

func TestRegister_DefaultsToViewer(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, RegisterCmd(), []string{"--name", "Tess", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, string(clitest.TestViewer), strings.TrimSpace(output))

	u, err := repo.GetUser(context.Background(), clitest.TestViewer)
	require.NoError(t, err)
	assert.Equal(t, "Tess", u.Name)

	v, err := app.Viewer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Tess", v.Name, "the viewer picks up the registered name")
}

func TestRegister_OtherUser(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, RegisterCmd(),
		[]string{"bob", "--name", "Bob", "--avatar", "https://example.com/bob.png", "--json"})
	require.NoError(t, err)

	data := testutil.JSONData(t, output)
	assert.Equal(t, "bob", data["id"])
	assert.Equal(t, "Bob", data["name"])
	assert.Equal(t, "https://example.com/bob.png", data["avatar_url"])

	t.Run("re-registering updates the name", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, app, RegisterCmd(), []string{"bob", "--name", "Robert"})
		require.NoError(t, err)
		assert.Contains(t, output, "Registered")
		assert.Contains(t, output, "Robert")
	})
}

func TestListUsers(t *testing.T) {
	repo, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No users registered")

	testutil.CreateTestUser(t, repo, "alice", "Alice")
	testutil.CreateTestUser(t, repo, "bob", "Bob")

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, strings.Fields(output))

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	assert.Len(t, testutil.ParseJSON(t, output)["data"], 2)
	t.Logf("✓ listed users")
}
