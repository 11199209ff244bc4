package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

func TestBoards(t *testing.T) {
	repo := NewRepository(setupTestDB(t), nil)
	ctx := context.Background()

	_, err := repo.CreateBoard(ctx, "  ")
	assert.ErrorIs(t, err, models.ErrValidation)

	first, err := repo.CreateBoard(ctx, "Alpha")
	require.NoError(t, err)
	second, err := repo.CreateBoard(ctx, "Beta")
	require.NoError(t, err)

	boards, err := repo.ListBoards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, first.ID, boards[0].ID)
	assert.Equal(t, second.ID, boards[1].ID)

	got, err := repo.GetBoard(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beta", got.Name)

	_, err = repo.GetBoard(ctx, types.NewBoardID())
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestCategories(t *testing.T) {
	repo, _, board := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.CreateCategory(ctx, board.ID, "Feature", "#0000FF")
	require.NoError(t, err)
	_, err = repo.CreateCategory(ctx, board.ID, "Bug", "#FF0000")
	require.NoError(t, err)

	cats, err := repo.GetCategories(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Bug", cats[0].Name, "categories sort by name")

	_, err = repo.CreateCategory(ctx, types.NewBoardID(), "Lost", "")
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestUsers(t *testing.T) {
	repo := NewRepository(setupTestDB(t), nil)
	ctx := context.Background()

	_, err := repo.UpsertUser(ctx, models.User{Name: "Nameless"})
	assert.ErrorIs(t, err, models.ErrValidation)

	u, err := repo.UpsertUser(ctx, models.User{ID: "carol"})
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Name, "name defaults to the id")

	_, err = repo.UpsertUser(ctx, models.User{ID: "carol", Name: "Carol", AvatarURL: "https://example.com/c.png"})
	require.NoError(t, err)

	got, err := repo.GetUser(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "Carol", got.Name)
	assert.Equal(t, "https://example.com/c.png", got.AvatarURL)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = repo.GetUser(ctx, "dave")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
