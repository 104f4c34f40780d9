package repository

import (
	"context"
	"testing"

	"socialnet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createThought(t *testing.T, repo ThoughtRepository, username, text string) *models.Thought {
	t.Helper()
	th := &models.Thought{Username: username, ThoughtText: text}
	require.NoError(t, repo.Create(context.Background(), th))
	return th
}

func TestThoughtRepository_CRUD(t *testing.T) {
	repo := NewThoughtRepository(newTestDB(t))
	ctx := context.Background()

	th := createThought(t, repo, "ann", "first")
	require.NotEmpty(t, th.ID)
	assert.False(t, th.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, th.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.ThoughtText)
	assert.Empty(t, got.Reactions)

	updated, err := repo.UpdateText(ctx, th.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.ThoughtText)
	assert.Equal(t, "ann", updated.Username)

	_, err = repo.UpdateText(ctx, "missing", "x")
	assert.True(t, models.IsNotFound(err))

	deleted, err := repo.Delete(ctx, th.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", deleted.ThoughtText)

	_, err = repo.GetByID(ctx, th.ID)
	assert.True(t, models.IsNotFound(err))
	_, err = repo.Delete(ctx, th.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestThoughtRepository_DeleteMany(t *testing.T) {
	repo := NewThoughtRepository(newTestDB(t))
	ctx := context.Background()
	a := createThought(t, repo, "ann", "a")
	b := createThought(t, repo, "ann", "b")
	c := createThought(t, repo, "bob", "c")

	n, err := repo.DeleteMany(ctx, []string{a.ID, b.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.DeleteMany(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	left, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, c.ID, left[0].ID)
}

func TestThoughtRepository_Reactions(t *testing.T) {
	repo := NewThoughtRepository(newTestDB(t))
	ctx := context.Background()
	th := createThought(t, repo, "ann", "hello")

	r1 := models.NewReaction("nice", "bob")
	r2 := models.NewReaction("same", "bob")

	got, err := repo.AddReaction(ctx, th.ID, r1)
	require.NoError(t, err)
	got, err = repo.AddReaction(ctx, th.ID, r2)
	require.NoError(t, err)
	require.Len(t, got.Reactions, 2)
	assert.Equal(t, 2, got.ReactionCount())
	assert.Equal(t, r1.ReactionID, got.Reactions[0].ReactionID)

	got, err = repo.RemoveReaction(ctx, th.ID, r1.ReactionID)
	require.NoError(t, err)
	require.Len(t, got.Reactions, 1)
	assert.Equal(t, r2.ReactionID, got.Reactions[0].ReactionID)

	got, err = repo.RemoveReaction(ctx, th.ID, r1.ReactionID)
	require.NoError(t, err)
	assert.Len(t, got.Reactions, 1)

	_, err = repo.AddReaction(ctx, "missing", r1)
	assert.True(t, models.IsNotFound(err))
}

func TestThoughtRepository_RenameAuthor(t *testing.T) {
	repo := NewThoughtRepository(newTestDB(t))
	ctx := context.Background()
	own := createThought(t, repo, "ann", "mine")
	other := createThought(t, repo, "bob", "theirs")
	_, err := repo.AddReaction(ctx, other.ID, models.NewReaction("hi", "ann"))
	require.NoError(t, err)
	_, err = repo.AddReaction(ctx, other.ID, models.NewReaction("yo", "cat"))
	require.NoError(t, err)

	n, err := repo.RenameAuthor(ctx, "ann", "anna")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := repo.GetByID(ctx, own.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna", got.Username)

	got, err = repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, "anna", got.Reactions[0].Username)
	assert.Equal(t, "cat", got.Reactions[1].Username)

	n, err = repo.RenameAuthor(ctx, "anna", "anna")
	require.NoError(t, err)
	assert.Zero(t, n)
}
