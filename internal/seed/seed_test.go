package seed

import (
	"context"
	"testing"
	"unicode/utf8"

	"socialnet/internal/config"
	"socialnet/internal/database"
	"socialnet/internal/featureflags"
	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func setupSeeder(t *testing.T, name string) (*Seeder, *repository.Store) {
	t.Helper()

	cfg := &config.Config{Env: "test", DBDriver: config.DriverSQLite}
	db, err := database.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := repository.NewGormStore(db)
	users := service.NewUserService(store.Users, store.Thoughts, featureflags.NewManager(""), nil)
	thoughts := service.NewThoughtService(store.Thoughts, store.Users, nil)
	return NewSeeder(users, thoughts), store
}

func TestFactory(t *testing.T) {
	f := NewFactory(42)

	a, b := f.User(), f.User()
	assert.NotEqual(t, a.Username, b.Username)
	assert.Contains(t, a.Email, a.Username+"@")

	override := f.User(func(in *service.CreateUserInput) { in.Username = "fixed" })
	assert.Equal(t, "fixed", override.Username)

	author := &models.User{ID: "u1", Username: "alice"}
	th := f.Thought(author)
	assert.Equal(t, "u1", th.UserID)
	assert.Equal(t, "alice", th.Username)
	assert.NotEmpty(t, th.ThoughtText)
	assert.LessOrEqual(t, utf8.RuneCountInString(th.ThoughtText), models.MaxTextLength)

	picked := f.Pick(5, 10, 2)
	assert.Len(t, picked, 4)
	assert.NotContains(t, picked, 2)
}

func TestSeed(t *testing.T) {
	s, store := setupSeeder(t, "seed_run")
	ctx := context.Background()

	res, err := s.Seed(ctx, Options{
		NumUsers:            4,
		ThoughtsPerUser:     2,
		FriendsPerUser:      2,
		ReactionsPerThought: 1,
		RandSeed:            7,
	})
	require.NoError(t, err)
	assert.Len(t, res.Users, 4)
	assert.Len(t, res.Thoughts, 8)
	assert.Equal(t, 8, res.Reactions)

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	for _, u := range users {
		assert.Equal(t, 2, u.FriendCount())
		assert.False(t, u.HasFriend(u.ID))
		assert.Len(t, u.Thoughts, 2)
	}

	for _, th := range res.Thoughts {
		assert.Empty(t, th.Warning)
	}
}

func TestSeed_Clean(t *testing.T) {
	s, store := setupSeeder(t, "seed_clean")
	ctx := context.Background()

	_, err := s.Seed(ctx, Options{NumUsers: 3, ThoughtsPerUser: 1})
	require.NoError(t, err)

	_, err = s.Seed(ctx, Options{NumUsers: 2, ThoughtsPerUser: 1, ShouldClean: true})
	require.NoError(t, err)

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	thoughts, err := store.Thoughts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, thoughts, 2)
}
