package service

import (
	"context"
	"strings"
	"testing"

	"socialnet/internal/models"
	"socialnet/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeThought(_ context.Context, th *models.Thought) error {
	th.Prepare()
	return nil
}

func TestThoughtService_CreateThought_Links(t *testing.T) {
	var linked [3]string
	users := &userRepoStub{
		addThoughtFn: func(_ context.Context, userID, username, thoughtID string) error {
			linked = [3]string{userID, username, thoughtID}
			return nil
		},
	}
	events := &eventRecorder{}
	svc := NewThoughtService(&thoughtRepoStub{createFn: storeThought}, users, events)

	th, err := svc.CreateThought(context.Background(), CreateThoughtInput{ThoughtText: "hi", Username: "ann", UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, [3]string{"u1", "ann", th.ID}, linked)
	assert.Empty(t, th.Warning)
	assert.Equal(t, []string{notifications.EventThoughtCreated}, events.types())
}

func TestThoughtService_CreateThought_LinkFailureIsWarning(t *testing.T) {
	tests := []struct {
		name    string
		linkErr error
		want    string
	}{
		{"no matching user", models.NewNotFoundError("User", "u1"), "no user matches"},
		{"store failure", errStore, "could not be linked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &userRepoStub{
				addThoughtFn: func(context.Context, string, string, string) error { return tt.linkErr },
			}
			svc := NewThoughtService(&thoughtRepoStub{createFn: storeThought}, users, nil)

			th, err := svc.CreateThought(context.Background(), CreateThoughtInput{ThoughtText: "hi", Username: "ann", UserID: "u1"})
			require.NoError(t, err)
			assert.NotEmpty(t, th.ID)
			assert.Contains(t, th.Warning, tt.want)
		})
	}
}

func TestThoughtService_CreateThought_Validation(t *testing.T) {
	thoughts := &thoughtRepoStub{
		createFn: func(context.Context, *models.Thought) error {
			t.Fatal("invalid thought must not be stored")
			return nil
		},
	}
	svc := NewThoughtService(thoughts, &userRepoStub{}, nil)

	tests := []struct {
		name      string
		in        CreateThoughtInput
		wantField string
	}{
		{"empty text", CreateThoughtInput{Username: "ann", UserID: "u1"}, "thoughtText"},
		{"text too long", CreateThoughtInput{ThoughtText: strings.Repeat("a", 281), Username: "ann", UserID: "u1"}, "thoughtText"},
		{"missing username", CreateThoughtInput{ThoughtText: "hi", UserID: "u1"}, "username"},
		{"missing userId", CreateThoughtInput{ThoughtText: "hi", Username: "ann"}, "userId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateThought(context.Background(), tt.in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidation, appErr.Code)
			assert.Equal(t, tt.wantField, appErr.Field)
		})
	}
}

func TestThoughtService_UpdateThought(t *testing.T) {
	thoughts := &thoughtRepoStub{
		updateTextFn: func(_ context.Context, id, text string) (*models.Thought, error) {
			if id == "missing" {
				return nil, models.NewNotFoundError("Thought", id)
			}
			return &models.Thought{ID: id, ThoughtText: text}, nil
		},
	}
	svc := NewThoughtService(thoughts, &userRepoStub{}, nil)
	ctx := context.Background()

	th, err := svc.UpdateThought(ctx, "t1", UpdateThoughtInput{ThoughtText: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", th.ThoughtText)

	_, err = svc.UpdateThought(ctx, "missing", UpdateThoughtInput{ThoughtText: "edited"})
	assert.True(t, models.IsNotFound(err))

	_, err = svc.UpdateThought(ctx, "t1", UpdateThoughtInput{ThoughtText: strings.Repeat("a", 281)})
	assert.True(t, models.HasCode(err, models.CodeValidation))
}

func TestThoughtService_DeleteThought(t *testing.T) {
	tests := []struct {
		name        string
		deleteErr   error
		pullErr     error
		wantErrCode string
		wantWarning bool
		wantScrub   bool
	}{
		{name: "deleted and scrubbed", wantScrub: true},
		{name: "scrub fails after delete", pullErr: errStore, wantWarning: true, wantScrub: true},
		{name: "missing thought still scrubs", deleteErr: models.NewNotFoundError("Thought", "t1"), wantErrCode: models.CodeNotFound, wantScrub: true},
		{name: "store failure leaves references", deleteErr: models.NewInternalError(errStore), wantErrCode: models.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scrubbed := false
			thoughts := &thoughtRepoStub{
				deleteFn: func(_ context.Context, id string) (*models.Thought, error) {
					if tt.deleteErr != nil {
						return nil, tt.deleteErr
					}
					return &models.Thought{ID: id}, nil
				},
			}
			users := &userRepoStub{
				pullThoughtFn: func(_ context.Context, id string) (int64, error) {
					scrubbed = id == "t1"
					return 1, tt.pullErr
				},
			}
			svc := NewThoughtService(thoughts, users, nil)

			res, err := svc.DeleteThought(context.Background(), "t1")
			assert.Equal(t, tt.wantScrub, scrubbed)
			if tt.wantErrCode != "" {
				assert.True(t, models.HasCode(err, tt.wantErrCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWarning, res.Warning != "")
		})
	}
}

func TestThoughtService_AddReaction(t *testing.T) {
	var added models.Reaction
	thoughts := &thoughtRepoStub{
		getByIDFn: func(_ context.Context, id string) (*models.Thought, error) {
			if id == "missing" {
				return nil, models.NewNotFoundError("Thought", id)
			}
			return &models.Thought{ID: id}, nil
		},
		addReactionFn: func(_ context.Context, id string, r models.Reaction) (*models.Thought, error) {
			added = r
			return &models.Thought{ID: id, Reactions: []models.Reaction{r}}, nil
		},
	}
	users := &userRepoStub{
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			if username == "ghost" {
				return nil, models.NewNotFoundError("User", username)
			}
			return &models.User{ID: "u2", Username: username}, nil
		},
	}
	events := &eventRecorder{}
	svc := NewThoughtService(thoughts, users, events)
	ctx := context.Background()

	th, err := svc.AddReaction(ctx, "t1", AddReactionInput{ReactionBody: "nice", Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, th.ReactionCount())
	assert.NotEmpty(t, added.ReactionID)
	assert.Equal(t, "bob", added.Username)
	assert.Equal(t, []string{notifications.EventReactionAdded}, events.types())

	_, err = svc.AddReaction(ctx, "missing", AddReactionInput{ReactionBody: "nice", Username: "bob"})
	assert.True(t, models.IsNotFound(err))

	_, err = svc.AddReaction(ctx, "t1", AddReactionInput{ReactionBody: "nice", Username: "ghost"})
	require.True(t, models.IsNotFound(err))
	assert.Equal(t, "Reacting user not found", err.Error())

	_, err = svc.AddReaction(ctx, "t1", AddReactionInput{ReactionBody: strings.Repeat("a", 281), Username: "bob"})
	assert.True(t, models.HasCode(err, models.CodeValidation))
}

func TestThoughtService_RemoveReaction(t *testing.T) {
	thoughts := &thoughtRepoStub{
		removeReactionFn: func(_ context.Context, id, reactionID string) (*models.Thought, error) {
			if id == "missing" {
				return nil, models.NewNotFoundError("Thought", id)
			}
			return &models.Thought{ID: id}, nil
		},
	}
	svc := NewThoughtService(thoughts, &userRepoStub{}, nil)

	th, err := svc.RemoveReaction(context.Background(), "t1", "r1")
	require.NoError(t, err)
	assert.Equal(t, 0, th.ReactionCount())

	_, err = svc.RemoveReaction(context.Background(), "missing", "r1")
	assert.True(t, models.IsNotFound(err))
}
