package service

import (
	"context"
	"errors"
	"sync"

	"socialnet/internal/models"
	"socialnet/internal/notifications"
	"socialnet/internal/repository"
)

var errStore = errors.New("store unavailable")

type userRepoStub struct {
	listFn          func(context.Context) ([]models.User, error)
	getByIDFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, string, repository.UserUpdate) (*models.User, error)
	deleteFn        func(context.Context, string) (*models.User, error)
	addThoughtFn    func(context.Context, string, string, string) error
	addFriendFn     func(context.Context, string, string) (*models.User, error)
	removeFriendFn  func(context.Context, string, string) (*models.User, error)
	pullThoughtFn   func(context.Context, string) (int64, error)
	pullFriendFn    func(context.Context, string) (int64, error)
}

func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, id string, upd repository.UserUpdate) (*models.User, error) {
	return s.updateFn(ctx, id, upd)
}
func (s *userRepoStub) Delete(ctx context.Context, id string) (*models.User, error) {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) AddThought(ctx context.Context, userID, username, thoughtID string) error {
	return s.addThoughtFn(ctx, userID, username, thoughtID)
}
func (s *userRepoStub) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	return s.addFriendFn(ctx, userID, friendID)
}
func (s *userRepoStub) RemoveFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	return s.removeFriendFn(ctx, userID, friendID)
}
func (s *userRepoStub) PullThought(ctx context.Context, thoughtID string) (int64, error) {
	return s.pullThoughtFn(ctx, thoughtID)
}
func (s *userRepoStub) PullFriend(ctx context.Context, friendID string) (int64, error) {
	return s.pullFriendFn(ctx, friendID)
}

type thoughtRepoStub struct {
	listFn           func(context.Context) ([]models.Thought, error)
	getByIDFn        func(context.Context, string) (*models.Thought, error)
	createFn         func(context.Context, *models.Thought) error
	updateTextFn     func(context.Context, string, string) (*models.Thought, error)
	deleteFn         func(context.Context, string) (*models.Thought, error)
	deleteManyFn     func(context.Context, []string) (int64, error)
	addReactionFn    func(context.Context, string, models.Reaction) (*models.Thought, error)
	removeReactionFn func(context.Context, string, string) (*models.Thought, error)
	renameAuthorFn   func(context.Context, string, string) (int64, error)
}

func (s *thoughtRepoStub) List(ctx context.Context) ([]models.Thought, error) {
	return s.listFn(ctx)
}
func (s *thoughtRepoStub) GetByID(ctx context.Context, id string) (*models.Thought, error) {
	return s.getByIDFn(ctx, id)
}
func (s *thoughtRepoStub) Create(ctx context.Context, thought *models.Thought) error {
	return s.createFn(ctx, thought)
}
func (s *thoughtRepoStub) UpdateText(ctx context.Context, id, text string) (*models.Thought, error) {
	return s.updateTextFn(ctx, id, text)
}
func (s *thoughtRepoStub) Delete(ctx context.Context, id string) (*models.Thought, error) {
	return s.deleteFn(ctx, id)
}
func (s *thoughtRepoStub) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	return s.deleteManyFn(ctx, ids)
}
func (s *thoughtRepoStub) AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error) {
	return s.addReactionFn(ctx, thoughtID, reaction)
}
func (s *thoughtRepoStub) RemoveReaction(ctx context.Context, thoughtID, reactionID string) (*models.Thought, error) {
	return s.removeReactionFn(ctx, thoughtID, reactionID)
}
func (s *thoughtRepoStub) RenameAuthor(ctx context.Context, oldName, newName string) (int64, error) {
	return s.renameAuthorFn(ctx, oldName, newName)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []notifications.Event
}

func (r *eventRecorder) Publish(_ context.Context, ev notifications.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func userNotFound(_ context.Context, id string) (*models.User, error) {
	return nil, models.NewNotFoundError("User", id)
}
