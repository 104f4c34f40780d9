package server

import (
	"context"

	"socialnet/internal/models"
	"socialnet/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, upd repository.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) AddThought(ctx context.Context, userID, username, thoughtID string) error {
	args := m.Called(ctx, userID, username, thoughtID)
	return args.Error(0)
}

func (m *MockUserRepository) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	args := m.Called(ctx, userID, friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) RemoveFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	args := m.Called(ctx, userID, friendID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) PullThought(ctx context.Context, thoughtID string) (int64, error) {
	args := m.Called(ctx, thoughtID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) PullFriend(ctx context.Context, friendID string) (int64, error) {
	args := m.Called(ctx, friendID)
	return args.Get(0).(int64), args.Error(1)
}

// MockThoughtRepository is a mock implementation of repository.ThoughtRepository
type MockThoughtRepository struct {
	mock.Mock
}

func (m *MockThoughtRepository) List(ctx context.Context) ([]models.Thought, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) GetByID(ctx context.Context, id string) (*models.Thought, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) Create(ctx context.Context, thought *models.Thought) error {
	args := m.Called(ctx, thought)
	return args.Error(0)
}

func (m *MockThoughtRepository) UpdateText(ctx context.Context, id, text string) (*models.Thought, error) {
	args := m.Called(ctx, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) Delete(ctx context.Context, id string) (*models.Thought, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThoughtRepository) AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error) {
	args := m.Called(ctx, thoughtID, reaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) RemoveReaction(ctx context.Context, thoughtID, reactionID string) (*models.Thought, error) {
	args := m.Called(ctx, thoughtID, reactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thought), args.Error(1)
}

func (m *MockThoughtRepository) RenameAuthor(ctx context.Context, oldName, newName string) (int64, error) {
	args := m.Called(ctx, oldName, newName)
	return args.Get(0).(int64), args.Error(1)
}
