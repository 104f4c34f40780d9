// Package repository implements the data access layer for the application.
//
// Each repository has a GORM implementation (postgres, sqlite) that stores the
// embedded collections as JSON columns, and a MongoDB implementation that
// stores them as native arrays. Both return *models.AppError values.
package repository

import (
	"context"

	"socialnet/internal/models"
)

// UserUpdate is a partial update; nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error)
	// Delete removes the user and returns it as it was stored.
	Delete(ctx context.Context, id string) (*models.User, error)
	// AddThought links thoughtID to the user matching both id and username.
	AddThought(ctx context.Context, userID, username, thoughtID string) error
	AddFriend(ctx context.Context, userID, friendID string) (*models.User, error)
	RemoveFriend(ctx context.Context, userID, friendID string) (*models.User, error)
	// PullThought removes thoughtID from every user's thoughts and returns the number of users changed.
	PullThought(ctx context.Context, thoughtID string) (int64, error)
	// PullFriend removes friendID from every user's friends and returns the number of users changed.
	PullFriend(ctx context.Context, friendID string) (int64, error)
}

// ThoughtRepository defines persistence operations for thoughts and their reactions.
type ThoughtRepository interface {
	List(ctx context.Context) ([]models.Thought, error)
	GetByID(ctx context.Context, id string) (*models.Thought, error)
	Create(ctx context.Context, thought *models.Thought) error
	UpdateText(ctx context.Context, id, text string) (*models.Thought, error)
	// Delete removes the thought and returns it as it was stored.
	Delete(ctx context.Context, id string) (*models.Thought, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error)
	RemoveReaction(ctx context.Context, thoughtID, reactionID string) (*models.Thought, error)
	// RenameAuthor rewrites oldName to newName on thoughts and on embedded reactions.
	RenameAuthor(ctx context.Context, oldName, newName string) (int64, error)
}

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Users    UserRepository
	Thoughts ThoughtRepository
	// Backend names the storage engine, e.g. "postgres", "sqlite" or "mongo".
	Backend string

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backing connection.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}
