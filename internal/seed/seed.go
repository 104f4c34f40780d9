package seed

import (
	"context"
	"fmt"

	"socialnet/internal/middleware"
	"socialnet/internal/models"
	"socialnet/internal/service"
)

// Options configuration for the seeder
type Options struct {
	NumUsers            int
	ThoughtsPerUser     int
	FriendsPerUser      int
	ReactionsPerThought int
	// ShouldClean deletes every existing user and thought first.
	ShouldClean bool
	// RandSeed makes generated content reproducible; zero is random.
	RandSeed int64
}

// Result summarizes what a Seed run created.
type Result struct {
	Users     []*models.User
	Thoughts  []*models.Thought
	Reactions int
}

// Seeder populates the store through the services.
type Seeder struct {
	users    *service.UserService
	thoughts *service.ThoughtService
}

// NewSeeder creates a Seeder.
func NewSeeder(users *service.UserService, thoughts *service.ThoughtService) *Seeder {
	return &Seeder{users: users, thoughts: thoughts}
}

// Clean deletes every user (cascading to their thoughts) and any thought left over.
func (s *Seeder) Clean(ctx context.Context) error {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if _, err := s.users.DeleteUser(ctx, u.ID); err != nil && !models.IsNotFound(err) {
			return fmt.Errorf("delete user %s: %w", u.ID, err)
		}
	}

	thoughts, err := s.thoughts.ListThoughts(ctx)
	if err != nil {
		return fmt.Errorf("list thoughts: %w", err)
	}
	for _, t := range thoughts {
		if _, err := s.thoughts.DeleteThought(ctx, t.ID); err != nil && !models.IsNotFound(err) {
			return fmt.Errorf("delete thought %s: %w", t.ID, err)
		}
	}

	middleware.Logger.InfoContext(ctx, "seed: cleaned store", "users", len(users), "orphan_thoughts", len(thoughts))
	return nil
}

// Seed creates users, one-way friendships, thoughts and reactions.
func (s *Seeder) Seed(ctx context.Context, opts Options) (*Result, error) {
	if opts.ShouldClean {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	f := NewFactory(opts.RandSeed)
	res := &Result{}

	for range opts.NumUsers {
		u, err := s.users.CreateUser(ctx, f.User())
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		res.Users = append(res.Users, u)
	}

	for i, u := range res.Users {
		for _, j := range f.Pick(len(res.Users), opts.FriendsPerUser, i) {
			if _, err := s.users.AddFriend(ctx, u.ID, res.Users[j].ID); err != nil {
				return nil, fmt.Errorf("add friend: %w", err)
			}
		}
	}

	for _, u := range res.Users {
		for range opts.ThoughtsPerUser {
			t, err := s.thoughts.CreateThought(ctx, f.Thought(u))
			if err != nil {
				return nil, fmt.Errorf("create thought: %w", err)
			}
			if t.Warning != "" {
				middleware.Logger.WarnContext(ctx, "seed: thought not linked", "thought_id", t.ID, "warning", t.Warning)
			}
			res.Thoughts = append(res.Thoughts, t)
		}
	}

	for _, t := range res.Thoughts {
		for _, j := range f.Pick(len(res.Users), opts.ReactionsPerThought, -1) {
			if _, err := s.thoughts.AddReaction(ctx, t.ID, f.Reaction(res.Users[j])); err != nil {
				return nil, fmt.Errorf("add reaction: %w", err)
			}
			res.Reactions++
		}
	}

	middleware.Logger.InfoContext(ctx, "seed: done",
		"users", len(res.Users), "thoughts", len(res.Thoughts), "reactions", res.Reactions)
	return res, nil
}
