package service

import (
	"context"
	"strings"

	"socialnet/internal/models"
	"socialnet/internal/notifications"
	"socialnet/internal/observability"
	"socialnet/internal/repository"
	"socialnet/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// ThoughtService provides thought and reaction business logic.
type ThoughtService struct {
	thoughtRepo repository.ThoughtRepository
	userRepo    repository.UserRepository
	events      EventPublisher
}

// NewThoughtService returns a new ThoughtService.
func NewThoughtService(thoughtRepo repository.ThoughtRepository, userRepo repository.UserRepository, events EventPublisher) *ThoughtService {
	return &ThoughtService{
		thoughtRepo: thoughtRepo,
		userRepo:    userRepo,
		events:      events,
	}
}

// CreateThoughtInput is the payload for a new thought.
type CreateThoughtInput struct {
	ThoughtText string `json:"thoughtText" validate:"required,max=280"`
	Username    string `json:"username" validate:"required"`
	UserID      string `json:"userId" validate:"required"`
}

// UpdateThoughtInput replaces a thought's text.
type UpdateThoughtInput struct {
	ThoughtText string `json:"thoughtText" validate:"required,max=280"`
}

// AddReactionInput is the payload for a new reaction. Any id sent by the client is ignored.
type AddReactionInput struct {
	ReactionBody string `json:"reactionBody" validate:"required,max=280"`
	Username     string `json:"username" validate:"required"`
}

// DeleteThoughtResult is returned after a thought is removed.
type DeleteThoughtResult struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

func (s *ThoughtService) ListThoughts(ctx context.Context) ([]models.Thought, error) {
	return s.thoughtRepo.List(ctx)
}

func (s *ThoughtService) GetThought(ctx context.Context, id string) (*models.Thought, error) {
	return s.thoughtRepo.GetByID(ctx, id)
}

// CreateThought stores the thought, then links it to the user matching both
// userId and username. A failed link leaves the thought in place and sets Warning.
func (s *ThoughtService) CreateThought(ctx context.Context, in CreateThoughtInput) (thought *models.Thought, err error) {
	ctx, span := observability.StartSpan(ctx, "ThoughtService.CreateThought", attribute.String("user.id", in.UserID))
	defer func() { observability.EndSpan(span, err) }()

	in.Username = strings.TrimSpace(in.Username)
	in.UserID = strings.TrimSpace(in.UserID)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	thought = &models.Thought{ThoughtText: in.ThoughtText, Username: in.Username}
	if err := s.thoughtRepo.Create(ctx, thought); err != nil {
		return nil, err
	}

	if err := s.userRepo.AddThought(ctx, in.UserID, in.Username, thought.ID); err != nil {
		msg := "Thought created, but it could not be linked to the user"
		if models.IsNotFound(err) {
			msg = "Thought created, but no user matches the given userId and username"
		}
		thought.Warning = cleanupFailed(ctx, "thought_link_author", models.NewLinkageError(msg, err))
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventThoughtCreated, thought, in.UserID))
	return thought, nil
}

// UpdateThought replaces the text of an existing thought.
func (s *ThoughtService) UpdateThought(ctx context.Context, id string, in UpdateThoughtInput) (*models.Thought, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	thought, err := s.thoughtRepo.UpdateText(ctx, id, in.ThoughtText)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventThoughtUpdated, thought))
	return thought, nil
}

// DeleteThought removes the thought and scrubs its id from every user. The scrub
// also runs when no thought matched so dangling references are repaired; any
// other delete failure returns before touching users.
func (s *ThoughtService) DeleteThought(ctx context.Context, id string) (result *DeleteThoughtResult, err error) {
	ctx, span := observability.StartSpan(ctx, "ThoughtService.DeleteThought", attribute.String("thought.id", id))
	defer func() { observability.EndSpan(span, err) }()

	_, deleteErr := s.thoughtRepo.Delete(ctx, id)
	if deleteErr != nil && !models.IsNotFound(deleteErr) {
		return nil, deleteErr
	}

	_, pullErr := s.userRepo.PullThought(ctx, id)
	if deleteErr != nil {
		if pullErr != nil {
			cleanupFailed(ctx, "thought_scrub_references",
				models.NewLinkageError("Dangling thought references were not removed", pullErr))
		}
		return nil, deleteErr
	}

	result = &DeleteThoughtResult{Message: "Thought deleted"}
	if pullErr != nil {
		result.Warning = cleanupFailed(ctx, "thought_scrub_references",
			models.NewLinkageError("Thought deleted, but some users may still reference it", pullErr))
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventThoughtDeleted, map[string]string{"id": id}))
	return result, nil
}

// AddReaction appends a reaction with a fresh id. The thought and the reacting user must exist.
func (s *ThoughtService) AddReaction(ctx context.Context, thoughtID string, in AddReactionInput) (*models.Thought, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.thoughtRepo.GetByID(ctx, thoughtID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		if models.IsNotFound(err) {
			return nil, &models.AppError{Code: models.CodeNotFound, Message: "Reacting user not found", Field: "username"}
		}
		return nil, err
	}

	thought, err := s.thoughtRepo.AddReaction(ctx, thoughtID, models.NewReaction(in.ReactionBody, in.Username))
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventReactionAdded, thought))
	return thought, nil
}

// RemoveReaction drops the reaction by id. Removing an absent reaction succeeds.
func (s *ThoughtService) RemoveReaction(ctx context.Context, thoughtID, reactionID string) (*models.Thought, error) {
	thought, err := s.thoughtRepo.RemoveReaction(ctx, thoughtID, reactionID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventReactionRemoved, thought))
	return thought, nil
}
