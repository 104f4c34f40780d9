package service

import (
	"context"
	"strings"

	"socialnet/internal/featureflags"
	"socialnet/internal/models"
	"socialnet/internal/notifications"
	"socialnet/internal/observability"
	"socialnet/internal/repository"
	"socialnet/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// UserService provides user business logic.
type UserService struct {
	userRepo    repository.UserRepository
	thoughtRepo repository.ThoughtRepository
	flags       *featureflags.Manager
	events      EventPublisher
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	thoughtRepo repository.ThoughtRepository,
	flags *featureflags.Manager,
	events EventPublisher,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		thoughtRepo: thoughtRepo,
		flags:       flags,
		events:      events,
	}
}

// CreateUserInput is the signup payload.
type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateUserInput is a partial update; omitted fields keep their value.
type UpdateUserInput struct {
	Username *string `json:"username" validate:"omitnil,min=1"`
	Email    *string `json:"email" validate:"omitnil,email"`
}

// DeleteUserResult is returned after a user and its thoughts are removed.
type DeleteUserResult struct {
	Message         string `json:"message"`
	DeletedThoughts int64  `json:"deletedThoughts"`
	Warning         string `json:"warning,omitempty"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser validates and stores a new user. Username and email collisions
// come back as CONFLICT errors naming the field.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user := &models.User{Username: in.Username, Email: in.Email}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventUserCreated, user, user.ID))
	return user, nil
}

// UpdateUser applies a partial update. A username change is copied onto the
// user's thoughts and reactions when propagate_username is enabled; failure to
// do so is reported as a warning on the returned user.
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (user *models.User, err error) {
	ctx, span := observability.StartSpan(ctx, "UserService.UpdateUser", attribute.String("user.id", id))
	defer func() { observability.EndSpan(span, err) }()

	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		in.Username = &trimmed
	}
	if in.Email != nil {
		trimmed := strings.TrimSpace(*in.Email)
		in.Email = &trimmed
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err = s.userRepo.Update(ctx, id, repository.UserUpdate{Username: in.Username, Email: in.Email})
	if err != nil {
		return nil, err
	}

	renamed := in.Username != nil && *in.Username != current.Username
	if renamed && s.flags.Enabled(featureflags.PropagateUsername, id) {
		if _, err := s.thoughtRepo.RenameAuthor(ctx, current.Username, user.Username); err != nil {
			user.Warning = cleanupFailed(ctx, "user_rename", models.NewLinkageError(
				"Username updated, but existing thoughts and reactions may still show the previous username", err))
		}
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventUserUpdated, user, user.ID))
	return user, nil
}

// DeleteUser removes the user, then its thoughts, then its id from every
// friends list. Steps after the first are best-effort and reported in Warning.
func (s *UserService) DeleteUser(ctx context.Context, id string) (result *DeleteUserResult, err error) {
	ctx, span := observability.StartSpan(ctx, "UserService.DeleteUser", attribute.String("user.id", id))
	defer func() { observability.EndSpan(span, err) }()

	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	result = &DeleteUserResult{Message: "User and associated thoughts deleted"}
	var warnings []string

	deleted, err := s.thoughtRepo.DeleteMany(ctx, user.Thoughts)
	if err != nil {
		warnings = append(warnings, cleanupFailed(ctx, "user_delete_thoughts",
			models.NewLinkageError("the user's thoughts could not be deleted", err)))
	}
	result.DeletedThoughts = deleted

	if _, err := s.userRepo.PullFriend(ctx, id); err != nil {
		warnings = append(warnings, cleanupFailed(ctx, "user_delete_friend_links",
			models.NewLinkageError("other users may still list this user as a friend", err)))
	}

	if len(warnings) > 0 {
		result.Message = "User deleted"
		result.Warning = "User deleted, but " + strings.Join(warnings, " and ")
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventUserDeleted, map[string]string{"id": id}, id))
	return result, nil
}

// AddFriend inserts friendID into the user's friends set. Both users must exist.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	if userID == friendID {
		return nil, models.NewFieldValidationError("friendId", "A user cannot add themselves as a friend")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, friendID); err != nil {
		if models.IsNotFound(err) {
			return nil, &models.AppError{Code: models.CodeNotFound, Message: "Friend not found", Field: "friendId"}
		}
		return nil, err
	}

	user, err := s.userRepo.AddFriend(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventFriendAdded, user, userID, friendID))
	return user, nil
}

// RemoveFriend drops friendID from the user's friends set. Removing an absent friend succeeds.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	user, err := s.userRepo.RemoveFriend(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, notifications.NewEvent(notifications.EventFriendRemoved, user, userID, friendID))
	return user, nil
}
