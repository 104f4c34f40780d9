package repository

import (
	"context"
	"errors"

	"socialnet/internal/models"
	"socialnet/internal/observability"

	"gorm.io/gorm"
)

type userRepository struct {
	db      *gorm.DB
	backend string
}

// NewUserRepository returns a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, backend: db.Dialector.Name()}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	defer observability.TrackStoreOp(r.backend, "users.list")()

	users := []models.User{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	defer observability.TrackStoreOp(r.backend, "users.get")()

	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observability.TrackStoreOp(r.backend, "users.get_by_username")()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.AppError{Code: models.CodeNotFound, Message: "User " + username + " not found"}
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackStoreOp(r.backend, "users.create")()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return mapUserWriteError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	defer observability.TrackStoreOp(r.backend, "users.update")()

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lock(tx, &user, "id = ?", id); err != nil {
			return err
		}
		if upd.Empty() {
			return nil
		}

		changes := map[string]interface{}{}
		if upd.Username != nil {
			changes["username"] = *upd.Username
			user.Username = *upd.Username
		}
		if upd.Email != nil {
			changes["email"] = *upd.Email
			user.Email = *upd.Email
		}
		if err := tx.Model(&user).Updates(changes).Error; err != nil {
			return mapUserWriteError(err)
		}
		return nil
	})
	if err != nil {
		return nil, r.notFoundOr(err, id)
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	defer observability.TrackStoreOp(r.backend, "users.delete")()

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lock(tx, &user, "id = ?", id); err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, r.notFoundOr(err, id)
	}
	return &user, nil
}

func (r *userRepository) AddThought(ctx context.Context, userID, username, thoughtID string) error {
	defer observability.TrackStoreOp(r.backend, "users.add_thought")()

	_, err := r.mutate(ctx, userID, func(u *models.User) bool { return u.AddThought(thoughtID) },
		"id = ? AND username = ?", userID, username)
	return err
}

func (r *userRepository) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	defer observability.TrackStoreOp(r.backend, "users.add_friend")()

	return r.mutate(ctx, userID, func(u *models.User) bool { return u.AddFriend(friendID) }, "id = ?", userID)
}

func (r *userRepository) RemoveFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	defer observability.TrackStoreOp(r.backend, "users.remove_friend")()

	return r.mutate(ctx, userID, func(u *models.User) bool { return u.RemoveFriend(friendID) }, "id = ?", userID)
}

func (r *userRepository) PullThought(ctx context.Context, thoughtID string) (int64, error) {
	defer observability.TrackStoreOp(r.backend, "users.pull_thought")()

	return r.pullEach(ctx, "thoughts", thoughtID, func(u *models.User) bool { return u.RemoveThought(thoughtID) })
}

func (r *userRepository) PullFriend(ctx context.Context, friendID string) (int64, error) {
	defer observability.TrackStoreOp(r.backend, "users.pull_friend")()

	return r.pullEach(ctx, "friends", friendID, func(u *models.User) bool { return u.RemoveFriend(friendID) })
}

// mutate loads one user under lock, applies fn and writes the collections back
// when fn reports a change.
func (r *userRepository) mutate(ctx context.Context, id string, fn func(*models.User) bool, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lock(tx, &user, query, args...); err != nil {
			return err
		}
		if !fn(&user) {
			return nil
		}
		return saveCollections(tx, &user)
	})
	if err != nil {
		return nil, r.notFoundOr(err, id)
	}
	return &user, nil
}

// pullEach removes value from column on every user holding it.
func (r *userRepository) pullEach(ctx context.Context, column, value string, remove func(*models.User) bool) (int64, error) {
	var changed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := whereArrayContains(forUpdate(tx), column, value).Find(&users).Error; err != nil {
			return err
		}
		for i := range users {
			if !remove(&users[i]) {
				continue
			}
			if err := saveCollections(tx, &users[i]); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return changed, nil
}

func (r *userRepository) lock(tx *gorm.DB, user *models.User, query string, args ...interface{}) error {
	return forUpdate(tx).Where(query, args...).First(user).Error
}

func (r *userRepository) notFoundOr(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("User", id)
	}
	return passThrough(err)
}

func saveCollections(tx *gorm.DB, user *models.User) error {
	return tx.Model(user).Updates(map[string]interface{}{
		"thoughts": user.Thoughts,
		"friends":  user.Friends,
	}).Error
}
