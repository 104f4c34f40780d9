package repository

import (
	"context"
	"errors"

	"socialnet/internal/models"
	"socialnet/internal/observability"

	"gorm.io/gorm"
)

type thoughtRepository struct {
	db      *gorm.DB
	backend string
}

// NewThoughtRepository returns a GORM-backed ThoughtRepository.
func NewThoughtRepository(db *gorm.DB) ThoughtRepository {
	return &thoughtRepository{db: db, backend: db.Dialector.Name()}
}

func (r *thoughtRepository) List(ctx context.Context) ([]models.Thought, error) {
	defer observability.TrackStoreOp(r.backend, "thoughts.list")()

	thoughts := []models.Thought{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&thoughts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return thoughts, nil
}

func (r *thoughtRepository) GetByID(ctx context.Context, id string) (*models.Thought, error) {
	defer observability.TrackStoreOp(r.backend, "thoughts.get")()

	var thought models.Thought
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&thought).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Thought", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &thought, nil
}

func (r *thoughtRepository) Create(ctx context.Context, thought *models.Thought) error {
	defer observability.TrackStoreOp(r.backend, "thoughts.create")()

	if err := r.db.WithContext(ctx).Create(thought).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *thoughtRepository) UpdateText(ctx context.Context, id, text string) (*models.Thought, error) {
	defer observability.TrackStoreOp(r.backend, "thoughts.update")()

	var thought models.Thought
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", id).First(&thought).Error; err != nil {
			return err
		}
		thought.ThoughtText = text
		return tx.Model(&thought).Update("thought_text", text).Error
	})
	if err != nil {
		return nil, r.notFoundOr(err, id)
	}
	return &thought, nil
}

func (r *thoughtRepository) Delete(ctx context.Context, id string) (*models.Thought, error) {
	defer observability.TrackStoreOp(r.backend, "thoughts.delete")()

	var thought models.Thought
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", id).First(&thought).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Thought{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, r.notFoundOr(err, id)
	}
	return &thought, nil
}

func (r *thoughtRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	defer observability.TrackStoreOp(r.backend, "thoughts.delete_many")()

	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Thought{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *thoughtRepository) AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error) {
	defer observability.TrackStoreOp(r.backend, "thoughts.add_reaction")()

	return r.mutate(ctx, thoughtID, func(t *models.Thought) bool {
		t.Reactions = append(t.Reactions, reaction)
		return true
	})
}

func (r *thoughtRepository) RemoveReaction(ctx context.Context, thoughtID, reactionID string) (*models.Thought, error) {
	defer observability.TrackStoreOp(r.backend, "thoughts.remove_reaction")()

	return r.mutate(ctx, thoughtID, func(t *models.Thought) bool { return t.RemoveReaction(reactionID) })
}

func (r *thoughtRepository) RenameAuthor(ctx context.Context, oldName, newName string) (int64, error) {
	defer observability.TrackStoreOp(r.backend, "thoughts.rename_author")()

	if oldName == newName {
		return 0, nil
	}

	var changed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Thought{}).Where("username = ?", oldName).Update("username", newName)
		if result.Error != nil {
			return result.Error
		}
		changed = result.RowsAffected

		var withReactions []models.Thought
		if err := whereReactionBy(forUpdate(tx), oldName).Find(&withReactions).Error; err != nil {
			return err
		}
		for i := range withReactions {
			if !withReactions[i].RenameReactions(oldName, newName) {
				continue
			}
			if err := tx.Model(&withReactions[i]).Update("reactions", withReactions[i].Reactions).Error; err != nil {
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

func (r *thoughtRepository) mutate(ctx context.Context, id string, fn func(*models.Thought) bool) (*models.Thought, error) {
	var thought models.Thought
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", id).First(&thought).Error; err != nil {
			return err
		}
		if !fn(&thought) {
			return nil
		}
		return tx.Model(&thought).Update("reactions", thought.Reactions).Error
	})
	if err != nil {
		return nil, r.notFoundOr(err, id)
	}
	return &thought, nil
}

func (r *thoughtRepository) notFoundOr(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Thought", id)
	}
	return passThrough(err)
}
