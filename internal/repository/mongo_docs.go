package repository

import (
	"time"

	"socialnet/internal/models"

	"gorm.io/datatypes"
)

type userDoc struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Thoughts  []string  `bson:"thoughts"`
	Friends   []string  `bson:"friends"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type reactionDoc struct {
	ReactionID   string    `bson:"reactionId"`
	ReactionBody string    `bson:"reactionBody"`
	Username     string    `bson:"username"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type thoughtDoc struct {
	ID          string        `bson:"_id"`
	ThoughtText string        `bson:"thoughtText"`
	Username    string        `bson:"username"`
	Reactions   []reactionDoc `bson:"reactions"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func newUserDoc(u *models.User) userDoc {
	return userDoc{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Thoughts:  nonNil(u.Thoughts),
		Friends:   nonNil(u.Friends),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) model() models.User {
	return models.User{
		ID:        d.ID,
		Username:  d.Username,
		Email:     d.Email,
		Thoughts:  datatypes.JSONSlice[string](nonNil(d.Thoughts)),
		Friends:   datatypes.JSONSlice[string](nonNil(d.Friends)),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func newReactionDoc(r models.Reaction) reactionDoc {
	return reactionDoc{
		ReactionID:   r.ReactionID,
		ReactionBody: r.ReactionBody,
		Username:     r.Username,
		CreatedAt:    r.CreatedAt,
	}
}

func newThoughtDoc(t *models.Thought) thoughtDoc {
	reactions := make([]reactionDoc, 0, len(t.Reactions))
	for _, r := range t.Reactions {
		reactions = append(reactions, newReactionDoc(r))
	}
	return thoughtDoc{
		ID:          t.ID,
		ThoughtText: t.ThoughtText,
		Username:    t.Username,
		Reactions:   reactions,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d thoughtDoc) model() models.Thought {
	reactions := make(datatypes.JSONSlice[models.Reaction], 0, len(d.Reactions))
	for _, r := range d.Reactions {
		reactions = append(reactions, models.Reaction{
			ReactionID:   r.ReactionID,
			ReactionBody: r.ReactionBody,
			Username:     r.Username,
			CreatedAt:    r.CreatedAt,
		})
	}
	return models.Thought{
		ID:          d.ID,
		ThoughtText: d.ThoughtText,
		Username:    d.Username,
		Reactions:   reactions,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func nonNil[S ~[]string](s S) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}
