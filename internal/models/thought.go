package models

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxTextLength bounds thought and reaction bodies, in characters.
const MaxTextLength = 280

// Thought is a short post. Reactions are embedded and owned by it.
type Thought struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ThoughtText string `gorm:"type:varchar(280);not null" json:"thoughtText"`
	// Username is a denormalized copy of the author's name, not a foreign key.
	Username  string                        `gorm:"not null;index" json:"username"`
	Reactions datatypes.JSONSlice[Reaction] `json:"reactions"`
	CreatedAt time.Time                     `json:"createdAt"`
	UpdatedAt time.Time                     `json:"-"`
	Warning   string                        `gorm:"-" json:"warning,omitempty"`
}

// Reaction is a reply embedded in a thought. It has no lifecycle of its own.
type Reaction struct {
	ReactionID   string    `json:"reactionId"`
	ReactionBody string    `json:"reactionBody"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewReaction builds a reaction with a freshly generated id.
func NewReaction(body, username string) Reaction {
	return Reaction{
		ReactionID:   uuid.NewString(),
		ReactionBody: body,
		Username:     username,
		CreatedAt:    time.Now().UTC(),
	}
}

// BeforeCreate assigns an id and normalizes the embedded reactions.
func (t *Thought) BeforeCreate(_ *gorm.DB) error {
	t.Prepare()
	return nil
}

// Prepare fills in the id, creation time and empty reactions for a new thought.
func (t *Thought) Prepare() {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.Reactions == nil {
		t.Reactions = datatypes.JSONSlice[Reaction]{}
	}
}

// ReactionCount is the number of embedded reactions.
func (t Thought) ReactionCount() int {
	return len(t.Reactions)
}

// RemoveReaction drops the reaction with reactionID. It returns false when absent.
func (t *Thought) RemoveReaction(reactionID string) bool {
	n := len(t.Reactions)
	t.Reactions = slices.DeleteFunc(t.Reactions, func(r Reaction) bool { return r.ReactionID == reactionID })
	return len(t.Reactions) != n
}

// RenameReactions rewrites the username on reactions written as from.
func (t *Thought) RenameReactions(from, to string) bool {
	changed := false
	for i := range t.Reactions {
		if t.Reactions[i].Username == from {
			t.Reactions[i].Username = to
			changed = true
		}
	}
	return changed
}

// MarshalJSON renders the derived reactionCount and never emits null reactions.
func (t Thought) MarshalJSON() ([]byte, error) {
	type thought Thought
	out := struct {
		thought
		ReactionCount int `json:"reactionCount"`
	}{
		thought:       thought(t),
		ReactionCount: t.ReactionCount(),
	}
	if out.Reactions == nil {
		out.Reactions = datatypes.JSONSlice[Reaction]{}
	}
	return json.Marshal(out)
}
