// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents an account in the social network.
type User struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	// Thoughts holds the ids of thoughts this user authored, oldest first.
	Thoughts datatypes.JSONSlice[string] `json:"thoughts"`
	// Friends is a set of user ids. The reverse link is not maintained.
	Friends   datatypes.JSONSlice[string] `json:"friends"`
	CreatedAt time.Time                   `json:"-"`
	UpdatedAt time.Time                   `json:"-"`
	// Warning is not persisted; it carries a partial-success note to the client.
	Warning string `gorm:"-" json:"warning,omitempty"`
}

// BeforeCreate assigns an id and normalizes the embedded collections.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	u.Prepare()
	return nil
}

// Prepare fills in the id and empty collections for a new user.
func (u *User) Prepare() {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Thoughts == nil {
		u.Thoughts = datatypes.JSONSlice[string]{}
	}
	if u.Friends == nil {
		u.Friends = datatypes.JSONSlice[string]{}
	}
}

// FriendCount is the size of the friends set.
func (u User) FriendCount() int {
	return len(u.Friends)
}

// HasFriend reports whether friendID is in the friends set.
func (u User) HasFriend(friendID string) bool {
	return slices.Contains(u.Friends, friendID)
}

// HasThought reports whether thoughtID is in the thoughts list.
func (u User) HasThought(thoughtID string) bool {
	return slices.Contains(u.Thoughts, thoughtID)
}

// AddFriend inserts friendID into the set. It returns false when already present.
func (u *User) AddFriend(friendID string) bool {
	if u.HasFriend(friendID) {
		return false
	}
	u.Friends = append(u.Friends, friendID)
	return true
}

// RemoveFriend drops friendID from the set. It returns false when absent.
func (u *User) RemoveFriend(friendID string) bool {
	n := len(u.Friends)
	u.Friends = slices.DeleteFunc(u.Friends, func(id string) bool { return id == friendID })
	return len(u.Friends) != n
}

// AddThought appends thoughtID unless it is already listed.
func (u *User) AddThought(thoughtID string) bool {
	if u.HasThought(thoughtID) {
		return false
	}
	u.Thoughts = append(u.Thoughts, thoughtID)
	return true
}

// RemoveThought drops thoughtID from the list. It returns false when absent.
func (u *User) RemoveThought(thoughtID string) bool {
	n := len(u.Thoughts)
	u.Thoughts = slices.DeleteFunc(u.Thoughts, func(id string) bool { return id == thoughtID })
	return len(u.Thoughts) != n
}

// MarshalJSON renders the derived friendCount and never emits null collections.
func (u User) MarshalJSON() ([]byte, error) {
	type user User
	out := struct {
		user
		FriendCount int `json:"friendCount"`
	}{
		user:        user(u),
		FriendCount: u.FriendCount(),
	}
	if out.Thoughts == nil {
		out.Thoughts = datatypes.JSONSlice[string]{}
	}
	if out.Friends == nil {
		out.Friends = datatypes.JSONSlice[string]{}
	}
	return json.Marshal(out)
}
