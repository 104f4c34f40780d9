// Package notifications streams domain events to websocket clients, fanning
// them out across instances through Redis pub/sub when Redis is available.
package notifications

import (
	"encoding/json"
	"time"
)

// Event types emitted after successful mutations.
const (
	EventUserCreated     = "user_created"
	EventUserUpdated     = "user_updated"
	EventUserDeleted     = "user_deleted"
	EventFriendAdded     = "friend_added"
	EventFriendRemoved   = "friend_removed"
	EventThoughtCreated  = "thought_created"
	EventThoughtUpdated  = "thought_updated"
	EventThoughtDeleted  = "thought_deleted"
	EventReactionAdded   = "reaction_added"
	EventReactionRemoved = "reaction_removed"
)

// Event is a domain change pushed to subscribers.
type Event struct {
	Type string `json:"type"`
	// Subjects lists the user ids the event concerns; clients following any of them receive it.
	Subjects []string  `json:"subjects"`
	Payload  any       `json:"payload,omitempty"`
	At       time.Time `json:"at"`
}

// NewEvent stamps an event of type eventType.
func NewEvent(eventType string, payload any, subjects ...string) Event {
	if subjects == nil {
		subjects = []string{}
	}
	return Event{Type: eventType, Subjects: subjects, Payload: payload, At: time.Now().UTC()}
}

// envelope is the wire form used on Redis and websockets. Payload stays raw so
// relayed events are forwarded byte-for-byte.
type envelope struct {
	Type     string          `json:"type"`
	Subjects []string        `json:"subjects"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	At       time.Time       `json:"at"`
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	err := json.Unmarshal(data, &env)
	return env, err
}
