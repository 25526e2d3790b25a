package chat

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of event pushed over a live connection.
type EventType string

const (
	// EventNewMessage carries a freshly persisted message to its receiver.
	EventNewMessage EventType = "newMessage"

	// EventOnlineUsers carries the current online user-id set to every
	// connection whenever presence membership changes.
	EventOnlineUsers EventType = "onlineUsers"
)

// Event is the envelope for everything pushed over a WebSocket connection.
type Event struct {
	// ID is a unique event identifier for client-side de-duplication.
	ID string `json:"id"`

	// Type names the event, e.g. "newMessage".
	Type EventType `json:"type"`

	// Payload is the event body: a message.Message for EventNewMessage,
	// a []string of user ids for EventOnlineUsers.
	Payload any `json:"payload"`

	// Timestamp is the server emit time in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// NewEvent builds an Event envelope around the given payload.
func NewEvent(eventType EventType, payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
}
