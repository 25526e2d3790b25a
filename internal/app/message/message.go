/*
Package message contains the message model and its persistence layer.

A message is immutable once persisted. Its identifier and creation timestamp
are assigned by the store at write time, so conversation order reflects
persistence order.
*/
package message

import "time"

// Message is a single direct message between two users.
//
// Image is a legacy single-value field kept for older readers: whenever Images
// is non-empty, Image holds its first element; whenever Images is absent,
// Image is absent too. Consumers must treat Images as authoritative and Image
// as a derived convenience.
type Message struct {
	// ID is the message identifier (UUID), assigned at persistence.
	ID string `json:"id"`

	// SenderID identifies the authoring user.
	SenderID string `json:"senderId"`

	// ReceiverID identifies the addressed user.
	ReceiverID string `json:"receiverId"`

	// Text is the message body, absent for image-only messages.
	Text string `json:"text,omitempty"`

	// Image is the legacy single image URL, derived from Images.
	Image string `json:"image,omitempty"`

	// Images holds the stored image URLs in upload order.
	Images []string `json:"images,omitempty"`

	// CreatedAt is the persistence timestamp, assigned by the store.
	CreatedAt time.Time `json:"createdAt"`
}

// HasContent reports whether the message carries any text or image reference.
// A message without content is rejected before persistence.
func (m Message) HasContent() bool {
	return m.Text != "" || m.Image != "" || len(m.Images) > 0
}
