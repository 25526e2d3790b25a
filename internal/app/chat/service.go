/*
Package chat contains the real-time messaging core.

This file defines the Service, which orchestrates a message send: input
validation, attachment upload, persistence, and the best-effort push to a
connected receiver. It also serves the conversation and contact reads.
*/
package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"letteram/internal/app/attachment"
	"letteram/internal/app/db"
	"letteram/internal/app/message"
	"letteram/internal/app/user"
	"letteram/internal/pkg/errs"
	"letteram/internal/pkg/logx"
)

// MaxTextBytes is the maximum allowed size of message text.
const MaxTextBytes = 5000

// MessageStore persists messages and answers conversation queries.
type MessageStore interface {
	Save(ctx context.Context, m message.Message) (message.Message, error)
	Conversation(ctx context.Context, userA, userB string) ([]message.Message, error)
}

// ContactStore answers the contact listing query.
type ContactStore interface {
	ListContactsExcluding(ctx context.Context, userID string) ([]user.User, error)
}

// Uploader resolves image payloads to stored URLs.
type Uploader interface {
	Upload(ctx context.Context, payload string, opts attachment.Options) (string, error)
	UploadBatch(ctx context.Context, payloads []string, opts attachment.Options) ([]string, error)
}

// Pusher delivers an event to a user's live connection, reporting whether a
// connection accepted it.
type Pusher interface {
	Push(userID string, eventType EventType, payload any) bool
}

// Service orchestrates sends and serves messaging reads.
type Service struct {
	messages MessageStore
	contacts ContactStore
	uploads  Uploader
	pusher   Pusher

	// maxImages caps the Images sequence of a single send.
	maxImages int

	logger zerolog.Logger
}

// NewService constructs a Service with its collaborators injected.
func NewService(messages MessageStore, contacts ContactStore, uploads Uploader, pusher Pusher, maxImages int) *Service {
	return &Service{
		messages:  messages,
		contacts:  contacts,
		uploads:   uploads,
		pusher:    pusher,
		maxImages: maxImages,
		logger:    logx.Logger().With().Str("component", "ChatService").Logger(),
	}
}

// SendInput is the client payload of a send. Image is the legacy single-image
// field; Images is the ordered multi-image sequence. Each element is a base64
// data URI or an already-stored URL.
type SendInput struct {
	Text   string
	Image  string
	Images []string
}

// SendMessage validates the input, uploads the image payloads, persists the
// message, and best-effort pushes it to a connected receiver.
//
// Upload failures are all-or-nothing per batch: no message is ever persisted
// referencing a partially uploaded batch. Persistence failure aborts the send.
// A push miss (receiver offline or not draining) is not an error; the
// persisted history is the durability guarantee.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID string, in SendInput) (message.Message, error) {
	text := strings.TrimSpace(in.Text)

	if text == "" && in.Image == "" && len(in.Images) == 0 {
		return message.Message{}, errs.NewError(errs.ErrEmptyMessage)
	}

	if len(text) > MaxTextBytes {
		return message.Message{}, errs.NewError(errs.ErrMessageTooLong)
	}

	// The cap is enforced here, before any upload is attempted.
	if len(in.Images) > s.maxImages {
		return message.Message{}, errs.NewError(errs.ErrTooManyImages, s.maxImages)
	}

	var urls []string

	if in.Image != "" {
		url, err := s.uploads.Upload(ctx, in.Image, attachment.Options{Folder: attachment.DefaultFolder})
		if err != nil {
			return message.Message{}, err
		}
		urls = append(urls, url)
	}

	if len(in.Images) > 0 {
		batch, err := s.uploads.UploadBatch(ctx, in.Images, attachment.Options{Folder: attachment.DefaultFolder})
		if err != nil {
			return message.Message{}, err
		}
		urls = append(urls, batch...)
	}

	m := message.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
	}

	// The legacy single field always mirrors the head of the sequence.
	if len(urls) > 0 {
		m.Image = urls[0]
		m.Images = urls
	}

	saved, err := s.messages.Save(ctx, m)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return message.Message{}, errs.NewError(errs.ErrRecipientNotFound)
		}
		s.logger.Error().Err(err).Str("sender_id", senderID).Msg("Message persistence failed.")
		return message.Message{}, errs.NewError(errs.ErrMessageSaveFailed)
	}

	if delivered := s.pusher.Push(receiverID, EventNewMessage, saved); !delivered {
		s.logger.Debug().
			Str("message_id", saved.ID).
			Str("receiver_id", receiverID).
			Msg("Receiver not reachable, skipping push.")
	}

	return saved, nil
}

// Conversation returns the time-ordered message history between the caller
// and a peer.
func (s *Service) Conversation(ctx context.Context, callerID, peerID string) ([]message.Message, error) {
	conversation, err := s.messages.Conversation(ctx, callerID, peerID)
	if err != nil {
		s.logger.Error().Err(err).Str("caller_id", callerID).Msg("Conversation query failed.")
		return nil, errs.NewError(errs.ErrUnknown)
	}
	return conversation, nil
}

// Contacts returns every known user other than the caller, with credential
// material stripped.
func (s *Service) Contacts(ctx context.Context, callerID string) ([]user.User, error) {
	contacts, err := s.contacts.ListContactsExcluding(ctx, callerID)
	if err != nil {
		s.logger.Error().Err(err).Str("caller_id", callerID).Msg("Contacts query failed.")
		return nil, errs.NewError(errs.ErrUnknown)
	}
	return contacts, nil
}
