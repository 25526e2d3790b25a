/*
Package handler provides HTTP handler functions for the messaging surface:
contact listing, conversation history, and message sends.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"letteram/internal/app/chat"
	"letteram/internal/pkg/auth/jwt"
	"letteram/internal/pkg/errs"
	"letteram/internal/pkg/req"
	"letteram/internal/pkg/resp"
)

// HandleContacts lists every user other than the caller for the sidebar.
func HandleContacts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		contacts, err := deps.Chat.Contacts(r.Context(), identity.ID)
		if err != nil {
			resp.RespondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, contacts)
	}
}

// HandleConversation returns the message history between the caller and the
// peer named in the URL.
func HandleConversation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		peerID := chi.URLParam(r, "id")
		if _, err := uuid.Parse(peerID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		conversation, err := deps.Chat.Conversation(r.Context(), identity.ID, peerID)
		if err != nil {
			resp.RespondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, conversation)
	}
}

// SendMessageInput is the JSON body of a send request. Image payloads are
// base64 data URIs or already-stored URLs.
type SendMessageInput struct {
	Text   string   `json:"text,omitempty"`
	Image  string   `json:"image,omitempty"`
	Images []string `json:"images,omitempty"`
}

// HandleSendMessage persists a message to the peer named in the URL and
// best-effort pushes it to the peer's live connection.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		receiverID := chi.URLParam(r, "id")
		if _, err := uuid.Parse(receiverID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		sent, err := deps.Chat.SendMessage(r.Context(), identity.ID, receiverID, chat.SendInput{
			Text:   input.Text,
			Image:  input.Image,
			Images: input.Images,
		})
		if err != nil {
			resp.RespondServiceError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, sent)
	}
}
