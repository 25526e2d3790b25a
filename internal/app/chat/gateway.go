/*
Package chat contains the real-time messaging core.

This file defines the Gateway, which owns the set of live WebSocket
connections. It binds authenticated connections into the PresenceRegistry,
broadcasts the online-user set on every membership change, and exposes the
best-effort push primitive used by the Service.
*/
package chat

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"letteram/internal/pkg/logx"
)

// Gateway owns live connections and their presence entries.
type Gateway struct {
	// presence is the registry of online users; the Gateway is its only writer.
	presence *PresenceRegistry

	// structured logger with Gateway context.
	logger zerolog.Logger
}

// NewGateway constructs a Gateway over the given registry.
func NewGateway(presence *PresenceRegistry) *Gateway {
	return &Gateway{
		presence: presence,
		logger:   logx.Logger().With().Str("component", "Gateway").Logger(),
	}
}

// Connect binds an authenticated connection into the registry and broadcasts
// the updated online set. When the user already had a live connection the new
// one wins and the displaced connection is closed with a 4001 close frame.
func (g *Gateway) Connect(c *Client) {
	displaced := g.presence.Register(c.UserID(), c)

	if displaced != nil {
		g.logger.Warn().
			Str("client_id", c.UserID()).
			Msg("User already connected. Closing old connection for replacement.")

		displaced.Kick("Session replaced by new connection. Check other tabs.")
	}

	g.logger.Info().
		Str("client_id", c.UserID()).
		Msg("Client connected.")

	g.broadcastOnlineUsers()
}

// Disconnect unbinds the connection and broadcasts the updated online set.
// A disconnect from a connection that was already replaced is ignored.
func (g *Gateway) Disconnect(c *Client) {
	if !g.presence.Unregister(c.UserID(), c) {
		g.logger.Info().
			Str("stale_client_id", c.UserID()).
			Msg("Ignoring disconnect for stale connection.")
		return
	}

	c.closeSend()

	g.logger.Info().
		Str("client_id", c.UserID()).
		Msg("Client disconnected.")

	g.broadcastOnlineUsers()
}

// Push delivers an event to the user's live connection if one exists. There
// is no queuing, retry, or store-and-forward: an offline or non-draining
// receiver simply reads the persisted history later. The return value reports
// whether the event was handed to a live connection.
func (g *Gateway) Push(userID string, eventType EventType, payload any) bool {
	c := g.presence.Lookup(userID)
	if c == nil {
		return false
	}

	if err := c.SendEvent(NewEvent(eventType, payload)); err != nil {
		return false
	}

	return true
}

// broadcastOnlineUsers pushes the current online user-id set to every live
// connection. The event is marshaled once per membership change.
func (g *Gateway) broadcastOnlineUsers() {
	ids := g.presence.OnlineIDs()
	ev := NewEvent(EventOnlineUsers, ids)

	for _, c := range g.presence.Clients() {
		if err := c.SendEvent(ev); err != nil {
			g.logger.Warn().
				Str("client_id", c.UserID()).
				Msg("Failed to queue online users event.")
		}
	}
}

// Shutdown gracefully closes every live connection.
func (g *Gateway) Shutdown() {
	g.logger.Info().Msg("Shutting down Gateway, closing live connections...")

	closeMessage := websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down.")

	for _, c := range g.presence.Clients() {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.CloseMessage, closeMessage); err != nil {
			g.logger.Debug().Err(err).Str("client_id", c.UserID()).Msg("Failed to send shutdown close frame.")
		}
		c.closeSend()
	}

	g.logger.Info().Msg("Gateway shutdown complete.")
}
