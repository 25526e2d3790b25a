/*
Package chat contains the real-time messaging core: the presence registry,
the gateway owning live WebSocket connections, and the send orchestration.

This file defines the Client struct, representing one live WebSocket
connection bound to an authenticated user. It manages the connection
lifecycle and the read/write pumps.
*/
package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"letteram/internal/app/user"
	"letteram/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame. Clients send
	// messages over the REST surface, so inbound frames are control-only.
	maxInboundFrameSize = 512

	// sendQueueSize is the per-connection outbound buffer. A receiver that
	// cannot drain this many events is treated as unreachable.
	sendQueueSize = 256

	// WsCloseCodeSessionReplaced is a custom WebSocket Close Code (4000-4999
	// range) signaling that the session was replaced by a newer connection.
	WsCloseCodeSessionReplaced = 4001
)

// Client represents an active WebSocket connection and its authenticated user.
type Client struct {
	// gateway owning this connection's lifecycle.
	gateway *Gateway

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// the authenticated user bound to this connection.
	user user.User

	// a buffered channel queueing events waiting to be written.
	send chan []byte

	// structured logger with client context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection.
func NewClient(gateway *Gateway, wsConn *websocket.Conn, u user.User) *Client {
	clientLogger := logx.Logger().With().
		Str("client_id", u.ID).
		Logger()

	return &Client{
		gateway: gateway,
		conn:    wsConn,
		user:    u,
		send:    make(chan []byte, sendQueueSize),
		logger:  clientLogger,
	}
}

// UserID returns the identifier of the bound user.
func (c *Client) UserID() string {
	return c.user.ID
}

// ReadPump services the connection's inbound side: pong heartbeats and the
// close handshake. Application data never arrives on this channel, so any
// data frame is discarded. The pump exits on connection loss and performs the
// presence cleanup.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxInboundFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			break
		}

		c.logger.Debug().Msg("Ignoring unexpected inbound data frame.")
	}
}

// cleanupOnDisconnect unbinds the connection from presence and closes it.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.gateway.Disconnect(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump writes queued events from the send channel to the connection and
// keeps the heartbeat alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if !c.writeQueued(payload, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeQueued writes one queued payload to the WebSocket. Returns false when
// the WritePump loop should terminate.
func (c *Client) writeQueued(payload []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePing sends a periodic Ping to maintain the connection heartbeat.
// Returns false when the WritePump loop should terminate.
func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// SendEvent marshals the event and queues it for delivery.
func (c *Client) SendEvent(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		c.logger.Error().Err(err).Str("event_type", string(ev.Type)).Msg("Error marshaling event for client")
		return err
	}

	return c.enqueue(payload)
}

// enqueue attempts a non-blocking send to the client's queue. A full queue
// means the connection is not draining; the caller treats that as a miss.
func (c *Client) enqueue(payload []byte) error {
	select {
	case c.send <- payload:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping event")
		return fmt.Errorf("client send queue full")
	}
}

// closeSend closes the send channel once, letting WritePump finish the close
// handshake and exit.
func (c *Client) closeSend() {
	select {
	case <-c.send:
	default:
		close(c.send)
	}
}

// Kick closes the connection with a custom Close Frame (Code 4001),
// signaling that the session was replaced by a newer connection.
func (c *Client) Kick(reason string) {
	c.logger.Warn().
		Int("close_code", WsCloseCodeSessionReplaced).
		Str("reason", reason).
		Msg("Sending WS Kick message and closing connection.")

	closeMessage := websocket.FormatCloseMessage(
		WsCloseCodeSessionReplaced,
		reason,
	)

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(websocket.CloseMessage, closeMessage); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to send WS 4001 Close Message.")
	}

	c.closeSend()
}
