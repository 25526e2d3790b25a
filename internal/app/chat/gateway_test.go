package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"letteram/internal/app/message"
	"letteram/internal/app/user"
)

// newGatewayTestServer runs a Gateway behind a real WebSocket endpoint. The
// user is named in the query string so tests can dial as anyone.
func newGatewayTestServer(t *testing.T) (*Gateway, *httptest.Server) {
	t.Helper()

	gw := NewGateway(NewPresenceRegistry())

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		client := NewClient(gw, conn, user.User{ID: userID, FullName: userID})
		go client.WritePump()
		gw.Connect(client)
		client.ReadPump()
	}))
	t.Cleanup(srv.Close)

	return gw, srv
}

func dialAs(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// wireEvent mirrors the Event envelope with the payload kept raw for
// per-test decoding.
type wireEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func readEvent(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev wireEvent
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func readOnlineUsers(t *testing.T, conn *websocket.Conn) []string {
	t.Helper()

	ev := readEvent(t, conn)
	require.Equal(t, EventOnlineUsers, ev.Type)

	var ids []string
	require.NoError(t, json.Unmarshal(ev.Payload, &ids))
	return ids
}

func TestConnectBroadcastsOnlineUsers(t *testing.T) {
	_, srv := newGatewayTestServer(t)

	alice := dialAs(t, srv, "alice")
	require.Equal(t, []string{"alice"}, readOnlineUsers(t, alice))

	bob := dialAs(t, srv, "bob")
	require.Equal(t, []string{"alice", "bob"}, readOnlineUsers(t, bob))

	// The existing connection sees the membership change too.
	require.Equal(t, []string{"alice", "bob"}, readOnlineUsers(t, alice))
}

func TestDisconnectBroadcastsOnlineUsers(t *testing.T) {
	_, srv := newGatewayTestServer(t)

	alice := dialAs(t, srv, "alice")
	readOnlineUsers(t, alice)

	bob := dialAs(t, srv, "bob")
	readOnlineUsers(t, bob)
	readOnlineUsers(t, alice)

	require.NoError(t, bob.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	))

	require.Equal(t, []string{"alice"}, readOnlineUsers(t, alice))
}

func TestPushDeliversToConnectedReceiver(t *testing.T) {
	gw, srv := newGatewayTestServer(t)

	bob := dialAs(t, srv, "bob")
	readOnlineUsers(t, bob)

	sent := message.Message{
		ID:         "msg-1",
		SenderID:   "alice",
		ReceiverID: "bob",
		Text:       "hi",
	}
	require.True(t, gw.Push("bob", EventNewMessage, sent))

	ev := readEvent(t, bob)
	require.Equal(t, EventNewMessage, ev.Type)
	require.NotEmpty(t, ev.ID)
	require.NotZero(t, ev.Timestamp)

	var got message.Message
	require.NoError(t, json.Unmarshal(ev.Payload, &got))
	require.Equal(t, sent, got)
}

func TestPushToOfflineUserReportsMiss(t *testing.T) {
	gw, _ := newGatewayTestServer(t)

	require.False(t, gw.Push("ghost", EventNewMessage, message.Message{ID: "msg-1"}))
}

func TestNewConnectionReplacesOld(t *testing.T) {
	gw, srv := newGatewayTestServer(t)

	first := dialAs(t, srv, "alice")
	readOnlineUsers(t, first)

	second := dialAs(t, srv, "alice")
	readOnlineUsers(t, second)

	// The displaced connection is closed with the session-replaced code.
	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, _, err := first.ReadMessage()
		if err == nil {
			continue
		}
		var closeErr *websocket.CloseError
		require.ErrorAs(t, err, &closeErr)
		require.Equal(t, WsCloseCodeSessionReplaced, closeErr.Code)
		break
	}

	// Pushes land on the new connection only.
	require.True(t, gw.Push("alice", EventNewMessage, message.Message{ID: "msg-2"}))

	ev := readEvent(t, second)
	require.Equal(t, EventNewMessage, ev.Type)
}

func TestShutdownClosesConnections(t *testing.T) {
	gw, srv := newGatewayTestServer(t)

	alice := dialAs(t, srv, "alice")
	readOnlineUsers(t, alice)

	gw.Shutdown()

	require.NoError(t, alice.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, _, err := alice.ReadMessage()
		if err == nil {
			continue
		}
		var closeErr *websocket.CloseError
		require.ErrorAs(t, err, &closeErr)
		require.Equal(t, websocket.CloseGoingAway, closeErr.Code)
		break
	}
}
