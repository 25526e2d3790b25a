package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasContent(t *testing.T) {
	require.False(t, Message{}.HasContent())
	require.True(t, Message{Text: "hi"}.HasContent())
	require.True(t, Message{Image: "https://assets.test/a.png"}.HasContent())
	require.True(t, Message{Images: []string{"https://assets.test/a.png"}}.HasContent())
}

func TestJSONOmitsAbsentImageFields(t *testing.T) {
	raw, err := json.Marshal(Message{ID: "m1", SenderID: "a", ReceiverID: "b", Text: "hi"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Older readers expect image fields to be absent, not null or empty.
	require.NotContains(t, decoded, "image")
	require.NotContains(t, decoded, "images")
}
