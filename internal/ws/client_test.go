package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func dialTestServer(t *testing.T, registry *Registry) (*httptest.Server, *websocket.Conn) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Serve(registry, w, r)
	}))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return srv, conn
}

func TestClient_RegisterAckAndPush(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)

	registry := NewRegistry()
	srv, conn := dialTestServer(t, registry)
	defer srv.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "register", "userId": 42}))

	var ack RegisteredAck
	require.NoError(t, conn.ReadJSON(&ack))
	assert.Equal(t, TypeRegistered, ack.Type)
	assert.NotEmpty(t, ack.Message)

	// registration happens before the ack is queued
	require.NotNil(t, registry.Lookup("42"))

	notice, err := json.Marshal(ShippedNotice{
		Type:    TypeOrderShipped,
		OrderID: 7,
		Message: "Order #7 has been shipped.",
	})
	require.NoError(t, err)
	require.True(t, registry.Send("42", notice))

	var got ShippedNotice
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, TypeOrderShipped, got.Type)
	assert.Equal(t, uint64(7), got.OrderID)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return registry.Lookup("42") == nil
	}, 2*time.Second, 10*time.Millisecond, "closing the socket must unregister the user")
}

func TestClient_StringUserIDAccepted(t *testing.T) {
	registry := NewRegistry()
	srv, conn := dialTestServer(t, registry)
	defer srv.Close()
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "register", "userId": "42"}))

	var ack RegisteredAck
	require.NoError(t, conn.ReadJSON(&ack))
	assert.Equal(t, TypeRegistered, ack.Type)
	assert.NotNil(t, registry.Lookup("42"))
}

func TestClient_MalformedFramesIgnored(t *testing.T) {
	registry := NewRegistry()
	srv, conn := dialTestServer(t, registry)
	defer srv.Close()
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "register"}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "subscribe", "userId": 42}))

	// none of the above registers anything or kills the connection
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "register", "userId": 42}))

	var ack RegisteredAck
	require.NoError(t, conn.ReadJSON(&ack))
	assert.Equal(t, TypeRegistered, ack.Type)
	assert.NotNil(t, registry.Lookup("42"))
}

func TestClient_ReconnectReplacesRegistration(t *testing.T) {
	registry := NewRegistry()
	srv, first := dialTestServer(t, registry)
	defer srv.Close()

	require.NoError(t, first.WriteJSON(map[string]any{"type": "register", "userId": 42}))
	var ack RegisteredAck
	require.NoError(t, first.ReadJSON(&ack))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	second.SetReadDeadline(time.Now().Add(2 * time.Second))

	require.NoError(t, second.WriteJSON(map[string]any{"type": "register", "userId": 42}))
	require.NoError(t, second.ReadJSON(&ack))

	notice, err := json.Marshal(ShippedNotice{Type: TypeOrderShipped, OrderID: 7, Message: "Order #7 has been shipped."})
	require.NoError(t, err)
	require.True(t, registry.Send("42", notice))

	var got ShippedNotice
	require.NoError(t, second.ReadJSON(&got))
	assert.Equal(t, uint64(7), got.OrderID)

	// the first connection closing must not evict the replacement
	require.NoError(t, first.Close())
	time.Sleep(100 * time.Millisecond)
	assert.NotNil(t, registry.Lookup("42"))
}
