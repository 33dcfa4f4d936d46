package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// socketServer upgrades incoming requests and registers them with the hub,
// reporting each server-side Connection so tests can subscribe it.
type socketServer struct {
	srv        *httptest.Server
	hub        *Hub
	registered chan *Connection
}

func newSocketServer(t *testing.T, hub *Hub) *socketServer {
	t.Helper()
	s := &socketServer{hub: hub, registered: make(chan *Connection, 8)}
	upgrader := websocket.Upgrader{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConnection(r.URL.Query().Get("user"), ws)
		hub.Register(conn)
		s.registered <- conn
	}))
	t.Cleanup(s.srv.Close)
	return s
}

// dial connects a client for userID and returns both halves.
func (s *socketServer) dial(t *testing.T, userID string) (*websocket.Conn, *Connection) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "?user=" + userID
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case conn := <-s.registered:
		return client, conn
	case <-time.After(2 * time.Second):
		t.Fatal("connection was not registered")
		return nil, nil
	}
}

func readText(t *testing.T, client *websocket.Conn) string {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func expectSilence(t *testing.T, client *websocket.Conn) {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := client.ReadMessage()
	require.Error(t, err)
}

func TestHubFanout(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()
	srv := newSocketServer(t, hub)

	aliceClient, aliceConn := srv.dial(t, "alice")
	bobClient, bobConn := srv.dial(t, "bob")
	carolClient, _ := srv.dial(t, "carol")

	hub.Subscribe("conv-1", aliceConn)
	hub.Subscribe("conv-1", bobConn)
	// carol never subscribes

	delivered := hub.Fanout("conv-1", []byte("hello"), "")
	assert.Equal(t, 2, delivered)
	assert.Equal(t, "hello", readText(t, aliceClient))
	assert.Equal(t, "hello", readText(t, bobClient))
	expectSilence(t, carolClient)
}

func TestHubFanoutExcludesSender(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()
	srv := newSocketServer(t, hub)

	aliceClient, aliceConn := srv.dial(t, "alice")
	bobClient, bobConn := srv.dial(t, "bob")
	hub.Subscribe("conv-1", aliceConn)
	hub.Subscribe("conv-1", bobConn)

	delivered := hub.Fanout("conv-1", []byte("from alice"), "alice")
	assert.Equal(t, 1, delivered)
	assert.Equal(t, "from alice", readText(t, bobClient))
	expectSilence(t, aliceClient)
}

func TestHubPush(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()
	srv := newSocketServer(t, hub)

	aliceClient, _ := srv.dial(t, "alice")

	assert.True(t, hub.Push("alice", []byte("direct")))
	assert.Equal(t, "direct", readText(t, aliceClient))

	assert.False(t, hub.Push("nobody", []byte("lost")))
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()
	srv := newSocketServer(t, hub)

	aliceClient, aliceConn := srv.dial(t, "alice")
	hub.Subscribe("conv-1", aliceConn)
	hub.Unsubscribe("conv-1", aliceConn)

	assert.Equal(t, 0, hub.Fanout("conv-1", []byte("gone"), ""))
	expectSilence(t, aliceClient)
}

func TestHubReplacesPreviousSession(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()
	srv := newSocketServer(t, hub)

	firstClient, firstConn := srv.dial(t, "alice")
	hub.Subscribe("conv-1", firstConn)

	_, secondConn := srv.dial(t, "alice")
	hub.Subscribe("conv-1", secondConn)

	// the first socket is closed by the swap
	require.NoError(t, firstClient.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := firstClient.ReadMessage()
	require.Error(t, err)

	// only the replacement session receives fanout
	assert.Equal(t, 1, hub.Fanout("conv-1", []byte("again"), ""))
}

func TestHubFanoutToClosedConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()
	srv := newSocketServer(t, hub)

	_, aliceConn := srv.dial(t, "alice")
	bobClient, bobConn := srv.dial(t, "bob")
	hub.Subscribe("conv-1", aliceConn)
	hub.Subscribe("conv-1", bobConn)

	// alice drops right before the fanout; her connection stays in the
	// subscription set until the reader unregisters it
	aliceConn.Close(websocket.CloseNormalClosure, "bye")

	assert.Equal(t, 1, hub.Fanout("conv-1", []byte("still here"), ""))
	assert.Equal(t, "still here", readText(t, bobClient))
}

func TestHubUnregisterDropsSubscriptions(t *testing.T) {
	hub := NewHub()
	defer hub.Shutdown()
	srv := newSocketServer(t, hub)

	_, aliceConn := srv.dial(t, "alice")
	hub.Subscribe("conv-1", aliceConn)
	hub.Unregister(aliceConn)

	assert.Equal(t, 0, hub.Fanout("conv-1", []byte("nobody home"), ""))
	assert.False(t, hub.Push("alice", []byte("nobody home")))
}
