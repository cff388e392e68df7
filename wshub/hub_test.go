// Lesson: testing WebSockets.
//
// The hub is exercised end to end: httptest.NewServer serves the upgrade
// endpoint, gorilla's dialer connects real clients, and assertions read
// actual frames off the wire. The URL juggling in dial is the standard
// trick; the test server speaks http:// and the dialer wants ws://.
//
// Teardown order is load-bearing and runs bottom to top: connections close
// first, then the server, then the hub, and goleak checks last that no
// pump goroutine outlived any of it.
package wshub

import (
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

func dial(t *testing.T, srv *httptest.Server, user string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// waitForClients blocks until the hub has processed the registrations,
// which happen asynchronously to the dial returning.
func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	require.Eventually(t, func() bool { return hub.ClientCount() == n },
		2*time.Second, 10*time.Millisecond, "expected %d connected clients", n)
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	defer hub.Stop()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	alice := dial(t, srv, "alice")
	defer alice.Close()
	bob := dial(t, srv, "bob")
	defer bob.Close()
	waitForClients(t, hub, 2)

	require.NoError(t, alice.WriteJSON(Message{Text: "hello"}))

	// The sender is part of the broadcast too.
	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := readMessage(t, conn)
		assert.Equal(t, "alice", msg.From)
		assert.Equal(t, "hello", msg.Text)
	}
}

func TestHub_StampsSenderIdentity(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	defer hub.Stop()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	mallory := dial(t, srv, "mallory")
	defer mallory.Close()
	victim := dial(t, srv, "victim")
	defer victim.Close()
	waitForClients(t, hub, 2)

	// A forged From field is overwritten with the connection's identity.
	require.NoError(t, mallory.WriteJSON(Message{From: "admin", Text: "trust me"}))

	msg := readMessage(t, victim)
	assert.Equal(t, "mallory", msg.From)
}

func TestHub_ServerBroadcast(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	defer hub.Stop()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	alice := dial(t, srv, "alice")
	defer alice.Close()
	bob := dial(t, srv, "bob")
	defer bob.Close()
	waitForClients(t, hub, 2)

	hub.Broadcast(Message{From: "server", Text: "maintenance at noon"})

	for _, conn := range []*websocket.Conn{alice, bob} {
		msg := readMessage(t, conn)
		assert.Equal(t, "server", msg.From)
		assert.Equal(t, "maintenance at noon", msg.Text)
	}
}

func TestHub_DisconnectLeavesOthersRunning(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	defer hub.Stop()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")
	defer bob.Close()
	waitForClients(t, hub, 2)

	require.NoError(t, alice.Close())
	waitForClients(t, hub, 1)

	hub.Broadcast(Message{From: "server", Text: "still here"})
	assert.Equal(t, "still here", readMessage(t, bob).Text)
}

func TestHub_StopDisconnectsClientsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	alice := dial(t, srv, "alice")
	defer alice.Close()
	bob := dial(t, srv, "bob")
	defer bob.Close()
	waitForClients(t, hub, 2)

	hub.Stop()

	// Each client receives a proper close frame, not a dropped connection.
	for _, conn := range []*websocket.Conn{alice, bob} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, _, err := conn.ReadMessage()
		require.Error(t, err)
		assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure),
			"expected normal closure, got: %v", err)
	}

	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	hub.Stop()
	hub.Stop()

	// Broadcast after Stop is a silent no-op.
	hub.Broadcast(Message{Text: "into the void"})
}

func TestHub_RejectsMissingUser(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	defer hub.Stop()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Nil(t, conn)

	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHub_RejectsAfterStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	hub.Stop()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?user=latecomer"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	assert.Nil(t, conn)

	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHub_ClientCount(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := New(nil)
	defer hub.Stop()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	assert.Equal(t, 0, hub.ClientCount())

	alice := dial(t, srv, "alice")
	defer alice.Close()
	waitForClients(t, hub, 1)

	bob := dial(t, srv, "bob")
	waitForClients(t, hub, 2)

	require.NoError(t, bob.Close())
	waitForClients(t, hub, 1)
}
