package server

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"socialnet/internal/notifications"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listen serves app on a random local port and returns its address.
func listen(t *testing.T, s *Server) string {
	t.Helper()
	app := s.App()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return ln.Addr().String()
}

func dialEvents(t *testing.T, s *Server, addr, follow string) *websocket.Conn {
	t.Helper()
	before := s.hub.Len()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws/events?follow="+follow, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return s.hub.Len() == before+1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

type streamedEvent struct {
	Type     string          `json:"type"`
	Subjects []string        `json:"subjects"`
	Payload  json.RawMessage `json:"payload"`
}

func TestEventStreamDeliversFollowedUser(t *testing.T) {
	s := newTestServer(t)
	addr := listen(t, s)
	app := s.App()

	alice := createUser(t, app, "alice")
	bob := createUser(t, app, "bob")

	conn := dialEvents(t, s, addr, alice)

	createThought(t, app, bob, "bob", "not for alice's followers")
	thought := createThought(t, app, alice, "alice", "hello followers")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	msgType, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, msgType)

	var ev streamedEvent
	require.NoError(t, json.Unmarshal(raw, &ev))
	assert.Equal(t, notifications.EventThoughtCreated, ev.Type)
	assert.Equal(t, []string{alice}, ev.Subjects)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, thought, payload["id"])

	// Bob's thought was filtered out and nothing else is pending.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err = conn.ReadMessage()
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestEventStreamWithoutFollowReceivesEverything(t *testing.T) {
	s := newTestServer(t)
	addr := listen(t, s)
	app := s.App()

	conn := dialEvents(t, s, addr, "")
	createUser(t, app, "carol")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev streamedEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, notifications.EventUserCreated, ev.Type)
}

func TestEventStreamClosedOnShutdown(t *testing.T) {
	s := newTestServer(t)
	addr := listen(t, s)

	conn := dialEvents(t, s, addr, "")
	require.NoError(t, s.hub.Shutdown(t.Context()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Equal(t, 0, s.hub.Len())
}
