package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/captainbook/internal/adapter/notify"
	"github.com/srgjo27/captainbook/internal/core/domain"
)

func dialWS(t *testing.T, s *testServer) *websocket.Conn {
	return dialWSWithHeader(t, s, nil)
}

func dialWSWithHeader(t *testing.T, s *testServer, header http.Header) *websocket.Conn {
	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWS_JoinRoomAndReceive(t *testing.T) {
	s := newTestServer(t, nil)
	conn := dialWS(t, s)
	userID := uuid.New()

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinUserRoom", "data": userID.String()}))
	require.Eventually(t, func() bool {
		return s.hub.Members(domain.UserRoom(userID)) == 1
	}, time.Second, 10*time.Millisecond)

	b := &domain.Booking{ID: uuid.New(), Status: domain.BookingAccepted, ShootType: domain.EventPhotography}
	require.NoError(t, s.hub.Publish(context.Background(), domain.UserRoom(userID), domain.NewUserNotification(b)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame notify.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, domain.EventUserNotification, frame.Event)

	var payload domain.UserNotification
	require.NoError(t, json.Unmarshal(frame.Data, &payload))
	assert.Equal(t, b.ID, payload.BookingID)
	assert.Equal(t, "Your booking for Event Photography was accepted by the captain.", payload.Message)
}

func TestWS_LeaveRoom(t *testing.T) {
	s := newTestServer(t, nil)
	conn := dialWS(t, s)
	captainID := uuid.New()
	room := domain.CaptainRoom(captainID)

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinCaptainRoom", "data": captainID.String()}))
	require.Eventually(t, func() bool { return s.hub.Members(room) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "leaveRoom", "data": string(room)}))
	require.Eventually(t, func() bool { return s.hub.Members(room) == 0 }, time.Second, 10*time.Millisecond)
}

func TestWS_CloseRemovesMemberships(t *testing.T) {
	s := newTestServer(t, nil)
	conn := dialWS(t, s)
	userID := uuid.New()

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinUserRoom", "data": userID.String()}))
	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinUserRoom", "data": "not-a-uuid"}))
	require.Eventually(t, func() bool {
		return s.hub.Members(domain.UserRoom(userID)) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		return s.hub.Members(domain.UserRoom(userID)) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWS_AuthenticatedJoinRejectsForeignRoom(t *testing.T) {
	userID, otherID := uuid.New(), uuid.New()
	principals := stubAuth{"user-token": {ID: userID, Role: domain.RoleUser}}
	s := newTestServerWith(t, principals, principals, false)
	conn := dialWSWithHeader(t, s, http.Header{"Authorization": {"Bearer user-token"}})

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinUserRoom", "data": otherID.String()}))
	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinCaptainRoom", "data": userID.String()}))
	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinUserRoom", "data": userID.String()}))

	require.Eventually(t, func() bool {
		return s.hub.Members(domain.UserRoom(userID)) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, s.hub.Members(domain.UserRoom(otherID)))
	assert.Equal(t, 0, s.hub.Members(domain.CaptainRoom(userID)))
}

func TestWS_AuthenticatedJoinWithoutToken(t *testing.T) {
	userID := uuid.New()
	principals := stubAuth{"user-token": {ID: userID, Role: domain.RoleUser}}
	s := newTestServerWith(t, principals, principals, false)
	conn := dialWS(t, s)

	require.NoError(t, conn.WriteJSON(map[string]string{"event": "joinUserRoom", "data": userID.String()}))

	assert.Never(t, func() bool {
		return s.hub.Members(domain.UserRoom(userID)) > 0
	}, 200*time.Millisecond, 10*time.Millisecond)
}
