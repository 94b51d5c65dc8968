package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

func drain(c *Client) []Frame {
	var frames []Frame
	for {
		select {
		case raw, ok := <-c.Outbound():
			if !ok {
				return frames
			}
			var f Frame
			if err := json.Unmarshal(raw, &f); err == nil {
				frames = append(frames, f)
			}
		default:
			return frames
		}
	}
}

func TestHub_PublishReachesOnlyRoomMembers(t *testing.T) {
	hub := NewHub(zerolog.Nop(), 8)
	userID := uuid.New()

	member := hub.Connect()
	outsider := hub.Connect()
	require.NoError(t, hub.Join(member, domain.UserRoom(userID)))
	require.NoError(t, hub.Join(outsider, domain.UserRoom(uuid.New())))

	b := &domain.Booking{ID: uuid.New(), Status: domain.BookingPending, ShootType: domain.WeddingPhotography}
	require.NoError(t, hub.Publish(context.Background(), domain.UserRoom(userID), domain.NewBookingStatusUpdate(b)))

	frames := drain(member)
	require.Len(t, frames, 1)
	assert.Equal(t, domain.EventBookingStatusUpdate, frames[0].Event)

	var payload domain.BookingStatusUpdate
	require.NoError(t, json.Unmarshal(frames[0].Data, &payload))
	assert.Equal(t, b.ID, payload.BookingID)
	assert.Equal(t, domain.BookingPending, payload.Status)
	assert.Equal(t, domain.WeddingPhotography, payload.ShootType)

	assert.Empty(t, drain(outsider))
}

func TestHub_ClientInSeveralRooms(t *testing.T) {
	hub := NewHub(zerolog.Nop(), 8)
	userRoom := domain.UserRoom(uuid.New())
	captainRoom := domain.CaptainRoom(uuid.New())

	c := hub.Connect()
	require.NoError(t, hub.Join(c, userRoom))
	require.NoError(t, hub.Join(c, captainRoom))

	hub.Deliver(userRoom, []byte(`{"event":"a","data":null}`))
	hub.Deliver(captainRoom, []byte(`{"event":"b","data":null}`))

	frames := drain(c)
	require.Len(t, frames, 2)
	assert.Equal(t, "a", frames[0].Event)
	assert.Equal(t, "b", frames[1].Event)
}

func TestHub_PreservesPublishOrderPerConnection(t *testing.T) {
	hub := NewHub(zerolog.Nop(), 16)
	room := domain.UserRoom(uuid.New())
	c := hub.Connect()
	require.NoError(t, hub.Join(c, room))

	b := &domain.Booking{ID: uuid.New(), Status: domain.BookingPending, ShootType: domain.ReelMaking}
	require.NoError(t, hub.Publish(context.Background(), room, domain.NewBookingStatusUpdate(b)))
	b.Status = domain.BookingAccepted
	require.NoError(t, hub.Publish(context.Background(), room, domain.NewUserNotification(b)))

	frames := drain(c)
	require.Len(t, frames, 2)
	assert.Equal(t, domain.EventBookingStatusUpdate, frames[0].Event)
	assert.Equal(t, domain.EventUserNotification, frames[1].Event)
}

func TestHub_DisconnectRemovesAllMemberships(t *testing.T) {
	hub := NewHub(zerolog.Nop(), 8)
	userRoom := domain.UserRoom(uuid.New())
	captainRoom := domain.CaptainRoom(uuid.New())

	c := hub.Connect()
	require.NoError(t, hub.Join(c, userRoom))
	require.NoError(t, hub.Join(c, captainRoom))
	assert.Equal(t, 1, hub.Members(userRoom))

	hub.Disconnect(c)
	hub.Disconnect(c)

	assert.Equal(t, 0, hub.Members(userRoom))
	assert.Equal(t, 0, hub.Members(captainRoom))
	assert.Equal(t, 0, hub.Deliver(userRoom, []byte(`{}`)))

	_, ok := <-c.Outbound()
	assert.False(t, ok, "outbound queue should be closed")

	assert.ErrorIs(t, hub.Join(c, userRoom), ErrClientClosed)
}

func TestHub_Leave(t *testing.T) {
	hub := NewHub(zerolog.Nop(), 8)
	room := domain.CaptainRoom(uuid.New())
	c := hub.Connect()
	require.NoError(t, hub.Join(c, room))

	hub.Leave(c, room)

	assert.Equal(t, 0, hub.Members(room))
	assert.Empty(t, drain(c))
}

func TestHub_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(zerolog.Nop(), 1)
	room := domain.UserRoom(uuid.New())
	c := hub.Connect()
	require.NoError(t, hub.Join(c, room))

	assert.Equal(t, 1, hub.Deliver(room, []byte(`{"event":"first","data":null}`)))
	assert.Equal(t, 0, hub.Deliver(room, []byte(`{"event":"second","data":null}`)))

	frames := drain(c)
	require.Len(t, frames, 1)
	assert.Equal(t, "first", frames[0].Event)
}

func TestHub_PublishToEmptyRoom(t *testing.T) {
	hub := NewHub(zerolog.Nop(), 8)
	b := &domain.Booking{ID: uuid.New(), Status: domain.BookingDeclined}

	err := hub.Publish(context.Background(), domain.UserRoom(uuid.New()), domain.NewUserNotification(b))

	assert.NoError(t, err)
}
