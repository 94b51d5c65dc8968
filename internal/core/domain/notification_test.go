package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRooms(t *testing.T) {
	id := uuid.MustParse("0b1e2c3d-4f50-4a6b-8c7d-9e0f1a2b3c4d")

	assert.Equal(t, Room("user_0b1e2c3d-4f50-4a6b-8c7d-9e0f1a2b3c4d"), UserRoom(id))
	assert.Equal(t, Room("captain_0b1e2c3d-4f50-4a6b-8c7d-9e0f1a2b3c4d"), CaptainRoom(id))
}

func TestParseRoom(t *testing.T) {
	id := uuid.New()

	room, err := ParseRoom("user_" + id.String())
	require.NoError(t, err)
	assert.Equal(t, UserRoom(id), room)

	room, err = ParseRoom("captain_" + id.String())
	require.NoError(t, err)
	assert.Equal(t, CaptainRoom(id), room)

	for _, bad := range []string{"", "admin_" + id.String(), "user_", "user_123", id.String()} {
		_, err := ParseRoom(bad)
		assert.True(t, IsKind(err, KindValidation), "room %q", bad)
	}
}

func TestNotificationMessages(t *testing.T) {
	b := &Booking{ID: uuid.New(), Status: BookingAccepted, ShootType: WeddingPhotography}

	user := NewUserNotification(b)
	assert.Equal(t, "Your booking for Wedding Photography was accepted by the captain.", user.Message)
	assert.Equal(t, EventUserNotification, user.Kind())

	b.Status = BookingDeclined
	captain := NewCaptainNotification(b)
	assert.Equal(t, "Booking "+b.ID.String()+" status changed to Declined", captain.Message)
	assert.Equal(t, EventCaptainNotification, captain.Kind())

	update := NewBookingStatusUpdate(b)
	assert.Equal(t, b.ID, update.BookingID)
	assert.Equal(t, EventBookingStatusUpdate, update.Kind())
}
