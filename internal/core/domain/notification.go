package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	EventBookingStatusUpdate = "bookingStatusUpdate"
	EventUserNotification    = "userNotification"
	EventCaptainNotification = "captainNotification"
)

const (
	userRoomPrefix    = "user_"
	captainRoomPrefix = "captain_"
)

// Room is a publish/subscribe channel scoped to one identity.
type Room string

func UserRoom(id uuid.UUID) Room {
	return Room(userRoomPrefix + id.String())
}

func CaptainRoom(id uuid.UUID) Room {
	return Room(captainRoomPrefix + id.String())
}

// ParseRoom accepts only user_<uuid> and captain_<uuid>.
func ParseRoom(s string) (Room, error) {
	var raw string
	switch {
	case strings.HasPrefix(s, userRoomPrefix):
		raw = strings.TrimPrefix(s, userRoomPrefix)
	case strings.HasPrefix(s, captainRoomPrefix):
		raw = strings.TrimPrefix(s, captainRoomPrefix)
	default:
		return "", NewValidationError("unknown room: " + s)
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", NewValidationError("invalid room id: " + raw)
	}
	return Room(s), nil
}

// Event is one notification variant. Kind is the wire event name.
type Event interface {
	Kind() string
}

type BookingStatusUpdate struct {
	BookingID uuid.UUID     `json:"bookingId"`
	Status    BookingStatus `json:"status"`
	ShootType ShootType     `json:"shootType"`
}

func (BookingStatusUpdate) Kind() string { return EventBookingStatusUpdate }

type UserNotification struct {
	BookingID uuid.UUID     `json:"bookingId"`
	Status    BookingStatus `json:"status"`
	ShootType ShootType     `json:"shootType"`
	Message   string        `json:"message"`
}

func (UserNotification) Kind() string { return EventUserNotification }

type CaptainNotification struct {
	BookingID uuid.UUID     `json:"bookingId"`
	Status    BookingStatus `json:"status"`
	ShootType ShootType     `json:"shootType"`
	Message   string        `json:"message"`
}

func (CaptainNotification) Kind() string { return EventCaptainNotification }

func NewBookingStatusUpdate(b *Booking) BookingStatusUpdate {
	return BookingStatusUpdate{BookingID: b.ID, Status: b.Status, ShootType: b.ShootType}
}

func NewUserNotification(b *Booking) UserNotification {
	return UserNotification{
		BookingID: b.ID,
		Status:    b.Status,
		ShootType: b.ShootType,
		Message: fmt.Sprintf("Your booking for %s was %s by the captain.",
			b.ShootType, strings.ToLower(string(b.Status))),
	}
}

func NewCaptainNotification(b *Booking) CaptainNotification {
	return CaptainNotification{
		BookingID: b.ID,
		Status:    b.Status,
		ShootType: b.ShootType,
		Message:   fmt.Sprintf("Booking %s status changed to %s", b.ID, b.Status),
	}
}
