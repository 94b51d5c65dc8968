package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending  BookingStatus = "Pending"
	BookingAccepted BookingStatus = "Accepted"
	BookingDeclined BookingStatus = "Declined"
)

// IsResolution reports whether s is a valid target for a captain's decision.
func (s BookingStatus) IsResolution() bool {
	return s == BookingAccepted || s == BookingDeclined
}

const (
	MinRating = 1
	MaxRating = 5
)

type Booking struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	CaptainID uuid.UUID     `json:"captainId" db:"captain_id"`
	UserID    uuid.UUID     `json:"userId" db:"user_id"`
	ShootType ShootType     `json:"shootType" db:"shoot_type"`
	Location  string        `json:"location" db:"location"`
	BookedAt  time.Time     `json:"bookedAt" db:"booked_at"`
	Status    BookingStatus `json:"status" db:"status"`
	Rating    *int          `json:"rating,omitempty" db:"rating"`
	Review    *string       `json:"review,omitempty" db:"review"`
}

// CanTransitionTo reports whether the booking may move to next.
// Pending is the only state with outgoing edges.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	return b.Status == BookingPending && next.IsResolution()
}

func (b *Booking) IsRated() bool {
	return b.Rating != nil
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// UserSummary is the slice of a user profile joined onto a captain's booking list.
type UserSummary struct {
	ID       uuid.UUID `json:"_id"`
	FullName FullName  `json:"fullname"`
	Email    string    `json:"email"`
}

// CaptainSummary is the slice of a captain profile joined onto a user's booking list.
type CaptainSummary struct {
	ID          uuid.UUID    `json:"_id"`
	FullName    FullName     `json:"fullname"`
	Email       string       `json:"email"`
	Equipment   []CameraType `json:"camera"`
	Skills      []ShootType  `json:"skills"`
	Location    Location     `json:"location"`
	SocialLinks SocialLinks  `json:"socialLinks"`
}

type CaptainBooking struct {
	Booking
	User UserSummary `json:"user"`
}

type UserBooking struct {
	Booking
	Captain CaptainSummary `json:"captain"`
}
