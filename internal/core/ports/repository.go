package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/captainbook/internal/core/domain"
)

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	// ResolveIfPending moves a Pending booking to status and returns the
	// stored row. It returns domain.ErrAlreadyResolved when the booking is no
	// longer Pending.
	ResolveIfPending(ctx context.Context, bookingID uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
	// RateIfUnrated attaches a rating once. It returns domain.ErrAlreadyRated
	// when a rating is already present.
	RateIfUnrated(ctx context.Context, bookingID uuid.UUID, rating int, review string) (*domain.Booking, error)
	ListForCaptain(ctx context.Context, captainID uuid.UUID) ([]domain.CaptainBooking, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.UserBooking, error)
}

type CaptainRepository interface {
	Create(ctx context.Context, captain *domain.Captain) error
	GetByID(ctx context.Context, captainID uuid.UUID) (*domain.Captain, error)
	GetByEmail(ctx context.Context, email string) (*domain.Captain, error)
	UpdateProfile(ctx context.Context, captain *domain.Captain) error
	SetStatus(ctx context.Context, captainID uuid.UUID, status domain.PresenceStatus) error
	// StartSession marks the captain active until expiresAt.
	StartSession(ctx context.Context, captainID uuid.UUID, expiresAt time.Time) error
	FindAvailable(ctx context.Context, location, skill string) ([]domain.AvailableCaptain, error)
	DeactivateExpiredSessions(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
