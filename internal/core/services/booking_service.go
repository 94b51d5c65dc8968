package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/srgjo27/captainbook/internal/core/domain"
	"github.com/srgjo27/captainbook/internal/core/ports"
)

// publishTimeout bounds a single notification publish. Publishes run on a
// context detached from the request.
const publishTimeout = 2 * time.Second

type CreateBookingRequest struct {
	CaptainID string `json:"captainId"`
	UserID    string `json:"userId"`
	ShootType string `json:"shootType"`
	Location  string `json:"location"`
}

type BookingService struct {
	bookingRepo ports.BookingRepository
	notifier    ports.Notifier
	log         zerolog.Logger
	now         func() time.Time
}

func NewBookingService(bookingRepo ports.BookingRepository, notifier ports.Notifier, log zerolog.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		log:         log.With().Str("component", "booking_ledger").Logger(),
		now:         time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (b *domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateBooking")
	defer func() { endSpan(span, err) }()

	if req.CaptainID == "" || req.UserID == "" || req.ShootType == "" || strings.TrimSpace(req.Location) == "" {
		return nil, domain.NewValidationError("all fields are required")
	}

	captainID, err := uuid.Parse(req.CaptainID)
	if err != nil {
		return nil, domain.NewValidationError("invalid captain id")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, domain.NewValidationError("invalid user id")
	}

	shootType := domain.ShootType(req.ShootType)
	if !shootType.Valid() {
		return nil, domain.NewValidationError("invalid shoot type")
	}

	newBooking := &domain.Booking{
		ID:        uuid.New(),
		CaptainID: captainID,
		UserID:    userID,
		ShootType: shootType,
		Location:  strings.TrimSpace(req.Location),
		BookedAt:  s.now().UTC(),
		Status:    domain.BookingPending,
	}
	span.SetAttributes(attribute.String("booking.id", newBooking.ID.String()))

	if err := s.bookingRepo.CreateBooking(ctx, newBooking); err != nil {
		return nil, asDependency("failed to create booking", err)
	}

	s.publish(ctx, domain.UserRoom(userID), domain.NewBookingStatusUpdate(newBooking))

	return newBooking, nil
}

// ResolveBooking applies a captain's decision to a pending booking.
func (s *BookingService) ResolveBooking(ctx context.Context, bookingID, captainID uuid.UUID, status domain.BookingStatus) (b *domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.ResolveBooking")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("booking.status", string(status)),
	)

	if !status.IsResolution() {
		return nil, domain.ErrInvalidStatus
	}

	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, asDependency("failed to load booking", err)
	}

	if current.CaptainID != captainID {
		return nil, domain.NewForbiddenError("forbidden")
	}

	if !current.CanTransitionTo(status) {
		return nil, domain.ErrAlreadyResolved
	}

	updated, err := s.bookingRepo.ResolveIfPending(ctx, bookingID, status)
	if err != nil {
		return nil, asDependency("failed to update booking", err)
	}

	s.publish(ctx, domain.UserRoom(updated.UserID), domain.NewUserNotification(updated))
	s.publish(ctx, domain.CaptainRoom(updated.CaptainID), domain.NewCaptainNotification(updated))

	return updated, nil
}

func (s *BookingService) ListForCaptain(ctx context.Context, captainID uuid.UUID) (out []domain.CaptainBooking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.ListForCaptain")
	defer func() { endSpan(span, err) }()

	out, err = s.bookingRepo.ListForCaptain(ctx, captainID)
	if err != nil {
		return nil, asDependency("error fetching bookings", err)
	}
	return out, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID) (out []domain.UserBooking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.ListForUser")
	defer func() { endSpan(span, err) }()

	out, err = s.bookingRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, asDependency("error fetching user bookings", err)
	}
	return out, nil
}

// AttachRating records a one-time rating and review on a booking.
func (s *BookingService) AttachRating(ctx context.Context, bookingID uuid.UUID, rating int, review string) (b *domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.AttachRating")
	defer func() { endSpan(span, err) }()

	if !domain.ValidRating(rating) {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}

	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, asDependency("failed to load booking", err)
	}
	if current.IsRated() {
		return nil, domain.ErrAlreadyRated
	}

	updated, err := s.bookingRepo.RateIfUnrated(ctx, bookingID, rating, strings.TrimSpace(review))
	if err != nil {
		return nil, asDependency("failed to add rating", err)
	}
	return updated, nil
}

// publish logs and drops failures; the booking row is already written.
func (s *BookingService) publish(ctx context.Context, room domain.Room, event domain.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.notifier.Publish(ctx, room, event); err != nil {
		s.log.Warn().Err(err).
			Str("room", string(room)).
			Str("event", event.Kind()).
			Msg("notification dropped")
	}
}
