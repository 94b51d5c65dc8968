package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/captainbook/internal/core/domain"
	"github.com/srgjo27/captainbook/internal/core/ports/mocks"
	"github.com/srgjo27/captainbook/internal/core/services"
)

func newBookingService(t *testing.T) (*services.BookingService, *mocks.BookingRepository, *mocks.Notifier) {
	repo := mocks.NewBookingRepository(t)
	notifier := mocks.NewNotifier(t)
	return services.NewBookingService(repo, notifier, zerolog.Nop()), repo, notifier
}

func pendingBooking(captainID, userID uuid.UUID) *domain.Booking {
	return &domain.Booking{
		ID:        uuid.New(),
		CaptainID: captainID,
		UserID:    userID,
		ShootType: domain.WeddingPhotography,
		Location:  "Goa",
		Status:    domain.BookingPending,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	service, repo, notifier := newBookingService(t)
	ctx := context.Background()
	captainID, userID := uuid.New(), uuid.New()

	req := services.CreateBookingRequest{
		CaptainID: captainID.String(),
		UserID:    userID.String(),
		ShootType: string(domain.WeddingPhotography),
		Location:  "Goa",
	}

	repo.On("CreateBooking", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	notifier.On("Publish", mock.Anything, domain.UserRoom(userID), mock.MatchedBy(func(e domain.Event) bool {
		u, ok := e.(domain.BookingStatusUpdate)
		return ok && u.Status == domain.BookingPending && u.ShootType == domain.WeddingPhotography
	})).Return(nil).Once()

	b, err := service.CreateBooking(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, captainID, b.CaptainID)
	assert.Equal(t, userID, b.UserID)
	assert.Nil(t, b.Rating)
	assert.Nil(t, b.Review)
	assert.False(t, b.BookedAt.IsZero())
	notifier.AssertNumberOfCalls(t, "Publish", 1)
}

func TestCreateBooking_Fail_Validation(t *testing.T) {
	valid := services.CreateBookingRequest{
		CaptainID: uuid.NewString(),
		UserID:    uuid.NewString(),
		ShootType: string(domain.FashionShoot),
		Location:  "Mumbai",
	}

	tests := []struct {
		name   string
		mutate func(r *services.CreateBookingRequest)
		msg    string
	}{
		{"missing location", func(r *services.CreateBookingRequest) { r.Location = "" }, "all fields are required"},
		{"blank location", func(r *services.CreateBookingRequest) { r.Location = "   " }, "all fields are required"},
		{"missing captain", func(r *services.CreateBookingRequest) { r.CaptainID = "" }, "all fields are required"},
		{"missing shoot type", func(r *services.CreateBookingRequest) { r.ShootType = "" }, "all fields are required"},
		{"bad captain id", func(r *services.CreateBookingRequest) { r.CaptainID = "abc" }, "invalid captain id"},
		{"bad user id", func(r *services.CreateBookingRequest) { r.UserID = "abc" }, "invalid user id"},
		{"unknown shoot type", func(r *services.CreateBookingRequest) { r.ShootType = "Underwater" }, "invalid shoot type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newBookingService(t)
			req := valid
			tt.mutate(&req)

			b, err := service.CreateBooking(context.Background(), req)

			assert.Nil(t, b)
			assert.True(t, domain.IsKind(err, domain.KindValidation))
			assert.Equal(t, tt.msg, domain.MessageOf(err))
		})
	}
}

func TestCreateBooking_Fail_RepoError(t *testing.T) {
	service, repo, _ := newBookingService(t)

	repo.On("CreateBooking", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := service.CreateBooking(context.Background(), services.CreateBookingRequest{
		CaptainID: uuid.NewString(),
		UserID:    uuid.NewString(),
		ShootType: string(domain.ReelMaking),
		Location:  "Pune",
	})

	assert.Equal(t, domain.KindDependency, domain.KindOf(err))
	assert.Equal(t, "failed to create booking", domain.MessageOf(err))
}

func TestCreateBooking_NotifierFailureIsSwallowed(t *testing.T) {
	service, repo, notifier := newBookingService(t)

	repo.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)
	notifier.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("relay down"))

	b, err := service.CreateBooking(context.Background(), services.CreateBookingRequest{
		CaptainID: uuid.NewString(),
		UserID:    uuid.NewString(),
		ShootType: string(domain.ProductShoot),
		Location:  "Delhi",
	})

	assert.NoError(t, err)
	assert.NotNil(t, b)
}

func TestResolveBooking_Success(t *testing.T) {
	service, repo, notifier := newBookingService(t)
	captainID, userID := uuid.New(), uuid.New()
	current := pendingBooking(captainID, userID)

	accepted := *current
	accepted.Status = domain.BookingAccepted

	repo.On("GetByID", mock.Anything, current.ID).Return(current, nil)
	repo.On("ResolveIfPending", mock.Anything, current.ID, domain.BookingAccepted).Return(&accepted, nil)
	notifier.On("Publish", mock.Anything, domain.UserRoom(userID), mock.MatchedBy(func(e domain.Event) bool {
		n, ok := e.(domain.UserNotification)
		return ok && n.Message == "Your booking for Wedding Photography was accepted by the captain."
	})).Return(nil).Once()
	notifier.On("Publish", mock.Anything, domain.CaptainRoom(captainID), mock.MatchedBy(func(e domain.Event) bool {
		n, ok := e.(domain.CaptainNotification)
		return ok && n.Status == domain.BookingAccepted
	})).Return(nil).Once()

	b, err := service.ResolveBooking(context.Background(), current.ID, captainID, domain.BookingAccepted)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, b.Status)
	notifier.AssertNumberOfCalls(t, "Publish", 2)
}

func TestResolveBooking_Fail_InvalidStatus(t *testing.T) {
	service, _, _ := newBookingService(t)

	for _, status := range []domain.BookingStatus{domain.BookingPending, "Maybe", ""} {
		_, err := service.ResolveBooking(context.Background(), uuid.New(), uuid.New(), status)

		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	}
}

func TestResolveBooking_Fail_NotFound(t *testing.T) {
	service, repo, _ := newBookingService(t)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrBookingNotFound)

	_, err := service.ResolveBooking(context.Background(), id, uuid.New(), domain.BookingDeclined)

	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestResolveBooking_Fail_WrongCaptain(t *testing.T) {
	service, repo, notifier := newBookingService(t)
	current := pendingBooking(uuid.New(), uuid.New())

	repo.On("GetByID", mock.Anything, current.ID).Return(current, nil)

	_, err := service.ResolveBooking(context.Background(), current.ID, uuid.New(), domain.BookingAccepted)

	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	repo.AssertNotCalled(t, "ResolveIfPending", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveBooking_Fail_AlreadyResolved(t *testing.T) {
	service, repo, notifier := newBookingService(t)
	captainID := uuid.New()
	current := pendingBooking(captainID, uuid.New())
	current.Status = domain.BookingAccepted

	repo.On("GetByID", mock.Anything, current.ID).Return(current, nil)

	_, err := service.ResolveBooking(context.Background(), current.ID, captainID, domain.BookingDeclined)

	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveBooking_Fail_LostRace(t *testing.T) {
	service, repo, notifier := newBookingService(t)
	captainID := uuid.New()
	current := pendingBooking(captainID, uuid.New())

	repo.On("GetByID", mock.Anything, current.ID).Return(current, nil)
	repo.On("ResolveIfPending", mock.Anything, current.ID, domain.BookingDeclined).Return(nil, domain.ErrAlreadyResolved)

	_, err := service.ResolveBooking(context.Background(), current.ID, captainID, domain.BookingDeclined)

	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveBooking_NotifierFailureIsSwallowed(t *testing.T) {
	service, repo, notifier := newBookingService(t)
	captainID := uuid.New()
	current := pendingBooking(captainID, uuid.New())
	declined := *current
	declined.Status = domain.BookingDeclined

	repo.On("GetByID", mock.Anything, current.ID).Return(current, nil)
	repo.On("ResolveIfPending", mock.Anything, current.ID, domain.BookingDeclined).Return(&declined, nil)
	notifier.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no subscribers"))

	b, err := service.ResolveBooking(context.Background(), current.ID, captainID, domain.BookingDeclined)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingDeclined, b.Status)
	notifier.AssertNumberOfCalls(t, "Publish", 2)
}

func TestAttachRating_Success(t *testing.T) {
	service, repo, _ := newBookingService(t)
	current := pendingBooking(uuid.New(), uuid.New())
	rating, review := 3, "Great!"
	rated := *current
	rated.Rating = &rating
	rated.Review = &review

	repo.On("GetByID", mock.Anything, current.ID).Return(current, nil)
	repo.On("RateIfUnrated", mock.Anything, current.ID, 3, "Great!").Return(&rated, nil)

	b, err := service.AttachRating(context.Background(), current.ID, 3, "  Great! ")

	require.NoError(t, err)
	require.NotNil(t, b.Rating)
	assert.Equal(t, 3, *b.Rating)
	assert.Equal(t, "Great!", *b.Review)
}

func TestAttachRating_Fail_OutOfRange(t *testing.T) {
	service, _, _ := newBookingService(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.AttachRating(context.Background(), uuid.New(), rating, "")

		assert.Equal(t, domain.KindValidation, domain.KindOf(err), "rating %d", rating)
	}
}

func TestAttachRating_Fail_AlreadyRated(t *testing.T) {
	service, repo, _ := newBookingService(t)
	current := pendingBooking(uuid.New(), uuid.New())
	existing := 5
	current.Rating = &existing

	repo.On("GetByID", mock.Anything, current.ID).Return(current, nil)

	_, err := service.AttachRating(context.Background(), current.ID, 2, "changed my mind")

	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
	repo.AssertNotCalled(t, "RateIfUnrated", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachRating_Fail_NotFound(t *testing.T) {
	service, repo, _ := newBookingService(t)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrBookingNotFound)

	_, err := service.AttachRating(context.Background(), id, 4, "")

	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestListForCaptain(t *testing.T) {
	service, repo, _ := newBookingService(t)
	captainID := uuid.New()
	rows := []domain.CaptainBooking{{Booking: *pendingBooking(captainID, uuid.New())}}

	repo.On("ListForCaptain", mock.Anything, captainID).Return(rows, nil)

	got, err := service.ListForCaptain(context.Background(), captainID)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListForUser_Fail_RepoError(t *testing.T) {
	service, repo, _ := newBookingService(t)
	userID := uuid.New()

	repo.On("ListForUser", mock.Anything, userID).Return(nil, errors.New("timeout"))

	_, err := service.ListForUser(context.Background(), userID)

	assert.Equal(t, domain.KindDependency, domain.KindOf(err))
	assert.Equal(t, "error fetching user bookings", domain.MessageOf(err))
}
