package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/captainbook/internal/core/domain"
	"github.com/srgjo27/captainbook/internal/core/ports/mocks"
	"github.com/srgjo27/captainbook/internal/core/services"
)

func TestFindAvailable_Success(t *testing.T) {
	repo := mocks.NewCaptainRepository(t)
	service := services.NewAvailabilityService(repo)

	found := []domain.AvailableCaptain{{
		ID:       uuid.New(),
		FullName: domain.FullName{FirstName: "Asha"},
		Skills:   []domain.ShootType{domain.WeddingPhotography},
		Location: domain.Location{City: "Goa", Country: "India"},
	}}
	repo.On("FindAvailable", mock.Anything, "goa", "wedding").Return(found, nil)

	got, err := service.FindAvailable(context.Background(), "  goa ", "wedding")

	require.NoError(t, err)
	assert.Equal(t, found, got)
}

func TestFindAvailable_EmptyIsNotNil(t *testing.T) {
	repo := mocks.NewCaptainRepository(t)
	service := services.NewAvailabilityService(repo)

	repo.On("FindAvailable", mock.Anything, "Pune", "Reel").Return(nil, nil)

	got, err := service.FindAvailable(context.Background(), "Pune", "Reel")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindAvailable_Fail_MissingParams(t *testing.T) {
	service := services.NewAvailabilityService(mocks.NewCaptainRepository(t))

	for _, tc := range [][2]string{{"", "wedding"}, {"goa", ""}, {" ", " "}} {
		_, err := service.FindAvailable(context.Background(), tc[0], tc[1])

		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		assert.Equal(t, "provide both location and skill", domain.MessageOf(err))
	}
}

func TestFindAvailable_Fail_RepoError(t *testing.T) {
	repo := mocks.NewCaptainRepository(t)
	service := services.NewAvailabilityService(repo)

	repo.On("FindAvailable", mock.Anything, "Goa", "Fashion").Return(nil, errors.New("connection reset"))

	_, err := service.FindAvailable(context.Background(), "Goa", "Fashion")

	assert.Equal(t, domain.KindDependency, domain.KindOf(err))
	assert.Equal(t, "failed to fetch captains", domain.MessageOf(err))
}
