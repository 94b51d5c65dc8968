package services

import (
	"context"
	"strings"

	"github.com/srgjo27/captainbook/internal/core/domain"
	"github.com/srgjo27/captainbook/internal/core/ports"
)

type AvailabilityService struct {
	captainRepo ports.CaptainRepository
}

func NewAvailabilityService(captainRepo ports.CaptainRepository) *AvailabilityService {
	return &AvailabilityService{captainRepo: captainRepo}
}

// FindAvailable returns active captains whose city contains location and
// who list a skill containing skill, both compared case-insensitively.
func (s *AvailabilityService) FindAvailable(ctx context.Context, location, skill string) (out []domain.AvailableCaptain, err error) {
	ctx, span := tracer.Start(ctx, "AvailabilityService.FindAvailable")
	defer func() { endSpan(span, err) }()

	location = strings.TrimSpace(location)
	skill = strings.TrimSpace(skill)
	if location == "" || skill == "" {
		return nil, domain.NewValidationError("provide both location and skill")
	}

	out, err = s.captainRepo.FindAvailable(ctx, location, skill)
	if err != nil {
		return nil, asDependency("failed to fetch captains", err)
	}
	if out == nil {
		out = []domain.AvailableCaptain{}
	}
	return out, nil
}
