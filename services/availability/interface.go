package availability

import (
	"context"
	"time"

	intervalRepo "coachly/database/repository/interval"
	"coachly/models"
)

// AvailabilityService manages a coach's published availability slots.
type AvailabilityService interface {
	PublishSlot(ctx context.Context, coachID string, req models.CreateAvailabilityRequest) (*models.Interval, error)
	ListDay(ctx context.Context, coachID string, day time.Time) ([]models.Interval, error)
	RemoveSlot(ctx context.Context, coachID, slotID string) error
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo intervalRepo.IntervalRepository
}
