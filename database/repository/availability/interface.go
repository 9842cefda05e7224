package availabilityRepo

import (
	"context"

	"brightsite/models"
)

// AvailabilityRepository manages admin-owned availability windows.
type AvailabilityRepository interface {
	Create(ctx context.Context, window *models.AvailabilityWindow) error
	Update(ctx context.Context, window *models.AvailabilityWindow) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.AvailabilityWindow, error)
	ListByResource(ctx context.Context, resourceID string) ([]models.AvailabilityWindow, error)

	// ListActiveForDate returns the active windows applicable to one calendar
	// day: recurring windows matching the weekday plus one-off windows whose
	// specific date equals the given date.
	ListActiveForDate(ctx context.Context, resourceID string, weekday int, date string) ([]models.AvailabilityWindow, error)
}
