package bookingRepo

import (
	"context"
	"errors"

	"brightsite/models"
)

// ErrConflict is returned by CreateExclusive when the conflict predicate
// rejects the insert inside the transaction.
var ErrConflict = errors.New("booking conflicts with an existing live booking")

// BookingRepository persists bookings and provides the overlap-safe critical
// section the engine needs for check-then-insert.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Booking, error)
	// UpdateFromStatus replaces the stored booking only while its status
	// still equals fromStatus, so two concurrent transitions cannot both
	// win from the same snapshot. It reports whether the replace matched.
	UpdateFromStatus(ctx context.Context, booking *models.Booking, fromStatus string) (bool, error)
	List(ctx context.Context, status string) ([]models.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)

	// ListLive returns pending and confirmed bookings for one resource on one
	// calendar date (string-equal date match).
	ListLive(ctx context.Context, resourceID, date string) ([]models.Booking, error)

	// CreateExclusive inserts the booking inside a transaction, after
	// re-reading the live bookings for the same resource and date and passing
	// them to conflicts. If conflicts returns true nothing is persisted and
	// ErrConflict is returned.
	CreateExclusive(ctx context.Context, booking *models.Booking, conflicts func(existing []models.Booking) bool) error
}
