package booking

import (
	"context"

	"brightsite/models"
)

// Booking transition actions.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
	ActionEnd     = "end"
)

// BookingEngine computes bookable slots from availability windows and owns
// the no-overlap invariant for live bookings.
type BookingEngine interface {
	// Window administration.
	CreateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error)
	UpdateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error)
	DeleteWindow(ctx context.Context, id string) error
	ListWindows(ctx context.Context, resourceID string) ([]models.AvailabilityWindow, error)

	// ListSlots generates every slot the windows define for the date, without
	// subtracting bookings.
	ListSlots(ctx context.Context, resourceID, date string) ([]models.Slot, error)

	// AvailableSlots is ListSlots minus slots overlapping a live booking.
	AvailableSlots(ctx context.Context, resourceID, date string) ([]models.Slot, error)

	CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, status string) ([]models.Booking, error)

	// BookingsByEmail is the customer-facing lookup: every booking made with
	// the given email, newest date first.
	BookingsByEmail(ctx context.Context, email string) ([]models.Booking, error)

	// Transition applies confirm, cancel or end. Cancel accepts an optional
	// reason. Re-applying the booking's current status is a no-op success.
	Transition(ctx context.Context, id, action, reason string) (*models.Booking, error)
}

// ReminderScheduler schedules a reminder ahead of a confirmed booking's
// start time. The asynq-backed implementation lives in services/tasks.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error
}
