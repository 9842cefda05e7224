package booking

import (
	"context"
	"time"

	"brightsite/models"
	"brightsite/utils"

	"go.uber.org/zap"
)

// actionTargets maps a transition action to the status it enters.
var actionTargets = map[string]string{
	ActionConfirm: models.BookingStatusConfirmed,
	ActionCancel:  models.BookingStatusCanceled,
	ActionEnd:     models.BookingStatusEnded,
}

// transitionTable enumerates the allowed status changes. Terminal states
// accept nothing.
var transitionTable = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCanceled},
	models.BookingStatusConfirmed: {models.BookingStatusEnded, models.BookingStatusCanceled},
	models.BookingStatusEnded:     {},
	models.BookingStatusCanceled:  {},
}

func canTransition(from, to string) bool {
	for _, allowed := range transitionTable[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ApplyTransition mutates the booking value for the given action without
// touching the store, so transition logic stays testable in isolation.
// Re-entering the current status is a no-op; timestamps are set only the
// first time their status is entered.
func ApplyTransition(booking *models.Booking, action, reason string, now time.Time) error {
	target, ok := actionTargets[action]
	if !ok {
		return NewValidationError("action", "must be confirm, cancel or end")
	}

	if booking.Status == target {
		return nil
	}
	if !canTransition(booking.Status, target) {
		return &TransitionError{From: booking.Status, Action: action}
	}

	booking.Status = target
	booking.UpdatedAt = now
	switch target {
	case models.BookingStatusConfirmed:
		if booking.ConfirmedAt == nil {
			booking.ConfirmedAt = &now
		}
	case models.BookingStatusCanceled:
		if booking.CanceledAt == nil {
			booking.CanceledAt = &now
		}
		if reason != "" {
			booking.CancelReason = reason
		}
	case models.BookingStatusEnded:
		if booking.EndedAt == nil {
			booking.EndedAt = &now
		}
	}
	return nil
}

// Transition loads the booking, applies the action and persists the result.
// Confirmation schedules a reminder when a scheduler is wired; reminder
// failures are logged, never surfaced, since the booking itself succeeded.
func (e *DefaultBookingEngine) Transition(ctx context.Context, id, action, reason string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := e.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := booking.Status
	if err := ApplyTransition(booking, action, reason, time.Now()); err != nil {
		return nil, err
	}
	if booking.Status == prev {
		return booking, nil
	}

	replaced, err := e.BookingRepo.UpdateFromStatus(ctx, booking, prev)
	if err != nil {
		return nil, err
	}
	if !replaced {
		// A concurrent transition moved the booking off its snapshot status.
		current, err := e.GetBooking(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status == booking.Status {
			return current, nil
		}
		return nil, &TransitionError{From: current.Status, Action: action}
	}

	logger.Info("booking transitioned",
		zap.String("bookingID", booking.ID),
		zap.String("from", prev),
		zap.String("to", booking.Status))

	if booking.Status == models.BookingStatusConfirmed && e.Reminders != nil {
		if err := e.Reminders.ScheduleBookingReminder(ctx, booking); err != nil {
			logger.Error("failed to schedule booking reminder",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}
