package booking

import (
	"context"

	"brightsite/models"
	"brightsite/utils"

	"go.uber.org/zap"
)

// BuildWindowSlots generates the slot sequence one window defines: starting
// at StartTime, stepping by SlotDuration, stopping once a slot would spill
// past EndTime. Trailing partial time is dropped, never rounded into a short
// slot. Windows with malformed times yield no slots.
func BuildWindowSlots(window models.AvailabilityWindow) []models.Slot {
	start, err := MinutesOfDay(window.StartTime)
	if err != nil {
		return nil
	}
	end, err := MinutesOfDay(window.EndTime)
	if err != nil {
		return nil
	}
	if window.SlotDuration <= 0 || end <= start {
		return nil
	}

	var slots []models.Slot
	for cur := start; cur+window.SlotDuration <= end; cur += window.SlotDuration {
		slots = append(slots, models.Slot{
			Start: FormatMinutes(cur),
			End:   FormatMinutes(cur + window.SlotDuration),
		})
	}
	return slots
}

// ListSlots resolves the active windows applicable to the date (recurring
// windows matching its weekday plus one-off windows pinned to it) and
// generates each window's slots in order.
func (e *DefaultBookingEngine) ListSlots(ctx context.Context, resourceID, date string) ([]models.Slot, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, NewValidationError("date", "expected YYYY-MM-DD")
	}

	windows, err := e.AvailabilityRepo.ListActiveForDate(ctx, resourceID, int(day.Weekday()), date)
	if err != nil {
		return nil, err
	}

	var slots []models.Slot
	for _, window := range windows {
		slots = append(slots, BuildWindowSlots(window)...)
	}
	return slots, nil
}

// AvailableSlots joins ListSlots against the live bookings for the same
// resource and date, rejecting any slot that overlaps one.
func (e *DefaultBookingEngine) AvailableSlots(ctx context.Context, resourceID, date string) ([]models.Slot, error) {
	logger := utils.GetLogger()

	slots, err := e.ListSlots(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return slots, nil
	}

	live, err := e.BookingRepo.ListLive(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}

	available := make([]models.Slot, 0, len(slots))
	for _, slot := range slots {
		start, err := MinutesOfDay(slot.Start)
		if err != nil {
			continue
		}
		end, err := MinutesOfDay(slot.End)
		if err != nil {
			continue
		}

		free := true
		for _, b := range live {
			bStart, err1 := MinutesOfDay(b.StartTime)
			bEnd, err2 := MinutesOfDay(b.EndTime)
			if err1 != nil || err2 != nil {
				logger.Warn("booking with malformed times in store",
					zap.String("bookingID", b.ID))
				continue
			}
			if Overlaps(start, end, bStart, bEnd) {
				free = false
				break
			}
		}
		if free {
			available = append(available, slot)
		}
	}
	return available, nil
}
