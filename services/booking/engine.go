package booking

import (
	"context"
	"time"

	availabilityRepo "brightsite/database/repository/availability"
	bookingRepo "brightsite/database/repository/booking"
	"brightsite/models"
	"brightsite/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultBookingEngine is the production scheduling engine.
type DefaultBookingEngine struct {
	AvailabilityRepo availabilityRepo.AvailabilityRepository
	BookingRepo      bookingRepo.BookingRepository
	Reminders        ReminderScheduler // optional

	// Serializes check-then-insert per (resourceID, date). The Mongo
	// transaction in the repo is the cross-instance backstop.
	slotLocks *utils.KeyedMutex
}

// NewDefaultBookingEngine wires the engine with its repositories.
func NewDefaultBookingEngine(availability availabilityRepo.AvailabilityRepository, bookings bookingRepo.BookingRepository, reminders ReminderScheduler) *DefaultBookingEngine {
	return &DefaultBookingEngine{
		AvailabilityRepo: availability,
		BookingRepo:      bookings,
		Reminders:        reminders,
		slotLocks:        utils.NewKeyedMutex(),
	}
}

// --- Window administration ---

func validateWindow(window *models.AvailabilityWindow) error {
	if window.ResourceID == "" {
		return NewValidationError("resourceId", "is required")
	}
	if window.IsRecurring {
		if window.DayOfWeek == nil {
			return NewValidationError("dayOfWeek", "is required for recurring windows")
		}
		if *window.DayOfWeek < 0 || *window.DayOfWeek > 6 {
			return NewValidationError("dayOfWeek", "must be in 0..6")
		}
		if window.SpecificDate != "" {
			return NewValidationError("specificDate", "must be empty for recurring windows")
		}
	} else {
		if window.SpecificDate == "" {
			return NewValidationError("specificDate", "is required for one-off windows")
		}
		if _, err := ParseDate(window.SpecificDate); err != nil {
			return NewValidationError("specificDate", "expected YYYY-MM-DD")
		}
		if window.DayOfWeek != nil {
			return NewValidationError("dayOfWeek", "must be empty for one-off windows")
		}
	}

	start, err := MinutesOfDay(window.StartTime)
	if err != nil {
		return NewValidationError("startTime", "expected HH:MM")
	}
	end, err := MinutesOfDay(window.EndTime)
	if err != nil {
		return NewValidationError("endTime", "expected HH:MM")
	}
	if end <= start {
		return NewValidationError("endTime", "must be after startTime")
	}
	if window.SlotDuration < 1 || window.SlotDuration > 480 {
		return NewValidationError("slotDuration", "must be in 1..480 minutes")
	}
	if end-start < window.SlotDuration {
		return NewValidationError("slotDuration", "does not fit inside the window")
	}
	return nil
}

func (e *DefaultBookingEngine) CreateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	if err := validateWindow(&window); err != nil {
		return nil, err
	}
	window.ID = uuid.New().String()
	window.CreatedAt = time.Now()
	window.UpdatedAt = window.CreatedAt

	if err := e.AvailabilityRepo.Create(ctx, &window); err != nil {
		return nil, err
	}
	return &window, nil
}

func (e *DefaultBookingEngine) UpdateWindow(ctx context.Context, window models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	if window.ID == "" {
		return nil, NewValidationError("id", "is required")
	}
	if err := validateWindow(&window); err != nil {
		return nil, err
	}

	existing, err := e.AvailabilityRepo.GetByID(ctx, window.ID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{Entity: "availability window", ID: window.ID}
		}
		return nil, err
	}
	window.CreatedAt = existing.CreatedAt
	window.UpdatedAt = time.Now()

	if err := e.AvailabilityRepo.Update(ctx, &window); err != nil {
		return nil, err
	}
	return &window, nil
}

func (e *DefaultBookingEngine) DeleteWindow(ctx context.Context, id string) error {
	if err := e.AvailabilityRepo.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return &NotFoundError{Entity: "availability window", ID: id}
		}
		return err
	}
	return nil
}

func (e *DefaultBookingEngine) ListWindows(ctx context.Context, resourceID string) ([]models.AvailabilityWindow, error) {
	return e.AvailabilityRepo.ListByResource(ctx, resourceID)
}

// --- Booking creation ---

func validateBookingInput(input *models.BookingInput) (startMin, endMin int, err error) {
	if input.ResourceID == "" {
		return 0, 0, NewValidationError("resourceId", "is required")
	}
	if input.Name == "" {
		return 0, 0, NewValidationError("name", "is required")
	}
	if !emailPattern.MatchString(input.Email) {
		return 0, 0, NewValidationError("email", "is not a valid email address")
	}

	day, parseErr := ParseDate(input.Date)
	if parseErr != nil {
		return 0, 0, NewValidationError("date", "expected YYYY-MM-DD")
	}
	today := time.Now().Format(DateLayout)
	if day.Format(DateLayout) < today {
		return 0, 0, NewValidationError("date", "must not be in the past")
	}

	startMin, startErr := MinutesOfDay(input.StartTime)
	if startErr != nil {
		return 0, 0, NewValidationError("startTime", "expected HH:MM")
	}
	endMin, endErr := MinutesOfDay(input.EndTime)
	if endErr != nil {
		return 0, 0, NewValidationError("endTime", "expected HH:MM")
	}
	if endMin <= startMin {
		return 0, 0, NewValidationError("endTime", "must be after startTime")
	}
	return startMin, endMin, nil
}

// CreateBooking validates the input and persists the booking through the
// overlap-safe critical section. The check and the insert are serialized per
// (resourceID, date), so two concurrent requests for the same slot cannot
// both succeed.
func (e *DefaultBookingEngine) CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	startMin, endMin, err := validateBookingInput(&input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:          uuid.New().String(),
		ResourceID:  input.ResourceID,
		UserID:      input.UserID,
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Notes:       input.Notes,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      models.BookingStatusPending,
		PaymentID:   input.PaymentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	lockKey := input.ResourceID + "|" + input.Date
	e.slotLocks.Lock(lockKey)
	defer e.slotLocks.Unlock(lockKey)

	err = e.BookingRepo.CreateExclusive(ctx, booking, func(existing []models.Booking) bool {
		for _, b := range existing {
			bStart, err1 := MinutesOfDay(b.StartTime)
			bEnd, err2 := MinutesOfDay(b.EndTime)
			if err1 != nil || err2 != nil {
				continue
			}
			if Overlaps(startMin, endMin, bStart, bEnd) {
				return true
			}
		}
		return false
	})
	if err == bookingRepo.ErrConflict {
		return nil, &OverlapError{ResourceID: input.ResourceID, Date: input.Date}
	}
	if err != nil {
		return nil, err
	}

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("resourceID", booking.ResourceID),
		zap.String("date", booking.Date),
		zap.String("interval", booking.StartTime+"-"+booking.EndTime))
	return booking, nil
}

func (e *DefaultBookingEngine) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := e.BookingRepo.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &NotFoundError{Entity: "booking", ID: id}
		}
		return nil, err
	}
	return booking, nil
}

func (e *DefaultBookingEngine) ListBookings(ctx context.Context, status string) ([]models.Booking, error) {
	return e.BookingRepo.List(ctx, status)
}

func (e *DefaultBookingEngine) BookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	if !emailPattern.MatchString(email) {
		return nil, NewValidationError("email", "is not a valid email address")
	}
	return e.BookingRepo.ListByEmail(ctx, email)
}
