package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brightsite/config"
	"brightsite/models"
	"brightsite/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds a reminder task scheduled for fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// AsynqReminderScheduler queues booking reminders on Redis. It implements
// the booking engine's ReminderScheduler port.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler connects a task client to the reminder queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{client: client}
}

// Close releases the underlying Redis connection.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}

// ScheduleBookingReminder enqueues a reminder to fire the configured lead
// time before the booking starts. A booking already inside the lead window
// is skipped rather than reminded late.
func (s *AsynqReminderScheduler) ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error {
	logger := utils.GetLogger()

	start, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.StartTime, time.Local)
	if err != nil {
		return fmt.Errorf("failed to parse booking start: %w", err)
	}

	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	fireAt := start.Add(-lead)
	if !fireAt.After(time.Now()) {
		logger.Info("booking starts within the reminder lead window, skipping reminder",
			zap.String("bookingID", booking.ID))
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID:  booking.ID,
		ResourceID: booking.ResourceID,
		Name:       booking.Name,
		Email:      booking.Email,
		Date:       booking.Date,
		StartTime:  booking.StartTime,
	}, fireAt)
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}

	logger.Info("booking reminder scheduled",
		zap.String("bookingID", booking.ID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
