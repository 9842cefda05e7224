package cron

import (
	"context"
	"encoding/json"
	"time"

	"brightsite/config"
	bookingRepo "brightsite/database/repository/booking"
	"brightsite/models"
	"brightsite/services/tasks"
	"brightsite/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ReminderDelivery sends one due reminder to the customer. The default
// delivery just logs it; an email or SMS sender can be plugged in instead.
type ReminderDelivery func(ctx context.Context, payload models.ReminderPayload) error

// LogReminderDelivery writes the reminder to the application log.
func LogReminderDelivery(ctx context.Context, payload models.ReminderPayload) error {
	utils.GetLogger().Info("booking reminder due",
		zap.String("bookingID", payload.BookingID),
		zap.String("email", payload.Email),
		zap.String("date", payload.Date),
		zap.String("startTime", payload.StartTime))
	return nil
}

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(bookings bookingRepo.BookingRepository, deliver ReminderDelivery) {
	logger := utils.GetLogger()
	if deliver == nil {
		deliver = LogReminderDelivery
	}

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(bookings, deliver))

	go monitorRedisConnection()

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted restart attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleReminderTask delivers the reminder if the booking is still on the
// books at fire time. Canceled or ended bookings are skipped quietly.
func handleReminderTask(bookings bookingRepo.BookingRepository, deliver ReminderDelivery) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var payload models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		booking, err := bookings.GetByID(ctx, payload.BookingID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				logger.Warn("reminder fired for missing booking", zap.String("bookingID", payload.BookingID))
				return nil
			}
			return err
		}
		if booking.Status != models.BookingStatusConfirmed {
			logger.Info("skipping reminder, booking no longer confirmed",
				zap.String("bookingID", booking.ID), zap.String("status", booking.Status))
			return nil
		}

		if err := deliver(ctx, payload); err != nil {
			logger.Error("failed to deliver reminder", zap.String("bookingID", booking.ID), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to surface failures early.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("reminder queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
