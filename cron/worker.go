package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pawcare/config"
	bookingRepo "pawcare/database/repository/booking"
	"pawcare/models"
	"pawcare/services/notification"
	"pawcare/services/tasks"
	"pawcare/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker starts the reminder queue consumer in the background. The returned
// server is shut down by the caller.
func InitReminderWorker(ctx context.Context, bookings bookingRepo.BookingRepository, notifier notification.Notifier) *asynq.Server {
	logger := utils.GetLogger()
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
	mux.HandleFunc(tasks.TypeSendReminder, HandleReminderTask(bookings, notifier, logger))

	go monitorRedisConnection(ctx, logger)

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Error("reminder worker gave up; reminders will not be delivered")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
				continue
			}
			return
		}
	}()
	return srv
}

// HandleReminderTask sends the reminder unless the booking has since been finalized,
// deleted, or moved to a different slot.
func HandleReminderTask(bookings bookingRepo.BookingRepository, notifier notification.Notifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		b, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			if errors.Is(err, models.ErrBookingNotFound) {
				logger.Info("reminder dropped, booking deleted", zap.String("bookingId", p.BookingID))
				return nil
			}
			return err
		}
		if b.Status.IsTerminal() || b.Status == models.StatusFacingError {
			logger.Info("reminder dropped, booking not active",
				zap.String("bookingId", b.ID), zap.String("status", b.Status.String()))
			return nil
		}
		if date, clock := b.Effective(); date != p.Date || clock != p.Time {
			logger.Info("reminder dropped, booking moved",
				zap.String("bookingId", b.ID), zap.String("date", date), zap.String("time", clock))
			return nil
		}

		if err := notifier.SendReminder(ctx, b, p); err != nil {
			logger.Warn("failed to send reminder", zap.String("bookingId", b.ID), zap.Error(err))
			return err
		}
		logger.Info("reminder sent", zap.String("bookingId", b.ID))
		return nil
	}
}

// monitorRedisConnection pings the queue database periodically to surface outages.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("reminder queue redis unreachable", zap.Error(err))
			}
		}
	}
}
