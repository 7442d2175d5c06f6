package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pawcare/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderTaskID is unique per booking and slot, so moving a booking yields a new task
// while re-enqueueing the same slot is a no-op.
func ReminderTaskID(bookingID, date, clock string) string {
	return fmt.Sprintf("reminder:%s:%sT%s", bookingID, date, clock)
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(ReminderTaskID(payload.BookingID, payload.Date, payload.Time)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ReminderScheduler queues a reminder ahead of a booking's effective slot.
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking *models.Booking, slotStart time.Time) error
}

// Enqueuer is implemented by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler enqueues reminder tasks lead before the slot.
type AsynqReminderScheduler struct {
	client Enqueuer
	lead   time.Duration
	now    func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer, lead time.Duration, now func() time.Time) *AsynqReminderScheduler {
	if now == nil {
		now = time.Now
	}
	return &AsynqReminderScheduler{client: client, lead: lead, now: now}
}

// Schedule is a no-op once the reminder time has passed.
func (s *AsynqReminderScheduler) Schedule(ctx context.Context, booking *models.Booking, slotStart time.Time) error {
	fireAt := slotStart.Add(-s.lead)
	if !fireAt.After(s.now()) {
		return nil
	}

	date, clock := booking.Effective()
	payload := models.ReminderPayload{
		BookingID: booking.ID,
		Date:      date,
		Time:      clock,
		Title:     "Appointment reminder",
		Body:      fmt.Sprintf("Your %s appointment is at %s on %s.", booking.Category, clock, date),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", booking.ID, err)
	}
	return nil
}
