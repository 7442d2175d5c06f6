package booking

import (
	"context"

	"pawcare/models"

	"go.uber.org/zap"
)

// background runs fn detached from the request. Its error is logged and dropped; the
// booking change it follows has already been persisted.
func (s *DefaultBookingService) background(what string, b models.Booking, fn func(ctx context.Context, b *models.Booking) error) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				s.Logger.Error("panic in booking side effect", zap.String("task", what), zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := fn(ctx, &b); err != nil {
			s.Logger.Warn("booking side effect failed",
				zap.String("task", what),
				zap.String("bookingId", b.ID),
				zap.Error(err))
		}
	}()
}

func (s *DefaultBookingService) notifyReschedule(b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	s.background("notify_reschedule", *b, s.Notifier.NotifyReschedule)
}

func (s *DefaultBookingService) notifyStatus(b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	s.background("notify_status", *b, s.Notifier.NotifyStatus)
}

func (s *DefaultBookingService) scheduleReminder(b *models.Booking) {
	if s.Reminders == nil {
		return
	}
	start, err := s.slotStart(b)
	if err != nil {
		s.Logger.Warn("cannot schedule reminder", zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	s.background("schedule_reminder", *b, func(ctx context.Context, b *models.Booking) error {
		return s.Reminders.Schedule(ctx, b, start)
	})
}
