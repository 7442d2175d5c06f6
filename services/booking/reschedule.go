package booking

import (
	"context"
	"errors"
	"fmt"

	"pawcare/models"
	"pawcare/services/slots"

	"go.uber.org/zap"
)

// Reschedule moves a booking to a new slot. The booking itself never counts against the
// capacity of the slot it is moving to, so moving onto its current slot always passes the
// capacity check.
func (s *DefaultBookingService) Reschedule(ctx context.Context, in RescheduleInput) (*models.Booking, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		b, err := s.rescheduleOnce(ctx, in)
		if !errors.Is(err, models.ErrStaleBooking) {
			return b, err
		}
		lastErr = err
		s.Logger.Debug("reschedule lost a concurrent update, retrying",
			zap.String("bookingId", in.BookingID), zap.Int("attempt", attempt+1))
	}
	return nil, lastErr
}

func (s *DefaultBookingService) rescheduleOnce(ctx context.Context, in RescheduleInput) (*models.Booking, error) {
	b, err := s.load(ctx, in.BookingID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if in.Category != "" && b.Category != in.Category {
		return nil, models.NewSlotError(models.CodeNotFound, fmt.Sprintf("booking %s not found", in.BookingID))
	}
	if b.Status.IsTerminal() {
		return nil, models.NewSlotError(models.CodeAlreadyFinalized,
			fmt.Sprintf("booking is %s and can no longer be rescheduled", b.Status))
	}

	cfg, err := s.Settings.Get(ctx, b.Category)
	if err != nil {
		return nil, err
	}
	clinic, err := s.clinicFor(ctx, b.BookingType, b.ClinicID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListOnDate(ctx, b.Category, in.Date, b.ClinicID, slots.ExcludedStatuses(false))
	if err != nil {
		return nil, err
	}
	req := slots.Request{Date: in.Date, Time: in.Time, Clinic: clinic, ExcludeBookingID: b.ID}
	if err := s.Validator.Validate(cfg.Policy, req, existing); err != nil {
		return nil, err
	}

	prev := b.Status
	oldKey := reservationKey(b)
	b.RescheduledDate = in.Date
	b.RescheduledTime = canonicalClock(in.Time)
	b.SyncEffective()
	newKey := reservationKey(b)

	actor := in.CustomerID
	if actor == "" {
		actor = "admin"
	}
	b.Transition(models.StatusRescheduled, actor, s.now().UTC())

	if err := s.reserve(ctx, b, cfg.Policy.PerGapLimitBooking); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateSchedule(ctx, b, prev); err != nil {
		if newKey != oldKey {
			s.release(ctx, b.ID, oldKey)
		}
		return nil, err
	}
	s.release(ctx, b.ID, newKey)

	s.Logger.Info("booking rescheduled",
		zap.String("bookingId", b.ID),
		zap.String("date", in.Date),
		zap.String("time", b.RescheduledTime))

	s.notifyReschedule(b)
	s.scheduleReminder(b)
	return b, nil
}
