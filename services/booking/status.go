package booking

import (
	"context"
	"errors"
	"fmt"

	"pawcare/models"
	"pawcare/services/payment"

	"go.uber.org/zap"
)

// UpdateStatus applies an admin status change through the transition table. Moving a
// booking to a new slot goes through Reschedule instead.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, to models.BookingStatus, actor string) (*models.Booking, error) {
	if to == models.StatusRescheduled {
		return nil, models.NewSlotError(models.CodeInvalidTransition, "use the reschedule endpoint to move a booking")
	}
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		b, err := s.transitionOnce(ctx, id, "", to, actor, nil)
		if !errors.Is(err, models.ErrStaleBooking) {
			return b, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// transitionOnce loads the booking, applies to, lets mutate adjust other fields, and
// stores the result guarded on the status it was read in.
func (s *DefaultBookingService) transitionOnce(ctx context.Context, id, customerID string, to models.BookingStatus, actor string, mutate func(b *models.Booking)) (*models.Booking, error) {
	b, err := s.load(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, models.NewSlotError(models.CodeAlreadyFinalized, fmt.Sprintf("booking is already %s", b.Status))
	}
	if b.Status != to && !b.Status.CanTransition(to) {
		return nil, models.NewSlotError(models.CodeInvalidTransition,
			fmt.Sprintf("cannot move booking from %s to %s", b.Status, to))
	}

	prev := b.Status
	if prev != to {
		b.Transition(to, actor, s.now().UTC())
	} else {
		b.UpdatedAt = s.now().UTC()
	}
	if mutate != nil {
		mutate(b)
	}
	if err := s.Repo.UpdateStatus(ctx, b, prev); err != nil {
		return nil, err
	}
	if prev == to {
		return b, nil
	}

	s.Logger.Info("booking status changed",
		zap.String("bookingId", b.ID),
		zap.String("from", prev.String()),
		zap.String("to", to.String()),
		zap.String("by", actor))
	s.afterTransition(ctx, b)
	return b, nil
}

func (s *DefaultBookingService) afterTransition(ctx context.Context, b *models.Booking) {
	switch b.Status {
	case models.StatusCancelled, models.StatusFacingError:
		s.release(ctx, b.ID, reservationKeyNone)
	case models.StatusConfirmed:
		s.reclaimSeat(ctx, b)
		s.scheduleReminder(b)
	}
	s.notifyStatus(b)
}

// reclaimSeat turns the seat held while the booking was unconfirmed into a permanent one,
// or re-takes it if the hold lapsed. A full slot at that point is logged for staff
// follow-up rather than undoing the confirmation.
func (s *DefaultBookingService) reclaimSeat(ctx context.Context, b *models.Booking) {
	if s.Reservations == nil {
		return
	}
	cfg, err := s.Settings.Get(ctx, b.Category)
	if err != nil {
		s.Logger.Warn("cannot reclaim seat", zap.String("bookingId", b.ID), zap.Error(err))
		return
	}
	if err := s.reserve(ctx, b, cfg.Policy.PerGapLimitBooking); err != nil {
		s.Logger.Warn("confirmed booking is over slot capacity", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

// ConfirmPayment checks the payment order with the gateway. A paid order confirms the
// booking; a failed one moves a Pending booking to Facing Error; an order still in flight
// only updates the payment status.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, id, orderID, customerID string) (*models.Booking, error) {
	if s.Payments == nil {
		return nil, fmt.Errorf("payments are not configured")
	}
	if orderID == "" {
		return nil, models.NewSlotError(models.CodeInvalidInput, "orderId is required")
	}

	b, err := s.load(ctx, id, customerID)
	if err != nil {
		return nil, err
	}
	if b.Payment.OrderID != "" && b.Payment.OrderID != orderID {
		return nil, models.NewSlotError(models.CodeInvalidInput, "order does not belong to this booking")
	}
	if b.Payment.Status == models.PaymentPaid {
		return b, nil
	}
	if b.Status.IsTerminal() {
		return nil, models.NewSlotError(models.CodeAlreadyFinalized, fmt.Sprintf("booking is already %s", b.Status))
	}

	v, err := s.Payments.VerifyOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if v.BookingID != "" && v.BookingID != b.ID {
		return nil, models.NewSlotError(models.CodeInvalidInput, "order does not belong to this booking")
	}

	setPayment := func(status string) func(*models.Booking) {
		return func(b *models.Booking) {
			b.Payment.OrderID = v.OrderID
			b.Payment.Status = status
			if v.Amount > 0 {
				b.Payment.Amount = v.Amount
			}
		}
	}

	to := b.Status
	switch v.Status {
	case models.PaymentPaid:
		to = models.StatusConfirmed
	case models.PaymentFailed, models.PaymentUnpaid:
		if b.Status == models.StatusPending {
			to = models.StatusFacingError
		}
	}
	return s.retryTransition(ctx, id, customerID, to, customerID, setPayment(v.Status), v)
}

func (s *DefaultBookingService) retryTransition(ctx context.Context, id, customerID string, to models.BookingStatus, actor string, mutate func(*models.Booking), v *payment.Verification) (*models.Booking, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		b, err := s.transitionOnce(ctx, id, customerID, to, actor, mutate)
		if !errors.Is(err, models.ErrStaleBooking) {
			if err == nil {
				s.Logger.Info("payment verified",
					zap.String("bookingId", id),
					zap.String("orderId", v.OrderID),
					zap.String("paymentStatus", v.Status))
			}
			return b, err
		}
		lastErr = err
	}
	return nil, lastErr
}
