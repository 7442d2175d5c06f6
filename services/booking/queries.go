package booking

import (
	"context"
	"errors"
	"fmt"

	"pawcare/models"
	"pawcare/services/slots"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) Get(ctx context.Context, id, customerID string) (*models.Booking, error) {
	return s.load(ctx, id, customerID)
}

func (s *DefaultBookingService) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	if customerID == "" {
		return nil, models.NewSlotError(models.CodeInvalidInput, "customer is required")
	}
	return s.Repo.ListByCustomer(ctx, customerID)
}

// Delete removes a booking for good and frees its seats.
func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrBookingNotFound) {
			return models.NewSlotError(models.CodeNotFound, fmt.Sprintf("booking %s not found", id))
		}
		return err
	}
	s.release(ctx, id, reservationKeyNone)
	s.Logger.Info("booking deleted", zap.String("bookingId", id))
	return nil
}

// Availability lists the grid of date with the capacity left in each slot, counted the
// way a new booking would be.
func (s *DefaultBookingService) Availability(ctx context.Context, category models.Category, date, clinicID string) ([]models.AvailableSlot, error) {
	cfg, err := s.Settings.Get(ctx, category)
	if err != nil {
		return nil, err
	}
	bookingType := models.BookingTypeHome
	if clinicID != "" {
		bookingType = models.BookingTypeClinic
	}
	clinic, err := s.clinicFor(ctx, bookingType, clinicID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.ListOnDate(ctx, category, date, clinicID, slots.ExcludedStatuses(true))
	if err != nil {
		return nil, err
	}
	return s.Validator.Availability(cfg.Policy, date, clinic, existing)
}
