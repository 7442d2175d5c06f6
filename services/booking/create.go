package booking

import (
	"context"
	"strings"

	"pawcare/models"
	"pawcare/services/slots"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates the requested slot and stores a Pending booking. When the category
// has a fee a payment order is opened; a gateway failure leaves the booking without one.
func (s *DefaultBookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, *models.PaymentOrder, error) {
	if in.CustomerID == "" {
		return nil, nil, models.NewSlotError(models.CodeInvalidInput, "customer is required")
	}
	bookingType := strings.ToLower(strings.TrimSpace(in.BookingType))
	if bookingType == "" {
		bookingType = models.BookingTypeHome
	}
	if bookingType != models.BookingTypeHome && bookingType != models.BookingTypeClinic {
		return nil, nil, models.NewSlotError(models.CodeInvalidInput, "bookingType must be home or clinic")
	}

	cfg, err := s.Settings.Get(ctx, in.Category)
	if err != nil {
		return nil, nil, err
	}
	clinic, err := s.clinicFor(ctx, bookingType, in.ClinicID)
	if err != nil {
		return nil, nil, err
	}
	clinicID := ""
	if clinic != nil {
		clinicID = clinic.ID
	}

	existing, err := s.Repo.ListOnDate(ctx, in.Category, in.Date, clinicID, slots.ExcludedStatuses(true))
	if err != nil {
		return nil, nil, err
	}
	req := slots.Request{Date: in.Date, Time: in.Time, Clinic: clinic, Initial: true}
	if err := s.Validator.Validate(cfg.Policy, req, existing); err != nil {
		return nil, nil, err
	}

	clock := canonicalClock(in.Time)
	currency := cfg.Currency
	if currency == "" {
		currency = s.Currency
	}

	now := s.now().UTC()
	b := &models.Booking{
		ID:           uuid.New().String(),
		Category:     in.Category,
		CustomerID:   in.CustomerID,
		PetID:        in.PetID,
		BookingType:  bookingType,
		ClinicID:     clinicID,
		SelectedDate: in.Date,
		SelectedTime: clock,
		Status:       models.StatusPending,
		Contact:      in.Contact,
		Notes:        in.Notes,
		History:      []models.StatusChange{{To: models.StatusPending, At: now, By: in.CustomerID}},
		Payment:      models.PaymentInfo{Amount: cfg.Fee, Currency: currency, Status: models.PaymentUnpaid},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.SyncEffective()

	if err := s.reserve(ctx, b, cfg.Policy.PerGapLimitBooking); err != nil {
		return nil, nil, err
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		s.release(ctx, b.ID, reservationKeyNone)
		return nil, nil, err
	}
	s.Logger.Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("category", b.Category.String()),
		zap.String("date", b.SelectedDate),
		zap.String("time", b.SelectedTime))

	order := s.openPaymentOrder(ctx, b)
	return b, order, nil
}

func (s *DefaultBookingService) openPaymentOrder(ctx context.Context, b *models.Booking) *models.PaymentOrder {
	if s.Payments == nil || b.Payment.Amount <= 0 {
		return nil
	}
	order, err := s.Payments.CreateOrder(ctx, b, b.Payment.Amount, b.Payment.Currency)
	if err != nil {
		s.Logger.Error("failed to create payment order", zap.String("bookingId", b.ID), zap.Error(err))
		return nil
	}

	b.Payment.OrderID = order.OrderID
	b.Payment.Status = models.PaymentCreated
	if err := s.Repo.UpdateStatus(ctx, b, b.Status); err != nil {
		s.Logger.Error("failed to attach payment order", zap.String("bookingId", b.ID), zap.Error(err))
	}
	return order
}
