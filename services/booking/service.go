package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingRepo "pawcare/database/repository/booking"
	clinicRepo "pawcare/database/repository/clinic"
	reservationRepo "pawcare/database/repository/reservation"
	"pawcare/models"
	"pawcare/services/notification"
	"pawcare/services/payment"
	"pawcare/services/settings"
	"pawcare/services/slots"
	"pawcare/services/tasks"
	"pawcare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sideEffectTimeout bounds each background notification or reminder call.
const sideEffectTimeout = 15 * time.Second

// maxUpdateAttempts bounds retries of guarded updates that lost a race.
const maxUpdateAttempts = 3

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	Clinics      clinicRepo.ClinicRepository
	Reservations reservationRepo.ReservationRepository // nil disables seat reservations
	Settings     settings.SettingsService
	Validator    *slots.Validator
	Notifier     notification.Notifier   // optional
	Reminders    tasks.ReminderScheduler // optional
	Payments     payment.Gateway         // optional
	Currency     string                  // used when the category has none
	PendingHold  time.Duration           // lifetime of seats held by unconfirmed bookings; 0 never expires
	Logger       *zap.Logger

	now     func() time.Time
	pending sync.WaitGroup
}

// Deps groups the collaborators of DefaultBookingService.
type Deps struct {
	Repo         bookingRepo.BookingRepository
	Clinics      clinicRepo.ClinicRepository
	Reservations reservationRepo.ReservationRepository
	Settings     settings.SettingsService
	Validator    *slots.Validator
	Notifier     notification.Notifier
	Reminders    tasks.ReminderScheduler
	Payments     payment.Gateway
	Currency     string
	PendingHold  time.Duration
	Logger       *zap.Logger
	Now          func() time.Time
}

func NewDefaultBookingService(d Deps) (*DefaultBookingService, error) {
	if d.Repo == nil || d.Settings == nil || d.Validator == nil {
		return nil, fmt.Errorf("booking service initialization error: repository, settings and validator are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &DefaultBookingService{
		Repo:         d.Repo,
		Clinics:      d.Clinics,
		Reservations: d.Reservations,
		Settings:     d.Settings,
		Validator:    d.Validator,
		Notifier:     d.Notifier,
		Reminders:    d.Reminders,
		Payments:     d.Payments,
		Currency:     d.Currency,
		PendingHold:  d.PendingHold,
		Logger:       d.Logger,
		now:          d.Now,
	}, nil
}

// Wait blocks until every background side effect started so far has finished.
func (s *DefaultBookingService) Wait() {
	s.pending.Wait()
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.NewSlotError(models.CodeInvalidID, fmt.Sprintf("%q is not a valid booking id", id))
	}
	return nil
}

// load fetches a booking, hiding bookings of other customers behind NOT_FOUND.
func (s *DefaultBookingService) load(ctx context.Context, id, customerID string) (*models.Booking, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrBookingNotFound) {
			return nil, models.NewSlotError(models.CodeNotFound, fmt.Sprintf("booking %s not found", id))
		}
		return nil, err
	}
	if customerID != "" && b.CustomerID != customerID {
		return nil, models.NewSlotError(models.CodeNotFound, fmt.Sprintf("booking %s not found", id))
	}
	return b, nil
}

func (s *DefaultBookingService) clinicFor(ctx context.Context, bookingType, clinicID string) (*models.Clinic, error) {
	if bookingType != models.BookingTypeClinic {
		return nil, nil
	}
	if clinicID == "" {
		return nil, models.NewSlotError(models.CodeInvalidInput, "clinicId is required for clinic bookings")
	}
	if s.Clinics == nil {
		return nil, fmt.Errorf("clinic bookings are not configured")
	}
	c, err := s.Clinics.GetByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, models.ErrClinicNotFound) {
			return nil, models.NewSlotError(models.CodeInvalidInput, fmt.Sprintf("unknown clinic %q", clinicID))
		}
		return nil, err
	}
	return c, nil
}

// reservationKeyNone keeps no seat when passed to release.
var reservationKeyNone = reservationRepo.Key{}

func reservationKey(b *models.Booking) reservationRepo.Key {
	date, clock := b.Effective()
	return reservationRepo.Key{
		Category: string(b.Category),
		ClinicID: b.ClinicID,
		Date:     date,
		Time:     canonicalClock(clock),
	}
}

// canonicalClock rewrites a time of day as zero-padded "HH:MM", so "9:00" and "09:00"
// share one stored form and one reservation key. Unparseable input is returned as is.
func canonicalClock(clock string) string {
	m, err := models.ParseClock(clock)
	if err != nil {
		return clock
	}
	return models.FormatClock(m)
}

// holdExpiry is when the booking's seat lapses. Bookings that were never confirmed only
// hold their seat for PendingHold, so abandoned checkouts free the slot again.
func (s *DefaultBookingService) holdExpiry(b *models.Booking) time.Time {
	if s.PendingHold <= 0 || b.Payment.Status == models.PaymentPaid {
		return time.Time{}
	}
	if b.Status == models.StatusConfirmed || b.Status == models.StatusCompleted {
		return time.Time{}
	}
	for _, h := range b.History {
		if h.To == models.StatusConfirmed {
			return time.Time{}
		}
	}
	return s.now().Add(s.PendingHold)
}

// reserve takes a seat for the booking's effective slot.
func (s *DefaultBookingService) reserve(ctx context.Context, b *models.Booking, limit int) error {
	if s.Reservations == nil {
		return nil
	}
	err := s.Reservations.Reserve(ctx, reservationKey(b), b.ID, limit, s.holdExpiry(b))
	if errors.Is(err, models.ErrSlotFull) {
		date, clock := b.Effective()
		return models.NewSlotError(models.CodeSlotFull, fmt.Sprintf("%s on %s is fully booked", clock, date))
	}
	return err
}

// release frees the booking's seats except keep. Failures leave a stale seat behind and
// are only logged.
func (s *DefaultBookingService) release(ctx context.Context, bookingID string, keep reservationRepo.Key) {
	if s.Reservations == nil {
		return
	}
	if err := s.Reservations.Release(ctx, bookingID, keep); err != nil {
		s.Logger.Error("failed to release slot reservation", zap.String("bookingId", bookingID), zap.Error(err))
	}
}

// slotStart returns the instant the booking's effective slot begins.
func (s *DefaultBookingService) slotStart(b *models.Booking) (time.Time, error) {
	date, clock := b.Effective()
	day, err := utils.ParseDate(date, s.Validator.Location())
	if err != nil {
		return time.Time{}, err
	}
	m, err := models.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(m) * time.Minute), nil
}
