package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawcare/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier tells customers about changes to their bookings.
type Notifier interface {
	NotifyReschedule(ctx context.Context, booking *models.Booking) error
	NotifyStatus(ctx context.Context, booking *models.Booking) error
	SendReminder(ctx context.Context, booking *models.Booking, reminder models.ReminderPayload) error
}

// Channel delivers one notification to one contact. A channel returns ErrNoRecipient when
// the contact has no address it can use.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, contact models.Contact, n models.Notification) error
}

// ErrNoRecipient means the channel has nothing to deliver to for this contact.
var ErrNoRecipient = errors.New("no recipient for channel")

// DefaultNotificationService fans every notification out to all configured channels.
type DefaultNotificationService struct {
	channels []Channel
	logger   *zap.Logger
}

func NewDefaultNotificationService(logger *zap.Logger, channels ...Channel) (*DefaultNotificationService, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("notification service initialization error: no channels configured")
	}
	return &DefaultNotificationService{channels: channels, logger: logger}, nil
}

func (s *DefaultNotificationService) NotifyReschedule(ctx context.Context, booking *models.Booking) error {
	return s.dispatch(ctx, booking, RescheduleMessage(booking))
}

func (s *DefaultNotificationService) NotifyStatus(ctx context.Context, booking *models.Booking) error {
	return s.dispatch(ctx, booking, StatusMessage(booking))
}

func (s *DefaultNotificationService) SendReminder(ctx context.Context, booking *models.Booking, reminder models.ReminderPayload) error {
	return s.dispatch(ctx, booking, ReminderMessage(booking, reminder))
}

// dispatch succeeds when at least one channel delivered. Channels without a recipient are
// skipped silently.
func (s *DefaultNotificationService) dispatch(ctx context.Context, booking *models.Booking, n models.Notification) error {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now().UTC()

	var errs []error
	delivered := 0
	for _, ch := range s.channels {
		err := ch.Deliver(ctx, booking.Contact, n)
		switch {
		case err == nil:
			delivered++
			s.logger.Debug("notification delivered",
				zap.String("channel", ch.Name()),
				zap.String("type", n.Type),
				zap.String("bookingId", booking.ID))
		case errors.Is(err, ErrNoRecipient):
		default:
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}

	if delivered == 0 && len(errs) > 0 {
		return errors.Join(errs...)
	}
	if len(errs) > 0 {
		s.logger.Warn("notification partially delivered",
			zap.String("bookingId", booking.ID), zap.Error(errors.Join(errs...)))
	}
	return nil
}
