package notification

import (
	"fmt"
	"strings"

	"pawcare/models"
)

func categoryLabel(c models.Category) string {
	if c == "" {
		return "Appointment"
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

func baseData(b *models.Booking, kind string) map[string]string {
	date, clock := b.Effective()
	return map[string]string{
		"type":      kind,
		"bookingId": b.ID,
		"category":  string(b.Category),
		"date":      date,
		"time":      clock,
		"status":    string(b.Status),
	}
}

// RescheduleMessage announces the booking's new slot.
func RescheduleMessage(b *models.Booking) models.Notification {
	date, clock := b.Effective()
	return models.Notification{
		BookingID: b.ID,
		Type:      models.NotificationRescheduled,
		Title:     fmt.Sprintf("%s booking rescheduled", categoryLabel(b.Category)),
		Body:      fmt.Sprintf("Your appointment has been moved to %s at %s.", date, clock),
		Data:      baseData(b, models.NotificationRescheduled),
	}
}

// StatusMessage announces the booking's current status.
func StatusMessage(b *models.Booking) models.Notification {
	date, clock := b.Effective()
	var body string
	switch b.Status {
	case models.StatusConfirmed:
		body = fmt.Sprintf("Your appointment on %s at %s is confirmed.", date, clock)
	case models.StatusCancelled:
		body = fmt.Sprintf("Your appointment on %s at %s has been cancelled.", date, clock)
	case models.StatusCompleted:
		body = "Thanks for visiting! Your appointment is complete."
	case models.StatusFacingError:
		body = "We could not confirm your payment. Please retry or contact support."
	default:
		body = fmt.Sprintf("Your appointment on %s at %s is now %s.", date, clock, b.Status)
	}
	return models.Notification{
		BookingID: b.ID,
		Type:      models.NotificationStatus,
		Title:     fmt.Sprintf("%s booking %s", categoryLabel(b.Category), strings.ToLower(string(b.Status))),
		Body:      body,
		Data:      baseData(b, models.NotificationStatus),
	}
}

// ReminderMessage uses the queued title and body when present.
func ReminderMessage(b *models.Booking, p models.ReminderPayload) models.Notification {
	n := models.Notification{
		BookingID: b.ID,
		Type:      models.NotificationReminder,
		Title:     p.Title,
		Body:      p.Body,
		Data:      baseData(b, models.NotificationReminder),
	}
	if n.Title == "" {
		n.Title = fmt.Sprintf("Upcoming %s appointment", strings.ToLower(categoryLabel(b.Category)))
	}
	if n.Body == "" {
		n.Body = fmt.Sprintf("Reminder: your appointment is on %s at %s.", p.Date, p.Time)
	}
	return n
}
