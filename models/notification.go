package models

import "time"

// Notification kinds.
const (
	NotificationRescheduled = "booking_rescheduled"
	NotificationStatus      = "booking_status"
	NotificationReminder    = "booking_reminder"
)

// Notification is an outbound message about a booking.
type Notification struct {
	ID        string            `json:"id"`
	BookingID string            `json:"bookingId"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ReminderPayload is the queued body of an appointment reminder task.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Date      string `json:"date"` // effective date the reminder was scheduled for
	Time      string `json:"time"` // effective time the reminder was scheduled for
	Title     string `json:"title"`
	Body      string `json:"body"`
}
