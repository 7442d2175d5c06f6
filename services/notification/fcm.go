package notification

import (
	"context"
	"fmt"

	"pawcare/models"

	"firebase.google.com/go/v4/messaging"
)

// MessageSender is implemented by *messaging.Client.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMChannel pushes to the device token stored on the booking.
type FCMChannel struct {
	client MessageSender
}

func NewFCMChannel(client MessageSender) *FCMChannel {
	return &FCMChannel{client: client}
}

func (c *FCMChannel) Name() string { return "fcm" }

func (c *FCMChannel) Deliver(ctx context.Context, contact models.Contact, n models.Notification) error {
	if contact.FCMToken == "" {
		return ErrNoRecipient
	}

	msg := &messaging.Message{
		Token: contact.FCMToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	if _, err := c.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
