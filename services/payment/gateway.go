package payment

import (
	"context"

	"pawcare/models"
)

// Verification is the gateway's view of a payment order.
type Verification struct {
	OrderID   string
	BookingID string
	Amount    int64
	Currency  string
	Status    string // one of the models.Payment* statuses
}

// Gateway creates and verifies payment orders for bookings.
type Gateway interface {
	CreateOrder(ctx context.Context, booking *models.Booking, amount int64, currency string) (*models.PaymentOrder, error)
	VerifyOrder(ctx context.Context, orderID string) (*Verification, error)
}
