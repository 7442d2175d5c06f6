package models

// Payment statuses recorded on a booking.
const (
	PaymentCreated   = "created"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentUnpaid    = "unpaid"
	PaymentProcessed = "processing"
)

// PaymentOrder is what the client needs to complete payment for a pending booking.
type PaymentOrder struct {
	OrderID      string `json:"orderId"`
	ClientSecret string `json:"clientSecret,omitempty"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}
