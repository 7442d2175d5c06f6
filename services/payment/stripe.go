package payment

import (
	"context"
	"fmt"
	"strings"

	"pawcare/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway backs payment orders with Stripe PaymentIntents.
type StripeGateway struct {
	intents *paymentintent.Client
	logger  *zap.Logger
}

// NewStripeGateway uses the default API backend. A nil backend is replaced by it.
func NewStripeGateway(key string, backend stripe.Backend, logger *zap.Logger) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{
		intents: &paymentintent.Client{B: backend, Key: key},
		logger:  logger,
	}
}

func (g *StripeGateway) CreateOrder(ctx context.Context, booking *models.Booking, amount int64, currency string) (*models.PaymentOrder, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount %d", amount)
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", booking.ID)
	params.AddMetadata("category", string(booking.Category))
	params.SetIdempotencyKey("booking-" + booking.ID)

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	g.logger.Info("payment order created",
		zap.String("bookingId", booking.ID),
		zap.String("orderId", pi.ID),
		zap.Int64("amount", pi.Amount))

	return &models.PaymentOrder{
		OrderID:      pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

func (g *StripeGateway) VerifyOrder(ctx context.Context, orderID string) (*Verification, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.intents.Get(orderID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent %s: %w", orderID, err)
	}
	return &Verification{
		OrderID:   pi.ID,
		BookingID: pi.Metadata["bookingId"],
		Amount:    pi.Amount,
		Currency:  string(pi.Currency),
		Status:    intentStatus(pi.Status),
	}, nil
}

func intentStatus(s stripe.PaymentIntentStatus) string {
	switch s {
	case stripe.PaymentIntentStatusSucceeded:
		return models.PaymentPaid
	case stripe.PaymentIntentStatusProcessing, stripe.PaymentIntentStatusRequiresCapture:
		return models.PaymentProcessed
	case stripe.PaymentIntentStatusCanceled:
		return models.PaymentFailed
	default:
		return models.PaymentUnpaid
	}
}
