package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func testGateway(t *testing.T, handler http.HandlerFunc) *StripeGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return NewStripeGateway("sk_test_123", backend, zap.NewNop())
}

func TestCreateOrder(t *testing.T) {
	var form map[string]string
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = map[string]string{
			"amount":              r.PostForm.Get("amount"),
			"currency":            r.PostForm.Get("currency"),
			"metadata[bookingId]": r.PostForm.Get("metadata[bookingId]"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":50000,"currency":"inr","client_secret":"pi_123_secret_abc","status":"requires_payment_method"}`))
	})

	b := &models.Booking{ID: "b-1", Category: models.CategoryLab}
	order, err := gw.CreateOrder(context.Background(), b, 50000, "INR")
	require.NoError(t, err)

	assert.Equal(t, "pi_123", order.OrderID)
	assert.Equal(t, "pi_123_secret_abc", order.ClientSecret)
	assert.Equal(t, int64(50000), order.Amount)
	assert.Equal(t, "50000", form["amount"])
	assert.Equal(t, "inr", form["currency"])
	assert.Equal(t, "b-1", form["metadata[bookingId]"])
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("gateway must not be called")
	})
	_, err := gw.CreateOrder(context.Background(), &models.Booking{ID: "b-1"}, 0, "inr")
	assert.Error(t, err)
}

func TestVerifyOrderMapsStatus(t *testing.T) {
	cases := map[string]string{
		"succeeded":               models.PaymentPaid,
		"processing":              models.PaymentProcessed,
		"canceled":                models.PaymentFailed,
		"requires_payment_method": models.PaymentUnpaid,
	}
	for status, want := range cases {
		t.Run(status, func(t *testing.T) {
			gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/payment_intents/pi_9", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":"pi_9","object":"payment_intent","amount":1200,"currency":"inr","status":"` + status + `","metadata":{"bookingId":"b-9"}}`))
			})
			v, err := gw.VerifyOrder(context.Background(), "pi_9")
			require.NoError(t, err)
			assert.Equal(t, want, v.Status)
			assert.Equal(t, "b-9", v.BookingID)
		})
	}
}
