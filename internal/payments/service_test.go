package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/internal/shared/config"
	"github.com/BHAVY1503/eventease-client/internal/shared/session"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

type fakeCheckout struct {
	paymentID string
	err       error
	orders    []Order
}

func (f *fakeCheckout) Collect(ctx context.Context, order Order) (string, error) {
	f.orders = append(f.orders, order)
	if f.err != nil {
		return "", f.err
	}
	return f.paymentID, nil
}

func paymentBackend(t *testing.T, verified bool) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var data interface{}
		switch r.URL.Path {
		case "/payments/orders":
			var req struct {
				Amount      int64  `json:"amount"`
				Description string `json:"description"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			data = Order{ID: "ord-1", Amount: req.Amount, Currency: "INR", CheckoutURL: "https://pay.example/ord-1"}
		case "/payments/verify":
			data = map[string]bool{"verified": verified}
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "success",
			"status_code": http.StatusOK,
			"message":     "ok",
			"data":        data,
		})
	}))
	t.Cleanup(srv.Close)

	return api.NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, session.New(), logger.GetDefault())
}

func TestService_CollectRunsFullLeg(t *testing.T) {
	checkout := &fakeCheckout{paymentID: "pay-1"}
	svc := NewService(paymentBackend(t, true), checkout, logger.GetDefault())

	paymentID, err := svc.Collect(context.Background(), 300, "Jazz Night")

	require.NoError(t, err)
	assert.Equal(t, "pay-1", paymentID)
	require.Len(t, checkout.orders, 1)
	assert.Equal(t, int64(300), checkout.orders[0].Amount)
	assert.Equal(t, "ord-1", checkout.orders[0].ID)
}

func TestService_CollectFailsOnRejectedVerification(t *testing.T) {
	checkout := &fakeCheckout{paymentID: "pay-1"}
	svc := NewService(paymentBackend(t, false), checkout, logger.GetDefault())

	_, err := svc.Collect(context.Background(), 300, "Jazz Night")

	assert.Error(t, err)
}

func TestService_CollectPropagatesCancellation(t *testing.T) {
	checkout := &fakeCheckout{err: ErrCheckoutCancelled}
	svc := NewService(paymentBackend(t, true), checkout, logger.GetDefault())

	_, err := svc.Collect(context.Background(), 300, "Jazz Night")

	assert.ErrorIs(t, err, ErrCheckoutCancelled)
}
