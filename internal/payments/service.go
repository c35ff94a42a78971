package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

// ErrCheckoutCancelled is returned when the user closes the checkout without
// paying (the collaborator never invokes its callback).
var ErrCheckoutCancelled = errors.New("checkout cancelled")

// Order is a payment order created on the backend before checkout opens.
// Amount is in currency minor units.
type Order struct {
	ID          string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	CheckoutURL string `json:"checkout_url,omitempty"`
}

// Checkout is the injected payment collaborator: given an order it opens a
// checkout surface and returns the payment identifier on success.
type Checkout interface {
	Collect(ctx context.Context, order Order) (string, error)
}

type createOrderRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

type verifyPaymentResponse struct {
	Verified bool `json:"verified"`
}

// Service creates and verifies payment orders through the backend and runs
// the injected checkout collaborator in between. It satisfies the booking
// flow's PaymentCollector contract.
type Service struct {
	api      *api.Client
	checkout Checkout
	log      *logger.Logger
}

// NewService creates a payment Service.
func NewService(apiClient *api.Client, checkout Checkout, log *logger.Logger) *Service {
	return &Service{
		api:      apiClient,
		checkout: checkout,
		log:      log,
	}
}

// CreateOrder registers a payment order with the backend.
func (s *Service) CreateOrder(ctx context.Context, amountMinor int64, description string) (*Order, error) {
	var order Order
	req := createOrderRequest{Amount: amountMinor, Description: description}
	if err := s.api.Post(ctx, "/payments/orders", req, &order); err != nil {
		return nil, fmt.Errorf("create payment order: %w", err)
	}
	return &order, nil
}

// VerifyPayment asks the backend to verify a captured payment against its
// order. The backend owns the gateway signature check.
func (s *Service) VerifyPayment(ctx context.Context, orderID, paymentID string) error {
	var resp verifyPaymentResponse
	req := verifyPaymentRequest{OrderID: orderID, PaymentID: paymentID}
	if err := s.api.Post(ctx, "/payments/verify", req, &resp); err != nil {
		return fmt.Errorf("verify payment: %w", err)
	}
	if !resp.Verified {
		return errors.New("payment rejected by verification")
	}
	return nil
}

// Collect runs the full payment leg: create order, run checkout, verify.
func (s *Service) Collect(ctx context.Context, amountMinor int64, description string) (string, error) {
	order, err := s.CreateOrder(ctx, amountMinor, description)
	if err != nil {
		return "", err
	}

	paymentID, err := s.checkout.Collect(ctx, *order)
	if err != nil {
		return "", err
	}

	if err := s.VerifyPayment(ctx, order.ID, paymentID); err != nil {
		return "", err
	}

	s.log.LogPaymentCaptured(ctx, paymentID, amountMinor)
	return paymentID, nil
}
