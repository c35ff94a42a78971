package payments

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BHAVY1503/eventease-client/internal/shared/config"
	"github.com/BHAVY1503/eventease-client/internal/shared/utils/response"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

// CallbackServer implements Checkout for browser-redirect gateways: it opens
// the hosted checkout page and waits for that page to deliver the payment id
// to a one-shot localhost callback route. Each collection is keyed by a
// nonce so a stray or replayed callback cannot complete someone else's
// checkout.
type CallbackServer struct {
	cfg config.CheckoutConfig
	log *logger.Logger
	srv *http.Server

	mu      sync.Mutex
	waiters map[string]chan string

	// openURL surfaces the checkout URL to the user; stubbed in tests.
	openURL func(url string)
}

// NewCallbackServer creates the server. Start must be called before Collect.
func NewCallbackServer(cfg config.CheckoutConfig, log *logger.Logger) *CallbackServer {
	s := &CallbackServer{
		cfg:     cfg,
		log:     log,
		waiters: make(map[string]chan string),
	}
	s.openURL = func(url string) {
		log.Info("open checkout in your browser", "url", url)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	// The hosted checkout page posts cross-origin from the gateway domain.
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	engine.GET("/checkout/callback/:nonce", s.handleCallback)
	engine.POST("/checkout/callback/:nonce", s.handleCallback)

	s.srv = &http.Server{
		Addr:    cfg.Addr,
		Handler: engine,
	}
	return s
}

// Handler exposes the underlying HTTP handler.
func (s *CallbackServer) Handler() http.Handler {
	return s.srv.Handler
}

// Start begins listening on the configured localhost address.
func (s *CallbackServer) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("checkout callback server failed", "error", err.Error())
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *CallbackServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Collect registers a nonce-keyed waiter, points the user at the checkout
// page and blocks until the callback delivers a payment id, the checkout
// times out, or ctx is cancelled.
func (s *CallbackServer) Collect(ctx context.Context, order Order) (string, error) {
	nonce := uuid.NewString()
	ch := make(chan string, 1)

	s.mu.Lock()
	s.waiters[nonce] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.waiters, nonce)
		s.mu.Unlock()
	}()

	checkoutURL := fmt.Sprintf("%s?callback=http://%s/checkout/callback/%s", order.CheckoutURL, s.cfg.Addr, nonce)
	s.openURL(checkoutURL)

	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	select {
	case paymentID := <-ch:
		return paymentID, nil
	case <-time.After(timeout):
		return "", ErrCheckoutCancelled
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type callbackPayload struct {
	PaymentID string `json:"payment_id" form:"payment_id"`
}

func (s *CallbackServer) handleCallback(c *gin.Context) {
	nonce := c.Param("nonce")

	var payload callbackPayload
	if err := c.ShouldBind(&payload); err != nil || payload.PaymentID == "" {
		payload.PaymentID = c.Query("payment_id")
	}
	if payload.PaymentID == "" {
		response.Error(c, http.StatusBadRequest, "payment_id is required")
		return
	}

	s.mu.Lock()
	ch, ok := s.waiters[nonce]
	if ok {
		delete(s.waiters, nonce)
	}
	s.mu.Unlock()

	if !ok {
		response.Error(c, http.StatusNotFound, "unknown or completed checkout")
		return
	}

	ch <- payload.PaymentID
	response.Success(c, http.StatusOK, "payment received, return to the terminal", nil)
}
