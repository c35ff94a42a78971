package booking

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

// ErrSubmitInFlight is returned when a submission is attempted while another
// one from the same session has not resolved yet.
var ErrSubmitInFlight = errors.New("booking submission already in flight")

// Refresher re-fetches catalog availability after a confirmed booking.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(ctx context.Context) error

func (f RefresherFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}

// Submitter sends booking requests to the backend. A single in-flight guard
// prevents duplicate submissions from one session; the selection is cleared
// only on success, so a seat-conflict rejection leaves it intact for retry.
type Submitter struct {
	api       *api.Client
	refresher Refresher
	log       *logger.Logger
	inFlight  atomic.Bool
}

// NewSubmitter creates a Submitter.
func NewSubmitter(apiClient *api.Client, refresher Refresher, log *logger.Logger) *Submitter {
	return &Submitter{
		api:       apiClient,
		refresher: refresher,
		log:       log,
	}
}

// Submit validates and posts a booking request. On success the selection is
// cleared and the catalog refreshed; on any failure both are left untouched
// and the classified error is returned for the caller to surface.
func (s *Submitter) Submit(ctx context.Context, req Request, sel *Selection) (*Confirmation, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.log.LogBookingSubmitted(ctx, req.EventID, req.Quantity)

	var confirmation Confirmation
	if err := s.api.Post(ctx, "/bookings", req, &confirmation); err != nil {
		return nil, err
	}

	s.log.LogBookingConfirmed(ctx, confirmation.BookingID, req.EventID)

	if sel != nil {
		sel.Clear()
	}

	// Refresh is best-effort: the booking is already confirmed, a stale
	// catalog only delays availability display until the next listing.
	if s.refresher != nil {
		if err := s.refresher.Refresh(ctx); err != nil {
			s.log.ErrorWithContext(ctx, "catalog refresh after booking failed", err, map[string]interface{}{
				"event_id": req.EventID,
			})
		}
	}

	return &confirmation, nil
}
