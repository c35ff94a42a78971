package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/BHAVY1503/eventease-client/internal/catalog"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

// ErrNoSeatsSelected is returned when checkout starts with nothing to book.
var ErrNoSeatsSelected = errors.New("no seats selected")

// ErrEventSoldOut is returned when checkout starts on an event with no
// seats left.
var ErrEventSoldOut = errors.New("event sold out")

// PaymentCollector is the injected checkout capability. Given an amount in
// minor units and an order description it collects a payment and returns the
// payment identifier; a cancelled checkout returns an error.
type PaymentCollector interface {
	Collect(ctx context.Context, amountMinor int64, description string) (string, error)
}

// Flow drives one booking session through the state machine:
// Idle -> SelectingSeats -> SubmittingPayment -> PaymentConfirmed ->
// SubmittingBooking -> BookingConfirmed, with both failure states returning
// to SelectingSeats with the selection preserved.
//
// A Flow belongs to a single user interaction loop and is not safe for
// concurrent use.
type Flow struct {
	state     State
	event     *catalog.Event
	selection *Selection
	quantity  int

	submitter *Submitter
	collector PaymentCollector
	log       *logger.Logger
}

// NewFlow creates an idle Flow.
func NewFlow(submitter *Submitter, collector PaymentCollector, log *logger.Logger) *Flow {
	return &Flow{
		state:     StateIdle,
		submitter: submitter,
		collector: collector,
		log:       log,
	}
}

// State returns the current session phase.
func (f *Flow) State() State {
	return f.state
}

// Selection returns the seat selection of the active session (nil when idle).
func (f *Flow) Selection() *Selection {
	return f.selection
}

// Start opens a booking session for an event, seeding the selection guard
// with the event's booked seat labels.
func (f *Flow) Start(e *catalog.Event) error {
	if err := f.to(StateSelectingSeats); err != nil {
		return err
	}
	f.event = e
	f.selection = NewSelection(e.BookedSeatLabels)
	f.quantity = 0
	if !e.HasSeatMap() {
		// one ticket unless adjusted; 0 when the event is sold out
		f.quantity = ClampQuantity(1, e.Available())
	}
	return nil
}

// Toggle flips a seat label in the selection. Only legal while selecting.
func (f *Flow) Toggle(label string) (bool, error) {
	if f.state != StateSelectingSeats {
		return false, fmt.Errorf("cannot toggle seats in state %s", f.state)
	}
	return f.selection.Toggle(label), nil
}

// SetQuantity sets the ticket count for non-zoned events, clamped to the
// event's available seats.
func (f *Flow) SetQuantity(quantity int) error {
	if f.state != StateSelectingSeats {
		return fmt.Errorf("cannot set quantity in state %s", f.state)
	}
	f.quantity = ClampQuantity(quantity, f.event.Available())
	return nil
}

// Total computes the current price. For zoned events unpriced labels are
// reported alongside so the caller can warn about inconsistent seat data.
func (f *Flow) Total() (int64, []string) {
	if f.event == nil {
		return 0, nil
	}
	if f.event.HasSeatMap() {
		return TotalPrice(f.event, f.selection.Labels())
	}
	return FlatTotal(f.event, f.quantity), nil
}

// Checkout runs payment collection followed by booking submission. Payment
// or booking failure returns the session to SelectingSeats with the
// selection untouched, so the user can retry without re-selecting.
func (f *Flow) Checkout(ctx context.Context) (*Confirmation, error) {
	if f.state != StateSelectingSeats {
		return nil, &ErrInvalidTransition{From: f.state, To: StateSubmittingPayment}
	}
	if f.event.HasSeatMap() && f.selection.Count() == 0 {
		return nil, ErrNoSeatsSelected
	}
	if !f.event.HasSeatMap() && f.quantity == 0 {
		return nil, ErrEventSoldOut
	}

	amount, unpriced := f.Total()
	if len(unpriced) > 0 {
		f.log.Warn("selected seats missing zone price", "labels", unpriced)
	}

	var paymentID string
	if amount > 0 && f.collector != nil {
		if err := f.to(StateSubmittingPayment); err != nil {
			return nil, err
		}

		id, err := f.collector.Collect(ctx, amount, f.event.Name)
		if err != nil {
			f.mustTo(StatePaymentFailed)
			f.mustTo(StateSelectingSeats)
			return nil, fmt.Errorf("payment failed: %w", err)
		}
		paymentID = id
		f.mustTo(StatePaymentConfirmed)
	}

	if err := f.to(StateSubmittingBooking); err != nil {
		return nil, err
	}

	var req Request
	if f.event.HasSeatMap() {
		req = NewSeatRequest(f.event, f.selection, paymentID)
	} else {
		req = NewQuantityRequest(f.event, f.quantity, paymentID)
	}

	confirmation, err := f.submitter.Submit(ctx, req, f.selection)
	if err != nil {
		f.mustTo(StateBookingFailed)
		f.mustTo(StateSelectingSeats)
		return nil, err
	}

	f.mustTo(StateBookingConfirmed)
	return confirmation, nil
}

// Reset returns a confirmed session to Idle.
func (f *Flow) Reset() error {
	if err := f.to(StateIdle); err != nil {
		return err
	}
	f.event = nil
	f.selection = nil
	f.quantity = 0
	return nil
}

func (f *Flow) to(next State) error {
	if !f.state.CanTransition(next) {
		return &ErrInvalidTransition{From: f.state, To: next}
	}
	f.state = next
	return nil
}

// mustTo is for transitions the machine guarantees are legal.
func (f *Flow) mustTo(next State) {
	if err := f.to(next); err != nil {
		panic(err)
	}
}
