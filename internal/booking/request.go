package booking

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/BHAVY1503/eventease-client/internal/catalog"
)

var validate = validator.New()

// Request is the payload sent to reserve seats/tickets for an event. Built
// immediately before submission and discarded after the response; nothing is
// persisted client-side.
type Request struct {
	EventID     string   `json:"event_id" validate:"required"`
	Quantity    int      `json:"quantity" validate:"required,min=1"`
	SeatLabels  []string `json:"seat_labels,omitempty"`
	OrganizerID string   `json:"organizer_id" validate:"required"`
	StateID     string   `json:"state_id,omitempty"`
	CityID      string   `json:"city_id,omitempty"`
	PaymentID   string   `json:"payment_id,omitempty"`
}

// NewSeatRequest builds a Request from the current selection of a zoned event.
func NewSeatRequest(e *catalog.Event, sel *Selection, paymentID string) Request {
	labels := sel.Labels()
	return Request{
		EventID:     e.ID,
		Quantity:    len(labels),
		SeatLabels:  labels,
		OrganizerID: e.OrganizerID,
		StateID:     e.StateID,
		CityID:      e.CityID,
		PaymentID:   paymentID,
	}
}

// NewQuantityRequest builds a Request for a non-zoned event, clamping the
// quantity to the event's available seats.
func NewQuantityRequest(e *catalog.Event, quantity int, paymentID string) Request {
	return Request{
		EventID:     e.ID,
		Quantity:    ClampQuantity(quantity, e.Available()),
		OrganizerID: e.OrganizerID,
		StateID:     e.StateID,
		CityID:      e.CityID,
		PaymentID:   paymentID,
	}
}

// Validate checks the request before it leaves the client.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid booking request: %w", err)
	}
	return nil
}

// Confirmation is the backend's acknowledgement of a booking.
type Confirmation struct {
	BookingID string `json:"booking_id"`
	Reference string `json:"booking_ref"`
	Quantity  int    `json:"quantity"`
}
