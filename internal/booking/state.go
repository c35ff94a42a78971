package booking

import "fmt"

// State is the phase of a booking session.
type State string

const (
	StateIdle              State = "Idle"
	StateSelectingSeats    State = "SelectingSeats"
	StateSubmittingPayment State = "SubmittingPayment"
	StatePaymentConfirmed  State = "PaymentConfirmed"
	StatePaymentFailed     State = "PaymentFailed"
	StateSubmittingBooking State = "SubmittingBooking"
	StateBookingConfirmed  State = "BookingConfirmed"
	StateBookingFailed     State = "BookingFailed"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsValid checks if the state is a known session phase
func (s State) IsValid() bool {
	switch s {
	case StateIdle, StateSelectingSeats, StateSubmittingPayment,
		StatePaymentConfirmed, StatePaymentFailed,
		StateSubmittingBooking, StateBookingConfirmed, StateBookingFailed:
		return true
	}
	return false
}

// IsTerminal checks if the session has reached a confirmed booking
func (s State) IsTerminal() bool {
	return s == StateBookingConfirmed
}

// transitions lists the legal next states per the booking session machine.
// Both failure states return to seat selection so the user can retry
// without re-selecting.
var transitions = map[State][]State{
	StateIdle:              {StateSelectingSeats},
	StateSelectingSeats:    {StateSubmittingPayment, StateSubmittingBooking, StateIdle},
	StateSubmittingPayment: {StatePaymentConfirmed, StatePaymentFailed},
	StatePaymentConfirmed:  {StateSubmittingBooking},
	StatePaymentFailed:     {StateSelectingSeats},
	StateSubmittingBooking: {StateBookingConfirmed, StateBookingFailed},
	StateBookingConfirmed:  {StateIdle},
	StateBookingFailed:     {StateSelectingSeats},
}

// CanTransition reports whether moving from s to next is legal.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ErrInvalidTransition wraps an illegal state change.
type ErrInvalidTransition struct {
	From State
	To   State
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid booking session transition: %s -> %s", e.From, e.To)
}
