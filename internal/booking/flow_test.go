package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BHAVY1503/eventease-client/internal/catalog"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

type fakeCollector struct {
	paymentID string
	err       error
	calls     int
	amounts   []int64
}

func (f *fakeCollector) Collect(ctx context.Context, amountMinor int64, description string) (string, error) {
	f.calls++
	f.amounts = append(f.amounts, amountMinor)
	if f.err != nil {
		return "", f.err
	}
	return f.paymentID, nil
}

func flowEvent() *catalog.Event {
	e := zonedEvent()
	e.BookedSeatLabels = []string{"A2"}
	e.OrganizerID = "org-1"
	return e
}

func TestFlow_HappyPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusCreated, "booking confirmed", Confirmation{BookingID: "bk-1", Quantity: 2})
	})
	refresher := &fakeRefresher{}
	collector := &fakeCollector{paymentID: "pay-1"}

	flow := NewFlow(NewSubmitter(client, refresher, logger.GetDefault()), collector, logger.GetDefault())
	require.Equal(t, StateIdle, flow.State())

	require.NoError(t, flow.Start(flowEvent()))
	assert.Equal(t, StateSelectingSeats, flow.State())

	selected, err := flow.Toggle("A1")
	require.NoError(t, err)
	assert.True(t, selected)
	selected, err = flow.Toggle("B1")
	require.NoError(t, err)
	assert.True(t, selected)

	total, unpriced := flow.Total()
	assert.Equal(t, int64(300), total)
	assert.Empty(t, unpriced)

	confirmation, err := flow.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateBookingConfirmed, flow.State())
	assert.Equal(t, "bk-1", confirmation.BookingID)

	assert.Equal(t, 1, collector.calls)
	assert.Equal(t, []int64{300}, collector.amounts)
	assert.Equal(t, 0, flow.Selection().Count())
	assert.Equal(t, 1, refresher.calls)

	require.NoError(t, flow.Reset())
	assert.Equal(t, StateIdle, flow.State())
}

func TestFlow_BookedSeatCannotBeToggled(t *testing.T) {
	flow := NewFlow(nil, nil, logger.GetDefault())
	require.NoError(t, flow.Start(flowEvent()))

	selected, err := flow.Toggle("A2")
	require.NoError(t, err)
	assert.False(t, selected)
	assert.Equal(t, 0, flow.Selection().Count())
}

func TestFlow_PaymentFailureReturnsToSelecting(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("booking must not be submitted when payment fails")
	})
	collector := &fakeCollector{err: errors.New("checkout cancelled")}

	flow := NewFlow(NewSubmitter(client, &fakeRefresher{}, logger.GetDefault()), collector, logger.GetDefault())
	require.NoError(t, flow.Start(flowEvent()))
	flow.Toggle("A1")

	_, err := flow.Checkout(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateSelectingSeats, flow.State())
	assert.True(t, flow.Selection().Has("A1"), "selection must survive a payment failure")
}

func TestFlow_BookingFailureKeepsSelectionForRetry(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeEnvelope(w, http.StatusConflict, "seat A1 already booked", nil)
			return
		}
		writeEnvelope(w, http.StatusCreated, "booking confirmed", Confirmation{BookingID: "bk-2", Quantity: 1})
	})
	collector := &fakeCollector{paymentID: "pay-1"}

	flow := NewFlow(NewSubmitter(client, &fakeRefresher{}, logger.GetDefault()), collector, logger.GetDefault())
	require.NoError(t, flow.Start(flowEvent()))
	flow.Toggle("A1")

	_, err := flow.Checkout(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateSelectingSeats, flow.State())
	assert.True(t, flow.Selection().Has("A1"))

	// user retries without re-selecting
	confirmation, err := flow.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bk-2", confirmation.BookingID)
}

func TestFlow_QuantityEventSkipsSeatMap(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusCreated, "booking confirmed", Confirmation{BookingID: "bk-3", Quantity: 3})
	})
	collector := &fakeCollector{paymentID: "pay-2"}

	event := &catalog.Event{
		ID:            "evt-2",
		Name:          "Seminar",
		TicketRate:    150,
		NumberOfSeats: 10,
		BookedSeats:   7,
		OrganizerID:   "org-1",
	}

	flow := NewFlow(NewSubmitter(client, &fakeRefresher{}, logger.GetDefault()), collector, logger.GetDefault())
	require.NoError(t, flow.Start(event))

	// 5 requested, only 3 available
	require.NoError(t, flow.SetQuantity(5))

	total, _ := flow.Total()
	assert.Equal(t, int64(450), total)

	confirmation, err := flow.Checkout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, confirmation.Quantity)
}

func TestFlow_DefaultQuantityIsPriced(t *testing.T) {
	var submitted Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&submitted))
		writeEnvelope(w, http.StatusCreated, "booking confirmed", Confirmation{BookingID: "bk-4", Quantity: 1})
	})
	collector := &fakeCollector{paymentID: "pay-3"}

	event := &catalog.Event{
		ID:            "evt-3",
		Name:          "Seminar",
		TicketRate:    150,
		NumberOfSeats: 10,
		OrganizerID:   "org-1",
	}

	flow := NewFlow(NewSubmitter(client, &fakeRefresher{}, logger.GetDefault()), collector, logger.GetDefault())
	require.NoError(t, flow.Start(event))

	// no SetQuantity call: one ticket at the flat rate
	total, _ := flow.Total()
	assert.Equal(t, int64(150), total)

	_, err := flow.Checkout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, collector.calls, "a priced ticket must go through payment")
	assert.Equal(t, []int64{150}, collector.amounts)
	assert.Equal(t, 1, submitted.Quantity)
	assert.Equal(t, "pay-3", submitted.PaymentID)
}

func TestFlow_SoldOutEventRefusesCheckout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("sold-out event must not reach the backend")
	})
	collector := &fakeCollector{paymentID: "pay-1"}

	event := &catalog.Event{
		ID:            "evt-4",
		Name:          "Seminar",
		TicketRate:    150,
		NumberOfSeats: 5,
		BookedSeats:   5,
		OrganizerID:   "org-1",
	}

	flow := NewFlow(NewSubmitter(client, &fakeRefresher{}, logger.GetDefault()), collector, logger.GetDefault())
	require.NoError(t, flow.Start(event))

	_, err := flow.Checkout(context.Background())

	assert.ErrorIs(t, err, ErrEventSoldOut)
	assert.Equal(t, 0, collector.calls)
	assert.Equal(t, StateSelectingSeats, flow.State())
}

func TestFlow_CheckoutRequiresSelection(t *testing.T) {
	flow := NewFlow(nil, nil, logger.GetDefault())
	require.NoError(t, flow.Start(flowEvent()))

	_, err := flow.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrNoSeatsSelected)
}

func TestFlow_StartTwiceRejected(t *testing.T) {
	flow := NewFlow(nil, nil, logger.GetDefault())
	require.NoError(t, flow.Start(flowEvent()))

	err := flow.Start(flowEvent())
	var invalid *ErrInvalidTransition
	assert.ErrorAs(t, err, &invalid)
}
