package catalog

import (
	"time"
)

// EventType enumerates the kinds of events the platform hosts.
type EventType string

const (
	TypeSeminar     EventType = "Seminar"
	TypeWorkshop    EventType = "Workshop"
	TypeConcert     EventType = "Concert"
	TypeZoomMeeting EventType = "ZoomMeeting"
	TypeExhibition  EventType = "Exhibition"

	// TypeAll is the filter sentinel that disables type filtering.
	TypeAll EventType = "all"
)

// EventCategory enumerates where an event takes place.
type EventCategory string

const (
	CategoryIndoor      EventCategory = "Indoor"
	CategoryOutdoor     EventCategory = "Outdoor"
	CategoryZoomMeeting EventCategory = "ZoomMeeting"
)

// Zone is a named subset of an event's seats sharing one price.
// Prices are in currency minor units.
type Zone struct {
	Name  string   `json:"name"`
	Seats []string `json:"seats"`
	Price int64    `json:"price"`
}

// Event is a published event as returned by the catalog endpoints.
type Event struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          EventType     `json:"type"`
	Category      EventCategory `json:"category"`
	NumberOfSeats int           `json:"number_of_seats"`
	BookedSeats   int           `json:"booked_seats"`

	// TicketRate is the flat per-ticket price (minor units) for events
	// without zones.
	TicketRate int64 `json:"ticket_rate"`

	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`

	OrganizerID string `json:"organizer_id"`
	StateID     string `json:"state_id"`
	CityID      string `json:"city_id"`
	StateName   string `json:"state_name"`
	CityName    string `json:"city_name"`

	// MeetingURL replaces the physical location for ZoomMeeting events.
	MeetingURL string `json:"meeting_url,omitempty"`

	Zones []Zone `json:"zones,omitempty"`

	// BookedSeatLabels lists seat labels already taken; labels in this list
	// can never enter a selection.
	BookedSeatLabels []string `json:"booked_seat_labels,omitempty"`
}

// Available returns the number of seats still open for booking.
func (e *Event) Available() int {
	available := e.NumberOfSeats - e.BookedSeats
	if available < 0 {
		available = 0
	}
	return available
}

// HasSeatMap reports whether the event sells individually labelled seats.
func (e *Event) HasSeatMap() bool {
	return len(e.Zones) > 0
}

// BookedLabelSet returns the booked seat labels as a set.
func (e *Event) BookedLabelSet() map[string]struct{} {
	set := make(map[string]struct{}, len(e.BookedSeatLabels))
	for _, label := range e.BookedSeatLabels {
		set[label] = struct{}{}
	}
	return set
}

// ZoneFor returns the zone owning the given seat label. A label belongs to
// exactly one zone; a miss signals inconsistent event data.
func (e *Event) ZoneFor(label string) (*Zone, bool) {
	for i := range e.Zones {
		for _, seat := range e.Zones[i].Seats {
			if seat == label {
				return &e.Zones[i], true
			}
		}
	}
	return nil, false
}
