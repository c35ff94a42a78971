package booking

import "sort"

// Selection is the client-local, unconfirmed set of seats for one event.
// Labels already booked on the server can never enter it; Toggle on such a
// label is a no-op.
type Selection struct {
	booked map[string]struct{}
	chosen map[string]struct{}
}

// NewSelection creates an empty selection guarded by the event's booked
// seat labels.
func NewSelection(bookedLabels []string) *Selection {
	booked := make(map[string]struct{}, len(bookedLabels))
	for _, label := range bookedLabels {
		booked[label] = struct{}{}
	}
	return &Selection{
		booked: booked,
		chosen: make(map[string]struct{}),
	}
}

// Toggle flips membership of a seat label and reports whether the label is
// selected afterwards. Booked labels are never added.
func (s *Selection) Toggle(label string) bool {
	if _, taken := s.booked[label]; taken {
		return false
	}
	if _, ok := s.chosen[label]; ok {
		delete(s.chosen, label)
		return false
	}
	s.chosen[label] = struct{}{}
	return true
}

// Has reports whether a label is currently selected.
func (s *Selection) Has(label string) bool {
	_, ok := s.chosen[label]
	return ok
}

// Labels returns the selected seat labels in sorted order.
func (s *Selection) Labels() []string {
	labels := make([]string, 0, len(s.chosen))
	for label := range s.chosen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Count returns the number of selected seats.
func (s *Selection) Count() int {
	return len(s.chosen)
}

// Clear empties the selection. Called after a successful booking.
func (s *Selection) Clear() {
	s.chosen = make(map[string]struct{})
}
