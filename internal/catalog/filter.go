package catalog

import "strings"

// Filter holds the client-side catalog filter dimensions. An empty Name or
// City matches every event; Type equal to TypeAll (or empty) disables the
// type filter.
type Filter struct {
	Name string
	City string
	Type EventType
}

// Matches reports whether a single event passes the filter.
func (f Filter) Matches(e *Event) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(e.CityName), strings.ToLower(f.City)) {
		return false
	}
	if f.Type != "" && f.Type != TypeAll && e.Type != f.Type {
		return false
	}
	return true
}

// ApplyFilter returns the events passing the filter. Pure function of its
// inputs: no network side effect on filter change, the input slice is never
// mutated.
func ApplyFilter(events []Event, f Filter) []Event {
	filtered := make([]Event, 0, len(events))
	for i := range events {
		if f.Matches(&events[i]) {
			filtered = append(filtered, events[i])
		}
	}
	return filtered
}
