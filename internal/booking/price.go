package booking

import (
	"github.com/BHAVY1503/eventease-client/internal/catalog"
)

// TotalPrice sums, per selected label, the price of the zone owning it.
// Labels with no owning zone contribute 0 and are returned in unpriced so
// the caller can surface the data inconsistency instead of silently dropping
// it. Pure function: identical inputs always yield identical results.
func TotalPrice(e *catalog.Event, labels []string) (total int64, unpriced []string) {
	for _, label := range labels {
		zone, ok := e.ZoneFor(label)
		if !ok {
			unpriced = append(unpriced, label)
			continue
		}
		total += zone.Price
	}
	if total < 0 {
		total = 0
	}
	return total, unpriced
}

// FlatTotal prices a quantity booking on a non-zoned event.
func FlatTotal(e *catalog.Event, quantity int) int64 {
	if quantity < 0 {
		return 0
	}
	return int64(quantity) * e.TicketRate
}

// ClampQuantity bounds a requested ticket count to [1, available].
// Zero or negative requests become 1; requests above the available seat
// count become the available seat count. A sold-out event yields 0.
func ClampQuantity(requested, available int) int {
	if available < 1 {
		return 0
	}
	if requested < 1 {
		requested = 1
	}
	if requested > available {
		requested = available
	}
	return requested
}
