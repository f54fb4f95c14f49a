package reservation

import (
	"sort"

	"stayloft/models"
)

// BlockedDates expands all three block sources — confirmed bookings,
// live holds, and external blocks — into the sorted set of individual
// blocked days inside the half-open query window. Read-only; used for
// calendar rendering.
func (e *Engine) BlockedDates(listingID string, window models.DateRange) ([]string, error) {
	if e.Listings.Listing(listingID) == nil {
		return nil, &NotFoundError{Kind: "listing", ID: listingID}
	}

	seen := make(map[string]struct{})
	add := func(r models.DateRange) {
		clipped, ok := r.Clip(window)
		if !ok {
			return
		}
		for _, day := range clipped.Days() {
			seen[day] = struct{}{}
		}
	}

	bookings, err := e.Bookings.OverlappingConfirmed(listingID, window)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		add(b.Range)
	}

	for _, h := range e.Holds.LiveOverlapping(listingID, window, e.now()) {
		add(h.Range)
	}

	blocks, err := e.Blocks.Overlapping(listingID, window)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		add(b.Range)
	}

	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	return days, nil
}
