package reservation

import "stayloft/models"

// IsFree reports whether the half-open range is free for the listing:
// no overlap with a confirmed booking, a live hold, or an external
// block. Read-only and cheap; it is called at hold-creation time and
// again defensively at confirmation time.
func (e *Engine) IsFree(listingID string, r models.DateRange) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isFreeLocked(listingID, r)
}

// isFreeLocked is the lock-free body, for callers already holding e.mu
// inside a larger check-then-write sequence.
func (e *Engine) isFreeLocked(listingID string, r models.DateRange) (bool, error) {
	bookings, err := e.Bookings.OverlappingConfirmed(listingID, r)
	if err != nil {
		return false, err
	}
	if len(bookings) > 0 {
		return false, nil
	}

	if len(e.Holds.LiveOverlapping(listingID, r, e.now())) > 0 {
		return false, nil
	}

	blocks, err := e.Blocks.Overlapping(listingID, r)
	if err != nil {
		return false, err
	}
	return len(blocks) == 0, nil
}
