package models

import "time"

// Hold is a short-lived exclusivity lock on a listing's date range,
// pending payment completion. Never mutated after creation; it is
// removed by consumption, explicit release, or the expiry sweep.
type Hold struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	Range     DateRange `json:"range"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Live reports whether the hold has not yet expired at the given instant.
func (h Hold) Live(now time.Time) bool {
	return h.ExpiresAt.After(now)
}
