package models

import "time"

// Block sources.
const (
	BlockSourceChannel = "channel" // imported from an external calendar channel
	BlockSourceManual  = "manual"  // entered by a host on the dashboard
)

// ExternalBlock marks a date range unavailable outside the booking flow.
// Only manual blocks carry a HostID, used for dashboard authorization.
type ExternalBlock struct {
	ID        string    `bson:"id" json:"id"`
	ListingID string    `bson:"listing_id" json:"listingId"`
	Range     DateRange `bson:"range,inline" json:"range"`
	Source    string    `bson:"source" json:"source"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	HostID    string    `bson:"host_id,omitempty" json:"hostId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
