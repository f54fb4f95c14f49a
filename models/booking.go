package models

import "time"

// BookingStatusConfirmed is the only status the engine currently writes.
const BookingStatusConfirmed = "confirmed"

// Booking is a durable, confirmed reservation. Created exactly once per
// payment session; immutable afterwards except for status.
type Booking struct {
	ID               string    `bson:"id" json:"id"`
	HostID           string    `bson:"host_id" json:"hostId"`
	ListingID        string    `bson:"listing_id" json:"listingId"`
	Range            DateRange `bson:"range,inline" json:"range"`
	Status           string    `bson:"status" json:"status"`
	GuestName        string    `bson:"guest_name" json:"guestName"`
	GuestEmail       string    `bson:"guest_email" json:"guestEmail"`
	GuestPhone       string    `bson:"guest_phone,omitempty" json:"guestPhone,omitempty"`
	PaymentSessionID string    `bson:"payment_session_id" json:"paymentSessionId"`
	TotalPrice       int64     `bson:"total_price" json:"totalPrice"`
	Currency         string    `bson:"currency" json:"currency"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}
