package bookingRepo

import "stayloft/models"

// BookingRepository defines methods for booking data access.
//
// Absence is signalled with (nil, nil), not an error: callers translate
// it into the appropriate HTTP status at the edge.
type BookingRepository interface {
	// Create inserts a new booking record. It fails if a booking with
	// the same payment session ID already exists.
	Create(booking *models.Booking) error
	// GetBySessionID retrieves the booking recorded for a payment
	// session, or nil if none exists.
	GetBySessionID(sessionID string) (*models.Booking, error)
	// OverlappingConfirmed returns confirmed bookings for the listing
	// whose ranges intersect the given half-open range.
	OverlappingConfirmed(listingID string, r models.DateRange) ([]models.Booking, error)
	// ByHost returns all bookings belonging to the given host.
	ByHost(hostID string) ([]models.Booking, error)
}
