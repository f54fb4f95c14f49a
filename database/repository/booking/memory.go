package bookingRepo

import (
	"fmt"
	"sync"
	"time"

	"stayloft/models"
)

// MemoryBookingRepo is a mutex-guarded in-memory implementation, used
// in tests and single-process deployments without a database.
type MemoryBookingRepo struct {
	mu    sync.RWMutex
	items map[string]*models.Booking // keyed by booking ID
}

// NewMemoryBookingRepo builds an empty repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{items: make(map[string]*models.Booking)}
}

// Create stores a booking, enforcing the per-session uniqueness the
// Mongo implementation gets from its unique index.
func (r *MemoryBookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.items {
		if b.PaymentSessionID == booking.PaymentSessionID {
			return fmt.Errorf("booking already exists for payment session %s", booking.PaymentSessionID)
		}
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	stored := *booking
	r.items[booking.ID] = &stored
	return nil
}

// GetBySessionID returns the booking for a payment session, or nil.
func (r *MemoryBookingRepo) GetBySessionID(sessionID string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.items {
		if b.PaymentSessionID == sessionID {
			copy := *b
			return &copy, nil
		}
	}
	return nil, nil
}

// OverlappingConfirmed returns confirmed bookings intersecting the range.
func (r *MemoryBookingRepo) OverlappingConfirmed(listingID string, dr models.DateRange) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.items {
		if b.ListingID != listingID || b.Status != models.BookingStatusConfirmed {
			continue
		}
		if b.Range.Overlaps(dr) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// ByHost returns all bookings owned by the given host.
func (r *MemoryBookingRepo) ByHost(hostID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.items {
		if b.HostID == hostID {
			out = append(out, *b)
		}
	}
	return out, nil
}
