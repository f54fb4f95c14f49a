package reservation

import (
	"sync"
	"time"

	"stayloft/catalog"
	blockRepo "stayloft/database/repository/block"
	bookingRepo "stayloft/database/repository/booking"
	customerRepo "stayloft/database/repository/customer"
	"stayloft/models"
	"stayloft/services/payment"

	"github.com/google/uuid"
)

// DefaultHoldTTL applies when no TTL is configured for hold creation.
const DefaultHoldTTL = 10 * time.Minute

// CheckoutURLs are the processor redirect targets for a checkout.
type CheckoutURLs struct {
	Success string
	Cancel  string
}

// Engine is the reservation concurrency and availability engine: it
// decides whether a range is free, issues holds, orchestrates checkout,
// and reconciles payment completions into bookings.
type Engine struct {
	Listings  catalog.ListingRegistry
	Hosts     catalog.HostDirectory
	Bookings  bookingRepo.BookingRepository
	Blocks    blockRepo.BlockRepository
	Customers customerRepo.CustomerRepository
	Gateway   payment.Gateway
	Holds     *HoldStore

	// Platform-default payment credentials, used when a host has none.
	PlatformCreds models.PaymentCredentials

	URLs CheckoutURLs

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time

	// mu serializes hold creation, release, sweep, and confirmation so
	// a check-then-write in one path cannot interleave with another.
	mu sync.Mutex
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// CreateHold issues a time-limited exclusivity lock on the range, or a
// ConflictError if the range is not free. A zero ttl falls back to
// DefaultHoldTTL.
func (e *Engine) CreateHold(listingID string, r models.DateRange, ttl time.Duration) (*models.Hold, error) {
	if e.Listings.Listing(listingID) == nil {
		return nil, &NotFoundError{Kind: "listing", ID: listingID}
	}
	if ttl <= 0 {
		ttl = DefaultHoldTTL
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	free, err := e.isFreeLocked(listingID, r)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, &ConflictError{ListingID: listingID, Range: r}
	}

	now := e.now()
	hold := models.Hold{
		ID:        uuid.New().String(),
		ListingID: listingID,
		Range:     r,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	e.Holds.Put(hold)
	return &hold, nil
}

// ReleaseHold atomically removes and returns the hold. Releasing a hold
// that no longer exists yields a NotFoundError, never a destructive
// failure, so the operation is idempotent.
func (e *Engine) ReleaseHold(holdID string) (*models.Hold, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := e.Holds.Take(holdID)
	if h == nil {
		return nil, &NotFoundError{Kind: "hold", ID: holdID}
	}
	return h, nil
}

// SweepExpiredHolds evicts every expired hold and returns the count.
// Callers must treat hold TTLs as soft deadlines: an expired hold may
// linger for up to one sweep interval, though IsFree already ignores it.
func (e *Engine) SweepExpiredHolds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Holds.Sweep(e.now())
}
