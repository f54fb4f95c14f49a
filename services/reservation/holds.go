package reservation

import (
	"sync"
	"time"

	"stayloft/models"
)

// HoldStore keeps live holds in process memory. Holds are short-lived
// and reconstructible, so they deliberately do not hit the durable
// store; the engine lock in Service serializes all writes against
// availability decisions.
type HoldStore struct {
	mu    sync.RWMutex
	holds map[string]models.Hold
}

// NewHoldStore builds an empty hold store.
func NewHoldStore() *HoldStore {
	return &HoldStore{holds: make(map[string]models.Hold)}
}

// Put inserts a hold.
func (s *HoldStore) Put(h models.Hold) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holds[h.ID] = h
}

// Take atomically removes and returns the hold, or nil if it does not
// exist. Safe to call twice: the second call finds nothing.
func (s *HoldStore) Take(id string) *models.Hold {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.holds[id]
	if !ok {
		return nil
	}
	delete(s.holds, id)
	return &h
}

// Get returns the hold without removing it, or nil.
func (s *HoldStore) Get(id string) *models.Hold {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.holds[id]
	if !ok {
		return nil
	}
	return &h
}

// LiveOverlapping returns the holds on the listing that are still live
// at the given instant and intersect the range.
func (s *HoldStore) LiveOverlapping(listingID string, r models.DateRange, now time.Time) []models.Hold {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Hold
	for _, h := range s.holds {
		if h.ListingID == listingID && h.Live(now) && h.Range.Overlaps(r) {
			out = append(out, h)
		}
	}
	return out
}

// LiveForListing returns all live holds on the listing.
func (s *HoldStore) LiveForListing(listingID string, now time.Time) []models.Hold {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Hold
	for _, h := range s.holds {
		if h.ListingID == listingID && h.Live(now) {
			out = append(out, h)
		}
	}
	return out
}

// Sweep removes every hold whose expiry has passed and returns how many
// were evicted.
func (s *HoldStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, h := range s.holds {
		if !h.Live(now) {
			delete(s.holds, id)
			evicted++
		}
	}
	return evicted
}
