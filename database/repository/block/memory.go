package blockRepo

import (
	"fmt"
	"sync"
	"time"

	"stayloft/models"
)

// MemoryBlockRepo is a mutex-guarded in-memory implementation.
type MemoryBlockRepo struct {
	mu    sync.RWMutex
	items map[string]*models.ExternalBlock
}

// NewMemoryBlockRepo builds an empty repository.
func NewMemoryBlockRepo() *MemoryBlockRepo {
	return &MemoryBlockRepo{items: make(map[string]*models.ExternalBlock)}
}

// Create stores a block.
func (r *MemoryBlockRepo) Create(block *models.ExternalBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}
	stored := *block
	r.items[block.ID] = &stored
	return nil
}

// GetByID returns a block by ID, or nil.
func (r *MemoryBlockRepo) GetByID(id string) (*models.ExternalBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copy := *b
	return &copy, nil
}

// Delete removes a block by ID.
func (r *MemoryBlockRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("block %s not found", id)
	}
	delete(r.items, id)
	return nil
}

// Overlapping returns blocks for the listing intersecting the range.
func (r *MemoryBlockRepo) Overlapping(listingID string, dr models.DateRange) ([]models.ExternalBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.ExternalBlock
	for _, b := range r.items {
		if b.ListingID == listingID && b.Range.Overlaps(dr) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// ByHost returns the manual blocks recorded by the given host.
func (r *MemoryBlockRepo) ByHost(hostID string) ([]models.ExternalBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.ExternalBlock
	for _, b := range r.items {
		if b.HostID == hostID {
			out = append(out, *b)
		}
	}
	return out, nil
}
