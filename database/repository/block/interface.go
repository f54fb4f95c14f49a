package blockRepo

import "stayloft/models"

// BlockRepository defines methods for external-block data access.
// Absence is signalled with (nil, nil) rather than an error.
type BlockRepository interface {
	// Create inserts a new block record.
	Create(block *models.ExternalBlock) error
	// GetByID retrieves a block by its ID, or nil if absent.
	GetByID(id string) (*models.ExternalBlock, error)
	// Delete removes a block by its ID.
	Delete(id string) error
	// Overlapping returns blocks for the listing whose ranges intersect
	// the given half-open range, regardless of source.
	Overlapping(listingID string, r models.DateRange) ([]models.ExternalBlock, error)
	// ByHost returns the manual blocks recorded by the given host.
	ByHost(hostID string) ([]models.ExternalBlock, error)
}
