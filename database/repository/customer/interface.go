package customerRepo

import "stayloft/models"

// CustomerRepository defines methods for guest contact records.
type CustomerRepository interface {
	// Upsert stores a customer, merging by (host, email) so repeat
	// guests do not produce duplicate records.
	Upsert(customer *models.Customer) error
	// GetByID retrieves a customer by its ID, or nil if absent.
	GetByID(id string) (*models.Customer, error)
	// Delete removes a customer record by its ID.
	Delete(id string) error
	// ByHost returns all customers belonging to the given host.
	ByHost(hostID string) ([]models.Customer, error)
}
