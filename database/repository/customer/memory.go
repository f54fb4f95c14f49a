package customerRepo

import (
	"fmt"
	"sync"
	"time"

	"stayloft/models"
)

// MemoryCustomerRepo is a mutex-guarded in-memory implementation.
type MemoryCustomerRepo struct {
	mu    sync.RWMutex
	items map[string]*models.Customer
}

// NewMemoryCustomerRepo builds an empty repository.
func NewMemoryCustomerRepo() *MemoryCustomerRepo {
	return &MemoryCustomerRepo{items: make(map[string]*models.Customer)}
}

// Upsert stores a customer, merging by (host, email).
func (r *MemoryCustomerRepo) Upsert(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.items {
		if c.HostID == customer.HostID && c.Email == customer.Email {
			c.Name = customer.Name
			c.Phone = customer.Phone
			return nil
		}
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	stored := *customer
	r.items[customer.ID] = &stored
	return nil
}

// GetByID returns a customer by ID, or nil.
func (r *MemoryCustomerRepo) GetByID(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copy := *c
	return &copy, nil
}

// Delete removes a customer record by its ID.
func (r *MemoryCustomerRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("customer %s not found", id)
	}
	delete(r.items, id)
	return nil
}

// ByHost returns all customers belonging to the given host.
func (r *MemoryCustomerRepo) ByHost(hostID string) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Customer
	for _, c := range r.items {
		if c.HostID == hostID {
			out = append(out, *c)
		}
	}
	return out, nil
}
