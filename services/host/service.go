package host

import (
	"fmt"
	"time"

	"stayloft/models"
	"stayloft/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// authTokenTTL bounds how long a dashboard session token stays valid.
const authTokenTTL = 12 * time.Hour

// Authenticate checks dashboard credentials and issues a signed token.
func (s *DefaultDashboardService) Authenticate(email, password string) (string, *models.Host, error) {
	h := s.Hosts.HostByEmail(email)
	if h == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(h.ID, h.Email, authTokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue auth token: %w", err)
	}
	return token, h, nil
}

// ListBookings returns the host's bookings.
func (s *DefaultDashboardService) ListBookings(hostID string) ([]models.Booking, error) {
	return s.Bookings.ByHost(hostID)
}

// ListCustomers returns the host's guest contact records.
func (s *DefaultDashboardService) ListCustomers(hostID string) ([]models.Customer, error) {
	return s.Customers.ByHost(hostID)
}

// DeleteCustomer removes a customer record after verifying ownership.
func (s *DefaultDashboardService) DeleteCustomer(hostID, customerID string) error {
	c, err := s.Customers.GetByID(customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	if c.HostID != hostID {
		return ErrNotOwner
	}
	return s.Customers.Delete(customerID)
}

// ListBlocks returns the manual blocks the host has recorded.
func (s *DefaultDashboardService) ListBlocks(hostID string) ([]models.ExternalBlock, error) {
	return s.Blocks.ByHost(hostID)
}

// CreateBlock records a manual block on a listing the host owns.
func (s *DefaultDashboardService) CreateBlock(hostID, listingID string, r models.DateRange, note string) (*models.ExternalBlock, error) {
	h := s.Hosts.HostByID(hostID)
	if h == nil {
		return nil, ErrNotFound
	}
	if !h.Owns(listingID) {
		return nil, ErrNotOwner
	}

	block := &models.ExternalBlock{
		ID:        uuid.New().String(),
		ListingID: listingID,
		Range:     r,
		Source:    models.BlockSourceManual,
		Note:      note,
		HostID:    hostID,
		CreatedAt: time.Now(),
	}
	if err := s.Blocks.Create(block); err != nil {
		return nil, fmt.Errorf("failed to record manual block: %w", err)
	}
	return block, nil
}

// DeleteBlock removes a manual block whose recorded owner matches the
// requesting host.
func (s *DefaultDashboardService) DeleteBlock(hostID, blockID string) error {
	b, err := s.Blocks.GetByID(blockID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}
	if b.HostID != hostID {
		return ErrNotOwner
	}
	return s.Blocks.Delete(blockID)
}
