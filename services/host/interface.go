package host

import (
	"stayloft/catalog"
	blockRepo "stayloft/database/repository/block"
	bookingRepo "stayloft/database/repository/booking"
	customerRepo "stayloft/database/repository/customer"
	"stayloft/models"
)

// DashboardService is the host-scoped access layer: every operation
// requires an authenticated host identity and is filtered to — or
// authorized against — the listings that host owns.
type DashboardService interface {
	// Authenticate checks dashboard credentials and returns a signed
	// auth token plus the host record.
	Authenticate(email, password string) (string, *models.Host, error)
	// ListBookings returns the host's bookings.
	ListBookings(hostID string) ([]models.Booking, error)
	// ListCustomers returns the host's guest contact records.
	ListCustomers(hostID string) ([]models.Customer, error)
	// DeleteCustomer removes one of the host's customer records.
	DeleteCustomer(hostID, customerID string) error
	// ListBlocks returns the manual blocks the host has recorded.
	ListBlocks(hostID string) ([]models.ExternalBlock, error)
	// CreateBlock records a manual block on a listing the host owns.
	CreateBlock(hostID, listingID string, r models.DateRange, note string) (*models.ExternalBlock, error)
	// DeleteBlock removes a manual block the host recorded.
	DeleteBlock(hostID, blockID string) error
}

// DefaultDashboardService implements DashboardService.
type DefaultDashboardService struct {
	Hosts     catalog.HostDirectory
	Bookings  bookingRepo.BookingRepository
	Customers customerRepo.CustomerRepository
	Blocks    blockRepo.BlockRepository
}
