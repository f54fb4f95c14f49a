package host

import (
	"errors"
	"testing"

	"stayloft/catalog"
	blockRepo "stayloft/database/repository/block"
	bookingRepo "stayloft/database/repository/booking"
	customerRepo "stayloft/database/repository/customer"
	"stayloft/models"
	"stayloft/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *DefaultDashboardService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	cat, err := catalog.New(
		[]models.Listing{
			{ID: "cabin-x", Title: "Cabin X", NightlyPrice: 10000, Currency: "usd"},
			{ID: "loft-y", Title: "Loft Y", NightlyPrice: 8000, Currency: "usd"},
		},
		[]models.Host{
			{ID: "host-a", Email: "a@example.com", PasswordHash: string(hash), SiteKey: "site-a", ListingIDs: []string{"cabin-x"}},
			{ID: "host-b", Email: "b@example.com", SiteKey: "site-b", ListingIDs: []string{"loft-y"}},
		},
	)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return &DefaultDashboardService{
		Hosts:     cat,
		Bookings:  bookingRepo.NewMemoryBookingRepo(),
		Customers: customerRepo.NewMemoryCustomerRepo(),
		Blocks:    blockRepo.NewMemoryBlockRepo(),
	}
}

func mustRange(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	r, err := models.NewDateRange(start, end)
	if err != nil {
		t.Fatalf("NewDateRange: %v", err)
	}
	return r
}

func TestAuthenticate(t *testing.T) {
	s := newTestService(t)

	token, h, err := s.Authenticate("a@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if h.ID != "host-a" {
		t.Fatalf("authenticated host = %s, want host-a", h.ID)
	}
	id, err := utils.ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken: %v", err)
	}
	if id != "host-a" {
		t.Fatalf("token subject = %s, want host-a", id)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	s := newTestService(t)

	cases := []struct {
		name, email, password string
	}{
		{"wrong password", "a@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "hunter2"},
		{"empty hash", "b@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := s.Authenticate(tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestListBookingsScopedToHost(t *testing.T) {
	s := newTestService(t)

	for _, b := range []*models.Booking{
		{ID: uuid.New().String(), HostID: "host-a", ListingID: "cabin-x", Status: models.BookingStatusConfirmed, PaymentSessionID: "cs_1", Range: mustRange(t, "2026-09-01", "2026-09-03")},
		{ID: uuid.New().String(), HostID: "host-b", ListingID: "loft-y", Status: models.BookingStatusConfirmed, PaymentSessionID: "cs_2", Range: mustRange(t, "2026-09-01", "2026-09-03")},
	} {
		if err := s.Bookings.Create(b); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := s.ListBookings("host-a")
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(got) != 1 || got[0].ListingID != "cabin-x" {
		t.Fatalf("ListBookings(host-a) = %+v, want only the cabin-x booking", got)
	}
}

func TestCreateBlockOwnership(t *testing.T) {
	s := newTestService(t)
	r := mustRange(t, "2026-09-01", "2026-09-03")

	block, err := s.CreateBlock("host-a", "cabin-x", r, "repainting")
	if err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}
	if block.Source != models.BlockSourceManual || block.HostID != "host-a" {
		t.Fatalf("block = %+v, want manual block owned by host-a", block)
	}

	if _, err := s.CreateBlock("host-a", "loft-y", r, ""); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign listing: got %v, want ErrNotOwner", err)
	}
	if _, err := s.CreateBlock("host-missing", "cabin-x", r, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown host: got %v, want ErrNotFound", err)
	}
}

func TestDeleteBlockOwnership(t *testing.T) {
	s := newTestService(t)
	block, err := s.CreateBlock("host-a", "cabin-x", mustRange(t, "2026-09-01", "2026-09-03"), "")
	if err != nil {
		t.Fatalf("CreateBlock: %v", err)
	}

	if err := s.DeleteBlock("host-b", block.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign delete: got %v, want ErrNotOwner", err)
	}
	if err := s.DeleteBlock("host-a", block.ID); err != nil {
		t.Fatalf("DeleteBlock: %v", err)
	}
	if err := s.DeleteBlock("host-a", block.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestDeleteCustomerOwnership(t *testing.T) {
	s := newTestService(t)
	c := &models.Customer{ID: uuid.New().String(), HostID: "host-a", Name: "Pat", Email: "pat@example.com"}
	if err := s.Customers.Upsert(c); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := s.DeleteCustomer("host-b", c.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign delete: got %v, want ErrNotOwner", err)
	}
	if err := s.DeleteCustomer("host-a", c.ID); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	if err := s.DeleteCustomer("host-a", c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}
