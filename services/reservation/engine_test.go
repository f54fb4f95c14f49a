package reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"stayloft/catalog"
	blockRepo "stayloft/database/repository/block"
	bookingRepo "stayloft/database/repository/booking"
	customerRepo "stayloft/database/repository/customer"
	"stayloft/models"
	"stayloft/services/payment"

	"github.com/google/uuid"
)

const (
	platformKey    = "sk_platform"
	platformSecret = "whsec_platform"
	hostSecret     = "whsec_host_a"
)

// fakeGateway implements payment.Gateway with a trivial signature
// scheme: a payload is "signed" by secret S when the header is "sig:"+S.
type fakeGateway struct {
	sessions map[string]*payment.Session
	created  []payment.CheckoutSpec
	getCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]*payment.Session)}
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, spec payment.CheckoutSpec) (*payment.Session, error) {
	g.created = append(g.created, spec)
	id := fmt.Sprintf("cs_test_%d", len(g.created))
	sess := &payment.Session{
		ID:       id,
		URL:      "https://pay.example/" + id,
		Metadata: spec.Metadata,
	}
	g.sessions[id] = sess
	return sess, nil
}

func (g *fakeGateway) GetCheckoutSession(ctx context.Context, sessionID, apiKey string) (*payment.Session, error) {
	g.getCalls++
	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session %s", sessionID)
	}
	return sess, nil
}

func (g *fakeGateway) VerifyEvent(payload []byte, sigHeader, signingSecret string) (*payment.Event, error) {
	if sigHeader != "sig:"+signingSecret {
		return nil, fmt.Errorf("signature mismatch")
	}
	return g.PeekEvent(payload)
}

func (g *fakeGateway) PeekEvent(payload []byte) (*payment.Event, error) {
	var event payment.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// completedEventPayload builds a checkout-completed event body for the
// fake gateway's verification scheme.
func completedEventPayload(t *testing.T, sess *payment.Session) []byte {
	t.Helper()
	payload, err := json.Marshal(payment.Event{
		Type:    payment.EventCheckoutCompleted,
		Session: *sess,
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return payload
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]models.Listing{
			{ID: "cabin-x", Title: "Cabin X", NightlyPrice: 10000, CleaningFee: 5000, Currency: "usd"},
			{ID: "loft-y", Title: "Loft Y", NightlyPrice: 8000, CleaningFee: 3000, Currency: "usd"},
		},
		[]models.Host{
			{
				ID: "host-a", Email: "a@example.com", SiteKey: "site-a",
				ListingIDs: []string{"cabin-x"},
				Payment:    models.PaymentCredentials{SecretKey: "sk_host_a", SigningSecret: hostSecret},
			},
			{
				ID: "host-b", Email: "b@example.com", SiteKey: "site-b",
				ListingIDs: []string{"loft-y"},
			},
		},
	)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func newTestEngine(t *testing.T) (*Engine, *fakeGateway) {
	t.Helper()
	cat := testCatalog(t)
	gw := newFakeGateway()
	e := &Engine{
		Listings:  cat,
		Hosts:     cat,
		Bookings:  bookingRepo.NewMemoryBookingRepo(),
		Blocks:    blockRepo.NewMemoryBlockRepo(),
		Customers: customerRepo.NewMemoryCustomerRepo(),
		Gateway:   gw,
		Holds:     NewHoldStore(),
		PlatformCreds: models.PaymentCredentials{
			SecretKey:     platformKey,
			SigningSecret: platformSecret,
		},
		URLs: CheckoutURLs{Success: "https://site.example/ok", Cancel: "https://site.example/cancel"},
	}
	return e, gw
}

func dr(t *testing.T, start, end string) models.DateRange {
	t.Helper()
	r, err := models.NewDateRange(start, end)
	if err != nil {
		t.Fatalf("NewDateRange(%s, %s): %v", start, end, err)
	}
	return r
}

func mustBeFree(t *testing.T, e *Engine, listingID string, r models.DateRange, want bool) {
	t.Helper()
	free, err := e.IsFree(listingID, r)
	if err != nil {
		t.Fatalf("IsFree(%s, %v): %v", listingID, r, err)
	}
	if free != want {
		t.Fatalf("IsFree(%s, %v) = %v, want %v", listingID, r, free, want)
	}
}

func blockOn(t *testing.T, listingID string, r models.DateRange) *models.ExternalBlock {
	t.Helper()
	return &models.ExternalBlock{
		ID:        uuid.New().String(),
		ListingID: listingID,
		Range:     r,
		Source:    models.BlockSourceChannel,
	}
}

// startCheckout creates a hold and opens a payment session for it,
// returning the hold and the fake session.
func startCheckout(t *testing.T, e *Engine, gw *fakeGateway, listingID string, r models.DateRange) (*models.Hold, *payment.Session) {
	t.Helper()
	hold, err := e.CreateHold(listingID, r, time.Minute)
	if err != nil {
		t.Fatalf("CreateHold: %v", err)
	}
	_, err = e.Checkout(context.Background(), CheckoutRequest{
		ListingID: listingID, Range: r, HoldID: hold.ID, SiteKey: "site-a",
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	sess := gw.sessions[fmt.Sprintf("cs_test_%d", len(gw.created))]
	sess.Paid = true
	sess.GuestName = "Pat Guest"
	sess.GuestEmail = "pat@example.com"
	return hold, sess
}
