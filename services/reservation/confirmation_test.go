package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"stayloft/services/payment"
)

func TestWebhookCreatesBooking(t *testing.T) {
	e, gw := newTestEngine(t)
	r := dr(t, "2026-09-01", "2026-09-05")

	hold, sess := startCheckout(t, e, gw, "cabin-x", r)
	if err := e.HandleCompletionEvent(completedEventPayload(t, sess), "sig:"+platformSecret); err != nil {
		t.Fatalf("HandleCompletionEvent: %v", err)
	}

	booking, err := e.Bookings.GetBySessionID(sess.ID)
	if err != nil {
		t.Fatalf("GetBySessionID: %v", err)
	}
	if booking == nil {
		t.Fatal("no booking recorded for completed session")
	}
	if booking.ListingID != "cabin-x" || booking.Range != r {
		t.Fatalf("booking covers %s %v, want cabin-x %v", booking.ListingID, booking.Range, r)
	}
	if booking.HostID != "host-a" {
		t.Fatalf("booking host = %s, want host-a", booking.HostID)
	}
	// 4 nights at 10000 plus 5000 cleaning.
	if booking.TotalPrice != 45000 {
		t.Fatalf("booking total = %d, want 45000", booking.TotalPrice)
	}

	// The hold was consumed; the range stays unavailable via the booking.
	if e.Holds.Get(hold.ID) != nil {
		t.Fatal("hold still present after confirmation")
	}
	mustBeFree(t, e, "cabin-x", r, false)

	// Guest contact captured for the host.
	customers, err := e.Customers.ByHost("host-a")
	if err != nil {
		t.Fatalf("Customers.ByHost: %v", err)
	}
	if len(customers) != 1 || customers[0].Email != "pat@example.com" {
		t.Fatalf("customers = %+v, want one record for pat@example.com", customers)
	}
}

func TestWebhookIdempotent(t *testing.T) {
	e, gw := newTestEngine(t)
	_, sess := startCheckout(t, e, gw, "cabin-x", dr(t, "2026-09-01", "2026-09-05"))
	payload := completedEventPayload(t, sess)

	for i := 0; i < 3; i++ {
		if err := e.HandleCompletionEvent(payload, "sig:"+platformSecret); err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}

	bookings, err := e.Bookings.ByHost("host-a")
	if err != nil {
		t.Fatalf("ByHost: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings after redelivery, want 1", len(bookings))
	}
}

func TestWebhookBadSignature(t *testing.T) {
	e, gw := newTestEngine(t)
	_, sess := startCheckout(t, e, gw, "cabin-x", dr(t, "2026-09-01", "2026-09-05"))

	err := e.HandleCompletionEvent(completedEventPayload(t, sess), "sig:wrong")
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("got %v, want ErrBadSignature", err)
	}
	if b, _ := e.Bookings.GetBySessionID(sess.ID); b != nil {
		t.Fatal("rejected event still produced a booking")
	}
}

func TestWebhookHostSecretFallback(t *testing.T) {
	e, gw := newTestEngine(t)
	_, sess := startCheckout(t, e, gw, "cabin-x", dr(t, "2026-09-01", "2026-09-05"))

	// Signed with host-a's secret, not the platform's: verification
	// falls back via the listing metadata to the owning host.
	if err := e.HandleCompletionEvent(completedEventPayload(t, sess), "sig:"+hostSecret); err != nil {
		t.Fatalf("HandleCompletionEvent: %v", err)
	}
	if b, _ := e.Bookings.GetBySessionID(sess.ID); b == nil {
		t.Fatal("no booking from host-signed event")
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	e, gw := newTestEngine(t)
	_, sess := startCheckout(t, e, gw, "cabin-x", dr(t, "2026-09-01", "2026-09-05"))

	payload, err := json.Marshal(payment.Event{Type: "checkout.session.expired", Session: *sess})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	if err := e.HandleCompletionEvent(payload, "sig:"+platformSecret); err != nil {
		t.Fatalf("HandleCompletionEvent: %v", err)
	}
	if b, _ := e.Bookings.GetBySessionID(sess.ID); b != nil {
		t.Fatal("non-completion event produced a booking")
	}
}

func TestConfirmationSurvivesExpiredHold(t *testing.T) {
	e, gw := newTestEngine(t)
	r := dr(t, "2026-09-01", "2026-09-05")

	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e.Now = func() time.Time { return current }

	_, sess := startCheckout(t, e, gw, "cabin-x", r)

	// The hold expires and is reaped while the guest is paying; nothing
	// else claimed the range, so the completion still books.
	current = current.Add(2 * time.Minute)
	e.SweepExpiredHolds()

	if err := e.HandleCompletionEvent(completedEventPayload(t, sess), "sig:"+platformSecret); err != nil {
		t.Fatalf("HandleCompletionEvent: %v", err)
	}
	if b, _ := e.Bookings.GetBySessionID(sess.ID); b == nil {
		t.Fatal("no booking after hold expiry")
	}
}

func TestConfirmationPostPaymentConflict(t *testing.T) {
	e, gw := newTestEngine(t)
	r := dr(t, "2026-09-01", "2026-09-05")

	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e.Now = func() time.Time { return current }

	_, sess := startCheckout(t, e, gw, "cabin-x", r)

	// Hold expires, and a channel block lands on the range before the
	// payment event arrives.
	current = current.Add(2 * time.Minute)
	e.SweepExpiredHolds()
	if err := e.Blocks.Create(blockOn(t, "cabin-x", dr(t, "2026-09-03", "2026-09-04"))); err != nil {
		t.Fatalf("Blocks.Create: %v", err)
	}

	// The webhook path swallows the conflict: the event was processed,
	// the fallout is operator-facing.
	if err := e.HandleCompletionEvent(completedEventPayload(t, sess), "sig:"+platformSecret); err != nil {
		t.Fatalf("HandleCompletionEvent: %v", err)
	}
	if b, _ := e.Bookings.GetBySessionID(sess.ID); b != nil {
		t.Fatal("booking created over a conflicting block")
	}
}

func TestConfirmSessionFallbackPath(t *testing.T) {
	e, gw := newTestEngine(t)
	r := dr(t, "2026-09-01", "2026-09-05")
	_, sess := startCheckout(t, e, gw, "cabin-x", r)

	booking, err := e.ConfirmSession(context.Background(), sess.ID, "site-a")
	if err != nil {
		t.Fatalf("ConfirmSession: %v", err)
	}
	if booking == nil || booking.PaymentSessionID != sess.ID {
		t.Fatalf("booking = %+v, want one for session %s", booking, sess.ID)
	}

	// Second read returns the recorded booking without another
	// processor round-trip.
	calls := gw.getCalls
	again, err := e.ConfirmSession(context.Background(), sess.ID, "site-a")
	if err != nil {
		t.Fatalf("second ConfirmSession: %v", err)
	}
	if again.ID != booking.ID {
		t.Fatalf("second ConfirmSession returned booking %s, want %s", again.ID, booking.ID)
	}
	if gw.getCalls != calls {
		t.Fatalf("second ConfirmSession hit the processor")
	}
}

func TestConfirmationTimestampsUseClock(t *testing.T) {
	e, gw := newTestEngine(t)
	frozen := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e.Now = func() time.Time { return frozen }

	_, sess := startCheckout(t, e, gw, "cabin-x", dr(t, "2026-09-01", "2026-09-05"))
	if err := e.HandleCompletionEvent(completedEventPayload(t, sess), "sig:"+platformSecret); err != nil {
		t.Fatalf("HandleCompletionEvent: %v", err)
	}

	booking, err := e.Bookings.GetBySessionID(sess.ID)
	if err != nil || booking == nil {
		t.Fatalf("GetBySessionID: booking %v, err %v", booking, err)
	}
	if !booking.CreatedAt.Equal(frozen) {
		t.Fatalf("booking CreatedAt = %v, want %v", booking.CreatedAt, frozen)
	}

	customers, err := e.Customers.ByHost("host-a")
	if err != nil {
		t.Fatalf("Customers.ByHost: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("got %d customers, want 1", len(customers))
	}
	if !customers[0].CreatedAt.Equal(frozen) {
		t.Fatalf("customer CreatedAt = %v, want %v", customers[0].CreatedAt, frozen)
	}
}

func TestConfirmSessionUnpaid(t *testing.T) {
	e, gw := newTestEngine(t)
	_, sess := startCheckout(t, e, gw, "cabin-x", dr(t, "2026-09-01", "2026-09-05"))
	sess.Paid = false

	if _, err := e.ConfirmSession(context.Background(), sess.ID, "site-a"); !IsNotFound(err) {
		t.Fatalf("unpaid session: got %v, want NotFoundError", err)
	}
}

func TestConfirmSessionUnknown(t *testing.T) {
	e, _ := newTestEngine(t)

	if _, err := e.ConfirmSession(context.Background(), "cs_missing", ""); !IsNotFound(err) {
		t.Fatalf("unknown session: got %v, want NotFoundError", err)
	}
}
