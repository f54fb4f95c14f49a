package payment

import "context"

// EventCheckoutCompleted is the completion event type the reconciler consumes.
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutSpec describes a payment session to open with the processor.
type CheckoutSpec struct {
	LineTitle  string            // what the guest sees on the payment page
	Amount     int64             // total charge in minor currency units
	Currency   string            // ISO 4217
	SuccessURL string            // processor redirect after payment
	CancelURL  string            // processor redirect on abandonment
	Metadata   map[string]string // opaque, round-tripped by the processor
	APIKey     string            // per-host routing credential
}

// Session is the processor's view of a payment session.
type Session struct {
	ID         string
	URL        string // redirect URL for the guest
	Metadata   map[string]string
	Paid       bool
	GuestName  string
	GuestEmail string
	GuestPhone string
}

// Event is a payment-completion notification from the processor.
type Event struct {
	Type    string
	Session Session
}

// Gateway abstracts the external payment processor. The engine only
// needs session creation with metadata, signed-event verification, and
// a direct session read for the webhook fallback path.
type Gateway interface {
	// CreateCheckoutSession opens a payment session and returns it with
	// the guest redirect URL populated.
	CreateCheckoutSession(ctx context.Context, spec CheckoutSpec) (*Session, error)
	// GetCheckoutSession reads a session directly from the processor.
	GetCheckoutSession(ctx context.Context, sessionID, apiKey string) (*Session, error)
	// VerifyEvent checks the event signature against the given signing
	// secret and returns the parsed event.
	VerifyEvent(payload []byte, sigHeader, signingSecret string) (*Event, error)
	// PeekEvent parses an event payload without verifying its
	// signature, used only to resolve which host's signing secret to
	// retry verification with.
	PeekEvent(payload []byte) (*Event, error)
}
