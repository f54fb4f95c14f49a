package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeGateway implements Gateway against the Stripe API. A fresh
// client is built per call because the API key routes to a different
// Stripe account depending on the owning host.
type StripeGateway struct{}

// NewStripeGateway creates a Stripe-backed payment gateway.
func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func apiClient(apiKey string) *client.API {
	api := &client.API{}
	api.Init(apiKey, nil)
	return api
}

// CreateCheckoutSession opens a Stripe Checkout session in payment mode.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, spec CheckoutSpec) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(spec.SuccessURL),
		CancelURL:  stripe.String(spec.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(spec.Currency),
					UnitAmount: stripe.Int64(spec.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(spec.LineTitle),
					},
				},
			},
		},
	}
	params.Context = ctx
	for k, v := range spec.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := apiClient(spec.APIKey).CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session creation failed: %w", err)
	}
	return fromStripeSession(sess), nil
}

// GetCheckoutSession reads a session directly from Stripe.
func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID, apiKey string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := apiClient(apiKey).CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session %s fetch failed: %w", sessionID, err)
	}
	return fromStripeSession(sess), nil
}

// VerifyEvent checks the Stripe-Signature header against the secret.
func (g *StripeGateway) VerifyEvent(payload []byte, sigHeader, signingSecret string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, signingSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe event signature verification failed: %w", err)
	}
	return fromStripeEvent(&event)
}

// PeekEvent parses the payload without signature verification.
func (g *StripeGateway) PeekEvent(payload []byte) (*Event, error) {
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("malformed stripe event payload: %w", err)
	}
	return fromStripeEvent(&event)
}

func fromStripeEvent(event *stripe.Event) (*Event, error) {
	out := &Event{Type: string(event.Type)}
	if event.Type != EventCheckoutCompleted {
		return out, nil
	}
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session from event: %w", err)
	}
	out.Session = *fromStripeSession(&sess)
	return out, nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *Session {
	out := &Session{
		ID:       sess.ID,
		URL:      sess.URL,
		Metadata: sess.Metadata,
		Paid:     sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
	if sess.CustomerDetails != nil {
		out.GuestName = sess.CustomerDetails.Name
		out.GuestEmail = sess.CustomerDetails.Email
		out.GuestPhone = sess.CustomerDetails.Phone
	}
	return out
}
