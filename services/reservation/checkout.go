package reservation

import (
	"context"
	"fmt"

	"stayloft/models"
	"stayloft/services/payment"
)

// Metadata keys round-tripped through the payment processor. The
// reconciler reads these back out of the completed session.
const (
	metaListingID = "listingId"
	metaStart     = "start"
	metaEnd       = "end"
	metaHoldID    = "holdId"
	metaSiteKey   = "site"
)

// CheckoutRequest carries what the orchestrator needs to open a payment
// session: the held range plus the originating property site, used to
// link the guest back to the right site after payment.
type CheckoutRequest struct {
	ListingID string
	Range     models.DateRange
	HoldID    string
	SiteKey   string
}

// Checkout resolves the owning host and its payment routing, opens a
// payment session carrying the hold's identifiers as metadata, and
// returns the redirect URL. It mutates no booking state; failure to
// reach the processor surfaces as an error with no inline retry.
func (e *Engine) Checkout(ctx context.Context, req CheckoutRequest) (string, error) {
	listing := e.Listings.Listing(req.ListingID)
	if listing == nil {
		return "", &NotFoundError{Kind: "listing", ID: req.ListingID}
	}
	host := e.Hosts.OwnerOf(req.ListingID)
	if host == nil {
		return "", &NotFoundError{Kind: "host for listing", ID: req.ListingID}
	}

	hold := e.Holds.Get(req.HoldID)
	if hold == nil || !hold.Live(e.now()) {
		return "", &NotFoundError{Kind: "hold", ID: req.HoldID}
	}
	if hold.ListingID != req.ListingID || hold.Range != req.Range {
		return "", fmt.Errorf("hold %s does not cover listing %s range %s to %s",
			req.HoldID, req.ListingID, req.Range.Start, req.Range.End)
	}

	creds := e.credentialsFor(host)
	spec := payment.CheckoutSpec{
		LineTitle:  fmt.Sprintf("%s: %s to %s", listing.Title, req.Range.Start, req.Range.End),
		Amount:     listing.TotalPrice(req.Range.Nights()),
		Currency:   listing.Currency,
		SuccessURL: e.URLs.Success,
		CancelURL:  e.URLs.Cancel,
		APIKey:     creds.SecretKey,
		Metadata: map[string]string{
			metaListingID: req.ListingID,
			metaStart:     req.Range.Start,
			metaEnd:       req.Range.End,
			metaHoldID:    req.HoldID,
			metaSiteKey:   req.SiteKey,
		},
	}

	sess, err := e.Gateway.CreateCheckoutSession(ctx, spec)
	if err != nil {
		return "", fmt.Errorf("failed to open payment session: %w", err)
	}
	return sess.URL, nil
}

// credentialsFor returns the host's payment credentials, falling back
// to the platform defaults when the host has none configured.
func (e *Engine) credentialsFor(host *models.Host) models.PaymentCredentials {
	creds := e.PlatformCreds
	if host.Payment.SecretKey != "" {
		creds.SecretKey = host.Payment.SecretKey
	}
	if host.Payment.SigningSecret != "" {
		creds.SigningSecret = host.Payment.SigningSecret
	}
	return creds
}
