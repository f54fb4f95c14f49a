package reservation

import (
	"context"
	"fmt"

	"stayloft/models"
	"stayloft/services/payment"
	"stayloft/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandleCompletionEvent is the primary (webhook) confirmation path: it
// verifies the signed payment event and reconciles it into a booking.
//
// Verification tries the platform signing secret first; on failure the
// owning host is resolved from the event's listing metadata and
// verification is retried with that host's secret. If both fail the
// event is rejected with ErrBadSignature and no state changes.
func (e *Engine) HandleCompletionEvent(payload []byte, sigHeader string) error {
	event, err := e.Gateway.VerifyEvent(payload, sigHeader, e.PlatformCreds.SigningSecret)
	if err != nil {
		event, err = e.verifyWithHostSecret(payload, sigHeader)
		if err != nil {
			return ErrBadSignature
		}
	}

	if event.Type != payment.EventCheckoutCompleted {
		// Other event types are acknowledged and ignored.
		return nil
	}

	_, err = e.confirm(&event.Session)
	if IsConflict(err) {
		// Payment already succeeded; the conflict is operator-facing
		// only. The event itself was processed.
		return nil
	}
	return err
}

func (e *Engine) verifyWithHostSecret(payload []byte, sigHeader string) (*payment.Event, error) {
	peeked, err := e.Gateway.PeekEvent(payload)
	if err != nil {
		return nil, err
	}
	listingID := peeked.Session.Metadata[metaListingID]
	if listingID == "" {
		return nil, fmt.Errorf("event carries no listing metadata")
	}
	host := e.Hosts.OwnerOf(listingID)
	if host == nil || host.Payment.SigningSecret == "" {
		return nil, fmt.Errorf("no host signing secret for listing %s", listingID)
	}
	return e.Gateway.VerifyEvent(payload, sigHeader, host.Payment.SigningSecret)
}

// ConfirmSession is the fallback (read) confirmation path: when a guest
// lands on the confirmation page with a session ID and no booking has
// been recorded for it, the session is read directly from the processor
// and run through the same confirmation logic. Covers webhook delivery
// failure or delay.
func (e *Engine) ConfirmSession(ctx context.Context, sessionID, siteKey string) (*models.Booking, error) {
	if existing, err := e.Bookings.GetBySessionID(sessionID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	creds := e.PlatformCreds
	if siteKey != "" {
		if host := e.Hosts.HostBySiteKey(siteKey); host != nil {
			creds = e.credentialsFor(host)
		}
	}

	sess, err := e.Gateway.GetCheckoutSession(ctx, sessionID, creds.SecretKey)
	if err != nil {
		return nil, &NotFoundError{Kind: "payment session", ID: sessionID}
	}
	if !sess.Paid {
		return nil, &NotFoundError{Kind: "completed payment session", ID: sessionID}
	}

	return e.confirm(sess)
}

// confirm is the single reconciliation routine both paths converge on.
// It records a booking exactly once per payment session.
func (e *Engine) confirm(sess *payment.Session) (*models.Booking, error) {
	logger := utils.GetLogger()

	listingID := sess.Metadata[metaListingID]
	holdID := sess.Metadata[metaHoldID]
	r, err := models.NewDateRange(sess.Metadata[metaStart], sess.Metadata[metaEnd])
	if err != nil {
		return nil, fmt.Errorf("payment session %s carries invalid range metadata: %w", sess.ID, err)
	}

	listing := e.Listings.Listing(listingID)
	if listing == nil {
		return nil, fmt.Errorf("payment session %s references unknown listing %s", sess.ID, listingID)
	}
	host := e.Hosts.OwnerOf(listingID)
	if host == nil {
		return nil, fmt.Errorf("no host owns listing %s for payment session %s", listingID, sess.ID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Idempotence: a session already reconciled never books twice.
	if existing, err := e.Bookings.GetBySessionID(sess.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	// Consume the hold if it still exists. Its absence is tolerated —
	// it may have expired while the guest was paying — because the
	// availability re-check below is the real gate.
	if holdID != "" {
		e.Holds.Take(holdID)
	}

	free, err := e.isFreeLocked(listingID, r)
	if err != nil {
		return nil, err
	}
	if !free {
		// Payment succeeded but the range was taken in the meantime.
		// No booking, no automatic refund: logged for operator
		// follow-up.
		logger.Error("post-payment availability conflict, booking not created",
			zap.String("sessionID", sess.ID),
			zap.String("listingID", listingID),
			zap.String("start", r.Start),
			zap.String("end", r.End))
		return nil, &ConflictError{ListingID: listingID, Range: r}
	}

	booking := &models.Booking{
		ID:               uuid.New().String(),
		HostID:           host.ID,
		ListingID:        listingID,
		Range:            r,
		Status:           models.BookingStatusConfirmed,
		GuestName:        sess.GuestName,
		GuestEmail:       sess.GuestEmail,
		GuestPhone:       sess.GuestPhone,
		PaymentSessionID: sess.ID,
		TotalPrice:       listing.TotalPrice(r.Nights()),
		Currency:         listing.Currency,
		CreatedAt:        e.now(),
	}
	if err := e.Bookings.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to record booking for session %s: %w", sess.ID, err)
	}

	if sess.GuestEmail != "" {
		customer := &models.Customer{
			ID:        uuid.New().String(),
			HostID:    host.ID,
			Name:      sess.GuestName,
			Email:     sess.GuestEmail,
			Phone:     sess.GuestPhone,
			CreatedAt: e.now(),
		}
		if err := e.Customers.Upsert(customer); err != nil {
			logger.Warn("failed to record customer for booking",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	logger.Info("booking confirmed",
		zap.String("bookingID", booking.ID),
		zap.String("listingID", listingID),
		zap.String("sessionID", sess.ID))
	return booking, nil
}
