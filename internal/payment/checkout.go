// Package payment hands payment collection to a hosted checkout page.
package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
)

// CheckoutRequest describes one hosted checkout for one booking.
type CheckoutRequest struct {
	BookingID     uuid.UUID
	CustomerID    uuid.UUID
	OrderID       string
	AmountMinor   int64
	Currency      string
	ProductName   string
	Description   string
	CustomerEmail string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type CheckoutProvider interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// ExpireSession closes an open session so its URL can no longer be paid.
	ExpireSession(ctx context.Context, sessionID string) error
}

// ErrorDetail returns the provider's own message for err when there is one.
func ErrorDetail(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}

// withBookingID appends bookingId to a redirect URL. Stripe placeholders
// such as {CHECKOUT_SESSION_ID} are left untouched.
func withBookingID(rawURL string, bookingID uuid.UUID) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "bookingId=" + bookingID.String()
}
