package payment

import (
	"context"
	"fmt"

	"decor-booking/pkg/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

type StripeCheckout struct {
	client     *session.Client
	successURL string
	cancelURL  string
	log        *zap.Logger
}

func NewStripeCheckout(config utils.StripeConfig, log *zap.Logger) *StripeCheckout {
	return &StripeCheckout{
		client: &session.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: config.SecretKey,
		},
		successURL: config.SuccessURL,
		cancelURL:  config.CancelURL,
		log:        log.With(zap.String("provider", "stripe")),
	}
}

func (s *StripeCheckout) buildParams(ctx context.Context, req CheckoutRequest) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ProductName),
						Description: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(withBookingID(s.successURL, req.BookingID)),
		CancelURL:         stripe.String(withBookingID(s.cancelURL, req.BookingID)),
		ClientReferenceID: stripe.String(req.OrderID),
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	params.AddMetadata("bookingId", req.BookingID.String())
	params.AddMetadata("customerId", req.CustomerID.String())
	params.AddMetadata("orderId", req.OrderID)

	// A retried create for the same booking returns the same session
	params.SetIdempotencyKey(req.BookingID.String())
	params.Context = ctx

	return params
}

func (s *StripeCheckout) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	sess, err := s.client.New(s.buildParams(ctx, req))
	if err != nil {
		s.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("booking_id", req.BookingID.String()),
			zap.Int64("amount_minor", req.AmountMinor),
		)
		return nil, fmt.Errorf("create checkout session for booking %s: %w", req.BookingID.String(), err)
	}

	s.log.Info("Checkout session created",
		zap.String("booking_id", req.BookingID.String()),
		zap.String("session_id", sess.ID),
	)

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (s *StripeCheckout) ExpireSession(ctx context.Context, sessionID string) error {
	params := &stripe.CheckoutSessionExpireParams{}
	params.Context = ctx

	if _, err := s.client.Expire(sessionID, params); err != nil {
		s.log.Error("Failed to expire checkout session",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return fmt.Errorf("expire checkout session %s: %w", sessionID, err)
	}

	s.log.Info("Checkout session expired", zap.String("session_id", sessionID))
	return nil
}
