package response

import "decor-booking/internal/pricing"

// PriceQuoteResponse is a breakdown plus what a TOKEN checkout would collect.
type PriceQuoteResponse struct {
	pricing.PriceBreakdown
	DepositAmount float64 `json:"depositAmount"`
	Currency      string  `json:"currency"`
}

func NewPriceQuoteResponse(b pricing.PriceBreakdown, currency string) PriceQuoteResponse {
	return PriceQuoteResponse{
		PriceBreakdown: b,
		DepositAmount:  pricing.DepositAmount(b.FinalAmount),
		Currency:       currency,
	}
}
