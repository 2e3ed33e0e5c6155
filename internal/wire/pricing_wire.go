package wire

import (
	"net/http"

	"decor-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler, limited func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/pricing", func(r chi.Router) {
		r.Use(limited)

		// POST /api/pricing/quote - Estimate for an occasion and budget range
		r.Post("/quote", pricingHandler.Quote)

		// POST /api/pricing/theme-quote - Exact quote for a theme
		r.Post("/theme-quote", pricingHandler.ThemeQuote)
	})
}
