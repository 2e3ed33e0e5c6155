package adaptor

import (
	"net/http"

	"decor-booking/internal/dto/request"
	"decor-booking/internal/usecase"
	"decor-booking/pkg/utils"

	"go.uber.org/zap"
)

type PricingHandler struct {
	service usecase.PricingService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

// Quote handles POST /api/pricing/quote
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.PriceQuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote price")
		return
	}

	utils.ResponseSuccess(w, "Price estimated", quote)
}

// ThemeQuote handles POST /api/pricing/theme-quote
func (h *PricingHandler) ThemeQuote(w http.ResponseWriter, r *http.Request) {
	var req request.ThemeQuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.service.ThemeQuote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote theme price")
		return
	}

	utils.ResponseSuccess(w, "Price calculated", quote)
}
