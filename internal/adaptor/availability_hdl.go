package adaptor

import (
	"net/http"

	"decor-booking/internal/dto/request"
	"decor-booking/internal/usecase"
	"decor-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// CheckAvailability handles GET /api/availability?date=&city=&pincode=
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.AvailabilityRequest{
		Date:    query.Get("date"),
		City:    query.Get("city"),
		Pincode: query.Get("pincode"),
	}

	availability, err := h.service.CheckAvailability(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "Availability retrieved successfully", availability)
}

// GetSlots handles GET /api/slots
func (h *AvailabilityHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Slots retrieved successfully", h.service.Slots())
}
