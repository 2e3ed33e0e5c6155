package wire

import (
	"decor-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/availability?date=&city=&pincode= - Slot availability for a day
	r.Get("/api/availability", availabilityHandler.CheckAvailability)

	// GET /api/slots - The fixed slot catalog
	r.Get("/api/slots", availabilityHandler.GetSlots)
}
