package wire

import (
	"net/http"

	"decor-booking/internal/adaptor"
	"decor-booking/pkg/middleware"
	"decor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	limited func(http.Handler) http.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings - Submit a booking and get a checkout URL
	r.With(limited).Post("/api/bookings", bookingHandler.CreateBooking)

	// GET /api/bookings - List bookings, filterable by customerId and status
	r.Get("/api/bookings", bookingHandler.ListBookings)

	// GET /api/bookings/{id} - Booking detail with addons
	r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthJWT(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(utils.RoleAdmin, log))

		// PATCH /api/admin/bookings/{id}/status - Move a booking through its lifecycle
		r.Patch("/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
