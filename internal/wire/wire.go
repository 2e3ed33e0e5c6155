package wire

import (
	"net/http"
	"time"

	"decor-booking/internal/adaptor"
	"decor-booking/internal/data/repository"
	"decor-booking/internal/idempotency"
	"decor-booking/internal/payment"
	"decor-booking/internal/usecase"
	"decor-booking/pkg/middleware"
	"decor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the wired router and the services background jobs need.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(
	repo *repository.Repository,
	checkout payment.CheckoutProvider,
	idem idempotency.Store,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, checkout, idem, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if config.App.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(chimw.Timeout(30 * time.Second))

	limiter := middleware.NewIPRateLimiter(config.RateLimit)
	limited := middleware.RateLimit(limiter, logger)

	wireCatalog(r, handler.Catalog)
	wireAvailability(r, handler.Availability)
	wirePricing(r, handler.Pricing, limited)
	wireBooking(r, handler.Booking, limited, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
