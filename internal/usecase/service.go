package usecase

import (
	"time"

	"decor-booking/internal/data/repository"
	"decor-booking/internal/idempotency"
	"decor-booking/internal/payment"
	"decor-booking/pkg/apperror"
	"decor-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Pricing      PricingService
	Availability AvailabilityService
	Catalog      CatalogService
	Booking      BookingService
}

func NewService(
	repo *repository.Repository,
	checkout payment.CheckoutProvider,
	idem idempotency.Store,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	clk := newClock(config.App.Timezone, log)

	return &Service{
		Pricing:      NewPricingService(repo, config.Stripe.Currency, log),
		Availability: NewAvailabilityService(repo.Booking, clk, config.Booking.BypassSlotCheck, log),
		Catalog:      NewCatalogService(repo, log),
		Booking:      NewBookingService(repo, checkout, idem, clk, config, log),
	}
}

// clock decides what "today" is for booking dates. Dates are calendar days
// in the business timezone, carried as UTC midnight.
type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(timezone string, log *zap.Logger) clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Warn("Unknown timezone, falling back to UTC",
			zap.String("timezone", timezone),
			zap.Error(err),
		)
		loc = time.UTC
	}
	return clock{now: time.Now, loc: loc}
}

func (c clock) today() time.Time {
	n := c.now().In(c.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate parses YYYY-MM-DD and rejects days before today.
func (c clock) parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid date", map[string]string{
			"date": "Must match format 2006-01-02",
		})
	}

	if date.Before(c.today()) {
		return time.Time{}, apperror.Validation("date cannot be in the past", map[string]string{
			"date": "Must be today or later",
		})
	}

	return date, nil
}

func validationError(errs map[string]string) error {
	return apperror.Validation("validation failed: "+utils.FormatValidationErrors(errs), errs)
}
