package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"decor-booking/internal/usecase"
	"decor-booking/pkg/apperror"
	"decor-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	Booking      *BookingHandler
	Availability *AvailabilityHandler
	Pricing      *PricingHandler
	Catalog      *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking:      NewBookingHandler(service.Booking, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Pricing:      NewPricingHandler(service.Pricing, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
	}
}

// decodeJSON reads a JSON body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "Invalid request body"
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			msg = "Request body is required"
		case errors.As(err, &maxErr):
			msg = "Request body too large"
		}
		utils.ResponseBadRequest(w, msg, nil)
		return false
	}

	return true
}

// handleServiceError writes err as the error envelope. Client errors are
// logged at warn, everything else at error with the cause. Causes are
// never sent to the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr := apperror.From(err)

	if appErr.Status >= http.StatusInternalServerError {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("code", string(appErr.Code)),
		)
	} else {
		log.Warn(operation+" failed",
			zap.String("operation", operation),
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
		)
	}

	utils.ResponseError(w, appErr)
}
