package adaptor

import (
	"net/http"

	"decor-booking/internal/dto/request"
	"decor-booking/internal/usecase"
	"decor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListThemes handles GET /api/themes
func (h *CatalogHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListThemesRequest{
		PaginatedRequest: request.PaginatedRequest{
			Limit:  utils.ParseInt(query.Get("limit"), request.DefaultLimit),
			Offset: utils.ParseOffset(query.Get("offset")),
		},
		Occasion: query.Get("occasion"),
	}

	themes, err := h.service.ListThemes(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list themes")
		return
	}

	utils.ResponseSuccess(w, "Themes retrieved successfully", themes)
}

// GetTheme handles GET /api/themes/{id}
func (h *CatalogHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.service.GetTheme(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get theme")
		return
	}

	utils.ResponseSuccess(w, "Theme retrieved successfully", theme)
}

// ListAddons handles GET /api/addons
func (h *CatalogHandler) ListAddons(w http.ResponseWriter, r *http.Request) {
	addons, err := h.service.ListAddons(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list addons")
		return
	}

	utils.ResponseSuccess(w, "Addons retrieved successfully", addons)
}
