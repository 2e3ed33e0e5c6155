package wire

import (
	"decor-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Route("/api/themes", func(r chi.Router) {
		// GET /api/themes?occasion= - Active themes, paginated
		r.Get("/", catalogHandler.ListThemes)

		// GET /api/themes/{id} - Theme detail
		r.Get("/{id}", catalogHandler.GetTheme)
	})

	// GET /api/addons - Active addons
	r.Get("/api/addons", catalogHandler.ListAddons)
}
