package response

import "decor-booking/internal/data/entity"

type ThemeResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Occasion    string   `json:"occasion"`
	Description *string  `json:"description,omitempty"`
	BasePrice   float64  `json:"basePrice"`
	Images      []string `json:"images"`
}

type AddonResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

func ThemeToResponse(t *entity.Theme) ThemeResponse {
	images := t.Images
	if images == nil {
		images = []string{}
	}

	return ThemeResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Slug:        t.Slug,
		Occasion:    t.Occasion,
		Description: t.Description,
		BasePrice:   t.BasePrice,
		Images:      images,
	}
}

func AddonToResponse(a *entity.Addon) AddonResponse {
	return AddonResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Description: a.Description,
		Price:       a.Price,
	}
}
