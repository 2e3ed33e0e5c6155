package usecase

import (
	"context"
	"fmt"
	"strings"

	"decor-booking/internal/data/entity"
	"decor-booking/internal/data/repository"
	"decor-booking/internal/dto/request"
	"decor-booking/internal/dto/response"
	"decor-booking/internal/pricing"
	"decor-booking/pkg/apperror"
	"decor-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingService interface {
	// Quote is the estimate shown before a theme is chosen.
	Quote(ctx context.Context, req *request.PriceQuoteRequest) (*response.PriceQuoteResponse, error)
	// ThemeQuote prices a theme exactly as booking submission will.
	ThemeQuote(ctx context.Context, req *request.ThemeQuoteRequest) (*response.PriceQuoteResponse, error)
}

type pricingService struct {
	repo     *repository.Repository
	currency string
	log      *zap.Logger
}

func NewPricingService(repo *repository.Repository, currency string, log *zap.Logger) PricingService {
	return &pricingService{
		repo:     repo,
		currency: currency,
		log:      log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) Quote(ctx context.Context, req *request.PriceQuoteRequest) (*response.PriceQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	addons, _, err := resolveAddons(ctx, s.repo.Addon, req.Addons, false)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.CalculateDetailedPrice(req.Occasion, req.BudgetRange, req.GuestCount, req.City, addons)
	resp := response.NewPriceQuoteResponse(breakdown, s.currency)
	return &resp, nil
}

func (s *pricingService) ThemeQuote(ctx context.Context, req *request.ThemeQuoteRequest) (*response.PriceQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	theme, err := findActiveTheme(ctx, s.repo.Theme, req.ThemeID)
	if err != nil {
		return nil, err
	}

	addons, _, err := resolveAddons(ctx, s.repo.Addon, req.Addons, true)
	if err != nil {
		return nil, err
	}

	breakdown := pricing.CalculateThemePrice(theme.BasePrice, req.GuestCount, req.City, addons)
	resp := response.NewPriceQuoteResponse(breakdown, s.currency)
	return &resp, nil
}

// findActiveTheme maps missing, deleted and inactive themes to THEME_NOT_FOUND.
func findActiveTheme(ctx context.Context, themes repository.ThemeRepository, themeID string) (*entity.Theme, error) {
	id, err := uuid.Parse(themeID)
	if err != nil {
		return nil, apperror.Validation("invalid theme ID", map[string]string{"themeId": "Must be a valid UUID"})
	}

	theme, err := themes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find theme %s: %w", themeID, err)
	}
	if theme == nil || !theme.IsActive {
		return nil, apperror.ErrThemeNotFound.WithMessage("theme %s not found", themeID)
	}

	return theme, nil
}

// resolveAddons looks up the catalog price of each selected addon, ignoring
// duplicates. With strict, ids that are unknown or inactive are a
// VALIDATION_ERROR; otherwise they are dropped from the quote.
func resolveAddons(ctx context.Context, addons repository.AddonRepository, ids []string, strict bool) ([]pricing.Addon, []*entity.Addon, error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	keys := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			if strict {
				return nil, nil, apperror.Validation("invalid addon ID", map[string]string{"addons": raw + " is not a valid UUID"})
			}
			continue
		}
		if !seen[id] {
			seen[id] = true
			keys = append(keys, id)
		}
	}

	found, err := addons.FindByIDs(ctx, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve addons: %w", err)
	}

	if strict && len(found) != len(keys) {
		known := make(map[uuid.UUID]bool, len(found))
		for _, a := range found {
			known[a.ID] = true
		}
		var unknown []string
		for _, id := range keys {
			if !known[id] {
				unknown = append(unknown, id.String())
			}
		}
		return nil, nil, apperror.Validation("unknown or unavailable addons", map[string]string{
			"addons": strings.Join(unknown, ", "),
		})
	}

	priced := make([]pricing.Addon, len(found))
	for i, a := range found {
		priced[i] = pricing.Addon{ID: a.ID.String(), Price: a.Price}
	}

	return priced, found, nil
}
