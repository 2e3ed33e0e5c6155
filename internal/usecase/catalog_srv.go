package usecase

import (
	"context"
	"fmt"

	"decor-booking/internal/data/repository"
	"decor-booking/internal/dto/request"
	"decor-booking/internal/dto/response"
	"decor-booking/internal/pricing"
	"decor-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListThemes(ctx context.Context, req *request.ListThemesRequest) (*response.PaginatedResponse[response.ThemeResponse], error)
	GetTheme(ctx context.Context, themeID string) (*response.ThemeResponse, error)
	ListAddons(ctx context.Context) ([]response.AddonResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListThemes(ctx context.Context, req *request.ListThemesRequest) (*response.PaginatedResponse[response.ThemeResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	limit := req.GetLimit()
	offset := req.GetOffset()

	var occasion *string
	if req.Occasion != "" {
		o := pricing.NormalizeOccasion(req.Occasion)
		occasion = &o
	}

	themes, err := s.repo.Theme.FindAll(ctx, occasion, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get themes: %w", err)
	}

	total, err := s.repo.Theme.CountAll(ctx, occasion)
	if err != nil {
		return nil, fmt.Errorf("count themes: %w", err)
	}

	items := make([]response.ThemeResponse, 0, len(themes))
	for _, t := range themes {
		items = append(items, response.ThemeToResponse(t))
	}

	return response.NewPaginatedResponse(items, limit, offset, total), nil
}

func (s *catalogService) GetTheme(ctx context.Context, themeID string) (*response.ThemeResponse, error) {
	theme, err := findActiveTheme(ctx, s.repo.Theme, themeID)
	if err != nil {
		return nil, err
	}

	resp := response.ThemeToResponse(theme)
	return &resp, nil
}

func (s *catalogService) ListAddons(ctx context.Context) ([]response.AddonResponse, error) {
	addons, err := s.repo.Addon.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get addons: %w", err)
	}

	items := make([]response.AddonResponse, 0, len(addons))
	for _, a := range addons {
		items = append(items, response.AddonToResponse(a))
	}

	return items, nil
}
