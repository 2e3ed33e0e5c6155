package repository

import (
	"context"
	"fmt"

	"decor-booking/internal/data/entity"
	"decor-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AddonRepository interface {
	// FindByIDs returns the active addons among ids. Unknown or inactive
	// ids are left out rather than reported.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Addon, error)
	FindAllActive(ctx context.Context) ([]*entity.Addon, error)
}

type addonRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddonRepository(db database.PgxIface, log *zap.Logger) AddonRepository {
	return &addonRepository{
		db:  db,
		log: log.With(zap.String("repository", "addon")),
	}
}

const addonColumns = `id, name, description, price, is_active, created_at, updated_at, deleted_at`

func (ar *addonRepository) queryAddons(ctx context.Context, query string, args ...any) ([]*entity.Addon, error) {
	rows, err := ar.db.Query(ctx, query, args...)
	if err != nil {
		ar.log.Error("Failed to query addons", zap.Error(err))
		return nil, fmt.Errorf("query addons: %w", err)
	}
	defer rows.Close()

	var addons []*entity.Addon
	for rows.Next() {
		var a entity.Addon
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Description,
			&a.Price,
			&a.IsActive,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.DeletedAt,
		)
		if err != nil {
			ar.log.Error("Failed to scan addon row", zap.Error(err))
			return nil, fmt.Errorf("scan addon row: %w", err)
		}
		addons = append(addons, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addon rows: %w", err)
	}

	return addons, nil
}

func (ar *addonRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	query := `
		SELECT ` + addonColumns + `
		FROM addons
		WHERE id = ANY($1::uuid[]) AND deleted_at IS NULL AND is_active = true
		ORDER BY name
	`

	return ar.queryAddons(ctx, query, keys)
}

func (ar *addonRepository) FindAllActive(ctx context.Context) ([]*entity.Addon, error) {
	query := `
		SELECT ` + addonColumns + `
		FROM addons
		WHERE deleted_at IS NULL AND is_active = true
		ORDER BY name
	`

	return ar.queryAddons(ctx, query)
}
