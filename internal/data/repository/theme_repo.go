package repository

import (
	"context"
	"errors"
	"fmt"

	"decor-booking/internal/data/entity"
	"decor-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ThemeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Theme, error)
	FindAll(ctx context.Context, occasion *string, limit, offset int) ([]*entity.Theme, error)
	CountAll(ctx context.Context, occasion *string) (int64, error)
}

type themeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewThemeRepository(db database.PgxIface, log *zap.Logger) ThemeRepository {
	return &themeRepository{
		db:  db,
		log: log.With(zap.String("repository", "theme")),
	}
}

const themeColumns = `id, name, slug, occasion, description, base_price, images, is_active,
	created_at, updated_at, deleted_at`

func scanTheme(row rowScanner) (*entity.Theme, error) {
	var theme entity.Theme
	err := row.Scan(
		&theme.ID,
		&theme.Name,
		&theme.Slug,
		&theme.Occasion,
		&theme.Description,
		&theme.BasePrice,
		&theme.Images,
		&theme.IsActive,
		&theme.CreatedAt,
		&theme.UpdatedAt,
		&theme.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

// FindByID returns soft-deleted themes as missing. Inactive themes are
// still returned so older bookings can resolve them.
func (tr *themeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theme, error) {
	query := `SELECT ` + themeColumns + ` FROM themes WHERE id = $1 AND deleted_at IS NULL`

	theme, err := scanTheme(tr.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		tr.log.Error("Failed to find theme by ID",
			zap.Error(err),
			zap.String("theme_id", id.String()),
		)
		return nil, fmt.Errorf("find theme by ID %s: %w", id.String(), err)
	}

	return theme, nil
}

func (tr *themeRepository) FindAll(ctx context.Context, occasion *string, limit, offset int) ([]*entity.Theme, error) {
	query := `
		SELECT ` + themeColumns + `
		FROM themes
		WHERE deleted_at IS NULL AND is_active = true
		  AND ($1::text IS NULL OR occasion = $1)
		ORDER BY base_price ASC, name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := tr.db.Query(ctx, query, occasion, limit, offset)
	if err != nil {
		tr.log.Error("Failed to list themes",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list themes: %w", err)
	}
	defer rows.Close()

	var themes []*entity.Theme
	for rows.Next() {
		theme, err := scanTheme(rows)
		if err != nil {
			tr.log.Error("Failed to scan theme row", zap.Error(err))
			return nil, fmt.Errorf("scan theme row: %w", err)
		}
		themes = append(themes, theme)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate theme rows: %w", err)
	}

	return themes, nil
}

func (tr *themeRepository) CountAll(ctx context.Context, occasion *string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM themes
		WHERE deleted_at IS NULL AND is_active = true
		  AND ($1::text IS NULL OR occasion = $1)
	`

	var count int64
	if err := tr.db.QueryRow(ctx, query, occasion).Scan(&count); err != nil {
		tr.log.Error("Failed to count themes", zap.Error(err))
		return 0, fmt.Errorf("count themes: %w", err)
	}

	return count, nil
}
