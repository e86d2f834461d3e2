package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type visualAssetRepository struct {
	DB *sql.DB
}

func NewVisualAssetRepository(db *sql.DB) domain.VisualAssetRepository {
	return &visualAssetRepository{DB: db}
}

const visualAssetColumns = `id, event_id, image_url, headline, subheadline, tone, color_scheme, font_style, layout_style, created_at`

func scanVisualAsset(row rowScanner) (*domain.VisualAsset, error) {
	a := &domain.VisualAsset{}
	err := row.Scan(&a.ID, &a.EventID, &a.ImageURL, &a.Headline, &a.Subheadline, &a.Tone, &a.ColorScheme, &a.FontStyle, &a.LayoutStyle, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *visualAssetRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.VisualAsset, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx,
		`SELECT `+visualAssetColumns+` FROM visual_assets WHERE event_id = $1 ORDER BY created_at DESC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	assets := make([]*domain.VisualAsset, 0)
	for rows.Next() {
		a, err := scanVisualAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *visualAssetRepository) GetByID(ctx context.Context, id string) (*domain.VisualAsset, error) {
	a, err := scanVisualAsset(conn(ctx, r.DB).QueryRowContext(ctx, `SELECT `+visualAssetColumns+` FROM visual_assets WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *visualAssetRepository) Create(ctx context.Context, a *domain.VisualAsset) error {
	query := `
		INSERT INTO visual_assets (event_id, image_url, headline, subheadline, tone, color_scheme, font_style, layout_style)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		a.EventID, a.ImageURL, a.Headline, a.Subheadline, a.Tone, a.ColorScheme, a.FontStyle, a.LayoutStyle,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *visualAssetRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "visual_assets", id)
}
