package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

const venueColumns = `id, event_id, name, address, capacity, transportation_score, map_url, is_outdoor`

func scanVenue(row rowScanner) (*domain.VenueSuggestion, error) {
	v := &domain.VenueSuggestion{}
	var mapURL sql.NullString
	if err := row.Scan(&v.ID, &v.EventID, &v.Name, &v.Address, &v.Capacity, &v.TransportationScore, &mapURL, &v.IsOutdoor); err != nil {
		return nil, err
	}
	if mapURL.Valid {
		v.MapURL = &mapURL.String
	}
	return v, nil
}

func (r *venueRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.VenueSuggestion, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx,
		`SELECT `+venueColumns+` FROM venue_suggestions WHERE event_id = $1 ORDER BY transportation_score DESC, name`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*domain.VenueSuggestion, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.VenueSuggestion, error) {
	v, err := scanVenue(conn(ctx, r.DB).QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venue_suggestions WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *venueRepository) Update(ctx context.Context, v *domain.VenueSuggestion) error {
	query := `
		UPDATE venue_suggestions
		SET name = $1, address = $2, capacity = $3, transportation_score = $4, map_url = $5, is_outdoor = $6
		WHERE id = $7
	`
	return requireOne(conn(ctx, r.DB).ExecContext(ctx, query,
		v.Name, v.Address, v.Capacity, v.TransportationScore, v.MapURL, v.IsOutdoor, v.ID))
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "venue_suggestions", id)
}

func (r *venueRepository) ReplaceForEvent(ctx context.Context, eventID string, venues []*domain.VenueSuggestion) error {
	q := conn(ctx, r.DB)
	if _, err := q.ExecContext(ctx, `DELETE FROM venue_suggestions WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	query := `
		INSERT INTO venue_suggestions (event_id, name, address, capacity, transportation_score, map_url, is_outdoor)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	for _, v := range venues {
		v.EventID = eventID
		if err := q.QueryRowContext(ctx, query,
			v.EventID, v.Name, v.Address, v.Capacity, v.TransportationScore, v.MapURL, v.IsOutdoor,
		).Scan(&v.ID); err != nil {
			return err
		}
	}
	return nil
}
