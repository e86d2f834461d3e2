package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventplanner/internal/domain"
)

type eventVersionRepository struct {
	DB *sql.DB
}

func NewEventVersionRepository(db *sql.DB) domain.EventVersionRepository {
	return &eventVersionRepository{DB: db}
}

func scanVersion(row rowScanner) (*domain.EventVersion, error) {
	v := &domain.EventVersion{}
	var createdBy sql.NullString
	var raw []byte
	if err := row.Scan(&v.ID, &v.EventID, &v.VersionNumber, &v.CreatedAt, &createdBy, &v.ChangesSummary, &raw); err != nil {
		return nil, err
	}
	if createdBy.Valid {
		v.CreatedBy = &createdBy.String
	}
	snap, err := domain.DecodeSnapshot(raw)
	if err != nil {
		return nil, fmt.Errorf("version %s: %w", v.ID, err)
	}
	v.Snapshot = snap
	return v, nil
}

func (r *eventVersionRepository) Create(ctx context.Context, v *domain.EventVersion) error {
	payload, err := json.Marshal(v.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	query := `
		INSERT INTO event_versions (event_id, version_number, created_by, changes_summary, event_snapshot)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		v.EventID, v.VersionNumber, v.CreatedBy, v.ChangesSummary, payload,
	).Scan(&v.ID, &v.CreatedAt)
}

func (r *eventVersionRepository) MaxNumber(ctx context.Context, eventID string) (int, error) {
	var n int
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version_number), 0) FROM event_versions WHERE event_id = $1`, eventID,
	).Scan(&n)
	return n, err
}

func (r *eventVersionRepository) GetByID(ctx context.Context, id string) (*domain.EventVersion, error) {
	query := `
		SELECT id, event_id, version_number, created_at, created_by, changes_summary, event_snapshot
		FROM event_versions
		WHERE id = $1
	`
	v, err := scanVersion(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *eventVersionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventVersion, error) {
	query := `
		SELECT id, event_id, version_number, created_at, created_by, changes_summary, event_snapshot
		FROM event_versions
		WHERE event_id = $1
		ORDER BY version_number DESC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	versions := make([]*domain.EventVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
