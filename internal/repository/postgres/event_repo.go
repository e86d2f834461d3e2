package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventplanner/internal/domain"
)

const eventColumns = `id, name, description, slogan, target_audience, expected_attendees, start_time, end_time,
		type, budget, status, created_by, latest_version_id, created_at, last_modified`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var latest sql.NullString
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Slogan, &e.TargetAudience, &e.ExpectedAttendees,
		&e.StartTime, &e.EndTime, &e.Type, &e.Budget, &e.Status, &e.CreatedBy, &latest,
		&e.CreatedAt, &e.LastModified,
	)
	if err != nil {
		return nil, err
	}
	if latest.Valid {
		e.LatestVersionID = &latest.String
	}
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, slogan, target_audience, expected_attendees, start_time, end_time, type, budget, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, last_modified
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.Name, e.Description, e.Slogan, e.TargetAudience, e.ExpectedAttendees,
		e.StartTime, e.EndTime, e.Type, e.Budget, e.Status, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.LastModified)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	e, err := scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

func (r *eventRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id IN (SELECT event_id FROM event_editors WHERE user_id = $1)
		ORDER BY created_at DESC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET
			name = $1, description = $2, slogan = $3, target_audience = $4, expected_attendees = $5,
			start_time = $6, end_time = $7, type = $8, budget = $9, status = $10, last_modified = NOW()
		WHERE id = $11
		RETURNING last_modified
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		e.Name, e.Description, e.Slogan, e.TargetAudience, e.ExpectedAttendees,
		e.StartTime, e.EndTime, e.Type, e.Budget, e.Status, e.ID,
	).Scan(&e.LastModified)
	return notFound(err)
}

func (r *eventRepository) SetLatestVersion(ctx context.Context, eventID, versionID string) error {
	query := `UPDATE events SET latest_version_id = $1 WHERE id = $2`
	return requireOne(conn(ctx, r.DB).ExecContext(ctx, query, versionID, eventID))
}

// cascadeTables lists every table referencing events, deleted before the event row.
var cascadeTables = []string{
	"event_versions",
	"edit_logs",
	"task_assignments",
	"visual_assets",
	"social_posts",
	"venue_suggestions",
	"email_logs",
	"registrations",
	"event_editors",
}

// DeleteCascade expects to run inside a transaction so the cascade is all-or-nothing.
func (r *eventRepository) DeleteCascade(ctx context.Context, id string) error {
	q := conn(ctx, r.DB)
	if err := requireOne(q.ExecContext(ctx, `UPDATE events SET latest_version_id = NULL WHERE id = $1`, id)); err != nil {
		return err
	}
	for _, table := range cascadeTables {
		if _, err := q.ExecContext(ctx, "DELETE FROM "+table+" WHERE event_id = $1", id); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return deleteByID(ctx, q, "events", id)
}
