package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"eventplanner/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

const registrationColumns = `id, event_id, registration_url, form_title, event_intro, form_fields`

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var url sql.NullString
	var fields []byte
	if err := row.Scan(&reg.ID, &reg.EventID, &url, &reg.FormTitle, &reg.EventIntro, &fields); err != nil {
		return nil, err
	}
	if url.Valid {
		reg.RegistrationURL = &url.String
	}
	if err := json.Unmarshal(fields, &reg.FormFields); err != nil {
		return nil, fmt.Errorf("decode form_fields: %w", err)
	}
	return reg, nil
}

func encodeFields(fields []domain.FormField) ([]byte, error) {
	if fields == nil {
		fields = []domain.FormField{}
	}
	return json.Marshal(fields)
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE event_id = $1 ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg, err := scanRegistration(conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return reg, nil
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	fields, err := encodeFields(reg.FormFields)
	if err != nil {
		return err
	}
	query := `
		UPDATE registrations SET registration_url = $1, form_title = $2, event_intro = $3, form_fields = $4
		WHERE id = $5
	`
	return requireOne(conn(ctx, r.DB).ExecContext(ctx, query, reg.RegistrationURL, reg.FormTitle, reg.EventIntro, fields, reg.ID))
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "registrations", id)
}

func (r *registrationRepository) ReplaceForEvent(ctx context.Context, eventID string, reg *domain.Registration) error {
	fields, err := encodeFields(reg.FormFields)
	if err != nil {
		return err
	}
	q := conn(ctx, r.DB)
	if _, err := q.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	reg.EventID = eventID
	query := `
		INSERT INTO registrations (event_id, registration_url, form_title, event_intro, form_fields)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return q.QueryRowContext(ctx, query, reg.EventID, reg.RegistrationURL, reg.FormTitle, reg.EventIntro, fields).Scan(&reg.ID)
}
