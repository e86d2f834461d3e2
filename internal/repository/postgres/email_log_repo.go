package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type emailLogRepository struct {
	DB *sql.DB
}

func NewEmailLogRepository(db *sql.DB) domain.EmailLogRepository {
	return &emailLogRepository{DB: db}
}

const emailLogColumns = `id, event_id, recipient_email, recipient_name, subject, body, sent_at, status`

func scanEmailLog(row rowScanner) (*domain.EmailLog, error) {
	l := &domain.EmailLog{}
	var sentAt sql.NullTime
	if err := row.Scan(&l.ID, &l.EventID, &l.RecipientEmail, &l.RecipientName, &l.Subject, &l.Body, &sentAt, &l.Status); err != nil {
		return nil, err
	}
	if sentAt.Valid {
		l.SentAt = &sentAt.Time
	}
	return l, nil
}

func (r *emailLogRepository) query(ctx context.Context, query string, args ...any) ([]*domain.EmailLog, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	logs := make([]*domain.EmailLog, 0)
	for rows.Next() {
		l, err := scanEmailLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *emailLogRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EmailLog, error) {
	return r.query(ctx, `SELECT `+emailLogColumns+` FROM email_logs WHERE event_id = $1 ORDER BY recipient_email, id`, eventID)
}

func (r *emailLogRepository) ListUnsent(ctx context.Context, eventID string) ([]*domain.EmailLog, error) {
	return r.query(ctx, `SELECT `+emailLogColumns+` FROM email_logs WHERE event_id = $1 AND status <> 'sent' ORDER BY recipient_email, id`, eventID)
}

func (r *emailLogRepository) GetByID(ctx context.Context, id string) (*domain.EmailLog, error) {
	l, err := scanEmailLog(conn(ctx, r.DB).QueryRowContext(ctx, `SELECT `+emailLogColumns+` FROM email_logs WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return l, nil
}

func (r *emailLogRepository) insert(ctx context.Context, q querier, l *domain.EmailLog) error {
	query := `
		INSERT INTO email_logs (event_id, recipient_email, recipient_name, subject, body, sent_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return q.QueryRowContext(ctx, query, l.EventID, l.RecipientEmail, l.RecipientName, l.Subject, l.Body, l.SentAt, l.Status).Scan(&l.ID)
}

func (r *emailLogRepository) Create(ctx context.Context, l *domain.EmailLog) error {
	return r.insert(ctx, conn(ctx, r.DB), l)
}

func (r *emailLogRepository) CreateBatch(ctx context.Context, logs []*domain.EmailLog) error {
	q := conn(ctx, r.DB)
	for _, l := range logs {
		if err := r.insert(ctx, q, l); err != nil {
			return err
		}
	}
	return nil
}

func (r *emailLogRepository) Update(ctx context.Context, l *domain.EmailLog) error {
	query := `
		UPDATE email_logs
		SET recipient_email = $1, recipient_name = $2, subject = $3, body = $4, sent_at = $5, status = $6
		WHERE id = $7
	`
	return requireOne(conn(ctx, r.DB).ExecContext(ctx, query,
		l.RecipientEmail, l.RecipientName, l.Subject, l.Body, l.SentAt, l.Status, l.ID))
}

func (r *emailLogRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "email_logs", id)
}
