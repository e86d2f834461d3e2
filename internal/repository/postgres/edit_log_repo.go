package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"eventplanner/internal/domain"
)

type editLogRepository struct {
	DB *sql.DB
}

func NewEditLogRepository(db *sql.DB) domain.EditLogRepository {
	return &editLogRepository{DB: db}
}

// CreateBatch inserts all rows in one statement and fills in their ids and timestamps.
func (r *editLogRepository) CreateBatch(ctx context.Context, logs []*domain.EditLog) error {
	if len(logs) == 0 {
		return nil
	}
	values := make([]string, 0, len(logs))
	args := make([]any, 0, len(logs)*5)
	for i, l := range logs {
		n := i * 5
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5))
		args = append(args, l.EventID, l.EditedBy, l.FieldChanged, l.OldValue, l.NewValue)
	}
	query := `
		INSERT INTO edit_logs (event_id, edited_by, field_changed, old_value, new_value)
		VALUES ` + strings.Join(values, ", ") + `
		RETURNING id, edited_at
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	i := 0
	for rows.Next() {
		if i >= len(logs) {
			break
		}
		if err := rows.Scan(&logs[i].ID, &logs[i].EditedAt); err != nil {
			return err
		}
		i++
	}
	return rows.Err()
}

func (r *editLogRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EditLog, int, error) {
	q := conn(ctx, r.DB)
	var total int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM edit_logs WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `
		SELECT id, event_id, edited_by, edited_at, field_changed, old_value, new_value
		FROM edit_logs
		WHERE event_id = $1
		ORDER BY edited_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.QueryContext(ctx, query, eventID, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	logs := make([]*domain.EditLog, 0)
	for rows.Next() {
		l := &domain.EditLog{}
		var editedBy sql.NullString
		if err := rows.Scan(&l.ID, &l.EventID, &editedBy, &l.EditedAt, &l.FieldChanged, &l.OldValue, &l.NewValue); err != nil {
			return nil, 0, err
		}
		if editedBy.Valid {
			l.EditedBy = &editedBy.String
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
