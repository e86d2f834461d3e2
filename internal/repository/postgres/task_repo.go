package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type taskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) domain.TaskRepository {
	return &taskRepository{DB: db}
}

const taskColumns = `id, event_id, role, description, count, start_time, end_time`

func scanTask(row rowScanner) (*domain.TaskAssignment, error) {
	t := &domain.TaskAssignment{}
	if err := row.Scan(&t.ID, &t.EventID, &t.Role, &t.Description, &t.Count, &t.StartTime, &t.EndTime); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.TaskAssignment, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx,
		`SELECT `+taskColumns+` FROM task_assignments WHERE event_id = $1 ORDER BY start_time, role`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tasks := make([]*domain.TaskAssignment, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.TaskAssignment, error) {
	t, err := scanTask(conn(ctx, r.DB).QueryRowContext(ctx, `SELECT `+taskColumns+` FROM task_assignments WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *taskRepository) Create(ctx context.Context, t *domain.TaskAssignment) error {
	return r.insert(ctx, conn(ctx, r.DB), t)
}

func (r *taskRepository) insert(ctx context.Context, q querier, t *domain.TaskAssignment) error {
	query := `
		INSERT INTO task_assignments (event_id, role, description, count, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return q.QueryRowContext(ctx, query, t.EventID, t.Role, t.Description, t.Count, t.StartTime, t.EndTime).Scan(&t.ID)
}

func (r *taskRepository) Update(ctx context.Context, t *domain.TaskAssignment) error {
	query := `
		UPDATE task_assignments SET role = $1, description = $2, count = $3, start_time = $4, end_time = $5
		WHERE id = $6
	`
	return requireOne(conn(ctx, r.DB).ExecContext(ctx, query, t.Role, t.Description, t.Count, t.StartTime, t.EndTime, t.ID))
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "task_assignments", id)
}

func (r *taskRepository) ReplaceForEvent(ctx context.Context, eventID string, tasks []*domain.TaskAssignment) error {
	q := conn(ctx, r.DB)
	if _, err := q.ExecContext(ctx, `DELETE FROM task_assignments WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	for _, t := range tasks {
		t.EventID = eventID
		if err := r.insert(ctx, q, t); err != nil {
			return err
		}
	}
	return nil
}
