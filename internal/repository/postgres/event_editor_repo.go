package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type eventEditorRepository struct {
	DB *sql.DB
}

func NewEventEditorRepository(db *sql.DB) domain.EventEditorRepository {
	return &eventEditorRepository{
		DB: db,
	}
}

func (r *eventEditorRepository) GetRole(ctx context.Context, eventID, userID string) (domain.Role, error) {
	var role domain.Role
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT role FROM event_editors WHERE event_id = $1 AND user_id = $2`, eventID, userID,
	).Scan(&role)
	if err != nil {
		return "", notFound(err)
	}
	return role, nil
}

func (r *eventEditorRepository) Add(ctx context.Context, g *domain.EventEditor) error {
	query := `
		INSERT INTO event_editors (event_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING added_at
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, g.EventID, g.UserID, g.Role).Scan(&g.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *eventEditorRepository) list(ctx context.Context, query, eventID string) ([]*domain.EventEditor, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	grants := make([]*domain.EventEditor, 0)
	for rows.Next() {
		g := &domain.EventEditor{}
		var username, email sql.NullString
		if err := rows.Scan(&g.EventID, &g.UserID, &g.Role, &g.AddedAt, &username, &email); err != nil {
			return nil, err
		}
		g.Username = username.String
		g.Email = email.String
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func (r *eventEditorRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventEditor, error) {
	query := `
		SELECT e.event_id, e.user_id, e.role, e.added_at, u.username, u.email
		FROM event_editors e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.event_id = $1
		ORDER BY e.added_at, e.user_id
	`
	return r.list(ctx, query, eventID)
}

func (r *eventEditorRepository) LockByEventID(ctx context.Context, eventID string) ([]*domain.EventEditor, error) {
	query := `
		SELECT event_id, user_id, role, added_at, NULL, NULL
		FROM event_editors
		WHERE event_id = $1
		ORDER BY user_id
		FOR UPDATE
	`
	return r.list(ctx, query, eventID)
}

func (r *eventEditorRepository) UpdateRole(ctx context.Context, eventID, userID string, role domain.Role) (*domain.EventEditor, error) {
	g := &domain.EventEditor{EventID: eventID, UserID: userID, Role: role}
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`UPDATE event_editors SET role = $1 WHERE event_id = $2 AND user_id = $3 RETURNING added_at`,
		role, eventID, userID,
	).Scan(&g.AddedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

func (r *eventEditorRepository) Remove(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_editors WHERE event_id = $1 AND user_id = $2`
	return requireOne(conn(ctx, r.DB).ExecContext(ctx, query, eventID, userID))
}
