package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"eventplanner/internal/domain"
)

type socialPostRepository struct {
	DB *sql.DB
}

func NewSocialPostRepository(db *sql.DB) domain.SocialPostRepository {
	return &socialPostRepository{DB: db}
}

const socialPostColumns = `id, event_id, platform, content, hashtags, tone, language`

func scanSocialPost(row rowScanner) (*domain.SocialPost, error) {
	p := &domain.SocialPost{}
	var tags pq.StringArray
	if err := row.Scan(&p.ID, &p.EventID, &p.Platform, &p.Content, &tags, &p.Tone, &p.Language); err != nil {
		return nil, err
	}
	p.Hashtags = []string(tags)
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	return p, nil
}

func (r *socialPostRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.SocialPost, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx,
		`SELECT `+socialPostColumns+` FROM social_posts WHERE event_id = $1 ORDER BY platform, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := make([]*domain.SocialPost, 0)
	for rows.Next() {
		p, err := scanSocialPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *socialPostRepository) GetByID(ctx context.Context, id string) (*domain.SocialPost, error) {
	p, err := scanSocialPost(conn(ctx, r.DB).QueryRowContext(ctx, `SELECT `+socialPostColumns+` FROM social_posts WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *socialPostRepository) insert(ctx context.Context, q querier, p *domain.SocialPost) error {
	query := `
		INSERT INTO social_posts (event_id, platform, content, hashtags, tone, language)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return q.QueryRowContext(ctx, query, p.EventID, p.Platform, p.Content, pq.Array(p.Hashtags), p.Tone, p.Language).Scan(&p.ID)
}

func (r *socialPostRepository) Create(ctx context.Context, p *domain.SocialPost) error {
	return r.insert(ctx, conn(ctx, r.DB), p)
}

func (r *socialPostRepository) Update(ctx context.Context, p *domain.SocialPost) error {
	query := `
		UPDATE social_posts SET platform = $1, content = $2, hashtags = $3, tone = $4, language = $5
		WHERE id = $6
	`
	return requireOne(conn(ctx, r.DB).ExecContext(ctx, query, p.Platform, p.Content, pq.Array(p.Hashtags), p.Tone, p.Language, p.ID))
}

func (r *socialPostRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, conn(ctx, r.DB), "social_posts", id)
}

func (r *socialPostRepository) ReplaceForEvent(ctx context.Context, eventID string, posts []*domain.SocialPost) error {
	q := conn(ctx, r.DB)
	if _, err := q.ExecContext(ctx, `DELETE FROM social_posts WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	for _, p := range posts {
		p.EventID = eventID
		if err := r.insert(ctx, q, p); err != nil {
			return err
		}
	}
	return nil
}
