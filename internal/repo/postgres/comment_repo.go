package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) Insert(ctx context.Context, comment model.Content) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(comment.ID) == "" || strings.TrimSpace(comment.CityID) == "" {
		return fmt.Errorf("invalid comment payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO comments (
	id,
	city_id,
	author_id,
	content_type,
	body,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6)
`,
		comment.ID,
		comment.CityID,
		comment.AuthorID,
		comment.Type.String(),
		comment.Text,
		comment.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

func (r *CommentRepo) ListByCity(ctx context.Context, cityID string, limit int) ([]model.Content, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(cityID) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, city_id, author_id, content_type, body, created_at
FROM comments
WHERE city_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, cityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list comments by city: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Content, 0, limit)
	for rows.Next() {
		var (
			comment     model.Content
			contentType string
		)
		if err := rows.Scan(
			&comment.ID,
			&comment.CityID,
			&comment.AuthorID,
			&contentType,
			&comment.Text,
			&comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		if parsed, err := enums.ParseContentType(contentType); err == nil {
			comment.Type = parsed
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}
