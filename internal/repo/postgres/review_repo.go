package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/services/moderation"
)

// ReviewRepo persists classifier-flagged submissions for the human
// moderation queue. Items keep the verdict snapshot taken at enqueue
// time.
type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

func (r *ReviewRepo) Enqueue(ctx context.Context, item moderation.ReviewItem) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.CityID) == "" {
		return fmt.Errorf("invalid review item payload")
	}

	status := item.Status
	if status == "" {
		status = enums.ModerationStatusPending
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO review_queue (
	id,
	content_id,
	content_type,
	city_id,
	author_id,
	reasons,
	severity,
	status,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`,
		item.ID,
		item.ContentID,
		item.ContentType.String(),
		item.CityID,
		item.AuthorID,
		item.Reasons,
		item.Severity.String(),
		string(status),
		item.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("enqueue review item: %w", err)
	}

	return nil
}

func (r *ReviewRepo) ListPending(ctx context.Context, cityID string, limit int) ([]moderation.ReviewItem, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
SELECT id, content_id, content_type, city_id, author_id, reasons, severity, status, created_at
FROM review_queue
WHERE status = 'pending'
ORDER BY created_at ASC, id ASC
LIMIT $1
`
	args := []any{limit}
	if strings.TrimSpace(cityID) != "" {
		query = `
SELECT id, content_id, content_type, city_id, author_id, reasons, severity, status, created_at
FROM review_queue
WHERE status = 'pending' AND city_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2
`
		args = []any{cityID, limit}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pending review items: %w", err)
	}
	defer rows.Close()

	items := make([]moderation.ReviewItem, 0, limit)
	for rows.Next() {
		item, err := scanReviewItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review item rows: %w", err)
	}

	return items, nil
}

func (r *ReviewRepo) Resolve(ctx context.Context, itemID string, status enums.ModerationStatus) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(itemID) == "" {
		return moderation.ErrReviewItemNotFound
	}
	if status != enums.ModerationStatusApproved && status != enums.ModerationStatusRejected {
		return fmt.Errorf("invalid review resolution %q", status)
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE review_queue
SET status = $2, resolved_at = NOW()
WHERE id = $1 AND status = 'pending'
`, itemID, string(status))
	if err != nil {
		return fmt.Errorf("resolve review item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return moderation.ErrReviewItemNotFound
	}

	return nil
}

// DeleteResolvedBefore removes approved and rejected items whose
// resolution is older than the cutoff. Pending items are never touched.
func (r *ReviewRepo) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM review_queue
WHERE status <> 'pending' AND resolved_at < $1
`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete resolved review items: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanReviewItem(row pgx.Row) (moderation.ReviewItem, error) {
	var (
		item        moderation.ReviewItem
		contentType string
		severity    string
		status      string
	)
	if err := row.Scan(
		&item.ID,
		&item.ContentID,
		&contentType,
		&item.CityID,
		&item.AuthorID,
		&item.Reasons,
		&severity,
		&status,
		&item.CreatedAt,
	); err != nil {
		return moderation.ReviewItem{}, err
	}

	if parsed, err := enums.ParseContentType(contentType); err == nil {
		item.ContentType = parsed
	}
	item.Severity = enums.ParseSeverity(severity)
	item.Status = enums.ModerationStatus(status)
	return item, nil
}
