package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	mediasvc "github.com/posdenous/kinza-backend/internal/services/media"
)

type MediaRepo struct {
	pool *pgxpool.Pool
}

func NewMediaRepo(pool *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{pool: pool}
}

func (r *MediaRepo) CreateImage(ctx context.Context, eventID, objectKey string) (mediasvc.ImageRecord, error) {
	if r.pool == nil {
		return mediasvc.ImageRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(eventID) == "" || strings.TrimSpace(objectKey) == "" {
		return mediasvc.ImageRecord{}, mediasvc.ErrValidation
	}

	var record mediasvc.ImageRecord
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
SELECT position
FROM event_images
WHERE event_id = $1
ORDER BY position
FOR UPDATE
`, eventID)
		if err != nil {
			return fmt.Errorf("query image positions: %w", err)
		}

		positions := map[int]struct{}{}
		for rows.Next() {
			var position int
			if err := rows.Scan(&position); err != nil {
				rows.Close()
				return fmt.Errorf("scan image position: %w", err)
			}
			positions[position] = struct{}{}
		}
		rows.Close()

		if len(positions) >= mediasvc.MaxImagesPerEvent() {
			return mediasvc.ErrImageLimitReached
		}

		position := nextPosition(positions)
		if position == 0 {
			return mediasvc.ErrImageLimitReached
		}

		err = tx.QueryRow(ctx, `
INSERT INTO event_images (event_id, s3_key, position, created_at)
VALUES ($1, $2, $3, NOW())
RETURNING id, position, s3_key, created_at
`, eventID, objectKey, position).Scan(&record.ID, &record.Position, &record.ObjectKey, &record.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert event image: %w", err)
		}
		return nil
	})
	if err != nil {
		return mediasvc.ImageRecord{}, err
	}

	return record, nil
}

func (r *MediaRepo) ListImages(ctx context.Context, eventID string) ([]mediasvc.ImageRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(eventID) == "" {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, position, s3_key, created_at
FROM event_images
WHERE event_id = $1
ORDER BY position ASC, created_at ASC
`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event images: %w", err)
	}
	defer rows.Close()

	images := make([]mediasvc.ImageRecord, 0)
	for rows.Next() {
		var record mediasvc.ImageRecord
		if err := rows.Scan(&record.ID, &record.Position, &record.ObjectKey, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event image: %w", err)
		}
		images = append(images, record)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate event images: %w", rows.Err())
	}

	return images, nil
}

func nextPosition(occupied map[int]struct{}) int {
	for i := 1; i <= mediasvc.MaxImagesPerEvent(); i++ {
		if _, ok := occupied[i]; !ok {
			return i
		}
	}
	return 0
}
