package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) SaveBio(ctx context.Context, userID, cityID, bio string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("invalid profile payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO profiles (
	user_id,
	city_id,
	bio,
	updated_at
) VALUES ($1, $2, $3, NOW())
ON CONFLICT (user_id) DO UPDATE SET
	bio = EXCLUDED.bio,
	updated_at = NOW()
`, userID, cityID, bio); err != nil {
		return fmt.Errorf("save profile bio: %w", err)
	}

	return nil
}

func (r *ProfileRepo) GetBio(ctx context.Context, userID string) (string, error) {
	if r.pool == nil {
		return "", fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(userID) == "" {
		return "", ErrProfileNotFound
	}

	var bio string
	if err := r.pool.QueryRow(ctx, `
SELECT bio
FROM profiles
WHERE user_id = $1
LIMIT 1
`, userID).Scan(&bio); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrProfileNotFound
		}
		return "", fmt.Errorf("query profile bio: %w", err)
	}

	return bio, nil
}
