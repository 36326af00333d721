package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
	eventssvc "github.com/posdenous/kinza-backend/internal/services/events"
)

type EventRepo struct {
	pool *pgxpool.Pool
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

func (r *EventRepo) Insert(ctx context.Context, event model.Event) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(event.ID) == "" || strings.TrimSpace(event.CityID) == "" {
		return fmt.Errorf("invalid event payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO events (
	id,
	title,
	description,
	age_range,
	venue,
	start_time,
	end_time,
	city_id,
	organizer_id,
	max_participants,
	price,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`,
		event.ID,
		event.Title,
		event.Description,
		event.AgeRange.String(),
		event.Venue,
		event.StartTime.UTC(),
		event.EndTime,
		event.CityID,
		event.OrganizerID,
		event.MaxParticipants,
		event.Price,
		event.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (model.Event, error) {
	if r.pool == nil {
		return model.Event{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(id) == "" {
		return model.Event{}, eventssvc.ErrEventNotFound
	}

	row := r.pool.QueryRow(ctx, `
SELECT id, title, description, age_range, venue, start_time, end_time, city_id, organizer_id, max_participants, price, created_at
FROM events
WHERE id = $1
LIMIT 1
`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, eventssvc.ErrEventNotFound
		}
		return model.Event{}, fmt.Errorf("query event: %w", err)
	}

	return event, nil
}

func (r *EventRepo) ListByCity(ctx context.Context, cityID string, limit int) ([]model.Event, error) {
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
SELECT id, title, description, age_range, venue, start_time, end_time, city_id, organizer_id, max_participants, price, created_at
FROM events
WHERE city_id = $1
ORDER BY start_time ASC, id ASC
LIMIT $2
`, cityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list events by city: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0, limit)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, nil
}

func scanEvent(row pgx.Row) (model.Event, error) {
	var (
		event    model.Event
		ageRange string
	)
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&ageRange,
		&event.Venue,
		&event.StartTime,
		&event.EndTime,
		&event.CityID,
		&event.OrganizerID,
		&event.MaxParticipants,
		&event.Price,
		&event.CreatedAt,
	); err != nil {
		return model.Event{}, err
	}

	if parsed, err := enums.ParseAgeRange(ageRange); err == nil {
		event.AgeRange = parsed
	}
	return event, nil
}
