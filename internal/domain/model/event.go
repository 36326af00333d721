package model

import (
	"time"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
)

// EventDraft is an unpersisted candidate event as submitted by an
// organiser. Timestamps arrive as RFC 3339 strings from the mobile form
// and are only parsed during validation, so a malformed value degrades
// to a validation error instead of failing the decode. A corrected draft
// is a new value; drafts are never mutated in place.
type EventDraft struct {
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	AgeRange        string  `json:"age_range"`
	Venue           string  `json:"venue"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time,omitempty"`
	CityID          string  `json:"city_id"`
	OrganizerID     string  `json:"organizer_id"`
	MaxParticipants int     `json:"max_participants,omitempty"`
	Price           float64 `json:"price,omitempty"`
}

func (d EventDraft) TenantID() string {
	return d.CityID
}

// Event is a persisted, validated draft.
type Event struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	AgeRange        enums.AgeRange `json:"age_range"`
	Venue           string         `json:"venue"`
	StartTime       time.Time      `json:"start_time"`
	EndTime         *time.Time     `json:"end_time,omitempty"`
	CityID          string         `json:"city_id"`
	OrganizerID     string         `json:"organizer_id"`
	MaxParticipants int            `json:"max_participants,omitempty"`
	Price           float64        `json:"price,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (e Event) TenantID() string {
	return e.CityID
}
