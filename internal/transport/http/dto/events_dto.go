package dto

import (
	"time"

	"github.com/posdenous/kinza-backend/internal/domain/model"
)

type CreateEventRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	AgeRange        string  `json:"age_range"`
	Venue           string  `json:"venue"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time,omitempty"`
	CityID          string  `json:"city_id"`
	MaxParticipants int     `json:"max_participants,omitempty"`
	Price           float64 `json:"price,omitempty"`
}

func (r CreateEventRequest) Draft(organizerID string) model.EventDraft {
	return model.EventDraft{
		Title:           r.Title,
		Description:     r.Description,
		AgeRange:        r.AgeRange,
		Venue:           r.Venue,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		CityID:          r.CityID,
		OrganizerID:     organizerID,
		MaxParticipants: r.MaxParticipants,
		Price:           r.Price,
	}
}

type ValidationResponse struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type EventResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	AgeRange        string     `json:"age_range"`
	Venue           string     `json:"venue"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	CityID          string     `json:"city_id"`
	OrganizerID     string     `json:"organizer_id"`
	MaxParticipants int        `json:"max_participants,omitempty"`
	Price           float64    `json:"price,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func EventFromModel(e model.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		AgeRange:        e.AgeRange.String(),
		Venue:           e.Venue,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		CityID:          e.CityID,
		OrganizerID:     e.OrganizerID,
		MaxParticipants: e.MaxParticipants,
		Price:           e.Price,
		CreatedAt:       e.CreatedAt,
	}
}

type CreateEventResponse struct {
	Event      *EventResponse             `json:"event,omitempty"`
	CityID     string                     `json:"city_id"`
	Rescoped   bool                       `json:"rescoped"`
	Validation ValidationResponse         `json:"validation"`
	Verdicts   map[string]VerdictResponse `json:"verdicts,omitempty"`
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	CityID    string    `json:"city_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentResponse struct {
	Comment *CommentResponse `json:"comment,omitempty"`
	Verdict VerdictResponse  `json:"verdict"`
}
