package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
	"github.com/posdenous/kinza-backend/internal/services/access"
	"github.com/posdenous/kinza-backend/internal/services/moderation"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
	ErrRejected      = errors.New("content rejected")
	ErrEventNotFound = errors.New("event not found")
)

type EventStore interface {
	Insert(ctx context.Context, event model.Event) error
	GetByID(ctx context.Context, id string) (model.Event, error)
	ListByCity(ctx context.Context, cityID string, limit int) ([]model.Event, error)
}

type CommentStore interface {
	Insert(ctx context.Context, comment model.Content) error
}

type ReviewStore interface {
	Enqueue(ctx context.Context, item moderation.ReviewItem) error
}

const defaultListLimit = 50

// Service runs the full submission flow: isolation enforcement,
// structural validation, content moderation, persistence and review
// queueing. The rule modules stay pure; all I/O happens here.
type Service struct {
	validator  *Validator
	classifier *moderation.Classifier
	tenants    *access.Service
	events     EventStore
	comments   CommentStore
	reviews    ReviewStore
	now        func() time.Time
}

func NewService(validator *Validator, classifier *moderation.Classifier, tenants *access.Service, events EventStore, comments CommentStore, reviews ReviewStore) *Service {
	return &Service{
		validator:  validator,
		classifier: classifier,
		tenants:    tenants,
		events:     events,
		comments:   comments,
		reviews:    reviews,
		now:        time.Now,
	}
}

// CreateOutcome reports what happened to a submitted draft. Validation
// and Verdicts are populated even on rejection so the client can show
// every problem at once.
type CreateOutcome struct {
	Event      *model.Event                  `json:"event,omitempty"`
	Scope      access.Scope                  `json:"scope"`
	Validation ValidationResult              `json:"validation"`
	Verdicts   map[string]moderation.Verdict `json:"verdicts,omitempty"`
	Reason     string                        `json:"reason,omitempty"`
}

// Create validates, moderates and persists a draft submitted by actor.
// A draft aimed at a city outside the actor's scope is silently
// rescoped to the home city before validation.
func (s *Service) Create(ctx context.Context, actor model.User, draft model.EventDraft) (CreateOutcome, error) {
	outcome := CreateOutcome{}
	if s.events == nil || s.validator == nil || s.classifier == nil || s.tenants == nil {
		return outcome, fmt.Errorf("event service dependencies are not configured")
	}

	scope := s.tenants.EnforceIsolation(actor, draft.CityID)
	draft.CityID = scope.TenantID
	outcome.Scope = scope

	if decision := s.tenants.CanCreate(actor, draft.CityID); !decision.Allowed {
		outcome.Reason = decision.Reason
		return outcome, ErrForbidden
	}

	outcome.Validation = s.validator.ValidateAll(draft)
	if !outcome.Validation.IsValid {
		return outcome, ErrValidation
	}

	outcome.Verdicts = map[string]moderation.Verdict{
		"title": s.classifier.Moderate(moderation.Input{
			Text:   draft.Title,
			Author: actor,
			CityID: draft.CityID,
			Type:   enums.ContentTypeEventTitle,
		}),
	}
	if strings.TrimSpace(draft.Description) != "" {
		outcome.Verdicts["description"] = s.classifier.Moderate(moderation.Input{
			Text:   draft.Description,
			Author: actor,
			CityID: draft.CityID,
			Type:   enums.ContentTypeEventDescription,
		})
	}

	event := s.buildEvent(draft)
	rejected := false
	for field, verdict := range outcome.Verdicts {
		if verdict.Flagged {
			if err := s.enqueueReview(ctx, event.ID, fieldContentType(field), draft.CityID, actor.ID, verdict); err != nil {
				return outcome, err
			}
		}
		if !verdict.Approved {
			rejected = true
		}
	}
	if rejected {
		return outcome, ErrRejected
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return outcome, fmt.Errorf("insert event: %w", err)
	}
	outcome.Event = &event
	return outcome, nil
}

// List returns the events the actor may see in the requested city,
// already rescoped and filtered.
func (s *Service) List(ctx context.Context, actor model.User, requestedCityID string) ([]model.Event, error) {
	if s.events == nil || s.tenants == nil {
		return nil, fmt.Errorf("event service dependencies are not configured")
	}

	scope := s.tenants.EnforceIsolation(actor, requestedCityID)
	if scope.TenantID == "" {
		return nil, ErrForbidden
	}

	listed, err := s.events.ListByCity(ctx, scope.TenantID, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return access.FilterByTenant(s.tenants, listed, actor), nil
}

// CommentOutcome carries the verdict so a rejected comment can explain
// itself to the author.
type CommentOutcome struct {
	Comment *model.Content     `json:"comment,omitempty"`
	Verdict moderation.Verdict `json:"verdict"`
}

// AddComment moderates and stores a comment on an event the actor can
// see. The comment inherits the event's city tag, never the author's.
func (s *Service) AddComment(ctx context.Context, actor model.User, eventID, text string) (CommentOutcome, error) {
	outcome := CommentOutcome{}
	if s.events == nil || s.comments == nil || s.classifier == nil || s.tenants == nil {
		return outcome, fmt.Errorf("event service dependencies are not configured")
	}
	if strings.TrimSpace(eventID) == "" {
		return outcome, ErrEventNotFound
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return outcome, err
	}
	if !s.tenants.CanView(actor, event.CityID) {
		return outcome, ErrForbidden
	}
	if decision := s.tenants.CanCreate(actor, event.CityID); !decision.Allowed {
		return outcome, ErrForbidden
	}

	outcome.Verdict = s.classifier.Moderate(moderation.Input{
		Text:   text,
		Author: actor,
		CityID: event.CityID,
		Type:   enums.ContentTypeComment,
	})

	comment := model.Content{
		ID:        uuid.NewString(),
		CityID:    event.CityID,
		AuthorID:  actor.ID,
		Type:      enums.ContentTypeComment,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}

	if outcome.Verdict.Flagged {
		if err := s.enqueueReview(ctx, comment.ID, enums.ContentTypeComment, event.CityID, actor.ID, outcome.Verdict); err != nil {
			return outcome, err
		}
	}
	if !outcome.Verdict.Approved {
		return outcome, ErrRejected
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return outcome, fmt.Errorf("insert comment: %w", err)
	}
	outcome.Comment = &comment
	return outcome, nil
}

func (s *Service) buildEvent(draft model.EventDraft) model.Event {
	start, _ := time.Parse(time.RFC3339, strings.TrimSpace(draft.StartTime))
	var end *time.Time
	if strings.TrimSpace(draft.EndTime) != "" {
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(draft.EndTime)); err == nil {
			end = &parsed
		}
	}
	ageRange, _ := enums.ParseAgeRange(draft.AgeRange)

	return model.Event{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(draft.Title),
		Description:     strings.TrimSpace(draft.Description),
		AgeRange:        ageRange,
		Venue:           strings.TrimSpace(draft.Venue),
		StartTime:       start,
		EndTime:         end,
		CityID:          draft.CityID,
		OrganizerID:     draft.OrganizerID,
		MaxParticipants: draft.MaxParticipants,
		Price:           draft.Price,
		CreatedAt:       s.now().UTC(),
	}
}

func (s *Service) enqueueReview(ctx context.Context, contentID string, contentType enums.ContentType, cityID, authorID string, verdict moderation.Verdict) error {
	if s.reviews == nil {
		return nil
	}
	item := moderation.ReviewItem{
		ID:          uuid.NewString(),
		ContentID:   contentID,
		ContentType: contentType,
		CityID:      cityID,
		AuthorID:    authorID,
		Reasons:     verdict.Reasons,
		Severity:    verdict.Severity,
		Status:      enums.ModerationStatusPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.reviews.Enqueue(ctx, item); err != nil {
		return fmt.Errorf("enqueue review item: %w", err)
	}
	return nil
}

func fieldContentType(field string) enums.ContentType {
	if field == "description" {
		return enums.ContentTypeEventDescription
	}
	return enums.ContentTypeEventTitle
}
