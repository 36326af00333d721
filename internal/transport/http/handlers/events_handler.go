package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/posdenous/kinza-backend/internal/services/auth"
	eventssvc "github.com/posdenous/kinza-backend/internal/services/events"
	"github.com/posdenous/kinza-backend/internal/transport/http/dto"
	httperrors "github.com/posdenous/kinza-backend/internal/transport/http/errors"
)

type EventsHandler struct {
	service *eventssvc.Service
}

func NewEventsHandler(service *eventssvc.Service) *EventsHandler {
	return &EventsHandler{service: service}
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "EVENT_SERVICE_UNAVAILABLE", "event service is unavailable")
		return
	}

	var req dto.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	outcome, err := h.service.Create(r.Context(), identity.User(), req.Draft(identity.UserID))
	body := createResponseFromOutcome(outcome)
	if err != nil {
		switch {
		case errors.Is(err, eventssvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", outcome.Reason)
		case errors.Is(err, eventssvc.ErrValidation):
			httperrors.Write(w, http.StatusBadRequest, body)
		case errors.Is(err, eventssvc.ErrRejected):
			httperrors.Write(w, http.StatusUnprocessableEntity, body)
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to create event")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, body)
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "EVENT_SERVICE_UNAVAILABLE", "event service is unavailable")
		return
	}

	cityID := strings.TrimSpace(r.URL.Query().Get("city_id"))
	events, err := h.service.List(r.Context(), identity.User(), cityID)
	if err != nil {
		if errors.Is(err, eventssvc.ErrForbidden) {
			writeForbidden(w, "FORBIDDEN", "no accessible city for this account")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to list events")
		return
	}

	out := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, dto.EventFromModel(event))
	}
	httperrors.Write(w, http.StatusOK, dto.ListEventsResponse{Events: out})
}

func (h *EventsHandler) Comment(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "EVENT_SERVICE_UNAVAILABLE", "event service is unavailable")
		return
	}

	eventID := chi.URLParam(r, "id")
	var req dto.CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	outcome, err := h.service.AddComment(r.Context(), identity.User(), eventID, req.Text)
	body := dto.CreateCommentResponse{Verdict: dto.VerdictFromModel(outcome.Verdict)}
	if outcome.Comment != nil {
		body.Comment = &dto.CommentResponse{
			ID:        outcome.Comment.ID,
			CityID:    outcome.Comment.CityID,
			AuthorID:  outcome.Comment.AuthorID,
			Text:      outcome.Comment.Text,
			CreatedAt: outcome.Comment.CreatedAt,
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, eventssvc.ErrEventNotFound):
			writeNotFound(w, "EVENT_NOT_FOUND", "event not found")
		case errors.Is(err, eventssvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "event is outside your city scope")
		case errors.Is(err, eventssvc.ErrRejected):
			httperrors.Write(w, http.StatusUnprocessableEntity, body)
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to add comment")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, body)
}

func createResponseFromOutcome(outcome eventssvc.CreateOutcome) dto.CreateEventResponse {
	resp := dto.CreateEventResponse{
		CityID:   outcome.Scope.TenantID,
		Rescoped: outcome.Scope.Enforced,
		Validation: dto.ValidationResponse{
			IsValid:  outcome.Validation.IsValid,
			Errors:   outcome.Validation.Errors,
			Warnings: outcome.Validation.Warnings,
		},
	}
	if outcome.Event != nil {
		event := dto.EventFromModel(*outcome.Event)
		resp.Event = &event
	}
	if len(outcome.Verdicts) > 0 {
		resp.Verdicts = make(map[string]dto.VerdictResponse, len(outcome.Verdicts))
		for field, verdict := range outcome.Verdicts {
			resp.Verdicts[field] = dto.VerdictFromModel(verdict)
		}
	}
	return resp
}
