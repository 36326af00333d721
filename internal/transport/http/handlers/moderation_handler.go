package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	authsvc "github.com/posdenous/kinza-backend/internal/services/auth"
	"github.com/posdenous/kinza-backend/internal/services/moderation"
	"github.com/posdenous/kinza-backend/internal/transport/http/dto"
	httperrors "github.com/posdenous/kinza-backend/internal/transport/http/errors"
)

// ReviewQueue is the slice of the review store the moderation endpoints
// need.
type ReviewQueue interface {
	ListPending(ctx context.Context, cityID string, limit int) ([]moderation.ReviewItem, error)
	Resolve(ctx context.Context, itemID string, status enums.ModerationStatus) error
}

type ModerationHandler struct {
	classifier *moderation.Classifier
	queue      ReviewQueue
}

func NewModerationHandler(classifier *moderation.Classifier) *ModerationHandler {
	return &ModerationHandler{classifier: classifier}
}

func (h *ModerationHandler) AttachQueue(queue ReviewQueue) {
	h.queue = queue
}

// Check runs the classifier on a piece of text without persisting
// anything. Clients use it for pre-submit feedback.
func (h *ModerationHandler) Check(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.classifier == nil {
		writeInternal(w, "MODERATION_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.ModerateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	contentType, err := enums.ParseContentType(req.ContentType)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown content type")
		return
	}

	cityID := strings.TrimSpace(req.CityID)
	if cityID == "" {
		cityID = identity.CityID
	}

	verdict := h.classifier.Moderate(moderation.Input{
		Text:   req.Text,
		Author: identity.User(),
		CityID: cityID,
		Type:   contentType,
	})

	httperrors.Write(w, http.StatusOK, dto.VerdictFromModel(verdict))
}

func (h *ModerationHandler) Queue(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.queue == nil {
		writeInternal(w, "REVIEW_QUEUE_UNAVAILABLE", "review queue is unavailable")
		return
	}

	cityID := strings.TrimSpace(r.URL.Query().Get("city_id"))
	limit := 0
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	items, err := h.queue.ListPending(r.Context(), cityID, limit)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list review queue")
		return
	}

	out := make([]dto.ReviewItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ReviewItemFromModel(item))
	}
	httperrors.Write(w, http.StatusOK, dto.ReviewQueueResponse{Items: out})
}

func (h *ModerationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.queue == nil {
		writeInternal(w, "REVIEW_QUEUE_UNAVAILABLE", "review queue is unavailable")
		return
	}

	var req dto.ResolveReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	status := enums.ModerationStatus(strings.TrimSpace(req.Status))
	if status != enums.ModerationStatusApproved && status != enums.ModerationStatusRejected {
		writeBadRequest(w, "VALIDATION_ERROR", "status must be approved or rejected")
		return
	}

	itemID := chi.URLParam(r, "id")
	if err := h.queue.Resolve(r.Context(), itemID, status); err != nil {
		if errors.Is(err, moderation.ErrReviewItemNotFound) {
			writeNotFound(w, "REVIEW_ITEM_NOT_FOUND", "review item not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to resolve review item")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ResolveReviewResponse{OK: true})
}
