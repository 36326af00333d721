package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/posdenous/kinza-backend/internal/services/auth"
	mediasvc "github.com/posdenous/kinza-backend/internal/services/media"
	"github.com/posdenous/kinza-backend/internal/transport/http/dto"
	httperrors "github.com/posdenous/kinza-backend/internal/transport/http/errors"
)

const maxImageUploadBytes = 10 << 20

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "file field is required")
		return
	}
	defer file.Close()

	eventID := chi.URLParam(r, "id")
	image, err := h.service.UploadImage(
		r.Context(),
		identity.User(),
		eventID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		switch {
		case errors.Is(err, mediasvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid image upload")
		case errors.Is(err, mediasvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "only organisers may upload event images")
		case errors.Is(err, mediasvc.ErrImageLimitReached):
			httperrors.Write(w, http.StatusConflict, httperrors.APIError{
				Code:    "IMAGE_LIMIT_REACHED",
				Message: "event already has the maximum number of images",
			})
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to upload image")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.ImageResponse{
		ID:        image.ID,
		Position:  image.Position,
		URL:       image.URL,
		CreatedAt: image.CreatedAt,
	})
}

func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	images, err := h.service.ListImages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mediasvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "event id is required")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to list images")
		return
	}

	out := make([]dto.ImageResponse, 0, len(images))
	for _, image := range images {
		out = append(out, dto.ImageResponse{
			ID:        image.ID,
			Position:  image.Position,
			URL:       image.URL,
			CreatedAt: image.CreatedAt,
		})
	}
	httperrors.Write(w, http.StatusOK, dto.ImageListResponse{Images: out})
}
