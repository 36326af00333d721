package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/posdenous/kinza-backend/internal/services/auth"
	profilesvc "github.com/posdenous/kinza-backend/internal/services/profiles"
	"github.com/posdenous/kinza-backend/internal/transport/http/dto"
	httperrors "github.com/posdenous/kinza-backend/internal/transport/http/errors"
)

type ProfileHandler struct {
	service *profilesvc.Service
}

func NewProfileHandler(service *profilesvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.UpdateBioRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	verdict, err := h.service.UpdateBio(r.Context(), identity.User(), req.Bio)
	body := dto.UpdateBioResponse{Verdict: dto.VerdictFromModel(verdict)}
	if err != nil {
		if errors.Is(err, profilesvc.ErrRejected) {
			httperrors.Write(w, http.StatusUnprocessableEntity, body)
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to update bio")
		return
	}

	body.OK = true
	httperrors.Write(w, http.StatusOK, body)
}
