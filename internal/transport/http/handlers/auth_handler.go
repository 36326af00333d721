package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	authsvc "github.com/posdenous/kinza-backend/internal/services/auth"
	"github.com/posdenous/kinza-backend/internal/transport/http/dto"
	httperrors "github.com/posdenous/kinza-backend/internal/transport/http/errors"
)

type AuthHandler struct {
	jwt *authsvc.JWTManager
	env string
}

func NewAuthHandler(jwt *authsvc.JWTManager, env string) *AuthHandler {
	return &AuthHandler{jwt: jwt, env: env}
}

// DevToken mints an access token without an upstream identity
// provider. Disabled outside dev so it never becomes a login bypass.
func (h *AuthHandler) DevToken(w http.ResponseWriter, r *http.Request) {
	if h.env == "prod" {
		writeNotFound(w, "NOT_FOUND", "not found")
		return
	}
	if h.jwt == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.DevTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "user_id is required")
		return
	}
	role, err := enums.ParseRole(req.Role)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "unknown role")
		return
	}

	token, expiresAt, err := h.jwt.GenerateAccessToken(req.UserID, req.CityID, role)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to issue token")
		return
	}

	expiresIn := int64(time.Until(expiresAt).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}
	httperrors.Write(w, http.StatusOK, dto.TokenResponse{
		AccessToken:  token,
		ExpiresInSec: expiresIn,
	})
}
