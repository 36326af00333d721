package dto

type DevTokenRequest struct {
	UserID string `json:"user_id"`
	CityID string `json:"city_id"`
	Role   string `json:"role"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresInSec int64  `json:"expires_in_sec"`
}
