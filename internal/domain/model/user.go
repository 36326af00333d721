package model

import "github.com/posdenous/kinza-backend/internal/domain/enums"

// User is the acting identity behind every access decision. CityID is
// the home tenant and does not change within a session; admins are the
// only role with virtual membership in every city.
type User struct {
	ID     string     `json:"id"`
	CityID string     `json:"city_id"`
	Role   enums.Role `json:"role"`
}
