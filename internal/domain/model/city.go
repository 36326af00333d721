package model

// City is a tenant: one city-scoped partition of all platform data.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
