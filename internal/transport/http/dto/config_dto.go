package dto

type ConfigCityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ConfigModerationResponse struct {
	MaxLengths map[string]int `json:"max_lengths"`
	MinLength  int            `json:"min_length"`
}

type ConfigEventsResponse struct {
	MaxFutureDays       int     `json:"max_future_days"`
	MaxDurationHours    int     `json:"max_duration_hours"`
	WarnMaxParticipants int     `json:"warn_max_participants"`
	WarnPrice           float64 `json:"warn_price"`
}

type ConfigRateResponse struct {
	SubmissionsPerMinute int `json:"submissions_per_minute"`
	SubmissionsPer10Sec  int `json:"submissions_per_10s"`
}

type ConfigResponse struct {
	Cities     []ConfigCityResponse     `json:"cities"`
	AgeRanges  []string                 `json:"age_ranges"`
	Moderation ConfigModerationResponse `json:"moderation"`
	Events     ConfigEventsResponse     `json:"events"`
	Rate       ConfigRateResponse       `json:"rate"`
}
