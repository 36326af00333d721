package handlers

import (
	"net/http"

	"github.com/posdenous/kinza-backend/internal/config"
	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/transport/http/dto"
	httperrors "github.com/posdenous/kinza-backend/internal/transport/http/errors"
)

type ConfigHandler struct {
	cfg config.Config
}

func NewConfigHandler(cfg config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// Handle exposes the client-facing slice of the config: cities, the
// age range enum and the submission limits the mobile form needs for
// local validation.
func (h *ConfigHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	cities := make([]dto.ConfigCityResponse, 0, len(h.cfg.Cities))
	for _, city := range h.cfg.Cities {
		cities = append(cities, dto.ConfigCityResponse{ID: city.ID, Name: city.Name})
	}

	ageRanges := make([]string, 0, len(enums.AgeRanges()))
	for _, ar := range enums.AgeRanges() {
		ageRanges = append(ageRanges, ar.String())
	}

	httperrors.Write(w, http.StatusOK, dto.ConfigResponse{
		Cities:    cities,
		AgeRanges: ageRanges,
		Moderation: dto.ConfigModerationResponse{
			MaxLengths: h.cfg.Moderation.MaxLengths,
			MinLength:  h.cfg.Moderation.MinLength,
		},
		Events: dto.ConfigEventsResponse{
			MaxFutureDays:       int(h.cfg.Events.MaxFutureWindow.Hours() / 24),
			MaxDurationHours:    int(h.cfg.Events.MaxDuration.Hours()),
			WarnMaxParticipants: h.cfg.Events.WarnMaxParticipants,
			WarnPrice:           h.cfg.Events.WarnPrice,
		},
		Rate: dto.ConfigRateResponse{
			SubmissionsPerMinute: h.cfg.Rate.SubmissionsPerMinute,
			SubmissionsPer10Sec:  h.cfg.Rate.SubmissionsPer10Sec,
		},
	})
}
