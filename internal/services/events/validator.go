package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
)

const (
	titleMinLen = 3
	titleMaxLen = 100
	venueMinLen = 2
	venueMaxLen = 200
)

// Limits are the tunable validation thresholds. Zero values fall back
// to the platform defaults.
type Limits struct {
	MaxFutureWindow     time.Duration
	MaxDuration         time.Duration
	WarnMaxParticipants int
	WarnPrice           float64
	WarnMinDescription  int
}

// ValidationResult separates blocking errors from advisory warnings.
// Errors block persistence; warnings never do.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validator checks a single draft against structural and business
// rules. Every branch degrades to an error string: unparseable dates
// and absent fields never panic, and identical drafts always produce
// identical results.
type Validator struct {
	cities map[string]struct{}
	limits Limits
	now    func() time.Time
}

func NewValidator(cities []model.City, limits Limits) *Validator {
	if limits.MaxFutureWindow <= 0 {
		limits.MaxFutureWindow = 365 * 24 * time.Hour
	}
	if limits.MaxDuration <= 0 {
		limits.MaxDuration = 24 * time.Hour
	}
	if limits.WarnMaxParticipants <= 0 {
		limits.WarnMaxParticipants = 500
	}
	if limits.WarnPrice <= 0 {
		limits.WarnPrice = 50
	}
	if limits.WarnMinDescription <= 0 {
		limits.WarnMinDescription = 50
	}

	// Event city membership is case-insensitive, unlike the exact
	// comparison in the access rules. Observed behavior, kept as is.
	known := make(map[string]struct{}, len(cities))
	for _, city := range cities {
		id := strings.ToLower(strings.TrimSpace(city.ID))
		if id != "" {
			known[id] = struct{}{}
		}
	}

	return &Validator{
		cities: known,
		limits: limits,
		now:    time.Now,
	}
}

// ValidateAll runs every field validator unconditionally so a form can
// surface all problems in one pass.
func (v *Validator) ValidateAll(draft model.EventDraft) ValidationResult {
	var errs []string
	errs = append(errs, v.ValidateTitle(draft.Title)...)
	errs = append(errs, v.ValidateAgeRange(draft.AgeRange)...)
	errs = append(errs, v.ValidateVenue(draft.Venue)...)
	errs = append(errs, v.ValidateTiming(draft.StartTime, draft.EndTime)...)
	errs = append(errs, v.ValidateScope(draft.CityID, draft.OrganizerID)...)

	return ValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: v.Warnings(draft),
	}
}

func (v *Validator) ValidateTitle(title string) []string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return []string{"Title is required"}
	}

	var errs []string
	if len([]rune(trimmed)) < titleMinLen {
		errs = append(errs, "Title must be at least 3 characters")
	}
	if len([]rune(trimmed)) > titleMaxLen {
		errs = append(errs, "Title must be at most 100 characters")
	}
	// Field-level markup defense only; output encoding still happens
	// downstream.
	if strings.ContainsAny(trimmed, "<>") {
		errs = append(errs, "Title contains invalid characters")
	}
	return errs
}

func (v *Validator) ValidateAgeRange(ageRange string) []string {
	if strings.TrimSpace(ageRange) == "" {
		return []string{"Age range is required"}
	}
	if _, err := enums.ParseAgeRange(ageRange); err != nil {
		return []string{fmt.Sprintf("Age range must be one of: %s", joinAgeRanges())}
	}
	return nil
}

func (v *Validator) ValidateVenue(venue string) []string {
	trimmed := strings.TrimSpace(venue)
	if trimmed == "" {
		return []string{"Venue is required"}
	}

	var errs []string
	if len([]rune(trimmed)) < venueMinLen {
		errs = append(errs, "Venue must be at least 2 characters")
	}
	if len([]rune(trimmed)) > venueMaxLen {
		errs = append(errs, "Venue must be at most 200 characters")
	}
	return errs
}

func (v *Validator) ValidateTiming(startTime, endTime string) []string {
	if strings.TrimSpace(startTime) == "" {
		errs := []string{"Start time is required"}
		if strings.TrimSpace(endTime) != "" {
			errs = append(errs, v.validateEnd(time.Time{}, false, endTime)...)
		}
		return errs
	}

	var errs []string
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(startTime))
	startValid := err == nil
	if !startValid {
		errs = append(errs, "Start time is invalid")
	} else {
		now := v.now()
		if start.Before(now) {
			errs = append(errs, "Start time cannot be in the past")
		}
		if start.After(now.Add(v.limits.MaxFutureWindow)) {
			errs = append(errs, "Start time cannot be more than 1 year in the future")
		}
	}

	if strings.TrimSpace(endTime) != "" {
		errs = append(errs, v.validateEnd(start, startValid, endTime)...)
	}
	return errs
}

func (v *Validator) validateEnd(start time.Time, startValid bool, endTime string) []string {
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(endTime))
	if err != nil {
		return []string{"End time is invalid"}
	}
	if !startValid {
		return nil
	}

	var errs []string
	if !end.After(start) {
		errs = append(errs, "End time must be after start time")
	} else if end.Sub(start) > v.limits.MaxDuration {
		errs = append(errs, "Event cannot last longer than 24 hours")
	}
	return errs
}

func (v *Validator) ValidateScope(cityID, organizerID string) []string {
	var errs []string

	trimmedCity := strings.TrimSpace(cityID)
	if trimmedCity == "" {
		errs = append(errs, "City is required")
	} else if _, ok := v.cities[strings.ToLower(trimmedCity)]; !ok {
		errs = append(errs, fmt.Sprintf("Unknown city: %s", trimmedCity))
	}

	if strings.TrimSpace(organizerID) == "" {
		errs = append(errs, "Organizer is required")
	}
	return errs
}

// Warnings are advisory only and never affect IsValid.
func (v *Validator) Warnings(draft model.EventDraft) []string {
	var warnings []string
	if draft.MaxParticipants > v.limits.WarnMaxParticipants {
		warnings = append(warnings, fmt.Sprintf("Events with more than %d participants require additional approval", v.limits.WarnMaxParticipants))
	}
	if draft.Price > v.limits.WarnPrice {
		warnings = append(warnings, fmt.Sprintf("Events priced above %.0f may have lower attendance", v.limits.WarnPrice))
	}
	if len([]rune(strings.TrimSpace(draft.Description))) < v.limits.WarnMinDescription {
		warnings = append(warnings, "Events with detailed descriptions perform better")
	}
	return warnings
}

func joinAgeRanges() string {
	ranges := enums.AgeRanges()
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}
