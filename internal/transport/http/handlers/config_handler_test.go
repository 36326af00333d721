package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/posdenous/kinza-backend/internal/config"
)

func TestConfigHandlerResponseShape(t *testing.T) {
	h := NewConfigHandler(config.Default())

	req := httptest.NewRequest(http.MethodGet, "/config", nil)
	rr := httptest.NewRecorder()
	h.Handle(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	requireObjectKey(t, raw, "cities")
	requireObjectKey(t, raw, "age_ranges")
	requireObjectKey(t, raw, "moderation")
	requireObjectKey(t, raw, "events")
	requireObjectKey(t, raw, "rate")

	cities := raw["cities"].([]interface{})
	if len(cities) != 5 {
		t.Fatalf("unexpected cities length: %d", len(cities))
	}

	ageRanges := raw["age_ranges"].([]interface{})
	if len(ageRanges) != 7 {
		t.Fatalf("unexpected age_ranges length: %d", len(ageRanges))
	}
	if ageRanges[0].(string) != "0-2" || ageRanges[6].(string) != "All ages" {
		t.Fatalf("unexpected age_ranges order: %v", ageRanges)
	}

	moderation := raw["moderation"].(map[string]interface{})
	lengths := moderation["max_lengths"].(map[string]interface{})
	if int(lengths["comment"].(float64)) != 500 {
		t.Fatalf("unexpected comment ceiling: %v", lengths["comment"])
	}
	if int(lengths["event_description"].(float64)) != 2000 {
		t.Fatalf("unexpected description ceiling: %v", lengths["event_description"])
	}

	events := raw["events"].(map[string]interface{})
	if int(events["max_future_days"].(float64)) != 365 {
		t.Fatalf("unexpected max_future_days: %v", events["max_future_days"])
	}

	rate := raw["rate"].(map[string]interface{})
	if int(rate["submissions_per_minute"].(float64)) != 10 {
		t.Fatalf("unexpected submissions_per_minute: %v", rate["submissions_per_minute"])
	}
}

func requireObjectKey(t *testing.T, m map[string]interface{}, key string) {
	t.Helper()
	if _, ok := m[key]; !ok {
		t.Fatalf("missing key %q", key)
	}
}
