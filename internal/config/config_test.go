package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
log:
  level: info
cities:
  - id: berlin
    name: Berlin
  - id: leipzig
    name: Leipzig
moderation:
  platform_domain: kinza.de
  min_length: 5
  max_lengths:
    comment: 400
    event_description: 2000
    event_title: 100
    profile_bio: 300
rate:
  submissions_per_minute: 20
events:
  max_duration: 12h
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
	if len(cfg.Cities) != 2 || cfg.Cities[1].ID != "leipzig" {
		t.Fatalf("unexpected cities override: %+v", cfg.Cities)
	}
	if cfg.Moderation.PlatformDomain != "kinza.de" {
		t.Fatalf("unexpected platform domain: %s", cfg.Moderation.PlatformDomain)
	}
	if cfg.Moderation.MinLength != 5 {
		t.Fatalf("unexpected moderation min_length: %d", cfg.Moderation.MinLength)
	}
	if cfg.Moderation.MaxLengths["comment"] != 400 {
		t.Fatalf("unexpected comment ceiling: %d", cfg.Moderation.MaxLengths["comment"])
	}
	if cfg.Rate.SubmissionsPerMinute != 20 {
		t.Fatalf("unexpected submissions/minute: %d", cfg.Rate.SubmissionsPerMinute)
	}
	if cfg.Events.MaxDuration.String() != "12h0m0s" {
		t.Fatalf("unexpected max duration override: %s", cfg.Events.MaxDuration)
	}

	if len(cfg.Moderation.Profanity) == 0 {
		t.Fatalf("profanity defaults should survive partial moderation override")
	}
	if cfg.Rate.SubmissionsPer10Sec != 3 {
		t.Fatalf("submissions/10s default should stay 3")
	}
	if cfg.Events.WarnMaxParticipants != 500 {
		t.Fatalf("warn_max_participants default should stay 500")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected default http addr: %s", cfg.HTTP.Addr)
	}
	if len(cfg.Cities) != 5 || cfg.Cities[0].ID != "berlin" {
		t.Fatalf("unexpected default cities: %+v", cfg.Cities)
	}
	if cfg.Moderation.PlatformDomain != "kinza.app" {
		t.Fatalf("unexpected default platform domain: %s", cfg.Moderation.PlatformDomain)
	}
	if cfg.Moderation.MaxLengths["event_description"] != 2000 {
		t.Fatalf("unexpected default description ceiling: %d", cfg.Moderation.MaxLengths["event_description"])
	}
	if cfg.Moderation.WordRepeatLimit != 5 {
		t.Fatalf("unexpected default word repeat limit: %d", cfg.Moderation.WordRepeatLimit)
	}
	if cfg.Events.MaxFutureWindow.Hours() != 365*24 {
		t.Fatalf("unexpected default future window: %s", cfg.Events.MaxFutureWindow)
	}
	if cfg.Rate.SubmissionsPerMinute != 10 {
		t.Fatalf("unexpected default submissions/minute: %d", cfg.Rate.SubmissionsPerMinute)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("RATE_SUBMISSIONS_PER_MINUTE", "25")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Fatalf("unexpected redis addr: %s", cfg.Redis.Addr)
	}
	if cfg.Rate.SubmissionsPerMinute != 25 {
		t.Fatalf("unexpected submissions/minute: %d", cfg.Rate.SubmissionsPerMinute)
	}
}

func TestLoadRejectsDefaultJWTSecretInProduction(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "prod")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error when auth.jwt_secret is unset in production")
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"JWT_SECRET",
		"JWT_ACCESS_TTL",
		"RATE_SUBMISSIONS_PER_MINUTE",
		"RATE_SUBMISSIONS_PER_10S",
	} {
		t.Setenv(key, "")
	}
}
