package main

import (
	"testing"

	"github.com/theoremus-urban-solutions/train-tracker/config"
)

func baseConfig(t *testing.T) config.AppConfig {
	t.Helper()
	cfg, err := config.Parse([]byte(`
upstream:
  baseURL: "https://file.example.com"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cfg
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := baseConfig(t)
	t.Setenv("UPSTREAM_BASE_URL", "https://env.example.com")
	t.Setenv("PORT", "9191")

	applyEnvOverrides(&cfg)

	if cfg.Upstream.BaseURL != "https://env.example.com" {
		t.Errorf("base URL env override not applied: %q", cfg.Upstream.BaseURL)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("port env override not applied: %d", cfg.Server.Port)
	}
}

func TestApplyEnvOverridesIgnoresInvalidPort(t *testing.T) {
	cfg := baseConfig(t)
	t.Setenv("UPSTREAM_BASE_URL", "")
	t.Setenv("PORT", "not-a-port")

	applyEnvOverrides(&cfg)

	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("invalid PORT should keep the configured value, got %d", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "https://file.example.com" {
		t.Errorf("empty env var should not clear the base URL: %q", cfg.Upstream.BaseURL)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := baseConfig(t)

	applyFlagOverrides(&cfg, 7070, "https://flag.example.com", 2, 30)

	if cfg.Server.Port != 7070 {
		t.Errorf("port flag not applied: %d", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "https://flag.example.com" {
		t.Errorf("base URL flag not applied: %q", cfg.Upstream.BaseURL)
	}
	if cfg.Tracker.PollIntervalMS != 2000 {
		t.Errorf("poll interval flag not applied: %d", cfg.Tracker.PollIntervalMS)
	}
	if cfg.Tracker.AbsenceToleranceMS != 30000 {
		t.Errorf("absence tolerance flag not applied: %d", cfg.Tracker.AbsenceToleranceMS)
	}
}

func TestApplyFlagOverridesZeroValuesKeepConfig(t *testing.T) {
	cfg := baseConfig(t)

	applyFlagOverrides(&cfg, 0, "", 0, 0)

	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("unset port flag should keep config value, got %d", cfg.Server.Port)
	}
	if cfg.Upstream.BaseURL != "https://file.example.com" {
		t.Errorf("unset base URL flag should keep config value: %q", cfg.Upstream.BaseURL)
	}
	if cfg.Tracker.PollIntervalMS != config.DefaultPollIntervalMS {
		t.Errorf("unset poll interval flag should keep config value: %d", cfg.Tracker.PollIntervalMS)
	}
}
