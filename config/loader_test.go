package config

import "testing"

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
upstream:
  baseURL: "https://tracker.example.com"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Server.Port)
	}
	if cfg.Upstream.FleetPath != DefaultFleetPath {
		t.Errorf("expected default fleet path, got %q", cfg.Upstream.FleetPath)
	}
	if cfg.Upstream.SearchPath != DefaultSearchPath {
		t.Errorf("expected default search path, got %q", cfg.Upstream.SearchPath)
	}
	if cfg.Upstream.TimeoutMS != DefaultTimeoutMS {
		t.Errorf("expected default timeout, got %d", cfg.Upstream.TimeoutMS)
	}
	if cfg.Tracker.PollIntervalMS != DefaultPollIntervalMS {
		t.Errorf("expected default poll interval, got %d", cfg.Tracker.PollIntervalMS)
	}
	if cfg.Tracker.AbsenceToleranceMS != 0 {
		t.Errorf("absence tolerance should default to retain-forever (0), got %d", cfg.Tracker.AbsenceToleranceMS)
	}
}

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: 9090
upstream:
  baseURL: "https://tracker.example.com"
  fleetPath: "/v2/trains"
  searchPath: "/v2/search"
  timeoutMS: 2500
tracker:
  pollIntervalMS: 1000
  absenceToleranceMS: 30000
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Upstream.FleetPath != "/v2/trains" || cfg.Upstream.TimeoutMS != 2500 {
		t.Errorf("upstream not honored: %+v", cfg.Upstream)
	}
	if cfg.Tracker.PollIntervalMS != 1000 || cfg.Tracker.AbsenceToleranceMS != 30000 {
		t.Errorf("tracker not honored: %+v", cfg.Tracker)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad base url", yaml: "upstream:\n  baseURL: \"::not a url::\""},
		{name: "negative poll interval", yaml: "tracker:\n  pollIntervalMS: -5"},
		{name: "negative timeout", yaml: "upstream:\n  timeoutMS: -1"},
		{name: "not yaml", yaml: ": ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
