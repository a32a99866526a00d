package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// UpstreamConfig contains live-location API configuration
type UpstreamConfig struct {
	BaseURL    string `yaml:"baseURL" validate:"omitempty,url"`
	FleetPath  string `yaml:"fleetPath" validate:"omitempty"`
	SearchPath string `yaml:"searchPath" validate:"omitempty"`
	TimeoutMS  int    `yaml:"timeoutMS" validate:"gte=0"`
}

// TrackerConfig contains polling and reconciliation configuration
type TrackerConfig struct {
	PollIntervalMS int `yaml:"pollIntervalMS" validate:"gte=0"`
	// AbsenceToleranceMS bounds how long a selected train may be missing
	// from fleet snapshots before the selection is cleared. Zero retains
	// the last-known record indefinitely.
	AbsenceToleranceMS int `yaml:"absenceToleranceMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Tracker  TrackerConfig  `yaml:"tracker"`
}
