package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// Defaults applied after a successful load.
const (
	DefaultPort           = 8080
	DefaultFleetPath      = "/api/live-location/trains"
	DefaultSearchPath     = "/api/live-location/search"
	DefaultTimeoutMS      = 10000
	DefaultPollIntervalMS = 5000
)

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse unmarshals, validates and defaults a raw yaml configuration.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if cfg.Server.Port != 0 {
		if err := v.Struct(cfg.Server); err != nil {
			return AppConfig{}, err
		}
	}
	if err := v.Struct(cfg.Upstream); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Tracker); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Upstream.FleetPath == "" {
		cfg.Upstream.FleetPath = DefaultFleetPath
	}
	if cfg.Upstream.SearchPath == "" {
		cfg.Upstream.SearchPath = DefaultSearchPath
	}
	if cfg.Upstream.TimeoutMS == 0 {
		cfg.Upstream.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Tracker.PollIntervalMS == 0 {
		cfg.Tracker.PollIntervalMS = DefaultPollIntervalMS
	}
}
