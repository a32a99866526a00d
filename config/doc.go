// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Defaults are filled after validation so a minimal file still yields a
// runnable configuration.
package config
