package config

import "errors"

// Configuration-related error definitions using sentinel errors pattern
var (
	// Generic errors
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidFormat  = errors.New("invalid configuration file format")

	// Configuration validation errors
	ErrMissingRequired = errors.New("missing required configuration item")
	ErrInvalidValue    = errors.New("invalid configuration value")

	// Section errors
	ErrTelegramConfig = errors.New("telegram configuration error")
	ErrSiteConfig     = errors.New("booking site configuration error")
	ErrTargetConfig   = errors.New("target dates configuration error")
	ErrMonitorConfig  = errors.New("monitor configuration error")
	ErrHistoryConfig  = errors.New("history configuration error")
	ErrServerConfig   = errors.New("server configuration error")
	ErrAppConfig      = errors.New("application configuration error")
)
