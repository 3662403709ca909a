package config

import (
	"examwatch/pkg/utils/dateutils"
)

// MonitorConfig represents the polling and notification policy settings
type MonitorConfig struct {
	IntervalMinutes       int    `json:"interval_minutes" yaml:"interval_minutes"`
	TimeZone              string `json:"timezone" yaml:"timezone"` // operator's zone, drives the negative cadence
	PositiveNotifications bool   `json:"positive_notifications" yaml:"positive_notifications"`
	NegativeNotifications bool   `json:"negative_notifications" yaml:"negative_notifications"`
}

// BrowserConfig represents the headless browser settings
type BrowserConfig struct {
	Headless     bool   `json:"headless" yaml:"headless"`
	ExecPath     string `json:"exec_path" yaml:"exec_path"`
	ImplicitWait int    `json:"implicit_wait" yaml:"implicit_wait"` // seconds
	UserAgent    string `json:"user_agent" yaml:"user_agent"`
	WindowWidth  int    `json:"window_width" yaml:"window_width"`
	WindowHeight int    `json:"window_height" yaml:"window_height"`
}

// ServerConfig represents the status API settings
type ServerConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Port    int    `json:"port" yaml:"port"`
	Address string `json:"address" yaml:"address"`
}

// AppConfig represents application configuration settings
type AppConfig struct {
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFile     string `json:"log_file" yaml:"log_file"`
	Environment string `json:"environment" yaml:"environment"` // development or production
}

// NewMonitorConfig polls every 10 minutes in Turkey time with both notification kinds on
func NewMonitorConfig() *MonitorConfig {
	return &MonitorConfig{
		IntervalMinutes:       10,
		TimeZone:              dateutils.DefaultTimeZone,
		PositiveNotifications: true,
		NegativeNotifications: true,
	}
}

// NewBrowserConfig creates a headless browser configuration
func NewBrowserConfig() *BrowserConfig {
	return &BrowserConfig{
		Headless:     true,
		ImplicitWait: 10,
		WindowWidth:  1920,
		WindowHeight: 1080,
	}
}

// NewServerConfig creates a server configuration; the status API is off by default
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Enabled: false,
		Port:    8080,
		Address: "0.0.0.0",
	}
}

// NewAppConfig creates an application configuration
func NewAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:    "info",
		LogFile:     "./logs/examwatch.log",
		Environment: "production",
	}
}

// IsDevelopment reports whether console-only development logging is wanted
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development" || a.Environment == "dev"
}
