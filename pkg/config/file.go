package config

import (
	"examwatch/pkg/notifier"
)

// Config is the root configuration
type Config struct {
	Telegram *notifier.TelegramConfig `json:"telegram" yaml:"telegram"`
	Site     *SiteConfig              `json:"site" yaml:"site"`
	Target   *TargetConfig            `json:"target" yaml:"target"`
	Browser  *BrowserConfig           `json:"browser" yaml:"browser"`
	Monitor  *MonitorConfig           `json:"monitor" yaml:"monitor"`
	History  *HistoryConfig           `json:"history" yaml:"history"`
	Server   *ServerConfig            `json:"server" yaml:"server"`
	App      *AppConfig               `json:"app" yaml:"app"`
}

// getDefaultConfig returns a configuration where every section holds its defaults
func getDefaultConfig() *Config {
	return &Config{
		Telegram: NewTelegramConfig(),
		Site:     NewSiteConfig(),
		Target:   NewTargetConfig(),
		Browser:  NewBrowserConfig(),
		Monitor:  NewMonitorConfig(),
		History:  NewHistoryConfig(),
		Server:   NewServerConfig(),
		App:      NewAppConfig(),
	}
}

// fillDefaults replaces sections a file left out with their defaults
func (c *Config) fillDefaults() {
	d := getDefaultConfig()
	if c.Telegram == nil {
		c.Telegram = d.Telegram
	}
	if c.Site == nil {
		c.Site = d.Site
	}
	if c.Target == nil {
		c.Target = d.Target
	}
	if c.Browser == nil {
		c.Browser = d.Browser
	}
	if c.Monitor == nil {
		c.Monitor = d.Monitor
	}
	if c.History == nil {
		c.History = d.History
	}
	if c.Server == nil {
		c.Server = d.Server
	}
	if c.App == nil {
		c.App = d.App
	}
}
