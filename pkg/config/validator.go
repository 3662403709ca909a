package config

import (
	"fmt"
	"net/url"

	"examwatch/pkg/utils/dateutils"

	"go.uber.org/zap/zapcore"
)

// Validate checks the complete configuration
func (c *Config) Validate() error {
	c.fillDefaults()

	if err := validateTelegramConfig(c.Telegram); err != nil {
		return fmt.Errorf("%w: %w", ErrTelegramConfig, err)
	}

	if err := c.validateSiteConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrSiteConfig, err)
	}

	if err := c.validateTargetConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrTargetConfig, err)
	}

	if err := c.validateMonitorConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrMonitorConfig, err)
	}

	if err := c.validateHistoryConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrHistoryConfig, err)
	}

	if err := c.validateServerConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerConfig, err)
	}

	if err := c.validateAppConfig(); err != nil {
		return fmt.Errorf("%w: %w", ErrAppConfig, err)
	}

	return nil
}

func (c *Config) validateSiteConfig() error {
	site := c.Site

	if site.BaseURL == "" {
		return fmt.Errorf("%w: base_url", ErrMissingRequired)
	}
	u, err := url.Parse(site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url must be an absolute http(s) URL", ErrInvalidValue)
	}

	if site.VenueName == "" {
		return fmt.Errorf("%w: venue_name", ErrMissingRequired)
	}

	if site.CountryID == "" || site.Location == "" || site.TestType == "" {
		return fmt.Errorf("%w: country_id, location and test_type", ErrMissingRequired)
	}

	if site.LoginEnabled && (site.Username == "" || site.Password == "") {
		return fmt.Errorf("%w: username and password when login_enabled", ErrMissingRequired)
	}

	return nil
}

func (c *Config) validateTargetConfig() error {
	if len(c.Target.Months) == 0 {
		return fmt.Errorf("%w: months", ErrMissingRequired)
	}
	for _, m := range c.Target.Months {
		if m < 1 || m > 12 {
			return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidValue, m)
		}
	}
	if c.Target.Year <= 0 {
		return fmt.Errorf("%w: year must be positive", ErrInvalidValue)
	}
	return nil
}

func (c *Config) validateMonitorConfig() error {
	if c.Monitor.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval_minutes must be positive", ErrInvalidValue)
	}
	if _, err := dateutils.LoadLocation(c.Monitor.TimeZone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if c.Browser.ImplicitWait < 0 {
		return fmt.Errorf("%w: implicit_wait must not be negative", ErrInvalidValue)
	}
	return nil
}

func (c *Config) validateHistoryConfig() error {
	if !c.History.Enabled {
		return nil
	}
	if c.History.Path == "" {
		return fmt.Errorf("%w: path", ErrMissingRequired)
	}
	if c.History.Keep < 0 {
		return fmt.Errorf("%w: keep must not be negative", ErrInvalidValue)
	}
	return nil
}

func (c *Config) validateServerConfig() error {
	if !c.Server.Enabled {
		return nil
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port must be within 1-65535", ErrInvalidValue)
	}
	if !c.History.Enabled {
		return fmt.Errorf("%w: the status API serves the history store, enable history", ErrInvalidValue)
	}
	return nil
}

func (c *Config) validateAppConfig() error {
	if _, err := zapcore.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidValue, c.App.LogLevel)
	}
	return nil
}
