package config

import (
	"fmt"

	"examwatch/pkg/notifier"
)

// NewTelegramConfig returns the Telegram defaults: enabled, 10 second timeout,
// credentials expected from the file or environment.
func NewTelegramConfig() *notifier.TelegramConfig {
	return &notifier.TelegramConfig{
		Enabled:    true,
		Timeout:    10,
		APIBaseURL: notifier.DefaultAPIBaseURL,
	}
}

// validateTelegramConfig accepts missing credentials: the watcher then runs
// without notifications and says so at startup.
func validateTelegramConfig(tc *notifier.TelegramConfig) error {
	if tc.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidValue)
	}
	if tc.Timeout == 0 {
		tc.Timeout = 10
	}

	return nil
}
