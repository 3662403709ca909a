package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"examwatch/pkg/utils/dateutils"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads the configuration file at configPath (or the first default
// location that exists), then applies environment overrides. A missing file
// yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	config := getDefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
		}

		switch ext := filepath.Ext(configPath); ext {
		case ".json":
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("%w: JSON parsing failed: %v", ErrInvalidFormat, err)
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("%w: YAML parsing failed: %v", ErrInvalidFormat, err)
			}
		default:
			return nil, fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	config.fillDefaults()
	if err := mergeEnvVars(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to configPath as YAML or JSON depending on the extension
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ext := filepath.Ext(configPath)
	var data []byte
	var err error

	switch ext {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	if err != nil {
		return fmt.Errorf("config serialization failed: %w", err)
	}

	// The file may hold the bot token and site password.
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getDefaultConfigPath returns the first existing config file:
// current directory, then user config directory, then system config directory
func getDefaultConfigPath() string {
	paths := []string{
		"./config.yaml",
		"./config.json",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".examwatch", "config.yaml"),
			filepath.Join(homeDir, ".examwatch", "config.json"),
		)
	}

	paths = append(paths,
		"/etc/examwatch/config.yaml",
		"/etc/examwatch/config.json",
	)

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "./config.yaml"
}

// mergeEnvVars applies environment overrides on top of file values
func mergeEnvVars(config *Config) error {
	mergeTelegramEnvVars(config)
	mergeSiteEnvVars(config)
	if err := mergeTargetEnvVars(config); err != nil {
		return err
	}
	mergeBrowserEnvVars(config)
	mergeMonitorEnvVars(config)
	mergeHistoryEnvVars(config)
	mergeServerEnvVars(config)
	mergeAppEnvVars(config)
	return nil
}

func mergeTelegramEnvVars(config *Config) {
	tc := config.Telegram
	tc.BotToken = getEnv("TELEGRAM_BOT_TOKEN", tc.BotToken)
	tc.ChatID = getEnv("CHAT_ID", tc.ChatID)
	tc.APIBaseURL = getEnv("TELEGRAM_API_BASE_URL", tc.APIBaseURL)
	tc.Enabled = getEnvBool("TELEGRAM_ENABLED", tc.Enabled)
}

func mergeSiteEnvVars(config *Config) {
	site := config.Site

	envMappings := map[string]*string{
		"BASE_URL":   &site.BaseURL,
		"USERNAME":   &site.Username,
		"PASSWORD":   &site.Password,
		"COUNTRY_ID": &site.CountryID,
		"LOCATION":   &site.Location,
		"TEST_TYPE":  &site.TestType,
		"VENUE_NAME": &site.VenueName,
		"VENUE_ID":   &site.VenueID,
	}

	for envKey, fieldPtr := range envMappings {
		if value := os.Getenv(envKey); value != "" {
			*fieldPtr = value
		}
	}

	site.LoginEnabled = getEnvBool("LOGIN_ENABLED", site.LoginEnabled)
}

func mergeTargetEnvVars(config *Config) error {
	if raw := os.Getenv("TARGET_MONTHS"); raw != "" {
		months, err := dateutils.ParseMonths(raw)
		if err != nil {
			return fmt.Errorf("%w: TARGET_MONTHS: %v", ErrInvalidValue, err)
		}
		config.Target.Months = make([]int, len(months))
		for i, m := range months {
			config.Target.Months[i] = int(m)
		}
	}

	if raw := os.Getenv("TARGET_YEAR"); raw != "" {
		year, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: TARGET_YEAR: %v", ErrInvalidValue, err)
		}
		config.Target.Year = year
	}
	return nil
}

func mergeBrowserEnvVars(config *Config) {
	bc := config.Browser
	bc.Headless = getEnvBool("HEADLESS_MODE", bc.Headless)
	bc.ImplicitWait = getEnvInt("IMPLICIT_WAIT", bc.ImplicitWait)
	bc.ExecPath = getEnv("CHROME_PATH", bc.ExecPath)
	bc.UserAgent = getEnv("USER_AGENT", bc.UserAgent)
}

func mergeMonitorEnvVars(config *Config) {
	mc := config.Monitor
	mc.IntervalMinutes = getEnvInt("CHECK_INTERVAL_MINUTES", mc.IntervalMinutes)
	mc.TimeZone = getEnv("TIMEZONE", mc.TimeZone)
	mc.PositiveNotifications = getEnvBool("ENABLE_POSITIVE_NOTIFICATIONS", mc.PositiveNotifications)
	mc.NegativeNotifications = getEnvBool("ENABLE_NEGATIVE_NOTIFICATIONS", mc.NegativeNotifications)
}

func mergeHistoryEnvVars(config *Config) {
	hc := config.History
	hc.Enabled = getEnvBool("HISTORY_ENABLED", hc.Enabled)
	hc.Path = getEnv("HISTORY_PATH", hc.Path)
	hc.Keep = getEnvInt("HISTORY_KEEP", hc.Keep)
}

func mergeServerEnvVars(config *Config) {
	sc := config.Server
	sc.Enabled = getEnvBool("SERVER_ENABLED", sc.Enabled)
	sc.Port = getEnvInt("SERVER_PORT", sc.Port)
	sc.Address = getEnv("SERVER_ADDRESS", sc.Address)
}

func mergeAppEnvVars(config *Config) {
	ac := config.App
	ac.LogLevel = getEnv("LOG_LEVEL", ac.LogLevel)
	ac.LogFile = getEnv("LOG_FILE", ac.LogFile)
	ac.Environment = getEnv("APP_ENV", ac.Environment)
}
