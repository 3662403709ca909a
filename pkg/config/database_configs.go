package config

// HistoryConfig represents the cycle history store (SQLite through gorm)
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
	Keep    int    `json:"keep" yaml:"keep"` // newest records retained, 0 keeps everything
}

// NewHistoryConfig creates a history configuration; recording is off by default
func NewHistoryConfig() *HistoryConfig {
	return &HistoryConfig{
		Enabled: false,
		Path:    "./data/examwatch.db",
		Keep:    5000,
	}
}
