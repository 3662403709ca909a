package exam

import (
	"strconv"
	"time"

	"examwatch/pkg/utils/dateutils"
)

// Credentials for the optional login step.
type Credentials struct {
	Username string
	Password string
}

// CheckConfig is the immutable per-run snapshot the cycle works from.
type CheckConfig struct {
	BaseURL   string
	CountryID string
	Location  string
	TestType  string
	VenueName string
	VenueID   string

	TargetMonths []time.Month
	TargetYear   int

	PositiveEnabled bool
	NegativeEnabled bool

	Interval time.Duration
	TimeZone *time.Location

	// Login is nil when the login step is skipped.
	Login *Credentials

	// ImplicitWait is the default per-attempt locator timeout.
	ImplicitWait time.Duration
}

// IsTarget reports whether date falls in a target month of the target year.
func (c CheckConfig) IsTarget(date time.Time) bool {
	if date.Year() != c.TargetYear {
		return false
	}
	for _, m := range c.TargetMonths {
		if date.Month() == m {
			return true
		}
	}
	return false
}

// MonthsLabel renders the target months for messages, e.g. "July-August 2025".
func (c CheckConfig) MonthsLabel() string {
	return dateutils.MonthNames(c.TargetMonths, "-") + " " + strconv.Itoa(c.TargetYear)
}

func (c CheckConfig) location() *time.Location {
	if c.TimeZone == nil {
		return time.Local
	}
	return c.TimeZone
}
