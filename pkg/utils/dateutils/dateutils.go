package dateutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Common date layouts used throughout the application
const (
	LayoutDate     = "2006-01-02"
	LayoutDateTime = "2006-01-02 15:04:05"
	LayoutSlotDate = "02 January 2006 - Monday"
	LayoutClock    = "15:04:05"
)

// DefaultTimeZone is the operator's zone when none is configured.
const DefaultTimeZone = "Europe/Istanbul"

// LoadLocation resolves a zone name. Empty and "Local" map to time.Local,
// "UTC" to time.UTC; anything else goes through the tz database.
func LoadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", name, err)
	}
	return loc, nil
}

// FormatSlotDate renders a slot date for humans, e.g. "14 July 2025 - Monday".
func FormatSlotDate(date time.Time) string {
	return date.Format(LayoutSlotDate)
}

// FormatCheckTime renders a check timestamp in loc.
func FormatCheckTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(LayoutDateTime)
}

// ParseMonths parses a comma separated month list such as "7,8" into months.
// Whitespace is ignored, duplicates collapse, and order is preserved.
func ParseMonths(s string) ([]time.Month, error) {
	var months []time.Month
	seen := make(map[time.Month]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: %w", part, err)
		}
		if n < 1 || n > 12 {
			return nil, fmt.Errorf("month %d out of range 1-12", n)
		}
		m := time.Month(n)
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("no months in %q", s)
	}
	return months, nil
}

// MonthNames joins the English month names with sep.
func MonthNames(months []time.Month, sep string) string {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.String()
	}
	return strings.Join(names, sep)
}
