package config

import (
	"fmt"
	"time"

	"examwatch/pkg/browser"
	"examwatch/pkg/exam"
	"examwatch/pkg/utils/dateutils"
)

// CheckConfig builds the immutable snapshot a check cycle works from.
func (c *Config) CheckConfig() (exam.CheckConfig, error) {
	c.fillDefaults()

	loc, err := dateutils.LoadLocation(c.Monitor.TimeZone)
	if err != nil {
		return exam.CheckConfig{}, fmt.Errorf("%w: %v", ErrMonitorConfig, err)
	}

	months := make([]time.Month, len(c.Target.Months))
	for i, m := range c.Target.Months {
		months[i] = time.Month(m)
	}

	cc := exam.CheckConfig{
		BaseURL:         c.Site.BaseURL,
		CountryID:       c.Site.CountryID,
		Location:        c.Site.Location,
		TestType:        c.Site.TestType,
		VenueName:       c.Site.VenueName,
		VenueID:         c.Site.VenueID,
		TargetMonths:    months,
		TargetYear:      c.Target.Year,
		PositiveEnabled: c.Monitor.PositiveNotifications,
		NegativeEnabled: c.Monitor.NegativeNotifications,
		Interval:        time.Duration(c.Monitor.IntervalMinutes) * time.Minute,
		TimeZone:        loc,
		ImplicitWait:    time.Duration(c.Browser.ImplicitWait) * time.Second,
	}
	if c.Site.LoginEnabled {
		cc.Login = &exam.Credentials{Username: c.Site.Username, Password: c.Site.Password}
	}
	return cc, nil
}

// BrowserOptions maps the browser section onto session options.
func (c *Config) BrowserOptions() browser.Options {
	c.fillDefaults()

	opts := browser.DefaultOptions()
	opts.Headless = c.Browser.Headless
	opts.ExecPath = c.Browser.ExecPath
	if c.Browser.UserAgent != "" {
		opts.UserAgent = c.Browser.UserAgent
	}
	if c.Browser.WindowWidth > 0 && c.Browser.WindowHeight > 0 {
		opts.Width = c.Browser.WindowWidth
		opts.Height = c.Browser.WindowHeight
	}
	return opts
}
