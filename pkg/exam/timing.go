package exam

import (
	"context"
	"time"
)

// Timing holds the fixed waits of a cycle. The booking site fills its
// dependent dropdowns asynchronously and exposes no readiness signal, so the
// delays are guesses kept here in one place rather than spread through the code.
type Timing struct {
	PageSettle      time.Duration // after loading the search page
	AfterCountry    time.Duration // location list repopulates
	AfterLocation   time.Duration // test type list repopulates
	AfterTestType   time.Duration // venue results render
	AfterLoginClick time.Duration
	AfterLoginSend  time.Duration
	ResultsSettle   time.Duration // before looking for the results container
	AfterVenueClick time.Duration // venue panel expands
	CalendarSettle  time.Duration // date picker paints availability classes

	ControlTimeout    time.Duration // per dropdown hypothesis, also login link and username
	LoginFieldTimeout time.Duration // password field and submit button
	ResultsTimeout    time.Duration
	VenueLinkTimeout  time.Duration
	CalendarTimeout   time.Duration
}

// DefaultTiming mirrors what the site has needed in practice.
func DefaultTiming() Timing {
	return Timing{
		PageSettle:      3 * time.Second,
		AfterCountry:    3 * time.Second,
		AfterLocation:   3 * time.Second,
		AfterTestType:   5 * time.Second,
		AfterLoginClick: 3 * time.Second,
		AfterLoginSend:  5 * time.Second,
		ResultsSettle:   5 * time.Second,
		AfterVenueClick: 5 * time.Second,
		CalendarSettle:  3 * time.Second,

		ControlTimeout:    15 * time.Second,
		LoginFieldTimeout: 10 * time.Second,
		ResultsTimeout:    20 * time.Second,
		VenueLinkTimeout:  5 * time.Second,
		CalendarTimeout:   15 * time.Second,
	}
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
