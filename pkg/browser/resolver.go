package browser

import (
	"context"
	"time"

	"examwatch/pkg/logger"

	"go.uber.org/zap"
)

// DefaultAttemptTimeout bounds a single locator attempt when the caller passes zero.
const DefaultAttemptTimeout = 10 * time.Second

// Probe tries one way of finding an element.
type Probe func(ctx context.Context) (*Element, bool)

// Resolution is the outcome of Resolve. A miss is a value, not an error.
type Resolution struct {
	Element  *Element
	Locator  Locator
	Attempts int
}

// Found reports whether any hypothesis matched.
func (r Resolution) Found() bool {
	return r.Element != nil
}

// Resolver walks an ordered list of locator hypotheses.
type Resolver struct {
	finder         Finder
	defaultTimeout time.Duration
}

// NewResolver creates a resolver. defaultTimeout applies when Resolve gets zero.
func NewResolver(finder Finder, defaultTimeout time.Duration) *Resolver {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultAttemptTimeout
	}
	return &Resolver{finder: finder, defaultTimeout: defaultTimeout}
}

// Resolve tries each locator in order, each bounded by timeout, and returns
// the first element found. Later locators are not attempted after a match.
func (r *Resolver) Resolve(ctx context.Context, locators []Locator, timeout time.Duration, clickable bool) Resolution {
	if timeout <= 0 {
		timeout = r.defaultTimeout
	}

	probes := make([]Probe, len(locators))
	for i, loc := range locators {
		probes[i] = r.probe(loc, timeout, clickable)
	}

	idx, el, tried := FirstMatch(ctx, probes...)
	if idx < 0 {
		logger.FromContext(ctx).Debug("No locator hypothesis matched",
			zap.Int("attempts", tried),
			zap.Bool("clickable", clickable))
		return Resolution{Attempts: tried}
	}

	logger.FromContext(ctx).Debug("Element resolved",
		zap.Stringer("locator", locators[idx]),
		zap.Int("attempt", idx+1))
	return Resolution{Element: el, Locator: locators[idx], Attempts: idx + 1}
}

func (r *Resolver) probe(loc Locator, timeout time.Duration, clickable bool) Probe {
	return func(ctx context.Context) (*Element, bool) {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		el, err := r.finder.Find(attemptCtx, loc, clickable)
		if err != nil || el == nil {
			logger.FromContext(ctx).Debug("Locator miss", zap.Stringer("locator", loc), zap.Error(err))
			return nil, false
		}
		if el.Locator == (Locator{}) {
			el.Locator = loc
		}
		return el, true
	}
}

// FirstMatch evaluates probes in order and short-circuits on the first hit.
// It returns the index of the matching probe, or -1 when every probe missed or
// ctx ended first, along with the number of probes evaluated.
func FirstMatch(ctx context.Context, probes ...Probe) (int, *Element, int) {
	tried := 0
	for i, p := range probes {
		if ctx.Err() != nil {
			break
		}
		tried++
		if el, ok := p(ctx); ok {
			return i, el, tried
		}
	}
	return -1, nil, tried
}
