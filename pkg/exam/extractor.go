package exam

import (
	"context"

	"examwatch/pkg/browser"
	"examwatch/pkg/logger"

	"go.uber.org/zap"
)

// Extractor reads the venue calendar from the results page. It never fails:
// every local problem ends in an empty set and a log line.
type Extractor struct {
	timing Timing
}

// NewExtractor creates an extractor using the given delays and timeouts.
func NewExtractor(timing Timing) *Extractor {
	return &Extractor{timing: timing}
}

// Extract opens the configured venue and returns its available target slots.
// The page must already show the venue results (see FormNavigator.PrepareSearch).
func (e *Extractor) Extract(ctx context.Context, drv browser.Driver, cfg CheckConfig) SlotSet {
	ctx = logger.WithVenue(ctx, cfg.VenueName)
	log := logger.FromContext(ctx)
	resolver := browser.NewResolver(drv, cfg.ImplicitWait)

	if err := sleep(ctx, e.timing.ResultsSettle); err != nil {
		return NewSlotSet()
	}

	results := resolver.Resolve(ctx, ResultsContainerLocators, e.timing.ResultsTimeout, false)
	if !results.Found() {
		log.Info("Venue results not shown")
		return NewSlotSet()
	}

	link := resolver.Resolve(ctx, VenueLinkLocators(cfg.VenueName, cfg.VenueID), e.timing.VenueLinkTimeout, true)
	if !link.Found() {
		log.Info("Venue not listed in results", zap.Int("attempts", link.Attempts))
		return NewSlotSet()
	}
	if err := drv.Click(ctx, link.Element); err != nil {
		log.Warn("Could not open venue", zap.Error(err))
		return NewSlotSet()
	}
	log.Debug("Venue opened", zap.Stringer("locator", link.Locator))

	if err := sleep(ctx, e.timing.AfterVenueClick); err != nil {
		return NewSlotSet()
	}

	calendar := resolver.Resolve(ctx, CalendarLocators(cfg.VenueID), e.timing.CalendarTimeout, false)
	if !calendar.Found() {
		log.Info("Venue calendar did not appear")
		return NewSlotSet()
	}
	if err := sleep(ctx, e.timing.CalendarSettle); err != nil {
		return NewSlotSet()
	}

	html, err := drv.OuterHTML(ctx, calendar.Element)
	if err != nil {
		log.Warn("Could not read calendar markup", zap.Error(err))
		return NewSlotSet()
	}

	return ParseCalendar(ctx, html, cfg)
}
