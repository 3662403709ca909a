package exam

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"examwatch/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ParseCalendar extracts the target-month slots from a snapshot of the venue's
// date picker. Cells whose metadata does not form a real date are skipped.
// A markup that cannot be parsed at all yields an empty set.
func ParseCalendar(ctx context.Context, html string, cfg CheckConfig) SlotSet {
	log := logger.FromContext(ctx)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Warn("Calendar markup unreadable", zap.Error(err))
		return NewSlotSet()
	}

	selector, days := firstAvailableSelection(doc)
	if days == nil {
		log.Info("No available day cells in calendar")
		return NewSlotSet()
	}
	log.Debug("Available day cells matched",
		zap.String("selector", selector),
		zap.Int("cells", days.Length()))

	var slots []Slot
	skipped := 0
	days.Each(func(i int, day *goquery.Selection) {
		slot, err := parseDayCell(day, cfg.VenueName)
		if err != nil {
			skipped++
			log.Debug("Skipping calendar cell", zap.Int("index", i), zap.Error(err))
			return
		}
		if !cfg.IsTarget(slot.Date) {
			return
		}
		slots = append(slots, slot)
	})

	set := NewSlotSet(slots...)
	log.Info("Calendar parsed",
		zap.Int("cells", days.Length()),
		zap.Int("skipped", skipped),
		logger.SlotCountField(set.Len()))
	return set
}

// firstAvailableSelection returns the matches of the first selector in
// AvailableDaySelectors that matches anything.
func firstAvailableSelection(doc *goquery.Document) (string, *goquery.Selection) {
	for _, sel := range AvailableDaySelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return sel, found
		}
	}
	return "", nil
}

// parseDayCell reads data-month (zero based) and data-year from the enclosing
// cell and the day of month from the link text.
func parseDayCell(day *goquery.Selection, venue string) (Slot, error) {
	cell := day.Closest("td")
	if cell.Length() == 0 {
		return Slot{}, fmt.Errorf("%w: day link outside a table cell", ErrInvalidDate)
	}

	rawMonth, ok := cell.Attr("data-month")
	if !ok {
		return Slot{}, fmt.Errorf("%w: missing data-month", ErrInvalidDate)
	}
	rawYear, ok := cell.Attr("data-year")
	if !ok {
		return Slot{}, fmt.Errorf("%w: missing data-year", ErrInvalidDate)
	}

	month, err := strconv.Atoi(strings.TrimSpace(rawMonth))
	if err != nil {
		return Slot{}, fmt.Errorf("%w: month %q", ErrInvalidDate, rawMonth)
	}
	year, err := strconv.Atoi(strings.TrimSpace(rawYear))
	if err != nil {
		return Slot{}, fmt.Errorf("%w: year %q", ErrInvalidDate, rawYear)
	}
	text := strings.TrimSpace(day.Text())
	dom, err := strconv.Atoi(text)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: day %q", ErrInvalidDate, text)
	}

	return NewSlot(venue, year, time.Month(month+1), dom)
}
