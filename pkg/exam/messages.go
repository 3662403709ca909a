package exam

import (
	"fmt"
	"html"
	"strings"
	"time"

	"examwatch/pkg/utils/dateutils"
)

// MessageFormatter renders notifications in the Telegram HTML subset.
type MessageFormatter struct {
	cfg CheckConfig
}

// NewMessageFormatter creates a formatter for cfg.
func NewMessageFormatter(cfg CheckConfig) MessageFormatter {
	return MessageFormatter{cfg: cfg}
}

// Positive lists every available slot grouped by venue. Slots that were not
// in the previous observation are marked.
func (f MessageFormatter) Positive(dec Decision, now time.Time) string {
	var b strings.Builder
	b.WriteString("🎉 <b>New exam dates found!</b>\n\n")

	venues, dates := dec.Current.ByVenue()
	for _, venue := range venues {
		fmt.Fprintf(&b, "📍 <b>%s</b>\n", html.EscapeString(venue))
		for _, d := range dates[venue] {
			marker := ""
			if !dec.FirstObservation && dec.New.Contains(Slot{Date: d, Venue: venue}) {
				marker = " 🆕"
			}
			fmt.Fprintf(&b, "   📅 %s%s\n", dateutils.FormatSlotDate(d), marker)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "🔗 <a href=\"%s\">Book now</a>\n", html.EscapeString(f.cfg.BaseURL))
	fmt.Fprintf(&b, "⏰ Checked at: %s", f.clock(now))
	return b.String()
}

// Negative reports that no target date is open.
func (f MessageFormatter) Negative(now time.Time) string {
	return fmt.Sprintf("❌ No available exam dates in %s at <b>%s</b>.\n⏰ Checked at: %s",
		html.EscapeString(f.cfg.MonthsLabel()),
		html.EscapeString(f.cfg.VenueName),
		f.clock(now))
}

// Error reports a failed cycle.
func (f MessageFormatter) Error(err error, now time.Time) string {
	return fmt.Sprintf("⚠️ <b>Exam watch error</b>\n\n❌ %s\n⏰ %s",
		html.EscapeString(err.Error()),
		dateutils.FormatCheckTime(now, f.cfg.location()))
}

func (f MessageFormatter) clock(now time.Time) string {
	return now.In(f.cfg.location()).Format(dateutils.LayoutClock)
}
