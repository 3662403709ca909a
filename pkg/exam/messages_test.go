package exam

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPositiveMessageMarksNewSlots(t *testing.T) {
	cfg := testConfig()
	d := NewDetector(cfg)
	old := mustSlot(cfg.VenueName, 2025, time.July, 14)
	fresh := mustSlot(cfg.VenueName, 2025, time.August, 3)
	d.Observe(NewSlotSet(old), at(10, 0))
	dec := d.Observe(NewSlotSet(old, fresh), at(10, 10))

	msg := NewMessageFormatter(cfg).Positive(dec, at(10, 10))

	assert.Contains(t, msg, "<b>Bilkent University</b>")
	assert.Contains(t, msg, "03 August 2025 - Sunday 🆕")
	assert.NotContains(t, msg, "14 July 2025 - Monday 🆕")
	assert.Contains(t, msg, `<a href="https://booking.example.test/book">`)
	assert.True(t, strings.HasSuffix(msg, "10:10:00"))
	assert.Less(t, strings.Index(msg, "14 July"), strings.Index(msg, "03 August"), "dates sorted ascending")
}

func TestMessagesEscapeHTML(t *testing.T) {
	cfg := testConfig()
	cfg.VenueName = "Kent & <Co>"
	f := NewMessageFormatter(cfg)

	assert.Contains(t, f.Negative(at(2, 3)), "Kent &amp; &lt;Co&gt;")
	assert.Contains(t, f.Negative(at(2, 3)), "July-August 2025")

	errMsg := f.Error(errors.New(`select <option> "x" missing`), at(2, 3))
	assert.Contains(t, errMsg, "&lt;option&gt;")
	assert.Contains(t, errMsg, "2025-06-20 02:03:00")
}
