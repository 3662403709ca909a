package exam

import (
	"context"
	"errors"
	"sync"
	"time"

	"examwatch/pkg/browser"
)

// fakeSession is an in-memory browser.Session. Locators listed in present are
// found; every other lookup misses.
type fakeSession struct {
	mu sync.Mutex

	present  map[browser.Locator]bool
	calendar string
	navErr   error
	outerErr error
	panicOn  string

	navigated []string
	finds     []browser.Locator
	clicked   []browser.Locator
	typed     map[browser.Locator]string
	selected  map[browser.Locator]string
	closes    int
}

func newFakeSession(present ...browser.Locator) *fakeSession {
	s := &fakeSession{
		present:  make(map[browser.Locator]bool),
		typed:    make(map[browser.Locator]string),
		selected: make(map[browser.Locator]string),
	}
	for _, loc := range present {
		s.present[loc] = true
	}
	return s
}

// searchPage marks the first hypothesis of every search form control and of
// the venue flow as present.
func searchPage(cfg CheckConfig, calendar string) *fakeSession {
	s := newFakeSession(
		CountrySelectLocators[0],
		LocationSelectLocators[0],
		TestTypeSelectLocators[0],
		ResultsContainerLocators[0],
		VenueLinkLocators(cfg.VenueName, cfg.VenueID)[0],
		CalendarLocators(cfg.VenueID)[0],
	)
	s.calendar = calendar
	return s
}

func (s *fakeSession) Find(ctx context.Context, loc browser.Locator, clickable bool) (*browser.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds = append(s.finds, loc)
	if s.present[loc] {
		return &browser.Element{Locator: loc}, nil
	}
	return nil, browser.ErrNotFound
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	if s.panicOn == "navigate" {
		panic("driver exploded")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigated = append(s.navigated, url)
	return s.navErr
}

func (s *fakeSession) Click(ctx context.Context, el *browser.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicked = append(s.clicked, el.Locator)
	return nil
}

func (s *fakeSession) SendKeys(ctx context.Context, el *browser.Element, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typed[el.Locator] = text
	return nil
}

func (s *fakeSession) SelectByValue(ctx context.Context, el *browser.Element, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[el.Locator] = value
	return nil
}

func (s *fakeSession) SelectByLabel(ctx context.Context, el *browser.Element, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[el.Locator] = label
	return nil
}

func (s *fakeSession) OuterHTML(ctx context.Context, el *browser.Element) (string, error) {
	if s.outerErr != nil {
		return "", s.outerErr
	}
	return s.calendar, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	if s.closes > 1 {
		return browser.ErrSessionClosed
	}
	return nil
}

func (s *fakeSession) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

func factoryFor(s *fakeSession) SessionFactory {
	return func(ctx context.Context) (browser.Session, error) {
		return s, nil
	}
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (n *fakeNotifier) SendMessage(ctx context.Context, text string) error {
	n.messages = append(n.messages, text)
	return n.err
}

type fakeRecorder struct {
	reports []CycleReport
}

func (r *fakeRecorder) Record(ctx context.Context, report CycleReport) error {
	r.reports = append(r.reports, report)
	return errors.New("ignored")
}

func testConfig() CheckConfig {
	return CheckConfig{
		BaseURL:         "https://booking.example.test/book",
		CountryID:       "212",
		Location:        "Ankara",
		TestType:        "Academic - IELTS",
		VenueName:       "Bilkent University",
		VenueID:         "1771",
		TargetMonths:    []time.Month{time.July, time.August},
		TargetYear:      2025,
		PositiveEnabled: true,
		NegativeEnabled: true,
		Interval:        10 * time.Minute,
		TimeZone:        time.FixedZone("TRT", 3*60*60),
		ImplicitWait:    time.Second,
	}
}

func mustSlot(venue string, year int, month time.Month, day int) Slot {
	s, err := NewSlot(venue, year, month, day)
	if err != nil {
		panic(err)
	}
	return s
}

// at builds an instant from a wall clock in the TRT test zone.
func at(hour, minute int) time.Time {
	return time.Date(2025, time.June, 20, hour, minute, 0, 0, time.FixedZone("TRT", 3*60*60))
}

const calendarFixture = `
<div id="session-date-1771" class="ui-datepicker-inline">
  <table class="ui-datepicker-calendar">
    <tbody>
      <tr>
        <td class="ui-datepicker-unselectable ui-state-disabled" data-month="6" data-year="2025"><span>1</span></td>
        <td class="high-availability-date" data-handler="selectDay" data-event="click" data-month="6" data-year="2025"><a class="ui-state-default" href="#">14</a></td>
        <td class="high-availability-date" data-handler="selectDay" data-event="click" data-month="7" data-year="2025"><a class="ui-state-default" href="#">3</a></td>
        <td class="high-availability-date" data-handler="selectDay" data-event="click" data-month="7" data-year="2025"><a class="ui-state-default" href="#">N/A</a></td>
      </tr>
    </tbody>
  </table>
</div>`
