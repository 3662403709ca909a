package browser

import (
	"context"
	"errors"

	"github.com/chromedp/cdproto/cdp"
)

var (
	// ErrNotFound is returned by Finder.Find when no element matched before the deadline.
	ErrNotFound = errors.New("element not found")

	// ErrSessionClosed is returned for calls on a released session.
	ErrSessionClosed = errors.New("browser session closed")

	// ErrOptionNotFound is returned when a <select> has no option with the requested value or label.
	ErrOptionNotFound = errors.New("select option not found")
)

// Element is a handle to a node found on the current page.
type Element struct {
	// Locator is the hypothesis that matched.
	Locator Locator

	node *cdp.Node
}

// Finder locates a single element, waiting until ctx is done.
type Finder interface {
	Find(ctx context.Context, loc Locator, clickable bool) (*Element, error)
}

// Driver is the browser automation capability used by a check cycle.
type Driver interface {
	Finder

	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, el *Element) error
	SendKeys(ctx context.Context, el *Element, text string) error
	SelectByValue(ctx context.Context, el *Element, value string) error
	SelectByLabel(ctx context.Context, el *Element, label string) error
	OuterHTML(ctx context.Context, el *Element) (string, error)
}

// Session is a Driver bound to one browser process. Close releases it.
type Session interface {
	Driver
	Close() error
}
