package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"examwatch/pkg/logger"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const clickablePollInterval = 200 * time.Millisecond

// hideAutomationJS runs before any page script on every new document.
const hideAutomationJS = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

const (
	jsClick = `function() {
		this.scrollIntoView({block: 'center'});
		this.click();
	}`
	jsClear = `function() {
		this.value = '';
		this.dispatchEvent(new Event('input', {bubbles: true}));
	}`
	jsSelectByValue = `function(v) {
		const opt = Array.from(this.options || []).find(o => o.value === v);
		if (!opt) return false;
		this.value = opt.value;
		this.dispatchEvent(new Event('change', {bubbles: true}));
		return true;
	}`
	jsSelectByLabel = `function(label) {
		const opt = Array.from(this.options || []).find(o => o.text.trim() === label.trim());
		if (!opt) return false;
		this.value = opt.value;
		this.dispatchEvent(new Event('change', {bubbles: true}));
		return true;
	}`
)

// ChromeSession drives one Chrome process through chromedp.
type ChromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
	mu        sync.RWMutex
	closed    bool
}

// NewChromeSession starts a browser. The caller must Close it on every path.
func NewChromeSession(ctx context.Context, opts Options) (*ChromeSession, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, AllocatorOptions(opts)...)

	sugar := logger.FromContext(ctx).Sugar()
	tabCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(sugar.Debugf),
		chromedp.WithErrorf(sugar.Warnf),
	)

	s := &ChromeSession{
		ctx:         tabCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
	}

	err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(hideAutomationJS).Do(ctx)
		return err
	}))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	logger.FromContext(ctx).Info("Chrome session started", zap.Bool("headless", opts.Headless))
	return s, nil
}

// Close quits the browser. Safe to call more than once.
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		s.closeErr = chromedp.Cancel(s.ctx)
		s.cancel()
		s.allocCancel()
	})
	return s.closeErr
}

// bind derives a chromedp context from the session that also honours the
// caller's deadline and cancellation.
func (s *ChromeSession) bind(ctx context.Context) (context.Context, context.CancelFunc, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, nil, ErrSessionClosed
	}

	var runCtx context.Context
	var cancel context.CancelFunc
	if dl, ok := ctx.Deadline(); ok {
		runCtx, cancel = context.WithDeadline(s.ctx, dl)
	} else {
		runCtx, cancel = context.WithCancel(s.ctx)
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}, nil
}

func (s *ChromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel, err := s.bind(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads url and waits for the load event.
func (s *ChromeSession) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// Find waits until ctx is done for an element matching loc. With clickable
// set the element must also be visible and not disabled.
func (s *ChromeSession) Find(ctx context.Context, loc Locator, clickable bool) (*Element, error) {
	sel, opts := loc.query()
	if clickable {
		opts = append(opts, chromedp.NodeVisible)
	} else {
		opts = append(opts, chromedp.NodeReady)
	}

	for {
		var nodes []*cdp.Node
		if err := s.run(ctx, chromedp.Nodes(sel, &nodes, opts...)); err != nil {
			if err == ErrSessionClosed {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s", ErrNotFound, loc)
		}
		if len(nodes) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, loc)
		}

		node := nodes[0]
		if !clickable || !isDisabled(node) {
			return &Element{Locator: loc, node: node}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s is disabled", ErrNotFound, loc)
		case <-time.After(clickablePollInterval):
		}
	}
}

func isDisabled(n *cdp.Node) bool {
	_, disabled := n.Attribute("disabled")
	return disabled
}

// Click scrolls the element into view and clicks it.
func (s *ChromeSession) Click(ctx context.Context, el *Element) error {
	return s.callOnNode(ctx, el, jsClick, nil)
}

// SendKeys clears an input and types text into it.
func (s *ChromeSession) SendKeys(ctx context.Context, el *Element, text string) error {
	if err := s.callOnNode(ctx, el, jsClear, nil); err != nil {
		return err
	}
	node, err := nodeOf(el)
	if err != nil {
		return err
	}
	return s.run(ctx, chromedp.SendKeys([]cdp.NodeID{node.NodeID}, text, chromedp.ByNodeID))
}

// SelectByValue picks the <option> with the given value and fires change.
func (s *ChromeSession) SelectByValue(ctx context.Context, el *Element, value string) error {
	var ok bool
	if err := s.callOnNode(ctx, el, jsSelectByValue, &ok, value); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: value %q", ErrOptionNotFound, value)
	}
	return nil
}

// SelectByLabel picks the <option> whose visible text is label and fires change.
func (s *ChromeSession) SelectByLabel(ctx context.Context, el *Element, label string) error {
	var ok bool
	if err := s.callOnNode(ctx, el, jsSelectByLabel, &ok, label); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: label %q", ErrOptionNotFound, label)
	}
	return nil
}

// OuterHTML returns the element's serialized markup.
func (s *ChromeSession) OuterHTML(ctx context.Context, el *Element) (string, error) {
	node, err := nodeOf(el)
	if err != nil {
		return "", err
	}
	var html string
	err = s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		html, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
		return err
	}))
	return html, err
}

func (s *ChromeSession) callOnNode(ctx context.Context, el *Element, fn string, res any, args ...any) error {
	node, err := nodeOf(el)
	if err != nil {
		return err
	}
	return s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(node.NodeID).Do(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = runtime.ReleaseObject(obj.ObjectID).Do(ctx) }()

		return chromedp.CallFunctionOn(fn, res,
			func(p *runtime.CallFunctionOnParams) *runtime.CallFunctionOnParams {
				return p.WithObjectID(obj.ObjectID)
			},
			args...,
		).Do(ctx)
	}))
}

func nodeOf(el *Element) (*cdp.Node, error) {
	if el == nil || el.node == nil {
		return nil, fmt.Errorf("%w: element has no live node", ErrNotFound)
	}
	return el.node, nil
}
