package exam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"examwatch/pkg/browser"
	"examwatch/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionFactory starts a browser session for one cycle.
type SessionFactory func(ctx context.Context) (browser.Session, error)

// Notifier delivers a message to the operator.
type Notifier interface {
	SendMessage(ctx context.Context, text string) error
}

// Recorder persists cycle outcomes.
type Recorder interface {
	Record(ctx context.Context, report CycleReport) error
}

// CycleReport summarises one finished cycle.
type CycleReport struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Decision  DecisionKind
	Slots     []string
	NewSlots  []string
	Notified  bool
	Err       error
}

// Succeeded reports whether the cycle completed.
func (r CycleReport) Succeeded() bool {
	return r.Err == nil
}

// Checker runs check cycles: navigate, extract, detect, notify.
type Checker struct {
	cfg       CheckConfig
	sessions  SessionFactory
	notifier  Notifier
	recorder  Recorder
	timing    Timing
	now       func() time.Time
	navigator *FormNavigator
	extractor *Extractor
	detector  *Detector
	formatter MessageFormatter
}

// Option configures a Checker.
type Option func(*Checker)

// WithRecorder stores every cycle report in r.
func WithRecorder(r Recorder) Option {
	return func(c *Checker) { c.recorder = r }
}

// WithTiming overrides the default delays and timeouts.
func WithTiming(t Timing) Option {
	return func(c *Checker) { c.timing = t }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// NewChecker creates a checker. notifier may be nil, in which case decisions
// are only logged.
func NewChecker(cfg CheckConfig, sessions SessionFactory, notifier Notifier, opts ...Option) *Checker {
	c := &Checker{
		cfg:      cfg,
		sessions: sessions,
		notifier: notifier,
		timing:   DefaultTiming(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.navigator = NewFormNavigator(c.timing)
	c.extractor = NewExtractor(c.timing)
	c.detector = NewDetector(cfg)
	c.formatter = NewMessageFormatter(cfg)
	return c
}

// LastObserved returns the availability recorded by the last completed cycle.
func (c *Checker) LastObserved() SlotSet {
	return c.detector.Last()
}

// RunCycle performs one full check. A failed cycle sends an error
// notification, leaves the previous observation untouched and returns the
// failure. Notification delivery problems are logged and do not fail the cycle.
func (c *Checker) RunCycle(ctx context.Context) error {
	id := uuid.NewString()
	ctx = logger.WithCycleID(ctx, id)
	log := logger.FromContext(ctx)

	start := c.now()
	report := CycleReport{ID: id, StartedAt: start}
	log.Info("Check cycle started", zap.String("venue", c.cfg.VenueName), zap.String("months", c.cfg.MonthsLabel()))

	dec, err := c.check(ctx)
	if err != nil {
		report.Err = err
		report.Duration = c.now().Sub(start)
		log.Error("Check cycle failed", zap.Error(err), logger.DurationField(report.Duration.Milliseconds()))
		report.Notified = c.notify(ctx, c.formatter.Error(err, c.now()))
		c.record(ctx, report)
		return err
	}

	report.Decision = dec.Kind
	report.Slots = dec.Current.Keys()
	report.NewSlots = dec.New.Keys()

	switch dec.Kind {
	case DecisionPositive:
		log.Info("Availability found, notifying",
			logger.SlotCountField(dec.Current.Len()),
			zap.Int("new", dec.New.Len()),
			zap.Bool("first_observation", dec.FirstObservation))
		report.Notified = c.notify(ctx, c.formatter.Positive(dec, c.now()))
	case DecisionNegative:
		log.Info("No availability, negative window open, notifying")
		report.Notified = c.notify(ctx, c.formatter.Negative(c.now()))
	default:
		log.Info("No notification needed",
			logger.SlotCountField(dec.Current.Len()),
			zap.Int("new", dec.New.Len()))
	}

	report.Duration = c.now().Sub(start)
	log.Info("Check cycle completed",
		zap.Stringer("decision", dec.Kind),
		logger.SlotCountField(dec.Current.Len()),
		logger.DurationField(report.Duration.Milliseconds()))
	c.record(ctx, report)
	return nil
}

// check holds the browser session for exactly the cycle's lifetime. The
// detector is only consulted once extraction finished inside a live context.
func (c *Checker) check(ctx context.Context) (dec Decision, err error) {
	log := logger.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Recovered from panic in check cycle", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("%w: %v", ErrCyclePanic, r)
		}
	}()

	sess, err := c.sessions(ctx)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrSessionStart, err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && !errors.Is(cerr, browser.ErrSessionClosed) {
			log.Warn("Failed to close browser session", zap.Error(cerr))
		}
	}()

	if c.cfg.Login != nil {
		if err := c.navigator.Login(ctx, sess, c.cfg, *c.cfg.Login); err != nil {
			return Decision{}, err
		}
	}

	if err := c.navigator.PrepareSearch(ctx, sess, c.cfg); err != nil {
		return Decision{}, err
	}

	current := c.extractor.Extract(ctx, sess, c.cfg)
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	return c.detector.Observe(current, c.now()), nil
}

func (c *Checker) notify(ctx context.Context, text string) bool {
	if c.notifier == nil {
		return false
	}
	if err := c.notifier.SendMessage(ctx, text); err != nil {
		logger.FromContext(ctx).Warn("Notification not delivered", zap.Error(err))
		return false
	}
	return true
}

func (c *Checker) record(ctx context.Context, report CycleReport) {
	if c.recorder == nil {
		return
	}
	// Recorded even when the cycle was cancelled.
	if err := c.recorder.Record(context.WithoutCancel(ctx), report); err != nil {
		logger.FromContext(ctx).Warn("Failed to record cycle", zap.Error(err))
	}
}
