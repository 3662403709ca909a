package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"examwatch/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Poll statuses
const (
	StatusIdle      = "idle"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Error variables
var (
	ErrInvalidInterval = errors.New("poll interval must be positive")
	ErrCyclePanic      = errors.New("check cycle panicked")
)

// CycleRunner runs one check cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// Status is a snapshot of the poller's bookkeeping.
type Status struct {
	State     string    `json:"state"`
	Interval  string    `json:"interval"`
	Runs      int       `json:"runs"`
	Failures  int       `json:"failures"`
	LastRun   time.Time `json:"last_run,omitempty"`
	NextRun   time.Time `json:"next_run,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// Poller runs check cycles once or on a fixed interval. Cycles never overlap.
type Poller struct {
	runner   CycleRunner
	interval time.Duration

	mu      sync.RWMutex
	cron    *cron.Cron
	entryID cron.EntryID
	status  Status
}

// NewPoller creates a poller for runner.
func NewPoller(runner CycleRunner, interval time.Duration) (*Poller, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	return &Poller{
		runner:   runner,
		interval: interval,
		status:   Status{State: StatusIdle, Interval: interval.String()},
	}, nil
}

// RunOnce runs a single cycle and returns its error, for single-shot mode.
func (p *Poller) RunOnce(ctx context.Context) error {
	return p.execute(ctx)
}

// Run performs one cycle immediately and then one per interval until ctx is
// cancelled. A failing cycle is logged and the loop goes on.
func (p *Poller) Run(ctx context.Context) error {
	cronLog := cronLogger{s: logger.L().Sugar()}

	c := cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if err := p.execute(ctx); err != nil {
		logger.Warn("Initial check cycle failed, continuing on schedule", zap.Error(err))
	}
	if ctx.Err() != nil {
		return nil
	}

	schedule := "@every " + p.interval.String()
	entryID, err := c.AddFunc(schedule, func() {
		if err := p.execute(ctx); err != nil {
			logger.Warn("Scheduled check cycle failed", zap.Error(err))
		}
		p.updateNextRun()
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	p.mu.Lock()
	p.cron = c
	p.entryID = entryID
	p.mu.Unlock()

	c.Start()
	p.updateNextRun()

	logger.Info("Poller started",
		zap.Duration("interval", p.interval),
		zap.Time("next_run", p.Status().NextRun))

	<-ctx.Done()
	logger.Info("Poller context cancelled, waiting for running cycle")

	<-c.Stop().Done()
	logger.Info("Poller stopped")
	return nil
}

// Status returns the current bookkeeping snapshot.
func (p *Poller) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

func (p *Poller) execute(ctx context.Context) (err error) {
	p.mu.Lock()
	p.status.State = StatusRunning
	p.status.LastRun = time.Now()
	p.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic in poll cycle", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("%w: %v", ErrCyclePanic, r)
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		p.status.Runs++
		if err != nil {
			p.status.State = StatusFailed
			p.status.Failures++
			p.status.LastError = err.Error()
			return
		}
		p.status.State = StatusCompleted
		p.status.LastError = ""
	}()

	return p.runner.RunCycle(ctx)
}

func (p *Poller) updateNextRun() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron == nil {
		return
	}
	p.status.NextRun = p.cron.Entry(p.entryID).Next
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
