package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"examwatch/pkg/browser"
	"examwatch/pkg/config"
	"examwatch/pkg/exam"
	"examwatch/pkg/handlers"
	"examwatch/pkg/history"
	"examwatch/pkg/logger"
	"examwatch/pkg/notifier"
	"examwatch/pkg/scheduler"
	"examwatch/pkg/server"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		configPath = flag.String("config", "", "path to the JSON/YAML config file")
		once       = flag.Bool("once", false, "run a single check cycle and exit")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(cfg.App.IsDevelopment(), cfg.App.LogFile, cfg.App.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *once, chromeSessions(cfg.BrowserOptions())); err != nil {
		logger.Error("Exam watch stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func chromeSessions(opts browser.Options) exam.SessionFactory {
	return func(ctx context.Context) (browser.Session, error) {
		s, err := browser.NewChromeSession(ctx, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// run wires the watcher and blocks until ctx is done, or returns the single
// cycle's error when once is set. extra options are applied to the checker.
func run(ctx context.Context, cfg *config.Config, once bool, sessions exam.SessionFactory, extra ...exam.Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	checkCfg, err := cfg.CheckConfig()
	if err != nil {
		return err
	}

	var notify exam.Notifier
	tg := notifier.NewTelegramNotifier(cfg.Telegram)
	switch err := tg.ValidateConfig(); {
	case err != nil:
		logger.Warn("Telegram credentials missing, running without notifications", zap.Error(err))
	case !tg.Enabled():
		logger.Info("Telegram notifications disabled")
	default:
		notify = tg
	}

	var opts []exam.Option
	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path, cfg.History.Keep)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close history store", zap.Error(err))
			}
		}()
		opts = append(opts, exam.WithRecorder(store))
	}

	checker := exam.NewChecker(checkCfg, sessions, notify, append(opts, extra...)...)

	poller, err := scheduler.NewPoller(checker, checkCfg.Interval)
	if err != nil {
		return err
	}

	logger.Info("Exam watch starting",
		zap.String("venue", checkCfg.VenueName),
		zap.String("months", checkCfg.MonthsLabel()),
		zap.Duration("interval", checkCfg.Interval),
		zap.String("timezone", checkCfg.TimeZone.String()),
		zap.Bool("once", once))

	if once {
		return poller.RunOnce(ctx)
	}

	if checkCfg.NegativeEnabled && checkCfg.Interval > exam.NegativeWindow {
		logger.Warn("Poll interval is longer than the negative notification window, some windows will be missed",
			zap.Duration("interval", checkCfg.Interval),
			zap.Duration("window", exam.NegativeWindow))
	}

	if cfg.Server.Enabled {
		var reader handlers.HistoryReader
		if store != nil {
			reader = store
		}
		srv := server.NewHTTPServer(&server.Config{
			Address: cfg.Server.Address,
			Port:    cfg.Server.Port,
			Config:  cfg,
		}, poller, reader)

		go func() {
			if err := srv.Start(); err != nil {
				logger.Error("Status server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Status server shutdown failed", zap.Error(err))
			}
		}()
	}

	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Exam watch stopped")
	return nil
}
