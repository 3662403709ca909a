package handlers

import (
	"context"
	"time"

	"examwatch/pkg/config"
	"examwatch/pkg/history"
	"examwatch/pkg/logger"
	"examwatch/pkg/scheduler"
)

// Service identity reported by the status endpoints
const (
	ServiceName    = "examwatch"
	ServiceVersion = "1.0.0"
)

// StatusProvider exposes the poller's bookkeeping.
type StatusProvider interface {
	Status() scheduler.Status
}

// HistoryReader reads stored cycle outcomes.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.CycleRecord, error)
	Summarize(ctx context.Context) (history.Summary, error)
}

// HandlerService holds the dependencies shared by all handlers.
type HandlerService struct {
	config    *config.Config
	poller    StatusProvider
	history   HistoryReader
	startedAt time.Time
}

// NewHandlerService creates a new handler service. poller and hist may be nil.
func NewHandlerService(cfg *config.Config, poller StatusProvider, hist HistoryReader) *HandlerService {
	logger.Info("Initializing handler service")
	return &HandlerService{
		config:    cfg,
		poller:    poller,
		history:   hist,
		startedAt: time.Now(),
	}
}

// IsHistoryAvailable reports whether cycle history can be served.
func (h *HandlerService) IsHistoryAvailable() bool {
	return h.history != nil
}

func getCurrentTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
