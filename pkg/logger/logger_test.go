package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextAddsCycleFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := Logger
	Logger = zap.New(core)
	defer func() { Logger = prev }()

	ctx := WithVenue(WithCycleID(context.Background(), "c-1"), "Bilkent University")
	FromContext(ctx).Info("cycle started")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["cycle_id"] != "c-1" {
		t.Errorf("expected cycle_id c-1, got %v", fields["cycle_id"])
	}
	if fields["venue"] != "Bilkent University" {
		t.Errorf("expected venue field, got %v", fields["venue"])
	}
	if got := CycleIDFromContext(ctx); got != "c-1" {
		t.Errorf("CycleIDFromContext = %q", got)
	}
}

func TestPackageHelpersWithoutInit(t *testing.T) {
	prev := Logger
	Logger = nil
	defer func() { Logger = prev }()

	// Must not panic before InitLogger.
	Info("hello")
	FromContext(context.Background()).Debug("hello")
}

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	if err := InitLogger(true, "", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
