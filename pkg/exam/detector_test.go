package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveIsIdempotent(t *testing.T) {
	cfg := testConfig()
	d := NewDetector(cfg)
	current := NewSlotSet(mustSlot(cfg.VenueName, 2025, time.July, 14))

	first := d.Observe(current, at(12, 30))
	second := d.Observe(current, at(12, 40))

	assert.Equal(t, DecisionPositive, first.Kind)
	assert.True(t, second.New.IsEmpty())
	assert.Equal(t, DecisionNone, second.Kind)
}

func TestObserveFirstObservationNotifies(t *testing.T) {
	cfg := testConfig()
	d := NewDetector(cfg)
	a := mustSlot(cfg.VenueName, 2025, time.July, 14)

	dec := d.Observe(NewSlotSet(a), at(12, 30))

	require.Equal(t, DecisionPositive, dec.Kind)
	assert.True(t, dec.FirstObservation)
	assert.True(t, dec.New.Contains(a))
}

func TestObserveNotifiesOnlyForNewSlots(t *testing.T) {
	cfg := testConfig()
	d := NewDetector(cfg)
	a := mustSlot(cfg.VenueName, 2025, time.July, 14)
	b := mustSlot(cfg.VenueName, 2025, time.August, 3)

	d.Observe(NewSlotSet(a), at(12, 0))

	// A slot disappearing is not news.
	shrunk := d.Observe(NewSlotSet(), at(13, 0))
	assert.Equal(t, DecisionNone, shrunk.Kind)

	// Previous set was empty again, so a repeat of A counts as first observation.
	back := d.Observe(NewSlotSet(a), at(13, 20))
	assert.Equal(t, DecisionPositive, back.Kind)
	assert.True(t, back.FirstObservation)

	grown := d.Observe(NewSlotSet(a, b), at(13, 30))
	require.Equal(t, DecisionPositive, grown.Kind)
	assert.Equal(t, []string{b.Key()}, grown.New.Keys())
	assert.False(t, grown.FirstObservation)
}

func TestObservePositiveDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.PositiveEnabled = false
	d := NewDetector(cfg)
	current := NewSlotSet(mustSlot(cfg.VenueName, 2025, time.July, 14))

	dec := d.Observe(current, at(2, 3))

	assert.Equal(t, DecisionNone, dec.Kind)
	assert.Equal(t, current.Keys(), d.Last().Keys(), "state is updated even without a notification")
}

func TestObserveNegativeCadence(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		enabled  bool
		wantKind DecisionKind
	}{
		{"even hour inside window", at(2, 3), true, DecisionNegative},
		{"even hour after window", at(2, 15), true, DecisionNone},
		{"odd hour", at(3, 5), true, DecisionNone},
		{"midnight", at(0, 0), true, DecisionNegative},
		{"last minute of window", at(22, 9), true, DecisionNegative},
		{"window closes at ten past", at(22, 10), true, DecisionNone},
		{"disabled", at(2, 3), false, DecisionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.NegativeEnabled = tt.enabled
			d := NewDetector(cfg)

			dec := d.Observe(NewSlotSet(), tt.now)

			assert.Equal(t, tt.wantKind, dec.Kind)
		})
	}
}

func TestNegativeWindowOpenUsesLocation(t *testing.T) {
	// 23:05 UTC is 02:05 in UTC+3.
	now := time.Date(2025, time.June, 20, 23, 5, 0, 0, time.UTC)

	assert.True(t, NegativeWindowOpen(now, time.FixedZone("TRT", 3*60*60)))
	assert.False(t, NegativeWindowOpen(now, time.UTC))
}

func TestDecisionKindString(t *testing.T) {
	assert.Equal(t, "positive", DecisionPositive.String())
	assert.Equal(t, "negative", DecisionNegative.String())
	assert.Equal(t, "none", DecisionNone.String())
	assert.False(t, Decision{}.Notify())
}
