package exam

import (
	"time"
)

// Negative cadence: "nothing available" is reported only during the first
// NegativeWindow after every NegativeEveryHours-th hour boundary.
const (
	NegativeEveryHours = 2
	NegativeWindow     = 10 * time.Minute
)

// DecisionKind is what a cycle should notify about.
type DecisionKind int

const (
	DecisionNone DecisionKind = iota
	DecisionPositive
	DecisionNegative
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionPositive:
		return "positive"
	case DecisionNegative:
		return "negative"
	default:
		return "none"
	}
}

// Decision is the outcome of one observation.
type Decision struct {
	Kind DecisionKind

	// Current is the observed set; New holds the slots absent from the previous one.
	Current SlotSet
	New     SlotSet

	// FirstObservation is true when the previous set was empty.
	FirstObservation bool
}

// Notify reports whether a message should go out.
func (d Decision) Notify() bool {
	return d.Kind != DecisionNone
}

// Detector owns the last observed availability. It is not safe for concurrent
// use; cycles are serial.
type Detector struct {
	cfg  CheckConfig
	last SlotSet
}

// NewDetector creates a detector with an empty previous set.
func NewDetector(cfg CheckConfig) *Detector {
	return &Detector{cfg: cfg, last: NewSlotSet()}
}

// Observe compares current with the previous observation, decides what to
// notify, and then records current as the previous observation regardless of
// the decision.
func (d *Detector) Observe(current SlotSet, now time.Time) Decision {
	prev := d.last
	dec := Decision{
		Kind:             DecisionNone,
		Current:          current,
		New:              current.Diff(prev),
		FirstObservation: prev.IsEmpty(),
	}

	switch {
	case !current.IsEmpty():
		if d.cfg.PositiveEnabled && (!dec.New.IsEmpty() || prev.IsEmpty()) {
			dec.Kind = DecisionPositive
		}
	case d.cfg.NegativeEnabled && NegativeWindowOpen(now, d.cfg.location()):
		dec.Kind = DecisionNegative
	}

	d.last = current
	return dec
}

// Last returns the previous observation.
func (d *Detector) Last() SlotSet {
	return d.last
}

// NegativeWindowOpen reports whether now, read in loc, falls in the first
// NegativeWindow after an hour divisible by NegativeEveryHours.
func NegativeWindowOpen(now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	t := now.In(loc)
	sinceHour := time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
	return t.Hour()%NegativeEveryHours == 0 && sinceHour < NegativeWindow
}
