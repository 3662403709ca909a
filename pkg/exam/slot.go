package exam

import (
	"fmt"
	"sort"
	"time"

	"examwatch/pkg/utils/dateutils"
)

// Slot is one calendar date on which a venue reports exam capacity.
type Slot struct {
	Date  time.Time // midnight UTC
	Venue string
}

// NewSlot validates the calendar date and builds a slot. Out-of-range parts
// are rejected rather than normalised (31 June is an error, not 1 July).
func NewSlot(venue string, year int, month time.Month, day int) (Slot, error) {
	if month < time.January || month > time.December {
		return Slot{}, fmt.Errorf("%w: month %d", ErrInvalidDate, int(month))
	}
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return Slot{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, int(month), day)
	}
	return Slot{Date: date, Venue: venue}, nil
}

// Key is the canonical identity of a slot: venue|YYYY-MM-DD.
func (s Slot) Key() string {
	return s.Venue + "|" + s.Date.Format(dateutils.LayoutDate)
}

func (s Slot) String() string {
	return s.Key()
}

// SlotSet is an immutable set of slots keyed by Slot.Key.
type SlotSet struct {
	slots map[string]Slot
}

// NewSlotSet builds a set; duplicates collapse onto one entry.
func NewSlotSet(slots ...Slot) SlotSet {
	m := make(map[string]Slot, len(slots))
	for _, s := range slots {
		m[s.Key()] = s
	}
	return SlotSet{slots: m}
}

// Len returns the number of distinct slots.
func (s SlotSet) Len() int {
	return len(s.slots)
}

// IsEmpty reports whether the set has no slots.
func (s SlotSet) IsEmpty() bool {
	return len(s.slots) == 0
}

// Contains reports whether a slot with the same key is present.
func (s SlotSet) Contains(slot Slot) bool {
	_, ok := s.slots[slot.Key()]
	return ok
}

// Diff returns the slots of s that are absent from other.
func (s SlotSet) Diff(other SlotSet) SlotSet {
	out := make(map[string]Slot)
	for k, v := range s.slots {
		if _, ok := other.slots[k]; !ok {
			out[k] = v
		}
	}
	return SlotSet{slots: out}
}

// Slots returns the slots ordered by venue, then date.
func (s SlotSet) Slots() []Slot {
	out := make([]Slot, 0, len(s.slots))
	for _, v := range s.slots {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Venue != out[j].Venue {
			return out[i].Venue < out[j].Venue
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Keys returns the canonical keys in Slots order.
func (s SlotSet) Keys() []string {
	slots := s.Slots()
	keys := make([]string, len(slots))
	for i, slot := range slots {
		keys[i] = slot.Key()
	}
	return keys
}

// ByVenue groups the sorted slots per venue, preserving venue order.
func (s SlotSet) ByVenue() (venues []string, dates map[string][]time.Time) {
	dates = make(map[string][]time.Time)
	for _, slot := range s.Slots() {
		if _, seen := dates[slot.Venue]; !seen {
			venues = append(venues, slot.Venue)
		}
		dates[slot.Venue] = append(dates[slot.Venue], slot.Date)
	}
	return venues, dates
}
