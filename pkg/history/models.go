package history

import (
	"time"

	"gorm.io/datatypes"
)

// CycleRecord is the persisted outcome of one check cycle
type CycleRecord struct {
	ID         string                      `gorm:"primaryKey;size:36" json:"id"`
	StartedAt  time.Time                   `gorm:"index;not null" json:"started_at"`
	DurationMs int64                       `json:"duration_ms"`
	Succeeded  bool                        `gorm:"index" json:"succeeded"`
	Decision   string                      `gorm:"size:16" json:"decision"`
	SlotCount  int                         `json:"slot_count"`
	Slots      datatypes.JSONSlice[string] `json:"slots"`     // venue|YYYY-MM-DD keys
	NewSlots   datatypes.JSONSlice[string] `json:"new_slots"` // subset absent from the previous cycle
	Notified   bool                        `json:"notified"`
	Error      string                      `json:"error,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
}

// TableName returns the table name for CycleRecord model
func (CycleRecord) TableName() string {
	return "cycle_records"
}

// Summary aggregates the stored records
type Summary struct {
	Total         int64      `json:"total"`
	Failures      int64      `json:"failures"`
	Notified      int64      `json:"notified"`
	LastStarted   *time.Time `json:"last_started,omitempty"`
	LastAvailable *time.Time `json:"last_available,omitempty"`
}
