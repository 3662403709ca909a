package dateutils

import (
	"testing"
	"time"
)

func TestParseMonths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []time.Month
		wantErr bool
	}{
		{"two months", "7,8", []time.Month{time.July, time.August}, false},
		{"spaces and duplicates", " 8 , 7,8 ", []time.Month{time.August, time.July}, false},
		{"trailing comma", "12,", []time.Month{time.December}, false},
		{"zero", "0", nil, true},
		{"thirteen", "13", nil, true},
		{"not a number", "July", nil, true},
		{"empty", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMonths(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMonths(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseMonths(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseMonths(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatSlotDate(t *testing.T) {
	date := time.Date(2025, time.July, 14, 0, 0, 0, 0, time.UTC)
	if got, want := FormatSlotDate(date), "14 July 2025 - Monday"; got != want {
		t.Errorf("FormatSlotDate() = %q, want %q", got, want)
	}
}

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is local", "", false},
		{"local", "Local", false},
		{"utc", "UTC", false},
		{"unknown", "Mars/Olympus_Mons", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.input)
			}
		})
	}
}

func TestFormatCheckTime(t *testing.T) {
	ts := time.Date(2025, time.July, 1, 23, 30, 0, 0, time.UTC)
	plus3 := time.FixedZone("TRT", 3*60*60)
	if got, want := FormatCheckTime(ts, plus3), "2025-07-02 02:30:00"; got != want {
		t.Errorf("FormatCheckTime() = %q, want %q", got, want)
	}
}
