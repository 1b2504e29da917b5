package grid

import (
	"testing"
)

func mustConfig(t *testing.T, start, end, granularity int) Config {
	t.Helper()
	cfg, err := NewConfig(start, end, granularity)
	if err != nil {
		t.Fatalf("NewConfig(%d, %d, %d) error = %v", start, end, granularity, err)
	}
	return cfg
}

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name        string
		start, end  int
		granularity int
		wantErr     error
	}{
		{"standard working day", 8, 18, 15, nil},
		{"full day", 0, 24, 60, nil},
		{"thirty minute slots", 9, 17, 30, nil},
		{"start after end", 18, 8, 15, ErrInvalidHours},
		{"start equals end", 9, 9, 15, ErrInvalidHours},
		{"negative start", -1, 18, 15, ErrInvalidHours},
		{"end past midnight", 8, 25, 15, ErrInvalidHours},
		{"granularity not dividing 60", 8, 18, 25, ErrInvalidGranularity},
		{"zero granularity", 8, 18, 0, ErrInvalidGranularity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.start, tt.end, tt.granularity)
			if err != tt.wantErr {
				t.Errorf("NewConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlotCount(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"8-18 at 15min", mustConfig(t, 8, 18, 15), 40},
		{"9-17 at 30min", mustConfig(t, 9, 17, 30), 16},
		{"0-24 at 60min", mustConfig(t, 0, 24, 60), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.SlotCount(); got != tt.want {
				t.Errorf("SlotCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSlotIndexTimeRoundTrip(t *testing.T) {
	cfg := mustConfig(t, 8, 18, 15)

	for i := 0; i < cfg.SlotCount(); i++ {
		tm := cfg.TimeFromSlotIndex(i)
		if got := cfg.SlotIndexFromTime(tm); got != i {
			t.Errorf("SlotIndexFromTime(TimeFromSlotIndex(%d)) = %d, want %d (time %s)", i, got, i, tm)
		}
	}
}

func TestSlotIndexFromTime(t *testing.T) {
	cfg := mustConfig(t, 8, 18, 15)

	tests := []struct {
		name string
		time string
		want int
	}{
		{"horizon start", "08:00", 0},
		{"mid morning", "09:30", 6},
		{"unaligned time floors", "09:37", 6},
		{"last slot", "17:45", 39},
		{"before horizon clamps to first", "06:00", 0},
		{"after horizon clamps to last", "19:00", 39},
		{"horizon end clamps to last", "18:00", 39},
		{"malformed clamps to first", "banana", 0},
		{"empty clamps to first", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.SlotIndexFromTime(tt.time); got != tt.want {
				t.Errorf("SlotIndexFromTime(%q) = %d, want %d", tt.time, got, tt.want)
			}
		})
	}
}

func TestSlotIndexFromPixelOffset(t *testing.T) {
	// 40 slots over 600 units: 15 units per slot.
	cfg := mustConfig(t, 8, 18, 15)

	tests := []struct {
		name   string
		y      float64
		height float64
		want   int
	}{
		{"top of column", 0, 600, 0},
		{"second slot boundary", 15, 600, 1},
		{"just before boundary", 14.9, 600, 0},
		{"last unit", 599, 600, 39},
		{"exactly at bottom clamps", 600, 600, 39},
		{"overshoot clamps", 9999, 600, 39},
		{"negative clamps", -50, 600, 0},
		{"zero height", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.SlotIndexFromPixelOffset(tt.y, tt.height); got != tt.want {
				t.Errorf("SlotIndexFromPixelOffset(%v, %v) = %d, want %d", tt.y, tt.height, got, tt.want)
			}
		})
	}
}

func TestFractionalPosition(t *testing.T) {
	cfg := mustConfig(t, 8, 18, 15)

	tests := []struct {
		name string
		time string
		want float64
	}{
		{"horizon start", "08:00", 0},
		{"midpoint", "13:00", 0.5},
		{"before horizon pins to zero", "06:00", 0},
		{"after horizon pins to one", "20:00", 1},
		{"malformed degrades to zero", "later", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.FractionalPosition(tt.time); got != tt.want {
				t.Errorf("FractionalPosition(%q) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestContainsTime(t *testing.T) {
	cfg := mustConfig(t, 8, 18, 15)

	tests := []struct {
		time string
		want bool
	}{
		{"08:00", true},
		{"17:59", true},
		{"18:00", false},
		{"07:59", false},
		{"nope", false},
	}

	for _, tt := range tests {
		if got := cfg.ContainsTime(tt.time); got != tt.want {
			t.Errorf("ContainsTime(%q) = %v, want %v", tt.time, got, tt.want)
		}
	}
}
