package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-02")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate() = %v, want %v", got, want)
	}

	if _, err := ParseDate("03/02/2026"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("ParseDate(03/02/2026) error = %v, want ErrInvalidDateFormat", err)
	}

	today, err := ParseDate("")
	if err != nil {
		t.Fatalf("ParseDate(\"\") error = %v", err)
	}
	if !SameDay(today, time.Now()) {
		t.Errorf("ParseDate(\"\") = %v, want today", today)
	}
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange("2026-03-02", "2026-03-08")
	if err != nil {
		t.Fatalf("NewDateRange() error = %v", err)
	}
	if r.Start.After(r.End) {
		t.Errorf("range start %v after end %v", r.Start, r.End)
	}

	if _, err := NewDateRange("2026-03-08", "2026-03-02"); !errors.Is(err, ErrEndDateBeforeStart) {
		t.Errorf("reversed range error = %v, want ErrEndDateBeforeStart", err)
	}

	// Empty end defaults to start.
	r, err = NewDateRange("2026-03-02", "")
	if err != nil {
		t.Fatalf("NewDateRange() error = %v", err)
	}
	if !r.Start.Equal(r.End) {
		t.Errorf("single-day range: start %v != end %v", r.Start, r.End)
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		day        time.Time
		wantMonday time.Time
	}{
		{
			"wednesday",
			time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday stays",
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday belongs to preceding monday",
			time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, sunday := WeekRange(tt.day)
			if !monday.Equal(tt.wantMonday) {
				t.Errorf("monday = %v, want %v", monday, tt.wantMonday)
			}
			if !sunday.Equal(tt.wantMonday.AddDate(0, 0, 6)) {
				t.Errorf("sunday = %v, want %v", sunday, tt.wantMonday.AddDate(0, 0, 6))
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC))

	if !first.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first = %v, want 2026-02-01", first)
	}
	if !last.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last = %v, want 2026-02-28", last)
	}
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		day  time.Time
		want int
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 0}, // Monday
		{time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), 2}, // Wednesday
		{time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), 6}, // Sunday
	}

	for _, tt := range tests {
		if got := WeekdayIndex(tt.day); got != tt.want {
			t.Errorf("WeekdayIndex(%v) = %d, want %d", tt.day.Weekday(), got, tt.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	if !SameDay(morning, evening) {
		t.Error("same calendar day reported different")
	}
	if SameDay(morning, nextDay) {
		t.Error("different days reported same")
	}
}

func TestParseRelativeDate(t *testing.T) {
	// A fixed Wednesday anchors all relative keywords.
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr error
	}{
		{"empty is today", "", TruncateToDay(now), nil},
		{"today", "today", TruncateToDay(now), nil},
		{"tomorrow", "tomorrow", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), nil},
		{"next-week", "next-week", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), nil},
		{"friday", "friday", time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), nil},
		{"same weekday jumps a week", "wednesday", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), nil},
		{"next-monday", "next-monday", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), nil},
		{"case insensitive", "FRIDAY", time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), nil},
		{"absolute date", "2026-04-01", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), nil},
		{"past date rejected", "2026-01-01", time.Time{}, ErrDateInPast},
		{"gibberish", "someday", time.Time{}, ErrInvalidDateFormat},
		{"bad next prefix", "next-someday", time.Time{}, ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseRelativeDate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr == nil && !got.Equal(tt.want) {
				t.Errorf("ParseRelativeDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
