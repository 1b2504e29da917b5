package ui

import (
	"testing"

	"github.com/lucasnevarez/turnos/internal/appointment"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{15, "15m"},
		{60, "1h"},
		{90, "1h30m"},
		{145, "2h25m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestStatusSymbol(t *testing.T) {
	tests := []struct {
		status appointment.Status
		want   string
	}{
		{appointment.StatusBooked, "○"},
		{appointment.StatusInProgress, "◐"},
		{appointment.StatusCompleted, "●"},
		{appointment.StatusCancelled, "✗"},
		{appointment.StatusNoShow, "!"},
		{appointment.Status("bogus"), "?"},
	}
	for _, tt := range tests {
		if got := statusSymbol(tt.status); got != tt.want {
			t.Errorf("statusSymbol(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusColorsCoverAllStatuses(t *testing.T) {
	for _, s := range []appointment.Status{
		appointment.StatusBooked,
		appointment.StatusInProgress,
		appointment.StatusCompleted,
		appointment.StatusCancelled,
		appointment.StatusNoShow,
	} {
		if statusColors[s] == nil {
			t.Errorf("no color mapped for status %q", s)
		}
	}
}

func TestFormatStatusUnknownPassesThrough(t *testing.T) {
	if got := formatStatus(appointment.Status("bogus"), "x"); got != "x" {
		t.Errorf("formatStatus = %q, want x", got)
	}
}
