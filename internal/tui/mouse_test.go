package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func TestDragProducesBookingForm(t *testing.T) {
	m := newTestModel(t)

	// Column 0 is Monday; rows start right under the day header.
	x := timeColWidth
	m, _ = step(t, m, press(x, gridTopRows))
	if !m.selector.Dragging() {
		t.Fatal("press did not start a drag")
	}

	m, _ = step(t, m, motion(x, gridTopRows+2))
	m, _ = step(t, m, release(x, gridTopRows+2))

	if m.mode != ModeBooking {
		t.Fatalf("mode = %v, want ModeBooking", m.mode)
	}
	if m.pendingSlot == nil {
		t.Fatal("no slot reported")
	}
	if m.pendingSlot.StartTime != "08:00" || m.pendingSlot.EndTime != "08:45" {
		t.Fatalf("slot = %s–%s, want 08:00–08:45", m.pendingSlot.StartTime, m.pendingSlot.EndTime)
	}
	if !m.pendingSlot.Date.Equal(m.weekStart) {
		t.Fatalf("slot date = %v, want Monday %v", m.pendingSlot.Date, m.weekStart)
	}
}

func TestDragOverBookedSlotReportsConflict(t *testing.T) {
	m := newTestModel(t)
	monday := m.weekStart.Format("2006-01-02")
	m = seed(m, mustAppt(t, "Ana Reyes", monday, "08:00", "08:30"))

	x := timeColWidth
	m, _ = step(t, m, press(x, gridTopRows))
	m, cmd := step(t, m, release(x, gridTopRows))

	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want ModeNormal", m.mode)
	}
	if msg := m.selector.ConflictMessage(); !strings.Contains(msg, "Ana Reyes") {
		t.Fatalf("ConflictMessage = %q", msg)
	}
	if cmd == nil {
		t.Fatal("no conflict expiry timer scheduled")
	}
}

func TestDragIgnoresOtherColumns(t *testing.T) {
	m := newTestModel(t)

	mondayX := timeColWidth
	tuesdayX := timeColWidth + m.colWidth

	m, _ = step(t, m, press(mondayX, gridTopRows+4))
	m, _ = step(t, m, motion(tuesdayX, gridTopRows+6))
	m, _ = step(t, m, release(tuesdayX, gridTopRows+6))

	if m.pendingSlot == nil {
		t.Fatal("no slot reported")
	}
	// The drag stays on Monday; the Tuesday motion only moved the edge
	// vertically.
	if !m.pendingSlot.Date.Equal(m.weekStart) {
		t.Fatalf("slot date = %v, want Monday", m.pendingSlot.Date)
	}
}

func TestMousePressOutsideGridIgnored(t *testing.T) {
	m := newTestModel(t)

	m, _ = step(t, m, press(2, 0)) // title row
	if m.selector.Dragging() {
		t.Fatal("press on the title started a drag")
	}

	m, _ = step(t, m, press(0, gridTopRows)) // time gutter
	if m.selector.Dragging() {
		t.Fatal("press on the time gutter started a drag")
	}
}

func TestWheelScrolls(t *testing.T) {
	m := newTestModel(t)

	m, _ = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.scrollOffset != 1 {
		t.Fatalf("scrollOffset = %d after wheel down, want 1", m.scrollOffset)
	}

	m, _ = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	m, _ = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.scrollOffset != 0 {
		t.Fatalf("scrollOffset = %d, want clamp at 0", m.scrollOffset)
	}
}

func TestMouseIgnoredWhileModalOpen(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 2
	m, _ = step(t, m, keyRunes("n"))

	m, _ = step(t, m, press(timeColWidth, gridTopRows))
	if m.selector.Dragging() {
		t.Fatal("modal did not swallow the mouse press")
	}
}

func TestDragReschedule(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 0
	m, _ = step(t, m, keyRunes("r"))

	// Drag a free band on Thursday.
	x := timeColWidth + 3*m.colWidth
	m, _ = step(t, m, press(x, gridTopRows+8))
	m, cmd := step(t, m, release(x, gridTopRows+8))

	if m.rescheduleID != "" {
		t.Fatal("rescheduleID not consumed by the drop")
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after drop", m.mode)
	}
	if cmd == nil {
		t.Fatal("no reschedule command issued")
	}
}

func TestDragRescheduleOntoOverlappingSlot(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 0
	m, _ = step(t, m, keyRunes("r"))

	// Wednesday column, one row down: 08:15 overlaps the moved
	// appointment's own current time and must still be accepted.
	x := timeColWidth + 2*m.colWidth
	m, _ = step(t, m, press(x, gridTopRows+1))
	m, cmd := step(t, m, release(x, gridTopRows+1))

	if msg := m.selector.ConflictMessage(); msg != "" {
		t.Fatalf("self-conflict reported: %q", msg)
	}
	if m.rescheduleID != "" {
		t.Fatal("rescheduleID not consumed")
	}
	if cmd == nil {
		t.Fatal("no reschedule command issued")
	}
}
