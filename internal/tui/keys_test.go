package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/tui/commands"
)

func TestViewModeSwitching(t *testing.T) {
	m := newTestModel(t)

	m, cmd := step(t, m, keyRunes("d"))
	if m.viewMode != ViewDay {
		t.Fatalf("viewMode = %v, want ViewDay", m.viewMode)
	}
	if cmd == nil {
		t.Fatal("view switch did not reload")
	}

	m, _ = step(t, m, keyRunes("m"))
	if m.viewMode != ViewMonth {
		t.Fatalf("viewMode = %v, want ViewMonth", m.viewMode)
	}

	m, _ = step(t, m, keyRunes("w"))
	if m.viewMode != ViewWeek {
		t.Fatalf("viewMode = %v, want ViewWeek", m.viewMode)
	}
}

func TestCursorMovementClamps(t *testing.T) {
	m := newTestModel(t)

	m, _ = step(t, m, keyRunes("k"))
	if m.cursor.Slot != 0 {
		t.Fatalf("Slot = %d after k at top, want 0", m.cursor.Slot)
	}

	for i := 0; i < 100; i++ {
		m, _ = step(t, m, keyRunes("j"))
	}
	if want := m.gridCfg.SlotCount() - 1; m.cursor.Slot != want {
		t.Fatalf("Slot = %d after overshoot, want %d", m.cursor.Slot, want)
	}
	if m.scrollOffset == 0 {
		t.Fatal("scroll did not follow the cursor")
	}
}

func TestDayNavigationCrossesWeeks(t *testing.T) {
	m := newTestModel(t)
	start := m.weekStart

	// Wednesday to Thursday stays in the same week.
	m, cmd := step(t, m, keyRunes("l"))
	if cmd != nil {
		t.Fatal("same-week move reloaded")
	}
	if m.cursor.Day != 3 {
		t.Fatalf("cursor.Day = %d, want 3", m.cursor.Day)
	}

	// Five more days forward crosses into next week.
	for i := 0; i < 5; i++ {
		m, cmd = step(t, m, keyRunes("l"))
	}
	if cmd == nil {
		t.Fatal("week crossing did not reload")
	}
	if !m.weekStart.After(start) {
		t.Fatal("weekStart did not advance")
	}
	if m.cursor.Day != 1 {
		t.Fatalf("cursor.Day = %d, want 1 (Tuesday)", m.cursor.Day)
	}
}

func TestTodayResetsFocus(t *testing.T) {
	m := newTestModel(t)
	m.focusDate = m.focusDate.AddDate(0, 0, 21)
	m.weekStart = m.weekStart.AddDate(0, 0, 21)

	m, cmd := step(t, m, keyRunes("t"))
	if !m.focusDate.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("focusDate = %v", m.focusDate)
	}
	if cmd == nil {
		t.Fatal("today did not reload")
	}
}

func TestBookOnFreeSlotOpensForm(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 2 // 08:30

	m, _ = step(t, m, keyRunes("n"))
	if m.mode != ModeBooking {
		t.Fatalf("mode = %v, want ModeBooking", m.mode)
	}
	if m.pendingSlot == nil {
		t.Fatal("pendingSlot not set")
	}
	if m.pendingSlot.StartTime != "08:30" || m.pendingSlot.EndTime != "08:45" {
		t.Fatalf("slot = %s–%s", m.pendingSlot.StartTime, m.pendingSlot.EndTime)
	}
}

func TestBookOnOccupiedSlotRefuses(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 0

	m, _ = step(t, m, keyRunes("n"))
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want ModeNormal", m.mode)
	}
	if !strings.Contains(m.statusMsg, "conflicts with Ana Reyes") {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
}

func TestCancelFlow(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 1 // inside the appointment

	m, _ = step(t, m, keyRunes("x"))
	if m.mode != ModeConfirmCancel {
		t.Fatalf("mode = %v, want ModeConfirmCancel", m.mode)
	}
	if m.confirmID != "appt-Ana Reyes" {
		t.Fatalf("confirmID = %q", m.confirmID)
	}

	m, cmd := step(t, m, keyRunes("y"))
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after confirm", m.mode)
	}
	if m.confirmID != "" {
		t.Fatal("confirmID not cleared")
	}
	if cmd == nil {
		t.Fatal("confirm did not issue a cancel command")
	}
}

func TestCancelDeclined(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 0

	m, _ = step(t, m, keyRunes("x"))
	m, cmd := step(t, m, keyRunes("n"))
	if m.mode != ModeNormal || cmd != nil {
		t.Fatal("decline should return to normal mode with no command")
	}
}

func TestCancelOnFreeSlotIsNoop(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 10

	m, _ = step(t, m, keyRunes("x"))
	if m.mode != ModeNormal {
		t.Fatal("x on a free slot changed mode")
	}
}

func TestTabCyclesAppointments(t *testing.T) {
	m := newTestModel(t)
	m = seed(m,
		mustAppt(t, "Ana Reyes", "2026-03-04", "09:00", "09:30"),
		mustAppt(t, "Luis Sosa", "2026-03-04", "11:00", "11:30"),
	)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	second := m.cursor.Slot
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	first := m.cursor.Slot

	if second == first {
		t.Fatal("tab did not move between appointments")
	}
	if first != m.gridCfg.SlotIndexFromTime("09:00") && second != m.gridCfg.SlotIndexFromTime("09:00") {
		t.Fatal("cursor never landed on the first appointment")
	}
}

func TestRescheduleViaCursor(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 0

	m, _ = step(t, m, keyRunes("r"))
	if m.mode != ModeReschedule {
		t.Fatalf("mode = %v, want ModeReschedule", m.mode)
	}
	if m.rescheduleID != "appt-Ana Reyes" {
		t.Fatalf("rescheduleID = %q", m.rescheduleID)
	}

	// Picking a free slot feeds the pending move instead of the form.
	m.cursor.Slot = 8 // 10:00
	m, cmd := step(t, m, keyRunes("n"))
	if m.rescheduleID != "" {
		t.Fatal("rescheduleID not consumed")
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after move", m.mode)
	}
	if cmd == nil {
		t.Fatal("no reschedule command issued")
	}
}

func TestRescheduleEscCancels(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 0

	m, _ = step(t, m, keyRunes("r"))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.rescheduleID != "" || m.mode != ModeReschedule && m.mode != ModeNormal {
		t.Fatalf("esc left rescheduleID=%q mode=%v", m.rescheduleID, m.mode)
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after esc", m.mode)
	}
}

func TestKeyboardDragBooksRange(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 4 // 09:00

	m, _ = step(t, m, keyRunes("v"))
	if !m.selector.Dragging() {
		t.Fatal("v did not start a keyboard drag")
	}

	m, _ = step(t, m, keyRunes("j"))
	m, _ = step(t, m, keyRunes("j"))
	m, _ = step(t, m, keyRunes("v"))

	if m.mode != ModeBooking {
		t.Fatalf("mode = %v, want ModeBooking", m.mode)
	}
	if m.pendingSlot.StartTime != "09:00" || m.pendingSlot.EndTime != "09:45" {
		t.Fatalf("slot = %s–%s, want 09:00–09:45", m.pendingSlot.StartTime, m.pendingSlot.EndTime)
	}
}

func TestKeyboardDragEscAborts(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 4

	m, _ = step(t, m, keyRunes("v"))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.selector.Dragging() {
		t.Fatal("esc did not abort the drag")
	}
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after abort", m.mode)
	}
}

func TestBookingFormFocusAndSubmit(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 4
	m, _ = step(t, m, keyRunes("n"))

	// Type a patient name; the debounce command must follow.
	var cmd tea.Cmd
	for _, r := range "Ana" {
		m, cmd = step(t, m, keyRunes(string(r)))
	}
	if m.formPatient.Value() != "Ana" {
		t.Fatalf("patient input = %q", m.formPatient.Value())
	}
	if cmd == nil {
		t.Fatal("typing did not schedule a debounced search")
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.formFocus != 1 {
		t.Fatalf("formFocus = %d, want 1", m.formFocus)
	}
	for _, r := range "Check" {
		m, _ = step(t, m, keyRunes(string(r)))
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.formFocus != 2 {
		t.Fatalf("formFocus = %d, want 2", m.formFocus)
	}

	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after submit", m.mode)
	}
	if cmd == nil {
		t.Fatal("submit did not issue a booking command")
	}
}

func TestBookingFormEmptyPatientRejected(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 4
	m, _ = step(t, m, keyRunes("n"))

	m.setFormFocus(2)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeBooking {
		t.Fatal("empty patient submit closed the form")
	}
	if m.statusMsg == "" {
		t.Fatal("no error surfaced for empty patient")
	}
}

func TestBookingFormDurationStep(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 2 // 08:30, 15 min by default
	m, _ = step(t, m, keyRunes("n"))

	m.setFormFocus(2)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.pendingSlot.EndTime != "09:00" {
		t.Fatalf("EndTime = %q after widening, want 09:00", m.pendingSlot.EndTime)
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.pendingSlot.EndTime != "08:45" {
		t.Fatalf("EndTime = %q after narrowing, want 08:45", m.pendingSlot.EndTime)
	}
}

func TestBookingFormTypeToggle(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 2
	m, _ = step(t, m, keyRunes("n"))

	m.setFormFocus(2)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.formType != 1 {
		t.Fatalf("formType = %d, want 1", m.formType)
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if want := len(appointment.Types()) - 1; m.formType != want {
		t.Fatalf("formType = %d, want %d (wraps)", m.formType, want)
	}
}

func TestBookingFormMatchSelection(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 2
	m, _ = step(t, m, keyRunes("n"))
	m.patientMatches = []appointment.Patient{
		{ID: "p1", FirstName: "Ana", LastName: "Reyes"},
		{ID: "p2", FirstName: "Anabel", LastName: "Soto"},
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.formPatient.Value() != "Ana Reyes" {
		t.Fatalf("value = %q, want first match", m.formPatient.Value())
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.formPatient.Value() != "Anabel Soto" {
		t.Fatalf("value = %q, want second match", m.formPatient.Value())
	}
}

func TestBookingFormEscCloses(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 2
	m, _ = step(t, m, keyRunes("n"))
	m, _ = step(t, m, keyRunes("x")) // text entry, not a cancel action
	if m.mode != ModeBooking {
		t.Fatal("typing x closed the form")
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != ModeNormal {
		t.Fatal("esc did not close the form")
	}
	if m.pendingSlot != nil {
		t.Fatal("pendingSlot not cleared")
	}
	if m.formPatient.Value() != "" {
		t.Fatal("patient input not reset")
	}
}

func TestCancelOnContinuationRow(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "09:00"))
	m.cursor.Slot = 2 // 08:30, two rows past the start

	m, _ = step(t, m, keyRunes("x"))
	if m.mode != ModeConfirmCancel {
		t.Fatalf("mode = %v, want ModeConfirmCancel", m.mode)
	}
	if m.confirmID != "appt-Ana Reyes" {
		t.Fatalf("confirmID = %q, want appt-Ana Reyes", m.confirmID)
	}
}

func TestRescheduleByLessThanOwnDuration(t *testing.T) {
	m := newTestModel(t)
	moved := mustAppt(t, "Ana Reyes", "2026-03-04", "08:15", "08:45")
	var gotStart string
	m.source = fakeSource{
		move: func(id string, newDate time.Time, newStart string) (*appointment.Appointment, error) {
			gotStart = newStart
			return moved, nil
		},
	}
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 0

	m, _ = step(t, m, keyRunes("r"))

	// 08:15 overlaps the appointment's own current time; the moved
	// appointment must not count against itself.
	m.cursor.Slot = 1
	m, cmd := step(t, m, keyRunes("n"))
	if strings.Contains(m.statusMsg, "conflicts") {
		t.Fatalf("move refused as self-conflict: %q", m.statusMsg)
	}
	if m.rescheduleID != "" {
		t.Fatal("rescheduleID not consumed")
	}
	if m.store.moveID != "" {
		t.Fatal("conflict exclusion not cleared after the move")
	}
	if cmd == nil {
		t.Fatal("no reschedule command issued")
	}
	if msg := cmd(); gotStart != "08:15" {
		t.Fatalf("cmd() = %T with newStart %q, want 08:15", msg, gotStart)
	}
}

func TestRescheduleEscRestoresConflictChecks(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))
	m.cursor.Slot = 0

	m, _ = step(t, m, keyRunes("r"))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.store.moveID != "" {
		t.Fatal("conflict exclusion still active after esc")
	}

	// The slot is occupied again once the move is abandoned.
	m.cursor.Slot = 1
	m, _ = step(t, m, keyRunes("n"))
	if !strings.Contains(m.statusMsg, "conflicts") {
		t.Fatalf("statusMsg = %q, want conflict refusal", m.statusMsg)
	}
}

func TestStatusKeyAdvancesStatus(t *testing.T) {
	m := newTestModel(t)
	var gotStatus appointment.Status
	m.source = fakeSource{
		update: func(a *appointment.Appointment) (*appointment.Appointment, error) {
			gotStatus = a.Status
			return a, nil
		},
	}
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "09:00"))
	m.cursor.Slot = 3 // last row of the appointment's span

	m, cmd := step(t, m, keyRunes("s"))
	if cmd == nil {
		t.Fatal("no update command issued")
	}
	msg := cmd()
	if _, ok := msg.(commands.AppointmentUpdatedMsg); !ok {
		t.Fatalf("cmd() = %T, want AppointmentUpdatedMsg", msg)
	}
	if gotStatus != appointment.StatusInProgress {
		t.Fatalf("status = %q, want %q", gotStatus, appointment.StatusInProgress)
	}

	m, _ = step(t, m, msg)
	if !strings.Contains(m.statusMsg, "In Progress") {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
}

func TestStatusKeyOnFreeSlotIsNoop(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 5

	_, cmd := step(t, m, keyRunes("s"))
	if cmd != nil {
		t.Fatal("update command issued for a free slot")
	}
}

func TestNextStatusCycle(t *testing.T) {
	steps := []appointment.Status{
		appointment.StatusBooked,
		appointment.StatusInProgress,
		appointment.StatusCompleted,
		appointment.StatusNoShow,
		appointment.StatusBooked,
	}
	for i := 0; i < len(steps)-1; i++ {
		if got := nextStatus(steps[i]); got != steps[i+1] {
			t.Errorf("nextStatus(%q) = %q, want %q", steps[i], got, steps[i+1])
		}
	}
}
