package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/tui/commands"
)

func TestLoadedMsgStaleGenerationDropped(t *testing.T) {
	m := newTestModel(t)
	m.loadGen = 3
	m.loading = true

	appts := []*appointment.Appointment{mustAppt(t, "Ana Reyes", "2026-03-04", "09:00", "09:30")}

	m, _ = step(t, m, commands.AppointmentsLoadedMsg{Gen: 2, Appointments: appts})
	if len(m.appointmentsOn(m.focusDate)) != 0 {
		t.Fatal("stale load applied")
	}
	if !m.loading {
		t.Fatal("stale load cleared loading flag")
	}

	m, _ = step(t, m, commands.AppointmentsLoadedMsg{Gen: 3, Appointments: appts})
	if len(m.appointmentsOn(m.focusDate)) != 1 {
		t.Fatal("current load not applied")
	}
	if m.loading {
		t.Fatal("loading flag not cleared")
	}
}

func TestBookedMsgSetsStatusAndReloads(t *testing.T) {
	m := newTestModel(t)
	gen := m.loadGen

	a := mustAppt(t, "Ana Reyes", "2026-03-04", "09:00", "09:30")
	m, cmd := step(t, m, commands.AppointmentBookedMsg{Appointment: a})

	if !strings.Contains(m.statusMsg, "Ana Reyes") {
		t.Fatalf("statusMsg = %q, want patient name", m.statusMsg)
	}
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	if m.loadGen != gen+1 {
		t.Fatalf("loadGen = %d, want %d", m.loadGen, gen+1)
	}
}

func TestClearStatusRespectsDeadline(t *testing.T) {
	m := newTestModel(t)
	m.statusMsg = "hello"
	m.statusTime = time.Now().Add(time.Minute)

	m, _ = step(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "hello" {
		t.Fatal("cleared a message that had not expired")
	}

	m.statusTime = time.Now().Add(-time.Second)
	m, _ = step(t, m, commands.ClearStatusMsg{})
	if m.statusMsg != "" {
		t.Fatal("expired message not cleared")
	}
}

func TestSearchTickOnlyLatestGenerationFires(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeBooking
	m.searchGen = 5
	m.formPatient.SetValue("rey")

	_, cmd := step(t, m, commands.SearchTickMsg{Gen: 4})
	if cmd != nil {
		t.Fatal("stale tick fired a search")
	}

	_, cmd = step(t, m, commands.SearchTickMsg{Gen: 5})
	if cmd == nil {
		t.Fatal("latest tick did not fire a search")
	}
}

func TestSearchTickShortQueryClearsMatches(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeBooking
	m.searchGen = 1
	m.formPatient.SetValue("r")
	m.patientMatches = []appointment.Patient{{ID: "p1", FirstName: "Ana", LastName: "Reyes"}}

	m, cmd := step(t, m, commands.SearchTickMsg{Gen: 1})
	if cmd != nil {
		t.Fatal("short query fired a search")
	}
	if m.patientMatches != nil {
		t.Fatal("short query did not clear matches")
	}
}

func TestPatientMatchesStaleGenerationDropped(t *testing.T) {
	m := newTestModel(t)
	m.searchGen = 2

	match := []appointment.Patient{{ID: "p1", FirstName: "Ana", LastName: "Reyes"}}
	m, _ = step(t, m, commands.PatientMatchesMsg{Gen: 1, Patients: match})
	if len(m.patientMatches) != 0 {
		t.Fatal("stale matches applied")
	}

	m, _ = step(t, m, commands.PatientMatchesMsg{Gen: 2, Patients: match})
	if len(m.patientMatches) != 1 {
		t.Fatal("current matches not applied")
	}
}

func TestClearConflictMsgClearsSelector(t *testing.T) {
	m := newTestModel(t)
	m = seed(m, mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30"))

	// Drag over the booked slot to provoke a conflict.
	m.selector.Begin(m.focusDate, 0, m.slotSurfaceHeight())
	m.selector.End()
	if m.selector.ConflictMessage() == "" {
		t.Fatal("expected a conflict message")
	}

	m, _ = step(t, m, commands.ClearConflictMsg{})
	if got := m.selector.ConflictMessage(); got != "" {
		t.Fatalf("ConflictMessage = %q after clear", got)
	}
}

func TestWindowSizeRecalculatesColumns(t *testing.T) {
	m := newTestModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 132, Height: 40})
	if m.width != 132 || m.height != 40 {
		t.Fatalf("size = %dx%d", m.width, m.height)
	}
	if want := (132 - timeColWidth) / 7; m.colWidth != want {
		t.Fatalf("colWidth = %d, want %d", m.colWidth, want)
	}
}

func TestErrMsgSurfacesError(t *testing.T) {
	m := newTestModel(t)
	m.loading = true
	m, cmd := step(t, m, commands.ErrMsg{Err: errors.New("boom")})
	if m.loading {
		t.Fatal("loading flag not cleared on error")
	}
	if !strings.Contains(m.statusMsg, "boom") {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	if cmd == nil {
		t.Fatal("expected clear-status timer")
	}
}

func TestUpdatedMsgSetsStatusAndReloads(t *testing.T) {
	m := newTestModel(t)
	gen := m.loadGen
	a := mustAppt(t, "Ana Reyes", "2026-03-04", "08:00", "08:30")
	a.Status = appointment.StatusCompleted

	m, cmd := step(t, m, commands.AppointmentUpdatedMsg{Appointment: a})
	if !strings.Contains(m.statusMsg, "Completed") {
		t.Fatalf("statusMsg = %q", m.statusMsg)
	}
	if m.loadGen != gen+1 {
		t.Fatal("no reload triggered")
	}
	if cmd == nil {
		t.Fatal("expected reload command")
	}
}
