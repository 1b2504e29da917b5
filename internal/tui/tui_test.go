package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/config"
	"github.com/lucasnevarez/turnos/internal/dateutil"
)

type fakeSource struct {
	list     func(from, to time.Time) ([]*appointment.Appointment, error)
	create   func(a *appointment.Appointment) (*appointment.Appointment, error)
	update   func(a *appointment.Appointment) (*appointment.Appointment, error)
	cancel   func(id string) error
	move     func(id string, newDate time.Time, newStart string) (*appointment.Appointment, error)
	patients func(query string) ([]appointment.Patient, error)
}

func (f fakeSource) ListAppointments(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	if f.list == nil {
		return nil, nil
	}
	return f.list(from, to)
}

func (f fakeSource) CreateAppointment(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	if f.create == nil {
		return a, nil
	}
	return f.create(a)
}

func (f fakeSource) UpdateAppointment(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	if f.update == nil {
		return a, nil
	}
	return f.update(a)
}

func (f fakeSource) CancelAppointment(ctx context.Context, id string) error {
	if f.cancel == nil {
		return nil
	}
	return f.cancel(id)
}

func (f fakeSource) RescheduleAppointment(ctx context.Context, id string, newDate time.Time, newStart string) (*appointment.Appointment, error) {
	if f.move == nil {
		return nil, errors.New("not implemented")
	}
	return f.move(id, newDate, newStart)
}

func (f fakeSource) SearchPatients(ctx context.Context, query string) ([]appointment.Patient, error) {
	if f.patients == nil {
		return nil, nil
	}
	return f.patients(query)
}

func (f fakeSource) Close() error { return nil }

// testNow is a Wednesday inside a working week.
var testNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(fakeSource{}, config.Default())
	m.width = 90
	m.height = 30
	m.colWidth = m.calculateColWidth()
	m.nowFunc = func() time.Time { return testNow }
	m.focusDate = dateutil.TruncateToDay(testNow)
	m.weekStart = dateutil.StartOfWeek(testNow)
	m.cursor = Position{Day: dateutil.WeekdayIndex(testNow), Slot: 0}
	m.loading = false
	return *m
}

func mustAppt(t *testing.T, patient, date, start, end string) *appointment.Appointment {
	t.Helper()
	a, err := appointment.New(patient, "Visit", "consultation", date, start, end)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.ID = "appt-" + patient
	return a
}

func seed(m Model, appts ...*appointment.Appointment) Model {
	m.store.replace(appts)
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}
