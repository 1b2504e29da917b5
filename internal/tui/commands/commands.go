// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasnevarez/turnos/internal/appointment"
)

// SearchDebounce is how long patient search waits after the last
// keystroke before hitting the API.
const SearchDebounce = 300 * time.Millisecond

// AppointmentsLoadedMsg is sent when a date range finishes loading.
// Gen identifies the request; the model drops responses whose Gen is
// older than its current one so a slow load can never overwrite a newer
// view.
type AppointmentsLoadedMsg struct {
	Gen          int
	From, To     time.Time
	Appointments []*appointment.Appointment
}

// AppointmentBookedMsg is sent after a booking is created.
type AppointmentBookedMsg struct {
	Appointment *appointment.Appointment
}

// AppointmentUpdatedMsg is sent after a record update, such as a status
// change.
type AppointmentUpdatedMsg struct {
	Appointment *appointment.Appointment
}

// AppointmentCancelledMsg is sent after a cancellation.
type AppointmentCancelledMsg struct {
	ID string
}

// AppointmentMovedMsg is sent after a reschedule.
type AppointmentMovedMsg struct {
	Appointment *appointment.Appointment
}

// PatientMatchesMsg carries patient search results. Stale generations are
// dropped the same way as appointment loads.
type PatientMatchesMsg struct {
	Gen      int
	Patients []appointment.Patient
}

// SearchTickMsg fires when the search debounce window elapses.
type SearchTickMsg struct {
	Gen int
}

// ErrMsg is sent when an operation fails.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ClearConflictMsg is sent when a conflict message's TTL elapses.
type ClearConflictMsg struct{}

// LoadAppointments loads all appointments in [from, to].
func LoadAppointments(src appointment.Source, gen int, from, to time.Time) tea.Cmd {
	return func() tea.Msg {
		appts, err := src.ListAppointments(context.Background(), from, to)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading appointments: %w", err)}
		}
		return AppointmentsLoadedMsg{Gen: gen, From: from, To: to, Appointments: appts}
	}
}

// Book creates an appointment.
func Book(src appointment.Source, a *appointment.Appointment) tea.Cmd {
	return func() tea.Msg {
		created, err := src.CreateAppointment(context.Background(), a)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("booking appointment: %w", err)}
		}
		return AppointmentBookedMsg{Appointment: created}
	}
}

// Update replaces an appointment record, used to step its status.
func Update(src appointment.Source, a *appointment.Appointment) tea.Cmd {
	return func() tea.Msg {
		updated, err := src.UpdateAppointment(context.Background(), a)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("updating appointment: %w", err)}
		}
		return AppointmentUpdatedMsg{Appointment: updated}
	}
}

// Cancel marks an appointment cancelled.
func Cancel(src appointment.Source, id string) tea.Cmd {
	return func() tea.Msg {
		if err := src.CancelAppointment(context.Background(), id); err != nil {
			return ErrMsg{Err: fmt.Errorf("cancelling appointment: %w", err)}
		}
		return AppointmentCancelledMsg{ID: id}
	}
}

// Reschedule moves an appointment to a new date and start time.
func Reschedule(src appointment.Source, id string, newDate time.Time, newStart string) tea.Cmd {
	return func() tea.Msg {
		moved, err := src.RescheduleAppointment(context.Background(), id, newDate, newStart)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("rescheduling appointment: %w", err)}
		}
		return AppointmentMovedMsg{Appointment: moved}
	}
}

// DebounceSearch schedules a SearchTickMsg after the debounce window.
// The model only acts on ticks carrying its latest generation, so rapid
// typing produces a single API call.
func DebounceSearch(gen int) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return SearchTickMsg{Gen: gen}
	})
}

// SearchPatients queries the patient directory.
func SearchPatients(src appointment.Source, gen int, query string) tea.Cmd {
	return func() tea.Msg {
		patients, err := src.SearchPatients(context.Background(), query)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("searching patients: %w", err)}
		}
		return PatientMatchesMsg{Gen: gen, Patients: patients}
	}
}

// StatusCmd emits a transient status line message.
func StatusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearConflictAfterTTL schedules conflict message cleanup.
func ClearConflictAfterTTL(ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ClearConflictMsg{}
	})
}
