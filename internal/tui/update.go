package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasnevarez/turnos/internal/grid"
	"github.com/lucasnevarez/turnos/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		logKeyPress(msg)
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		logMouse(msg)
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.clampScroll()
		return m, nil

	case commands.AppointmentsLoadedMsg:
		// A response from an older generation describes a window the
		// user already navigated away from.
		if msg.Gen != m.loadGen {
			return m, nil
		}
		m.store.replace(msg.Appointments)
		m.loading = false
		return m, nil

	case commands.AppointmentBookedMsg:
		m.statusMsg = fmt.Sprintf("Booked %s at %s", msg.Appointment.PatientName, msg.Appointment.StartTime)
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Batch(m.reload(), clearStatusAfter(3*time.Second))

	case commands.AppointmentCancelledMsg:
		m.statusMsg = "Appointment cancelled"
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Batch(m.reload(), clearStatusAfter(3*time.Second))

	case commands.AppointmentUpdatedMsg:
		m.statusMsg = fmt.Sprintf("%s is now %s", msg.Appointment.PatientName, msg.Appointment.Status)
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Batch(m.reload(), clearStatusAfter(3*time.Second))

	case commands.AppointmentMovedMsg:
		m.statusMsg = fmt.Sprintf("Moved to %s %s", msg.Appointment.Date.Format("Jan 2"), msg.Appointment.StartTime)
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, tea.Batch(m.reload(), clearStatusAfter(3*time.Second))

	case commands.PatientMatchesMsg:
		if msg.Gen != m.searchGen {
			return m, nil
		}
		m.patientMatches = msg.Patients
		return m, nil

	case commands.SearchTickMsg:
		// Only the latest debounce tick triggers a search; earlier ones
		// were superseded by more typing.
		if msg.Gen != m.searchGen || m.mode != ModeBooking {
			return m, nil
		}
		query := m.formPatient.Value()
		if len(query) < 2 {
			m.patientMatches = nil
			return m, nil
		}
		return m, commands.SearchPatients(m.source, m.searchGen, query)

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		return m, clearStatusAfter(5 * time.Second)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, clearStatusAfter(3 * time.Second)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.ClearConflictMsg:
		m.selector.ClearConflictMessage()
		return m, nil
	}

	// Forward remaining messages (cursor blink) to the focused input.
	if m.mode == ModeBooking {
		var cmd tea.Cmd
		switch m.formFocus {
		case 0:
			m.formPatient, cmd = m.formPatient.Update(msg)
		case 1:
			m.formTitle, cmd = m.formTitle.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// takeReportedSlot collects the slot a finished drag produced, if any,
// and routes it: a pending reschedule consumes it as the new time,
// anything else opens the booking form.
func (m Model) takeReportedSlot() (tea.Model, tea.Cmd) {
	slot := m.inbox.take()
	if slot == nil {
		if msg := m.selector.ConflictMessage(); msg != "" {
			logDrag("DRAG_CONFLICT", map[string]any{"message": msg})
			return m, commands.ClearConflictAfterTTL(grid.ConflictMessageTTL)
		}
		return m, nil
	}
	logDrag("DRAG_RESOLVED", map[string]any{
		"date":  slot.Date.Format("2006-01-02"),
		"start": slot.StartTime,
		"end":   slot.EndTime,
	})

	if m.rescheduleID != "" {
		id := m.rescheduleID
		m.rescheduleID = ""
		m.store.moveID = ""
		m.mode = ModeNormal
		return m, commands.Reschedule(m.source, id, slot.Date, slot.StartTime)
	}

	return m.openBookingForm(*slot)
}
