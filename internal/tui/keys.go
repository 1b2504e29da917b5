package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/dateutil"
	"github.com/lucasnevarez/turnos/internal/tui/commands"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeBooking:
		return m.handleBookingKeys(msg)
	case ModeConfirmCancel:
		return m.handleConfirmKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.rescheduleID != "" {
			m.rescheduleID = ""
			m.store.moveID = ""
			m.mode = ModeNormal
			m.statusMsg = ""
		}
		if m.selector.Dragging() {
			m.selector.Abort()
		}
		m.selector.ClearConflictMessage()
		return m, nil

	case "h", "left":
		return m.moveDay(-1)
	case "l", "right":
		return m.moveDay(1)

	case "k", "up":
		if m.viewMode == ViewMonth {
			return m.moveDay(-7)
		}
		if m.cursor.Slot > 0 {
			m.cursor.Slot--
		}
		m.extendKeyboardDrag()
		m.ensureCursorVisible()
		return m, nil
	case "j", "down":
		if m.viewMode == ViewMonth {
			return m.moveDay(7)
		}
		if m.cursor.Slot < m.gridCfg.SlotCount()-1 {
			m.cursor.Slot++
		}
		m.extendKeyboardDrag()
		m.ensureCursorVisible()
		return m, nil

	case "v":
		// Keyboard drag: anchor at the cursor, extend with j/k, confirm
		// with v or enter.
		if m.viewMode == ViewMonth {
			return m, nil
		}
		if m.selector.Dragging() {
			m.selector.End()
			return m.takeReportedSlot()
		}
		m.selector.Begin(m.focusDate, float64(m.cursor.Slot), m.slotSurfaceHeight())
		return m, nil

	case "g":
		m.cursor.Slot = 0
		m.ensureCursorVisible()
		return m, nil
	case "G":
		m.cursor.Slot = m.gridCfg.SlotCount() - 1
		m.ensureCursorVisible()
		return m, nil

	case "[":
		return m.moveWeek(-1)
	case "]":
		return m.moveWeek(1)

	case "t":
		now := m.nowFunc()
		m.focusDate = dateutil.TruncateToDay(now)
		m.weekStart = dateutil.StartOfWeek(now)
		m.cursor.Day = dateutil.WeekdayIndex(now)
		return m, m.reload()

	case "w":
		m.viewMode = ViewWeek
		return m, m.reload()
	case "d":
		m.viewMode = ViewDay
		return m, m.reload()
	case "m":
		m.viewMode = ViewMonth
		return m, m.reload()

	case "n", "enter":
		if m.viewMode == ViewMonth {
			m.viewMode = ViewDay
			return m, m.reload()
		}
		if m.selector.Dragging() {
			m.selector.End()
			return m.takeReportedSlot()
		}
		return m.bookAtCursor()

	case "tab":
		m.cycleSelection(1)
		return m, nil
	case "shift+tab":
		m.cycleSelection(-1)
		return m, nil

	case "x":
		a := m.appointmentAtCursor()
		if a == nil {
			return m, nil
		}
		m.mode = ModeConfirmCancel
		m.confirmID = a.ID
		m.confirmLabel = fmt.Sprintf("%s %s–%s", a.PatientName, a.StartTime, a.EndTime)
		return m, nil

	case "r":
		a := m.appointmentAtCursor()
		if a == nil {
			return m, nil
		}
		m.mode = ModeReschedule
		m.rescheduleID = a.ID
		m.store.moveID = a.ID
		m.statusMsg = fmt.Sprintf("Moving %s: drag or pick a new slot, esc to cancel", a.PatientName)
		m.statusTime = time.Now().Add(time.Minute)
		return m, nil

	case "s":
		a := m.appointmentAtCursor()
		if a == nil {
			return m, nil
		}
		updated := *a
		updated.Status = nextStatus(a.Status)
		return m, commands.Update(m.source, &updated)

	case "y":
		return m.yankDay()
	}

	return m, nil
}

// moveDay shifts the focus date. Crossing a week boundary in the week
// views scrolls the whole grid to the adjacent week.
func (m Model) moveDay(delta int) (tea.Model, tea.Cmd) {
	m.focusDate = m.focusDate.AddDate(0, 0, delta)
	newStart := dateutil.StartOfWeek(m.focusDate)
	m.cursor.Day = dateutil.WeekdayIndex(m.focusDate)
	if !dateutil.SameDay(newStart, m.weekStart) {
		m.weekStart = newStart
		return m, m.reload()
	}
	return m, nil
}

func (m Model) moveWeek(delta int) (tea.Model, tea.Cmd) {
	if m.viewMode == ViewMonth {
		m.focusDate = m.focusDate.AddDate(0, delta, 0)
		m.weekStart = dateutil.StartOfWeek(m.focusDate)
		return m, m.reload()
	}
	m.focusDate = m.focusDate.AddDate(0, 0, 7*delta)
	m.weekStart = m.weekStart.AddDate(0, 0, 7*delta)
	return m, m.reload()
}

// extendKeyboardDrag follows the cursor while a keyboard drag is active.
func (m *Model) extendKeyboardDrag() {
	if m.selector.Dragging() {
		m.selector.Update(m.focusDate, float64(m.cursor.Slot), m.slotSurfaceHeight())
	}
}

func (m *Model) ensureCursorVisible() {
	if m.cursor.Slot < m.scrollOffset {
		m.scrollOffset = m.cursor.Slot
	}
	if vis := m.visibleRows(); m.cursor.Slot >= m.scrollOffset+vis {
		m.scrollOffset = m.cursor.Slot - vis + 1
	}
}

// cursorSlotStart is the HH:MM start of the slot under the cursor.
func (m Model) cursorSlotStart() string {
	return m.gridCfg.TimeFromSlotIndex(m.cursor.Slot)
}

// appointmentAtCursor resolves the appointment the cursor slot falls
// inside, or nil when the slot is free. A multi-slot appointment is
// reachable from any row it spans, not just its starting row.
func (m Model) appointmentAtCursor() *appointment.Appointment {
	a, _ := m.appointmentCovering(m.focusDate, m.cursor.Slot)
	return a
}

// cycleSelection steps through the focused day's appointments and moves
// the cursor to the selected one.
func (m *Model) cycleSelection(delta int) {
	appts := m.visibleOn(m.focusDate)
	if len(appts) == 0 {
		return
	}
	m.selectedIdx = (m.selectedIdx + delta + len(appts)) % len(appts)
	m.cursor.Slot = m.gridCfg.SlotIndexFromTime(appts[m.selectedIdx].StartTime)
	m.ensureCursorVisible()
}

// bookAtCursor opens the booking form for a single granularity slot at
// the cursor, or feeds a pending reschedule. Occupied slots refuse.
func (m Model) bookAtCursor() (tea.Model, tea.Cmd) {
	start := m.cursorSlotStart()
	slot := appointment.TimeSlot{
		Date:      m.focusDate,
		StartTime: start,
		EndTime:   appointment.AddMinutes(start, m.gridCfg.Granularity),
	}
	if c := appointment.FindConflict(slot.Date, slot.StartTime, slot.EndTime, m.store.blocking(m.focusDate)); c != nil {
		m.statusMsg = fmt.Sprintf("%s–%s conflicts with %s (%s–%s)",
			slot.StartTime, slot.EndTime, c.PatientName, c.StartTime, c.EndTime)
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, clearStatusAfter(3 * time.Second)
	}

	if m.rescheduleID != "" {
		id := m.rescheduleID
		m.rescheduleID = ""
		m.store.moveID = ""
		m.mode = ModeNormal
		return m, commands.Reschedule(m.source, id, slot.Date, slot.StartTime)
	}
	return m.openBookingForm(slot)
}

// nextStatus steps an appointment through the front-desk day cycle:
// booked, in progress, completed, no show, back to booked.
func nextStatus(s appointment.Status) appointment.Status {
	switch s {
	case appointment.StatusBooked:
		return appointment.StatusInProgress
	case appointment.StatusInProgress:
		return appointment.StatusCompleted
	case appointment.StatusCompleted:
		return appointment.StatusNoShow
	default:
		return appointment.StatusBooked
	}
}

// yankDay copies the focused day's schedule to the system clipboard.
func (m Model) yankDay() (tea.Model, tea.Cmd) {
	appts := m.visibleOn(m.focusDate)
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.focusDate.Format("Monday, January 2 2006"))
	if len(appts) == 0 {
		b.WriteString("No appointments\n")
	}
	for _, a := range appts {
		fmt.Fprintf(&b, "%s–%s  %s  %s (%s)\n", a.StartTime, a.EndTime, a.PatientName, a.Title, a.Type)
	}
	if err := clipboard.WriteAll(b.String()); err != nil {
		return m, commands.StatusCmd(fmt.Sprintf("Clipboard error: %v", err))
	}
	return m, commands.StatusCmd("Day schedule copied to clipboard")
}

func (m Model) handleBookingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeBookingForm()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.setFormFocus((m.formFocus + 1) % 3)
		return m, nil
	case "shift+tab":
		m.setFormFocus((m.formFocus + 2) % 3)
		return m, nil

	case "enter":
		if m.formFocus < 2 {
			m.setFormFocus(m.formFocus + 1)
			return m, nil
		}
		return m.submitBookingForm()

	case "down":
		if m.formFocus == 0 && len(m.patientMatches) > 0 {
			m.formPatient.SetValue(m.nextMatch(1))
			m.formPatient.CursorEnd()
			return m, nil
		}
		if m.formFocus == 2 {
			m.stepDuration(1)
			return m, nil
		}
	case "up":
		if m.formFocus == 0 && len(m.patientMatches) > 0 {
			m.formPatient.SetValue(m.nextMatch(-1))
			m.formPatient.CursorEnd()
			return m, nil
		}
		if m.formFocus == 2 {
			m.stepDuration(-1)
			return m, nil
		}
	case "left":
		if m.formFocus == 2 {
			n := len(appointment.Types())
			m.formType = (m.formType + n - 1) % n
			return m, nil
		}
	case "right":
		if m.formFocus == 2 {
			m.formType = (m.formType + 1) % len(appointment.Types())
			return m, nil
		}
	}

	// Everything else is text entry for the focused input. Typing in
	// the patient field restarts the search debounce.
	var cmd tea.Cmd
	switch m.formFocus {
	case 0:
		before := m.formPatient.Value()
		m.formPatient, cmd = m.formPatient.Update(msg)
		if m.formPatient.Value() != before {
			m.searchGen++
			return m, tea.Batch(cmd, commands.DebounceSearch(m.searchGen))
		}
	case 1:
		m.formTitle, cmd = m.formTitle.Update(msg)
	}
	return m, cmd
}

// nextMatch cycles the patient input through the current match list.
func (m Model) nextMatch(delta int) string {
	cur := m.formPatient.Value()
	idx := -1
	for i, p := range m.patientMatches {
		if p.FullName() == cur {
			idx = i
			break
		}
	}
	n := len(m.patientMatches)
	if idx < 0 {
		if delta > 0 {
			return m.patientMatches[0].FullName()
		}
		return m.patientMatches[n-1].FullName()
	}
	return m.patientMatches[(idx+delta+n)%n].FullName()
}

// stepDuration resizes the pending slot through the preset durations.
func (m *Model) stepDuration(delta int) {
	if m.pendingSlot == nil {
		return
	}
	cur := m.pendingSlot.DurationMinutes()
	idx := 0
	for i, d := range durationOptions {
		if d == cur {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 || idx >= len(durationOptions) {
		return
	}
	m.pendingSlot.EndTime = appointment.AddMinutes(m.pendingSlot.StartTime, durationOptions[idx])
}

func (m *Model) setFormFocus(focus int) {
	m.formFocus = focus
	m.formPatient.Blur()
	m.formTitle.Blur()
	switch focus {
	case 0:
		m.formPatient.Focus()
	case 1:
		m.formTitle.Focus()
	}
}

func (m Model) submitBookingForm() (tea.Model, tea.Cmd) {
	if m.pendingSlot == nil {
		m.closeBookingForm()
		return m, nil
	}
	slot := *m.pendingSlot

	typ := appointment.Types()[m.formType]
	a, err := appointment.New(
		strings.TrimSpace(m.formPatient.Value()),
		strings.TrimSpace(m.formTitle.Value()),
		string(typ),
		slot.Date.Format("2006-01-02"),
		slot.StartTime,
		slot.EndTime,
	)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Cannot book: %v", err)
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, clearStatusAfter(3 * time.Second)
	}

	// The drag already rejected conflicts, but duration edits in the
	// form can grow the slot into an occupied one.
	if c := appointment.FindConflict(slot.Date, slot.StartTime, slot.EndTime, m.appointmentsOn(slot.Date)); c != nil {
		m.statusMsg = fmt.Sprintf("%s–%s conflicts with %s (%s–%s)",
			slot.StartTime, slot.EndTime, c.PatientName, c.StartTime, c.EndTime)
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, clearStatusAfter(3 * time.Second)
	}

	m.closeBookingForm()
	return m, commands.Book(m.source, a)
}

func (m *Model) closeBookingForm() {
	m.mode = ModeNormal
	m.pendingSlot = nil
	m.patientMatches = nil
	m.formPatient.Reset()
	m.formTitle.Reset()
	m.formType = 0
	m.formFocus = 0
	m.formPatient.Blur()
	m.formTitle.Blur()
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		m.mode = ModeNormal
		m.confirmID = ""
		m.confirmLabel = ""
		return m, commands.Cancel(m.source, id)
	case "n", "esc":
		m.mode = ModeNormal
		m.confirmID = ""
		m.confirmLabel = ""
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}
