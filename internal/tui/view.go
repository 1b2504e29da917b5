package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/dateutil"
	"github.com/lucasnevarez/turnos/internal/tui/view"
)

// View renders the full screen and overlays the active modal, if any.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	base := m.renderApp()

	var modal string
	switch m.mode {
	case ModeBooking:
		modal = m.renderBookingModal()
	case ModeConfirmCancel:
		modal = m.renderConfirmModal()
	}
	if modal != "" {
		return view.Overlay(base, modal, m.width, m.height, m.styles.ModalBgColor)
	}
	return base
}

func (m Model) renderApp() string {
	var body string
	switch m.viewMode {
	case ViewMonth:
		body = m.renderMonth()
	case ViewDay:
		body = m.renderDayGrid()
	default:
		body = m.renderWeekGrid()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		body,
		m.renderFooter(),
	)
	app := m.styles.AppStyle.Render(content)
	return view.PadLinesWithBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderTitle() string {
	var label string
	switch m.viewMode {
	case ViewMonth:
		label = m.focusDate.Format("January 2006")
	case ViewDay:
		label = m.focusDate.Format("Monday, January 2 2006")
	default:
		_, sunday := dateutil.WeekRange(m.weekStart)
		label = fmt.Sprintf("%s – %s", m.weekStart.Format("Jan 2"), sunday.Format("Jan 2 2006"))
	}
	if m.loading {
		label += "  [loading]"
	}
	if m.rescheduleID != "" {
		label += "  [move]"
	}
	return m.styles.TitleStyle.Width(m.width).Render("Turnos  " + label)
}

// renderWeekGrid draws the seven day columns with a time gutter. One
// terminal row per slot keeps rendering aligned with mouse hit-testing.
func (m Model) renderWeekGrid() string {
	var b strings.Builder
	b.WriteString(m.renderDayHeaders())
	b.WriteString("\n")

	rows := m.visibleRows()
	for r := 0; r < rows; r++ {
		slot := r + m.scrollOffset
		b.WriteString(m.renderTimeLabel(slot))
		for day := 0; day < 7; day++ {
			date := m.dateForColumn(day)
			focused := dateutil.SameDay(date, m.focusDate)
			b.WriteString(m.renderCell(date, slot, m.colWidth, focused))
		}
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderDayGrid draws a single wide column for the focused day.
func (m Model) renderDayGrid() string {
	width := m.width - timeColWidth
	if width < defaultColWidth {
		width = defaultColWidth
	}

	var b strings.Builder
	header := m.dayHeaderStyle(m.focusDate).Width(width).
		Render(m.focusDate.Format("Monday, January 2"))
	b.WriteString(m.styles.TimeColumnStyle.Width(timeColWidth).Render(""))
	b.WriteString(header)
	b.WriteString("\n")

	rows := m.visibleRows()
	for r := 0; r < rows; r++ {
		slot := r + m.scrollOffset
		b.WriteString(m.renderTimeLabel(slot))
		b.WriteString(m.renderCell(m.focusDate, slot, width, true))
		if r < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderDayHeaders() string {
	var b strings.Builder
	b.WriteString(m.styles.TimeColumnStyle.Width(timeColWidth).Render(""))
	for day := 0; day < 7; day++ {
		date := m.dateForColumn(day)
		label := date.Format("Mon 2")
		if n := len(m.visibleOn(date)); n > 0 {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		b.WriteString(m.dayHeaderStyle(date).Width(m.colWidth).Render(label))
	}
	return b.String()
}

func (m Model) dayHeaderStyle(date time.Time) lipgloss.Style {
	if dateutil.SameDay(date, dateutil.TruncateToDay(m.nowFunc())) {
		return m.styles.DayHeaderTodayStyle
	}
	if !m.config.IsWorkingDay(date.Weekday().String()) {
		return m.styles.DayHeaderDimStyle
	}
	return m.styles.DayHeaderStyle
}

// renderTimeLabel puts the clock time in the gutter on hour boundaries
// and leaves the rows between them blank.
func (m Model) renderTimeLabel(slot int) string {
	start := m.gridCfg.TimeFromSlotIndex(slot)
	label := ""
	if strings.HasSuffix(start, ":00") {
		label = start
	}
	return m.styles.TimeColumnStyle.Width(timeColWidth).Render(label)
}

// renderCell draws one slot cell. Every row an appointment spans renders
// occupied, so the grid never shows a bookable cell where conflict
// detection would refuse the slot. Style precedence: active drag band,
// keyboard cursor, appointment under the cursor, appointment,
// non-working day, empty.
func (m Model) renderCell(date time.Time, slot int, width int, focusedCol bool) string {
	appt, anchor := m.appointmentCovering(date, slot)

	text := ""
	if appt != nil {
		if anchor {
			text = fmt.Sprintf(" %s %s", appt.StartTime, appt.PatientName)
		} else {
			text = " │"
		}
	}

	var style lipgloss.Style
	switch {
	case m.selector.IsIndexSelected(date, slot):
		style = m.styles.DragBandStyle
	case focusedCol && slot == m.cursor.Slot:
		style = m.styles.CursorStyle
	case appt != nil && focusedCol && m.cursorCovers(appt):
		style = m.styles.ApptSelectedStyle
	case appt != nil:
		style = m.styles.ApptStyle(appt)
	case !m.config.IsWorkingDay(date.Weekday().String()):
		style = m.styles.DimCellStyle
	default:
		style = m.styles.EmptyCellStyle
	}

	return style.Width(width).Render(ansi.Truncate(text, width, "…"))
}

// cursorCovers reports whether the keyboard cursor sits on one of the
// appointment's rows, highlighting the whole span.
func (m Model) cursorCovers(a *appointment.Appointment) bool {
	under, _ := m.appointmentCovering(m.focusDate, m.cursor.Slot)
	return under == a
}

// renderMonth draws a month overview: one row per week, appointment
// counts per day.
func (m Model) renderMonth() string {
	first, last := dateutil.MonthRange(m.focusDate)
	cellW := (m.width - 2) / 7
	if cellW < 8 {
		cellW = 8
	}

	var b strings.Builder
	for day := 0; day < 7; day++ {
		label := dateutil.StartOfWeek(first).AddDate(0, 0, day).Format("Mon")
		b.WriteString(m.styles.DayHeaderStyle.Width(cellW).Render(label))
	}
	b.WriteString("\n")

	today := dateutil.TruncateToDay(m.nowFunc())
	for week := dateutil.StartOfWeek(first); !week.After(last); week = week.AddDate(0, 0, 7) {
		for day := 0; day < 7; day++ {
			date := week.AddDate(0, 0, day)
			label := date.Format("2")
			if n := len(m.visibleOn(date)); n > 0 {
				label = fmt.Sprintf("%s ·%d", label, n)
			}

			style := m.styles.EmptyCellStyle
			switch {
			case dateutil.SameDay(date, m.focusDate):
				style = m.styles.CursorStyle
			case dateutil.SameDay(date, today):
				style = m.styles.DayHeaderTodayStyle
			case date.Month() != m.focusDate.Month():
				style = m.styles.DimCellStyle
			}
			b.WriteString(style.Width(cellW).Render(" " + label))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var legendOrder = []appointment.Status{
	appointment.StatusBooked,
	appointment.StatusInProgress,
	appointment.StatusCompleted,
	appointment.StatusNoShow,
	appointment.StatusCancelled,
}

func (m Model) renderFooter() string {
	var legend strings.Builder
	for i, status := range legendOrder {
		if i > 0 {
			legend.WriteString(m.styles.LegendStyle.Render("  "))
		}
		sw := lipgloss.NewStyle().
			Foreground(m.styles.StatusColor(status)).
			Background(m.styles.colorBg)
		legend.WriteString(sw.Render("■ "))
		legend.WriteString(m.styles.LegendStyle.Render(string(status)))
	}

	status := " "
	statusStyle := m.styles.StatusStyle
	if msg := m.selector.ConflictMessage(); msg != "" {
		status = msg
		statusStyle = m.styles.ConflictStyle
	} else if m.statusMsg != "" {
		status = m.statusMsg
	}

	help := m.helpLine()

	return lipgloss.JoinVertical(lipgloss.Left,
		legend.String(),
		statusStyle.Width(m.width).Render(ansi.Truncate(status, m.width, "…")),
		m.styles.HelpStyle.Width(m.width).Render(help),
	)
}

func (m Model) helpLine() string {
	switch m.viewMode {
	case ViewMonth:
		return "h/l day  j/k week  [/] month  enter open day  w week  t today  q quit"
	default:
		return "hjkl move  drag or n book  x cancel  r move  s status  tab next  y copy day  d/w/m view  t today  q quit"
	}
}

// calculateColWidth fits seven day columns beside the time gutter.
func (m Model) calculateColWidth() int {
	w := (m.width - timeColWidth) / 7
	if w < 8 {
		return 8
	}
	return w
}

func (m *Model) clampScroll() {
	maxOffset := m.gridCfg.SlotCount() - m.visibleRows()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
