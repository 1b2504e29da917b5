package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasnevarez/turnos/internal/dateutil"
)

// Grid geometry shared by rendering and mouse hit-testing. The title and
// day header occupy the rows above the grid; the footer takes the rows
// below it.
const (
	timeColWidth = 6
	gridTopRows  = 2
	footerRows   = 3
)

// handleMouseMsg translates terminal mouse events into drag selector
// transitions. Month view has no slot surface, so it only honors the
// wheel.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal && m.mode != ModeReschedule {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollOffset--
		m.clampScroll()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollOffset++
		m.clampScroll()
		return m, nil
	}

	if m.viewMode == ViewMonth {
		return m, nil
	}

	date, y, ok := m.hitTest(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok {
			return m, nil
		}
		m.selector.Begin(date, y, m.slotSurfaceHeight())
		m.focusDate = dateutil.TruncateToDay(date)
		m.cursor.Day = dateutil.WeekdayIndex(date)
		return m, nil

	case tea.MouseActionMotion:
		if !m.selector.Dragging() {
			return m, nil
		}
		if !ok {
			// Off the grid entirely; pointer may come back.
			return m, nil
		}
		m.selector.Update(date, y, m.slotSurfaceHeight())
		return m, nil

	case tea.MouseActionRelease:
		if !m.selector.Dragging() {
			return m, nil
		}
		m.selector.End()
		return m.takeReportedSlot()
	}

	return m, nil
}

// hitTest maps terminal coordinates to a date column and a vertical
// offset on the slot surface. ok is false outside the grid area.
func (m Model) hitTest(x, y int) (time.Time, float64, bool) {
	row := y - gridTopRows
	if row < 0 || row >= m.visibleRows() {
		return time.Time{}, 0, false
	}
	col := x - timeColWidth
	if col < 0 {
		return time.Time{}, 0, false
	}

	var date time.Time
	switch m.viewMode {
	case ViewDay:
		date = m.focusDate
	default:
		day := col / m.colWidth
		if day > 6 {
			return time.Time{}, 0, false
		}
		date = m.weekStart.AddDate(0, 0, day)
	}

	// One terminal row per slot; scrolling shifts the window.
	yOff := float64(row + m.scrollOffset)
	return date, yOff, true
}

// slotSurfaceHeight is the height, in rows, of the full (unscrolled)
// slot surface. One row per slot keeps the pixel-to-slot mapping exact.
func (m Model) slotSurfaceHeight() float64 {
	return float64(m.gridCfg.SlotCount())
}

// visibleRows is how many slot rows fit between the header and footer.
func (m Model) visibleRows() int {
	rows := m.height - gridTopRows - footerRows
	if rows < 1 {
		rows = 1
	}
	if n := m.gridCfg.SlotCount(); rows > n {
		rows = n
	}
	return rows
}
