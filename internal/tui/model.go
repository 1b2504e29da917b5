package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/config"
	"github.com/lucasnevarez/turnos/internal/dateutil"
	"github.com/lucasnevarez/turnos/internal/grid"
	"github.com/lucasnevarez/turnos/internal/tui/commands"
	"github.com/lucasnevarez/turnos/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeBooking
	ModeConfirmCancel
	ModeReschedule
)

// ViewMode selects which calendar surface is rendered. All three share
// the same grid configuration and selector.
type ViewMode int

const (
	ViewWeek ViewMode = iota
	ViewDay
	ViewMonth
)

// Visit duration options for the booking form, in minutes.
var durationOptions = []int{15, 30, 45, 60}

// Position is the keyboard cursor position in the grid.
type Position struct {
	Day  int // 0=Monday, 6=Sunday
	Slot int
}

// apptStore holds the loaded appointment window behind a pointer so the
// selector's lookup closure always sees the latest data even though
// Model itself is copied on every Update.
type apptStore struct {
	byDay map[string][]*appointment.Appointment

	// moveID is the appointment armed for reschedule. It is excluded
	// from conflict lookups so a move can land on a slot overlapping
	// the appointment's own current time.
	moveID string
}

func newApptStore() *apptStore {
	return &apptStore{byDay: make(map[string][]*appointment.Appointment)}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func (s *apptStore) on(date time.Time) []*appointment.Appointment {
	return s.byDay[dayKey(date)]
}

// blocking returns the appointments conflict checks run against on a
// date: everything loaded except the one being moved.
func (s *apptStore) blocking(date time.Time) []*appointment.Appointment {
	all := s.byDay[dayKey(date)]
	if s.moveID == "" {
		return all
	}
	rest := make([]*appointment.Appointment, 0, len(all))
	for _, a := range all {
		if a.ID == s.moveID {
			continue
		}
		rest = append(rest, a)
	}
	return rest
}

func (s *apptStore) replace(appts []*appointment.Appointment) {
	s.byDay = make(map[string][]*appointment.Appointment)
	for _, a := range appts {
		k := dayKey(a.Date)
		s.byDay[k] = append(s.byDay[k], a)
	}
}

// slotInbox receives the slot a finished drag reports. It sits behind a
// pointer for the same reason as apptStore.
type slotInbox struct {
	slot *appointment.TimeSlot
}

func (i *slotInbox) take() *appointment.TimeSlot {
	s := i.slot
	i.slot = nil
	return s
}

// Model is the main TUI model.
type Model struct {
	source appointment.Source
	config *config.Config

	theme  *theme.Theme
	styles *Styles

	gridCfg  grid.Config
	layout   grid.Layout
	selector *grid.Selector
	store    *apptStore
	inbox    *slotInbox

	viewMode  ViewMode
	weekStart time.Time // Monday of the displayed week
	focusDate time.Time // day the cursor is on
	cursor    Position

	loading bool
	loadGen int // newest appointment load generation

	mode Mode

	// Booking form
	pendingSlot    *appointment.TimeSlot
	formPatient    textinput.Model
	formTitle      textinput.Model
	formType       int // index into appointment.Types()
	formFocus      int // 0=patient, 1=title, 2=type
	patientMatches []appointment.Patient
	searchGen      int // newest patient search generation

	// Cancel confirmation
	confirmID    string
	confirmLabel string

	// Reschedule: the appointment being moved; next reported slot is its
	// new time.
	rescheduleID string

	// Appointment selection for keyboard-driven actions
	selectedIdx int

	width        int
	height       int
	colWidth     int
	scrollOffset int

	statusMsg  string
	statusTime time.Time

	nowFunc func() time.Time
	err     error
}

// New creates the TUI model.
func New(source appointment.Source, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	gridCfg, err := grid.NewConfig(cfg.StartHour(), cfg.EndHour(), cfg.Schedule.Granularity)
	if err != nil {
		gridCfg, _ = grid.NewConfig(8, 18, grid.DefaultGranularity)
	}

	store := newApptStore()
	inbox := &slotInbox{}
	selector := grid.NewSelector(gridCfg, store.blocking, func(s appointment.TimeSlot) {
		inbox.slot = &s
	})

	formPatient := textinput.New()
	formPatient.Placeholder = "Patient name"
	formPatient.CharLimit = 128
	formPatient.Width = 32
	formPatient.PlaceholderStyle = styles.ModalPlaceholderStyle
	formPatient.TextStyle = styles.ModalInputTextStyle
	formPatient.PromptStyle = styles.ModalInputTextStyle
	formPatient.Cursor.Style = styles.ModalInputCursorStyle
	formPatient.Cursor.TextStyle = styles.ModalInputTextStyle

	formTitle := textinput.New()
	formTitle.Placeholder = "Reason for visit"
	formTitle.CharLimit = 256
	formTitle.Width = 32
	formTitle.PlaceholderStyle = styles.ModalPlaceholderStyle
	formTitle.TextStyle = styles.ModalInputTextStyle
	formTitle.PromptStyle = styles.ModalInputTextStyle
	formTitle.Cursor.Style = styles.ModalInputCursorStyle
	formTitle.Cursor.TextStyle = styles.ModalInputTextStyle

	now := time.Now()
	return &Model{
		source:      source,
		config:      cfg,
		theme:       t,
		styles:      styles,
		gridCfg:     gridCfg,
		layout:      grid.NewLayout(gridCfg),
		selector:    selector,
		store:       store,
		inbox:       inbox,
		viewMode:    ViewWeek,
		weekStart:   dateutil.StartOfWeek(now),
		focusDate:   dateutil.TruncateToDay(now),
		cursor:      Position{Day: dateutil.WeekdayIndex(now), Slot: 0},
		loading:     true,
		mode:        ModeNormal,
		formPatient: formPatient,
		formTitle:   formTitle,
		colWidth:    defaultColWidth,
		nowFunc:     time.Now,
	}
}

// Init starts the initial appointment load.
func (m Model) Init() tea.Cmd {
	return commands.LoadAppointments(m.source, m.loadGen, m.loadFrom(), m.loadTo())
}

// loadFrom and loadTo bound the appointment window: the displayed week
// for day and week views, the whole month for the month view, padded so
// adjacent navigation has data ready.
func (m Model) loadFrom() time.Time {
	if m.viewMode == ViewMonth {
		first, _ := dateutil.MonthRange(m.focusDate)
		return dateutil.StartOfWeek(first)
	}
	return m.weekStart.AddDate(0, 0, -7)
}

func (m Model) loadTo() time.Time {
	if m.viewMode == ViewMonth {
		_, last := dateutil.MonthRange(m.focusDate)
		return last.AddDate(0, 0, 7)
	}
	return m.weekStart.AddDate(0, 0, 13)
}

// dateForColumn returns the date of a week-view column.
func (m Model) dateForColumn(day int) time.Time {
	return m.weekStart.AddDate(0, 0, day)
}

// appointmentsOn returns the loaded appointments for a date.
func (m Model) appointmentsOn(date time.Time) []*appointment.Appointment {
	return m.store.on(date)
}

// visibleOn returns the appointments that render on a date: everything
// except cancelled ones, which release their slot entirely in the grid
// views.
func (m Model) visibleOn(date time.Time) []*appointment.Appointment {
	all := m.store.on(date)
	visible := make([]*appointment.Appointment, 0, len(all))
	for _, a := range all {
		if a.Status == appointment.StatusCancelled {
			continue
		}
		visible = append(visible, a)
	}
	return visible
}

// appointmentCovering resolves the appointment whose row span occupies a
// slot on date, so rendering and cursor actions agree with conflict
// detection about which rows an appointment owns. The second result
// reports whether this row is the anchor row, where the label renders.
func (m Model) appointmentCovering(date time.Time, slot int) (*appointment.Appointment, bool) {
	start := m.gridCfg.TimeFromSlotIndex(slot)
	appts := m.visibleOn(date)
	// An appointment starting exactly on the row wins the anchor over
	// one bucketed into it from an off-grid start time.
	if hits := appointment.ForSlot(date, start, m.gridCfg.Granularity, appts, appointment.MatchExact); len(hits) > 0 {
		return hits[0], true
	}
	if hits := appointment.ForSlot(date, start, m.gridCfg.Granularity, appts, appointment.MatchContains); len(hits) > 0 {
		return hits[0], true
	}
	// Rows below the anchor are occupied while the span reaches them.
	for _, a := range appts {
		anchor := m.gridCfg.SlotIndexFromTime(a.StartTime)
		if slot > anchor && slot < anchor+m.layout.SlotSpan(a) {
			return a, false
		}
	}
	return nil, false
}

// reload bumps the load generation and fetches the current window.
// In-flight responses from the old generation are dropped on arrival.
func (m *Model) reload() tea.Cmd {
	m.loadGen++
	m.loading = true
	return commands.LoadAppointments(m.source, m.loadGen, m.loadFrom(), m.loadTo())
}

// Run starts the TUI.
func Run(source appointment.Source, cfg *config.Config) error {
	return RunWithDebug(source, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(source appointment.Source, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(source, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
