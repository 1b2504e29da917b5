// Package tui provides the terminal user interface for turnos.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/tui/theme"
)

// Default column width, recalculated from the terminal size.
const defaultColWidth = 18

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	// statusColors is the only place appointment statuses map to colors.
	// Day, week and month views all read from it; a status missing here
	// falls back to the accent color.
	statusColors map[appointment.Status]lipgloss.Color

	// Title and headers
	TitleStyle          lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	DayHeaderDimStyle   lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Grid cells
	EmptyCellStyle    lipgloss.Style
	DimCellStyle      lipgloss.Style
	CursorStyle       lipgloss.Style
	DragBandStyle     lipgloss.Style
	ApptCellStyle     lipgloss.Style
	ApptSelectedStyle lipgloss.Style

	// Footer
	LegendStyle   lipgloss.Style
	StatusStyle   lipgloss.Style
	ConflictStyle lipgloss.Style
	HelpStyle     lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalHintStyle         lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style

	// Visit type toggle in the booking form
	TypeActiveStyle   lipgloss.Style
	TypeInactiveStyle lipgloss.Style

	// App container
	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}

	s.colorBg = theme.Color(t.Bg)
	s.colorBgHighlight = theme.Color(t.BgHighlight)
	s.colorBgSelection = theme.Color(t.BgSelection)
	s.colorFg = theme.Color(t.Fg)
	s.colorFgMuted = theme.Color(t.FgMuted)
	s.colorAccent = theme.Color(t.Accent)
	s.colorWarning = theme.Color(t.Warning)

	s.statusColors = map[appointment.Status]lipgloss.Color{
		appointment.StatusBooked:     theme.Color(t.Booked),
		appointment.StatusInProgress: theme.Color(t.InProgress),
		appointment.StatusCompleted:  theme.Color(t.Completed),
		appointment.StatusCancelled:  theme.Color(t.Cancelled),
		appointment.StatusNoShow:     theme.Color(t.NoShow),
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorFg).
		Background(s.colorBg).
		Align(lipgloss.Center)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(s.colorAccent).
		Underline(true)

	s.DayHeaderDimStyle = s.DayHeaderStyle.
		Bold(false).
		Foreground(s.colorFgMuted)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Align(lipgloss.Right)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.DimCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBgHighlight)

	s.CursorStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgSelection).
		Bold(true)

	s.DragBandStyle = lipgloss.NewStyle().
		Foreground(s.colorBg).
		Background(s.colorAccent)

	s.ApptCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.ApptSelectedStyle = s.ApptCellStyle.
		Background(s.colorBgSelection).
		Bold(true)

	s.LegendStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.ConflictStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	modal := theme.Color(coalesceColor(t.Modal().BaseBg, t.BgHighlight))
	s.ModalBgColor = modal
	s.ModalBackdropColor = s.colorBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Color(t.Modal().ModalBorder)).
		BorderBackground(modal).
		Background(modal).
		Padding(1, 2)

	s.ModalHeaderStyle = lipgloss.NewStyle().Background(modal)
	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Color(t.Modal().TextPrimary)).
		Background(modal)
	s.ModalFooterStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Modal().TextMuted)).
		Background(modal)
	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Modal().TextPrimary)).
		Background(modal)
	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Modal().TextMuted)).
		Background(modal)
	s.ModalHintStyle = s.ModalFooterStyle.Italic(true)
	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Modal().TextPrimary)).
		Background(modal)
	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(modal)
	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Modal().TextMuted)).
		Background(modal)
	s.ModalButtonStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Modal().TextMuted)).
		Background(modal).
		Padding(0, 2)
	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Foreground(s.colorBg).
		Background(s.colorAccent).
		Bold(true).
		Padding(0, 2)

	s.TypeActiveStyle = lipgloss.NewStyle().
		Foreground(s.colorBg).
		Background(s.colorAccent).
		Padding(0, 1)
	s.TypeInactiveStyle = lipgloss.NewStyle().
		Foreground(theme.Color(t.Modal().TextMuted)).
		Background(modal).
		Padding(0, 1)

	s.AppStyle = lipgloss.NewStyle().Background(s.colorBg)

	return s
}

// StatusColor returns the color for an appointment status, falling back
// to the accent color for statuses the theme does not know.
func (s *Styles) StatusColor(status appointment.Status) lipgloss.Color {
	if c, ok := s.statusColors[status]; ok {
		return c
	}
	return s.colorAccent
}

// ApptStyle returns the cell style for an appointment, colored by status.
// Cancelled and no-show appointments keep the normal cell background so
// the freed slot reads as open.
func (s *Styles) ApptStyle(a *appointment.Appointment) lipgloss.Style {
	if a == nil {
		return s.EmptyCellStyle
	}
	style := s.ApptCellStyle.Foreground(s.StatusColor(a.Status))
	if !a.Status.Blocks() {
		style = style.Background(s.colorBg).Strikethrough(a.Status == appointment.StatusCancelled)
	}
	return style
}

func coalesceColor(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
