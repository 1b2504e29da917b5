package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/tui/view"
)

// openBookingForm switches to the booking modal for the given slot.
func (m Model) openBookingForm(slot appointment.TimeSlot) (tea.Model, tea.Cmd) {
	m.mode = ModeBooking
	m.pendingSlot = &slot
	m.patientMatches = nil
	m.formType = 0
	m.setFormFocus(0)
	return m, m.formPatient.Focus()
}

func (m Model) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		Frame:  m.styles.ModalStyle,
		Header: m.styles.ModalHeaderStyle,
		Title:  m.styles.ModalTitleStyle,
		Footer: m.styles.ModalFooterStyle,
	}
}

func (m Model) renderBookingModal() string {
	if m.pendingSlot == nil {
		return ""
	}
	slot := *m.pendingSlot

	title := fmt.Sprintf("Book  %s  %s–%s", slot.Date.Format("Mon Jan 2"), slot.StartTime, slot.EndTime)

	var body strings.Builder
	body.WriteString(m.formLabel("Patient", 0))
	body.WriteString("\n")
	body.WriteString(m.styles.ModalBodyStyle.Render(m.formPatient.View()))
	body.WriteString("\n")
	body.WriteString(m.renderMatches())
	body.WriteString("\n")
	body.WriteString(m.formLabel("Reason", 1))
	body.WriteString("\n")
	body.WriteString(m.styles.ModalBodyStyle.Render(m.formTitle.View()))
	body.WriteString("\n\n")
	body.WriteString(m.formLabel("Type", 2))
	body.WriteString("  ")
	body.WriteString(m.renderTypeToggle())
	body.WriteString("\n")
	body.WriteString(m.styles.ModalHintStyle.Render(
		fmt.Sprintf("Duration %d min (↑/↓ on Type row to change)", slot.DurationMinutes())))

	footer := "tab next field · enter confirm · esc cancel"
	return view.RenderModalFrame(title, body.String(), footer, m.modalStyles())
}

func (m Model) formLabel(label string, focus int) string {
	if m.formFocus == focus {
		return m.styles.ModalLabelStyle.Underline(true).Render(label)
	}
	return m.styles.ModalLabelStyle.Render(label)
}

// renderMatches lists directory hits under the patient input.
func (m Model) renderMatches() string {
	if len(m.patientMatches) == 0 {
		return m.styles.ModalHintStyle.Render(" ")
	}
	var b strings.Builder
	limit := len(m.patientMatches)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		name := m.patientMatches[i].FullName()
		if i > 0 {
			b.WriteString("\n")
		}
		if name == m.formPatient.Value() {
			b.WriteString(m.styles.ModalButtonActiveStyle.Render("  " + name))
		} else {
			b.WriteString(m.styles.ModalHintStyle.Render("  " + name))
		}
	}
	return b.String()
}

func (m Model) renderTypeToggle() string {
	parts := make([]string, 0, len(appointment.Types()))
	for i, t := range appointment.Types() {
		style := m.styles.TypeInactiveStyle
		if i == m.formType {
			style = m.styles.TypeActiveStyle
		}
		parts = append(parts, style.Render(" "+string(t)+" "))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderConfirmModal() string {
	body := m.styles.ModalBodyStyle.Render(
		fmt.Sprintf("Cancel appointment %s?", m.confirmLabel))
	footer := "y confirm · n keep"
	return view.RenderModalFrame("Cancel appointment", body, footer, m.modalStyles())
}
