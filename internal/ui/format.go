package ui

import (
	"fmt"

	"github.com/lucasnevarez/turnos/internal/appointment"
)

// statusSymbol returns the one-character marker printed before a row.
func statusSymbol(s appointment.Status) string {
	switch s {
	case appointment.StatusBooked:
		return "○"
	case appointment.StatusInProgress:
		return "◐"
	case appointment.StatusCompleted:
		return "●"
	case appointment.StatusCancelled:
		return "✗"
	case appointment.StatusNoShow:
		return "!"
	default:
		return "?"
	}
}

// formatStatus colors a status marker or label by its status.
func formatStatus(s appointment.Status, text string) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(text)
	}
	return text
}

// printAppointmentRow prints one appointment line.
func printAppointmentRow(a *appointment.Appointment, verbose bool) {
	symbol := formatStatus(a.Status, statusSymbol(a.Status))
	title := a.Title
	if title == "" {
		title = string(a.Type)
	}

	maxTitle := termWidth() - 40
	if maxTitle < 12 {
		maxTitle = 12
	}
	if !verbose && len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	line := fmt.Sprintf("  %s  %s–%s  %-24s %s",
		symbol, a.StartTime, a.EndTime, a.PatientName, colorMuted.Sprint(title))
	if verbose {
		line += colorMuted.Sprintf("  [%s] %s", a.Type, a.ID)
	}
	fmt.Println(line)
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
