package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/lucasnevarez/turnos/internal/appointment"
)

// Color definitions for consistent styling across the CLI output.
var (
	colorBooked     = color.New(color.FgBlue, color.Bold)
	colorInProgress = color.New(color.FgCyan)
	colorCompleted  = color.New(color.FgGreen)
	colorWarning    = color.New(color.FgYellow)
	colorHeader     = color.New(color.Bold)
	colorMuted      = color.New(color.FgWhite, color.Faint)
)

// statusColors is the only place appointment statuses map to CLI colors.
var statusColors = map[appointment.Status]*color.Color{
	appointment.StatusBooked:     colorBooked,
	appointment.StatusInProgress: colorInProgress,
	appointment.StatusCompleted:  colorCompleted,
	appointment.StatusCancelled:  colorMuted,
	appointment.StatusNoShow:     colorMuted,
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}
