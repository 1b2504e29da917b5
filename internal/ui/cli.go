package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/config"
	"github.com/lucasnevarez/turnos/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	source  appointment.Source
	config  *config.Config
	root    *cobra.Command
	noColor bool
	debug   bool
}

// NewApp creates a new CLI application with the given appointment source
// and config.
func NewApp(source appointment.Source, cfg *config.Config) *App {
	a := &App{source: source, config: cfg}

	a.root = &cobra.Command{
		Use:   "turnos",
		Short: "A terminal scheduler for clinic appointments",
		Long: `Turnos is a terminal front-end for clinic appointment books.

Running it without a subcommand opens the interactive calendar, where
appointments are booked by dragging across free slots. The subcommands
cover the same operations for scripting.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.source, a.config, a.debug)
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
	}

	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+tui.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.bookCmd())
	a.root.AddCommand(a.cancelCmd())
	a.root.AddCommand(a.rescheduleCmd())
	a.root.AddCommand(a.slotsCmd())
	a.root.AddCommand(a.patientsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("turnos %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the appointment source.
func (a *App) Close() error {
	if a.source == nil {
		return nil
	}
	return a.source.Close()
}
