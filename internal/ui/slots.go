package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/dateutil"
	"github.com/lucasnevarez/turnos/internal/grid"
)

func (a *App) slotsCmd() *cobra.Command {
	var (
		date     string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show free slots for a date",
		Long: `Show the start times on the configured working-hours grid where an
appointment of the given duration would fit without a conflict.`,
		Example: `  turnos slots --date=tomorrow
  turnos slots --date=friday --duration=45`,
		RunE: func(_ *cobra.Command, _ []string) error {
			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}

			free, err := a.freeStarts(day, duration)
			if err != nil {
				return err
			}
			if len(free) == 0 {
				fmt.Printf("No free %s slots on %s.\n", FormatDuration(duration), day.Format("Mon Jan 2"))
				return nil
			}

			if !a.config.IsWorkingDay(day.Weekday().String()) {
				fmt.Println(formatWarning("Note: not a configured working day."))
			}
			fmt.Println(formatHeader(fmt.Sprintf("Free %s slots on %s:", FormatDuration(duration), day.Format("Mon Jan 2"))))
			for i, start := range free {
				fmt.Printf("  %s–%s", start, appointment.AddMinutes(start, duration))
				if (i+1)%4 == 0 || i == len(free)-1 {
					fmt.Println()
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "Date (YYYY-MM-DD or relative)")
	cmd.Flags().IntVar(&duration, "duration", 30, "Appointment duration in minutes")

	return cmd
}

// slotLister is satisfied by sources that can compute availability
// server-side, like the remote client.
type slotLister interface {
	AvailableSlots(ctx context.Context, clinicianID string, date time.Time, durationMinutes int) ([]string, error)
}

// freeStarts asks the source for availability when it supports it and
// falls back to computing against the local grid otherwise.
func (a *App) freeStarts(day time.Time, duration int) ([]string, error) {
	if lister, ok := a.source.(slotLister); ok {
		free, err := lister.AvailableSlots(context.Background(), "", day, duration)
		if err != nil {
			return nil, fmt.Errorf("fetching free slots: %w", err)
		}
		return free, nil
	}

	cfg, err := grid.NewConfig(a.config.StartHour(), a.config.EndHour(), a.config.Schedule.Granularity)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule config: %w", err)
	}
	appts, err := a.source.ListAppointments(context.Background(), day, day)
	if err != nil {
		return nil, fmt.Errorf("loading appointments: %w", err)
	}
	return grid.AvailableStartTimes(cfg, day, duration, appts), nil
}
