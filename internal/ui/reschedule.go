package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucasnevarez/turnos/internal/dateutil"
)

func (a *App) rescheduleCmd() *cobra.Command {
	var (
		date  string
		start string
	)

	cmd := &cobra.Command{
		Use:   "reschedule <appointment id>",
		Short: "Move an appointment to a new slot",
		Long: `Move an appointment to a new date and start time.

The duration of the original appointment is preserved.`,
		Example: `  turnos reschedule 6f1b2c9a --date=friday --start=14:00`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}

			moved, err := a.source.RescheduleAppointment(context.Background(), args[0], day, start)
			if err != nil {
				return fmt.Errorf("rescheduling appointment: %w", err)
			}

			fmt.Printf("Moved %s to %s %s–%s\n",
				moved.PatientName, moved.Date.Format("Mon Jan 2"),
				moved.StartTime, moved.EndTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "New date (YYYY-MM-DD or relative)")
	cmd.Flags().StringVar(&start, "start", "", "New start time (HH:MM)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
