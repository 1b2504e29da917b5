package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucasnevarez/turnos/internal/appointment"
	"github.com/lucasnevarez/turnos/internal/dateutil"
)

func (a *App) bookCmd() *cobra.Command {
	var (
		date     string
		start    string
		duration int
		typ      string
		title    string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "book <patient name>",
		Short: "Book an appointment",
		Long: `Book an appointment for a patient.

Dates accept YYYY-MM-DD or relative forms like "tomorrow", "friday",
or "next monday". The end time is derived from --duration.`,
		Example: `  turnos book "Ana Reyes" --date=tomorrow --start=09:30
  turnos book "Luis Sosa" --date=2026-03-06 --start=11:00 --duration=45 --type=procedure`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			day, err := dateutil.ParseRelativeDate(date, time.Now())
			if err != nil {
				return err
			}

			end := appointment.AddMinutes(start, duration)
			appt, err := appointment.New(args[0], title, typ, day.Format("2006-01-02"), start, end)
			if err != nil {
				return err
			}

			ctx := context.Background()
			existing, err := a.source.ListAppointments(ctx, day, day)
			if err != nil {
				return fmt.Errorf("checking availability: %w", err)
			}
			// Strict mode refuses slots held by cancelled or no-show
			// appointments too; the patient may still turn up.
			conflict := appointment.FindConflict
			if strict {
				conflict = appointment.FindConflictAny
			}
			if c := conflict(day, start, end, existing); c != nil {
				return fmt.Errorf("%s–%s conflicts with %s (%s–%s)",
					start, end, c.PatientName, c.StartTime, c.EndTime)
			}

			created, err := a.source.CreateAppointment(ctx, appt)
			if err != nil {
				return fmt.Errorf("booking appointment: %w", err)
			}

			fmt.Printf("Booked %s on %s %s–%s (%s)\n",
				created.PatientName, created.Date.Format("Mon Jan 2"),
				created.StartTime, created.EndTime, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "today", "Date (YYYY-MM-DD or relative)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", 30, "Duration in minutes")
	cmd.Flags().StringVar(&typ, "type", "consultation", "Visit type (consultation, follow-up, checkup, procedure)")
	cmd.Flags().StringVar(&title, "title", "", "Reason for the visit")
	cmd.Flags().BoolVar(&strict, "strict", false, "Refuse slots held by cancelled or no-show appointments")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
