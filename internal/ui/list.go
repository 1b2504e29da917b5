package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasnevarez/turnos/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments in a date range",
		Long: `List all appointments within a date range.

If no dates are specified, lists today's appointments.
If only --start is specified, lists that single day.
If both --start and --end are specified, lists the range (inclusive).`,
		Example: `  turnos list
  turnos list --start=2026-03-02
  turnos list --start=2026-03-02 --end=2026-03-06`,
		RunE: func(_ *cobra.Command, _ []string) error {
			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			appts, err := a.source.ListAppointments(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing appointments: %w", err)
			}

			if len(appts) == 0 {
				fmt.Println("No appointments found in the specified date range.")
				return nil
			}

			var currentDate string
			booked := 0
			for _, appt := range appts {
				date := appt.Date.Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					fmt.Println(formatHeader(fmt.Sprintf("=== %s ===", date)))
					currentDate = date
				}
				printAppointmentRow(appt, verbose)
				if appt.Status.Blocks() {
					booked++
				}
			}

			fmt.Println()
			fmt.Printf("%d appointments, %d active\n", len(appts), booked)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show type and appointment IDs")

	return cmd
}
