package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cancel <appointment id>",
		Short:   "Cancel an appointment",
		Example: `  turnos cancel 6f1b2c9a`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.source.CancelAppointment(context.Background(), args[0]); err != nil {
				return fmt.Errorf("cancelling appointment: %w", err)
			}
			fmt.Printf("Cancelled %s\n", args[0])
			return nil
		},
	}
}
