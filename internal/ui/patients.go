package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) patientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "patients <query>",
		Short:   "Search the patient directory",
		Example: `  turnos patients reyes`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			patients, err := a.source.SearchPatients(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("searching patients: %w", err)
			}
			if len(patients) == 0 {
				fmt.Println("No patients matched.")
				return nil
			}
			for _, p := range patients {
				fmt.Printf("  %s  %s\n", p.FullName(), colorMuted.Sprint(p.ID))
			}
			return nil
		},
	}
}
