package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aerostock/aerostock/internal/core/inventory"
)

func filtersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the filter ids accepted by 'invq query --filter'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, g := range inventory.FilterCatalog() {
				fmt.Fprintln(out, g.Name)
				for _, e := range g.Predicates {
					fmt.Fprintf(out, "  %-16s %s\n", e.ID, e.Label)
				}
			}
			return nil
		},
	}
}
