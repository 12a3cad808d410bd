package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aerostock/aerostock/internal/core/inventory"
)

func facilitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "facilities [<id>]",
		Short: "List facilities, or the records held at one",
		Args:  cobra.MaximumNArgs(1),
		Example: heredoc.Doc(`
			$ invq facilities
			$ invq facilities 2
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if len(args) == 1 {
				parsed, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid facility id %q", args[0])
				}
				id = parsed
			}

			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				all, err := svc.Facilities(cmd.Context())
				if err != nil {
					return err
				}
				renderFacilities(cmd.OutOrStdout(), all)
				return nil
			}

			inv, err := svc.Facility(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderFacility(cmd.OutOrStdout(), inv)
			return nil
		},
	}
}

func renderFacilities(w io.Writer, all []inventory.FacilityInventory) {
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Facility", "Location", "Type", "Employees", "Airplanes", "Components"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, inv := range all {
		f := inv.Facility
		table.Append([]string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			location(f.City, f.State),
			f.Type,
			p.Sprintf("%d", f.EmployeeCount),
			strconv.Itoa(inv.Airplanes),
			strconv.Itoa(inv.Components),
		})
	}
	table.Render()

	p.Fprintf(w, "%d facilities\n", len(all))
}

func renderFacility(w io.Writer, inv *inventory.FacilityInventory) {
	p := message.NewPrinter(language.English)
	f := inv.Facility

	p.Fprintf(w, "%s (%s)\n", f.Name, location(f.City, f.State))
	if f.Description != "" {
		fmt.Fprintln(w, f.Description)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Product", "Facility", "Type", "Cost", "Stage", "ID"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, r := range inv.Records {
		table.Append(recordRow(p, r))
	}
	table.Render()

	p.Fprintf(w, "%d airplanes, %d components\n", inv.Airplanes, inv.Components)
}
