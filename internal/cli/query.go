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

func queryCommand() *cobra.Command {
	var (
		search   string
		filters  []string
		sortKey  string
		dir      string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "List inventory records",
		Args:  cobra.NoArgs,
		Example: heredoc.Doc(`
			$ invq query --search sky --page 2
			$ invq query --filter cost_1m_10m --sort name
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := inventory.ActivateFilters(inventory.DefaultFilterGroups(), filters...)
			if err != nil {
				return err
			}

			key, err := inventory.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			sort := inventory.SortState{}
			if key != "" {
				sort.Key = key
				switch inventory.Direction(dir) {
				case inventory.Asc:
					sort.Direction = inventory.Asc
				case inventory.Desc:
					sort.Direction = inventory.Desc
				default:
					return fmt.Errorf("invalid --dir %q, only support \"asc desc\"", dir)
				}
			}

			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			resp, err := svc.Query(cmd.Context(), inventory.Query{
				SearchTerm: search,
				Filters:    groups,
				Sort:       sort,
				Page:       page,
				PageSize:   pageSize,
			})
			if err != nil {
				return err
			}

			renderRecords(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match product name or id")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Activate a filter, repeatable (see 'invq filters')")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort column: name, type, cost, production_stage or id")
	cmd.Flags().StringVar(&dir, "dir", string(inventory.Asc), "Sort direction: asc or desc")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Records per page (0 uses the configured size)")

	return cmd
}

func renderRecords(w io.Writer, resp *inventory.QueryResponse) {
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Product", "Facility", "Type", "Cost", "Stage", "ID"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, r := range resp.Records {
		table.Append(recordRow(p, r))
	}
	table.Render()

	p.Fprintf(w, "page %d of %d (%d records)\n", resp.Page, resp.TotalPages, resp.Total)
}

func recordRow(p *message.Printer, r inventory.Record) []string {
	return []string{
		r.Name,
		facility(r),
		r.Type.String(),
		formatCost(p, r.Cost),
		string(r.ProductionStage),
		strconv.FormatInt(r.ID, 10),
	}
}

func facility(r inventory.Record) string {
	return location(r.City, r.State)
}

func location(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	}
	return state
}

func formatCost(p *message.Printer, c inventory.Cost) string {
	if v, ok := c.Float(); ok {
		return p.Sprintf("$%.2f", v)
	}
	if s := c.String(); s != "" {
		return s
	}
	return "-"
}
