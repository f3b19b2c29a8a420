package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/canehaul/internal/domain/ledger"
	"github.com/mamadbah2/canehaul/internal/service/reporting"
)

func (r *runner) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "summary employees|groups|lands",
		Short:     "Print a summary view as a table",
		Example:   "  haulctl summary employees\n  haulctl summary lands --env-file prod.env",
		ValidArgs: []string{"employees", "groups", "lands"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withBackend(cmd, func(b Backend) error {
				report, err := b.BuildReport(cmd.Context())
				if err != nil {
					return fmt.Errorf("build report: %w", err)
				}

				out := cmd.OutOrStdout()
				switch args[0] {
				case "employees":
					return printEmployees(out, report.Employees)
				case "groups":
					return printGroups(out, report.Groups)
				default:
					return printRoutes(out, report.Lands)
				}
			})
		},
	}
}

func newTable(out io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	return tw
}

func printEmployees(out io.Writer, items []ledger.EmployeeSummary) error {
	tw := newTable(out, "NAME", "TYPE", "TRIPS", "TONS", "WAGE", "DRIVER PAY", "UNPAID DEBT", "BALANCE")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			e.Name, e.Type, e.Trips, reporting.FormatTons(e.Tons), reporting.FormatPeso(e.Wage),
			reporting.FormatPeso(e.DriverPay), reporting.FormatPeso(e.UnpaidDebt), reporting.FormatPeso(e.Balance))
	}
	return tw.Flush()
}

func printGroups(out io.Writer, items []ledger.GroupSummary) error {
	tw := newTable(out, "GROUP", "WAGE/TON", "MEMBERS", "TRIPS", "TONS", "INCOME", "LABOR", "NET")
	for _, g := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t\n",
			g.Name, reporting.FormatPeso(g.Wage), len(g.Members), g.Trips, reporting.FormatTons(g.Tons),
			reporting.FormatPeso(g.Income), reporting.FormatPeso(g.LaborCost), reporting.FormatPeso(g.Net))
	}
	return tw.Flush()
}

func printRoutes(out io.Writer, items []ledger.RouteSummary) error {
	tw := newTable(out, "LAND", "TRIPS", "TONS", "INCOME", "LABOR", "DRIVER PAY", "EXPENSES", "NET")
	for _, l := range items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			l.Name, l.Trips, reporting.FormatTons(l.Tons), reporting.FormatPeso(l.Income), reporting.FormatPeso(l.LaborCost),
			reporting.FormatPeso(l.DriverCost), reporting.FormatPeso(l.Expenses), reporting.FormatPeso(l.Net))
	}
	return tw.Flush()
}
