package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/canehaul/internal/service/reporting"
)

func (r *runner) exportCommand() *cobra.Command {
	export := &cobra.Command{
		Use:   "export",
		Short: "Refresh the workbook or spreadsheet exports",
	}

	var out string
	xlsx := &cobra.Command{
		Use:     "xlsx",
		Short:   "Write the summaries to an Excel workbook",
		Example: "  haulctl export xlsx --out week42.xlsx",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withBackend(cmd, func(b Backend) (err error) {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer func() {
					if cerr := f.Close(); err == nil && cerr != nil {
						err = fmt.Errorf("close %s: %w", out, cerr)
					}
				}()

				if err := b.ExportExcel(cmd.Context(), f); err != nil {
					return fmt.Errorf("export workbook: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Workbook written to %s\n", out)
				return nil
			})
		},
	}
	xlsx.Flags().StringVarP(&out, "out", "o", "hauling-summary.xlsx", "Output file")

	sheets := &cobra.Command{
		Use:   "sheets",
		Short: "Overwrite the Employees, Groups and Lands tabs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withBackend(cmd, func(b Backend) error {
				err := b.ExportSheets(cmd.Context())
				if errors.Is(err, reporting.ErrSheetsDisabled) {
					return fmt.Errorf("%w: set GOOGLE_SHEET_DATABASE_ID", err)
				}
				if err != nil {
					return fmt.Errorf("export sheets: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Spreadsheet updated")
				return nil
			})
		},
	}

	export.AddCommand(xlsx, sheets)
	return export
}
