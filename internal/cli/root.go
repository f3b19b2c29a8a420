// Package cli implements haulctl, the operator command line for the hauling
// ledger.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/canehaul/internal/domain/models"
	"github.com/mamadbah2/canehaul/internal/service/reporting"
)

var version = "1.0.0"

// Backend is the slice of the reporting service the commands drive.
type Backend interface {
	BuildReport(ctx context.Context) (*reporting.Report, error)
	WeeklyReport(ctx context.Context, now time.Time) (models.SummaryReport, error)
	SaveWeeklyReport(ctx context.Context, now time.Time) (models.SummaryReport, error)
	ExportExcel(ctx context.Context, w io.Writer) error
	ExportSheets(ctx context.Context) error
	Location() *time.Location
}

// Opener connects a Backend using the env file named by --env-file. The
// returned func releases it.
type Opener func(ctx context.Context, envFile string) (Backend, func(), error)

type runner struct {
	open    Opener
	envFile string
	now     func() time.Time
}

// NewRootCommand builds the haulctl command tree.
func NewRootCommand(open Opener) *cobra.Command {
	r := &runner{open: open, now: time.Now}

	root := &cobra.Command{
		Use:   "haulctl",
		Short: "Operator tools for the sugarcane hauling ledger",
		Long: `haulctl reads the hauling records from MongoDB and prints the
employee, group and land summaries, the weekly payroll report, and
refreshes the spreadsheet and workbook exports.

Configuration comes from the same environment variables as the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&r.envFile, "env-file", "", "Environment file to load before reading configuration")

	root.AddCommand(r.summaryCommand(), r.weeklyCommand(), r.exportCommand())
	return root
}

// Execute runs the command tree against args and reports any error on the
// command's error stream.
func Execute(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

func (r *runner) withBackend(cmd *cobra.Command, fn func(Backend) error) error {
	backend, closeFn, err := r.open(cmd.Context(), r.envFile)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(backend)
}
