package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/canehaul/internal/domain/models"
	"github.com/mamadbah2/canehaul/internal/service/reporting"
)

func (r *runner) weeklyCommand() *cobra.Command {
	var (
		date string
		save bool
	)

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Print the weekly payroll report",
		Long: `Print the payroll and income report for the week (Monday onward)
containing --date, counting travels up to the end of that day.

With --save the report is also stored and mirrored to the Weekly tab.`,
		Example: "  haulctl weekly\n  haulctl weekly --date 2025-10-15 --save",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withBackend(cmd, func(b Backend) error {
				now, err := r.reportTime(date, b.Location())
				if err != nil {
					return err
				}

				var report models.SummaryReport
				if save {
					report, err = b.SaveWeeklyReport(cmd.Context(), now)
				} else {
					report, err = b.WeeklyReport(cmd.Context(), now)
				}
				if err != nil {
					return fmt.Errorf("weekly report: %w", err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), reporting.FormatWeekly(report))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day inside the week to report (format: YYYY-MM-DD, default: now)")
	cmd.Flags().BoolVar(&save, "save", false, "Store the report and append it to the Weekly tab")
	return cmd
}

// reportTime resolves --date to the last instant of that day in loc.
func (r *runner) reportTime(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if date == "" {
		return r.now().In(loc), nil
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", date, err)
	}
	return day.AddDate(0, 0, 1).Add(-time.Second), nil
}
