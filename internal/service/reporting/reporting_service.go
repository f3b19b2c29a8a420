package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/config"
	"github.com/mamadbah2/canehaul/internal/domain/ledger"
	"github.com/mamadbah2/canehaul/internal/domain/models"
	"github.com/mamadbah2/canehaul/internal/repository/mongodb"
	"github.com/mamadbah2/canehaul/internal/repository/sheets"
)

const (
	dateLayout         = "2006-01-02"
	employeesRange     = "Employees!A:K"
	groupsRange        = "Groups!A:K"
	landsRange         = "Lands!A:I"
	weeklyRange        = "Weekly!A:J"
	topEarnersInWeekly = 5
)

// ErrSheetsDisabled is returned by ExportSheets when no spreadsheet is configured.
var ErrSheetsDisabled = errors.New("sheets export is not configured")

// Report bundles the three summary views and the travel rows of one refresh.
type Report struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	Employees   []ledger.EmployeeSummary `json:"employees"`
	Groups      []ledger.GroupSummary    `json:"groups"`
	Lands       []ledger.RouteSummary    `json:"lands"`
	Travels     []ledger.TravelRow       `json:"travels"`
}

// Service turns store snapshots into summaries, reports and exports.
type Service struct {
	repo        mongodb.Repository
	sheets      sheets.Repository
	opts        ledger.Options
	placeholder string
	location    *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires a new reporting service instance. sheetsRepo may be nil
// when no spreadsheet is configured.
func NewService(repository mongodb.Repository, sheetsRepo sheets.Repository, cfg config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repository,
		sheets: sheetsRepo,
		opts: ledger.Options{
			NetDriverInGroups: cfg.Ledger.NetDriverInGroups,
			NetDriverInRoutes: cfg.Ledger.NetDriverInRoutes,
		},
		placeholder: cfg.Ledger.Placeholder,
		location:    cfg.Reporting.Location(),
		logger:      logger,
		now:         time.Now,
	}
}

// Options returns the driver-netting choices the service applies.
func (s *Service) Options() ledger.Options {
	return s.opts
}

// Location is the timezone weeks are computed in.
func (s *Service) Location() *time.Location {
	return s.location
}

// Index loads a fresh snapshot and indexes it.
func (s *Service) Index(ctx context.Context) (*ledger.Index, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return ledger.NewIndex(snap).WithPlaceholder(s.placeholder), nil
}

// BuildReport computes every summary view over all travels.
func (s *Service) BuildReport(ctx context.Context) (*Report, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	return s.reportFrom(idx), nil
}

func (s *Service) reportFrom(idx *ledger.Index) *Report {
	travels := idx.Snapshot().Travels
	return &Report{
		GeneratedAt: s.now().In(s.location),
		Employees:   idx.EmployeeSummaries(travels),
		Groups:      idx.GroupSummaries(travels, s.opts),
		Lands:       idx.RouteSummaries(ledger.ByLand, travels, s.opts),
		Travels:     idx.TravelRows(travels, ledger.NetOptions{IncludeDriverCost: s.opts.NetDriverInGroups}),
	}
}

// WeeklyReport computes the summary of travels dated from Monday of the
// week containing now up to now. Net follows the group netting option so the
// weekly total agrees with the group view.
func (s *Service) WeeklyReport(ctx context.Context, now time.Time) (models.SummaryReport, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return models.SummaryReport{}, err
	}

	local := now.In(s.location)
	start := ledger.WeekStart(local)
	travels := ledger.TravelsBetween(idx.Snapshot().Travels, start, local)
	netOpts := ledger.NetOptions{IncludeDriverCost: s.opts.NetDriverInGroups}

	report := models.SummaryReport{
		WeekStart: start,
		WeekEnd:   local,
		Trips:     len(travels),
		Tons:      ledger.TotalTons(travels),
		CreatedAt: s.now().UTC(),
	}
	for _, t := range travels {
		report.Income += ledger.IncomeOf(t)
		report.LaborCost += idx.LaborCost(t)
		report.DriverCost += idx.DriverCost(t)
		report.Expenses += ledger.ItemizedCostOf(t)
		report.Net += idx.Net(t, netOpts)
	}

	for _, e := range idx.EmployeeSummaries(travels) {
		report.UnpaidDebts += e.UnpaidDebt
		if e.Wage == 0 && e.DriverPay == 0 {
			continue
		}
		report.EmployeePays = append(report.EmployeePays, models.EmployeeWage{
			EmployeeID: e.EmployeeID,
			Name:       e.Name,
			Wage:       e.Wage,
			DriverPay:  e.DriverPay,
		})
	}
	sort.SliceStable(report.EmployeePays, func(i, j int) bool {
		a, b := report.EmployeePays[i], report.EmployeePays[j]
		return a.Wage+a.DriverPay > b.Wage+b.DriverPay
	})

	return report, nil
}

// WeeklySummary renders the weekly report as a WhatsApp message.
func (s *Service) WeeklySummary(ctx context.Context, now time.Time) (string, error) {
	report, err := s.WeeklyReport(ctx, now)
	if err != nil {
		return "", err
	}
	return FormatWeekly(report), nil
}

// SaveWeeklyReport computes the weekly report and stores it.
func (s *Service) SaveWeeklyReport(ctx context.Context, now time.Time) (models.SummaryReport, error) {
	report, err := s.WeeklyReport(ctx, now)
	if err != nil {
		return models.SummaryReport{}, err
	}
	if err := s.repo.SaveSummaryReport(ctx, report); err != nil {
		return models.SummaryReport{}, err
	}

	if s.sheets != nil {
		row := []interface{}{
			report.WeekStart.Format(dateLayout), report.WeekEnd.Format(dateLayout), report.Trips,
			roundCentavos(report.Tons), roundCentavos(report.Income), roundCentavos(report.LaborCost),
			roundCentavos(report.DriverCost), roundCentavos(report.Expenses), roundCentavos(report.Net),
			roundCentavos(report.UnpaidDebts),
		}
		if err := s.sheets.AppendRow(ctx, weeklyRange, row); err != nil {
			s.logger.Warn("weekly row not mirrored to sheets", zap.Error(err))
		}
	}

	s.logger.Info("weekly report saved",
		zap.Time("week_start", report.WeekStart),
		zap.Int("trips", report.Trips),
		zap.Float64("net", report.Net))
	return report, nil
}

// FormatWeekly renders a SummaryReport as plain text.
func FormatWeekly(r models.SummaryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hauling summary (%s to %s)\n", r.WeekStart.Format(dateLayout), r.WeekEnd.Format(dateLayout))

	if r.Trips == 0 {
		b.WriteString("No trips recorded yet this week.\n")
		fmt.Fprintf(&b, "Outstanding debts: %s", FormatPeso(r.UnpaidDebts))
		return b.String()
	}

	fmt.Fprintf(&b, "Trips: %d | Tons: %s\n", r.Trips, FormatTons(r.Tons))
	fmt.Fprintf(&b, "Income: %s\n", FormatPeso(r.Income))
	fmt.Fprintf(&b, "Labor: %s\n", FormatPeso(r.LaborCost))
	fmt.Fprintf(&b, "Driver pay: %s\n", FormatPeso(r.DriverCost))
	fmt.Fprintf(&b, "Expenses: %s\n", FormatPeso(r.Expenses))
	fmt.Fprintf(&b, "Net: %s\n", FormatPeso(r.Net))
	fmt.Fprintf(&b, "Outstanding debts: %s", FormatPeso(r.UnpaidDebts))

	if len(r.EmployeePays) > 0 {
		b.WriteString("\nTop earners:")
		for i, p := range r.EmployeePays {
			if i == topEarnersInWeekly {
				break
			}
			fmt.Fprintf(&b, "\n%d. %s %s", i+1, p.Name, FormatPeso(p.Wage+p.DriverPay))
		}
	}

	return b.String()
}

// ExportSheets overwrites the Employees, Groups and Lands tabs with the
// current summaries.
func (s *Service) ExportSheets(ctx context.Context) error {
	if s.sheets == nil {
		return ErrSheetsDisabled
	}

	report, err := s.BuildReport(ctx)
	if err != nil {
		return err
	}

	tabs := []struct {
		sheetRange string
		rows       [][]interface{}
	}{
		{employeesRange, employeeRows(report.Employees)},
		{groupsRange, groupRows(report.Groups)},
		{landsRange, routeRows(report.Lands)},
	}
	for _, tab := range tabs {
		if err := s.sheets.ReplaceRange(ctx, tab.sheetRange, tab.rows); err != nil {
			return fmt.Errorf("export %s: %w", tab.sheetRange, err)
		}
	}

	s.logger.Info("summaries exported to sheets",
		zap.Int("employees", len(report.Employees)),
		zap.Int("groups", len(report.Groups)),
		zap.Int("lands", len(report.Lands)))
	return nil
}

var (
	employeeHeader = []interface{}{"Employee", "Type", "Trips", "Tons", "Wage", "Driver trips", "Driver pay", "Unpaid debt", "All debts", "Balance", "ID"}
	groupHeader    = []interface{}{"Group", "Wage/ton", "Members", "Trips", "Tons", "Income", "Labor", "Driver pay", "Expenses", "Net", "ID"}
	routeHeader    = []interface{}{"Land", "Trips", "Tons", "Income", "Labor", "Driver pay", "Expenses", "Net", "ID"}
)

func employeeRows(items []ledger.EmployeeSummary) [][]interface{} {
	rows := [][]interface{}{employeeHeader}
	for _, e := range items {
		rows = append(rows, []interface{}{
			e.Name, string(e.Type), e.Trips, roundCentavos(e.Tons), roundCentavos(e.Wage), e.DriverTrips,
			roundCentavos(e.DriverPay), roundCentavos(e.UnpaidDebt), roundCentavos(e.TotalDebt), roundCentavos(e.Balance), e.EmployeeID,
		})
	}
	return rows
}

func groupRows(items []ledger.GroupSummary) [][]interface{} {
	rows := [][]interface{}{groupHeader}
	for _, g := range items {
		rows = append(rows, []interface{}{
			g.Name, roundCentavos(g.Wage), strings.Join(g.Members, ", "), g.Trips, roundCentavos(g.Tons),
			roundCentavos(g.Income), roundCentavos(g.LaborCost), roundCentavos(g.DriverCost), roundCentavos(g.Expenses), roundCentavos(g.Net), g.GroupID,
		})
	}
	return rows
}

func routeRows(items []ledger.RouteSummary) [][]interface{} {
	rows := [][]interface{}{routeHeader}
	for _, r := range items {
		rows = append(rows, []interface{}{
			r.Name, r.Trips, roundCentavos(r.Tons), roundCentavos(r.Income), roundCentavos(r.LaborCost),
			roundCentavos(r.DriverCost), roundCentavos(r.Expenses), roundCentavos(r.Net), r.Key,
		})
	}
	return rows
}
