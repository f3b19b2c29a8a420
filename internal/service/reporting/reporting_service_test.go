package reporting

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/canehaul/internal/config"
	"github.com/mamadbah2/canehaul/internal/domain/models"
)

type fakeRepository struct {
	snapshot models.Snapshot
	err      error
	saved    []models.SummaryReport
}

func (f *fakeRepository) LoadSnapshot(context.Context) (models.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeRepository) SaveSummaryReport(_ context.Context, report models.SummaryReport) error {
	f.saved = append(f.saved, report)
	return nil
}

type sheetCall struct {
	sheetRange string
	rows       [][]interface{}
}

type fakeSheets struct {
	replaced []sheetCall
	appended []sheetCall
	err      error
}

func (f *fakeSheets) ReplaceRange(_ context.Context, sheetRange string, rows [][]interface{}) error {
	f.replaced = append(f.replaced, sheetCall{sheetRange: sheetRange, rows: rows})
	return f.err
}

func (f *fakeSheets) AppendRow(_ context.Context, sheetRange string, values []interface{}) error {
	f.appended = append(f.appended, sheetCall{sheetRange: sheetRange, rows: [][]interface{}{values}})
	return f.err
}

func weekSnapshot() models.Snapshot {
	return models.Snapshot{
		Employees: []models.Employee{
			{ID: "e1", Name: "Ana", Type: models.EmployeeRegular},
			{ID: "e2", Name: "Ben", Type: models.EmployeeIrregular},
			{ID: "e3", Name: "Dodong", Type: models.EmployeeRegular},
		},
		Groups:  []models.Group{{ID: "g1", Name: "Crew", Wage: 100, Employees: []string{"e1", "e2"}}},
		Drivers: []models.Driver{{ID: "d1", EmployeeID: "e3", Wage: 300}},
		Travels: []models.Travel{
			{
				ID: "t1", Name: "October 13, 2025", GroupID: "g1", Land: "l1", Driver: "e3",
				Tons: 10, Bags: 20, SugarcanePrice: 200, Expenses: []models.Expense{{Name: "fuel", Amount: 100}},
				Attendance: []models.Attendance{{EmployeeID: "e1", Present: true}, {EmployeeID: "e2", Present: true}},
			},
			{
				ID: "t2", Name: "October 14, 2025", GroupID: "g1", Land: "l1", Driver: "e3",
				Tons: 4, Molasses: 10, MolassesPrice: 30,
				Attendance: []models.Attendance{{EmployeeID: "e1", Present: true}, {EmployeeID: "e2", Present: false}},
			},
			{
				ID: "t3", Name: "October 6, 2025", GroupID: "g1", Land: "l1",
				Tons: 7, Bags: 10, SugarcanePrice: 100,
				Attendance: []models.Attendance{{EmployeeID: "e2", Present: true}},
			},
		},
		Debts: []models.Debt{
			{ID: "d1", EmployeeID: "e1", Amount: 50},
			{ID: "d2", EmployeeID: "e2", Amount: 20, Paid: true},
		},
		Lands: []models.Land{{ID: "l1", Name: "North Field"}},
	}
}

func newTestService(repo *fakeRepository, sheetsRepo *fakeSheets) *Service {
	cfg := config.Config{
		Reporting: config.ReportingConfig{Timezone: "UTC"},
		Ledger:    config.LedgerConfig{NetDriverInGroups: true, Placeholder: "Unknown"},
	}
	var svc *Service
	if sheetsRepo == nil {
		svc = NewService(repo, nil, cfg, nil)
	} else {
		svc = NewService(repo, sheetsRepo, cfg, nil)
	}
	svc.now = func() time.Time { return time.Date(2025, time.October, 15, 20, 0, 0, 0, time.UTC) }
	return svc
}

var wednesday = time.Date(2025, time.October, 15, 20, 0, 0, 0, time.UTC)

func TestWeeklyReport(t *testing.T) {
	svc := newTestService(&fakeRepository{snapshot: weekSnapshot()}, nil)

	report, err := svc.WeeklyReport(context.Background(), wednesday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC), report.WeekStart)
	assert.Equal(t, 2, report.Trips)
	assert.Equal(t, 14.0, report.Tons)
	assert.Equal(t, 4300.0, report.Income)
	assert.Equal(t, 1400.0, report.LaborCost)
	assert.Equal(t, 600.0, report.DriverCost)
	assert.Equal(t, 100.0, report.Expenses)
	assert.Equal(t, 2200.0, report.Net)
	assert.Equal(t, 50.0, report.UnpaidDebts)

	require.Len(t, report.EmployeePays, 3)
	assert.Equal(t, models.EmployeeWage{EmployeeID: "e1", Name: "Ana", Wage: 900}, report.EmployeePays[0])
	assert.Equal(t, models.EmployeeWage{EmployeeID: "e3", Name: "Dodong", DriverPay: 600}, report.EmployeePays[1])
	assert.Equal(t, models.EmployeeWage{EmployeeID: "e2", Name: "Ben", Wage: 500}, report.EmployeePays[2])
}

func TestWeeklyReport_LoadError(t *testing.T) {
	boom := errors.New("boom")
	svc := newTestService(&fakeRepository{err: boom}, nil)

	_, err := svc.WeeklyReport(context.Background(), wednesday)
	assert.ErrorIs(t, err, boom)
}

func TestWeeklySummary(t *testing.T) {
	svc := newTestService(&fakeRepository{snapshot: weekSnapshot()}, nil)

	text, err := svc.WeeklySummary(context.Background(), wednesday)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Hauling summary (2025-10-13 to 2025-10-15)"), text)
	assert.Contains(t, text, "Trips: 2 | Tons: 14.00")
	assert.Contains(t, text, "Income: ₱4,300.00")
	assert.Contains(t, text, "Net: ₱2,200.00")
	assert.Contains(t, text, "Outstanding debts: ₱50.00")
	assert.Contains(t, text, "1. Ana ₱900.00")
	assert.Contains(t, text, "3. Ben ₱500.00")
}

func TestFormatWeekly_NoTrips(t *testing.T) {
	text := FormatWeekly(models.SummaryReport{
		WeekStart:   time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC),
		WeekEnd:     time.Date(2025, time.October, 13, 8, 0, 0, 0, time.UTC),
		UnpaidDebts: 1250,
	})

	assert.Contains(t, text, "No trips recorded yet this week.")
	assert.Contains(t, text, "Outstanding debts: ₱1,250.00")
	assert.NotContains(t, text, "Top earners")
}

func TestSaveWeeklyReport(t *testing.T) {
	repo := &fakeRepository{snapshot: weekSnapshot()}
	sheetsRepo := &fakeSheets{}
	svc := newTestService(repo, sheetsRepo)

	report, err := svc.SaveWeeklyReport(context.Background(), wednesday)
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, report, repo.saved[0])
	require.Len(t, sheetsRepo.appended, 1)
	assert.Equal(t, weeklyRange, sheetsRepo.appended[0].sheetRange)
	assert.Equal(t, "2025-10-13", sheetsRepo.appended[0].rows[0][0])
}

func TestSaveWeeklyReport_SheetsFailureIsNotFatal(t *testing.T) {
	repo := &fakeRepository{snapshot: weekSnapshot()}
	svc := newTestService(repo, &fakeSheets{err: errors.New("quota")})

	_, err := svc.SaveWeeklyReport(context.Background(), wednesday)
	require.NoError(t, err)
	assert.Len(t, repo.saved, 1)
}

func TestBuildReport(t *testing.T) {
	svc := newTestService(&fakeRepository{snapshot: weekSnapshot()}, nil)

	report, err := svc.BuildReport(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Employees, 3)
	assert.Equal(t, "Ana", report.Employees[0].Name)
	assert.Equal(t, 850.0, report.Employees[0].Balance)

	require.Len(t, report.Groups, 1)
	assert.Equal(t, 5300.0, report.Groups[0].Income)
	assert.Equal(t, 5300.0-2100-100-600, report.Groups[0].Net)

	require.Len(t, report.Lands, 1)
	assert.Equal(t, "North Field", report.Lands[0].Name)
	assert.Equal(t, 5300.0-2100-100, report.Lands[0].Net, "routes keep driver pay by default")

	require.Len(t, report.Travels, 3)
	assert.Equal(t, "t3", report.Travels[0].TravelID)
	assert.Equal(t, "Dodong", report.Travels[1].DriverName)
}

func TestExportSheets(t *testing.T) {
	sheetsRepo := &fakeSheets{}
	svc := newTestService(&fakeRepository{snapshot: weekSnapshot()}, sheetsRepo)

	require.NoError(t, svc.ExportSheets(context.Background()))

	require.Len(t, sheetsRepo.replaced, 3)
	assert.Equal(t, employeesRange, sheetsRepo.replaced[0].sheetRange)
	assert.Equal(t, groupsRange, sheetsRepo.replaced[1].sheetRange)
	assert.Equal(t, landsRange, sheetsRepo.replaced[2].sheetRange)

	employees := sheetsRepo.replaced[0].rows
	require.Len(t, employees, 4)
	assert.Equal(t, employeeHeader, employees[0])
	assert.Equal(t, "Ana", employees[1][0])
	assert.Equal(t, 900.0, employees[1][4])
	assert.Equal(t, "Crew", sheetsRepo.replaced[1].rows[1][0])
	assert.Equal(t, "Ana, Ben", sheetsRepo.replaced[1].rows[1][2])
}

func TestExportSheets_Disabled(t *testing.T) {
	svc := newTestService(&fakeRepository{snapshot: weekSnapshot()}, nil)

	assert.ErrorIs(t, svc.ExportSheets(context.Background()), ErrSheetsDisabled)
}

func TestExportSheets_WriteError(t *testing.T) {
	boom := errors.New("forbidden")
	svc := newTestService(&fakeRepository{snapshot: weekSnapshot()}, &fakeSheets{err: boom})

	err := svc.ExportSheets(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), employeesRange)
}

func TestExportExcel(t *testing.T) {
	svc := newTestService(&fakeRepository{snapshot: weekSnapshot()}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportExcel(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Employees", "Groups", "Lands", "Travels"}, f.GetSheetList())

	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Employee", rows[0][0])
	assert.Equal(t, "Ana", rows[1][0])

	travels, err := f.GetRows("Travels")
	require.NoError(t, err)
	require.Len(t, travels, 4)
	assert.Equal(t, "2025-10-06", travels[1][0])
}
