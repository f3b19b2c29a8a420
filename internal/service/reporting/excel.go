package reporting

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/canehaul/internal/domain/ledger"
)

// XLSXContentType is the MIME type of the workbook written by ExportExcel.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var travelHeader = []interface{}{"Date", "Group", "Land", "Driver", "Plate", "Destination", "Present", "Tons", "Income", "Labor", "Driver pay", "Expenses", "Net"}

// ExportExcel writes a workbook with one sheet per summary view plus the
// travel rows.
func (s *Service) ExportExcel(ctx context.Context, w io.Writer) error {
	report, err := s.BuildReport(ctx)
	if err != nil {
		return err
	}

	f, err := workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func workbook(report *Report) (*excelize.File, error) {
	f := excelize.NewFile()

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{"Employees", employeeRows(report.Employees)},
		{"Groups", groupRows(report.Groups)},
		{"Lands", routeRows(report.Lands)},
		{"Travels", travelRows(report.Travels)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", sheet.name, err)
		}

		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			values := row
			if err := f.SetSheetRow(sheet.name, cell, &values); err != nil {
				return nil, fmt.Errorf("fill sheet %s: %w", sheet.name, err)
			}
		}
	}

	return f, nil
}

func travelRows(items []ledger.TravelRow) [][]interface{} {
	rows := [][]interface{}{travelHeader}
	for _, t := range items {
		date := t.Name
		if t.Dated {
			date = t.Date.Format(dateLayout)
		}
		rows = append(rows, []interface{}{
			date, t.GroupName, t.LandName, t.DriverName, t.PlateName, t.DestinationName, t.Present,
			roundCentavos(t.Tons), roundCentavos(t.Income), roundCentavos(t.LaborCost),
			roundCentavos(t.DriverCost), roundCentavos(t.Expenses), roundCentavos(t.Net),
		})
	}
	return rows
}
