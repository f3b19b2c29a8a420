package ledger

import "github.com/mamadbah2/canehaul/internal/domain/models"

// NetOptions selects which costs are deducted from income.
type NetOptions struct {
	IncludeDriverCost bool
}

// IncomeOf is the gross revenue of both sale legs of a travel.
func IncomeOf(travel models.Travel) float64 {
	return num(travel.SugarcanePrice)*float64(travel.Bags) + num(travel.MolassesPrice)*num(travel.Molasses)
}

// LaborCostOf sums the group wage attributed to every attendance entry.
func LaborCostOf(travel models.Travel, groups []models.Group) float64 {
	return laborFor(travel, findGroup(groups, travel.GroupID))
}

func laborFor(travel models.Travel, group *models.Group) float64 {
	total := 0.0
	for _, att := range travel.Attendance {
		total += wageFor(travel, att.EmployeeID, group)
	}
	return total
}

// DriverCostOf is the flat wage of the travel's driver, or 0 when the driver
// has no Driver record.
func DriverCostOf(travel models.Travel, drivers []models.Driver) float64 {
	return driverFor(findDriver(drivers, travel.Driver))
}

func driverFor(driver *models.Driver) float64 {
	if driver == nil {
		return 0
	}
	return num(driver.Wage)
}

// ItemizedCostOf sums the travel's itemized expenses.
func ItemizedCostOf(travel models.Travel) float64 {
	total := 0.0
	for _, exp := range travel.Expenses {
		total += num(exp.Amount)
	}
	return total
}

// NetOf is income minus labor and itemized costs, and minus the driver's
// wage when opts.IncludeDriverCost is set.
func NetOf(travel models.Travel, groups []models.Group, drivers []models.Driver, opts NetOptions) float64 {
	net := IncomeOf(travel) - LaborCostOf(travel, groups) - ItemizedCostOf(travel)
	if opts.IncludeDriverCost {
		net -= DriverCostOf(travel, drivers)
	}
	return net
}

func findDriver(drivers []models.Driver, employeeID string) *models.Driver {
	if employeeID == "" {
		return nil
	}
	for i := range drivers {
		if drivers[i].EmployeeID == employeeID {
			return &drivers[i]
		}
	}
	return nil
}
