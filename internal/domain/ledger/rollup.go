package ledger

import "github.com/mamadbah2/canehaul/internal/domain/models"

// TravelFilter narrows a travel collection. Empty fields do not constrain.
type TravelFilter struct {
	EmployeeID    string // present in attendance
	GroupID       string
	LandID        string
	DestinationID string
	PlateID       string
	DriverID      string // employee id of the driver
}

// Match reports whether a travel satisfies every set field of the filter.
func (f TravelFilter) Match(t models.Travel) bool {
	switch {
	case f.GroupID != "" && t.GroupID != f.GroupID:
		return false
	case f.LandID != "" && t.Land != f.LandID:
		return false
	case f.DestinationID != "" && t.Destination != f.DestinationID:
		return false
	case f.PlateID != "" && t.PlateNumber != f.PlateID:
		return false
	case f.DriverID != "" && t.Driver != f.DriverID:
		return false
	case f.EmployeeID != "" && !isPresent(t, f.EmployeeID):
		return false
	}
	return true
}

// FilterTravels keeps the travels matching the filter, preserving order.
func FilterTravels(filter TravelFilter, travels []models.Travel) []models.Travel {
	var out []models.Travel
	for _, t := range travels {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// EmployeeTravels returns the travels the employee attended, optionally
// limited to one group when groupID is not empty.
func EmployeeTravels(employeeID, groupID string, travels []models.Travel) []models.Travel {
	return FilterTravels(TravelFilter{EmployeeID: employeeID, GroupID: groupID}, travels)
}

// TotalWage is the employee's group wage summed across travels.
func TotalWage(employeeID string, travels []models.Travel, groups []models.Group) float64 {
	total := 0.0
	for _, t := range travels {
		total += WageOf(t, employeeID, groups)
	}
	return total
}

func TotalTons(travels []models.Travel) float64 {
	total := 0.0
	for _, t := range travels {
		total += num(t.Tons)
	}
	return total
}

func TotalIncome(travels []models.Travel) float64 {
	total := 0.0
	for _, t := range travels {
		total += IncomeOf(t)
	}
	return total
}

// TotalExpenses sums itemized expenses only; labor and driver pay are separate.
func TotalExpenses(travels []models.Travel) float64 {
	total := 0.0
	for _, t := range travels {
		total += ItemizedCostOf(t)
	}
	return total
}

func TotalLaborCost(travels []models.Travel, groups []models.Group) float64 {
	total := 0.0
	for _, t := range travels {
		total += LaborCostOf(t, groups)
	}
	return total
}

func TotalDriverCost(travels []models.Travel, drivers []models.Driver) float64 {
	total := 0.0
	for _, t := range travels {
		total += DriverCostOf(t, drivers)
	}
	return total
}

// NetIncome sums NetOf across travels.
func NetIncome(travels []models.Travel, groups []models.Group, drivers []models.Driver, opts NetOptions) float64 {
	total := 0.0
	for _, t := range travels {
		total += NetOf(t, groups, drivers, opts)
	}
	return total
}

// UnpaidDebt is the employee's outstanding balance. Paid debts are excluded.
func UnpaidDebt(employeeID string, debts []models.Debt) float64 {
	total := 0.0
	for _, d := range debts {
		if d.EmployeeID == employeeID && !d.Paid {
			total += num(d.Amount)
		}
	}
	return total
}

// TotalDebt sums every debt of the employee, paid or not.
func TotalDebt(employeeID string, debts []models.Debt) float64 {
	total := 0.0
	for _, d := range debts {
		if d.EmployeeID == employeeID {
			total += num(d.Amount)
		}
	}
	return total
}

// EmployeeDebts lists the employee's debts, paid included, in store order.
func EmployeeDebts(employeeID string, debts []models.Debt) []models.Debt {
	var out []models.Debt
	for _, d := range debts {
		if d.EmployeeID == employeeID {
			out = append(out, d)
		}
	}
	return out
}

// Paginate returns page (1-based) of size items. A size <= 0 returns all items.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	pages := len(items) / size
	if len(items)%size != 0 {
		pages++
	}
	if page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
