package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/mamadbah2/canehaul/internal/domain/models"
)

// Options decides, per view, whether driver pay is deducted from net income.
type Options struct {
	NetDriverInGroups bool
	NetDriverInRoutes bool
}

// TravelRow is one travel with its references resolved and its figures computed.
type TravelRow struct {
	TravelID        string    `json:"travelId"`
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
	Dated           bool      `json:"dated"`
	GroupID         string    `json:"groupId"`
	GroupName       string    `json:"groupName"`
	LandName        string    `json:"landName"`
	DriverName      string    `json:"driverName"`
	PlateName       string    `json:"plateName"`
	DestinationName string    `json:"destinationName"`
	Present         int       `json:"present"`
	Tons            float64   `json:"tons"`
	Income          float64   `json:"income"`
	LaborCost       float64   `json:"laborCost"`
	DriverCost      float64   `json:"driverCost"`
	Expenses        float64   `json:"expenses"`
	Net             float64   `json:"net"`
}

// EmployeeSummary is the employee-centric view.
type EmployeeSummary struct {
	EmployeeID  string              `json:"employeeId"`
	Name        string              `json:"name"`
	Type        models.EmployeeType `json:"type"`
	Trips       int                 `json:"trips"`
	Tons        float64             `json:"tons"`
	Wage        float64             `json:"wage"`
	DriverTrips int                 `json:"driverTrips"`
	DriverPay   float64             `json:"driverPay"`
	UnpaidDebt  float64             `json:"unpaidDebt"`
	TotalDebt   float64             `json:"totalDebt"`
	Balance     float64             `json:"balance"`
}

// GroupSummary is the group-centric view.
type GroupSummary struct {
	GroupID    string   `json:"groupId"`
	Name       string   `json:"name"`
	Wage       float64  `json:"wage"`
	Members    []string `json:"members"`
	Trips      int      `json:"trips"`
	Tons       float64  `json:"tons"`
	Income     float64  `json:"income"`
	LaborCost  float64  `json:"laborCost"`
	DriverCost float64  `json:"driverCost"`
	Expenses   float64  `json:"expenses"`
	Net        float64  `json:"net"`
}

// RouteDimension selects the travel reference a RouteSummary is keyed by.
type RouteDimension string

const (
	ByLand        RouteDimension = "land"
	ByDestination RouteDimension = "destination"
	ByPlate       RouteDimension = "plate"
	ByDriver      RouteDimension = "driver"
)

// RouteSummary is the land/route-centric view for one key of a dimension.
type RouteSummary struct {
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Trips      int     `json:"trips"`
	Tons       float64 `json:"tons"`
	Income     float64 `json:"income"`
	LaborCost  float64 `json:"laborCost"`
	DriverCost float64 `json:"driverCost"`
	Expenses   float64 `json:"expenses"`
	Net        float64 `json:"net"`
}

// TravelRows computes one row per travel, sorted chronologically.
func (idx *Index) TravelRows(travels []models.Travel, opts NetOptions) []TravelRow {
	rows := make([]TravelRow, 0, len(travels))
	for _, t := range travels {
		date, ok := TravelDate(t.Name)
		rows = append(rows, TravelRow{
			TravelID:        t.ID,
			Name:            t.Name,
			Date:            date,
			Dated:           ok,
			GroupID:         t.GroupID,
			GroupName:       idx.GroupName(t.GroupID),
			LandName:        idx.LandName(t.Land),
			DriverName:      idx.EmployeeName(t.Driver),
			PlateName:       idx.PlateName(t.PlateNumber),
			DestinationName: idx.DestinationName(t.Destination),
			Present:         PresentCount(t),
			Tons:            num(t.Tons),
			Income:          IncomeOf(t),
			LaborCost:       idx.LaborCost(t),
			DriverCost:      idx.DriverCost(t),
			Expenses:        ItemizedCostOf(t),
			Net:             idx.Net(t, opts),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return lessDate(rows[i].Date, rows[i].Dated, rows[j].Date, rows[j].Dated, rows[i].Name, rows[j].Name)
	})
	return rows
}

// EmployeeSummaries computes the employee view over the given travels for
// every employee of the snapshot, sorted by name. Debts are not filtered by
// date: an outstanding balance is outstanding regardless of the period.
func (idx *Index) EmployeeSummaries(travels []models.Travel) []EmployeeSummary {
	debts := idx.snapshot.Debts
	out := make([]EmployeeSummary, 0, len(idx.snapshot.Employees))
	seen := make(map[string]bool, len(idx.snapshot.Employees))

	for _, e := range idx.snapshot.Employees {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true

		s := EmployeeSummary{EmployeeID: e.ID, Name: e.Name, Type: e.Type}
		for _, t := range travels {
			if isPresent(t, e.ID) {
				s.Trips++
				s.Tons += num(t.Tons)
				s.Wage += idx.Wage(t, e.ID)
			}
			if t.Driver == e.ID {
				s.DriverTrips++
				s.DriverPay += idx.DriverCost(t)
			}
		}
		s.UnpaidDebt = UnpaidDebt(e.ID, debts)
		s.TotalDebt = TotalDebt(e.ID, debts)
		s.Balance = s.Wage + s.DriverPay - s.UnpaidDebt
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out
}

// GroupSummaries computes the group view for every group of the snapshot,
// sorted by name. Travels whose group does not resolve contribute nothing.
func (idx *Index) GroupSummaries(travels []models.Travel, opts Options) []GroupSummary {
	netOpts := NetOptions{IncludeDriverCost: opts.NetDriverInGroups}
	out := make([]GroupSummary, 0, len(idx.snapshot.Groups))
	seen := make(map[string]bool, len(idx.snapshot.Groups))

	for _, g := range idx.snapshot.Groups {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true

		s := GroupSummary{GroupID: g.ID, Name: g.Name, Wage: num(g.Wage), Members: idx.MemberNames(g)}
		for _, t := range travels {
			if t.GroupID != g.ID {
				continue
			}
			s.Trips++
			s.Tons += num(t.Tons)
			s.Income += IncomeOf(t)
			s.LaborCost += idx.LaborCost(t)
			s.DriverCost += idx.DriverCost(t)
			s.Expenses += ItemizedCostOf(t)
			s.Net += idx.Net(t, netOpts)
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out
}

// MemberNames resolves a group's member ids and sorts them alphabetically.
func (idx *Index) MemberNames(g models.Group) []string {
	names := make([]string, 0, len(g.Employees))
	for _, id := range g.Employees {
		names = append(names, idx.EmployeeName(id))
	}
	sort.SliceStable(names, func(i, j int) bool { return lessName(names[i], names[j]) })
	return names
}

// RouteSummaries folds travels by one reference dimension. Every known
// reference gets a row, and travels pointing at an unknown id are still
// counted under that id with the placeholder name. Rows are sorted by name.
func (idx *Index) RouteSummaries(dim RouteDimension, travels []models.Travel, opts Options) []RouteSummary {
	netOpts := NetOptions{IncludeDriverCost: opts.NetDriverInRoutes}
	rows := make(map[string]*RouteSummary)
	var order []string

	add := func(key string) *RouteSummary {
		if r, ok := rows[key]; ok {
			return r
		}
		r := &RouteSummary{Key: key, Name: idx.routeName(dim, key)}
		rows[key] = r
		order = append(order, key)
		return r
	}

	for _, key := range idx.routeKeys(dim) {
		add(key)
	}

	for _, t := range travels {
		r := add(routeKey(dim, t))
		r.Trips++
		r.Tons += num(t.Tons)
		r.Income += IncomeOf(t)
		r.LaborCost += idx.LaborCost(t)
		r.DriverCost += idx.DriverCost(t)
		r.Expenses += ItemizedCostOf(t)
		r.Net += idx.Net(t, netOpts)
	}

	out := make([]RouteSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *rows[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out
}

func (idx *Index) routeKeys(dim RouteDimension) []string {
	var keys []string
	switch dim {
	case ByLand:
		for _, l := range idx.snapshot.Lands {
			keys = append(keys, l.ID)
		}
	case ByDestination:
		for _, d := range idx.snapshot.Destinations {
			keys = append(keys, d.ID)
		}
	case ByPlate:
		for _, p := range idx.snapshot.Plates {
			keys = append(keys, p.ID)
		}
	case ByDriver:
		for _, d := range idx.snapshot.Drivers {
			keys = append(keys, d.EmployeeID)
		}
	}
	return keys
}

func (idx *Index) routeName(dim RouteDimension, key string) string {
	switch dim {
	case ByLand:
		return idx.LandName(key)
	case ByDestination:
		return idx.DestinationName(key)
	case ByPlate:
		return idx.PlateName(key)
	case ByDriver:
		return idx.EmployeeName(key)
	}
	return idx.placeholder
}

func routeKey(dim RouteDimension, t models.Travel) string {
	switch dim {
	case ByLand:
		return t.Land
	case ByDestination:
		return t.Destination
	case ByPlate:
		return t.PlateNumber
	case ByDriver:
		return t.Driver
	}
	return ""
}

func lessName(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
