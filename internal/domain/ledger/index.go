package ledger

import "github.com/mamadbah2/canehaul/internal/domain/models"

// Placeholder is the display name of a reference that does not resolve.
const Placeholder = "Unknown"

// Index resolves ids to records for one snapshot. Build it once per refresh
// and pass it to the rollups instead of rescanning the raw collections.
type Index struct {
	snapshot     models.Snapshot
	placeholder  string
	employees    map[string]*models.Employee
	groups       map[string]*models.Group
	drivers      map[string]*models.Driver // keyed by employee id
	lands        map[string]string
	plates       map[string]string
	destinations map[string]string
}

// NewIndex builds the lookup tables of a snapshot. When the same id (or, for
// drivers, the same employee id) appears twice the first record wins.
func NewIndex(snapshot models.Snapshot) *Index {
	idx := &Index{
		snapshot:     snapshot,
		placeholder:  Placeholder,
		employees:    make(map[string]*models.Employee, len(snapshot.Employees)),
		groups:       make(map[string]*models.Group, len(snapshot.Groups)),
		drivers:      make(map[string]*models.Driver, len(snapshot.Drivers)),
		lands:        make(map[string]string, len(snapshot.Lands)),
		plates:       make(map[string]string, len(snapshot.Plates)),
		destinations: make(map[string]string, len(snapshot.Destinations)),
	}

	for i := range snapshot.Employees {
		e := &snapshot.Employees[i]
		if _, ok := idx.employees[e.ID]; !ok {
			idx.employees[e.ID] = e
		}
	}
	for i := range snapshot.Groups {
		g := &snapshot.Groups[i]
		if _, ok := idx.groups[g.ID]; !ok {
			idx.groups[g.ID] = g
		}
	}
	for i := range snapshot.Drivers {
		d := &snapshot.Drivers[i]
		if d.EmployeeID == "" {
			continue
		}
		if _, ok := idx.drivers[d.EmployeeID]; !ok {
			idx.drivers[d.EmployeeID] = d
		}
	}
	for _, l := range snapshot.Lands {
		setOnce(idx.lands, l.ID, l.Name)
	}
	for _, p := range snapshot.Plates {
		setOnce(idx.plates, p.ID, p.Name)
	}
	for _, d := range snapshot.Destinations {
		setOnce(idx.destinations, d.ID, d.Name)
	}

	return idx
}

// WithPlaceholder overrides the name used for unresolved references.
func (idx *Index) WithPlaceholder(name string) *Index {
	if name != "" {
		idx.placeholder = name
	}
	return idx
}

// Snapshot returns the records the index was built from.
func (idx *Index) Snapshot() models.Snapshot { return idx.snapshot }

// Employee looks up an employee by id.
func (idx *Index) Employee(id string) (models.Employee, bool) {
	if e, ok := idx.employees[id]; ok {
		return *e, true
	}
	return models.Employee{}, false
}

// Group looks up a group by id.
func (idx *Index) Group(id string) (models.Group, bool) {
	if g, ok := idx.groups[id]; ok {
		return *g, true
	}
	return models.Group{}, false
}

// DriverFor returns the Driver record of an employee.
func (idx *Index) DriverFor(employeeID string) (models.Driver, bool) {
	if d, ok := idx.drivers[employeeID]; ok {
		return *d, true
	}
	return models.Driver{}, false
}

func (idx *Index) EmployeeName(id string) string {
	if e, ok := idx.employees[id]; ok {
		return e.Name
	}
	return idx.placeholder
}

func (idx *Index) GroupName(id string) string {
	if g, ok := idx.groups[id]; ok {
		return g.Name
	}
	return idx.placeholder
}

func (idx *Index) LandName(id string) string        { return idx.resolve(idx.lands, id) }
func (idx *Index) PlateName(id string) string       { return idx.resolve(idx.plates, id) }
func (idx *Index) DestinationName(id string) string { return idx.resolve(idx.destinations, id) }

// Wage is WageOf with the group resolved through the index.
func (idx *Index) Wage(travel models.Travel, employeeID string) float64 {
	return wageFor(travel, employeeID, idx.groups[travel.GroupID])
}

// LaborCost is LaborCostOf with the group resolved through the index.
func (idx *Index) LaborCost(travel models.Travel) float64 {
	return laborFor(travel, idx.groups[travel.GroupID])
}

// DriverCost is DriverCostOf with the driver resolved through the index.
func (idx *Index) DriverCost(travel models.Travel) float64 {
	return driverFor(idx.drivers[travel.Driver])
}

// Net is NetOf with lookups resolved through the index.
func (idx *Index) Net(travel models.Travel, opts NetOptions) float64 {
	net := IncomeOf(travel) - idx.LaborCost(travel) - ItemizedCostOf(travel)
	if opts.IncludeDriverCost {
		net -= idx.DriverCost(travel)
	}
	return net
}

func (idx *Index) resolve(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return idx.placeholder
}

func setOnce(m map[string]string, key, value string) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}
