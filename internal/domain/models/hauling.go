package models

// EmployeeType distinguishes permanent crew from day hires.
type EmployeeType string

const (
	EmployeeRegular   EmployeeType = "REGULAR"
	EmployeeIrregular EmployeeType = "IRREGULAR"
)

// Employee is a worker who can be a group member and/or a driver.
type Employee struct {
	ID   string       `bson:"_id" json:"id"`
	Name string       `bson:"name" json:"name" validate:"required"`
	Type EmployeeType `bson:"type" json:"type" validate:"required,oneof=REGULAR IRREGULAR"`
}

// Group is a labor pool sharing one wage rate per ton hauled.
type Group struct {
	ID        string   `bson:"_id" json:"id"`
	Name      string   `bson:"name" json:"name" validate:"required"`
	Wage      float64  `bson:"wage" json:"wage" validate:"gte=0"`
	Employees []string `bson:"employees" json:"employees"`
}

// Driver marks an employee who additionally drives, paid a flat amount per trip.
type Driver struct {
	ID         string  `bson:"_id" json:"id"`
	EmployeeID string  `bson:"employeeId" json:"employeeId" validate:"required"`
	Wage       float64 `bson:"wage" json:"wage" validate:"gte=0"`
}

// Expense is one itemized cost of a travel.
type Expense struct {
	Name   string  `bson:"name" json:"name"`
	Amount float64 `bson:"amount" json:"amount"`
}

// Attendance states whether an employee worked a travel.
type Attendance struct {
	EmployeeID string `bson:"employeeId" json:"employeeId" validate:"required"`
	Present    bool   `bson:"present" json:"present"`
}

// Travel is one recorded haul. Name holds the calendar date of the trip.
type Travel struct {
	ID             string       `bson:"_id" json:"id"`
	Name           string       `bson:"name" json:"name" validate:"required"`
	GroupID        string       `bson:"groupId" json:"groupId"`
	Land           string       `bson:"land" json:"land"`
	Driver         string       `bson:"driver" json:"driver"`
	PlateNumber    string       `bson:"plateNumber" json:"plateNumber"`
	Destination    string       `bson:"destination" json:"destination"`
	Tons           float64      `bson:"tons" json:"tons" validate:"gte=0"`
	Bags           int          `bson:"bags" json:"bags"`
	SugarcanePrice float64      `bson:"sugarcane_price" json:"sugarcane_price"`
	Molasses       float64      `bson:"molasses" json:"molasses"`
	MolassesPrice  float64      `bson:"molasses_price" json:"molasses_price"`
	Expenses       []Expense    `bson:"expenses" json:"expenses"`
	Attendance     []Attendance `bson:"attendance" json:"attendance" validate:"dive"`
	Ticket         string       `bson:"ticket,omitempty" json:"ticket,omitempty"`
	PSTC           string       `bson:"pstc,omitempty" json:"pstc,omitempty"`
}

// Debt is an amount an employee owes the operation.
type Debt struct {
	ID          string  `bson:"_id" json:"id"`
	EmployeeID  string  `bson:"employeeId" json:"employeeId" validate:"required"`
	Amount      float64 `bson:"amount" json:"amount"`
	Description string  `bson:"description" json:"description"`
	Date        string  `bson:"date" json:"date"`
	Paid        bool    `bson:"paid" json:"paid"`
}

// Land is a field sugarcane is hauled from.
type Land struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name" validate:"required"`
}

// Plate is a truck plate number.
type Plate struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name" validate:"required"`
}

// Destination is a mill or buyer a travel delivers to.
type Destination struct {
	ID   string `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name" validate:"required"`
}

func (e *Employee) GetID() string    { return e.ID }
func (g *Group) GetID() string       { return g.ID }
func (d *Driver) GetID() string      { return d.ID }
func (t *Travel) GetID() string      { return t.ID }
func (d *Debt) GetID() string        { return d.ID }
func (l *Land) GetID() string        { return l.ID }
func (p *Plate) GetID() string       { return p.ID }
func (d *Destination) GetID() string { return d.ID }

func (e *Employee) SetID(id string)    { e.ID = id }
func (g *Group) SetID(id string)       { g.ID = id }
func (d *Driver) SetID(id string)      { d.ID = id }
func (t *Travel) SetID(id string)      { t.ID = id }
func (d *Debt) SetID(id string)        { d.ID = id }
func (l *Land) SetID(id string)        { l.ID = id }
func (p *Plate) SetID(id string)       { p.ID = id }
func (d *Destination) SetID(id string) { d.ID = id }

// Snapshot is every collection as read during one refresh.
type Snapshot struct {
	Employees    []Employee
	Groups       []Group
	Drivers      []Driver
	Travels      []Travel
	Debts        []Debt
	Lands        []Land
	Plates       []Plate
	Destinations []Destination
}
