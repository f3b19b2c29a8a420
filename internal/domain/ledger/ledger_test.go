package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/canehaul/internal/domain/models"
)

func present(ids ...string) []models.Attendance {
	out := make([]models.Attendance, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Attendance{EmployeeID: id, Present: true})
	}
	return out
}

func absent(id string) models.Attendance {
	return models.Attendance{EmployeeID: id, Present: false}
}

var crewGroups = []models.Group{{ID: "g1", Name: "Crew A", Wage: 1000, Employees: []string{"e1", "e2", "e3"}}}

func TestWageOf_EqualSplit(t *testing.T) {
	travel := models.Travel{
		GroupID:    "g1",
		Tons:       2,
		Attendance: append(present("e1", "e2"), absent("e3")),
	}

	assert.Equal(t, 1000.0, WageOf(travel, "e1", crewGroups))
	assert.Equal(t, 1000.0, WageOf(travel, "e2", crewGroups))
	assert.Equal(t, 0.0, WageOf(travel, "e3", crewGroups))
	assert.Equal(t, 2000.0, LaborCostOf(travel, crewGroups))
}

func TestWageOf_SingleWorker(t *testing.T) {
	travel := models.Travel{GroupID: "g1", Tons: 3, Attendance: present("e1")}

	assert.Equal(t, 3000.0, WageOf(travel, "e1", crewGroups))
}

func TestWageOf_ZeroDivisionSafety(t *testing.T) {
	tests := []struct {
		name       string
		attendance []models.Attendance
	}{
		{name: "all absent", attendance: []models.Attendance{absent("e1"), absent("e2")}},
		{name: "empty attendance", attendance: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			travel := models.Travel{GroupID: "g1", Tons: 5, Attendance: tt.attendance}

			for _, id := range []string{"e1", "e2", "e3"} {
				wage := WageOf(travel, id, crewGroups)
				assert.Equal(t, 0.0, wage)
				assert.False(t, math.IsNaN(wage))
			}
			assert.Equal(t, 0.0, LaborCostOf(travel, crewGroups))
		})
	}
}

func TestWageOf_DanglingGroup(t *testing.T) {
	travel := models.Travel{GroupID: "missing", Tons: 4, Attendance: present("e1", "e2")}

	assert.Equal(t, 0.0, WageOf(travel, "e1", crewGroups))
	assert.Equal(t, 0.0, WageOf(travel, "e2", crewGroups))
	assert.Equal(t, 0.0, LaborCostOf(travel, crewGroups))
}

func TestWageOf_FormerMemberStillCounts(t *testing.T) {
	groups := []models.Group{{ID: "g1", Wage: 900, Employees: []string{"e1"}}}
	travel := models.Travel{GroupID: "g1", Tons: 1, Attendance: present("e1", "gone")}

	assert.Equal(t, 450.0, WageOf(travel, "e1", groups))
	assert.Equal(t, 450.0, WageOf(travel, "gone", groups))
}

func TestWageOf_ProrationExactness(t *testing.T) {
	groups := []models.Group{{ID: "g1", Wage: 137.37}}
	for n := 1; n <= 13; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		travel := models.Travel{GroupID: "g1", Tons: 7.31, Attendance: present(ids...)}

		sum := 0.0
		for _, id := range ids {
			sum += WageOf(travel, id, groups)
		}
		pool := 137.37 * 7.31
		assert.InEpsilon(t, pool, sum, 1e-9, "present=%d", n)
	}
}

func TestWageOf_NegativeValuesPropagate(t *testing.T) {
	travel := models.Travel{GroupID: "g1", Tons: -2, Attendance: present("e1")}

	assert.Equal(t, -2000.0, WageOf(travel, "e1", crewGroups))
}

func TestIncomeOf(t *testing.T) {
	tests := []struct {
		name   string
		travel models.Travel
		want   float64
	}{
		{name: "both legs", travel: models.Travel{Bags: 100, SugarcanePrice: 30, Molasses: 10, MolassesPrice: 5}, want: 3050},
		{name: "sugarcane only", travel: models.Travel{Bags: 40, SugarcanePrice: 25.5}, want: 1020},
		{name: "molasses only", travel: models.Travel{Molasses: 2.5, MolassesPrice: 4}, want: 10},
		{name: "nothing set", travel: models.Travel{}, want: 0},
		{name: "nan price coerced", travel: models.Travel{Bags: 10, SugarcanePrice: math.NaN(), Molasses: 1, MolassesPrice: 8}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IncomeOf(tt.travel))
		})
	}
}

func TestItemizedCostOf(t *testing.T) {
	travel := models.Travel{Expenses: []models.Expense{
		{Name: "toll", Amount: 200},
		{Name: "fuel", Amount: 1500.5},
		{Name: "blank"},
		{Name: "bad", Amount: math.Inf(1)},
	}}

	assert.Equal(t, 1700.5, ItemizedCostOf(travel))
}

func TestDriverCostOf(t *testing.T) {
	drivers := []models.Driver{{ID: "d1", EmployeeID: "e9", Wage: 350}}

	assert.Equal(t, 350.0, DriverCostOf(models.Travel{Driver: "e9"}, drivers))
	assert.Equal(t, 0.0, DriverCostOf(models.Travel{Driver: "e1"}, drivers))
	assert.Equal(t, 0.0, DriverCostOf(models.Travel{}, drivers))
}

func TestNetOf_FullAggregate(t *testing.T) {
	groups := []models.Group{{ID: "g1", Wage: 500}}
	drivers := []models.Driver{{EmployeeID: "e9", Wage: 300}}
	travel := models.Travel{
		GroupID:        "g1",
		Tons:           2,
		Driver:         "e9",
		Bags:           100,
		SugarcanePrice: 30,
		Molasses:       10,
		MolassesPrice:  5,
		Expenses:       []models.Expense{{Name: "toll", Amount: 200}},
		Attendance:     present("e1", "e2"),
	}

	assert.Equal(t, 3050.0, IncomeOf(travel))
	assert.Equal(t, 1000.0, LaborCostOf(travel, groups))
	assert.Equal(t, 200.0, ItemizedCostOf(travel))
	assert.Equal(t, 1850.0, NetOf(travel, groups, drivers, NetOptions{}))
	assert.Equal(t, 1550.0, NetOf(travel, groups, drivers, NetOptions{IncludeDriverCost: true}))
}

func TestNetOf_Identity(t *testing.T) {
	groups := []models.Group{{ID: "g1", Wage: 113.7}}
	travels := []models.Travel{
		{GroupID: "g1", Tons: 3.3, Bags: 77, SugarcanePrice: 41.3, Molasses: 0.7, MolassesPrice: 12.1, Attendance: present("a", "b", "c")},
		{GroupID: "g1", Tons: 0.1, Expenses: []models.Expense{{Amount: 0.3}, {Amount: 0.1}}, Attendance: present("a")},
		{GroupID: "nope", Tons: 9, Bags: 1, SugarcanePrice: 1},
	}

	for _, tr := range travels {
		want := IncomeOf(tr) - LaborCostOf(tr, groups) - ItemizedCostOf(tr)
		assert.Equal(t, want, NetOf(tr, groups, nil, NetOptions{}))
		assert.Equal(t, NetOf(tr, groups, nil, NetOptions{}), NetOf(tr, groups, nil, NetOptions{}))
	}
}

func TestIndex_MatchesSliceFunctions(t *testing.T) {
	snap := models.Snapshot{
		Groups:  []models.Group{{ID: "g1", Wage: 250}, {ID: "g2", Wage: 90}},
		Drivers: []models.Driver{{EmployeeID: "e4", Wage: 400}},
	}
	idx := NewIndex(snap)
	travel := models.Travel{GroupID: "g1", Tons: 6, Driver: "e4", Bags: 10, SugarcanePrice: 200, Attendance: append(present("e1", "e2", "e3"), absent("e4"))}

	assert.Equal(t, WageOf(travel, "e2", snap.Groups), idx.Wage(travel, "e2"))
	assert.Equal(t, LaborCostOf(travel, snap.Groups), idx.LaborCost(travel))
	assert.Equal(t, DriverCostOf(travel, snap.Drivers), idx.DriverCost(travel))
	for _, opts := range []NetOptions{{}, {IncludeDriverCost: true}} {
		assert.Equal(t, NetOf(travel, snap.Groups, snap.Drivers, opts), idx.Net(travel, opts))
	}
}

func TestIndex_DriverWithoutEmployee(t *testing.T) {
	snap := models.Snapshot{Drivers: []models.Driver{{EmployeeID: "", Wage: 500}}}
	idx := NewIndex(snap)
	travel := models.Travel{Bags: 10, SugarcanePrice: 200}

	assert.Equal(t, 0.0, DriverCostOf(travel, snap.Drivers))
	assert.Equal(t, DriverCostOf(travel, snap.Drivers), idx.DriverCost(travel))
	assert.Equal(t, NetOf(travel, nil, snap.Drivers, NetOptions{IncludeDriverCost: true}), idx.Net(travel, NetOptions{IncludeDriverCost: true}))
}

func TestIndex_Placeholder(t *testing.T) {
	idx := NewIndex(models.Snapshot{Lands: []models.Land{{ID: "l1", Name: "North Field"}}})

	assert.Equal(t, "North Field", idx.LandName("l1"))
	assert.Equal(t, Placeholder, idx.LandName("l2"))
	assert.Equal(t, Placeholder, idx.EmployeeName("x"))
	assert.Equal(t, "n/a", idx.WithPlaceholder("n/a").GroupName("x"))

	_, ok := idx.Group("x")
	require.False(t, ok)
}
