// Package ledger attributes travel income and wage cost to employees, groups
// and routes. Every function is pure: it reads the records it is given and
// never touches the store.
package ledger

import (
	"math"

	"github.com/mamadbah2/canehaul/internal/domain/models"
)

// WageOf returns the employee's share of the group wage pool for one travel.
// The pool, group wage times tons, is split equally between every attendance
// entry marked present, including entries for former group members.
func WageOf(travel models.Travel, employeeID string, groups []models.Group) float64 {
	return wageFor(travel, employeeID, findGroup(groups, travel.GroupID))
}

func wageFor(travel models.Travel, employeeID string, group *models.Group) float64 {
	if group == nil {
		return 0
	}

	if !isPresent(travel, employeeID) {
		return 0
	}

	present := PresentCount(travel)
	if present == 0 {
		return 0
	}

	return num(group.Wage) * num(travel.Tons) / float64(present)
}

// PresentCount is the number of attendance entries marked present.
func PresentCount(travel models.Travel) int {
	count := 0
	for _, att := range travel.Attendance {
		if att.Present {
			count++
		}
	}
	return count
}

func isPresent(travel models.Travel, employeeID string) bool {
	for _, att := range travel.Attendance {
		if att.EmployeeID == employeeID {
			return att.Present
		}
	}
	return false
}

func findGroup(groups []models.Group, id string) *models.Group {
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i]
		}
	}
	return nil
}

// num coerces non-numbers to zero so a bad field never poisons a fold.
func num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
