package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/mamadbah2/canehaul/internal/domain/models"
)

var travelDateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// TravelDate parses a travel name as a calendar date.
func TravelDate(name string) (time.Time, bool) {
	value := strings.Join(strings.Fields(name), " ")
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range travelDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortTravels orders travels chronologically in place, same-day travels by
// name. Travels whose name is not a date come last, ordered by name.
func SortTravels(travels []models.Travel) {
	type key struct {
		date time.Time
		ok   bool
	}
	keys := make(map[string]key, len(travels))
	for _, t := range travels {
		d, ok := TravelDate(t.Name)
		keys[t.Name] = key{date: d, ok: ok}
	}

	sort.SliceStable(travels, func(i, j int) bool {
		a, b := keys[travels[i].Name], keys[travels[j].Name]
		return lessDate(a.date, a.ok, b.date, b.ok, travels[i].Name, travels[j].Name)
	})
}

func lessDate(a time.Time, aok bool, b time.Time, bok bool, aname, bname string) bool {
	switch {
	case aok && bok:
		if !a.Equal(b) {
			return a.Before(b)
		}
		return aname < bname
	case aok != bok:
		return aok
	default:
		return aname < bname
	}
}

// WeekStart is the Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	start := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.Location())
}

// TravelsBetween returns the travels dated within [start, end], by calendar day.
func TravelsBetween(travels []models.Travel, start, end time.Time) []models.Travel {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var out []models.Travel
	for _, t := range travels {
		d, ok := TravelDate(t.Name)
		if !ok || d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out
}
