package trip

import (
	"sort"
	"strings"
	"time"

	"github.com/mmwale/expense-tracker/internal/core/calendar"
)

// Filter mirrors the trips page: DateFrom bounds the start date, DateTo
// bounds the end date through the end of that day, and Search matches
// destination, purpose or traveler case-insensitively.
type Filter struct {
	Status   Status
	DateFrom string
	DateTo   string
	Search   string
}

func Where(trips []Trip, keep func(Trip) bool) []Trip {
	result := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// Upcoming returns trips starting on or after local midnight of today,
// earliest first. Trips with an unparseable start date are left out.
func Upcoming(trips []Trip, today time.Time) []Trip {
	midnight := calendar.StartOfDay(today)

	type dated struct {
		trip  Trip
		start time.Time
	}
	var upcoming []dated
	for _, t := range trips {
		start, err := calendar.Parse(t.StartDate)
		if err != nil || start.Before(midnight) {
			continue
		}
		upcoming = append(upcoming, dated{trip: t, start: start})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].start.Before(upcoming[j].start)
	})

	result := make([]Trip, len(upcoming))
	for i, d := range upcoming {
		result[i] = d.trip
	}
	return result
}

func Apply(trips []Trip, f Filter) []Trip {
	starts, err := calendar.NewRange(f.DateFrom, "")
	if err != nil {
		return []Trip{}
	}
	ends, err := calendar.NewRange("", f.DateTo)
	if err != nil {
		return []Trip{}
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	return Where(trips, func(t Trip) bool {
		if f.Status != "" && t.Status != f.Status {
			return false
		}
		if !starts.Contains(t.StartDate) || !ends.Contains(t.EndDate) {
			return false
		}
		if search != "" {
			return strings.Contains(strings.ToLower(t.Destination), search) ||
				strings.Contains(strings.ToLower(t.Purpose), search) ||
				strings.Contains(strings.ToLower(t.Traveler), search)
		}
		return true
	})
}
