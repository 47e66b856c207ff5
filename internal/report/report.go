// Package report shapes expense collections for dashboards and exports:
// per-key totals, chart series, currency text and CSV.
package report

import (
	"sort"

	"github.com/mmwale/expense-tracker/internal/core/calendar"
	"github.com/mmwale/expense-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

const (
	OtherCategory  = "Other"
	UnassignedTeam = "Unassigned"
)

// Totals maps a grouping key to the summed amount of its expenses.
type Totals map[string]decimal.Decimal

// Point is one bar or slice of a chart.
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

func groupBy(expenses []expense.Expense, key func(expense.Expense) string) Totals {
	totals := make(Totals)
	for _, e := range expenses {
		k := key(e)
		totals[k] = totals[k].Add(e.Amount.Decimal())
	}
	return totals
}

func GroupByCategory(expenses []expense.Expense) Totals {
	return groupBy(expenses, func(e expense.Expense) string {
		if e.Category == "" {
			return OtherCategory
		}
		return e.Category
	})
}

func GroupByTeam(expenses []expense.Expense) Totals {
	return groupBy(expenses, func(e expense.Expense) string {
		if e.Team == "" {
			return UnassignedTeam
		}
		return e.Team
	})
}

// GroupByDate keys totals by ISO date. Unparseable dates are grouped under
// their raw text.
func GroupByDate(expenses []expense.Expense) Totals {
	return groupBy(expenses, func(e expense.Expense) string {
		t, err := calendar.Parse(e.Date)
		if err != nil {
			return e.Date
		}
		return t.Format(calendar.ISODate)
	})
}

// ChartData flattens totals into points ordered by label.
func ChartData(totals Totals) []Point {
	points := make([]Point, 0, len(totals))
	for label, value := range totals {
		points = append(points, Point{Label: label, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Label < points[j].Label
	})
	return points
}

// CalculateTotal returns the summed amount with two decimals.
func CalculateTotal(expenses []expense.Expense) string {
	return expense.Total(expenses).StringFixed(2)
}
