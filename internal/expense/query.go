package expense

import (
	"github.com/mmwale/expense-tracker/internal/core/calendar"
	"github.com/mmwale/expense-tracker/internal/core/money"
	"github.com/shopspring/decimal"
)

// Where returns the expenses for which keep is true, in their original order.
func Where(expenses []Expense, keep func(Expense) bool) []Expense {
	result := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

func ByTrip(expenses []Expense, tripID string) []Expense {
	return Where(expenses, func(e Expense) bool { return e.TripID == tripID })
}

func ByTeam(expenses []Expense, team string) []Expense {
	return Where(expenses, func(e Expense) bool { return e.Team == team })
}

func ByCategory(expenses []Expense, category string) []Expense {
	return Where(expenses, func(e Expense) bool { return e.Category == category })
}

func ByStatus(expenses []Expense, status Status) []Expense {
	return Where(expenses, func(e Expense) bool { return e.Status == status })
}

func Unreported(expenses []Expense) []Expense {
	return Where(expenses, func(e Expense) bool { return !e.Reported })
}

// ByDateRange keeps expenses dated inside [start, end], where end covers the
// whole calendar day. Empty bounds are open. A bound that does not parse
// matches nothing.
func ByDateRange(expenses []Expense, start, end string) []Expense {
	r, err := calendar.NewRange(start, end)
	if err != nil {
		return []Expense{}
	}
	return Where(expenses, func(e Expense) bool { return r.Contains(e.Date) })
}

// Apply runs every criterion of f in one pass.
func Apply(expenses []Expense, f Filter) []Expense {
	r, err := calendar.NewRange(f.From, f.To)
	if err != nil {
		return []Expense{}
	}
	return Where(expenses, func(e Expense) bool {
		if f.Team != "" && e.Team != f.Team {
			return false
		}
		if f.Category != "" && e.Category != f.Category {
			return false
		}
		if f.Status != "" && e.Status != f.Status {
			return false
		}
		if f.TripID != "" && e.TripID != f.TripID {
			return false
		}
		if f.UnreportedOnly && e.Reported {
			return false
		}
		return r.Contains(e.Date)
	})
}

// Total sums the amounts, counting malformed values as zero.
func Total(expenses []Expense) decimal.Decimal {
	amounts := make([]money.Amount, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}
	return money.Sum(amounts...)
}
