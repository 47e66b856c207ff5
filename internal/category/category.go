package category

import "slices"

var (
	DefaultTeams = []string{"Engineering", "Marketing", "Sales", "HR"}

	DefaultCategories = []string{
		"Accommodation",
		"Comms",
		"Services",
		"Food",
		"Fuel",
		"Office Supplies",
		"Travel Expenses",
		"Client Dinner",
		"Hotel",
	}
)

// List is an ordered, append-only reference list used to populate selection
// inputs. Duplicates are kept. It is not safe for concurrent use; the owning
// store serializes access.
type List struct {
	items []string
}

func NewList(seed ...string) *List {
	return &List{items: slices.Clone(seed)}
}

func (l *List) Add(name string) {
	l.items = append(l.items, name)
}

// All returns a copy of the list in insertion order.
func (l *List) All() []string {
	return slices.Clone(l.items)
}

func (l *List) Contains(name string) bool {
	return slices.Contains(l.items, name)
}

func (l *List) Len() int {
	return len(l.items)
}
