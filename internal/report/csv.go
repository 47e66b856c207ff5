package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmwale/expense-tracker/internal/core/calendar"
	"github.com/mmwale/expense-tracker/internal/expense"
)

var csvHeader = []string{"Date", "Subject", "Employee", "Team", "Amount", "Category", "Description"}

// WriteCSV writes one row per expense under a fixed header. Every cell is
// quoted and embedded quotes are doubled.
func WriteCSV(w io.Writer, expenses []expense.Expense) error {
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}
	for _, e := range expenses {
		date := e.Date
		if t, err := calendar.Parse(e.Date); err == nil {
			date = t.Format(calendar.ISODate)
		}
		row := []string{date, e.Subject, e.Employee, e.Team, e.Amount.String(), e.Category, e.Description}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	if _, err := fmt.Fprintln(w, strings.Join(quoted, ",")); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	return nil
}
