package cmd

import (
	"fmt"
	"time"

	"github.com/mmwale/expense-tracker/internal/core/calendar"
	"github.com/mmwale/expense-tracker/internal/core/money"
	"github.com/mmwale/expense-tracker/internal/expense"
	"github.com/mmwale/expense-tracker/internal/tracker"
	"github.com/mmwale/expense-tracker/internal/trip"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the store with sample data",
		Long:  `Seed the store with sample trips and expenses for development and demos.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := tracker.FromContext(cmd.Context())
			if len(store.Expenses()) > 0 || len(store.Trips()) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "store already has data; nothing seeded")
				return nil
			}

			n, err := seed(store, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records\n", n)
			return nil
		},
	}
}

func seed(store *tracker.Store, now time.Time) (int, error) {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(calendar.ISODate)
	}
	approved := expense.StatusApproved
	ongoing := trip.StatusOngoing

	lisbon, err := store.AddTrip(trip.CreateTripDTO{
		Destination:   "Lisbon",
		Purpose:       "Client workshop",
		Traveler:      "Ana Costa",
		Team:          "Sales",
		StartDate:     day(-2),
		EndDate:       day(2),
		Status:        &ongoing,
		TransportMode: "Flight",
		Accommodation: "Hotel",
		Budget:        money.FromString("2500"),
	})
	if err != nil {
		return 0, err
	}
	if _, err := store.AddTrip(trip.CreateTripDTO{
		Destination: "Berlin",
		Purpose:     "Conference",
		Traveler:    "Sam Lee",
		Team:        "Engineering",
		StartDate:   day(14),
		EndDate:     day(17),
		Budget:      money.FromString("1800"),
	}); err != nil {
		return 0, err
	}

	expenses := []expense.CreateExpenseDTO{
		{Subject: "Flight to Lisbon", Employee: "Ana Costa", Team: "Sales", Amount: money.FromString("420.00"), Category: "Travel Expenses", Date: day(-2), TripID: lisbon.ID, Status: &approved},
		{Subject: "Hotel night", Employee: "Ana Costa", Team: "Sales", Amount: money.FromString("135.50"), Category: "Hotel", Date: day(-1), TripID: lisbon.ID},
		{Subject: "Client dinner", Employee: "Ana Costa", Team: "Sales", Amount: money.FromString("88.20"), Category: "Client Dinner", Date: day(-1), TripID: lisbon.ID},
		{Subject: "Printer paper", Employee: "Jo Park", Team: "HR", Amount: money.FromString("24.99"), Category: "Office Supplies", Date: day(-10), Reported: true},
		{Subject: "Team lunch", Employee: "Sam Lee", Team: "Engineering", Amount: money.FromString("64"), Category: "Food", Date: day(-5)},
	}
	for _, dto := range expenses {
		if _, err := store.AddExpense(dto); err != nil {
			return 0, err
		}
	}
	return len(expenses) + 2, nil
}
