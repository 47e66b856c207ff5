package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mmwale/expense-tracker/internal/core/common/validation"
	"github.com/mmwale/expense-tracker/internal/core/money"
	"github.com/mmwale/expense-tracker/internal/expense"
	"github.com/mmwale/expense-tracker/internal/notification"
	"github.com/mmwale/expense-tracker/internal/report"
	"github.com/mmwale/expense-tracker/internal/tracker"
	"github.com/mmwale/expense-tracker/internal/trip"
	"github.com/spf13/cobra"
)

func newTripCmd() *cobra.Command {
	tripCmd := &cobra.Command{
		Use:   "trip",
		Short: "Plan and track business trips",
	}

	tripCmd.AddCommand(newTripAddCmd())
	tripCmd.AddCommand(newTripListCmd())
	tripCmd.AddCommand(newTripUpcomingCmd())
	tripCmd.AddCommand(newTripSetStatusCmd())
	tripCmd.AddCommand(newTripDeleteCmd())
	tripCmd.AddCommand(newTripExpensesCmd())

	return tripCmd
}

func newTripAddCmd() *cobra.Command {
	var (
		in                             validation.TripInput
		transport, accommodation, note string
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Plan a new trip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())

			if appErr := validation.ValidateTripInput(in); appErr != nil {
				a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: appErr.GetDetailedMessage()})
				return appErr
			}

			created, err := store.AddTrip(trip.CreateTripDTO{
				Destination:   in.Destination,
				Purpose:       in.Purpose,
				Traveler:      in.Traveler,
				Team:          in.Team,
				StartDate:     in.StartDate,
				EndDate:       in.EndDate,
				TransportMode: transport,
				Accommodation: accommodation,
				Notes:         note,
				Budget:        money.FromString(in.Budget),
			})
			if err != nil {
				return err
			}
			a.toasts.AddToast(notification.ToastInput{Type: notification.TypeSuccess, Message: "Trip added."})
			return printJSON(cmd.OutOrStdout(), created)
		},
	}

	c.Flags().StringVar(&in.Destination, "destination", "", "where the trip goes")
	c.Flags().StringVar(&in.Purpose, "purpose", "", "why the trip is taken")
	c.Flags().StringVar(&in.Traveler, "traveler", "", "who travels")
	c.Flags().StringVar(&in.Team, "team", "", "team paying for the trip")
	c.Flags().StringVar(&in.StartDate, "start", "", "start date (YYYY-MM-DD)")
	c.Flags().StringVar(&in.EndDate, "end", "", "end date (YYYY-MM-DD)")
	c.Flags().StringVar(&in.Budget, "budget", "", "planned budget")
	c.Flags().StringVar(&transport, "transport", "", "transport mode")
	c.Flags().StringVar(&accommodation, "accommodation", "", "where the traveler stays")
	c.Flags().StringVar(&note, "notes", "", "free-text notes")

	return c
}

func newTripListCmd() *cobra.Command {
	var (
		f      trip.Filter
		status string
		asJSON bool
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "List trips, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := tracker.FromContext(cmd.Context())
			f.Status = trip.Status(status)

			trips := store.FilterTrips(f)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), trips)
			}
			return printTrips(cmd.OutOrStdout(), trips)
		},
	}

	c.Flags().StringVar(&status, "status", "", "only this status")
	c.Flags().StringVar(&f.DateFrom, "from", "", "trips starting on or after this date")
	c.Flags().StringVar(&f.DateTo, "to", "", "trips ending on or before this date")
	c.Flags().StringVar(&f.Search, "search", "", "match destination, purpose or traveler")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return c
}

func newTripUpcomingCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "upcoming",
		Short: "List trips starting today or later",
		RunE: func(cmd *cobra.Command, _ []string) error {
			trips := tracker.FromContext(cmd.Context()).UpcomingTrips()
			if limit > 0 && len(trips) > limit {
				trips = trips[:limit]
			}
			return printTrips(cmd.OutOrStdout(), trips)
		},
	}

	c.Flags().IntVar(&limit, "limit", 0, "show at most this many trips")
	return c
}

func newTripSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change a trip's status (planned, ongoing, completed, cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())

			t, ok := store.Trip(args[0])
			if !ok {
				a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: "Trip not found."})
				return trip.ErrTripNotFound
			}
			t.Status = trip.Status(args[1])
			if err := store.UpdateTrip(t); err != nil {
				return err
			}
			a.toasts.AddToast(notification.ToastInput{Type: notification.TypeSuccess, Message: "Trip updated."})
			return nil
		},
	}
}

func newTripDeleteCmd() *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete trip "+args[0]+"?") {
				a.toasts.AddToast(notification.ToastInput{Message: "Delete cancelled."})
				return nil
			}
			tracker.FromContext(cmd.Context()).DeleteTrip(args[0])
			a.toasts.AddToast(notification.ToastInput{Type: notification.TypeSuccess, Message: "Trip deleted."})
			return nil
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return c
}

func newTripExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expenses ID",
		Short: "List the expenses recorded against a trip and their total",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			expenses := tracker.FromContext(cmd.Context()).ExpensesByTrip(args[0])
			if err := printExpenses(cmd.OutOrStdout(), expenses); err != nil {
				return err
			}
			total := report.NewFormatter(a.cfg.Report.Locale)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %s\n", total.Format(expense.Total(expenses)))
			return err
		},
	}
}

func printTrips(w io.Writer, trips []trip.Trip) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDESTINATION\tTRAVELER\tTEAM\tSTART\tEND\tSTATUS\tBUDGET")
	for _, t := range trips {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Destination, t.Traveler, t.Team, t.StartDate, t.EndDate, t.Status, t.Budget)
	}
	return tw.Flush()
}
