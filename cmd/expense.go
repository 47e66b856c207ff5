package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mmwale/expense-tracker/internal"
	"github.com/mmwale/expense-tracker/internal/core/common/validation"
	"github.com/mmwale/expense-tracker/internal/core/money"
	"github.com/mmwale/expense-tracker/internal/expense"
	"github.com/mmwale/expense-tracker/internal/notification"
	"github.com/mmwale/expense-tracker/internal/report"
	"github.com/mmwale/expense-tracker/internal/tracker"
	"github.com/spf13/cobra"
)

func newExpenseCmd() *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Record, review and approve expenses",
	}

	expenseCmd.AddCommand(newExpenseAddCmd())
	expenseCmd.AddCommand(newExpenseEditCmd())
	expenseCmd.AddCommand(newExpenseListCmd())
	expenseCmd.AddCommand(newExpenseDecisionCmd("approve", expense.StatusApproved))
	expenseCmd.AddCommand(newExpenseDecisionCmd("reject", expense.StatusRejected))
	expenseCmd.AddCommand(newExpenseDecisionCmd("undo", expense.StatusPending))
	expenseCmd.AddCommand(newExpenseDeleteCmd())
	expenseCmd.AddCommand(newExpenseReceiptCmd())
	expenseCmd.AddCommand(newExpenseMarkReportedCmd())
	expenseCmd.AddCommand(newExpenseTotalCmd())

	return expenseCmd
}

func newExpenseAddCmd() *cobra.Command {
	var (
		in          validation.ExpenseInput
		description string
		receipt     string
		tripID      string
		reported    bool
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())

			if appErr := validation.ValidateExpenseInput(in, store.Categories()); appErr != nil {
				a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: appErr.GetDetailedMessage()})
				return appErr
			}

			created, err := store.AddExpense(expense.CreateExpenseDTO{
				Subject:     in.Subject,
				Employee:    in.Employee,
				Team:        in.Team,
				Amount:      money.FromString(in.Amount),
				Category:    in.Category,
				Description: description,
				ReceiptText: receipt,
				Date:        in.Date,
				Reported:    reported,
				TripID:      tripID,
			})
			if err != nil {
				return err
			}

			a.toasts.AddToast(notification.ToastInput{Type: notification.TypeSuccess, Message: "Expense added."})
			return printJSON(cmd.OutOrStdout(), created)
		},
	}

	c.Flags().StringVar(&in.Subject, "subject", "", "what the expense was for")
	c.Flags().StringVar(&in.Employee, "employee", "", "who spent the money")
	c.Flags().StringVar(&in.Team, "team", "", "team charged")
	c.Flags().StringVar(&in.Amount, "amount", "", "amount, e.g. 42.50 (defaults to 0)")
	c.Flags().StringVar(&in.Category, "category", "", "expense category")
	c.Flags().StringVar(&in.Date, "date", "", "date as YYYY-MM-DD (defaults to today)")
	c.Flags().StringVar(&description, "description", "", "free-text description")
	c.Flags().StringVar(&receipt, "receipt", "", "receipt text")
	c.Flags().StringVar(&tripID, "trip", "", "id of the trip this expense belongs to")
	c.Flags().BoolVar(&reported, "reported", false, "expense is already part of a filed report")

	return c
}

func newExpenseEditCmd() *cobra.Command {
	var (
		subject, employee, team, amount string
		categoryName, description, date string
		tripID, status                  string
	)

	c := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an existing expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())

			current, ok := store.Expense(args[0])
			if !ok {
				a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: "Expense not found."})
				return expense.ErrExpenseNotFound
			}

			flags := cmd.Flags()
			set := func(name string, dst *string, value string) {
				if flags.Changed(name) {
					*dst = value
				}
			}
			set("subject", &current.Subject, subject)
			set("employee", &current.Employee, employee)
			set("team", &current.Team, team)
			set("category", &current.Category, categoryName)
			set("description", &current.Description, description)
			set("date", &current.Date, date)
			set("trip", &current.TripID, tripID)
			if flags.Changed("amount") {
				current.Amount = money.FromString(amount)
			}
			if flags.Changed("status") {
				current.Status = expense.Status(status)
			}

			v := validation.NewValidator()
			v.Field("amount", current.Amount).Amount()
			v.Field("date", current.Date).Date()
			if appErr := v.Validate(); appErr != nil {
				return appErr
			}

			if err := store.UpdateExpense(current); err != nil {
				return err
			}
			a.toasts.AddToast(notification.ToastInput{Type: notification.TypeSuccess, Message: "Expense updated."})
			return printJSON(cmd.OutOrStdout(), current)
		},
	}

	c.Flags().StringVar(&subject, "subject", "", "new subject")
	c.Flags().StringVar(&employee, "employee", "", "new employee")
	c.Flags().StringVar(&team, "team", "", "new team")
	c.Flags().StringVar(&amount, "amount", "", "new amount")
	c.Flags().StringVar(&categoryName, "category", "", "new category")
	c.Flags().StringVar(&description, "description", "", "new description")
	c.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	c.Flags().StringVar(&tripID, "trip", "", "new trip id")
	c.Flags().StringVar(&status, "status", "", "new status: pending, approved or rejected")

	return c
}

func newExpenseListCmd() *cobra.Command {
	var (
		f      expense.Filter
		status string
		asJSON bool
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "List expenses, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := tracker.FromContext(cmd.Context())
			f.Status = expense.Status(status)

			expenses := store.FilterExpenses(f)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), expenses)
			}
			return printExpenses(cmd.OutOrStdout(), expenses)
		},
	}

	c.Flags().StringVar(&f.Team, "team", "", "only this team")
	c.Flags().StringVar(&f.Category, "category", "", "only this category")
	c.Flags().StringVar(&status, "status", "", "only this status")
	c.Flags().StringVar(&f.TripID, "trip", "", "only expenses of this trip")
	c.Flags().StringVar(&f.From, "from", "", "earliest date (YYYY-MM-DD)")
	c.Flags().StringVar(&f.To, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	c.Flags().BoolVar(&f.UnreportedOnly, "unreported", false, "only expenses not yet reported")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return c
}

// newExpenseDecisionCmd builds approve, reject and undo. By default the move
// must follow the approval workflow; --force sets the status regardless.
func newExpenseDecisionCmd(use string, to expense.Status) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   use + " ID",
		Short: fmt.Sprintf("Set an expense to %s", to),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())
			id := args[0]

			if force && to != expense.StatusPending {
				if _, ok := store.Expense(id); !ok {
					a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: "Expense not found."})
					return expense.ErrExpenseNotFound
				}
				if to == expense.StatusApproved {
					store.ApproveExpense(id)
				} else {
					store.RejectExpense(id)
				}
				return nil
			}

			if _, err := store.TransitionStatus(id, to); err != nil {
				msg := err.Error()
				if appErr, ok := internal.IsAppError(err); ok {
					msg = appErr.GetDetailedMessage()
				}
				a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: msg})
				return err
			}
			return nil
		},
	}

	if to != expense.StatusPending {
		c.Flags().BoolVar(&force, "force", false, "skip the workflow check")
	}
	return c
}

func newExpenseDeleteCmd() *cobra.Command {
	var yes bool

	c := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete expense "+args[0]+"?") {
				a.toasts.AddToast(notification.ToastInput{Message: "Delete cancelled."})
				return nil
			}
			store.DeleteExpense(args[0])
			a.toasts.AddToast(notification.ToastInput{Type: notification.TypeSuccess, Message: "Expense deleted."})
			return nil
		},
	}

	c.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return c
}

func newExpenseReceiptCmd() *cobra.Command {
	var (
		expenseID    string
		text         string
		amount       string
		categoryName string
	)

	c := &cobra.Command{
		Use:   "receipt",
		Short: "Attach a receipt to an expense, or record it as a new one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())

			if strings.TrimSpace(text) == "" && amount == "" {
				a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: "Please enter receipt details or amount."})
				return nil
			}
			if amount != "" && !money.FromString(amount).Valid() {
				// an unusable amount is dropped, the text is still saved
				amount = ""
			}

			if expenseID != "" {
				updated, err := store.AttachReceipt(expenseID, tracker.ReceiptInput{
					Text:     strings.TrimSpace(text),
					Amount:   amount,
					Category: categoryName,
				})
				if err != nil {
					a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: "Expense not found."})
					return err
				}
				a.toasts.AddToast(notification.ToastInput{Type: notification.TypeSuccess, Message: "Receipt saved to selected expense."})
				return printJSON(cmd.OutOrStdout(), updated)
			}

			created, err := store.AddExpense(expense.CreateExpenseDTO{
				Subject:     "Receipt",
				Amount:      money.FromString(amount),
				Category:    categoryName,
				Description: text,
				ReceiptText: text,
			})
			if err != nil {
				return err
			}
			a.toasts.AddToast(notification.ToastInput{Type: notification.TypeSuccess, Message: "Receipt added as a new expense."})
			return printJSON(cmd.OutOrStdout(), created)
		},
	}

	c.Flags().StringVar(&expenseID, "expense", "", "attach to this expense instead of creating one")
	c.Flags().StringVar(&text, "text", "", "receipt text")
	c.Flags().StringVar(&amount, "amount", "", "receipt amount")
	c.Flags().StringVar(&categoryName, "category", "", "category to record")
	return c
}

func newExpenseMarkReportedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-reported ID...",
		Short: "Mark expenses as part of a filed report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := tracker.FromContext(cmd.Context())
			n := store.MarkReported(args...)
			fmt.Fprintf(cmd.OutOrStdout(), "%d expense(s) marked as reported\n", n)
			return nil
		},
	}
}

func newExpenseTotalCmd() *cobra.Command {
	var plain bool

	c := &cobra.Command{
		Use:   "total",
		Short: "Print the total of all expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), report.CalculateTotal(store.Expenses()))
				return nil
			}
			f := report.NewFormatter(a.cfg.Report.Locale)
			fmt.Fprintln(cmd.OutOrStdout(), f.Format(store.TotalExpenses()))
			return nil
		},
	}

	c.Flags().BoolVar(&plain, "plain", false, "print the bare amount with two decimals")
	return c
}

func printExpenses(w io.Writer, expenses []expense.Expense) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSUBJECT\tEMPLOYEE\tTEAM\tAMOUNT\tCATEGORY\tSTATUS\tREPORTED")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			e.ID, e.Date, e.Subject, e.Employee, e.Team, e.Amount, e.Category, e.Status, e.Reported)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
