package cmd

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mmwale/expense-tracker/internal/expense"
	"github.com/mmwale/expense-tracker/internal/notification"
	"github.com/mmwale/expense-tracker/internal/report"
	"github.com/mmwale/expense-tracker/internal/tracker"
	"github.com/mmwale/expense-tracker/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries and CSV exports",
	}

	reportCmd.AddCommand(newReportSummaryCmd())
	reportCmd.AddCommand(newReportExportCmd())

	return reportCmd
}

func newReportSummaryCmd() *cobra.Command {
	var (
		by     string
		f      expense.Filter
		status string
		asJSON bool
	)

	c := &cobra.Command{
		Use:   "summary",
		Short: "Total expenses grouped by category, team or date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			f.Status = expense.Status(status)
			expenses := tracker.FromContext(cmd.Context()).FilterExpenses(f)

			var totals report.Totals
			switch by {
			case "category":
				totals = report.GroupByCategory(expenses)
			case "team":
				totals = report.GroupByTeam(expenses)
			case "date":
				totals = report.GroupByDate(expenses)
			default:
				return fmt.Errorf("unknown grouping %q: use category, team or date", by)
			}

			points := report.ChartData(totals)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), points)
			}
			return printSummary(cmd.OutOrStdout(), report.NewFormatter(a.cfg.Report.Locale), points, expense.Total(expenses))
		},
	}

	c.Flags().StringVar(&by, "by", "category", "group by category, team or date")
	c.Flags().StringVar(&f.Team, "team", "", "only this team")
	c.Flags().StringVar(&f.Category, "category", "", "only this category")
	c.Flags().StringVar(&status, "status", "", "only this status")
	c.Flags().StringVar(&f.From, "from", "", "earliest date (YYYY-MM-DD)")
	c.Flags().StringVar(&f.To, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	c.Flags().BoolVar(&asJSON, "json", false, "print chart points as JSON")

	return c
}

func newReportExportCmd() *cobra.Command {
	var (
		f            expense.Filter
		out          string
		markReported bool
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Export matching expenses as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			store := tracker.FromContext(cmd.Context())

			expenses := store.FilterExpenses(f)
			if len(expenses) == 0 {
				a.toasts.AddToast(notification.ToastInput{
					Type:    notification.TypeInfo,
					Message: "No expenses found for the selected criteria.",
				})
				return nil
			}

			var buf bytes.Buffer
			if err := report.WriteCSV(&buf, expenses); err != nil {
				return err
			}
			if out == "" || out == "-" {
				if _, err := buf.WriteTo(cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
			} else {
				if err := afero.WriteFile(afero.NewOsFs(), out, buf.Bytes(), 0o644); err != nil {
					a.toasts.AddToast(notification.ToastInput{Type: notification.TypeError, Message: "Export failed."})
					return fmt.Errorf("write export: %w", err)
				}
				logger.From(cmd.Context()).Info("expenses exported", "count", len(expenses), "path", out)
			}

			if markReported {
				ids := make([]string, len(expenses))
				for i, e := range expenses {
					ids[i] = e.ID
				}
				store.MarkReported(ids...)
			}
			a.toasts.AddToast(notification.ToastInput{
				Type:    notification.TypeSuccess,
				Message: fmt.Sprintf("Exported %d expense(s).", len(expenses)),
			})
			return nil
		},
	}

	c.Flags().StringVar(&f.Team, "team", "", "only this team")
	c.Flags().StringVar(&f.Category, "category", "", "only this category")
	c.Flags().StringVar(&f.From, "from", "", "earliest date (YYYY-MM-DD)")
	c.Flags().StringVar(&f.To, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	c.Flags().BoolVar(&f.UnreportedOnly, "unreported", false, "only expenses not yet reported")
	c.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	c.Flags().BoolVar(&markReported, "mark-reported", false, "mark the exported expenses as reported")

	return c
}

func printSummary(w io.Writer, f *report.Formatter, points []report.Point, total decimal.Decimal) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t\n", p.Label, f.Format(p.Value))
	}
	fmt.Fprintf(tw, "%s\t%s\t\n", "Total", f.Format(total))
	return tw.Flush()
}
