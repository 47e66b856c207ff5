package report_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/mmwale/expense-tracker/internal/core/money"
	"github.com/mmwale/expense-tracker/internal/expense"
	"github.com/mmwale/expense-tracker/internal/report"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

var expenses = []expense.Expense{
	{ID: "1", Subject: "Taxi", Employee: "A", Team: "HR", Category: "Travel Expenses", Date: "2024-01-01", Amount: money.FromString("10.10")},
	{ID: "2", Subject: `Dinner "VIP"`, Employee: "B", Team: "", Category: "", Date: "2024-01-01", Amount: money.FromString("5"), Description: "with, commas"},
	{ID: "3", Subject: "Hotel", Employee: "C", Team: "HR", Category: "Hotel", Date: "2024-01-02", Amount: money.FromString("n/a")},
}

var _ = Describe("grouping", func() {
	It("groups by category with a fallback label", func() {
		totals := report.GroupByCategory(expenses)
		Expect(totals).To(HaveLen(3))
		Expect(totals[report.OtherCategory].String()).To(Equal("5"))
		Expect(totals["Hotel"].IsZero()).To(BeTrue())
	})

	It("groups by team with a fallback label", func() {
		totals := report.GroupByTeam(expenses)
		Expect(totals["HR"].String()).To(Equal("10.1"))
		Expect(totals).To(HaveKey(report.UnassignedTeam))
	})

	It("groups by date", func() {
		totals := report.GroupByDate(expenses)
		Expect(totals["2024-01-01"].String()).To(Equal("15.1"))
	})

	It("orders chart points by label", func() {
		points := report.ChartData(report.GroupByCategory(expenses))
		Expect(points).To(HaveLen(3))
		Expect(points[0].Label).To(Equal("Hotel"))
		Expect(points[1].Label).To(Equal("Other"))
		Expect(points[2].Label).To(Equal("Travel Expenses"))
	})

	It("formats the total with two decimals", func() {
		Expect(report.CalculateTotal(expenses)).To(Equal("15.10"))
		Expect(report.CalculateTotal(nil)).To(Equal("0.00"))
	})
})

var _ = Describe("currency", func() {
	It("formats dollars with grouping and cents", func() {
		Expect(report.NewFormatter("en-US").Format(decimal.RequireFromString("1234.5"))).To(Equal("$1,234.50"))
		Expect(report.NewFormatter("en-US").Format(decimal.Zero)).To(Equal("$0.00"))
	})

	It("keeps every digit of large sums", func() {
		f := report.NewFormatter("en-US")
		Expect(f.Format(decimal.RequireFromString("98765432109876.54"))).To(Equal("$98,765,432,109,876.54"))
		Expect(f.Format(decimal.RequireFromString("-1234.567"))).To(Equal("-$1,234.57"))
		Expect(f.Format(decimal.RequireFromString("-0.001"))).To(Equal("$0.00"))
	})

	It("uses the locale separators", func() {
		Expect(report.NewFormatter("de-DE").Format(decimal.RequireFromString("1234.5"))).To(Equal("$1.234,50"))
	})

	It("falls back to en-US for an unknown locale", func() {
		f := report.NewFormatter("not a locale!")
		Expect(f.Format(decimal.RequireFromString("12"))).To(Equal("$12.00"))
	})
})

var _ = Describe("WriteCSV", func() {
	It("quotes every cell under a fixed header", func() {
		var buf bytes.Buffer
		Expect(report.WriteCSV(&buf, expenses[:2])).To(Succeed())

		Expect(buf.String()).To(Equal(
			`"Date","Subject","Employee","Team","Amount","Category","Description"` + "\n" +
				`"2024-01-01","Taxi","A","HR","10.10","Travel Expenses",""` + "\n" +
				`"2024-01-01","Dinner ""VIP""","B","","5","","with, commas"` + "\n"))
	})

	It("writes only the header for no expenses", func() {
		var buf bytes.Buffer
		Expect(report.WriteCSV(&buf, nil)).To(Succeed())
		Expect(buf.String()).To(HavePrefix(`"Date",`))
		Expect(bytes.Count(buf.Bytes(), []byte("\n"))).To(Equal(1))
	})
})
