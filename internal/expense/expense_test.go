package expense_test

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mmwale/expense-tracker/internal/core/money"
	"github.com/mmwale/expense-tracker/internal/expense"
)

func TestExpense(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Suite")
}

var _ = Describe("Status", func() {
	DescribeTable("transitions",
		func(from, to expense.Status, allowed bool) {
			Expect(from.CanTransitionTo(to)).To(Equal(allowed))
		},
		Entry("pending to approved", expense.StatusPending, expense.StatusApproved, true),
		Entry("pending to rejected", expense.StatusPending, expense.StatusRejected, true),
		Entry("approved back to pending", expense.StatusApproved, expense.StatusPending, true),
		Entry("rejected back to pending", expense.StatusRejected, expense.StatusPending, true),
		Entry("approved to rejected", expense.StatusApproved, expense.StatusRejected, false),
		Entry("pending to pending", expense.StatusPending, expense.StatusPending, false),
		Entry("unknown to approved", expense.Status("paid"), expense.StatusApproved, false),
	)

	It("knows the closed set", func() {
		Expect(expense.StatusRejected.Valid()).To(BeTrue())
		Expect(expense.Status("").Valid()).To(BeFalse())
	})
})

var _ = Describe("NewExpense", func() {
	It("fills defaults", func() {
		e := expense.NewExpense("id1", "2024-05-20", expense.CreateExpenseDTO{Subject: "Taxi"})
		Expect(e.Date).To(Equal("2024-05-20"))
		Expect(e.Status).To(Equal(expense.StatusPending))
		Expect(e.Amount).To(Equal(money.Zero))
		Expect(e.IsPending()).To(BeTrue())
		Expect(e.IsProcessed()).To(BeFalse())
	})

	It("decodes the stored layout", func() {
		var e expense.Expense
		Expect(json.Unmarshal([]byte(`{"id":"x","subject":"Hotel","amount":"120","receiptText":"r","tripId":"t1","status":"approved","reported":true,"date":"2024-01-01"}`), &e)).To(Succeed())
		Expect(e.TripID).To(Equal("t1"))
		Expect(e.ReceiptText).To(Equal("r"))
		Expect(e.Reported).To(BeTrue())
		Expect(e.IsProcessed()).To(BeTrue())
	})
})

var _ = Describe("queries", func() {
	var expenses []expense.Expense

	BeforeEach(func() {
		expenses = []expense.Expense{
			{ID: "1", Team: "HR", Category: "Food", Date: "2024-01-01", Status: expense.StatusPending, Amount: money.FromString("10")},
			{ID: "2", Team: "Sales", Category: "Hotel", Date: "2024-01-15", Status: expense.StatusApproved, Amount: money.FromString("20.5"), Reported: true, TripID: "t1"},
			{ID: "3", Team: "HR", Category: "Hotel", Date: "2024-02-01", Status: expense.StatusRejected, Amount: money.FromString("oops")},
		}
	})

	ids := func(list []expense.Expense) []string {
		out := make([]string, len(list))
		for i, e := range list {
			out[i] = e.ID
		}
		return out
	}

	It("filters by field", func() {
		Expect(ids(expense.ByTeam(expenses, "HR"))).To(Equal([]string{"1", "3"}))
		Expect(ids(expense.ByCategory(expenses, "Hotel"))).To(Equal([]string{"2", "3"}))
		Expect(ids(expense.ByStatus(expenses, expense.StatusApproved))).To(Equal([]string{"2"}))
		Expect(ids(expense.ByTrip(expenses, "t1"))).To(Equal([]string{"2"}))
		Expect(ids(expense.Unreported(expenses))).To(Equal([]string{"1", "3"}))
	})

	It("returns an empty, non-nil list when nothing matches", func() {
		got := expense.ByTeam(expenses, "Legal")
		Expect(got).NotTo(BeNil())
		Expect(got).To(BeEmpty())
	})

	It("treats date ranges as inclusive", func() {
		Expect(ids(expense.ByDateRange(expenses, "2024-01-01", "2024-01-31"))).To(Equal([]string{"1", "2"}))
		Expect(ids(expense.ByDateRange(expenses, "2024-01-15", ""))).To(Equal([]string{"2", "3"}))
	})

	It("matches nothing when a bound does not parse", func() {
		Expect(expense.ByDateRange(expenses, "garbage", "")).To(BeEmpty())
		Expect(expense.Apply(expenses, expense.Filter{To: "garbage"})).To(BeEmpty())
	})

	It("combines criteria in Apply", func() {
		Expect(ids(expense.Apply(expenses, expense.Filter{Team: "HR", UnreportedOnly: true, From: "2024-01-10"}))).To(Equal([]string{"3"}))
		Expect(ids(expense.Apply(expenses, expense.Filter{}))).To(Equal([]string{"1", "2", "3"}))
	})

	It("totals with malformed amounts as zero", func() {
		Expect(expense.Total(expenses).String()).To(Equal("30.5"))
	})
})
