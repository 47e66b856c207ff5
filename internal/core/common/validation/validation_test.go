package validation_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mmwale/expense-tracker/internal"
	"github.com/mmwale/expense-tracker/internal/core/common/validation"
	"github.com/mmwale/expense-tracker/internal/core/money"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func fieldCodes(appErr *internal.AppError) map[string]string {
	codes := map[string]string{}
	details, ok := appErr.Details.(internal.ValidationErrors)
	Expect(ok).To(BeTrue())
	for _, e := range details.Errors {
		codes[e.Field] = e.Code
	}
	return codes
}

var _ = Describe("ValidationBuilder", func() {
	It("passes when every check passes", func() {
		v := validation.NewValidator()
		v.Field("subject", "Taxi").Required()
		v.Field("amount", money.FromString("4.20")).Required().Amount()
		Expect(v.Validate()).To(BeNil())
	})

	It("collects every failure", func() {
		v := validation.NewValidator()
		v.Field("subject", "").Required()
		v.Field("amount", "-3").Amount()
		v.Field("date", "31/31/2024").Date()

		appErr := v.Validate()
		Expect(appErr).NotTo(BeNil())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		Expect(fieldCodes(appErr)).To(Equal(map[string]string{
			"subject": string(internal.ErrCodeRequiredField),
			"amount":  string(internal.ErrCodeInvalidAmount),
			"date":    string(internal.ErrCodeInvalidDate),
		}))
		Expect(appErr.GetDetailedMessage()).To(ContainSubstring("subject is required"))
	})

	DescribeTable("rejects dates that are not YYYY-MM-DD",
		func(value string) {
			v := validation.NewValidator()
			v.Field("date", value).Date()
			Expect(fieldCodes(v.Validate())).To(HaveKeyWithValue("date", string(internal.ErrCodeInvalidDate)))
		},
		Entry("time of day", "10:30"),
		Entry("bare hour", "12"),
		Entry("year and month", "2024-01"),
		Entry("timestamp", "2024-01-15T10:00:00Z"),
	)

	It("accepts a plain calendar date", func() {
		v := validation.NewValidator()
		v.Field("date", "2024-02-29").Date()
		Expect(v.Validate()).To(BeNil())
	})

	It("treats a nil value and an empty amount as missing", func() {
		v := validation.NewValidator()
		v.Field("a", nil).Required()
		v.Field("b", money.Amount{}).Required()
		Expect(fieldCodes(v.Validate())).To(HaveLen(2))
	})

	It("supports custom checks", func() {
		v := validation.NewValidator()
		v.Field("team", "QA").Custom(func(any) *internal.AppError {
			return internal.NewValidationError("no QA", internal.ErrCodeUnknownReference)
		})
		Expect(fieldCodes(v.Validate())).To(HaveKeyWithValue("team", string(internal.ErrCodeUnknownReference)))
	})
})

var _ = Describe("ValidateExpenseInput", func() {
	valid := validation.ExpenseInput{Subject: "Taxi", Employee: "A", Team: "Engineering", Amount: "42.50"}

	It("accepts the minimal form", func() {
		Expect(validation.ValidateExpenseInput(valid, []string{"Food"})).To(BeNil())
	})

	It("allows an empty amount and date", func() {
		in := valid
		in.Amount = ""
		Expect(validation.ValidateExpenseInput(in, nil)).To(BeNil())
	})

	It("rejects a category outside the list", func() {
		in := valid
		in.Category = "Yachts"
		Expect(fieldCodes(validation.ValidateExpenseInput(in, []string{"Food"}))).To(HaveKey("category"))
	})

	It("requires subject, employee and team", func() {
		Expect(fieldCodes(validation.ValidateExpenseInput(validation.ExpenseInput{}, nil))).To(HaveLen(3))
	})
})

var _ = Describe("ValidateTripInput", func() {
	valid := validation.TripInput{
		Destination: "NYC",
		Purpose:     "Conf",
		Traveler:    "B",
		Team:        "Sales",
		StartDate:   "2024-06-01",
		EndDate:     "2024-06-05",
	}

	It("accepts a complete trip", func() {
		Expect(validation.ValidateTripInput(valid)).To(BeNil())
	})

	It("rejects an end before the start", func() {
		in := valid
		in.EndDate = "2024-05-30"
		Expect(fieldCodes(validation.ValidateTripInput(in))).To(HaveKeyWithValue("end_date", string(internal.ErrCodeInvalidDateRange)))
	})

	It("accepts a single-day trip", func() {
		in := valid
		in.EndDate = in.StartDate
		Expect(validation.ValidateTripInput(in)).To(BeNil())
	})

	It("checks the budget", func() {
		in := valid
		in.Budget = "lots"
		Expect(fieldCodes(validation.ValidateTripInput(in))).To(HaveKey("budget"))
	})
})
