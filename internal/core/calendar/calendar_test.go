package calendar_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mmwale/expense-tracker/internal/core/calendar"
)

func TestCalendar(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Calendar Suite")
}

var _ = Describe("calendar", func() {
	It("formats today from the clock in local time", func() {
		clock := func() time.Time { return time.Date(2024, 3, 9, 23, 0, 0, 0, time.Local) }
		Expect(calendar.Today(clock)).To(Equal("2024-03-09"))
	})

	It("parses ISO dates as local midnight", func() {
		t, err := calendar.Parse("2024-01-15")
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)))
	})

	It("accepts RFC3339 timestamps", func() {
		t, err := calendar.Parse("2024-01-15T10:20:30Z")
		Expect(err).NotTo(HaveOccurred())
		Expect(t.UTC().Hour()).To(Equal(10))
	})

	It("parses plain days strictly", func() {
		t, err := calendar.ParseDay("2024-01-15")
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)))

		_, err = calendar.ParseDay("2024-01-15 09:30")
		Expect(err).To(HaveOccurred())
	})

	It("keeps the time of day of a local timestamp", func() {
		t, err := calendar.Parse("2024-01-15 09:30")
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local)))
	})

	DescribeTable("rejects values without a full calendar date",
		func(value string) {
			_, err := calendar.Parse(value)
			Expect(err).To(HaveOccurred())
		},
		Entry("garbage", "next tuesday"),
		Entry("time of day", "10:30"),
		Entry("bare hour", "12"),
		Entry("year only", "2024"),
		Entry("year and month", "2024-01"),
		Entry("empty", ""),
	)

	It("finds day boundaries", func() {
		t := time.Date(2024, 1, 15, 13, 45, 0, 0, time.Local)
		Expect(calendar.StartOfDay(t)).To(Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)))
		end := calendar.EndOfDay(t)
		Expect(end.Day()).To(Equal(15))
		Expect(end.Hour()).To(Equal(23))
		Expect(end.Add(time.Nanosecond).Day()).To(Equal(16))
	})

	Describe("Range", func() {
		It("includes the whole end day", func() {
			r, err := calendar.NewRange("2024-01-01", "2024-01-31")
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Contains("2024-01-01")).To(BeTrue())
			Expect(r.Contains("2024-01-31")).To(BeTrue())
			Expect(r.Contains("2024-02-01")).To(BeFalse())
			Expect(r.Contains("2023-12-31")).To(BeFalse())
		})

		It("leaves empty bounds open", func() {
			r, err := calendar.NewRange("", "2024-01-31")
			Expect(err).NotTo(HaveOccurred())
			Expect(r.From).To(BeNil())
			Expect(r.Contains("1999-01-01")).To(BeTrue())

			open, err := calendar.NewRange("", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(open.Unbounded()).To(BeTrue())
			Expect(open.Contains("not a date")).To(BeTrue())
		})

		It("excludes unparseable dates from a bounded window", func() {
			r, _ := calendar.NewRange("2024-01-01", "")
			Expect(r.Contains("soon")).To(BeFalse())
		})

		It("keeps time-only values out of today's window", func() {
			today := time.Now().Format(calendar.ISODate)
			r, err := calendar.NewRange(today, today)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Contains(today)).To(BeTrue())
			Expect(r.Contains("12")).To(BeFalse())
			Expect(r.Contains("10:30")).To(BeFalse())
		})

		It("rejects an unparseable bound", func() {
			_, err := calendar.NewRange("yesterday-ish", "")
			Expect(err).To(HaveOccurred())
		})
	})
})
