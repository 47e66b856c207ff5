package category_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mmwale/expense-tracker/internal/category"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

var _ = Describe("List", func() {
	It("starts from its seed without sharing it", func() {
		seed := []string{"Engineering", "HR"}
		l := category.NewList(seed...)
		seed[0] = "changed"
		Expect(l.All()).To(Equal([]string{"Engineering", "HR"}))
	})

	It("appends in order and keeps duplicates", func() {
		l := category.NewList("Food")
		l.Add("Fuel")
		l.Add("Food")
		Expect(l.All()).To(Equal([]string{"Food", "Fuel", "Food"}))
		Expect(l.Len()).To(Equal(3))
		Expect(l.Contains("Fuel")).To(BeTrue())
		Expect(l.Contains("Hotel")).To(BeFalse())
	})

	It("hands out copies", func() {
		l := category.NewList("Food")
		all := l.All()
		all[0] = "Fuel"
		Expect(l.All()).To(Equal([]string{"Food"}))
	})

	It("ships the default teams", func() {
		Expect(category.DefaultTeams).To(Equal([]string{"Engineering", "Marketing", "Sales", "HR"}))
		Expect(category.DefaultCategories).To(ContainElements("Client Dinner", "Hotel"))
	})
})
