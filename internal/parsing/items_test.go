package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractItems", func() {
	var (
		lines []string
		items []Item
	)

	JustBeforeEach(func() {
		items = ExtractItems(lines)
	})

	When("a line holds a name and a yen price", func() {
		BeforeEach(func() {
			lines = []string{"おにぎり 150円"}
		})

		It("extracts one item", func() {
			Expect(items).To(HaveLen(1))
		})

		It("splits name and price", func() {
			Expect(items[0]).To(Equal(Item{Name: "おにぎり", Price: 150}))
		})
	})

	When("the price has no yen marker", func() {
		BeforeEach(func() {
			lines = []string{"コーヒー 300"}
		})

		It("still reads the price", func() {
			Expect(items).To(Equal([]Item{{Name: "コーヒー", Price: 300}}))
		})
	})

	When("the price has a decimal part", func() {
		BeforeEach(func() {
			lines = []string{"りんご 62.5円"}
		})

		It("keeps the fraction", func() {
			Expect(items).To(Equal([]Item{{Name: "りんご", Price: 62.5}}))
		})
	})

	When("several tokens look like prices", func() {
		BeforeEach(func() {
			lines = []string{"ビール 2 500円"}
		})

		It("takes the rightmost as the price", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Price).To(Equal(500.0))
		})

		It("keeps the rest as the name", func() {
			Expect(items[0].Name).To(Equal("ビール 2"))
		})
	})

	When("the price sits mid-line", func() {
		BeforeEach(func() {
			lines = []string{"150円 おにぎり"}
		})

		It("still pairs it with the remaining tokens", func() {
			Expect(items).To(Equal([]Item{{Name: "おにぎり", Price: 150}}))
		})
	})

	When("a line holds only a price", func() {
		BeforeEach(func() {
			lines = []string{"980円"}
		})

		It("uses the placeholder name", func() {
			Expect(items).To(Equal([]Item{{Name: PlaceholderName, Price: 980}}))
		})
	})

	When("a line carries no price", func() {
		BeforeEach(func() {
			lines = []string{"セブンイレブン", "ありがとうございました"}
		})

		It("skips it", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("the rightmost price token is zero", func() {
		BeforeEach(func() {
			lines = []string{"サービス品 0円"}
		})

		It("rejects the line", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("lines are receipt plumbing", func() {
		BeforeEach(func() {
			lines = []string{
				"小計 900円",
				"合計 972円",
				"消費税 72円",
				"お預り 1000円",
				"お釣り 28円",
				"ポイント 9",
				"レジ002",
				"TOTAL 972",
				"Tax 72",
			}
		})

		It("drops them all", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("a purchase line sits among noise", func() {
		BeforeEach(func() {
			lines = []string{"合計 650円", "弁当 498円", "お釣り 2円"}
		})

		It("keeps only the purchase", func() {
			Expect(items).To(Equal([]Item{{Name: "弁当", Price: 498}}))
		})
	})

	When("there are no lines", func() {
		BeforeEach(func() {
			lines = nil
		})

		It("returns nothing", func() {
			Expect(items).To(BeEmpty())
		})
	})
})
