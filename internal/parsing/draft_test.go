package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LineItem", func() {
	var item LineItem

	BeforeEach(func() {
		item = LineItem{
			ID:             "item-1",
			Name:           "おにぎり",
			Category:       CategoryFood,
			PriceBeforeTax: 150,
			PriceAfterTax:  162,
		}
	})

	Describe("Rename", func() {
		When("the category was derived", func() {
			BeforeEach(func() {
				item.Rename("コーヒー")
			})

			It("replaces the name", func() {
				Expect(item.Name).To(Equal("コーヒー"))
			})

			It("re-derives the category", func() {
				Expect(item.Category).To(Equal(CategoryBeverage))
			})
		})

		When("the category was set by hand", func() {
			BeforeEach(func() {
				Expect(item.SetCategory(CategoryOther)).To(Succeed())
				item.Rename("コーヒー")
			})

			It("keeps the pinned category", func() {
				Expect(item.Category).To(Equal(CategoryOther))
			})
		})

		When("the new name is blank", func() {
			BeforeEach(func() {
				item.Rename("   ")
			})

			It("falls back to the placeholder", func() {
				Expect(item.Name).To(Equal(PlaceholderName))
			})
		})
	})

	Describe("Reprice", func() {
		var err error

		When("the price is positive", func() {
			BeforeEach(func() {
				err = item.Reprice(300)
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("recomputes the after-tax price", func() {
				Expect(item.PriceBeforeTax).To(Equal(300.0))
				Expect(item.PriceAfterTax).To(Equal(324))
			})
		})

		When("the price is zero", func() {
			BeforeEach(func() {
				err = item.Reprice(0)
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(ErrInvalidPrice))
			})

			It("leaves the item untouched", func() {
				Expect(item.PriceBeforeTax).To(Equal(150.0))
				Expect(item.PriceAfterTax).To(Equal(162))
			})
		})

		When("the price is negative", func() {
			BeforeEach(func() {
				err = item.Reprice(-10)
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(ErrInvalidPrice))
			})
		})
	})

	Describe("SetCategory", func() {
		var err error

		When("the category is known", func() {
			BeforeEach(func() {
				err = item.SetCategory(CategoryTobacco)
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("pins the category", func() {
				Expect(item.Category).To(Equal(CategoryTobacco))
				Expect(item.CategoryOverridden).To(BeTrue())
			})
		})

		When("the category is unknown", func() {
			BeforeEach(func() {
				err = item.SetCategory(Category("snacks"))
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(ErrUnknownCategory))
			})

			It("leaves the item untouched", func() {
				Expect(item.Category).To(Equal(CategoryFood))
				Expect(item.CategoryOverridden).To(BeFalse())
			})
		})
	})

	Describe("Savable", func() {
		When("the item is complete", func() {
			It("should not return an error", func() {
				Expect(item.Savable()).To(Succeed())
			})
		})

		When("the name is blank", func() {
			BeforeEach(func() {
				item.Name = "  "
			})

			It("returns the error", func() {
				Expect(item.Savable()).To(HaveOccurred())
			})
		})

		When("the price is not positive", func() {
			BeforeEach(func() {
				item.PriceBeforeTax = 0
			})

			It("returns the error", func() {
				Expect(item.Savable()).To(MatchError(ErrInvalidPrice))
			})
		})

		When("the category is unknown", func() {
			BeforeEach(func() {
				item.Category = "snacks"
			})

			It("returns the error", func() {
				Expect(item.Savable()).To(MatchError(ErrUnknownCategory))
			})
		})
	})
})
