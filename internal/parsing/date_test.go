package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractDate", func() {
	var (
		lines []string
		date  string
		ok    bool
	)

	JustBeforeEach(func() {
		date, ok = ExtractDate(lines)
	})

	When("a line holds a kanji date", func() {
		BeforeEach(func() {
			lines = []string{"セブンイレブン", "2024年03月15日", "おにぎり 150円"}
		})

		It("finds it", func() {
			Expect(ok).To(BeTrue())
		})

		It("normalizes it to ISO form", func() {
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("a kanji date omits the trailing day marker", func() {
		BeforeEach(func() {
			lines = []string{"2024年3月5"}
		})

		It("still parses and zero-pads", func() {
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-05"))
		})
	})

	When("a line holds a slash date", func() {
		BeforeEach(func() {
			lines = []string{"2024/03/15"}
		})

		It("parses it", func() {
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("a line holds a hyphen date", func() {
		BeforeEach(func() {
			lines = []string{"2024-3-5"}
		})

		It("parses and zero-pads it", func() {
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-05"))
		})
	})

	When("a line holds a dotted date", func() {
		BeforeEach(func() {
			lines = []string{"2024.03.15"}
		})

		It("parses it", func() {
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("a line holds a month-first date", func() {
		BeforeEach(func() {
			lines = []string{"03/15/2024"}
		})

		It("parses it as month, day, year", func() {
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("a line holds a two-digit year", func() {
		BeforeEach(func() {
			lines = []string{"3/15/24"}
		})

		It("maps the year into the 2000s", func() {
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("several lines hold year-first dates", func() {
		BeforeEach(func() {
			lines = []string{"2024/03/15", "2024/03/16"}
		})

		It("keeps the first", func() {
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("a year-first date appears after a month-first date", func() {
		BeforeEach(func() {
			lines = []string{"03/16/2024", "2024年03月15日"}
		})

		It("prefers the year-first form", func() {
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("the only date is impossible on the calendar", func() {
		BeforeEach(func() {
			lines = []string{"2024年02月30日"}
		})

		It("reports no date", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("an impossible date precedes a real one", func() {
		BeforeEach(func() {
			lines = []string{"2024年13月01日", "2024年03月15日"}
		})

		It("skips to the real one", func() {
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-15"))
		})
	})

	When("no line holds a date", func() {
		BeforeEach(func() {
			lines = []string{"おにぎり 150円", "合計 150円"}
		})

		It("reports no date", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("there are no lines", func() {
		BeforeEach(func() {
			lines = nil
		})

		It("reports no date", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("the date is embedded in a longer line", func() {
		BeforeEach(func() {
			lines = []string{"レシート 2024年03月15日 14:32"}
		})

		It("still finds it", func() {
			Expect(ok).To(BeTrue())
			Expect(date).To(Equal("2024-03-15"))
		})
	})
})
