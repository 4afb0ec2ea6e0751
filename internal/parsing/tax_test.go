package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ApplyTax", func() {
	It("adds eight percent", func() {
		Expect(ApplyTax(100)).To(Equal(108))
		Expect(ApplyTax(150)).To(Equal(162))
		Expect(ApplyTax(300)).To(Equal(324))
	})

	It("rounds half up", func() {
		// 62.5 * 1.08 = 67.5
		Expect(ApplyTax(62.5)).To(Equal(68))
	})

	It("rounds fractions below half down", func() {
		// 130 * 1.08 = 140.4
		Expect(ApplyTax(130)).To(Equal(140))
	})

	It("rounds fractions above half up", func() {
		// 135 * 1.08 = 145.8
		Expect(ApplyTax(135)).To(Equal(146))
	})

	It("keeps exact products exact at larger amounts", func() {
		// 1225 * 1.08 = 1323
		Expect(ApplyTax(1225)).To(Equal(1323))
	})

	It("returns zero for zero", func() {
		Expect(ApplyTax(0)).To(Equal(0))
	})
})
