package ic

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Identifier", func() {
	It("should parse a bracketed id", func() {
		id, ok := ParseIdentifier("[mc1000]S")

		Expect(ok).To(BeTrue())
		Expect(id.ID).To(Equal("MC1000"))
		Expect(id.Prefix).To(Equal("MC"))
		Expect(id.Suffix).To(Equal("S"))
	})

	It("should not parse plain text", func() {
		for _, line := range []string{"", "hello", "[MC]", "[1000]", "MC1000", "[MCXY1000]"} {
			_, ok := ParseIdentifier(line)
			Expect(ok).To(BeFalse(), line)
		}
	})

	It("should detect the self trigger suffix", func() {
		Expect(SelfTriggerRequested("[MC1421]S ")).To(BeTrue())
		Expect(SelfTriggerRequested("[MC1421]s")).To(BeTrue())
		Expect(SelfTriggerRequested("[MC1421]")).To(BeFalse())
	})

	DescribeTable("legacy migration",
		func(line, want string, steps int) {
			got, n, err := Canonicalize(line)

			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
			Expect(n).To(Equal(steps))
		},
		Entry("canonical ids stay", "[MC1000]", "[MC1000]", 0),
		Entry("MCA becomes A suffixed", "[MCA1000]", "[MC1000]A", 1),
		Entry("MC0420 becomes the clock", "[MC0420]", "[MC1421]S", 1),
		Entry("MC0421 becomes the monostable", "[mc0421]", "[MC1422]S", 1),
		Entry("other MC0 ids move to MC1", "[MC0111]", "[MC1111]S", 1),
		Entry("MCZ becomes MCX", "[MCZ200]", "[MCX200]S", 1),
		Entry("MCA0 chains through MC0", "[MCA0100]", "[MC1100]AS", 2),
		Entry("non ids stay", "Hello", "Hello", 0),
	)

	It("should reach a fixed point", func() {
		for _, line := range []string{"[MC0420]", "[MCA1000]", "[MCZ200]", "[MCA0100]"} {
			canonical, _, err := Canonicalize(line)
			Expect(err).NotTo(HaveOccurred())

			_, changed := Migrate(canonical)
			Expect(changed).To(BeFalse(), line)
		}
	})
})
