package ic

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var (
		r *Registry
		f *testFactory
	)

	BeforeEach(func() {
		r = NewRegistry()
		f = &testFactory{}
	})

	It("should resolve a registered id", func() {
		Expect(r.Register("mc1000", f, FamilySISO)).To(Succeed())

		reg, ok := r.Get("MC1000")

		Expect(ok).To(BeTrue())
		Expect(reg.ID).To(Equal("MC1000"))
		Expect(reg.Factory).To(BeIdenticalTo(f))
		Expect(r.HasPrefix("mc")).To(BeTrue())
		Expect(r.HasPrefix("MCX")).To(BeFalse())
		Expect(r.IDs()).To(Equal([]string{"MC1000"}))
	})

	It("should refuse duplicated ids", func() {
		Expect(r.Register("MC1000", f, FamilySISO)).To(Succeed())

		err := r.Register("MC1000", &testFactory{}, FamilySISO)

		Expect(err).To(MatchError(ErrDuplicateRegistration))
	})

	It("should refuse registrations without families", func() {
		Expect(r.Register("MC1000", f)).NotTo(Succeed())
	})

	It("should refuse duplicated family suffixes", func() {
		other := NewFamily("Other", "", []PinLayout{PinFront}, nil)

		err := r.Register("MC1000", f, FamilySISO, other)

		Expect(err).To(MatchError(ErrDuplicateRegistration))
	})

	It("should refuse malformed ids", func() {
		Expect(r.Register("1000", f, FamilySISO)).NotTo(Succeed())
		Expect(r.Register("MCXY1", f, FamilySISO)).NotTo(Succeed())
	})

	It("should expose the permission traits of a registration", func() {
		r.MustRegister("MC2000", &testFactory{restricted: true, namespace: "lab"},
			FamilySISO)

		reg, ok := r.Get("MC2000")

		Expect(ok).To(BeTrue())
		Expect(reg.IsRestricted()).To(BeTrue())
		Expect(reg.Namespace()).To(Equal("lab"))
	})

	Context("when picking a family", func() {
		var reg *Registration

		BeforeEach(func() {
			r.MustRegister("MC1000", f, FamilySISO, FamilyAISO, Family3ISO)
			reg, _ = r.Get("MC1000")
		})

		It("should use the first family without a suffix", func() {
			Expect(r.FamilyFor(reg, "")).To(Equal(FamilySISO))
		})

		It("should match suffixes ignoring case", func() {
			Expect(r.FamilyFor(reg, "a")).To(Equal(FamilyAISO))
			Expect(r.FamilyFor(reg, "3I")).To(Equal(Family3ISO))
		})

		It("should ignore the self trigger suffix", func() {
			Expect(r.FamilyFor(reg, "AS")).To(Equal(FamilyAISO))
			Expect(r.FamilyFor(reg, "S")).To(Equal(FamilySISO))
		})

		It("should fall back to the first family", func() {
			Expect(r.FamilyFor(reg, "ZZ")).To(Equal(FamilySISO))
		})
	})

	Context("aliases", func() {
		BeforeEach(func() {
			r.MustRegister("MC1500", f, FamilySISO)
		})

		It("should resolve aliases ignoring case", func() {
			Expect(r.RegisterAlias("MyGate", "mc1500")).To(Succeed())

			id, ok := r.LookupAlias("mygate")

			Expect(ok).To(BeTrue())
			Expect(id).To(Equal("MC1500"))
			Expect(r.Aliases("MC1500")).To(Equal([]string{"mygate"}))
		})

		It("should refuse aliases of unknown ids", func() {
			err := r.RegisterAlias("ghost", "MC9999")

			Expect(err).To(BeAssignableToTypeOf(&UnknownIdentifierError{}))
		})

		It("should refuse taken aliases", func() {
			Expect(r.RegisterAlias("mygate", "MC1500")).To(Succeed())
			Expect(r.RegisterAlias("mygate", "MC1500")).
				To(MatchError(ErrDuplicateRegistration))
		})
	})
})
