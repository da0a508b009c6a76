package ic

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("PermissionGate", func() {
	var (
		mockCtrl *gomock.Controller
		actor    *MockActor
		granted  map[string]bool
		gate     *PermissionGate
		safe     *testFactory
		risky    *testFactory
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		actor = NewMockActor(mockCtrl)
		granted = map[string]bool{}
		actor.EXPECT().Name().Return("alex").AnyTimes()
		actor.EXPECT().HasPermission(gomock.Any()).
			DoAndReturn(func(node string) bool { return granted[node] }).
			AnyTimes()

		gate = NewPermissionGate("redstone.ic")
		safe = &testFactory{namespace: "gates"}
		risky = &testFactory{namespace: "gates", restricted: true}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should list nodes in checking order", func() {
		Expect(gate.Nodes(safe, "MC1000")).To(Equal([]string{
			"redstone.ic.mc1000",
			"redstone.ic.gates.mc1000",
			"redstone.ic.safe.mc1000",
		}))
		Expect(gate.Nodes(risky, "MCX200")[2]).
			To(Equal("redstone.ic.restricted.mcx200"))
	})

	It("should deny an actor without any permission", func() {
		err := gate.Authorize(actor, safe, "MC1000")
		Expect(err).To(BeAssignableToTypeOf(&PermissionDeniedError{}))
		Expect(err.Error()).To(Equal("You don't have permission to use mc1000."))

		Expect(gate.Authorize(actor, risky, "MCX200")).NotTo(Succeed())
	})

	It("should always allow the literal permission", func() {
		granted["redstone.ic.mcx200"] = true

		Expect(gate.Authorize(actor, risky, "MCX200")).To(Succeed())
	})

	It("should allow the namespaced permission", func() {
		granted["redstone.ic.gates.mcx200"] = true

		Expect(gate.Authorize(actor, risky, "MCX200")).To(Succeed())
	})

	It("should not accept a safe permission for restricted ICs", func() {
		granted["redstone.ic.safe.mcx200"] = true

		Expect(gate.Authorize(actor, risky, "MCX200")).NotTo(Succeed())
	})

	It("should accept the restricted permission for restricted ICs", func() {
		granted["redstone.ic.restricted.mcx200"] = true

		Expect(gate.Authorize(actor, risky, "MCX200")).To(Succeed())
	})

	It("should accept the safe permission for safe ICs", func() {
		granted["redstone.ic.safe.mc1000"] = true

		Expect(gate.Authorize(actor, safe, "MC1000")).To(Succeed())
	})

	It("should derive the namespace from the package", func() {
		gate := NewPermissionGate("")
		f := FactoryFunc(func(sign *ChangedSign) (IC, error) { return nil, nil })

		Expect(gate.Nodes(f, "MC1")).To(ContainElement("redstone.ic.ic.mc1"))
	})
})
