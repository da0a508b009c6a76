package ic

import (
	"errors"
	"io"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/redstone/sim/hooking"
	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/world"
	"github.com/sarchlab/redstone/world/memworld"
)

var _ = Describe("Mechanic", func() {
	var (
		mockCtrl   *gomock.Controller
		engine     *timing.SerialEngine
		w          *memworld.World
		dispatcher *world.Dispatcher
		registry   *Registry
		gates      *testFactory
		clocks     *testFactory
		pipes      *testFactory
		cfg        Config
		mechanic   *Mechanic
		actor      *MockActor
		allowed    bool
		sneaking   bool
		printed    []string
		errs       []string
		records    []hooking.HookCtx

		signLoc, front, back, output world.Location
	)

	build := func() {
		mechanic = MakeBuilder().
			WithEngine(engine).
			WithWorld(w).
			WithRegistry(registry).
			WithConfig(cfg).
			WithLogger(log.New(io.Discard, "", 0)).
			Build()
		mechanic.AcceptHook(hooking.NewHookFunc(func(ctx hooking.HookCtx) {
			records = append(records, ctx)
		}))
		dispatcher.Register(mechanic)
	}

	runTicks := func(n timing.VTimeInTick) {
		Expect(engine.RunUntil(engine.Now() + n)).To(Succeed())
	}

	write := func(m world.Material, lines world.Lines) *world.SignChangeEvent {
		w.PlaceSign(signLoc, m, world.North, world.Lines{})

		e := &world.SignChangeEvent{Block: signLoc, Actor: actor, Lines: lines}
		dispatcher.FireSignChange(e)

		if !e.Cancelled() {
			w.SetSignLines(signLoc, e.Lines)
		}

		return e
	}

	place := func(lines world.Lines) *world.SignChangeEvent {
		e := write(world.WallSign, lines)
		runTicks(1)

		return e
	}

	signLines := func() world.Lines {
		lines, _ := w.SignLines(signLoc)
		return lines
	}

	positions := func() []string {
		var names []string
		for _, r := range records {
			names = append(names, r.Pos.Name)
		}

		return names
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = timing.NewSerialEngine()
		w = memworld.New("w")
		dispatcher = world.NewDispatcher()
		w.OnRedstone(dispatcher.FireRedstone)

		registry = NewRegistry()
		gates = &testFactory{namespace: "test"}
		clocks = &testFactory{kind: "st", namespace: "test"}
		pipes = &testFactory{kind: "pipe", namespace: "test"}
		registry.MustRegister("MC1000", gates, FamilySISO, FamilyAISO)
		registry.MustRegister("MC1421", clocks, FamilySISO)
		registry.MustRegister("MC1500", gates, FamilySISO)
		registry.MustRegister("MC3300", pipes, FamilySISO)
		Expect(registry.RegisterAlias("mygate", "MC1500")).To(Succeed())

		cfg = DefaultConfig()

		allowed, sneaking = true, false
		printed, errs, records = nil, nil, nil

		actor = NewMockActor(mockCtrl)
		actor.EXPECT().Name().Return("alex").AnyTimes()
		actor.EXPECT().HasPermission(gomock.Any()).
			DoAndReturn(func(string) bool { return allowed }).AnyTimes()
		actor.EXPECT().IsSneaking().
			DoAndReturn(func() bool { return sneaking }).AnyTimes()
		actor.EXPECT().Print(gomock.Any()).
			Do(func(msg string) { printed = append(printed, msg) }).AnyTimes()
		actor.EXPECT().PrintError(gomock.Any()).
			Do(func(msg string) { errs = append(errs, msg) }).AnyTimes()

		signLoc = w.At(0, 64, 0)
		front = w.At(0, 64, -1)
		back = w.At(0, 64, 1)
		output = w.At(0, 64, 2)
		w.SetMaterial(back, world.Stone)
		w.SetMaterial(output, world.Lever)

		build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("when a sign is written", func() {
		It("should create the IC on the next tick", func() {
			place(world.Lines{"", "[mc1000]"})

			Expect(printed).To(Equal([]string{"You've created MC1000: Test IC."}))
			Expect(signLines()[0]).To(Equal("TEST"))
			Expect(signLines()[1]).To(Equal("[MC1000]"))
			Expect(gates.counting).To(HaveLen(1))
			Expect(gates.last().loads).To(Equal(1))

			inst, ok := mechanic.Instance(signLoc)
			Expect(ok).To(BeTrue())
			Expect(inst).To(BeIdenticalTo(gates.last()))
			Expect(positions()).To(Equal([]string{"ICLoad", "ICCreate"}))
		})

		It("should keep the family suffix", func() {
			place(world.Lines{"", "[MC1000]A"})

			Expect(signLines()[1]).To(Equal("[MC1000]A"))
		})

		It("should migrate legacy ids and register self triggering", func() {
			e := place(world.Lines{"", "[MC0420]"})

			Expect(e.Lines[1]).To(Equal("[MC1421]S"))
			Expect(signLines()[1]).To(Equal("[MC1421]S"))
			Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeTrue())

			_, changed := Migrate(signLines()[1])
			Expect(changed).To(BeFalse())
			Expect(positions()[0]).To(Equal("ICMigrate"))
		})

		It("should reject unknown ids", func() {
			e := place(world.Lines{"", "[MC9999]"})

			Expect(e.Cancelled()).To(BeTrue())
			Expect(errs).To(Equal([]string{"Unknown IC detected: MC9999"}))
			Expect(signLines()).To(Equal(world.Lines{}))
			Expect(positions()).To(Equal([]string{"ICReject"}))
		})

		It("should ignore text that is not an IC", func() {
			e := place(world.Lines{"hello", "world"})

			Expect(e.Cancelled()).To(BeFalse())
			Expect(errs).To(BeEmpty())
			Expect(records).To(BeEmpty())
		})

		It("should ignore unregistered prefixes", func() {
			e := place(world.Lines{"", "[ZZ1000]"})

			Expect(e.Cancelled()).To(BeFalse())
			Expect(errs).To(BeEmpty())
		})

		It("should only accept wall signs", func() {
			e := write(world.SignPost, world.Lines{"", "[MC1000]"})
			runTicks(1)

			Expect(e.Cancelled()).To(BeTrue())
			Expect(errs).To(Equal([]string{"Only wall signs are used for ICs."}))
		})

		It("should reject actors without permission", func() {
			allowed = false

			e := place(world.Lines{"", "[MC1000]"})

			Expect(e.Cancelled()).To(BeTrue())
			Expect(errs).To(Equal([]string{"You don't have permission to use mc1000."}))
			Expect(gates.counting).To(BeEmpty())
		})

		It("should break the sign when verification fails", func() {
			gates.verifyErr = errors.New("line 3 must be a number")

			e := place(world.Lines{"", "[MC1000]"})

			Expect(e.Cancelled()).To(BeFalse())
			Expect(errs).To(Equal([]string{"line 3 must be a number"}))
			Expect(w.Material(signLoc)).To(Equal(world.Air))
			Expect(gates.counting).To(BeEmpty())
		})

		It("should report factory failures", func() {
			gates.createErr = errors.New("no memory")

			place(world.Lines{"", "[MC1000]"})

			Expect(errs).To(HaveLen(1))
			Expect(errs[0]).To(ContainSubstring("no memory"))
			_, ok := mechanic.Instance(signLoc)
			Expect(ok).To(BeFalse())
		})

		It("should do nothing if the sign is gone before creation", func() {
			write(world.WallSign, world.Lines{"", "[MC1000]"})
			w.BreakNaturally(signLoc)
			runTicks(1)

			Expect(gates.counting).To(BeEmpty())
			Expect(printed).To(BeEmpty())
		})

		It("should unload the IC it replaces", func() {
			place(world.Lines{"", "[MC1000]"})
			first := gates.last()

			place(world.Lines{"", "[MC1000]"})

			Expect(first.unloads).To(Equal(1))
			Expect(gates.counting).To(HaveLen(2))
			Expect(mechanic.Locations()).To(HaveLen(1))
			inst, _ := mechanic.Instance(signLoc)
			Expect(inst).To(BeIdenticalTo(gates.last()))
		})

		It("should unload a runtime instance before creating the IC", func() {
			write(world.WallSign, world.Lines{"", "[MC1000]"})
			w.SetPower(front, 15)
			runTicks(1)

			Expect(positions()).To(Equal(
				[]string{"ICLoad", "ICUnload", "ICLoad", "ICCreate"}))
			Expect(gates.counting).To(HaveLen(2))
			Expect(gates.counting[0].unloads).To(Equal(1))
			Expect(gates.last().unloads).To(Equal(0))

			inst, _ := mechanic.Instance(signLoc)
			Expect(inst).To(BeIdenticalTo(gates.last()))
		})
	})

	Context("shorthand", func() {
		It("should resolve an alias", func() {
			place(world.Lines{"=mygate", ""})

			Expect(signLines()[0]).To(Equal("=mygate"))
			Expect(signLines()[1]).To(Equal("[MC1500]"))
			Expect(printed).To(Equal([]string{"You've created MC1500: Test IC."}))
		})

		It("should add the self trigger suffix", func() {
			place(world.Lines{"=MyGate st", ""})

			Expect(signLines()[1]).To(Equal("[MC1500]S"))
		})

		It("should warn about unknown aliases without rejecting", func() {
			e := place(world.Lines{"=nothing", ""})

			Expect(e.Cancelled()).To(BeFalse())
			Expect(errs).To(Equal([]string{"Warning: Unknown IC"}))
		})

		It("should be disabled by configuration", func() {
			cfg.ShortHandEnabled = false
			dispatcher = world.NewDispatcher()
			w.OnRedstone(dispatcher.FireRedstone)
			build()

			place(world.Lines{"=mygate", ""})

			Expect(printed).To(BeEmpty())
			Expect(signLines()[1]).To(Equal(""))
		})

		It("should only accept wall signs", func() {
			e := write(world.SignPost, world.Lines{"=mygate", ""})

			Expect(e.Cancelled()).To(BeTrue())
			Expect(errs).To(Equal([]string{"Only wall signs are used for ICs."}))
		})
	})

	Context("when redstone changes", func() {
		var gate *countingIC

		BeforeEach(func() {
			place(world.Lines{"", "[MC1000]"})
			gate = gates.last()
		})

		It("should trigger once after the debounce delay", func() {
			w.SetPower(front, 15)

			runTicks(1)
			Expect(gate.triggers).To(Equal(0))

			runTicks(1)
			Expect(gate.triggers).To(Equal(1))
			Expect(gate.lastState.Get(0)).To(BeTrue())
			Expect(gate.lastState.IsTriggered(0)).To(BeTrue())

			runTicks(10)
			Expect(gate.triggers).To(Equal(1))
		})

		It("should let the IC drive its output", func() {
			w.SetPower(front, 15)
			runTicks(2)

			Expect(gate.lastState.Set(0, true)).To(BeTrue())
			Expect(w.Power(output)).To(Equal(memworld.MaxPower))
		})

		It("should skip unchanged levels", func() {
			mechanic.OnRedstoneChange(world.RedstoneEvent{
				Block: signLoc, Source: front, Old: 15, New: 15,
			})
			runTicks(5)

			Expect(gate.triggers).To(Equal(0))
		})

		It("should ignore the block behind the sign", func() {
			mechanic.OnRedstoneChange(world.RedstoneEvent{
				Block: signLoc, Source: back, Old: 0, New: 15,
			})
			mechanic.OnRedstoneChange(world.RedstoneEvent{
				Block: signLoc, Source: signLoc, Old: 0, New: 15,
			})
			runTicks(5)

			Expect(gate.triggers).To(Equal(0))
		})

		It("should not trigger from blocks that are not inputs", func() {
			w.SetPower(w.At(0, 65, 0), 15)
			runTicks(5)

			Expect(gate.triggers).To(Equal(0))
		})

		It("should run every change of a burst", func() {
			w.SetPower(front, 15)
			w.SetPower(front, 0)
			runTicks(5)

			Expect(gate.triggers).To(Equal(2))
		})

		It("should coalesce a burst when configured", func() {
			cfg.CoalesceTriggers = true
			mechanic.Unload()
			dispatcher = world.NewDispatcher()
			w.OnRedstone(dispatcher.FireRedstone)
			build()

			w.SetPower(front, 15)
			w.SetPower(front, 0)
			runTicks(5)

			Expect(gates.last().triggers).To(Equal(1))
		})

		It("should swallow a sign that vanished during the delay", func() {
			w.SetPower(front, 15)
			w.BreakNaturally(signLoc)
			runTicks(5)

			Expect(gate.triggers).To(Equal(0))
			Expect(positions()).NotTo(ContainElement("ICFailure"))
		})

		It("should log trigger failures and keep going", func() {
			gate.triggerErr = errors.New("overheated")

			w.SetPower(front, 15)
			runTicks(2)

			Expect(positions()).To(ContainElement("ICFailure"))
			last := records[len(records)-1].Item.(Record)
			Expect(last.ID).To(Equal("MC1000"))
			Expect(last.Detail).To(ContainSubstring("overheated"))

			gate.triggerErr = nil
			w.SetPower(front, 0)
			runTicks(2)
			Expect(gate.triggers).To(Equal(2))
		})

		It("should recover from panicking ICs", func() {
			gate.panicMsg = "bad state"

			w.SetPower(front, 15)

			Expect(func() { runTicks(2) }).NotTo(Panic())
			Expect(positions()).To(ContainElement("ICFailure"))
		})

		It("should rebuild an IC whose sign changed", func() {
			lines := signLines()
			lines[2] = "edited"
			w.SetSignLines(signLoc, lines)

			w.SetPower(front, 15)
			runTicks(2)

			Expect(gate.unloads).To(Equal(1))
			Expect(gate.triggers).To(Equal(0))
			Expect(gates.counting).To(HaveLen(2))
			Expect(gates.last().loads).To(Equal(1))
			Expect(gates.last().triggers).To(Equal(1))
			Expect(mechanic.Locations()).To(HaveLen(1))
		})
	})

	Context("self triggering", func() {
		It("should think every tick", func() {
			place(world.Lines{"", "[MC1421]S"})
			clock := clocks.lastThinking()

			runTicks(3)

			Expect(clock.thinks).To(Equal(3))
			_, hasSource := clock.lastState.Source()
			Expect(hasSource).To(BeFalse())
		})

		It("should not self trigger without the suffix", func() {
			place(world.Lines{"", "[MC1421]"})

			runTicks(3)

			Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeFalse())
			Expect(clocks.lastThinking().thinks).To(Equal(0))
		})

		It("should self trigger ICs that always do", func() {
			clocks.alwaysST = true
			place(world.Lines{"", "[MC1421]"})

			Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeTrue())
		})

		It("should stop thinking after an unknown unregister", func() {
			place(world.Lines{"", "[MC1421]S"})
			clock := clocks.lastThinking()
			runTicks(1)

			Expect(mechanic.SelfTriggers().Unregister(signLoc, UnregisterUnknown)).
				To(BeTrue())
			runTicks(3)

			Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeFalse())
			Expect(clock.thinks).To(Equal(1))
			Expect(clock.unloads).To(Equal(1))
		})

		It("should unregister ICs that cannot think", func() {
			place(world.Lines{"", "[MC1000]"})
			mechanic.SelfTriggers().Register(signLoc)

			runTicks(2)

			Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeFalse())
		})

		It("should unregister locations without a sign", func() {
			place(world.Lines{"", "[MC1421]S"})
			w.BreakNaturally(signLoc)

			runTicks(2)

			Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeFalse())
			Expect(clocks.lastThinking().unloads).To(Equal(1))
		})

		Context("when thinking fails", func() {
			It("should unload the IC", func() {
				place(world.Lines{"", "[MC1421]S"})
				clock := clocks.lastThinking()
				clock.thinkErr = errors.New("stuck")

				runTicks(2)

				Expect(clock.thinks).To(Equal(1))
				Expect(clock.unloads).To(Equal(1))
				Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeFalse())
				Expect(w.Material(signLoc)).To(Equal(world.WallSign))
			})

			It("should break the sign when configured", func() {
				cfg.BreakOnError = true
				dispatcher = world.NewDispatcher()
				w.OnRedstone(dispatcher.FireRedstone)
				build()

				place(world.Lines{"", "[MC1421]S"})
				clocks.lastThinking().thinkErr = errors.New("stuck")

				runTicks(2)

				Expect(w.Material(signLoc)).To(Equal(world.Air))
				Expect(clocks.lastThinking().unloads).To(Equal(1))
			})

			It("should keep the IC loaded when configured", func() {
				cfg.KeepLoaded = true
				dispatcher = world.NewDispatcher()
				w.OnRedstone(dispatcher.FireRedstone)
				build()

				place(world.Lines{"", "[MC1421]S"})
				clock := clocks.lastThinking()
				clock.thinkErr = errors.New("stuck")

				runTicks(3)

				Expect(clock.thinks).To(Equal(3))
				Expect(clock.unloads).To(Equal(0))
				Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeTrue())
			})

			It("should keep the IC loaded after an unknown unregister", func() {
				cfg.KeepLoaded = true
				dispatcher = world.NewDispatcher()
				w.OnRedstone(dispatcher.FireRedstone)
				build()

				place(world.Lines{"", "[MC1421]S"})
				clock := clocks.lastThinking()

				Expect(mechanic.SelfTriggers().Unregister(signLoc, UnregisterUnknown)).
					To(BeFalse())
				runTicks(2)

				Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeTrue())
				Expect(clock.unloads).To(Equal(0))
				Expect(clock.thinks).To(Equal(2))
			})
		})
	})

	Context("when the sign is clicked", func() {
		var gate *countingIC

		BeforeEach(func() {
			place(world.Lines{"", "[MC1000]"})
			gate = gates.last()
		})

		It("should pass right clicks to the IC", func() {
			mechanic.OnClick(&world.ClickEvent{
				Block: signLoc, Actor: actor, Action: world.RightClick,
			})

			Expect(gate.clicks).To(Equal(1))
		})

		It("should ignore left clicks", func() {
			mechanic.OnClick(&world.ClickEvent{
				Block: signLoc, Actor: actor, Action: world.LeftClick,
			})

			Expect(gate.clicks).To(Equal(0))
		})

		It("should remove the IC on a sneaking right click", func() {
			sneaking = true
			e := &world.ClickEvent{
				Block: signLoc, Actor: actor, Action: world.RightClick,
			}

			mechanic.OnClick(e)

			Expect(e.Cancelled()).To(BeTrue())
			Expect(gate.unloads).To(Equal(1))
			Expect(gate.clicks).To(Equal(0))
			_, ok := mechanic.Instance(signLoc)
			Expect(ok).To(BeFalse())
		})

		It("should refuse removal by actors without permission", func() {
			sneaking = true
			allowed = false

			mechanic.OnClick(&world.ClickEvent{
				Block: signLoc, Actor: actor, Action: world.RightClick,
			})

			Expect(errs).To(Equal([]string{"You don't have permission to use mc1000."}))
			Expect(gate.unloads).To(Equal(0))
		})
	})

	Context("when the sign is broken", func() {
		It("should tear the IC down", func() {
			place(world.Lines{"", "[MC1421]S"})
			clock := clocks.lastThinking()

			dispatcher.FireBreak(&world.BreakEvent{Block: signLoc, Actor: actor})

			Expect(clock.breaks).To(Equal(1))
			Expect(clock.unloads).To(Equal(1))
			Expect(mechanic.SelfTriggers().IsRegistered(signLoc)).To(BeFalse())
			Expect(mechanic.Locations()).To(BeEmpty())
		})

		It("should not unload when the IC cancels the break", func() {
			place(world.Lines{"", "[MC1000]"})
			gate := gates.last()
			gate.cancelBreak = true

			e := &world.BreakEvent{Block: signLoc, Actor: actor}
			dispatcher.FireBreak(e)

			Expect(e.Cancelled()).To(BeTrue())
			Expect(gate.unloads).To(Equal(0))
			Expect(mechanic.Locations()).To(BeEmpty())
		})

		It("should ignore other blocks", func() {
			place(world.Lines{"", "[MC1000]"})

			dispatcher.FireBreak(&world.BreakEvent{Block: back, Actor: actor})

			Expect(gates.last().breaks).To(Equal(0))
			Expect(mechanic.Locations()).To(HaveLen(1))
		})
	})

	It("should deliver pipe items to ICs that accept them", func() {
		place(world.Lines{"", "[MC3300]"})

		e := &world.PipePutEvent{
			Block: signLoc, Items: []world.Material{world.Stone},
		}
		dispatcher.FirePipePut(e)

		Expect(pipes.pipes[0].received).To(Equal([]world.Material{world.Stone}))
		Expect(e.Items).To(BeEmpty())
	})

	It("should leave pipe items to ICs that do not accept them", func() {
		place(world.Lines{"", "[MC1000]"})

		e := &world.PipePutEvent{
			Block: signLoc, Items: []world.Material{world.Stone},
		}
		dispatcher.FirePipePut(e)

		Expect(e.Items).To(HaveLen(1))
	})

	It("should unload everything when the world unloads", func() {
		place(world.Lines{"", "[MC1421]S"})
		clock := clocks.lastThinking()

		mechanic.Unload()
		runTicks(3)

		Expect(clock.unloads).To(Equal(1))
		Expect(clock.thinks).To(Equal(0))
		Expect(mechanic.Locations()).To(BeEmpty())
		Expect(mechanic.SelfTriggers().Locations()).To(BeEmpty())
	})
})
