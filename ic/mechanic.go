package ic

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sarchlab/redstone/sim/hooking"
	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/world"
)

// A Mechanic connects host events to ICs. It owns the instance cache and the
// self trigger registrations of all the ICs in a world, and it must only be
// used from the engine's thread.
type Mechanic struct {
	hooking.HookableBase

	world        world.World
	registry     *Registry
	gate         *PermissionGate
	cache        *Cache
	tasks        *timing.TaskScheduler
	selfTriggers *SelfTriggerManager
	cfg          Config
	logger       *log.Logger
}

// A binding is what the mechanic knows about an IC sign at one moment.
type binding struct {
	location world.Location
	id       string
	family   Family
	ic       IC
	sign     *ChangedSign
}

// Registry returns the registry the mechanic resolves IDs with.
func (m *Mechanic) Registry() *Registry {
	return m.registry
}

// SelfTriggers returns the self trigger manager of the mechanic.
func (m *Mechanic) SelfTriggers() *SelfTriggerManager {
	return m.selfTriggers
}

// Config returns the policies of the mechanic.
func (m *Mechanic) Config() Config {
	return m.cfg
}

// Instance returns the live IC at loc.
func (m *Mechanic) Instance(loc world.Location) (IC, bool) {
	return m.cache.Get(loc)
}

// Locations returns the locations of all the live ICs.
func (m *Mechanic) Locations() []world.Location {
	return m.cache.Locations()
}

// setup resolves the IC at loc, migrating legacy IDs and creating or
// refreshing the cached instance as needed. It returns nil if loc does not
// hold an IC.
func (m *Mechanic) setup(loc world.Location) (*binding, error) {
	if m.world.Material(loc) != world.WallSign {
		return nil, nil
	}

	sign, err := LoadSign(m.world, loc)
	if err != nil {
		return nil, nil
	}

	if err := m.migrateSign(sign); err != nil {
		return nil, err
	}

	id, ok := ParseIdentifier(sign.Line(1))
	if !ok || !m.registry.HasPrefix(id.Prefix) {
		return nil, nil
	}

	reg, ok := m.registry.Get(id.ID)
	if !ok {
		m.logger.Printf("%q at %s should be an IC ID, "+
			"but no IC is registered under it", sign.Line(1), loc)

		return nil, nil
	}

	inst, stale := m.cache.Reconcile(loc, sign.Lines())
	if stale != nil {
		m.invokeHook(HookPosUnload, loc, reg.ID, "stale")
	}

	if inst == nil {
		inst, err = m.instantiate(reg, sign)
		if err != nil {
			return nil, err
		}

		m.cache.Put(loc, inst)
	}

	b := &binding{
		location: loc,
		id:       reg.ID,
		family:   m.registry.FamilyFor(reg, id.Suffix),
		ic:       inst,
		sign:     inst.Sign(),
	}

	if wantsSelfTrigger(inst, sign.Line(1)) {
		m.selfTriggers.Register(loc)
	}

	return b, nil
}

func (m *Mechanic) migrateSign(sign *ChangedSign) error {
	line := sign.Line(1)

	canonical, steps, err := Canonicalize(line)
	if err != nil {
		return err
	}

	if steps == 0 {
		return nil
	}

	sign.SetLine(1, canonical)
	if err := sign.Update(); err != nil {
		return err
	}

	m.invokeHook(HookPosMigrate, sign.Location(), canonical,
		line+" -> "+canonical)

	return nil
}

// instantiate creates and loads an IC on the runtime path. The first line is
// rewritten to the sign title unless it holds a shorthand.
func (m *Mechanic) instantiate(reg *Registration, sign *ChangedSign) (IC, error) {
	inst, err := m.create(reg, sign)
	if err != nil {
		return nil, err
	}

	if sign.Line(0) != inst.SignTitle() && !strings.HasPrefix(sign.Line(0), "=") {
		sign.SetLine(0, inst.SignTitle())
		if err := sign.Update(); err != nil {
			return nil, err
		}
	}

	m.load(sign.Location(), reg.ID, inst)

	return inst, nil
}

func (m *Mechanic) create(reg *Registration, sign *ChangedSign) (inst IC, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnexpectedInstanceError{
				Location: sign.Location(),
				ID:       reg.ID,
				Op:       "create",
				Err:      fmt.Errorf("panic: %v", r),
			}
		}
	}()

	inst, err = reg.Factory.Create(sign)
	if err != nil {
		return nil, &UnexpectedInstanceError{
			Location: sign.Location(),
			ID:       reg.ID,
			Op:       "create",
			Err:      err,
		}
	}

	if inst == nil {
		return nil, &UnexpectedInstanceError{
			Location: sign.Location(),
			ID:       reg.ID,
			Op:       "create",
			Err:      errors.New("factory returned no IC"),
		}
	}

	return inst, nil
}

func (m *Mechanic) load(loc world.Location, id string, inst IC) {
	inst.Load()
	m.invokeHook(HookPosLoad, loc, id, "")
}

func (m *Mechanic) unload(loc world.Location, inst IC, detail string) {
	inst.Unload()
	m.invokeHook(HookPosUnload, loc, idOf(inst), detail)
}

func wantsSelfTrigger(inst IC, line string) bool {
	st, ok := inst.(SelfTriggeredIC)
	if !ok {
		return false
	}

	return SelfTriggerRequested(line) || st.IsAlwaysST()
}

// OnRedstoneChange schedules a trigger of the IC next to a changed redstone
// source. Unchanged levels and changes coming from the sign itself or from
// the block behind it are ignored.
func (m *Mechanic) OnRedstoneChange(e world.RedstoneEvent) {
	if !e.Changed() {
		return
	}

	b, err := m.setup(e.Block)
	if err != nil {
		m.fail(e.Block, "", "setup", err)
		return
	}

	if b == nil {
		return
	}

	if e.Source == e.Block || e.Source == b.sign.Back() {
		return
	}

	loc, source := e.Block, e.Source
	run := func() { m.triggerDeferred(loc, source) }

	// TODO: coalesce per input set rather than per sign once families can
	// merge the sources of several pending changes.
	if m.cfg.CoalesceTriggers {
		m.tasks.AfterKeyed(loc.String(), m.cfg.DebounceTicks, run)
		return
	}

	m.tasks.After(m.cfg.DebounceTicks, run)
}

func (m *Mechanic) triggerDeferred(loc, source world.Location) {
	if m.world.Material(loc) != world.WallSign {
		return
	}

	b, err := m.setup(loc)
	if err != nil {
		m.fail(loc, "", "setup", err)
		return
	}

	if b == nil {
		return
	}

	state := b.family.Detect(source, b.sign)
	if state.TriggeredCount() == 0 {
		return
	}

	m.invokeHook(HookPosTrigger, loc, b.id, source.String())

	err = m.guard(b, "trigger", func() error { return b.ic.Trigger(state) })
	if err != nil && !errors.Is(err, ErrSignMissing) {
		m.fail(loc, b.id, "trigger", err)
	}
}

// guard runs an IC callback, turning errors and panics into
// UnexpectedInstanceErrors.
func (m *Mechanic) guard(b *binding, op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnexpectedInstanceError{
				Location: b.location,
				ID:       b.id,
				Op:       op,
				Err:      fmt.Errorf("panic: %v", r),
			}
		}
	}()

	if err := fn(); err != nil {
		return &UnexpectedInstanceError{
			Location: b.location,
			ID:       b.id,
			Op:       op,
			Err:      err,
		}
	}

	return nil
}

func (m *Mechanic) fail(loc world.Location, id, op string, err error) {
	m.logger.Printf("IC %s at %s: %s: %v", id, loc, op, err)
	m.invokeHook(HookPosFailure, loc, id, err.Error())
}

// OnThink runs one self triggered tick of the IC at loc.
func (m *Mechanic) OnThink(loc world.Location) (bool, error) {
	b, err := m.setup(loc)
	if err != nil {
		m.fail(loc, "", "setup", err)
		return false, err
	}

	if b == nil {
		return false, nil
	}

	st, ok := b.ic.(SelfTriggeredIC)
	if !ok {
		m.selfTriggers.Unregister(loc, UnregisterUnknown)
		return true, nil
	}

	state := b.family.DetectSelfTriggered(b.sign)
	m.invokeHook(HookPosThink, loc, b.id, "")

	err = m.guard(b, "think", func() error { return st.Think(state) })
	if err != nil {
		m.fail(loc, b.id, "think", err)
		return true, err
	}

	return true, nil
}

// OnUnregister applies the error policies when a self triggered IC is about
// to stop ticking. Breaking and unloading are handled where they start.
func (m *Mechanic) OnUnregister(
	loc world.Location,
	reason UnregisterReason,
) bool {
	if reason == UnregisterBreak || reason == UnregisterUnload {
		return false
	}

	inst, ok := m.cache.Get(loc)
	if !ok {
		return false
	}

	if reason == UnregisterError && m.cfg.BreakOnError {
		m.cache.Remove(loc)
		m.unload(loc, inst, "error")
		m.world.BreakNaturally(loc)

		return false
	}

	// KeepLoaded covers failed and unhandled ticks alike.
	if m.cfg.KeepLoaded {
		return true
	}

	m.cache.Remove(loc)
	m.unload(loc, inst, reason.String())

	return false
}

// OnClick removes the IC when a sneaking actor allowed to use it right
// clicks the sign, and passes other right clicks to the IC.
func (m *Mechanic) OnClick(e *world.ClickEvent) {
	if e.Action != world.RightClick {
		return
	}

	if inst, ok := m.cache.Get(e.Block); ok && e.Actor.IsSneaking() {
		m.removeByHand(e, inst)
		return
	}

	b, err := m.setup(e.Block)
	if err != nil {
		m.fail(e.Block, "", "setup", err)
		return
	}

	if b == nil {
		return
	}

	err = m.guard(b, "right click", func() error {
		b.ic.OnRightClick(e.Actor)
		return nil
	})
	if err != nil {
		m.fail(e.Block, b.id, "right click", err)
	}
}

func (m *Mechanic) removeByHand(e *world.ClickEvent, inst IC) {
	id := idOf(inst)

	if reg, ok := m.registry.Get(id); ok {
		if err := m.gate.Authorize(e.Actor, reg.Factory, reg.ID); err != nil {
			e.Actor.PrintError(err.Error())
			return
		}
	}

	m.selfTriggers.Unregister(e.Block, UnregisterUnload)
	m.cache.Remove(e.Block)
	m.unload(e.Block, inst, "removed by "+e.Actor.Name())
	e.Cancel()
}

func idOf(inst IC) string {
	if id, ok := ParseIdentifier(inst.Sign().Line(1)); ok {
		return id.ID
	}

	return ""
}

// OnBreak tears the IC down when its sign is broken.
func (m *Mechanic) OnBreak(e *world.BreakEvent) {
	b, err := m.setup(e.Block)
	if err != nil {
		m.fail(e.Block, "", "setup", err)
		return
	}

	if b == nil {
		return
	}

	m.selfTriggers.Unregister(e.Block, UnregisterBreak)
	m.cache.Remove(e.Block)

	err = m.guard(b, "break", func() error {
		b.ic.OnBreak(e)
		return nil
	})
	if err != nil {
		m.fail(e.Block, b.id, "break", err)
	}

	if !e.Cancelled() {
		m.unload(e.Block, b.ic, "break")
	}
}

// OnPipePut passes pipe transfers to ICs that accept them.
func (m *Mechanic) OnPipePut(e *world.PipePutEvent) {
	b, err := m.setup(e.Block)
	if err != nil {
		m.fail(e.Block, "", "setup", err)
		return
	}

	if b == nil {
		return
	}

	p, ok := b.ic.(PipeInputIC)
	if !ok {
		return
	}

	err = m.guard(b, "pipe", func() error {
		p.OnPipeTransfer(e)
		return nil
	})
	if err != nil {
		m.fail(e.Block, b.id, "pipe", err)
	}
}

// Unload unloads every live IC and forgets all the self triggered
// locations. It is called when the world goes away.
func (m *Mechanic) Unload() {
	for _, loc := range m.cache.Locations() {
		inst, _ := m.cache.Remove(loc)
		m.unload(loc, inst, "world unload")
	}

	m.selfTriggers.Clear()
}

func (m *Mechanic) invokeHook(
	pos *hooking.HookPos,
	loc world.Location,
	id, detail string,
) {
	if m.NumHooks() == 0 {
		return
	}

	m.InvokeHook(hooking.HookCtx{
		Domain: m,
		Pos:    pos,
		Item: Record{
			Location: loc,
			ID:       id,
			Detail:   detail,
		},
	})
}
