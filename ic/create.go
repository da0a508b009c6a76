package ic

import (
	"fmt"
	"strings"

	"github.com/sarchlab/redstone/world"
)

// OnSignChange creates an IC when an actor writes an IC ID, or a shorthand
// alias, on a sign.
func (m *Mechanic) OnSignChange(e *world.SignChangeEvent) {
	m.initialize(e, false)
}

func (m *Mechanic) initialize(e *world.SignChangeEvent, shortHand bool) {
	line, steps, err := Canonicalize(e.Lines[1])
	if err != nil {
		e.Actor.PrintError(err.Error())
		m.reject(e, "", err.Error())

		return
	}

	if steps > 0 {
		m.invokeHook(HookPosMigrate, e.Block, line, e.Lines[1]+" -> "+line)
		e.Lines[1] = line
	}

	id, ok := ParseIdentifier(e.Lines[1])
	if ok && m.registry.HasPrefix(id.Prefix) {
		m.prepare(e, id, shortHand)
		return
	}

	if !shortHand && m.cfg.ShortHandEnabled &&
		strings.HasPrefix(e.Lines[0], "=") {
		m.expandShortHand(e)
	}
}

func (m *Mechanic) expandShortHand(e *world.SignChangeEvent) {
	name := strings.ToLower(e.Lines[0][1:])
	st := strings.HasSuffix(name, " st")
	name = strings.TrimSuffix(name, " st")

	shortID, ok := m.registry.LookupAlias(name)
	if !ok {
		e.Actor.PrintError("Warning: Unknown IC")
		return
	}

	if m.world.Material(e.Block) != world.WallSign {
		e.Actor.PrintError("Only wall signs are used for ICs.")
		m.reject(e, shortID, ErrNotWallSign.Error())

		return
	}

	e.Lines[1] = "[" + shortID + "]"
	if st {
		e.Lines[1] += "S"
	}

	m.initialize(e, true)
}

// prepare runs the checks that can reject the sign right away and schedules
// the creation for the next tick, once the host has written the text.
func (m *Mechanic) prepare(
	e *world.SignChangeEvent,
	id Identifier,
	shortHand bool,
) {
	if m.world.Material(e.Block) != world.WallSign {
		e.Actor.PrintError("Only wall signs are used for ICs.")
		m.reject(e, id.ID, ErrNotWallSign.Error())

		return
	}

	if old, ok := m.cache.Remove(e.Block); ok {
		m.selfTriggers.Unregister(e.Block, UnregisterUnload)
		m.unload(e.Block, old, "replaced")
	}

	reg, ok := m.registry.Get(id.ID)
	if !ok {
		err := &UnknownIdentifierError{ID: id.ID}
		e.Actor.PrintError(err.Error())
		m.reject(e, id.ID, err.Error())

		return
	}

	if err := m.gate.Authorize(e.Actor, reg.Factory, reg.ID); err != nil {
		e.Actor.PrintError(err.Error())
		m.reject(e, reg.ID, err.Error())

		return
	}

	loc, actor := e.Block, e.Actor
	suffix := id.Suffix

	m.tasks.After(1, func() {
		m.finishCreate(loc, actor, reg, suffix, shortHand)
	})
}

func (m *Mechanic) reject(e *world.SignChangeEvent, id, reason string) {
	e.Cancel()
	m.invokeHook(HookPosReject, e.Block, id, reason)
}

func (m *Mechanic) finishCreate(
	loc world.Location,
	actor world.Actor,
	reg *Registration,
	suffix string,
	shortHand bool,
) {
	sign, err := LoadSign(m.world, loc)
	if err != nil {
		return
	}

	if err := verify(reg, sign, actor); err != nil {
		actor.PrintError(err.Error())
		m.world.BreakNaturally(loc)
		m.invokeHook(HookPosReject, loc, reg.ID, err.Error())

		return
	}

	// An input change since prepare may have cached a runtime instance.
	if old, ok := m.cache.Remove(loc); ok {
		m.selfTriggers.Unregister(loc, UnregisterUnload)
		m.unload(loc, old, "replaced")
	}

	inst, err := m.create(reg, sign)
	if err != nil {
		actor.PrintError(err.Error())
		m.fail(loc, reg.ID, "create", err)

		return
	}

	m.load(loc, reg.ID, inst)

	sign.SetLine(1, "["+reg.ID+"]"+suffix)
	if !shortHand {
		sign.SetLine(0, inst.SignTitle())
	}

	if err := sign.Update(); err != nil {
		m.unload(loc, inst, "sign missing")
		return
	}

	m.cache.Put(loc, inst)

	if wantsSelfTrigger(inst, sign.Line(1)) {
		m.selfTriggers.Register(loc)
	}

	m.invokeHook(HookPosCreate, loc, reg.ID, actor.Name())
	actor.Print(fmt.Sprintf("You've created %s: %s.", reg.ID, inst.Title()))
}

func verify(reg *Registration, sign *ChangedSign, actor world.Actor) error {
	if v, ok := reg.Factory.(Verifier); ok {
		if err := v.Verify(sign); err != nil {
			return asVerificationError(reg.ID, err)
		}
	}

	if c, ok := reg.Factory.(ActorChecker); ok {
		if err := c.CheckActor(sign, actor); err != nil {
			return asVerificationError(reg.ID, err)
		}
	}

	return nil
}

func asVerificationError(id string, err error) error {
	if _, ok := err.(*VerificationError); ok {
		return err
	}

	return &VerificationError{ID: id, Err: err}
}
