// Package ic turns wall signs into integrated circuits. It parses the IC ID
// written on a sign, looks up the factory registered for it, keeps one live
// instance per sign and feeds the instance redstone inputs as they change.
package ic

import (
	"github.com/sarchlab/redstone/world"
)

// An IC is a live instance of an integrated circuit bound to a sign.
type IC interface {
	// Title is the human readable name of the IC.
	Title() string

	// SignTitle is what the first line of the sign shows.
	SignTitle() string

	// Sign returns the sign the IC was created from.
	Sign() *ChangedSign

	// Load acquires what the IC needs before it is triggered.
	Load()

	// Unload releases what Load acquired. The instance is discarded
	// afterwards.
	Unload()

	// Trigger is called when at least one input changed.
	Trigger(state *ChipState) error

	// OnRightClick is called when an actor right clicks the sign.
	OnRightClick(actor world.Actor)

	// OnBreak is called when the sign is broken. The IC may cancel the event
	// to keep the block, but the instance is discarded either way.
	OnBreak(e *world.BreakEvent)
}

// A SelfTriggeredIC can update itself every tick, without any redstone
// input changing.
type SelfTriggeredIC interface {
	IC

	// Think is called every tick while the IC is self triggered.
	Think(state *ChipState) error

	// IsAlwaysST returns true if the IC is self triggered even without the S
	// suffix.
	IsAlwaysST() bool
}

// A PipeInputIC accepts items pushed by pipes.
type PipeInputIC interface {
	IC

	OnPipeTransfer(e *world.PipePutEvent)
}

// Base implements the parts of IC that most ICs share.
type Base struct {
	sign      *ChangedSign
	title     string
	signTitle string
}

// NewBase creates a Base.
func NewBase(sign *ChangedSign, title, signTitle string) Base {
	return Base{sign: sign, title: title, signTitle: signTitle}
}

// Title returns the name of the IC.
func (b *Base) Title() string {
	return b.title
}

// SignTitle returns the first line of the sign.
func (b *Base) SignTitle() string {
	return b.signTitle
}

// Sign returns the sign of the IC.
func (b *Base) Sign() *ChangedSign {
	return b.sign
}

// Load does nothing.
func (b *Base) Load() {}

// Unload does nothing.
func (b *Base) Unload() {}

// OnRightClick does nothing.
func (b *Base) OnRightClick(actor world.Actor) {}

// OnBreak does nothing.
func (b *Base) OnBreak(e *world.BreakEvent) {}
