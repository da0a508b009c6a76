package bridge

import (
	"log"
	"os"

	"github.com/sarchlab/redstone/world"
)

// A Mechanic flips bridges on redstone changes and right clicks. Bridges are
// not cached; every event detects the bridge again.
type Mechanic struct {
	world    world.World
	settings Settings
	logger   *log.Logger
	flips    int
}

// NewMechanic creates a bridge mechanic.
func NewMechanic(w world.World, s Settings, logger *log.Logger) *Mechanic {
	if logger == nil {
		logger = log.New(os.Stderr, "[bridge] ", log.LstdFlags)
	}

	return &Mechanic{world: w, settings: s, logger: logger}
}

// NumFlips returns how many times a bridge was flipped.
func (m *Mechanic) NumFlips() int {
	return m.flips
}

// OnRedstoneChange flips the bridge whose sign received the change.
func (m *Mechanic) OnRedstoneChange(e world.RedstoneEvent) {
	if !e.Changed() {
		return
	}

	b, err := Detect(m.world, e.Block, m.settings)
	if err != nil {
		m.logger.Printf("bridge at %s: %v", e.Block, err)
		return
	}

	if b == nil {
		return
	}

	b.Flip()
	m.flips++
}

// OnClick flips the bridge whose sign was right clicked. Construction
// problems are reported to the actor.
func (m *Mechanic) OnClick(e *world.ClickEvent) {
	if e.Action != world.RightClick {
		return
	}

	b, err := Detect(m.world, e.Block, m.settings)
	if err != nil {
		e.Actor.PrintError(err.Error())
		return
	}

	if b == nil {
		return
	}

	b.Flip()
	m.flips++
	e.Cancel()
}
