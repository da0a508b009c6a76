package ic

import (
	"log"

	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/world"
)

// UnregisterReason tells why a location stops being self triggered.
type UnregisterReason int

// Reasons for unregistering.
const (
	UnregisterUnknown UnregisterReason = iota
	UnregisterError
	UnregisterBreak
	UnregisterUnload
)

func (r UnregisterReason) String() string {
	switch r {
	case UnregisterError:
		return "ERROR"
	case UnregisterBreak:
		return "BREAK"
	case UnregisterUnload:
		return "UNLOAD"
	default:
		return "UNKNOWN"
	}
}

// A SelfTriggerListener handles the ticks of self triggered locations.
type SelfTriggerListener interface {
	// OnThink runs one tick for loc. It returns false if it has nothing to
	// do with loc.
	OnThink(loc world.Location) (handled bool, err error)

	// OnUnregister is called before loc is unregistered. Returning true
	// keeps loc registered.
	OnUnregister(loc world.Location, reason UnregisterReason) (veto bool)
}

// A SelfTriggerManager ticks every registered location once per game tick.
// A location whose tick is not handled by any listener is unregistered with
// UnregisterUnknown. A location whose tick fails is unregistered with
// UnregisterError. The ticks run after the other events of the same game
// tick, so that thinking ICs see the inputs of that tick.
type SelfTriggerManager struct {
	*timing.TickScheduler

	locations map[world.Location]struct{}
	listeners []SelfTriggerListener
	numTicks  uint64
}

// NewSelfTriggerManager creates a manager that ticks on the engine.
func NewSelfTriggerManager(engine timing.Engine) *SelfTriggerManager {
	m := &SelfTriggerManager{
		locations: make(map[world.Location]struct{}),
	}
	m.TickScheduler = timing.NewLateTickScheduler(m, engine)

	return m
}

// AddListener adds a listener.
func (m *SelfTriggerManager) AddListener(l SelfTriggerListener) {
	m.listeners = append(m.listeners, l)
}

// Register makes loc self triggered. Registering twice has no effect.
func (m *SelfTriggerManager) Register(loc world.Location) {
	if _, ok := m.locations[loc]; ok {
		return
	}

	m.locations[loc] = struct{}{}
	m.TickLater()
}

// Unregister stops ticking loc unless a listener vetoes. It returns true if
// loc was removed.
func (m *SelfTriggerManager) Unregister(
	loc world.Location,
	reason UnregisterReason,
) bool {
	if _, ok := m.locations[loc]; !ok {
		return false
	}

	vetoed := false
	for _, l := range m.listeners {
		if l.OnUnregister(loc, reason) {
			vetoed = true
		}
	}

	if vetoed {
		return false
	}

	delete(m.locations, loc)

	return true
}

// IsRegistered returns true if loc is self triggered.
func (m *SelfTriggerManager) IsRegistered(loc world.Location) bool {
	_, ok := m.locations[loc]
	return ok
}

// Locations returns all the self triggered locations, sorted.
func (m *SelfTriggerManager) Locations() []world.Location {
	locs := make([]world.Location, 0, len(m.locations))
	for l := range m.locations {
		locs = append(locs, l)
	}

	sortLocations(locs)

	return locs
}

// NumTicks returns how many ticks the manager has processed.
func (m *SelfTriggerManager) NumTicks() uint64 {
	return m.numTicks
}

// Clear unregisters all the locations without asking the listeners.
func (m *SelfTriggerManager) Clear() {
	m.locations = make(map[world.Location]struct{})
}

// Handle processes tick events.
func (m *SelfTriggerManager) Handle(e timing.Event) error {
	switch e.(type) {
	case timing.TickEvent:
		m.Tick()
	default:
		log.Panicf("cannot handle event of type %T", e)
	}

	return nil
}

// Tick lets every registered location think once.
func (m *SelfTriggerManager) Tick() bool {
	locs := m.Locations()
	if len(locs) == 0 {
		return false
	}

	m.numTicks++

	for _, loc := range locs {
		if !m.IsRegistered(loc) {
			continue
		}

		m.think(loc)
	}

	if len(m.locations) > 0 {
		m.TickLater()
	}

	return true
}

func (m *SelfTriggerManager) think(loc world.Location) {
	handled := false

	for _, l := range m.listeners {
		h, err := l.OnThink(loc)
		if err != nil {
			m.Unregister(loc, UnregisterError)
			return
		}

		handled = handled || h
	}

	if !handled {
		m.Unregister(loc, UnregisterUnknown)
	}
}
