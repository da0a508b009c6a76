package timing

import (
	"github.com/sarchlab/redstone/sim/hooking"
)

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	Now() VTimeInTick
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	TimeTeller

	Schedule(e Event)
}

// An Inspector can run a function while no event is being handled.
type Inspector interface {
	// Inspect calls fn at a point where the engine is between two events.
	Inspect(fn func())
}

// An Engine is a unit that keeps the tick-driven simulation run.
type Engine interface {
	hooking.Hookable
	EventScheduler
	Inspector

	// Run will process all the events until the simulation finishes.
	Run() error

	// RunUntil processes all the events that happen no later than t, and
	// then moves the current time to t.
	RunUntil(t VTimeInTick) error

	// Pause will pause the simulation until continue is called.
	Pause()

	// Continue will continue the paused simulation.
	Continue()
}
