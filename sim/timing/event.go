package timing

import (
	"github.com/sarchlab/redstone/sim/hooking"
	"github.com/sarchlab/redstone/sim/id"
)

// VTimeInTick is a point in game time, counted in ticks from the start of the
// simulation.
type VTimeInTick uint64

// An Event is handled by its handler once the engine reaches its tick.
type Event interface {
	Time() VTimeInTick
	Handler() Handler

	// IsLate tells if the event waits until every other event of its tick
	// has been handled.
	IsLate() bool
}

// A Handler owns the events scheduled for it. Handling an event may change the
// handler and schedule new events, but nothing else.
type Handler interface {
	Handle(e Event) error
}

var (
	// HookPosBeforeEvent is invoked right before an event is handled.
	HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

	// HookPosAfterEvent is invoked right after an event is handled, whether
	// the handler failed or not.
	HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}
)

// EventBase can be embedded to implement Event.
type EventBase struct {
	ID string

	time    VTimeInTick
	handler Handler
	late    bool
}

// MakeEventBase returns an EventBase with a fresh ID.
func MakeEventBase(t VTimeInTick, handler Handler) EventBase {
	return EventBase{
		ID:      id.Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns the tick of the event.
func (e EventBase) Time() VTimeInTick { return e.time }

// Handler returns the handler of the event.
func (e EventBase) Handler() Handler { return e.handler }

// IsLate returns true for events that run at the end of their tick.
func (e EventBase) IsLate() bool { return e.late }
