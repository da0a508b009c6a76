package timing

import "sync"

// TickEvent asks its handler to update once.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a TickEvent for handler at the given tick.
func MakeTickEvent(handler Handler, time VTimeInTick) TickEvent {
	return TickEvent{EventBase: MakeEventBase(time, handler)}
}

// A Ticker updates its state once per tick and reports whether it made
// progress.
type Ticker interface {
	Tick() bool
}

// A TickScheduler schedules the tick events of one handler, at most one per
// tick.
type TickScheduler struct {
	handler Handler
	engine  EventScheduler
	late    bool

	mu     sync.Mutex
	ticked bool
	last   VTimeInTick
}

// NewTickScheduler creates a scheduler whose ticks run in the order they are
// scheduled.
func NewTickScheduler(handler Handler, engine EventScheduler) *TickScheduler {
	return &TickScheduler{
		handler: handler,
		engine:  engine,
	}
}

// NewLateTickScheduler creates a scheduler whose ticks run after every other
// event of the same tick.
func NewLateTickScheduler(
	handler Handler,
	engine EventScheduler,
) *TickScheduler {
	s := NewTickScheduler(handler, engine)
	s.late = true

	return s
}

// TickNow schedules a tick at the current tick.
func (s *TickScheduler) TickNow() {
	s.tickAt(s.Now())
}

// TickLater schedules a tick at the next tick.
func (s *TickScheduler) TickLater() {
	s.tickAt(s.Now() + 1)
}

// Now returns the current tick of the engine.
func (s *TickScheduler) Now() VTimeInTick {
	return s.engine.Now()
}

func (s *TickScheduler) tickAt(t VTimeInTick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ticks are only ever scheduled forward, so one at or after t covers it.
	if s.ticked && s.last >= t {
		return
	}

	s.ticked = true
	s.last = t

	evt := MakeTickEvent(s.handler, t)
	evt.late = s.late
	s.engine.Schedule(evt)
}
