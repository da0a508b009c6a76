package timing

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/sarchlab/redstone/sim/hooking"
)

// A SerialEngine handles one event at a time on the goroutine that runs it.
// Pause, Continue and Inspect may be called from other goroutines, such as
// the handlers of the monitor.
type SerialEngine struct {
	hooking.HookableBase

	mu         sync.Mutex
	idle       *sync.Cond
	now        VTimeInTick
	queue      *EventQueue
	paused     bool
	handling   bool
	inspectors int

	runLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine at tick 0.
func NewSerialEngine() *SerialEngine {
	e := &SerialEngine{queue: NewEventQueue()}
	e.idle = sync.NewCond(&e.mu)

	return e
}

// Now returns the tick of the event being handled, or the tick the engine
// stopped at.
func (e *SerialEngine) Now() VTimeInTick {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.now
}

// Schedule adds an event. Scheduling an event before the current tick
// panics.
func (e *SerialEngine) Schedule(evt Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if evt.Time() < e.now {
		log.Panicf("cannot schedule %T at tick %d, the engine is at tick %d",
			evt, evt.Time(), e.now)
	}

	e.queue.Push(evt)
}

// Run handles events until the queue is empty or a handler fails.
func (e *SerialEngine) Run() error {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	return e.drain(math.MaxUint64)
}

// RunUntil handles the events up to tick t and then moves the engine to t.
// If a handler fails, the engine stays at the tick of the failed event.
func (e *SerialEngine) RunUntil(t VTimeInTick) error {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	if now := e.Now(); t < now {
		log.Panicf("cannot run until tick %d, the engine is at tick %d", t, now)
	}

	if err := e.drain(t); err != nil {
		return err
	}

	e.mu.Lock()
	e.now = t
	e.mu.Unlock()

	return nil
}

func (e *SerialEngine) drain(limit VTimeInTick) error {
	for {
		evt := e.next(limit)
		if evt == nil {
			return nil
		}

		if err := e.handle(evt); err != nil {
			return err
		}
	}
}

// next pops the next event no later than limit and marks the engine busy.
func (e *SerialEngine) next(limit VTimeInTick) Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	for e.paused || e.inspectors > 0 {
		e.idle.Wait()
	}

	if e.queue.Len() == 0 || e.queue.Peek().Time() > limit {
		return nil
	}

	evt := e.queue.Pop()
	e.now = evt.Time()
	e.handling = true

	return evt
}

func (e *SerialEngine) handle(evt Event) error {
	defer func() {
		e.mu.Lock()
		e.handling = false
		e.idle.Broadcast()
		e.mu.Unlock()
	}()

	ctx := hooking.HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(ctx)

	err := evt.Handler().Handle(evt)

	ctx.Pos = HookPosAfterEvent
	e.InvokeHook(ctx)

	if err != nil {
		return fmt.Errorf("failed to handle %T at tick %d: %w",
			evt, evt.Time(), err)
	}

	return nil
}

// Pause holds the engine before the next event. The event being handled, if
// any, finishes first.
func (e *SerialEngine) Pause() {
	e.mu.Lock()
	e.paused = true
	e.mu.Unlock()
}

// Continue resumes a paused engine.
func (e *SerialEngine) Continue() {
	e.mu.Lock()
	e.paused = false
	e.idle.Broadcast()
	e.mu.Unlock()
}

// Inspect waits for the event being handled to finish and calls fn before
// the engine handles another one. It must not be called from a handler.
func (e *SerialEngine) Inspect(fn func()) {
	e.mu.Lock()
	for e.handling {
		e.idle.Wait()
	}
	e.inspectors++
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inspectors--
		e.idle.Broadcast()
		e.mu.Unlock()
	}()

	fn()
}
