package world

import "log"

// SignChangeListener reacts to sign edits.
type SignChangeListener interface {
	OnSignChange(e *SignChangeEvent)
}

// RedstoneListener reacts to redstone level changes.
type RedstoneListener interface {
	OnRedstoneChange(e RedstoneEvent)
}

// BreakListener reacts to blocks being broken.
type BreakListener interface {
	OnBreak(e *BreakEvent)
}

// ClickListener reacts to actors clicking blocks.
type ClickListener interface {
	OnClick(e *ClickEvent)
}

// PipeListener reacts to pipes pushing items into blocks.
type PipeListener interface {
	OnPipePut(e *PipePutEvent)
}

// A Dispatcher delivers host events to the listeners that can handle them.
// Listeners receive events in the order they were registered.
type Dispatcher struct {
	signs     []SignChangeListener
	redstone  []RedstoneListener
	breaks    []BreakListener
	clicks    []ClickListener
	pipes     []PipeListener
	listeners []interface{}
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds a listener. The listener must implement at least one of the
// listener interfaces.
func (d *Dispatcher) Register(l interface{}) {
	accepted := false

	if s, ok := l.(SignChangeListener); ok {
		d.signs = append(d.signs, s)
		accepted = true
	}

	if r, ok := l.(RedstoneListener); ok {
		d.redstone = append(d.redstone, r)
		accepted = true
	}

	if b, ok := l.(BreakListener); ok {
		d.breaks = append(d.breaks, b)
		accepted = true
	}

	if c, ok := l.(ClickListener); ok {
		d.clicks = append(d.clicks, c)
		accepted = true
	}

	if p, ok := l.(PipeListener); ok {
		d.pipes = append(d.pipes, p)
		accepted = true
	}

	if !accepted {
		log.Panicf("%T does not listen to any event", l)
	}

	d.listeners = append(d.listeners, l)
}

// NumListeners returns the number of registered listeners.
func (d *Dispatcher) NumListeners() int {
	return len(d.listeners)
}

// FireSignChange delivers a sign change. Delivery stops once a listener
// cancels the event.
func (d *Dispatcher) FireSignChange(e *SignChangeEvent) {
	for _, l := range d.signs {
		l.OnSignChange(e)

		if e.Cancelled() {
			return
		}
	}
}

// FireRedstone delivers a redstone change.
func (d *Dispatcher) FireRedstone(e RedstoneEvent) {
	for _, l := range d.redstone {
		l.OnRedstoneChange(e)
	}
}

// FireBreak delivers a block break.
func (d *Dispatcher) FireBreak(e *BreakEvent) {
	for _, l := range d.breaks {
		l.OnBreak(e)
	}
}

// FireClick delivers a click.
func (d *Dispatcher) FireClick(e *ClickEvent) {
	for _, l := range d.clicks {
		l.OnClick(e)
	}
}

// FirePipePut delivers a pipe transfer. Delivery stops once all items are
// taken.
func (d *Dispatcher) FirePipePut(e *PipePutEvent) {
	for _, l := range d.pipes {
		if len(e.Items) == 0 {
			return
		}

		l.OnPipePut(e)
	}
}
