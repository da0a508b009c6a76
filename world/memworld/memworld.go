// Package memworld provides a World that keeps all the blocks in memory. It is
// the host world of headless simulations and tests.
package memworld

import (
	"sort"
	"sync"

	"github.com/sarchlab/redstone/world"
)

// MaxPower is the highest redstone level.
const MaxPower = 15

type block struct {
	material world.Material
	lines    world.Lines
	facing   world.BlockFace
	power    int
}

// A World is a map-backed world. Every location that has never been set is
// air.
type World struct {
	lock     sync.RWMutex
	name     string
	blocks   map[world.Location]*block
	notifier func(world.RedstoneEvent)
}

// New creates an empty world.
func New(name string) *World {
	return &World{
		name:   name,
		blocks: make(map[world.Location]*block),
	}
}

// Name returns the name of the world.
func (w *World) Name() string {
	return w.name
}

// At creates a location in this world.
func (w *World) At(x, y, z int) world.Location {
	return world.At(w.name, x, y, z)
}

// OnRedstone sets the function that receives the redstone events produced by
// power changes. Usually it is the FireRedstone method of a Dispatcher.
func (w *World) OnRedstone(f func(world.RedstoneEvent)) {
	w.notifier = f
}

// Material returns the type of the block at loc.
func (w *World) Material(loc world.Location) world.Material {
	w.lock.RLock()
	defer w.lock.RUnlock()

	b, ok := w.blocks[loc]
	if !ok {
		return world.Air
	}

	return b.material
}

// SetMaterial replaces the block at loc.
func (w *World) SetMaterial(loc world.Location, m world.Material) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if m == world.Air {
		delete(w.blocks, loc)
		return
	}

	w.blocks[loc] = &block{material: m}
}

// PlaceSign puts a sign at loc.
func (w *World) PlaceSign(
	loc world.Location,
	m world.Material,
	facing world.BlockFace,
	lines world.Lines,
) {
	w.lock.Lock()
	defer w.lock.Unlock()

	w.blocks[loc] = &block{material: m, facing: facing, lines: lines}
}

// SignLines returns the text of the sign at loc.
func (w *World) SignLines(loc world.Location) (world.Lines, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	b, ok := w.blocks[loc]
	if !ok || !b.material.IsSign() {
		return world.Lines{}, false
	}

	return b.lines, true
}

// SetSignLines writes the text of the sign at loc.
func (w *World) SetSignLines(loc world.Location, lines world.Lines) bool {
	w.lock.Lock()
	defer w.lock.Unlock()

	b, ok := w.blocks[loc]
	if !ok || !b.material.IsSign() {
		return false
	}

	b.lines = lines

	return true
}

// SignFacing returns the direction the sign at loc faces.
func (w *World) SignFacing(loc world.Location) (world.BlockFace, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	b, ok := w.blocks[loc]
	if !ok || !b.material.IsSign() {
		return 0, false
	}

	return b.facing, true
}

// Power returns the redstone level stored at loc.
func (w *World) Power(loc world.Location) int {
	w.lock.RLock()
	defer w.lock.RUnlock()

	b, ok := w.blocks[loc]
	if !ok {
		return 0
	}

	return b.power
}

// SetPower changes the redstone level at loc and notifies the six blocks
// around it. Setting the level it already has does nothing. Air cannot hold
// power, so a wire is placed if loc is empty.
func (w *World) SetPower(loc world.Location, level int) {
	if level < 0 {
		level = 0
	}

	if level > MaxPower {
		level = MaxPower
	}

	w.lock.Lock()

	b, ok := w.blocks[loc]
	if !ok {
		b = &block{material: world.RedstoneWire}
		w.blocks[loc] = b
	}

	old := b.power
	b.power = level

	w.lock.Unlock()

	if old == level {
		return
	}

	w.notify(loc, old, level)
}

func (w *World) notify(src world.Location, old, level int) {
	if w.notifier == nil {
		return
	}

	for _, n := range src.Neighbours() {
		w.notifier(world.RedstoneEvent{
			Block:  n,
			Source: src,
			Old:    old,
			New:    level,
		})
	}
}

// SetOutput switches the lever at loc.
func (w *World) SetOutput(loc world.Location, on bool) bool {
	if w.Material(loc) != world.Lever {
		return false
	}

	level := 0
	if on {
		level = MaxPower
	}

	w.SetPower(loc, level)

	return true
}

// BreakNaturally turns the block at loc into air.
func (w *World) BreakNaturally(loc world.Location) {
	w.lock.Lock()
	defer w.lock.Unlock()

	delete(w.blocks, loc)
}

// Locations returns all the non-air locations, sorted by their string form.
func (w *World) Locations() []world.Location {
	w.lock.RLock()
	defer w.lock.RUnlock()

	locs := make([]world.Location, 0, len(w.blocks))
	for l := range w.blocks {
		locs = append(locs, l)
	}

	sort.Slice(locs, func(i, j int) bool {
		return locs[i].String() < locs[j].String()
	})

	return locs
}
