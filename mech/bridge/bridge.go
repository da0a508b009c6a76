// Package bridge implements bridges: a [Bridge] sign post with a three wide
// base next to it, matched by a second sign and base further along, flips
// the span between the two bases between solid and open.
package bridge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarchlab/redstone/world"
)

var (
	// ErrInvalidDirection is returned for signs that do not face a cardinal
	// direction.
	ErrInvalidDirection = errors.New("bridge sign must face north, east, south or west")

	// ErrUnacceptableType is returned when the base is made of a block that
	// bridges may not use.
	ErrUnacceptableType = errors.New("bridges cannot be made of that block")
)

// ConstructionError reports a bridge that is built wrong.
type ConstructionError struct {
	Reason string
}

func (e *ConstructionError) Error() string {
	return e.Reason
}

// Settings configure what bridges may be built.
type Settings struct {
	AllowedBlocks []world.Material
	MaxLength     int
}

// DefaultSettings returns the default bridge settings.
func DefaultSettings() Settings {
	return Settings{
		AllowedBlocks: []world.Material{
			world.Cobblestone, world.Planks, world.Glass, world.Stone,
		},
		MaxLength: 30,
	}
}

func (s Settings) canUse(m world.Material) bool {
	if m == world.Air {
		return false
	}

	for _, a := range s.AllowedBlocks {
		if a == m {
			return true
		}
	}

	return false
}

// A Bridge is a detected, well formed bridge.
type Bridge struct {
	world    world.World
	trigger  world.Location
	farside  world.Location
	dir      world.BlockFace
	material world.Material
	proximal world.Location
	toggle   []world.Location
}

// IsBridgeSign returns true if the lines mark a bridge sign.
func IsBridgeSign(lines world.Lines) bool {
	return strings.EqualFold(strings.TrimSpace(lines[1]), "[Bridge]")
}

func isBridgeEnd(lines world.Lines) bool {
	l := strings.TrimSpace(lines[1])
	return strings.EqualFold(l, "[Bridge]") || strings.EqualFold(l, "[Bridge End]")
}

// Detect explores around the sign post at loc. It returns nil without an
// error if loc is not a bridge sign, and an error if it is one but the
// bridge around it is malformed.
func Detect(w world.World, loc world.Location, s Settings) (*Bridge, error) {
	if w.Material(loc) != world.SignPost {
		return nil, nil
	}

	lines, ok := w.SignLines(loc)
	if !ok || !IsBridgeSign(lines) {
		return nil, nil
	}

	dir, ok := w.SignFacing(loc)
	if !ok || !dir.IsCardinal() {
		return nil, ErrInvalidDirection
	}

	b := &Bridge{world: w, trigger: loc, dir: dir}

	vertical, err := b.findBase(s)
	if err != nil {
		return nil, err
	}

	if err := b.findFarside(s); err != nil {
		return nil, err
	}

	distal := b.farside.Relative(vertical)
	if !b.isBase(distal, b.material) {
		return nil, &ConstructionError{
			Reason: "The other side must be made with the same blocks.",
		}
	}

	b.selectToggle(distal)

	return b, nil
}

func (b *Bridge) findBase(s Settings) (world.BlockFace, error) {
	above := b.trigger.Relative(world.Up)
	if m := b.world.Material(above); s.canUse(m) && b.isBase(above, m) {
		b.proximal, b.material = above, m
		return world.Up, nil
	}

	below := b.trigger.Relative(world.Down)

	m := b.world.Material(below)
	if !s.canUse(m) {
		return 0, ErrUnacceptableType
	}

	if !b.isBase(below, m) {
		return 0, &ConstructionError{
			Reason: "Blocks adjacent to the bridge block must be of the same type.",
		}
	}

	b.proximal, b.material = below, m

	return world.Down, nil
}

func (b *Bridge) isBase(center world.Location, m world.Material) bool {
	return b.world.Material(center) == m &&
		b.world.Material(center.Relative(b.dir.Left())) == m &&
		b.world.Material(center.Relative(b.dir.Right())) == m
}

func (b *Bridge) findFarside(s Settings) error {
	// The span may be MaxLength blocks long, so the far sign can be
	// MaxLength+1 blocks away.
	for i := 1; i <= s.MaxLength+1; i++ {
		loc := b.trigger.RelativeN(b.dir, i)
		if b.world.Material(loc) != world.SignPost {
			continue
		}

		lines, ok := b.world.SignLines(loc)
		if ok && isBridgeEnd(lines) {
			b.farside = loc
			return nil
		}
	}

	return &ConstructionError{
		Reason: "[Bridge] sign required on other side (or it was too far away).",
	}
}

func (b *Bridge) selectToggle(distal world.Location) {
	b.toggle = nil

	for c := b.proximal.Relative(b.dir); c != distal; c = c.Relative(b.dir) {
		b.toggle = append(b.toggle,
			c.Relative(b.dir.Left()), c, c.Relative(b.dir.Right()))
	}
}

// Material returns what the bridge is made of.
func (b *Bridge) Material() world.Material {
	return b.material
}

// Farside returns the sign at the other end.
func (b *Bridge) Farside() world.Location {
	return b.farside
}

// Region returns the blocks the bridge toggles.
func (b *Bridge) Region() []world.Location {
	return b.toggle
}

// IsClosed returns true if the span is solid. Only the block next to the
// base is checked.
func (b *Bridge) IsClosed() bool {
	hinge := b.proximal.Relative(b.dir)
	return !b.world.Material(hinge).Passable()
}

// Flip closes an open bridge and opens a closed one. It returns true if the
// bridge is now closed.
func (b *Bridge) Flip() bool {
	if b.IsClosed() {
		b.fill(world.Air)
		return false
	}

	b.fill(b.material)

	return true
}

func (b *Bridge) fill(m world.Material) {
	for _, loc := range b.toggle {
		b.world.SetMaterial(loc, m)
	}
}

func (b *Bridge) String() string {
	return fmt.Sprintf("%s bridge %s -> %s", b.material, b.trigger, b.farside)
}
