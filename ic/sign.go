package ic

import (
	"fmt"

	"github.com/sarchlab/redstone/world"
)

// A ChangedSign is a working copy of a wall sign. Edits stay local until
// Update writes them back to the world.
type ChangedSign struct {
	world    world.World
	location world.Location
	facing   world.BlockFace
	lines    world.Lines
}

// LoadSign reads the sign at loc.
func LoadSign(w world.World, loc world.Location) (*ChangedSign, error) {
	lines, ok := w.SignLines(loc)
	if !ok {
		return nil, fmt.Errorf("%w at %s", ErrSignMissing, loc)
	}

	facing, ok := w.SignFacing(loc)
	if !ok {
		return nil, fmt.Errorf("%w at %s", ErrSignMissing, loc)
	}

	return &ChangedSign{
		world:    w,
		location: loc,
		facing:   facing,
		lines:    lines,
	}, nil
}

// World returns the world the sign is in.
func (s *ChangedSign) World() world.World {
	return s.world
}

// Location returns where the sign is.
func (s *ChangedSign) Location() world.Location {
	return s.location
}

// Facing returns the direction the front of the sign points to.
func (s *ChangedSign) Facing() world.BlockFace {
	return s.facing
}

// Back returns the block the sign hangs on.
func (s *ChangedSign) Back() world.Location {
	return s.location.Relative(s.facing.Opposite())
}

// Line returns a line. Lines out of range are empty.
func (s *ChangedSign) Line(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}

	return s.lines[i]
}

// SetLine changes a line of the working copy.
func (s *ChangedSign) SetLine(i int, text string) {
	if i < 0 || i >= len(s.lines) {
		return
	}

	s.lines[i] = text
}

// Lines returns all the lines of the working copy.
func (s *ChangedSign) Lines() world.Lines {
	return s.lines
}

// Matches returns true if the working copy has exactly the given text.
func (s *ChangedSign) Matches(lines world.Lines) bool {
	return s.lines == lines
}

// Update writes the working copy to the world.
func (s *ChangedSign) Update() error {
	if !s.world.SetSignLines(s.location, s.lines) {
		return fmt.Errorf("%w at %s", ErrSignMissing, s.location)
	}

	return nil
}
