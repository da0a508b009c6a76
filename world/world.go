package world

import "strings"

// Lines holds the four text lines of a sign.
type Lines [4]string

// Trimmed returns the lines with surrounding whitespace removed.
func (l Lines) Trimmed() Lines {
	t := l
	for i := range t {
		t[i] = strings.TrimSpace(t[i])
	}

	return t
}

// World gives access to the blocks of the host world.
type World interface {
	// Material returns the type of the block at loc.
	Material(loc Location) Material

	// SetMaterial replaces the block at loc. Sign text and power stored at loc
	// are discarded.
	SetMaterial(loc Location, material Material)

	// SignLines returns the text of the sign at loc. The second return value
	// is false if there is no sign.
	SignLines(loc Location) (Lines, bool)

	// SetSignLines writes the text of the sign at loc. It returns false if
	// there is no sign.
	SetSignLines(loc Location, lines Lines) bool

	// SignFacing returns the direction the front of the sign points to.
	SignFacing(loc Location) (BlockFace, bool)

	// Power returns the redstone level, 0 to 15, at loc.
	Power(loc Location) int

	// SetOutput switches the lever at loc. It returns false if there is no
	// lever.
	SetOutput(loc Location, on bool) bool

	// BreakNaturally destroys the block at loc as if a player mined it.
	BreakNaturally(loc Location)
}

// Actor is a player or console that causes events.
type Actor interface {
	Name() string
	HasPermission(node string) bool
	IsSneaking() bool

	// Print sends a normal message to the actor.
	Print(msg string)

	// PrintError sends an error message to the actor.
	PrintError(msg string)
}

// BackOf returns the block a wall sign at loc is attached to.
func BackOf(w World, loc Location) (Location, bool) {
	f, ok := w.SignFacing(loc)
	if !ok {
		return Location{}, false
	}

	return loc.Relative(f.Opposite()), true
}
