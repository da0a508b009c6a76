// Package world defines what the mechanics need from the host game: block and
// sign access, redstone levels, actors and the events the host delivers.
package world

import (
	"fmt"
	"strconv"
	"strings"
)

// Location identifies a block in a world.
type Location struct {
	World   string
	X, Y, Z int
}

// At creates a Location.
func At(w string, x, y, z int) Location {
	return Location{World: w, X: x, Y: y, Z: z}
}

// Relative returns the location next to l in the direction of face.
func (l Location) Relative(face BlockFace) Location {
	return l.RelativeN(face, 1)
}

// RelativeN returns the location n blocks away from l in the direction of
// face.
func (l Location) RelativeN(face BlockFace, n int) Location {
	dx, dy, dz := face.Vector()

	return Location{
		World: l.World,
		X:     l.X + dx*n,
		Y:     l.Y + dy*n,
		Z:     l.Z + dz*n,
	}
}

// Neighbours returns the six locations sharing a face with l.
func (l Location) Neighbours() []Location {
	n := make([]Location, 0, len(AllFaces))
	for _, f := range AllFaces {
		n = append(n, l.Relative(f))
	}

	return n
}

// String formats the location as world@x,y,z.
func (l Location) String() string {
	return fmt.Sprintf("%s@%d,%d,%d", l.World, l.X, l.Y, l.Z)
}

// ParseLocation parses the output of Location.String.
func ParseLocation(s string) (Location, error) {
	w, coords, ok := strings.Cut(s, "@")
	if !ok || w == "" {
		return Location{}, fmt.Errorf("location %q: missing world", s)
	}

	parts := strings.Split(coords, ",")
	if len(parts) != 3 {
		return Location{}, fmt.Errorf("location %q: need x,y,z", s)
	}

	xyz := [3]int{}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Location{}, fmt.Errorf("location %q: %w", s, err)
		}

		xyz[i] = v
	}

	return At(w, xyz[0], xyz[1], xyz[2]), nil
}

// BlockFace is one of the six directions a block can be approached from.
type BlockFace int

// The block faces. North is -Z and East is +X.
const (
	North BlockFace = iota
	East
	South
	West
	Up
	Down
)

// AllFaces lists the six faces in a fixed order.
var AllFaces = []BlockFace{North, East, South, West, Up, Down}

var faceNames = map[BlockFace]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
	Up:    "up",
	Down:  "down",
}

func (f BlockFace) String() string {
	if n, ok := faceNames[f]; ok {
		return n
	}

	return "face(" + strconv.Itoa(int(f)) + ")"
}

// ParseBlockFace converts a face name into a BlockFace.
func ParseBlockFace(s string) (BlockFace, error) {
	for f, n := range faceNames {
		if strings.EqualFold(n, s) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("unknown block face %q", s)
}

// Vector returns the unit offset of the face.
func (f BlockFace) Vector() (dx, dy, dz int) {
	switch f {
	case North:
		return 0, 0, -1
	case East:
		return 1, 0, 0
	case South:
		return 0, 0, 1
	case West:
		return -1, 0, 0
	case Up:
		return 0, 1, 0
	case Down:
		return 0, -1, 0
	}

	panic("invalid block face " + f.String())
}

// Opposite returns the face pointing the other way.
func (f BlockFace) Opposite() BlockFace {
	switch f {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	default:
		return Up
	}
}

// Left returns the face on the left of someone looking towards f. Up and
// Down have no left and return themselves.
func (f BlockFace) Left() BlockFace {
	switch f {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	default:
		return f
	}
}

// Right returns the face on the right of someone looking towards f.
func (f BlockFace) Right() BlockFace {
	return f.Left().Opposite()
}

// IsCardinal returns true for the four horizontal faces.
func (f BlockFace) IsCardinal() bool {
	return f == North || f == East || f == South || f == West
}
