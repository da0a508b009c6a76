package world

import "strings"

// Material is the type of a block.
type Material string

// Materials used by the mechanics.
const (
	Air           Material = "air"
	WallSign      Material = "wall_sign"
	SignPost      Material = "sign_post"
	RedstoneWire  Material = "redstone_wire"
	RedstoneTorch Material = "redstone_torch"
	Lever         Material = "lever"
	Stone         Material = "stone"
	Cobblestone   Material = "cobblestone"
	Planks        Material = "planks"
	Glass         Material = "glass"
	Glowstone     Material = "glowstone"
	Water         Material = "water"
	Lava          Material = "lava"
	Snow          Material = "snow"
)

var knownMaterials = []Material{
	Air, WallSign, SignPost, RedstoneWire, RedstoneTorch, Lever, Stone,
	Cobblestone, Planks, Glass, Glowstone, Water, Lava, Snow,
}

// ParseMaterial returns the material with the given name, ignoring case.
func ParseMaterial(name string) (Material, bool) {
	name = strings.TrimSpace(name)
	for _, m := range knownMaterials {
		if strings.EqualFold(string(m), name) {
			return m, true
		}
	}

	return "", false
}

// IsSign returns true for both kinds of signs.
func (m Material) IsSign() bool {
	return m == WallSign || m == SignPost
}

// CarriesPower returns true if the block can feed a redstone level into an
// adjacent block.
func (m Material) CarriesPower() bool {
	return m == RedstoneWire || m == RedstoneTorch || m == Lever
}

// Passable returns true if a contraption may displace the block.
func (m Material) Passable() bool {
	switch m {
	case Air, Water, Lava, Snow:
		return true
	default:
		return false
	}
}
