package ic

import (
	"log"
	"sort"

	"github.com/sarchlab/redstone/world"
)

// A Cache holds at most one live IC per location.
type Cache struct {
	entries map[world.Location]IC
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[world.Location]IC)}
}

// Get returns the IC at loc.
func (c *Cache) Get(loc world.Location) (IC, bool) {
	ic, ok := c.entries[loc]
	return ic, ok
}

// Put stores an IC. The location must be free.
func (c *Cache) Put(loc world.Location, ic IC) {
	if _, ok := c.entries[loc]; ok {
		log.Panicf("an IC is already cached at %s", loc)
	}

	c.entries[loc] = ic
}

// Remove drops the IC at loc and returns it. The IC is not unloaded.
func (c *Cache) Remove(loc world.Location) (IC, bool) {
	ic, ok := c.entries[loc]
	if ok {
		delete(c.entries, loc)
	}

	return ic, ok
}

// Reconcile returns the IC at loc if it was created from exactly the given
// sign text. A cached IC built from other text is unloaded, removed and
// returned as stale, so that the caller can create a new one.
func (c *Cache) Reconcile(
	loc world.Location,
	current world.Lines,
) (live IC, stale IC) {
	ic, ok := c.entries[loc]
	if !ok {
		return nil, nil
	}

	if ic.Sign().Matches(current) {
		return ic, nil
	}

	ic.Unload()
	delete(c.entries, loc)

	return nil, ic
}

// Len returns the number of cached ICs.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Locations returns the locations that hold an IC, sorted.
func (c *Cache) Locations() []world.Location {
	locs := make([]world.Location, 0, len(c.entries))
	for l := range c.entries {
		locs = append(locs, l)
	}

	sortLocations(locs)

	return locs
}

// Clear drops all the ICs without unloading them.
func (c *Cache) Clear() {
	c.entries = make(map[world.Location]IC)
}

func sortLocations(locs []world.Location) {
	sort.Slice(locs, func(i, j int) bool {
		a, b := locs[i], locs[j]
		if a.World != b.World {
			return a.World < b.World
		}

		if a.X != b.X {
			return a.X < b.X
		}

		if a.Y != b.Y {
			return a.Y < b.Y
		}

		return a.Z < b.Z
	})
}
