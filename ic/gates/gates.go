// Package gates provides the stock ICs: logic gates, timers and a block
// spawner.
package gates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/redstone/ic"
)

type entry struct {
	id       string
	alias    string
	factory  ic.Factory
	families []ic.Family
}

func stock() []entry {
	return []entry{
		{"MC1000", "repeater", RepeaterFactory{}, []ic.Family{ic.FamilySISO, ic.FamilyAISO}},
		{"MC1001", "inverter", InverterFactory{}, []ic.Family{ic.FamilySISO, ic.FamilyAISO}},
		{"MC1017", "toggle", ToggleFactory{}, []ic.Family{ic.FamilySISO}},
		{"MC1421", "clock", ClockFactory{}, []ic.Family{ic.FamilySISO}},
		{"MC1422", "monostable", MonostableFactory{}, []ic.Family{ic.FamilySISO}},
		{"MC3002", "and", AndFactory{}, []ic.Family{ic.Family3ISO}},
		{"MC3020", "xor", XorFactory{}, []ic.Family{ic.Family3ISO}},
		{"MCX200", "blockspawner", BlockSpawnerFactory{}, []ic.Family{ic.FamilySISO}},
	}
}

// Register adds all the stock ICs and their aliases to the registry.
func Register(r *ic.Registry) error {
	for _, e := range stock() {
		if err := r.Register(e.id, e.factory, e.families...); err != nil {
			return err
		}

		if err := r.RegisterAlias(e.alias, e.id); err != nil {
			return err
		}
	}

	return nil
}

// parseTicks reads a tick count from a sign line. An empty line gives def.
func parseTicks(line string, def, min, max int) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number of ticks", line)
	}

	if n < min || n > max {
		return 0, fmt.Errorf("ticks must be between %d and %d", min, max)
	}

	return n, nil
}
