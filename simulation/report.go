package simulation

import (
	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/world"
)

// ICStatus describes a live IC.
type ICStatus struct {
	Location      string
	ID            string
	Title         string
	SelfTriggered bool
}

// OutputStatus describes a lever.
type OutputStatus struct {
	Location string
	On       bool
}

// A Report summarizes the state of a simulation.
type Report struct {
	Tick    uint64
	ICs     []ICStatus
	Outputs []OutputStatus
	Counts  map[string]uint64
	Flips   int
}

// Report summarizes the simulation. It must be called before Terminate,
// which unloads all the ICs.
func (s *Simulation) Report() Report {
	r := Report{
		Tick:   uint64(s.engine.Now()),
		Counts: s.counts.Counts(),
		Flips:  s.bridges.NumFlips(),
	}

	st := s.mechanic.SelfTriggers()

	for _, loc := range s.mechanic.Locations() {
		instance, ok := s.mechanic.Instance(loc)
		if !ok {
			continue
		}

		status := ICStatus{
			Location:      loc.String(),
			Title:         instance.Title(),
			SelfTriggered: st.IsRegistered(loc),
		}

		if ident, ok := ic.ParseIdentifier(instance.Sign().Line(1)); ok {
			status.ID = ident.ID
		}

		r.ICs = append(r.ICs, status)
	}

	for _, loc := range s.world.Locations() {
		if s.world.Material(loc) != world.Lever {
			continue
		}

		r.Outputs = append(r.Outputs, OutputStatus{
			Location: loc.String(),
			On:       s.world.Power(loc) > 0,
		})
	}

	return r
}
