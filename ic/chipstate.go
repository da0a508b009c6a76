package ic

import "github.com/sarchlab/redstone/world"

// ChipState is the view an IC has of its pins during one trigger. Input
// levels are read when the state is built. Outputs are written straight to
// the world.
type ChipState struct {
	world     world.World
	sign      *ChangedSign
	source    world.Location
	hasSource bool
	inputs    []world.Location
	levels    []int
	outputs   []world.Location
}

// Sign returns the sign of the chip.
func (s *ChipState) Sign() *ChangedSign {
	return s.sign
}

// Location returns the location of the sign.
func (s *ChipState) Location() world.Location {
	return s.sign.Location()
}

// Source returns the block whose change caused the trigger. Self triggered
// states have no source.
func (s *ChipState) Source() (world.Location, bool) {
	return s.source, s.hasSource
}

// InputCount returns the number of input pins.
func (s *ChipState) InputCount() int {
	return len(s.inputs)
}

// OutputCount returns the number of output pins.
func (s *ChipState) OutputCount() int {
	return len(s.outputs)
}

// Input returns where input pin i is, and false if the pin does not exist.
func (s *ChipState) Input(i int) (world.Location, bool) {
	return pin(s.inputs, i)
}

// OutputPin returns where output pin i is, and false if the pin does not
// exist.
func (s *ChipState) OutputPin(i int) (world.Location, bool) {
	return pin(s.outputs, i)
}

func pin(pins []world.Location, i int) (world.Location, bool) {
	if i < 0 || i >= len(pins) {
		return world.Location{}, false
	}

	return pins[i], true
}

// Get returns true if input pin i is powered. Pins that do not exist are
// off.
func (s *ChipState) Get(i int) bool {
	if i < 0 || i >= len(s.levels) {
		return false
	}

	return s.levels[i] > 0
}

// IsValid returns true if something that carries power is wired to input
// pin i.
func (s *ChipState) IsValid(i int) bool {
	if i < 0 || i >= len(s.inputs) {
		return false
	}

	return s.world.Material(s.inputs[i]).CarriesPower()
}

// IsTriggered returns true if input pin i is where the change came from.
// Both rising and falling edges count.
func (s *ChipState) IsTriggered(i int) bool {
	if !s.hasSource || i < 0 || i >= len(s.inputs) {
		return false
	}

	return s.inputs[i] == s.source
}

// TriggeredCount returns the number of input pins that are triggered.
func (s *ChipState) TriggeredCount() int {
	n := 0

	for i := range s.inputs {
		if s.IsTriggered(i) {
			n++
		}
	}

	return n
}

// Output returns true if output pin i is currently on.
func (s *ChipState) Output(i int) bool {
	if i < 0 || i >= len(s.outputs) {
		return false
	}

	return s.world.Power(s.outputs[i]) > 0
}

// Set switches output pin i. It returns false if the pin does not exist or
// nothing switchable is there.
func (s *ChipState) Set(i int, on bool) bool {
	if i < 0 || i >= len(s.outputs) {
		return false
	}

	return s.world.SetOutput(s.outputs[i], on)
}
