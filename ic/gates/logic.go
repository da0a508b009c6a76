package gates

import "github.com/sarchlab/redstone/ic"

// RepeaterFactory creates MC1000 repeaters.
type RepeaterFactory struct{}

// Create creates a repeater.
func (RepeaterFactory) Create(sign *ic.ChangedSign) (ic.IC, error) {
	return &Repeater{Base: ic.NewBase(sign, "Repeater", "REPEATER")}, nil
}

// Repeater copies its input to its output.
type Repeater struct {
	ic.Base
}

// Trigger copies the input.
func (r *Repeater) Trigger(state *ic.ChipState) error {
	state.Set(0, state.Get(0))
	return nil
}

// InverterFactory creates MC1001 inverters.
type InverterFactory struct{}

// Create creates an inverter.
func (InverterFactory) Create(sign *ic.ChangedSign) (ic.IC, error) {
	return &Inverter{Base: ic.NewBase(sign, "Inverter", "INVERTER")}, nil
}

// Inverter outputs the opposite of its input.
type Inverter struct {
	ic.Base
}

// Trigger inverts the input.
func (i *Inverter) Trigger(state *ic.ChipState) error {
	state.Set(0, !state.Get(0))
	return nil
}

// ToggleFactory creates MC1017 toggle flip-flops.
type ToggleFactory struct{}

// Create creates a toggle.
func (ToggleFactory) Create(sign *ic.ChangedSign) (ic.IC, error) {
	return &Toggle{Base: ic.NewBase(sign, "Toggle Flip Flop", "TOGGLE")}, nil
}

// Toggle flips its output on every rising edge of its input.
type Toggle struct {
	ic.Base
}

// Trigger flips the output if the input just turned on.
func (t *Toggle) Trigger(state *ic.ChipState) error {
	if state.IsTriggered(0) && state.Get(0) {
		state.Set(0, !state.Output(0))
	}

	return nil
}

// AndFactory creates MC3002 AND gates.
type AndFactory struct{}

// Create creates an AND gate.
func (AndFactory) Create(sign *ic.ChangedSign) (ic.IC, error) {
	return &And{Base: ic.NewBase(sign, "AND Gate", "AND")}, nil
}

// And turns on when all of its wired inputs are on. Unwired inputs are
// ignored.
type And struct {
	ic.Base
}

// Trigger updates the output.
func (a *And) Trigger(state *ic.ChipState) error {
	wired, on := countInputs(state)
	state.Set(0, wired > 0 && on == wired)

	return nil
}

// XorFactory creates MC3020 XOR gates.
type XorFactory struct{}

// Create creates a XOR gate.
func (XorFactory) Create(sign *ic.ChangedSign) (ic.IC, error) {
	return &Xor{Base: ic.NewBase(sign, "XOR Gate", "XOR")}, nil
}

// Xor turns on when an odd number of its wired inputs are on.
type Xor struct {
	ic.Base
}

// Trigger updates the output.
func (x *Xor) Trigger(state *ic.ChipState) error {
	_, on := countInputs(state)
	state.Set(0, on%2 == 1)

	return nil
}

func countInputs(state *ic.ChipState) (wired, on int) {
	for i := 0; i < state.InputCount(); i++ {
		if !state.IsValid(i) {
			continue
		}

		wired++

		if state.Get(i) {
			on++
		}
	}

	return wired, on
}
