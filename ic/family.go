package ic

import "github.com/sarchlab/redstone/world"

// A Family is a wiring convention. It decides how many inputs and outputs a
// chip has and where they are around the sign.
type Family interface {
	Name() string

	// Suffix selects the family on the sign, for example A in [MC1000]A.
	Suffix() string

	// Detect builds the chip state for a redstone change coming from
	// source.
	Detect(source world.Location, sign *ChangedSign) *ChipState

	// DetectSelfTriggered builds the chip state for a self triggered tick.
	DetectSelfTriggered(sign *ChangedSign) *ChipState
}

// A PinLayout finds a pin given the sign location and the direction the sign
// faces.
type PinLayout func(sign world.Location, facing world.BlockFace) world.Location

// Pin layouts shared by the stock families. Inputs sit next to the sign and
// outputs sit around the block the sign hangs on.
var (
	PinFront PinLayout = func(s world.Location, f world.BlockFace) world.Location {
		return s.Relative(f)
	}
	PinLeft PinLayout = func(s world.Location, f world.BlockFace) world.Location {
		return s.Relative(f.Left())
	}
	PinRight PinLayout = func(s world.Location, f world.BlockFace) world.Location {
		return s.Relative(f.Right())
	}
	PinAbove PinLayout = func(s world.Location, f world.BlockFace) world.Location {
		return s.Relative(world.Up)
	}
	PinBehind PinLayout = func(s world.Location, f world.BlockFace) world.Location {
		return s.RelativeN(f.Opposite(), 2)
	}
	PinBehindLeft PinLayout = func(s world.Location, f world.BlockFace) world.Location {
		return s.Relative(f.Opposite()).Relative(f.Left())
	}
	PinBehindRight PinLayout = func(s world.Location, f world.BlockFace) world.Location {
		return s.Relative(f.Opposite()).Relative(f.Right())
	}
)

// The stock families.
var (
	FamilySISO = NewFamily("SISO", "",
		[]PinLayout{PinFront},
		[]PinLayout{PinBehind})
	FamilySI3O = NewFamily("SI3O", "3O",
		[]PinLayout{PinFront},
		[]PinLayout{PinBehind, PinBehindLeft, PinBehindRight})
	Family3ISO = NewFamily("3ISO", "3I",
		[]PinLayout{PinFront, PinLeft, PinRight},
		[]PinLayout{PinBehind})
	Family3I3O = NewFamily("3I3O", "3I3O",
		[]PinLayout{PinFront, PinLeft, PinRight},
		[]PinLayout{PinBehind, PinBehindLeft, PinBehindRight})
	FamilyAISO = NewFamily("AISO", "A",
		[]PinLayout{PinAbove},
		[]PinLayout{PinBehind})
)

type wiredFamily struct {
	name    string
	suffix  string
	inputs  []PinLayout
	outputs []PinLayout
}

// NewFamily creates a family from its pin layouts.
func NewFamily(name, suffix string, inputs, outputs []PinLayout) Family {
	return &wiredFamily{
		name:    name,
		suffix:  suffix,
		inputs:  inputs,
		outputs: outputs,
	}
}

func (f *wiredFamily) Name() string {
	return f.name
}

func (f *wiredFamily) Suffix() string {
	return f.suffix
}

func (f *wiredFamily) Detect(
	source world.Location,
	sign *ChangedSign,
) *ChipState {
	s := f.build(sign)
	s.source = source
	s.hasSource = true

	return s
}

func (f *wiredFamily) DetectSelfTriggered(sign *ChangedSign) *ChipState {
	return f.build(sign)
}

func (f *wiredFamily) build(sign *ChangedSign) *ChipState {
	loc := sign.Location()
	facing := sign.Facing()

	s := &ChipState{
		world:   sign.World(),
		sign:    sign,
		inputs:  make([]world.Location, len(f.inputs)),
		levels:  make([]int, len(f.inputs)),
		outputs: make([]world.Location, len(f.outputs)),
	}

	for i, p := range f.inputs {
		s.inputs[i] = p(loc, facing)
		s.levels[i] = s.world.Power(s.inputs[i])
	}

	for i, p := range f.outputs {
		s.outputs[i] = p(loc, facing)
	}

	return s
}
