package gates

import (
	"strconv"

	"github.com/sarchlab/redstone/ic"
)

const (
	defaultClockInterval = 5
	minClockInterval     = 2
	maxClockInterval     = 100

	defaultPulseLength = 10
	maxPulseLength     = 100
)

// ClockFactory creates MC1421 clocks. The third line of the sign holds the
// interval in ticks.
type ClockFactory struct{}

// Verify checks the interval.
func (ClockFactory) Verify(sign *ic.ChangedSign) error {
	_, err := parseTicks(sign.Line(2),
		defaultClockInterval, minClockInterval, maxClockInterval)
	if err != nil {
		return ic.Verificationf("MC1421", "clock interval: %v", err)
	}

	return nil
}

// Create creates a clock.
func (ClockFactory) Create(sign *ic.ChangedSign) (ic.IC, error) {
	interval, err := parseTicks(sign.Line(2),
		defaultClockInterval, minClockInterval, maxClockInterval)
	if err != nil {
		return nil, err
	}

	counter, _ := strconv.Atoi(sign.Line(3))

	return &Clock{
		Base:     ic.NewBase(sign, "Clock", "CLOCK"),
		Interval: interval,
		Counter:  counter,
	}, nil
}

// Clock toggles its output every Interval ticks while its input is off. The
// counter is kept on the fourth line of the sign so that it survives
// reloading.
type Clock struct {
	ic.Base

	Interval int
	Counter  int
}

// Trigger does nothing. A clock only works when self triggered.
func (c *Clock) Trigger(state *ic.ChipState) error {
	return nil
}

// Think advances the clock by one tick.
func (c *Clock) Think(state *ic.ChipState) error {
	if state.Get(0) {
		return nil
	}

	c.Counter++
	if c.Counter >= c.Interval {
		c.Counter = 0
		state.Set(0, !state.Output(0))
	}

	sign := c.Sign()
	sign.SetLine(3, strconv.Itoa(c.Counter))

	return sign.Update()
}

// IsAlwaysST returns false. A clock needs the S suffix.
func (c *Clock) IsAlwaysST() bool {
	return false
}

// MonostableFactory creates MC1422 monostables. The third line of the sign
// holds the pulse length in ticks.
type MonostableFactory struct{}

// Verify checks the pulse length.
func (MonostableFactory) Verify(sign *ic.ChangedSign) error {
	_, err := parseTicks(sign.Line(2), defaultPulseLength, 1, maxPulseLength)
	if err != nil {
		return ic.Verificationf("MC1422", "pulse length: %v", err)
	}

	return nil
}

// Create creates a monostable.
func (MonostableFactory) Create(sign *ic.ChangedSign) (ic.IC, error) {
	length, err := parseTicks(sign.Line(2), defaultPulseLength, 1, maxPulseLength)
	if err != nil {
		return nil, err
	}

	return &Monostable{
		Base:   ic.NewBase(sign, "Monostable", "MONOSTABLE"),
		Length: length,
	}, nil
}

// Monostable holds its output on for Length ticks after its input turns on.
type Monostable struct {
	ic.Base

	Length    int
	Remaining int
}

// Trigger starts a pulse on a rising edge.
func (m *Monostable) Trigger(state *ic.ChipState) error {
	if !state.IsTriggered(0) || !state.Get(0) {
		return nil
	}

	m.Remaining = m.Length
	state.Set(0, true)

	return nil
}

// Think counts the pulse down.
func (m *Monostable) Think(state *ic.ChipState) error {
	if m.Remaining == 0 {
		return nil
	}

	m.Remaining--
	if m.Remaining == 0 {
		state.Set(0, false)
	}

	return nil
}

// IsAlwaysST returns true. A monostable cannot time its pulse otherwise.
func (m *Monostable) IsAlwaysST() bool {
	return true
}
