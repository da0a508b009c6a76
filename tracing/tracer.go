// Package tracing collects the lifecycle of instructions from the hooks of
// the mechanic that runs them.
package tracing

import (
	"github.com/sarchlab/redstone/sim/timing"
)

// An Entry is one lifecycle step of an instruction, such as its creation, a
// trigger or its unloading.
type Entry struct {
	ID       string             `json:"id"`
	Tick     timing.VTimeInTick `json:"tick"`
	Kind     string             `json:"kind"`
	Location string             `json:"location"`
	IC       string             `json:"ic"`
	Detail   string             `json:"detail,omitempty"`
}

// A Tracer can collect lifecycle entries.
type Tracer interface {
	Collect(entry Entry)
}
