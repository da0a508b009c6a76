package ic

import "github.com/sarchlab/redstone/sim/timing"

// Config holds the policies of the IC mechanic.
type Config struct {
	// BreakOnError destroys the sign of a self triggered IC that fails.
	BreakOnError bool

	// KeepLoaded keeps a failing self triggered IC ticking.
	KeepLoaded bool

	// ShortHandEnabled allows creating ICs with =alias on the first line.
	ShortHandEnabled bool

	// DebounceTicks is how long a redstone change waits before the IC reads
	// its inputs.
	DebounceTicks timing.VTimeInTick

	// CoalesceTriggers replaces a pending redstone trigger of a sign with
	// the newest one, instead of running both.
	CoalesceTriggers bool

	// PermissionRoot is the prefix of the permission nodes.
	PermissionRoot string
}

// DefaultConfig returns the default policies.
func DefaultConfig() Config {
	return Config{
		ShortHandEnabled: true,
		DebounceTicks:    2,
		PermissionRoot:   DefaultPermissionRoot,
	}
}
