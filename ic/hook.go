package ic

import (
	"github.com/sarchlab/redstone/sim/hooking"
	"github.com/sarchlab/redstone/world"
)

// Positions where the mechanic invokes its hooks.
var (
	HookPosCreate  = &hooking.HookPos{Name: "ICCreate"}
	HookPosReject  = &hooking.HookPos{Name: "ICReject"}
	HookPosLoad    = &hooking.HookPos{Name: "ICLoad"}
	HookPosUnload  = &hooking.HookPos{Name: "ICUnload"}
	HookPosTrigger = &hooking.HookPos{Name: "ICTrigger"}
	HookPosThink   = &hooking.HookPos{Name: "ICThink"}
	HookPosFailure = &hooking.HookPos{Name: "ICFailure"}
	HookPosMigrate = &hooking.HookPos{Name: "ICMigrate"}
)

// HookPositions lists every position the mechanic uses.
var HookPositions = []*hooking.HookPos{
	HookPosCreate,
	HookPosReject,
	HookPosLoad,
	HookPosUnload,
	HookPosTrigger,
	HookPosThink,
	HookPosFailure,
	HookPosMigrate,
}

// A Record is the item of every hook the mechanic invokes.
type Record struct {
	Location world.Location
	ID       string
	Detail   string
}
