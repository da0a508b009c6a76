package timing

import (
	"log"

	"github.com/sarchlab/redstone/sim/hooking"
)

// EventLogger is a hook that writes one line per handled event.
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger creates an EventLogger that writes to logger.
func NewEventLogger(logger *log.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// Func logs the event before it is handled.
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	if evt, ok := ctx.Item.(Event); ok {
		late := ""
		if evt.IsLate() {
			late = " (late)"
		}

		h.logger.Printf("tick %d: %T -> %T%s",
			evt.Time(), evt, evt.Handler(), late)
	}
}
