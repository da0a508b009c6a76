package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/sim/hooking"
	"github.com/sarchlab/redstone/sim/id"
	"github.com/sarchlab/redstone/sim/timing"
)

// CollectTrace lets the tracer collect an entry every time the domain
// invokes its hooks with an ic.Record.
func CollectTrace(
	domain hooking.Hookable,
	timeTeller timing.TimeTeller,
	tracer Tracer,
) {
	for _, hook := range domain.Hooks() {
		hook, ok := hook.(*traceHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf("domain already has tracer %s",
				reflect.TypeOf(tracer)))
		}
	}

	h := traceHook{t: tracer, timeTeller: timeTeller}
	domain.AcceptHook(&h)
}

type traceHook struct {
	t          Tracer
	timeTeller timing.TimeTeller
}

func (h *traceHook) Func(ctx hooking.HookCtx) {
	record, ok := ctx.Item.(ic.Record)
	if !ok {
		return
	}

	h.t.Collect(Entry{
		ID:       id.Generate(),
		Tick:     h.timeTeller.Now(),
		Kind:     ctx.Pos.Name,
		Location: record.Location.String(),
		IC:       record.ID,
		Detail:   record.Detail,
	})
}
