package tracing

import (
	"log"
)

// LogTracer prints every entry through a logger.
type LogTracer struct {
	*log.Logger
}

// NewLogTracer creates a LogTracer that writes into l.
func NewLogTracer(l *log.Logger) *LogTracer {
	return &LogTracer{Logger: l}
}

// Collect prints the entry.
func (t *LogTracer) Collect(entry Entry) {
	if entry.Detail == "" {
		t.Printf("%d %s %s %s", entry.Tick, entry.Kind, entry.IC, entry.Location)
		return
	}

	t.Printf("%d %s %s %s (%s)",
		entry.Tick, entry.Kind, entry.IC, entry.Location, entry.Detail)
}
