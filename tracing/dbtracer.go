package tracing

import (
	"sync"

	"github.com/sarchlab/redstone/datarecording"
	"github.com/tebeka/atexit"
)

// LifecycleTable is the table the DBTracer writes into.
const LifecycleTable = "ic_lifecycle"

// LifecycleRow is a row of the lifecycle table.
type LifecycleRow struct {
	ID       string
	Tick     uint64
	Kind     string
	Location string
	IC       string
	Detail   string
}

// DBTracer stores every entry in a data recorder.
type DBTracer struct {
	mu         sync.Mutex
	backend    datarecording.DataRecorder
	terminated bool
}

// NewDBTracer creates a new DBTracer. It creates the lifecycle table in the
// recorder.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	dataRecorder.CreateTable(LifecycleTable, LifecycleRow{})

	t := &DBTracer{
		backend: dataRecorder,
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

// Collect buffers the entry as a row.
func (t *DBTracer) Collect(entry Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.terminated {
		return
	}

	if entry.ID == "" {
		panic("entry ID must be set")
	}

	t.backend.InsertData(LifecycleTable, LifecycleRow{
		ID:       entry.ID,
		Tick:     uint64(entry.Tick),
		Kind:     entry.Kind,
		Location: entry.Location,
		IC:       entry.IC,
		Detail:   entry.Detail,
	})
}

// Terminate flushes the rows. Entries collected afterwards are dropped.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.terminated {
		return
	}

	t.terminated = true
	t.backend.Flush()
}
