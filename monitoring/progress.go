package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/redstone/sim/id"
)

// A ProgressBar follows a long run, such as a number of ticks, so that the web
// page can show how far it is.
type ProgressBar struct {
	mu       sync.Mutex
	id       string
	name     string
	start    time.Time
	total    uint64
	finished uint64
}

func newProgressBar(name string, total uint64, start time.Time) *ProgressBar {
	return &ProgressBar{
		id:    id.Generate(),
		name:  name,
		start: start,
		total: total,
	}
}

// IncrementFinished marks n more items as done.
func (b *ProgressBar) IncrementFinished(n uint64) {
	b.mu.Lock()
	b.finished += n
	b.mu.Unlock()
}

type progressRsp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`

	// Remaining is the estimated time left in seconds, or -1 before the
	// first item is done.
	Remaining float64 `json:"remaining_seconds"`
}

func (b *ProgressBar) snapshot(now time.Time) progressRsp {
	b.mu.Lock()
	defer b.mu.Unlock()

	rsp := progressRsp{
		ID:        b.id,
		Name:      b.name,
		StartTime: b.start,
		Total:     b.total,
		Finished:  b.finished,
		Remaining: -1,
	}

	if b.finished > 0 && b.finished <= b.total {
		perItem := now.Sub(b.start).Seconds() / float64(b.finished)
		rsp.Remaining = perItem * float64(b.total-b.finished)
	}

	return rsp
}
