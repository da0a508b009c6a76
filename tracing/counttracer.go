package tracing

import (
	"sort"
	"sync"
)

// CountTracer counts the entries of each kind.
type CountTracer struct {
	lock   sync.Mutex
	counts map[string]uint64
	byIC   map[string]uint64
}

// NewCountTracer creates a new CountTracer.
func NewCountTracer() *CountTracer {
	return &CountTracer{
		counts: make(map[string]uint64),
		byIC:   make(map[string]uint64),
	}
}

// Collect counts the entry.
func (t *CountTracer) Collect(entry Entry) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.counts[entry.Kind]++

	if entry.IC != "" {
		t.byIC[entry.Kind+"/"+entry.IC]++
	}
}

// Count returns the number of entries of a kind.
func (t *CountTracer) Count(kind string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.counts[kind]
}

// CountOf returns the number of entries of a kind that came from an IC ID.
func (t *CountTracer) CountOf(kind, icID string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.byIC[kind+"/"+icID]
}

// Kinds returns the kinds seen so far, sorted.
func (t *CountTracer) Kinds() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	kinds := make([]string, 0, len(t.counts))
	for k := range t.counts {
		kinds = append(kinds, k)
	}

	sort.Strings(kinds)

	return kinds
}

// Counts returns a copy of all the counts.
func (t *CountTracer) Counts() map[string]uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	counts := make(map[string]uint64, len(t.counts))
	for k, v := range t.counts {
		counts[k] = v
	}

	return counts
}
