package timing

import "container/heap"

// An EventQueue holds the events that have not been handled yet. Events come
// out by tick. Within a tick, late events come after the others, and events
// of the same kind come out in the order they were pushed.
//
// The queue is not safe for concurrent use. The engine guards it.
type EventQueue struct {
	items  queueItems
	pushed uint64
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	heap.Push(&q.items, queueItem{
		evt:  evt,
		time: evt.Time(),
		late: evt.IsLate(),
		seq:  q.pushed,
	})
	q.pushed++
}

// Pop removes and returns the first event. The queue must not be empty.
func (q *EventQueue) Pop() Event {
	return heap.Pop(&q.items).(queueItem).evt
}

// Peek returns the first event without removing it. The queue must not be
// empty.
func (q *EventQueue) Peek() Event {
	return q.items[0].evt
}

// Len returns the number of events in the queue.
func (q *EventQueue) Len() int {
	return len(q.items)
}

type queueItem struct {
	evt  Event
	time VTimeInTick
	late bool
	seq  uint64
}

type queueItems []queueItem

func (h queueItems) Len() int { return len(h) }

func (h queueItems) Less(i, j int) bool {
	a, b := h[i], h[j]

	switch {
	case a.time != b.time:
		return a.time < b.time
	case a.late != b.late:
		return b.late
	default:
		return a.seq < b.seq
	}
}

func (h queueItems) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *queueItems) Push(x any) {
	*h = append(*h, x.(queueItem))
}

func (h *queueItems) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = queueItem{}
	*h = old[:n-1]

	return item
}
