package timing

import (
	"log"

	"github.com/sarchlab/redstone/sim/id"
)

// A Task is a callback that runs after a number of ticks.
type Task struct {
	id        string
	key       string
	fn        func()
	cancelled bool
	done      bool
}

// ID returns the ID of the task.
func (t *Task) ID() string {
	return t.id
}

// Cancel prevents the task from running. Cancelling a task that has already
// run has no effect.
func (t *Task) Cancel() {
	t.cancelled = true
}

// Pending returns true if the task will still run.
func (t *Task) Pending() bool {
	return !t.cancelled && !t.done
}

type taskEvent struct {
	EventBase
	task *Task
}

// TaskScheduler submits callbacks that run after a delay measured in ticks.
// All the callbacks run on the engine's thread, in the order of their
// execution time and, for the same time, in the order of submission.
type TaskScheduler struct {
	engine  EventScheduler
	pending map[string]*Task
}

// NewTaskScheduler creates a TaskScheduler that schedules on the engine.
func NewTaskScheduler(engine EventScheduler) *TaskScheduler {
	return &TaskScheduler{
		engine:  engine,
		pending: make(map[string]*Task),
	}
}

// After runs fn delay ticks from now.
func (s *TaskScheduler) After(delay VTimeInTick, fn func()) *Task {
	if fn == nil {
		log.Panic("task function must not be nil")
	}

	task := &Task{
		id: id.Generate(),
		fn: fn,
	}

	evt := taskEvent{task: task}
	evt.ID = task.id
	evt.time = s.engine.Now() + delay
	evt.handler = s

	s.engine.Schedule(evt)

	return task
}

// AfterKeyed runs fn delay ticks from now. A task with the same key that has
// not run yet is cancelled and replaced.
func (s *TaskScheduler) AfterKeyed(
	key string,
	delay VTimeInTick,
	fn func(),
) *Task {
	if prev, ok := s.pending[key]; ok {
		prev.Cancel()
	}

	task := s.After(delay, fn)
	task.key = key
	s.pending[key] = task

	return task
}

// NumPending returns the number of keyed tasks that are still waiting.
func (s *TaskScheduler) NumPending() int {
	n := 0

	for _, t := range s.pending {
		if t.Pending() {
			n++
		}
	}

	return n
}

// Handle runs a task.
func (s *TaskScheduler) Handle(e Event) error {
	evt, ok := e.(taskEvent)
	if !ok {
		log.Panicf("task scheduler cannot handle event %T", e)
	}

	task := evt.task
	if task.key != "" && s.pending[task.key] == task {
		delete(s.pending, task.key)
	}

	if task.cancelled {
		return nil
	}

	task.done = true
	task.fn()

	return nil
}
