// Package simulation wires the tick engine, an in-memory world and the
// mechanics into a simulation that can be driven tick by tick.
package simulation

import (
	"github.com/sarchlab/redstone/datarecording"
	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/mech/bridge"
	"github.com/sarchlab/redstone/monitoring"
	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/tracing"
	"github.com/sarchlab/redstone/world"
	"github.com/sarchlab/redstone/world/memworld"
)

// A Simulation owns everything that takes part in a run.
type Simulation struct {
	id         string
	engine     *timing.SerialEngine
	tasks      *timing.TaskScheduler
	world      *memworld.World
	dispatcher *world.Dispatcher
	registry   *ic.Registry
	mechanic   *ic.Mechanic
	bridges    *bridge.Mechanic

	counts       *tracing.CountTracer
	dataRecorder datarecording.DataRecorder
	dbTracer     *tracing.DBTracer
	redisTracer  *tracing.RedisTracer
	monitor      *monitoring.Monitor
	monitorURL   string

	terminated bool
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine that drives the simulation.
func (s *Simulation) Engine() *timing.SerialEngine {
	return s.engine
}

// Tasks returns the scheduler for delayed work.
func (s *Simulation) Tasks() *timing.TaskScheduler {
	return s.tasks
}

// World returns the simulated world.
func (s *Simulation) World() *memworld.World {
	return s.world
}

// Dispatcher returns the dispatcher that delivers host events.
func (s *Simulation) Dispatcher() *world.Dispatcher {
	return s.dispatcher
}

// Registry returns the registry of ICs.
func (s *Simulation) Registry() *ic.Registry {
	return s.registry
}

// Mechanic returns the IC mechanic.
func (s *Simulation) Mechanic() *ic.Mechanic {
	return s.mechanic
}

// Bridges returns the bridge mechanic.
func (s *Simulation) Bridges() *bridge.Mechanic {
	return s.bridges
}

// Counts returns the tracer that counts the lifecycle of the ICs.
func (s *Simulation) Counts() *tracing.CountTracer {
	return s.counts
}

// DataRecorder returns the recorder, or nil if recording is off.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// Monitor returns the monitor, or nil if monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Events returns the Redis publisher, or nil if publishing is off.
func (s *Simulation) Events() *tracing.RedisTracer {
	return s.redisTracer
}

// MonitorURL returns where the monitor is served.
func (s *Simulation) MonitorURL() string {
	return s.monitorURL
}

// Now returns the current tick.
func (s *Simulation) Now() timing.VTimeInTick {
	return s.engine.Now()
}

// Step runs everything scheduled for the next tick.
func (s *Simulation) Step() error {
	return s.engine.RunUntil(s.engine.Now() + 1)
}

// RunTicks runs n ticks.
func (s *Simulation) RunTicks(n uint64) error {
	var bar *monitoring.ProgressBar
	if s.monitor != nil {
		bar = s.monitor.CreateProgressBar("Ticks", n)
		defer s.monitor.CompleteProgressBar(bar)
	}

	for i := uint64(0); i < n; i++ {
		if err := s.Step(); err != nil {
			return err
		}

		if bar != nil {
			bar.IncrementFinished(1)
		}
	}

	return nil
}

// Terminate unloads every IC and flushes the recorder. It is safe to call
// more than once.
func (s *Simulation) Terminate() {
	if s.terminated {
		return
	}

	s.terminated = true

	s.mechanic.Unload()

	if s.dbTracer != nil {
		s.dbTracer.Terminate()
	}

	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}

	if s.redisTracer != nil {
		s.redisTracer.Close()
	}

	if s.monitor != nil {
		s.monitor.StopServer()
	}
}
