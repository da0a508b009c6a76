package ic

import (
	"log"
	"os"

	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/world"
)

// A Builder creates Mechanics.
type Builder struct {
	engine   timing.Engine
	world    world.World
	registry *Registry
	tasks    *timing.TaskScheduler
	cfg      Config
	logger   *log.Logger
}

// MakeBuilder creates a Builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg: DefaultConfig(),
	}
}

// WithEngine sets the engine that runs delayed work and self triggered
// ticks.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithWorld sets the world the ICs live in.
func (b Builder) WithWorld(w world.World) Builder {
	b.world = w
	return b
}

// WithRegistry sets the registry of ICs.
func (b Builder) WithRegistry(r *Registry) Builder {
	b.registry = r
	return b
}

// WithTaskScheduler shares a task scheduler with other mechanics. By default
// the mechanic creates its own.
func (b Builder) WithTaskScheduler(s *timing.TaskScheduler) Builder {
	b.tasks = s
	return b
}

// WithConfig sets the policies.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithLogger sets where failures are logged.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.world == nil {
		panic("world is not set")
	}
}

// Build creates the Mechanic and registers it as a listener of its own self
// trigger manager.
func (b Builder) Build() *Mechanic {
	b.parametersMustBeValid()

	m := &Mechanic{
		world:    b.world,
		registry: b.registry,
		cfg:      b.cfg,
		logger:   b.logger,
		tasks:    b.tasks,
		cache:    NewCache(),
		gate:     NewPermissionGate(b.cfg.PermissionRoot),
	}

	if m.registry == nil {
		m.registry = NewRegistry()
	}

	if m.logger == nil {
		m.logger = log.New(os.Stderr, "[ic] ", log.LstdFlags)
	}

	if m.tasks == nil {
		m.tasks = timing.NewTaskScheduler(b.engine)
	}

	m.selfTriggers = NewSelfTriggerManager(b.engine)
	m.selfTriggers.AddListener(m)

	return m
}
