package simulation

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"

	"github.com/sarchlab/redstone/config"
	"github.com/sarchlab/redstone/datarecording"
	"github.com/sarchlab/redstone/ic"
	"github.com/sarchlab/redstone/ic/gates"
	"github.com/sarchlab/redstone/mech/bridge"
	"github.com/sarchlab/redstone/monitoring"
	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/tracing"
	"github.com/sarchlab/redstone/world"
	"github.com/sarchlab/redstone/world/memworld"
)

// Builder can be used to build a simulation.
type Builder struct {
	cfg         config.Config
	worldName   string
	monitorOff  bool
	openBrowser bool
	logger      *log.Logger
	eventLogger *log.Logger
	traceLogger *log.Logger
}

// MakeBuilder creates a new builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg:       config.Default(),
		worldName: "world",
	}
}

// WithConfig sets the configuration of the mechanics, the monitor and the
// recorder.
func (b Builder) WithConfig(cfg config.Config) Builder {
	b.cfg = cfg
	return b
}

// WithWorldName sets the name of the simulated world.
func (b Builder) WithWorldName(name string) Builder {
	b.worldName = name
	return b
}

// WithoutMonitoring disables the monitor even if the configuration enables
// it.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOff = true
	return b
}

// WithBrowser opens the monitor in a browser once it is started.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

// WithLogger sets where the mechanics log failures.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithEventLogging prints every event the engine handles.
func (b Builder) WithEventLogging(l *log.Logger) Builder {
	b.eventLogger = l
	return b
}

// WithLifecycleLogging prints every lifecycle step of every IC.
func (b Builder) WithLifecycleLogging(l *log.Logger) Builder {
	b.traceLogger = l
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.worldName == "" {
		panic("world name must not be empty")
	}

	if err := b.cfg.Validate(); err != nil {
		panic(err)
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:     xid.New().String(),
		engine: timing.NewSerialEngine(),
		world:  memworld.New(b.worldName),
		counts: tracing.NewCountTracer(),
	}

	if b.eventLogger != nil {
		s.engine.AcceptHook(timing.NewEventLogger(b.eventLogger))
	}

	s.tasks = timing.NewTaskScheduler(s.engine)
	s.dispatcher = world.NewDispatcher()
	s.world.OnRedstone(s.dispatcher.FireRedstone)

	s.registry = ic.NewRegistry()
	if err := gates.Register(s.registry); err != nil {
		panic(err)
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(os.Stderr, "[ic] ", log.LstdFlags)
	}

	s.mechanic = ic.MakeBuilder().
		WithEngine(s.engine).
		WithWorld(s.world).
		WithRegistry(s.registry).
		WithTaskScheduler(s.tasks).
		WithConfig(b.cfg.ICSettings()).
		WithLogger(logger).
		Build()
	s.dispatcher.Register(s.mechanic)

	bridgeSettings, _ := b.cfg.BridgeSettings()
	s.bridges = bridge.NewMechanic(s.world, bridgeSettings,
		log.New(logger.Writer(), "[bridge] ", logger.Flags()))
	s.dispatcher.Register(s.bridges)

	tracing.CollectTrace(s.mechanic, s.engine, s.counts)

	if b.traceLogger != nil {
		tracing.CollectTrace(s.mechanic, s.engine,
			tracing.NewLogTracer(b.traceLogger))
	}

	if b.cfg.Recording.Enabled {
		s.dataRecorder = b.newRecorder()
		s.dbTracer = tracing.NewDBTracer(s.dataRecorder)
		tracing.CollectTrace(s.mechanic, s.engine, s.dbTracer)
	}

	if b.cfg.Events.Enabled {
		s.redisTracer = b.newRedisTracer(logger)
		tracing.CollectTrace(s.mechanic, s.engine, s.redisTracer)
	}

	if b.cfg.Monitor.Enabled && !b.monitorOff {
		s.monitor = monitoring.NewMonitor().WithPortNumber(b.cfg.Monitor.Port)
		s.monitor.RegisterEngine(s.engine)
		s.monitor.RegisterMechanic(s.mechanic)
		s.monitor.RegisterCounts(s.counts)

		metrics := monitoring.NewMetrics()
		tracing.CollectTrace(s.mechanic, s.engine, metrics)
		s.monitor.RegisterMetrics(metrics)

		s.monitorURL = s.monitor.StartServer(
			b.openBrowser || b.cfg.Monitor.OpenBrowser)
	}

	return s
}

func (b Builder) newRecorder() datarecording.DataRecorder {
	rec := b.cfg.Recording

	if rec.Backend == config.BackendClickHouse {
		return datarecording.NewClickHouse(datarecording.ClickHouseOptions{
			Addr:      rec.ClickHouse.Addr,
			Database:  rec.ClickHouse.Database,
			Username:  rec.ClickHouse.Username,
			Password:  rec.ClickHouse.Password,
			BatchSize: rec.ClickHouse.BatchSize,
		})
	}

	return datarecording.New(rec.Path)
}

func (b Builder) newRedisTracer(logger *log.Logger) *tracing.RedisTracer {
	t, err := tracing.NewRedisTracer(
		&redis.Options{Addr: b.cfg.Events.RedisAddr},
		b.cfg.Events.Namespace,
		log.New(logger.Writer(), "[redis] ", logger.Flags()),
	)
	if err != nil {
		log.Panic(err)
	}

	return t
}
