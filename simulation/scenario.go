package simulation

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/redstone/sim/timing"
	"github.com/sarchlab/redstone/world"
)

// A Scenario is a scripted run: the blocks the world starts with, the actors
// and what they do at which tick.
type Scenario struct {
	World  string               `yaml:"world"`
	Ticks  uint64               `yaml:"ticks"`
	Actors map[string]ActorSpec `yaml:"actors"`
	Blocks []BlockSpec          `yaml:"blocks"`
	Events []EventSpec          `yaml:"events"`
}

// ActorSpec describes an actor.
type ActorSpec struct {
	Permissions []string `yaml:"permissions"`
}

// BlockSpec describes a block that exists before the first tick.
type BlockSpec struct {
	At       string   `yaml:"at"`
	Material string   `yaml:"material"`
	Facing   string   `yaml:"facing"`
	Lines    []string `yaml:"lines"`
	Power    int      `yaml:"power"`
}

// Event kinds.
const (
	EventSign  = "sign"
	EventPower = "power"
	EventClick = "click"
	EventBreak = "break"
	EventPipe  = "pipe"
)

// EventSpec describes something that happens at a tick.
type EventSpec struct {
	Tick     uint64   `yaml:"tick"`
	Kind     string   `yaml:"kind"`
	At       string   `yaml:"at"`
	Actor    string   `yaml:"actor"`
	Material string   `yaml:"material"`
	Facing   string   `yaml:"facing"`
	Lines    []string `yaml:"lines"`
	Level    int      `yaml:"level"`
	Action   string   `yaml:"action"`
	Sneaking bool     `yaml:"sneaking"`
	From     string   `yaml:"from"`
	Items    []string `yaml:"items"`
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	return ParseScenario(data)
}

// ParseScenario parses a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if sc.World == "" {
		sc.World = "world"
	}

	if sc.Ticks == 0 {
		sc.Ticks = sc.lastTick() + 20
	}

	return sc, nil
}

func (sc *Scenario) lastTick() uint64 {
	last := uint64(0)
	for _, e := range sc.Events {
		if e.Tick > last {
			last = e.Tick
		}
	}

	return last
}

// ActorNames returns the names of the actors, sorted.
func (sc *Scenario) ActorNames() []string {
	names := make([]string, 0, len(sc.Actors))
	for n := range sc.Actors {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Play builds the initial world of the scenario and schedules its events.
// The scenario runs as the simulation ticks. It returns the actors by name.
func (s *Simulation) Play(sc *Scenario, printer Printer) (
	map[string]*Actor,
	error,
) {
	actors := make(map[string]*Actor)
	for _, name := range sc.ActorNames() {
		actors[name] = NewActor(name, sc.Actors[name].Permissions, printer)
	}

	p := player{sim: s, actors: actors}

	for i, b := range sc.Blocks {
		if err := p.placeBlock(b); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}

	fns := make([]func(), 0, len(sc.Events))

	for i, e := range sc.Events {
		fn, err := p.compile(e)
		if err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i, e.Kind, err)
		}

		if timing.VTimeInTick(e.Tick) < s.Now() {
			return nil, fmt.Errorf("event %d (%s): tick %d has passed",
				i, e.Kind, e.Tick)
		}

		fns = append(fns, fn)
	}

	for i, e := range sc.Events {
		s.tasks.After(timing.VTimeInTick(e.Tick)-s.Now(), fns[i])
	}

	return actors, nil
}

type player struct {
	sim    *Simulation
	actors map[string]*Actor
}

func (p *player) location(at string) (world.Location, error) {
	if at == "" {
		return world.Location{}, fmt.Errorf("location is missing")
	}

	return world.ParseLocation(p.sim.world.Name() + "@" + at)
}

func (p *player) actor(name string) (*Actor, error) {
	a, ok := p.actors[name]
	if !ok {
		return nil, fmt.Errorf("unknown actor %q", name)
	}

	return a, nil
}

func parseLines(lines []string) (world.Lines, error) {
	var l world.Lines
	if len(lines) > len(l) {
		return l, fmt.Errorf("a sign has at most %d lines", len(l))
	}

	copy(l[:], lines)

	return l, nil
}

func parseMaterial(name string, def world.Material) (world.Material, error) {
	if name == "" {
		return def, nil
	}

	m, ok := world.ParseMaterial(name)
	if !ok {
		return m, fmt.Errorf("unknown material %q", name)
	}

	return m, nil
}

func parseFacing(name string) (world.BlockFace, error) {
	if name == "" {
		return world.North, nil
	}

	return world.ParseBlockFace(name)
}

func (p *player) placeBlock(b BlockSpec) error {
	loc, err := p.location(b.At)
	if err != nil {
		return err
	}

	m, err := parseMaterial(b.Material, "")
	if err != nil {
		return err
	}

	if m == "" {
		return fmt.Errorf("material is missing")
	}

	w := p.sim.world

	if m.IsSign() {
		facing, err := parseFacing(b.Facing)
		if err != nil {
			return err
		}

		lines, err := parseLines(b.Lines)
		if err != nil {
			return err
		}

		w.PlaceSign(loc, m, facing, lines)

		return nil
	}

	w.SetMaterial(loc, m)

	if b.Power > 0 {
		w.SetPower(loc, b.Power)
	}

	return nil
}

func (p *player) compile(e EventSpec) (func(), error) {
	loc, err := p.location(e.At)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(e.Kind) {
	case EventSign:
		return p.compileSign(loc, e)
	case EventPower:
		return func() { p.sim.world.SetPower(loc, e.Level) }, nil
	case EventClick:
		return p.compileClick(loc, e)
	case EventBreak:
		return p.compileBreak(loc, e)
	case EventPipe:
		return p.compilePipe(loc, e)
	default:
		return nil, fmt.Errorf("unknown event kind %q", e.Kind)
	}
}

func (p *player) compileSign(loc world.Location, e EventSpec) (func(), error) {
	actor, err := p.actor(e.Actor)
	if err != nil {
		return nil, err
	}

	m, err := parseMaterial(e.Material, world.WallSign)
	if err != nil {
		return nil, err
	}

	if !m.IsSign() {
		return nil, fmt.Errorf("%s is not a sign", m)
	}

	facing, err := parseFacing(e.Facing)
	if err != nil {
		return nil, err
	}

	lines, err := parseLines(e.Lines)
	if err != nil {
		return nil, err
	}

	return func() {
		w := p.sim.world
		w.PlaceSign(loc, m, facing, world.Lines{})

		evt := &world.SignChangeEvent{Block: loc, Actor: actor, Lines: lines}
		p.sim.dispatcher.FireSignChange(evt)

		if !evt.Cancelled() {
			w.SetSignLines(loc, evt.Lines)
		}
	}, nil
}

func (p *player) compileClick(loc world.Location, e EventSpec) (func(), error) {
	actor, err := p.actor(e.Actor)
	if err != nil {
		return nil, err
	}

	action := world.RightClick

	switch strings.ToLower(e.Action) {
	case "", "right":
	case "left":
		action = world.LeftClick
	default:
		return nil, fmt.Errorf("unknown click action %q", e.Action)
	}

	return func() {
		actor.SetSneaking(e.Sneaking)
		defer actor.SetSneaking(false)

		p.sim.dispatcher.FireClick(&world.ClickEvent{
			Block:  loc,
			Actor:  actor,
			Action: action,
		})
	}, nil
}

func (p *player) compileBreak(loc world.Location, e EventSpec) (func(), error) {
	actor, err := p.actor(e.Actor)
	if err != nil {
		return nil, err
	}

	return func() {
		evt := &world.BreakEvent{Block: loc, Actor: actor}
		p.sim.dispatcher.FireBreak(evt)

		if !evt.Cancelled() {
			p.sim.world.BreakNaturally(loc)
		}
	}, nil
}

func (p *player) compilePipe(loc world.Location, e EventSpec) (func(), error) {
	from, err := p.location(e.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}

	items := make([]world.Material, 0, len(e.Items))

	for _, name := range e.Items {
		m, err := parseMaterial(name, "")
		if err != nil {
			return nil, err
		}

		items = append(items, m)
	}

	return func() {
		p.sim.dispatcher.FirePipePut(&world.PipePutEvent{
			Block:  loc,
			Source: from,
			Items:  append([]world.Material(nil), items...),
		})
	}, nil
}
