package core

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vovakirdan/wires/internal/config"
	"github.com/vovakirdan/wires/internal/events"
	"github.com/vovakirdan/wires/internal/sched"
)

// Options configures a simulation. The zero value is usable: a nil Logger
// discards output and a nil Raycaster selects SphereCaster.
type Options struct {
	Seed      int64
	Logger    *log.Logger
	Raycaster Raycaster
	Origin    r3.Vec
}

// Stats counts what happened during a run.
type Stats struct {
	Jumps            int
	ForcedJumps      int
	Misses           int
	PacketsCollected int
	PacketsExpired   int
	SpawnFailures    int
	WiresSpawned     int
	MaxStage         int
	Elapsed          float64
}

// Snapshot is a read-only view of the run for UI, telemetry and bots.
type Snapshot struct {
	Tick               int
	Time               float64
	Score              float64
	Stage              int
	Multiplier         int
	Lives              int
	StageResets        int
	MultiplierProgress float64
	PlayerSegment      int
	ActiveWires        int
	ActiveSparks       int
	ActivePackets      int
	Drifting           bool
	Jumping            bool
	JumpProgress       float64
	WireProgress       float64
	Boosting           bool
	Paused             bool
	GameOver           bool
}

// Simulation owns one run: the clock, scheduler, event bus, random source
// and both managers. It is single-threaded; Tick is the only mutator.
type Simulation struct {
	env   *env
	wires *WireManager
	score *ScoreManager

	clock   float64
	tick    int
	started bool
	paused  bool
	over    bool
	stats   Stats
}

// New builds a simulation from cfg. The config is validated and copied.
func New(cfg *config.WiresConfig, opts Options) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("wires: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("wires: invalid config: %w", err)
	}
	c := *cfg

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	themes := make([]*Theme, 0, len(c.Themes))
	for _, t := range c.Themes {
		themes = append(themes, NewTheme(t))
	}
	if len(themes) == 0 {
		logger.Warn("no themes configured, using default theme")
		themes = append(themes, NewTheme(config.ThemeConfig{Name: "default"}))
	}

	segLen := c.World.SegmentLength
	if segLen <= 0 {
		segLen = themes[0].SegmentLength()
	}
	if segLen <= 0 {
		logger.Warn("segment length unavailable, falling back to 1")
		segLen = 1
	}

	e := &env{
		cfg:   &c,
		plane: NewPlane(opts.Origin, toVec(c.World.Forward), toVec(c.World.Up), segLen),
		rng:   rand.New(rand.NewSource(opts.Seed)),
		sched: sched.New(),
		bus:   events.NewBus[Event](),
		log:   logger,
	}

	sim := &Simulation{env: e}
	sim.wires = newWireManager(e, themes)
	sim.score = newScoreManager(e, sim.wires)
	sim.wires.occupant = sim.score
	sim.wires.caster = opts.Raycaster
	if sim.wires.caster == nil {
		sim.wires.caster = NewSphereCaster(sim.wires, sim.score, c.Packets.Radius)
	}
	sim.stats.MaxStage = sim.score.Stage()

	e.bus.SubscribeAll(sim.record)
	return sim, nil
}

func toVec(v config.Vec3) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func (sim *Simulation) record(ev Event) {
	switch ev.Type {
	case events.JumpStarted:
		if ev.Forced {
			sim.stats.ForcedJumps++
		} else {
			sim.stats.Jumps++
		}
	case events.WireMissed:
		sim.stats.Misses++
	case events.WireSpawned:
		sim.stats.WiresSpawned++
	case events.PacketDespawned:
		if ev.Collected {
			sim.stats.PacketsCollected++
		} else {
			sim.stats.PacketsExpired++
		}
	case events.SpawnFailed:
		sim.stats.SpawnFailures++
	case events.MultiplierChanged:
		if ev.Stage > sim.stats.MaxStage {
			sim.stats.MaxStage = ev.Stage
		}
	case events.GameOver:
		sim.over = true
	}
}

// Start places the player on the initial wire and arms every routine.
func (sim *Simulation) Start() {
	if sim.started {
		return
	}
	sim.started = true
	sim.score.Start()
	sim.wires.Start()
	sim.env.log.Debug("run started", "stage", sim.score.Stage(), "segment_length", sim.env.plane.SegmentLength)
}

// Tick advances the run by dt seconds: wires and sparks first, then score
// and packets, then any scheduled task whose time or segment has come.
func (sim *Simulation) Tick(dt float64) {
	if !sim.started || sim.paused || sim.over || dt <= 0 {
		return
	}
	sim.clock += dt
	sim.tick++
	sim.stats.Elapsed = sim.clock
	sim.env.sched.Advance(sim.clock)

	sim.wires.Tick(dt)
	sim.score.Tick(dt)
	sim.env.sched.Poll(sim.clock, sim.wires.PlayerSegment())

	if sim.over {
		sim.wires.Stop()
		sim.score.Stop()
		sim.env.log.Info("run over", "score", int64(sim.score.Score()), "elapsed", sim.clock)
	}
}

// SetPaused freezes or resumes the run.
func (sim *Simulation) SetPaused(paused bool) { sim.paused = paused }

// BeginFinale overrides generation with guaranteed-safe wires: no defects,
// no delayed sparks, and every live spark frozen on.
func (sim *Simulation) BeginFinale() {
	p := sim.wires.GetStageWireProperties()
	p.DefectChance = 0
	p.SparkDelaySegments = 0
	sim.wires.OverrideWireProperties(p)
	sim.wires.FreezeAll()
}

// EndFinale restores stage-driven generation.
func (sim *Simulation) EndFinale() {
	sim.wires.ClearWirePropertiesOverride()
}

// Subscribe registers fn for events of type t.
func (sim *Simulation) Subscribe(t events.Type, fn func(Event)) events.ListenerID {
	return sim.env.bus.Subscribe(t, fn)
}

// SubscribeAll registers fn for every event.
func (sim *Simulation) SubscribeAll(fn func(Event)) events.ListenerID {
	return sim.env.bus.SubscribeAll(fn)
}

// Unsubscribe removes a listener.
func (sim *Simulation) Unsubscribe(id events.ListenerID) bool {
	return sim.env.bus.Unsubscribe(id)
}

// Snapshot returns the current public state.
func (sim *Simulation) Snapshot() Snapshot {
	j := sim.wires.Jumper()
	return Snapshot{
		Tick:               sim.tick,
		Time:               sim.clock,
		Score:              sim.score.Score(),
		Stage:              sim.score.Stage(),
		Multiplier:         sim.score.Multiplier(),
		Lives:              sim.score.Lives(),
		StageResets:        sim.score.StageResets(),
		MultiplierProgress: sim.score.GetMultiplierProgress(),
		PlayerSegment:      sim.wires.PlayerSegment(),
		ActiveWires:        sim.wires.WireCount(),
		ActiveSparks:       len(sim.wires.ActiveSparks()),
		ActivePackets:      len(sim.score.ActivePackets()),
		Drifting:           j.IsDrifting(),
		Jumping:            j.IsJumping(),
		JumpProgress:       j.JumpProgress(),
		WireProgress:       j.WireProgress(),
		Boosting:           sim.wires.Boosting(),
		Paused:             sim.paused,
		GameOver:           sim.over,
	}
}

func (sim *Simulation) Stats() Stats                { return sim.stats }
func (sim *Simulation) Wires() *WireManager         { return sim.wires }
func (sim *Simulation) Score() *ScoreManager        { return sim.score }
func (sim *Simulation) Jumper() *Jumper             { return sim.wires.Jumper() }
func (sim *Simulation) Plane() Plane                { return sim.env.plane }
func (sim *Simulation) Config() *config.WiresConfig { return sim.env.cfg }
func (sim *Simulation) Time() float64               { return sim.clock }
func (sim *Simulation) Paused() bool                { return sim.paused }
func (sim *Simulation) Over() bool                  { return sim.over }
func (sim *Simulation) Started() bool               { return sim.started }
