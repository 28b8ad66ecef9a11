// Package wires provides the Wires endless runner for the platform: the
// player rides sparks along wires and jumps between them.
package wires

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wires/internal/config"
	platformcore "github.com/vovakirdan/wires/internal/core"
	"github.com/vovakirdan/wires/internal/events"
	"github.com/vovakirdan/wires/internal/games/wires/core"
	"github.com/vovakirdan/wires/internal/registry"
)

// flashTicks is how long a status message stays on screen.
const flashTicks = 45

// variant describes one registered flavour of the game.
type variant struct {
	id          string
	title       string
	description string
	preset      config.DifficultyPreset
}

var variants = []variant{
	{id: "wires", title: "Wires", description: "Ride sparks, jump wires, keep the multiplier alive"},
	{id: "wires_zen", title: "Wires Zen", description: "No multiplier loss, longer drifts", preset: config.DifficultyEasy},
}

// Package-level logger shared by every game instance; set by the CLI.
var logger = log.New(io.Discard)

// SetLogger routes simulation logs to l. nil discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	for _, v := range variants {
		v := v
		registry.Register(v.id, func() registry.Game {
			return newGame(v)
		})
	}
}

// Game adapts a simulation to the registry.Game interface.
type Game struct {
	variant variant
	runtime platformcore.RuntimeConfig
	cfg     config.WiresConfig
	sim     *core.Simulation
	bot     *core.Autopilot

	autopilot bool
	target    int
	targets   []*core.Wire

	flash     string
	flashLeft int
}

// New creates a standard Wires game.
func New() *Game {
	return newGame(variants[0])
}

func newGame(v variant) *Game {
	return &Game{variant: v, bot: core.NewAutopilot()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return g.variant.id }

// Title returns the display name for this game.
func (g *Game) Title() string { return g.variant.title }

// Description returns a one-line summary for menus and `wires list`.
func (g *Game) Description() string { return g.variant.description }

// Reset loads configuration and starts a new run.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig(runtime)

	sim, err := core.New(&g.cfg, core.Options{Seed: runtime.Seed, Logger: logger})
	if err != nil {
		logger.Error("config rejected, using defaults", "err", err)
		g.cfg = config.DefaultWiresConfig()
		sim, err = core.New(&g.cfg, core.Options{Seed: runtime.Seed, Logger: logger})
		if err != nil {
			panic(fmt.Sprintf("wires: default config invalid: %v", err))
		}
	}
	g.sim = sim
	g.sim.SubscribeAll(g.onEvent)
	g.sim.Start()

	g.target = 0
	g.targets = g.targets[:0]
	g.flash, g.flashLeft = "", 0
}

func (g *Game) loadConfig(runtime platformcore.RuntimeConfig) config.WiresConfig {
	preset := config.ParsePreset(runtime.Preset)
	if preset == "" {
		preset = g.variant.preset
	}
	cfg, err := config.Resolve(runtime.ConfigPath, preset)
	if err != nil {
		logger.Warn("cannot load config, using defaults", "path", runtime.ConfigPath, "err", err)
		cfg = config.DefaultWiresConfig()
		if preset != "" {
			config.ApplyPreset(&cfg, preset)
		}
	}
	return cfg
}

// Step applies one frame of input and advances the simulation one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.sim == nil || g.sim.Over() {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.sim.SetPaused(!g.sim.Paused())
	}
	if g.sim.Paused() {
		return platformcore.StepResult{State: g.State()}
	}

	wires := g.sim.Wires()
	if in.Has(platformcore.ActionAutopilot) {
		g.autopilot = !g.autopilot
		g.setFlash(onOff("AUTOPILOT", g.autopilot))
	}
	if in.Has(platformcore.ActionToggleDrift) {
		wires.SetDriftingEnabled(!wires.DriftingEnabled())
		g.setFlash(onOff("DRIFTING", wires.DriftingEnabled()))
	}
	if in.Has(platformcore.ActionBoost) {
		wires.ActivateBoost()
	}

	g.refreshTargets()
	if in.Has(platformcore.ActionTargetLeft) {
		g.cycleTarget(-1)
	}
	if in.Has(platformcore.ActionTargetRight) {
		g.cycleTarget(1)
	}
	if in.Has(platformcore.ActionJump) {
		if w := g.SelectedTarget(); w != nil {
			wires.JumpToSpark(w.Spark(), false)
		}
	}

	if g.autopilot {
		g.bot.Step(g.sim)
	}
	g.sim.Tick(g.runtime.DT())

	if g.flashLeft > 0 {
		g.flashLeft--
	}
	return platformcore.StepResult{State: g.State()}
}

// refreshTargets collects wires the player could jump to, ordered left to
// right as seen from behind the player.
func (g *Game) refreshTargets() {
	var selected *core.Wire
	if g.target < len(g.targets) {
		selected = g.targets[g.target]
	}

	current := g.sim.Jumper().Spark()
	plane := g.sim.Plane()
	g.targets = g.targets[:0]
	for _, w := range g.sim.Wires().ActiveWires() {
		if s := w.Spark(); s != nil && s != current {
			g.targets = append(g.targets, w)
		}
	}
	sort.Slice(g.targets, func(i, k int) bool {
		xi, _ := plane.LateralCoords(g.targets[i].Start())
		xk, _ := plane.LateralCoords(g.targets[k].Start())
		if xi != xk {
			return xi < xk
		}
		return g.targets[i].ID() < g.targets[k].ID()
	})

	g.target = 0
	for i, w := range g.targets {
		if w == selected {
			g.target = i
			return
		}
	}
	best := g.sim.Wires().BestWire()
	for i, w := range g.targets {
		if w == best {
			g.target = i
			return
		}
	}
}

func (g *Game) cycleTarget(delta int) {
	n := len(g.targets)
	if n == 0 {
		return
	}
	g.target = ((g.target+delta)%n + n) % n
}

// SelectedTarget returns the wire a manual jump would go to, or nil.
func (g *Game) SelectedTarget() *core.Wire {
	if g.target < 0 || g.target >= len(g.targets) {
		return nil
	}
	return g.targets[g.target]
}

func (g *Game) onEvent(ev core.Event) {
	switch ev.Type {
	case events.WireMissed:
		g.setFlash("MISSED")
	case events.MultiplierChanged:
		g.setFlash(fmt.Sprintf("MULTIPLIER x%d", ev.Multiplier))
	case events.PacketDespawned:
		if ev.Collected {
			g.setFlash("+DATA")
		}
	case events.BoostChanged:
		if ev.Boosting {
			g.setFlash("BOOST")
		}
	case events.GameOver:
		g.setFlash(ev.Reason)
	}
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashLeft = flashTicks
}

func onOff(name string, on bool) string {
	if on {
		return name + " ON"
	}
	return name + " OFF"
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.sim == nil {
		return platformcore.GameState{}
	}
	snap := g.sim.Snapshot()
	return platformcore.GameState{
		Score:    int(snap.Score),
		Stage:    snap.Stage,
		GameOver: snap.GameOver,
		Paused:   snap.Paused,
	}
}

// Simulation exposes the running simulation for telemetry and run storage.
func (g *Game) Simulation() *core.Simulation { return g.sim }

// Autopilot reports whether the bot is driving.
func (g *Game) Autopilot() bool { return g.autopilot }

// SetAutopilot hands control to the bot or back to the player.
func (g *Game) SetAutopilot(on bool) { g.autopilot = on }
