// Package drive implements live play: the course scrolls on a timer while the
// player or the autopilot steers.
package drive

import (
	"math"

	"github.com/vovakirdan/textdrive/internal/autopilot"
	"github.com/vovakirdan/textdrive/internal/config"
	"github.com/vovakirdan/textdrive/internal/core"
	"github.com/vovakirdan/textdrive/internal/course"
	"github.com/vovakirdan/textdrive/internal/qlearn"
)

// Options configure a Game.
type Options struct {
	Play config.PlayConfig

	// Pilot is an already loaded autopilot. When nil, LoadPilot is called
	// the first time AI mode is requested.
	Pilot     *autopilot.Pilot
	LoadPilot func() (*autopilot.Pilot, error)

	AIMode bool // Start with the autopilot driving
}

// Game is one live-play session. It is driven by a single goroutine.
type Game struct {
	opts       Options
	runtime    core.RuntimeConfig
	rng        core.Rand
	sim        *course.Simulator
	difficulty *config.DifficultyManager
	pilot      *autopilot.Pilot
	loadErr    error // Last failed pilot load
	aiMode     bool
	paused     bool
	tickCount  int // Ticks since reset
	sinceMove  int // Ticks since the last scroll
	lastAction qlearn.Action
}

// New creates a game. Call Reset before the first Step.
func New(opts Options) *Game {
	g := &Game{
		opts:       opts,
		pilot:      opts.Pilot,
		difficulty: config.NewDifficultyManager(opts.Play.Difficulty),
		lastAction: qlearn.Stay,
	}
	if opts.AIMode {
		g.setAI(true)
	}
	return g
}

// ID returns the storage mode for the current driver.
func (g *Game) ID() string {
	if g.aiMode {
		return "ai"
	}
	return "manual"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "TextDrive"
}

// Reset starts a new course. AI mode and a loaded pilot survive restarts.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = g.opts.Play.TickRate
	}
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime

	if g.rng == nil || runtime.Seed != 0 {
		g.rng = core.NewRand(runtime.Seed)
	}
	g.sim = course.New(g.rng)

	g.paused = false
	g.tickCount = 0
	g.sinceMove = 0
	g.lastAction = qlearn.Stay
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionToggleAI) {
		g.setAI(!g.aiMode)
	}

	if g.sim.IsOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	// Manual steering applies immediately
	if !g.aiMode {
		if in.Has(core.ActionLeft) {
			g.sim.Move(-1)
		}
		if in.Has(core.ActionRight) {
			g.sim.Move(1)
		}
	}

	g.sinceMove++
	if g.sinceMove >= g.scrollTicks() {
		g.sinceMove = 0
		if g.aiMode && g.pilot != nil {
			// Decide on the view the car is about to drive into
			if act, err := g.pilot.Drive(g.sim); err == nil {
				g.lastAction = act
			}
		}
		g.sim.Advance()
	}

	if g.sim.HasCollision() {
		g.sim.MarkOver()
	}

	return core.StepResult{State: g.State()}
}

// setAI switches the driver. Turning AI on loads the pilot on first use and
// stays in manual mode when no table is available.
func (g *Game) setAI(on bool) {
	if !on {
		g.aiMode = false
		return
	}
	if g.pilot == nil && g.opts.LoadPilot != nil {
		p, err := g.opts.LoadPilot()
		if err != nil {
			g.loadErr = err
			return
		}
		g.pilot = p
		g.loadErr = nil
	}
	if g.pilot != nil {
		g.aiMode = true
	}
}

// scrollTicks converts the current scroll delay into ticks, at least one.
func (g *Game) scrollTicks() int {
	delay := g.difficulty.ScrollDelay(g.opts.Play.BaseScrollDelay(), g.sim.Distance(), g.tickCount)
	n := int(math.Round(delay.Seconds() * float64(g.runtime.TickRate)))
	if n < 1 {
		n = 1
	}
	return n
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.sim.Distance(),
		GameOver: g.sim.IsOver(),
		Paused:   g.paused,
		AIMode:   g.aiMode,
	}
}

// Course exposes the simulator for inspection.
func (g *Game) Course() *course.Simulator { return g.sim }

// PilotError returns the last pilot load failure, if any.
func (g *Game) PilotError() error { return g.loadErr }

// HasPilot reports whether an autopilot is loaded.
func (g *Game) HasPilot() bool { return g.pilot != nil }

// LastAction returns the autopilot's most recent decision.
func (g *Game) LastAction() qlearn.Action { return g.lastAction }
