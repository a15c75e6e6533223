// Package training runs the Q-learning episode loop against the course
// simulator and reports progress.
package training

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/textdrive/internal/core"
	"github.com/vovakirdan/textdrive/internal/course"
	"github.com/vovakirdan/textdrive/internal/qlearn"
)

// Config controls a training run.
type Config struct {
	Episodes    int
	MaxSteps    int // Per-episode step cap
	ReportEvery int
	WindowSize  int
	TablePath   string // Saved after the run when non-empty
}

// DefaultConfig returns the standard 50k-episode schedule.
func DefaultConfig() Config {
	return Config{
		Episodes:    50000,
		MaxSteps:    10000,
		ReportEvery: 500,
		WindowSize:  500,
		TablePath:   "qtable.bin",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Episodes <= 0 {
		c.Episodes = d.Episodes
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = d.MaxSteps
	}
	if c.ReportEvery <= 0 {
		c.ReportEvery = d.ReportEvery
	}
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	return c
}

// Summary describes a finished (or interrupted) run.
type Summary struct {
	Episodes  int
	BestScore int
	Average   float64
	Epsilon   float64
	Duration  time.Duration
}

// Trainer owns one simulator and drives the agent through episodes.
type Trainer struct {
	cfg      Config
	agent    *qlearn.Agent
	sim      *course.Simulator
	window   *Window
	reporter Reporter
	episode  int
}

// New prepares a trainer. rng feeds the course; the agent keeps its own
// reference for exploration, normally the same stream.
func New(cfg Config, agent *qlearn.Agent, rng core.Rand, reporters ...Reporter) *Trainer {
	cfg = cfg.withDefaults()
	return &Trainer{
		cfg:      cfg,
		agent:    agent,
		sim:      course.New(rng),
		window:   NewWindow(cfg.WindowSize),
		reporter: MultiReporter(reporters),
	}
}

// Config returns the effective configuration.
func (t *Trainer) Config() Config { return t.cfg }

// Agent returns the agent being trained.
func (t *Trainer) Agent() *qlearn.Agent { return t.agent }

// Window returns the rolling distance window.
func (t *Trainer) Window() *Window { return t.window }

// RunEpisode plays one episode from a fresh course and returns the distance
// reached. Within a step the action is applied before the scroll and the
// reward is read after it.
func (t *Trainer) RunEpisode() (int, error) {
	t.sim.Reset()

	for step := 0; step < t.cfg.MaxSteps; step++ {
		s := qlearn.Encode(t.sim)
		act, err := t.agent.ChooseAction(s)
		if err != nil {
			return 0, err
		}

		qlearn.ApplyAction(t.sim, act)
		t.sim.Advance()

		reward := qlearn.Reward(t.sim)
		next := qlearn.Encode(t.sim)
		if err := t.agent.Update(s, act, reward, next); err != nil {
			return 0, err
		}

		if t.sim.HasCollision() {
			t.sim.MarkOver()
			break
		}
	}

	distance := t.sim.Distance()
	t.agent.RecordEpisode(distance)
	t.window.Add(distance)
	t.agent.DecayEpsilon()
	t.episode++
	return distance, nil
}

func (t *Trainer) progress() Progress {
	return Progress{
		Episode:   t.episode,
		BestScore: t.agent.BestScore(),
		Average:   t.window.Average(),
		Epsilon:   t.agent.Epsilon(),
	}
}

// Run trains for the configured number of episodes. Cancellation is checked
// between episodes; the table is still saved when the run stops early.
func (t *Trainer) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	runErr := t.loop(ctx)

	if t.cfg.TablePath != "" && t.episode > 0 {
		if err := t.agent.Save(t.cfg.TablePath); err != nil {
			if runErr == nil {
				runErr = err
			}
		}
	}

	p := t.progress()
	return Summary{
		Episodes:  t.episode,
		BestScore: p.BestScore,
		Average:   p.Average,
		Epsilon:   p.Epsilon,
		Duration:  time.Since(start),
	}, runErr
}

func (t *Trainer) loop(ctx context.Context) error {
	for i := 0; i < t.cfg.Episodes; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.RunEpisode(); err != nil {
			return fmt.Errorf("training: episode %d: %w", t.episode+1, err)
		}
		if t.episode%t.cfg.ReportEvery == 0 {
			if err := t.reporter.Report(t.progress()); err != nil {
				return fmt.Errorf("training: report: %w", err)
			}
		}
	}
	return nil
}
