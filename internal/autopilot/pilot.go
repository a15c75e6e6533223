// Package autopilot drives the car with a trained agent's greedy policy.
package autopilot

import (
	"github.com/vovakirdan/textdrive/internal/core"
	"github.com/vovakirdan/textdrive/internal/qlearn"
)

// Vehicle is a course the pilot can both read and steer.
type Vehicle interface {
	qlearn.Grid
	qlearn.Mover
}

// Pilot picks moves without exploring or learning. Several pilots may share
// one agent as long as nothing trains it.
type Pilot struct {
	agent *qlearn.Agent
}

// New wraps an agent for inference.
func New(agent *qlearn.Agent) *Pilot {
	return &Pilot{agent: agent}
}

// Load reads a table from path. Callers treat an error as "no pilot".
func Load(path string) (*Pilot, error) {
	agent, err := qlearn.LoadAgent(path, core.NewRand(1))
	if err != nil {
		return nil, err
	}
	return New(agent), nil
}

// Agent returns the underlying agent.
func (p *Pilot) Agent() *qlearn.Agent { return p.agent }

// Decide returns the greedy action for the current view.
func (p *Pilot) Decide(g qlearn.Grid) (qlearn.Action, error) {
	return p.agent.BestAction(qlearn.Encode(g))
}

// Drive decides and applies the move to v.
func (p *Pilot) Drive(v Vehicle) (qlearn.Action, error) {
	act, err := p.Decide(v)
	if err != nil {
		return qlearn.Stay, err
	}
	qlearn.ApplyAction(v, act)
	return act, nil
}
