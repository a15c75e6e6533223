// Package qlearn implements the tabular Q-learning driver: state encoding,
// the epsilon-greedy policy, the Bellman update and table persistence.
package qlearn

import (
	"github.com/vovakirdan/textdrive/internal/core"
)

// Learning constants.
const (
	Alpha          = 0.2    // Learning rate
	Gamma          = 0.95   // Discount factor
	EpsilonDecay   = 0.9995 // Per-episode exploration decay
	InitialEpsilon = 1.0

	CollisionReward = -100.0
	SurvivalReward  = 1.0
)

// Agent owns the Q-table and the exploration rate.
// It is not safe for concurrent mutation; concurrent BestAction calls are fine
// while nothing trains.
type Agent struct {
	q         []float64 // StateCount*ActionCount, state-major
	rng       core.Rand
	epsilon   float64
	bestScore int32
	episodes  uint64
}

// NewAgent returns an untrained agent with a zeroed table and full exploration.
func NewAgent(rng core.Rand) *Agent {
	return &Agent{
		q:       make([]float64, StateCount*ActionCount),
		rng:     rng,
		epsilon: InitialEpsilon,
	}
}

// values returns the three action values of s. s must be valid.
func (a *Agent) values(s StateID) []float64 {
	i := int(s) * ActionCount
	return a.q[i : i+ActionCount : i+ActionCount]
}

// BestAction returns the greedy action for s. Ties go to the lowest ordinal:
// only a strictly greater value replaces the incumbent.
func (a *Agent) BestAction(s StateID) (Action, error) {
	if err := checkState(s); err != nil {
		return Stay, err
	}
	v := a.values(s)
	best := Left
	for act := Stay; act <= Right; act++ {
		if v[act] > v[best] {
			best = act
		}
	}
	return best, nil
}

// ChooseAction is the epsilon-greedy policy: a uniformly random action with
// probability epsilon, otherwise BestAction.
func (a *Agent) ChooseAction(s StateID) (Action, error) {
	if err := checkState(s); err != nil {
		return Stay, err
	}
	if a.rng.Float64() < a.epsilon {
		return Action(a.rng.Intn(ActionCount)), nil
	}
	return a.BestAction(s)
}

// Update applies the Q-learning rule for the transition s --act--> next:
//
//	Q[s,a] += Alpha * (reward + Gamma*max Q[next,·] - Q[s,a])
//
// next must describe the world after the action and the scroll.
func (a *Agent) Update(s StateID, act Action, reward float64, next StateID) error {
	if err := checkState(s); err != nil {
		return err
	}
	if err := checkState(next); err != nil {
		return err
	}
	if !act.Valid() {
		panic("qlearn: invalid action " + act.String())
	}

	nv := a.values(next)
	maxNext := nv[0]
	if nv[1] > maxNext {
		maxNext = nv[1]
	}
	if nv[2] > maxNext {
		maxNext = nv[2]
	}

	v := a.values(s)
	current := v[act]
	target := reward + Gamma*maxNext
	v[act] = current + Alpha*(target-current)
	return nil
}

// DecayEpsilon shrinks the exploration rate once. It never goes negative.
func (a *Agent) DecayEpsilon() {
	a.epsilon *= EpsilonDecay
	if a.epsilon < 0 {
		a.epsilon = 0
	}
}

// RecordEpisode counts a finished episode and keeps the best distance.
func (a *Agent) RecordEpisode(distance int) {
	if int32(distance) > a.bestScore {
		a.bestScore = int32(distance)
	}
	a.episodes++
}

// Q returns the stored value for (s, act).
func (a *Agent) Q(s StateID, act Action) (float64, error) {
	if err := checkState(s); err != nil {
		return 0, err
	}
	return a.values(s)[act], nil
}

// Epsilon returns the current exploration rate.
func (a *Agent) Epsilon() float64 { return a.epsilon }

// BestScore returns the longest episode distance seen so far.
func (a *Agent) BestScore() int { return int(a.bestScore) }

// Episodes returns the number of episodes trained.
func (a *Agent) Episodes() uint64 { return a.episodes }

// VisitedStates counts states whose values are not all zero.
func (a *Agent) VisitedStates() int {
	n := 0
	for s := StateID(0); s < StateCount; s++ {
		v := a.values(s)
		if v[0] != 0 || v[1] != 0 || v[2] != 0 {
			n++
		}
	}
	return n
}
