// Package learner implements the heuristic-operator learner of spec §4.J:
// an online MDP bandit over a catalogue of (ruin, recreate) operator pairs,
// picking an action per generation and updating its value estimate from the
// observed reward, seeded deterministically off the shared RNG (spec §1).
package learner

import (
	"math"

	"github.com/vrpsolver/vrp/pkg/util"
)

// State is a coarse bucketisation of the solver's recent trajectory, per
// spec §4.J ("e.g., improvement/stagnation streak").
type State int

const (
	// Improving marks a recent run of reward-positive generations.
	Improving State = iota
	// Stagnating marks a recent run of non-positive-reward generations.
	Stagnating
)

// Bucketise classifies a reward streak into a State: threshold or more
// consecutive non-positive rewards (negative streak) means Stagnating, anything else
// Improving.
func Bucketise(consecutiveNonPositive, threshold int) State {
	if consecutiveNonPositive >= threshold {
		return Stagnating
	}
	return Improving
}

// Action identifies one (ruin, recreate) pair in the operator catalogue by
// index.
type Action int

// Bandit is a tabular Q-learning MDP bandit over (State, Action): value
// update q' = q + alpha*(reward + gamma*max_next - q), policy epsilon-greedy
// with linear annealing toward 0 over AnnealGenerations, per spec §4.J.
type Bandit struct {
	Alpha            float64
	Gamma            float64
	Epsilon0         float64
	AnnealGenerations int
	NumActions       int
	NumStates        int

	q         [][]float64
	rng       util.RNG
	generation int
}

// NewBandit builds a bandit over numStates x numActions, seeded from rng
// (itself a deterministic split of the run's global RNG per spec §1).
func NewBandit(numStates, numActions int, alpha, gamma, epsilon0 float64, annealGenerations int, rng util.RNG) *Bandit {
	q := make([][]float64, numStates)
	for i := range q {
		q[i] = make([]float64, numActions)
	}
	return &Bandit{
		Alpha:             alpha,
		Gamma:             gamma,
		Epsilon0:          epsilon0,
		AnnealGenerations: annealGenerations,
		NumActions:        numActions,
		NumStates:         numStates,
		q:                 q,
		rng:               rng,
	}
}

// epsilon returns the current exploration rate, linearly annealed from
// Epsilon0 toward 0 across AnnealGenerations.
func (b *Bandit) epsilon() float64 {
	if b.AnnealGenerations <= 0 {
		return b.Epsilon0
	}
	frac := float64(b.generation) / float64(b.AnnealGenerations)
	if frac > 1 {
		frac = 1
	}
	return b.Epsilon0 * (1 - frac)
}

// Select picks an action for state: with probability epsilon, uniformly at
// random (exploration); otherwise the action with the highest q-value,
// ties broken toward the lowest index for determinism.
func (b *Bandit) Select(state State) Action {
	if b.rng.IsHit(b.epsilon()) {
		return Action(b.rng.UniformInt(0, b.NumActions-1))
	}
	row := b.q[state]
	best := 0
	for i := 1; i < len(row); i++ {
		if row[i] > row[best] {
			best = i
		}
	}
	return Action(best)
}

// SelectSoftmax is the weighted-sampling alternative spec §4.J names:
// action probability proportional to exp(q), rather than epsilon-greedy.
func (b *Bandit) SelectSoftmax(state State) Action {
	row := b.q[state]
	weights := make([]int, len(row))
	maxQ := row[0]
	for _, q := range row {
		if q > maxQ {
			maxQ = q
		}
	}
	const scale = 1000
	for i, q := range row {
		w := int(math.Exp(q-maxQ) * scale)
		if w < 1 {
			w = 1
		}
		weights[i] = w
	}
	return Action(b.rng.Weighted(weights))
}

// Update applies the Q-learning rule for the (state, action) pair that
// produced reward, transitioning to nextState: q' = q + alpha*(reward +
// gamma*max_next - q). Non-positive rewards are valid and shrink q.
func (b *Bandit) Update(state State, action Action, reward float64, nextState State) {
	maxNext := b.q[nextState][0]
	for _, q := range b.q[nextState] {
		if q > maxNext {
			maxNext = q
		}
	}
	old := b.q[state][action]
	b.q[state][action] = old + b.Alpha*(reward+b.Gamma*maxNext-old)
	b.generation++
}

// Reward computes spec §4.J's reward: max(0, bestParentFitness -
// offspringFitness), assuming lower fitness is better.
func Reward(bestParentFitness, offspringFitness float64) float64 {
	r := bestParentFitness - offspringFitness
	if r < 0 {
		return 0
	}
	return r
}
