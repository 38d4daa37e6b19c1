package evolution

import (
	"github.com/vrpsolver/vrp/pkg/insertion"
	"github.com/vrpsolver/vrp/pkg/learner"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/population"
	"github.com/vrpsolver/vrp/pkg/ruin"
)

// OperatorPair is one entry of the learner's (ruin, recreate) catalogue,
// per spec §4.J.
type OperatorPair struct {
	Name     string
	Ruin     ruin.Operator
	Recreate insertion.Heuristic
}

// learnedPlan is LearnedMutation's MutationPlan: the operator pair selected
// on the driver, and the learner.State/parent fitness that selection was
// made against, so Observe can later update the bandit against the same
// snapshot every offspring in a generation planned from.
type learnedPlan struct {
	action        learner.Action
	state         learner.State
	parentFitness float64
}

// LearnedMutation selects an (ruin, recreate) pair via a learner.Bandit in
// Plan, applies it in Apply, and reports the observed reward back to the
// bandit in Observe, implementing the full generation step 2/3/5 of spec
// §4.I across the three phases of Mutation. Plan and Observe are the only
// methods that read or write m's own state (state, streak, lastAction) or
// call into Bandit; both are called only from the driver goroutine, never
// from inside the parallel Apply fan-out.
type LearnedMutation struct {
	Catalogue        []OperatorPair
	Bandit           *learner.Bandit
	StagnationWindow int
	state            learner.State
	streak           int
	lastAction       learner.Action
	bestParent       func(sol *model.Solution) float64
}

// NewLearnedMutation builds a LearnedMutation over catalogue, driven by
// bandit, using primaryFitness to score a solution's dominant objective
// component for the reward computation.
func NewLearnedMutation(catalogue []OperatorPair, bandit *learner.Bandit, stagnationWindow int, primaryFitness func(sol *model.Solution) float64) *LearnedMutation {
	return &LearnedMutation{Catalogue: catalogue, Bandit: bandit, StagnationWindow: stagnationWindow, bestParent: primaryFitness}
}

// Plan selects the next operator pair from the bandit against the
// generation's current state and records ctx's parent fitness, all on the
// driver goroutine, before any offspring is applied.
func (m *LearnedMutation) Plan(ctx *model.InsertionContext) MutationPlan {
	action := m.Bandit.Select(m.state)
	return learnedPlan{
		action:        action,
		state:         m.state,
		parentFitness: m.bestParent(ctx.Solution),
	}
}

// Apply runs plan's selected operator pair's ruin then recreate over ctx,
// matching the ruin package's RuinAndRecreate orchestration. It touches only
// its arguments, so it is safe to call concurrently across offspring.
func (m *LearnedMutation) Apply(ctx *model.InsertionContext, plan MutationPlan) *model.InsertionContext {
	lp := plan.(learnedPlan)
	pair := m.Catalogue[lp.action]

	next := ctx.Clone()
	pair.Ruin.Run(next)
	pair.Recreate.Run(next)
	return next
}

// Observe scores offspring against plan's recorded parent fitness and
// updates the bandit, run back on the driver once Apply has finished.
func (m *LearnedMutation) Observe(plan MutationPlan, parent, offspring *model.InsertionContext) {
	lp := plan.(learnedPlan)

	offspringFitness := m.bestParent(offspring.Solution)
	reward := learner.Reward(lp.parentFitness, offspringFitness)

	if reward > 0 {
		m.streak = 0
	} else {
		m.streak++
	}
	nextState := learner.Bucketise(m.streak, m.StagnationWindow)
	m.Bandit.Update(lp.state, lp.action, reward, nextState)
	m.state = nextState
	m.lastAction = lp.action
}

// primaryObjectiveFitness is a convenience adapter for
// NewLearnedMutation's primaryFitness parameter: it scores sol via
// objective and takes the first (dominant) component of the resulting
// vector, matching spec §4.J's scalar reward over a vector-objective
// solver.
func primaryObjectiveFitness(objective model.Objective) func(sol *model.Solution) float64 {
	return func(sol *model.Solution) float64 {
		values := objective.Fitness(sol)
		if len(values) == 0 {
			return 0
		}
		return values[0]
	}
}

// PrimaryObjectiveFitness exposes primaryObjectiveFitness to callers
// outside the package.
func PrimaryObjectiveFitness(objective model.Objective) func(sol *model.Solution) float64 {
	return primaryObjectiveFitness(objective)
}

var (
	_ Mutation   = (*LearnedMutation)(nil)
	_ Population = (*population.NSGAII)(nil)
	_ Population = (*population.Greedy)(nil)
	_ Population = (*population.Rosomaxa)(nil)
)
