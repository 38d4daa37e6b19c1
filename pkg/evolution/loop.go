package evolution

import (
	"time"

	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/population"
	"github.com/vrpsolver/vrp/pkg/util"
)

// Population is the subset of pkg/population's three strategies the loop
// needs: admit a scored individual, read back the current incumbent.
type Population interface {
	Add(ind *population.Individual)
	Best() *population.Individual
	All() []*population.Individual
}

// MutationPlan is an opaque token a Mutation hands back from Plan and
// receives again in Apply/Observe; its contents are implementation-specific
// (e.g. LearnedMutation's selected operator pair and parent fitness).
type MutationPlan interface{}

// Mutation turns one working InsertionContext into another, independent
// one, split into three phases so that any stateful bookkeeping (a
// learner's Q-table, a bandit's RNG) is only ever touched from the driver
// goroutine, never from a parallel worker (spec §5): Plan runs on the
// driver before the offspring fan-out and may pick an operator/advance
// internal state; Apply does the actual (possibly expensive) mutation work
// and must be safe to call concurrently across offspring; Observe runs back
// on the driver once Apply has finished and may record the outcome (e.g. a
// reward update). pkg/ruin.RuinAndRecreate via LearnedMutation is the only
// implementation spec §4.G/F name, but the loop only depends on this
// narrow interface.
type Mutation interface {
	Plan(ctx *model.InsertionContext) MutationPlan
	Apply(ctx *model.InsertionContext, plan MutationPlan) *model.InsertionContext
	Observe(plan MutationPlan, parent, offspring *model.InsertionContext)
}

// offspringJob pairs one offspring's working context with the MutationPlan
// already selected for it on the driver, so the parallel Apply phase and the
// driver-side Observe phase both know which plan belongs to which context.
type offspringJob struct {
	ctx  *model.InsertionContext
	plan MutationPlan
}

// Observer receives one notification per completed generation, used by
// pkg/telemetry to emit metrics/traces/log lines without the loop itself
// depending on any observability library.
type Observer interface {
	OnGeneration(gen int, best *population.Individual, elapsed time.Duration)
}

// Config bundles everything one evolution Run needs beyond the initial
// population.
type Config struct {
	Problem      *model.Problem
	Mutation     Mutation
	Termination  Criterion
	Parallelism  util.ParallelismDegree
	OffspringPer int // offspring generated per generation before selection
	Observer     Observer
}

// Run drives the generation loop from seed (already admitted into pop)
// until Termination fires, returning the final population.
func Run(pop Population, cfg Config, seedRandom util.RNG) Population {
	state := State{Started: timeNow()}
	if best := pop.Best(); best != nil {
		state.BestFitness = best.Value
	}

	for !cfg.Termination.IsReached(state) {
		genStart := timeNow()
		parents := pop.All()
		if len(parents) == 0 {
			break
		}

		offspringCount := cfg.OffspringPer
		if offspringCount < 1 {
			offspringCount = 1
		}

		// Planning happens here, sequentially on the driver: every RNG
		// stream is split off seedRandom before any worker starts, and
		// every Mutation.Plan call (which may touch learner state) runs
		// before the parallel fan-out below touches anything shared.
		jobs := make([]offspringJob, offspringCount)
		for i := range jobs {
			parent := parents[i%len(parents)]
			ctx := &model.InsertionContext{Problem: cfg.Problem, Solution: parent.Solution.Clone(), Random: seedRandom.Split()}
			jobs[i] = offspringJob{ctx: ctx, plan: cfg.Mutation.Plan(ctx)}
		}

		// Apply is the only phase that runs across workers; it touches
		// nothing but the job's own ctx/plan, so it is safe to parallelise.
		offspring := util.MapReduce(cfg.Parallelism, jobs,
			func(j offspringJob) *model.InsertionContext {
				return cfg.Mutation.Apply(j.ctx, j.plan)
			},
			make([]*model.InsertionContext, 0, offspringCount),
			func(acc []*model.InsertionContext, ctx *model.InsertionContext) []*model.InsertionContext {
				return append(acc, ctx)
			},
		)

		// Observe runs back on the driver, sequentially, in job order: this
		// is where a Mutation may safely update shared state (e.g. a
		// learner's Q-table) from the observed outcome.
		for i, ctx := range offspring {
			cfg.Mutation.Observe(jobs[i].plan, jobs[i].ctx, ctx)
			cfg.Problem.Pipeline.AcceptSolutionState(ctx.Solution)
			pop.Add(population.NewIndividual(ctx.Solution, cfg.Problem.Objective))
		}

		state.Generation++
		if best := pop.Best(); best != nil {
			state.BestFitness = best.Value
		}
		if cfg.Observer != nil {
			cfg.Observer.OnGeneration(state.Generation, pop.Best(), timeNow().Sub(genStart))
		}
	}
	return pop
}

// timeNow is the loop's sole time source, isolated so tests can stub it if
// needed; production code just forwards to time.Now.
var timeNow = time.Now
