// Package evolution implements the generation loop of spec §4.I: each
// generation draws a parent from the population, applies a ruin-and-
// recreate mutation, scores the result, and admits it back into the
// population, until any configured Criterion fires. The loop structure
// (poll a cancellation quota at each safepoint, never return a partially
// mutated solution) follows spec §1's cancellation contract; the
// parallel-generation fan-out reuses pkg/util.MapReduce, the same
// map-reduce helper the teacher's NSGA-II uses its own worker-pool
// equivalent for (pkg/framework/plugins/multiobjective/algorithms/nsga2.go
// generateOffspringPair).
package evolution

import "time"

// Criterion is one of spec §4.I's disjunctive termination conditions.
// IsReached is polled at generation boundaries (and, for Quota
// implementations, optionally between parallel chunks).
type Criterion interface {
	IsReached(state State) bool
}

// State is the read-only snapshot a Criterion inspects.
type State struct {
	Generation  int
	Started     time.Time
	BestFitness []float64
}

// MaxGenerations fires once Generation reaches Limit.
type MaxGenerations struct{ Limit int }

func (c MaxGenerations) IsReached(s State) bool { return s.Generation >= c.Limit }

// MaxTime fires once wall-clock time since State.Started reaches Limit.
type MaxTime struct{ Limit time.Duration }

func (c MaxTime) IsReached(s State) bool { return time.Since(s.Started) >= c.Limit }

// TargetProximity fires once the relative distance of BestFitness to
// Target drops below Threshold, component-wise averaged.
type TargetProximity struct {
	Target    []float64
	Threshold float64
}

func (c TargetProximity) IsReached(s State) bool {
	if len(s.BestFitness) == 0 || len(c.Target) != len(s.BestFitness) {
		return false
	}
	total := 0.0
	for i, target := range c.Target {
		denom := target
		if denom == 0 {
			denom = 1
		}
		rel := (s.BestFitness[i] - target) / denom
		if rel < 0 {
			rel = -rel
		}
		total += rel
	}
	return total/float64(len(c.Target)) < c.Threshold
}

// GoalSatisfied fires once a problem-specific predicate over the best
// fitness vector holds (e.g. "no unassigned jobs and vehicle count <= K").
type GoalSatisfied struct {
	Predicate func(bestFitness []float64) bool
}

func (c GoalSatisfied) IsReached(s State) bool {
	if c.Predicate == nil {
		return false
	}
	return c.Predicate(s.BestFitness)
}

// Quota is an external cancellation sink (e.g. a CLI interrupt), wired to
// apierrors.Cancelled at the caller: once IsReached returns true the loop
// exits at the next safepoint and returns the current population, never a
// partially-mutated solution.
type Quota interface {
	IsReached(s State) bool
}

// QuotaFunc adapts a plain function to Quota/Criterion.
type QuotaFunc func(s State) bool

func (f QuotaFunc) IsReached(s State) bool { return f(s) }

// Any is satisfied once any one of its member criteria is.
type Any []Criterion

func (a Any) IsReached(s State) bool {
	for _, c := range a {
		if c.IsReached(s) {
			return true
		}
	}
	return false
}
