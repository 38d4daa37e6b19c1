// Package config loads a pkg/api/v1alpha1.SolverConfig from YAML/JSON and
// assembles the runtime collaborators (termination criteria, population
// strategy, operator catalogue, bandit learner) a solve run needs, the way
// the teacher's plugin registry turns a declarative config object into
// wired-up framework collaborators.
package config

import (
	"fmt"
	"io"
	"time"

	"sigs.k8s.io/yaml"

	apiv1 "github.com/vrpsolver/vrp/pkg/api/v1alpha1"
	"github.com/vrpsolver/vrp/pkg/evolution"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/framework/plugins/breaks"
	"github.com/vrpsolver/vrp/pkg/framework/plugins/capacity"
	"github.com/vrpsolver/vrp/pkg/framework/plugins/conditional"
	"github.com/vrpsolver/vrp/pkg/framework/plugins/dispatch"
	"github.com/vrpsolver/vrp/pkg/framework/plugins/reloads"
	"github.com/vrpsolver/vrp/pkg/framework/plugins/skills"
	"github.com/vrpsolver/vrp/pkg/framework/plugins/timing"
	"github.com/vrpsolver/vrp/pkg/insertion"
	"github.com/vrpsolver/vrp/pkg/learner"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/objective"
	"github.com/vrpsolver/vrp/pkg/population"
	"github.com/vrpsolver/vrp/pkg/ruin"
	"github.com/vrpsolver/vrp/pkg/util"
)

// Pipeline builds the reference constraint pipeline: every module whose
// construction needs nothing beyond the problem's own transport/activity
// cost oracles (timing, capacity, skills, breaks, dispatch, reloads,
// conditional). Depot-affinity, vehicle-relation locking, and per-vehicle
// travel limits are problem-specific (they need a depot place id, explicit
// job relations, or per-vehicle distance caps respectively) and are wired
// in by a caller that has that data, not by this generic default.
func Pipeline(transport model.TransportCost, activityCost model.ActivityCost) *framework.Pipeline {
	return framework.NewPipeline(
		timing.New(transport, activityCost),
		capacity.New(),
		skills.New(),
		breaks.New(),
		dispatch.New(),
		reloads.New(),
		conditional.New(),
	)
}

// Objective builds the reference composite objective of spec §1 over
// transport, with no optional terms enabled by default.
func Objective(transport model.TransportCost) *objective.Composite {
	return objective.New(transport)
}

// Load reads and validates a SolverConfig document from r.
func Load(r io.Reader) (*apiv1.SolverConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a SolverConfig populated with the reference defaults
// used when a document omits a section entirely.
func Default() *apiv1.SolverConfig {
	return &apiv1.SolverConfig{
		APIVersion: "vrpsolver/v1alpha1",
		Kind:       "SolverConfig",
		Termination: apiv1.TerminationConfig{
			MaxGenerations: 1000,
			MaxTimeSeconds: 60,
		},
		Population: apiv1.PopulationConfig{
			Strategy:        "nsga2",
			Capacity:        100,
			LearningRate:    0.2,
			GrowthThreshold: 0.05,
		},
		Learner: apiv1.LearnerConfig{
			Alpha:             0.3,
			Gamma:             0.6,
			Epsilon0:          0.3,
			AnnealGenerations: 200,
			StagnationWindow:  20,
			OffspringPerGen:   8,
			RegretK:           3,
			BlinkP:            0.15,
		},
		Parallelism: apiv1.ParallelismConfig{Full: true},
	}
}

// Validate enforces spec §7's ConfigurationError checks that belong to the
// config layer rather than model.Builder: an empty format, a termination
// section with no criterion at all, or an unrecognised population strategy.
func Validate(cfg *apiv1.SolverConfig) error {
	switch cfg.Format {
	case "solomon", "lilim", "tsplib", "pragmatic":
	default:
		return fmt.Errorf("config: unrecognised format %q", cfg.Format)
	}
	switch cfg.Population.Strategy {
	case "nsga2", "greedy", "rosomaxa":
	default:
		return fmt.Errorf("config: unrecognised population strategy %q", cfg.Population.Strategy)
	}
	t := cfg.Termination
	if t.MaxGenerations <= 0 && t.MaxTimeSeconds <= 0 && len(t.TargetFitness) == 0 && t.MaxUnassigned <= 0 {
		return fmt.Errorf("config: termination must declare at least one criterion")
	}
	return nil
}

// Termination builds the disjunctive Criterion set spec §4.I names, from
// whichever of the config's termination fields are set.
func Termination(cfg apiv1.TerminationConfig) evolution.Criterion {
	var criteria evolution.Any
	if cfg.MaxGenerations > 0 {
		criteria = append(criteria, evolution.MaxGenerations{Limit: cfg.MaxGenerations})
	}
	if cfg.MaxTimeSeconds > 0 {
		criteria = append(criteria, evolution.MaxTime{Limit: time.Duration(cfg.MaxTimeSeconds * float64(time.Second))})
	}
	if len(cfg.TargetFitness) > 0 {
		threshold := cfg.TargetThreshold
		if threshold <= 0 {
			threshold = 0.01
		}
		criteria = append(criteria, evolution.TargetProximity{Target: cfg.TargetFitness, Threshold: threshold})
	}
	if cfg.MaxUnassigned > 0 {
		limit := cfg.MaxUnassigned
		criteria = append(criteria, evolution.GoalSatisfied{Predicate: func(best []float64) bool {
			return len(best) > 0 && best[0] <= float64(limit)
		}})
	}
	return criteria
}

// Parallelism translates a ParallelismConfig into a util.ParallelismDegree.
func Parallelism(cfg apiv1.ParallelismConfig) util.ParallelismDegree {
	if cfg.Full {
		return util.FullParallelism()
	}
	return util.LimitedParallelism(cfg.Max)
}

// Population builds the configured population strategy, empty of
// individuals.
func Population(cfg apiv1.PopulationConfig) evolution.Population {
	switch cfg.Strategy {
	case "greedy":
		return population.NewGreedy()
	case "rosomaxa":
		learningRate, growthThreshold := cfg.LearningRate, cfg.GrowthThreshold
		if learningRate <= 0 {
			learningRate = 0.2
		}
		if growthThreshold <= 0 {
			growthThreshold = 0.05
		}
		maxNodes := cfg.Capacity
		if maxNodes <= 0 {
			maxNodes = 100
		}
		return population.NewRosomaxa(learningRate, growthThreshold, maxNodes)
	default:
		capacity := cfg.Capacity
		if capacity <= 0 {
			capacity = 100
		}
		return population.NewNSGAII(capacity)
	}
}

// Catalogue builds the reference ruin/recreate operator catalogue spec
// §4.J's learner picks from: every ruin operator of spec §4.G paired with
// every recreate heuristic of spec §4.F that takes no extra tuning beyond
// the config's RegretK/BlinkP. profile selects which transport-matrix space
// the distance-aware ruin operators (cluster, neighbour) query; callers with
// a multi-profile fleet should pass its primary/first profile.
func Catalogue(cfg apiv1.LearnerConfig, evaluator *insertion.Evaluator, transport model.TransportCost, profile model.Profile) []evolution.OperatorPair {
	regretK := cfg.RegretK
	if regretK <= 0 {
		regretK = 3
	}
	blinkP := cfg.BlinkP
	if blinkP <= 0 {
		blinkP = 0.15
	}

	ruinOps := []struct {
		name string
		op   ruin.Operator
	}{
		{"random-job", &ruin.RandomJobRemoval{Count: 3}},
		{"worst-job", &ruin.WorstJobRemoval{Count: 3, Transport: transport}},
		{"random-route", &ruin.RandomRouteRemoval{Count: 1}},
		{"adjacent-string", &ruin.AdjacentStringRemoval{Strings: 2, MinString: 2, MaxString: 5}},
		{"cluster", &ruin.ClusterRemoval{Transport: transport, Profile: profile, Eps: 10, MinPoints: 2, MaxRemoved: 8}},
		{"neighbour", &ruin.NeighbourRemoval{Count: 4, Transport: transport, Profile: profile}},
	}
	recreateOps := []struct {
		name string
		h    insertion.Heuristic
	}{
		{"cheapest", insertion.NewCheapestInsertion(evaluator)},
		{"regret", insertion.NewRegretInsertion(evaluator, regretK)},
		{"blink", insertion.NewBlinkInsertion(evaluator, blinkP)},
		{"perturbation", insertion.NewPerturbationInsertion(evaluator)},
	}

	var out []evolution.OperatorPair
	for _, r := range ruinOps {
		for _, c := range recreateOps {
			out = append(out, evolution.OperatorPair{
				Name:     r.name + "+" + c.name,
				Ruin:     r.op,
				Recreate: c.h,
			})
		}
	}
	return out
}

// Bandit builds the learner.Bandit over a catalogue of catalogueSize
// entries, seeded from rng.
func Bandit(cfg apiv1.LearnerConfig, catalogueSize int, rng util.RNG) *learner.Bandit {
	const numStates = 2 // learner.Improving, learner.Stagnating
	return learner.NewBandit(numStates, catalogueSize, cfg.Alpha, cfg.Gamma, cfg.Epsilon0, cfg.AnnealGenerations, rng.Split())
}
