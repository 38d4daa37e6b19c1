package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	vrpconfig "github.com/vrpsolver/vrp/pkg/config"
	"github.com/vrpsolver/vrp/pkg/evolution"
	"github.com/vrpsolver/vrp/pkg/insertion"
	"github.com/vrpsolver/vrp/pkg/io/pragmatic"
	"github.com/vrpsolver/vrp/pkg/io/writer"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/population"
	"github.com/vrpsolver/vrp/pkg/telemetry"
	"github.com/vrpsolver/vrp/pkg/util"
)

var (
	solveFormat         string
	solveInputFiles     []string
	solveOutResult      string
	solveConfigFile     string
	solveSeed           int64
	solveMaxGenerations int
	solveMaxTimeSeconds float64
	solveTSPLIBVehicles int
	solveVerbose        bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run the ruin-and-recreate solver over a problem instance",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveFormat, "format", "solomon", "input format: solomon|lilim|tsplib|pragmatic")
	solveCmd.Flags().StringSliceVar(&solveInputFiles, "input-files", nil, "input file(s); pragmatic accepts the problem doc followed by one matrix file per profile")
	solveCmd.Flags().StringVar(&solveOutResult, "out-result", "", "output path (default: stdout)")
	solveCmd.Flags().StringVar(&solveConfigFile, "config", "", "solver config YAML/JSON; --format/--input-files/--out-result override its fields when set")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 1, "random seed")
	solveCmd.Flags().IntVar(&solveMaxGenerations, "max-generations", 0, "override termination.maxGenerations (0 = use config)")
	solveCmd.Flags().Float64Var(&solveMaxTimeSeconds, "max-time-seconds", 0, "override termination.maxTimeSeconds (0 = use config)")
	solveCmd.Flags().IntVar(&solveTSPLIBVehicles, "tsplib-vehicles", 1, "vehicle count for tsplib instances")
	solveCmd.Flags().BoolVar(&solveVerbose, "verbose", false, "include unassigned jobs in the report instead of refusing to write one")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveSolveConfig()
	if err != nil {
		return err
	}

	problem, transport, err := parseProblem(cfg.Format, cfg.InputFiles, solveTSPLIBVehicles)
	if err != nil {
		return err
	}

	pipeline := vrpconfig.Pipeline(transport, problem.ActivityCost)
	problem.Pipeline = pipeline
	problem.Objective = vrpconfig.Objective(transport)

	primaryProfile := model.Profile("default")
	if len(problem.Fleet.Profiles) > 0 {
		primaryProfile = problem.Fleet.Profiles[0]
	}

	evaluator := insertion.New(pipeline, transport, problem.ActivityCost)
	catalogue := vrpconfig.Catalogue(cfg.Learner, evaluator, transport, primaryProfile)
	rng := util.NewDefaultRNG(uint64(cfg.Seed))
	bandit := vrpconfig.Bandit(cfg.Learner, len(catalogue), rng.Split())
	mutation := evolution.NewLearnedMutation(catalogue, bandit, cfg.Learner.StagnationWindow, evolution.PrimaryObjectiveFitness(problem.Objective))

	pop := vrpconfig.Population(cfg.Population)
	seed := model.NewSolution(problem)
	seedCtx := &model.InsertionContext{Problem: problem, Solution: seed, Random: rng.Split()}
	insertion.NewCheapestInsertion(evaluator).Run(seedCtx)
	pipeline.AcceptSolutionState(seedCtx.Solution)
	pop.Add(population.NewIndividual(seedCtx.Solution, problem.Objective))

	ctx := cmd.Context()
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	observer := telemetry.NewObserver(ctx, klog.FromContext(ctx), metrics)

	result := evolution.Run(pop, evolution.Config{
		Problem:      problem,
		Mutation:     mutation,
		Termination:  vrpconfig.Termination(cfg.Termination),
		Parallelism:  vrpconfig.Parallelism(cfg.Parallelism),
		OffspringPer: cfg.Learner.OffspringPerGen,
		Observer:     observer,
	}, rng)

	best := result.Best()
	if best == nil {
		return fmt.Errorf("solve: population produced no individual")
	}

	out, closeOut, err := openOutput(cfg.OutResult)
	if err != nil {
		return err
	}
	defer closeOut()

	totalCost := best.Value[2]
	if cfg.Format == "pragmatic" {
		return pragmatic.SerialiseSolution(out, best.Solution, totalCost)
	}
	if solveVerbose {
		return writer.WriteVerbose(out, best.Solution, totalCost)
	}
	return writer.Write(out, best.Solution, totalCost)
}
