package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	analyzeFormat         string
	analyzeInputFiles     []string
	analyzeTSPLIBVehicles int
	analyzeOutResult      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print summary statistics for a problem instance",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "solomon", "input format: solomon|lilim|tsplib|pragmatic")
	analyzeCmd.Flags().StringSliceVar(&analyzeInputFiles, "input-files", nil, "input file(s)")
	analyzeCmd.Flags().IntVar(&analyzeTSPLIBVehicles, "tsplib-vehicles", 1, "vehicle count for tsplib instances")
	analyzeCmd.Flags().StringVar(&analyzeOutResult, "out-result", "", "output path (default: stdout)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	problem, _, err := parseProblem(analyzeFormat, analyzeInputFiles, analyzeTSPLIBVehicles)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(analyzeOutResult)
	if err != nil {
		return err
	}
	defer closeOut()

	demand := make(map[string]int)
	for _, job := range problem.Jobs {
		for dim, qty := range job.Dimensions().GetDemand() {
			demand[dim] += qty
		}
	}
	capacity := make(map[string]int)
	for _, v := range problem.Fleet.Vehicles {
		for dim, qty := range v.Dims.GetCapacity() {
			capacity[dim] += qty
		}
	}

	fmt.Fprintf(out, "jobs: %d\n", len(problem.Jobs))
	fmt.Fprintf(out, "vehicles: %d\n", len(problem.Fleet.Vehicles))
	fmt.Fprintf(out, "actors: %d\n", len(problem.Fleet.Actors))
	fmt.Fprintf(out, "profiles: %d\n", len(problem.Fleet.Profiles))

	dims := make([]string, 0, len(demand))
	for dim := range demand {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		fmt.Fprintf(out, "demand[%s]: %d (fleet capacity: %d)\n", dim, demand[dim], capacity[dim])
	}
	return nil
}
