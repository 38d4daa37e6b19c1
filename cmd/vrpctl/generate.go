package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var (
	generateOutResult     string
	generateCustomerCount int
	generateVehicleCount  int
	generateCapacity      int
	generateSeed          int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Synthesize a random Solomon-format benchmark instance",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateOutResult, "out-result", "", "output path (default: stdout)")
	generateCmd.Flags().IntVar(&generateCustomerCount, "customers", 25, "number of customers to generate")
	generateCmd.Flags().IntVar(&generateVehicleCount, "vehicles", 5, "fleet size declared in the generated instance")
	generateCmd.Flags().IntVar(&generateCapacity, "capacity", 200, "per-vehicle capacity declared in the generated instance")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 1, "random seed")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if generateCustomerCount < 1 {
		return asInputError(fmt.Errorf("--customers must be at least 1"))
	}

	out, closeOut, err := openOutput(generateOutResult)
	if err != nil {
		return err
	}
	defer closeOut()

	src := rand.New(rand.NewSource(uint64(generateSeed)))
	const gridSize = 100.0

	fmt.Fprintln(out, "vrpctl-generated")
	fmt.Fprintln(out, "VEHICLE")
	fmt.Fprintln(out, "NUMBER     CAPACITY")
	fmt.Fprintf(out, "%d          %d\n", generateVehicleCount, generateCapacity)
	fmt.Fprintln(out, "CUSTOMER")
	fmt.Fprintln(out, "CUST NO.  XCOORD.  YCOORD.  DEMAND  READY TIME  DUE DATE  SERVICE TIME")
	fmt.Fprintln(out)
	// Depot: centred, open all day, no demand.
	fmt.Fprintf(out, "%d %g %g %d %g %g %g\n", 0, gridSize/2, gridSize/2, 0, 0.0, 1000.0, 0.0)

	for i := 1; i <= generateCustomerCount; i++ {
		x := src.Float64() * gridSize
		y := src.Float64() * gridSize
		demand := 1 + int(src.Int63()%int64(generateCapacity/4+1))
		ready := src.Float64() * 500
		due := ready + 100 + src.Float64()*400
		service := 10 + src.Float64()*20
		fmt.Fprintf(out, "%d %g %g %d %g %g %g\n", i, x, y, demand, ready, due, service)
	}
	return nil
}
