package main

import (
	"fmt"
	"os"

	apiv1 "github.com/vrpsolver/vrp/pkg/api/v1alpha1"
	"github.com/vrpsolver/vrp/pkg/io/lilim"
	"github.com/vrpsolver/vrp/pkg/io/pragmatic"
	"github.com/vrpsolver/vrp/pkg/io/solomon"
	"github.com/vrpsolver/vrp/pkg/io/tsplib"
	"github.com/vrpsolver/vrp/pkg/model"
)

// parseProblem dispatches to the format-specific reader named by format,
// lowering the first entry of inputFiles (and, for pragmatic, every
// following entry as an additional routing matrix) into a model.Problem.
// tsplibVehicles only applies to the tsplib format.
func parseProblem(format string, inputFiles []string, tsplibVehicles int) (*model.Problem, model.TransportCost, error) {
	if len(inputFiles) == 0 {
		return nil, nil, asInputError(fmt.Errorf("no --input-files given"))
	}

	primary, err := os.Open(inputFiles[0])
	if err != nil {
		return nil, nil, asInputError(fmt.Errorf("opening %s: %w", inputFiles[0], err))
	}
	defer primary.Close()

	switch format {
	case "solomon":
		problem, transport, err := solomon.ParseProblem(primary)
		return problem, transport, asInputError(err)
	case "lilim":
		problem, transport, err := lilim.ParseProblem(primary)
		return problem, transport, asInputError(err)
	case "tsplib":
		problem, transport, err := tsplib.ParseProblem(primary, tsplibVehicles)
		return problem, transport, asInputError(err)
	case "pragmatic":
		matrices := make(map[string]*apiv1.PragmaticMatrix)
		for _, path := range inputFiles[1:] {
			f, err := os.Open(path)
			if err != nil {
				return nil, nil, asInputError(fmt.Errorf("opening %s: %w", path, err))
			}
			matrix, err := pragmatic.ParseMatrix(f)
			f.Close()
			if err != nil {
				return nil, nil, asInputError(fmt.Errorf("%s: %w", path, err))
			}
			matrices[matrix.Profile] = matrix
		}
		problem, transport, err := pragmatic.ParseProblem(primary, matrices)
		return problem, transport, asInputError(err)
	default:
		return nil, nil, asInputError(fmt.Errorf("unrecognised --format %q", format))
	}
}

// openOutput returns a writer for --out-result, or stdout when path is
// empty.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
