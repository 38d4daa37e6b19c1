package main

import (
	"io"
	"os"

	"sigs.k8s.io/yaml"

	apiv1 "github.com/vrpsolver/vrp/pkg/api/v1alpha1"
	vrpconfig "github.com/vrpsolver/vrp/pkg/config"
)

// resolveSolveConfig loads solveConfigFile (or the reference defaults if
// unset) and layers the solve subcommand's flags on top, following spec
// §6's "shared flags plus format-specific flags" CLI contract. Validation
// runs once, after every override has been applied, since a bare --format
// flag with no --config is a perfectly valid invocation.
func resolveSolveConfig() (*apiv1.SolverConfig, error) {
	cfg, err := loadConfigFileOrDefault(solveConfigFile)
	if err != nil {
		return nil, err
	}

	if solveFormat != "" {
		cfg.Format = solveFormat
	}
	if len(solveInputFiles) > 0 {
		cfg.InputFiles = solveInputFiles
	}
	if solveOutResult != "" {
		cfg.OutResult = solveOutResult
	}
	if solveSeed != 0 {
		cfg.Seed = solveSeed
	}
	if solveMaxGenerations > 0 {
		cfg.Termination.MaxGenerations = solveMaxGenerations
	}
	if solveMaxTimeSeconds > 0 {
		cfg.Termination.MaxTimeSeconds = solveMaxTimeSeconds
	}

	if err := vrpconfig.Validate(cfg); err != nil {
		return nil, asInputError(err)
	}
	return cfg, nil
}

// loadConfigFileOrDefault reads path into a SolverConfig seeded from
// vrpconfig.Default(), deliberately skipping vrpconfig.Load's validation
// step: a config file may omit fields the caller means to supply via flags.
func loadConfigFileOrDefault(path string) (*apiv1.SolverConfig, error) {
	cfg := vrpconfig.Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, asInputError(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, asInputError(err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, asInputError(err)
	}
	return cfg, nil
}
