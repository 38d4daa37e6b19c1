package main

import (
	"fmt"
	"sort"

	"sigs.k8s.io/yaml"

	"github.com/spf13/cobra"

	apiv1 "github.com/vrpsolver/vrp/pkg/api/v1alpha1"
	"github.com/vrpsolver/vrp/pkg/model"
)

var (
	importFormat         string
	importInputFiles     []string
	importOutResult      string
	importTSPLIBVehicles int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Convert a problem instance into the canonical Pragmatic JSON format",
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "solomon", "input format: solomon|lilim|tsplib|pragmatic")
	importCmd.Flags().StringSliceVar(&importInputFiles, "input-files", nil, "input file(s)")
	importCmd.Flags().IntVar(&importTSPLIBVehicles, "tsplib-vehicles", 1, "vehicle count for tsplib instances")
	importCmd.Flags().StringVar(&importOutResult, "out-result", "", "output path (default: stdout)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	problem, _, err := parseProblem(importFormat, importInputFiles, importTSPLIBVehicles)
	if err != nil {
		return err
	}

	doc := toPragmaticProblem(problem)
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	out, closeOut, err := openOutput(importOutResult)
	if err != nil {
		return err
	}
	defer closeOut()

	_, err = out.Write(data)
	return err
}

// toPragmaticProblem renders a model.Problem back into the wire format
// pkg/io/pragmatic.ParseProblem consumes, so any supported input format can
// be normalised onto the one schema other tooling needs to support. Each
// job's Singles become delivery tasks in declared order; a genuine
// pickup/delivery distinction does not survive the round trip through
// model.Job, which only records an ordered Place sequence.
func toPragmaticProblem(problem *model.Problem) apiv1.PragmaticProblem {
	doc := apiv1.PragmaticProblem{}

	for _, job := range problem.Jobs {
		pj := apiv1.PragmaticJob{
			ID:       job.ID(),
			Priority: priorityOf(job.Dimensions()),
			Skills:   skillsOf(job.Dimensions()),
		}
		for _, single := range job.Singles() {
			for _, place := range single.Places {
				pj.Deliveries = append(pj.Deliveries, apiv1.PragmaticTask{
					Location:    apiv1.PragmaticLocation{Index: int(place.Location)},
					Duration:    place.ServiceDuration,
					TimeWindows: timeWindowsOf(place.TimeWindows),
					Demand:      single.Dims.GetDemand(),
				})
			}
		}
		doc.Plan.Jobs = append(doc.Plan.Jobs, pj)
	}

	seenProfile := make(map[model.Profile]struct{})
	for _, v := range problem.Fleet.Vehicles {
		doc.Fleet.Vehicles = append(doc.Fleet.Vehicles, apiv1.PragmaticVehicle{
			TypeID:     v.Id,
			VehicleIds: []string{v.Id},
			Profile:    string(v.Profile),
			Capacity:   v.Dims.GetCapacity(),
			Shifts:     shiftsOf(v.Shifts),
			Skills:     skillsOf(v.Dims),
			Costs: apiv1.PragmaticCosts{
				Fixed:    v.FixedCost,
				Distance: v.CostPerDistance,
				Duration: v.CostPerDuration,
				Waiting:  v.CostPerWaiting,
			},
		})
		if _, ok := seenProfile[v.Profile]; !ok {
			seenProfile[v.Profile] = struct{}{}
			doc.Fleet.Profiles = append(doc.Fleet.Profiles, apiv1.PragmaticProfile{Name: string(v.Profile)})
		}
	}
	return doc
}

func priorityOf(dims model.Dimensions) int {
	if v, ok := dims[model.TagPriority]; ok {
		if p, ok := v.(int); ok {
			return p
		}
	}
	return 0
}

func skillsOf(dims model.Dimensions) []string {
	v, ok := dims[model.TagSkills]
	if !ok {
		return nil
	}
	set, ok := v.(map[string]struct{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for skill := range set {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

func timeWindowsOf(windows []model.TimeWindow) [][2]float64 {
	out := make([][2]float64, len(windows))
	for i, w := range windows {
		out[i] = [2]float64{w.Start, w.End}
	}
	return out
}

func shiftsOf(shifts []model.Shift) []apiv1.PragmaticShift {
	out := make([]apiv1.PragmaticShift, len(shifts))
	for i, s := range shifts {
		out[i] = apiv1.PragmaticShift{
			Start: apiv1.PragmaticShiftPlace{
				Location: apiv1.PragmaticLocation{Index: int(s.Start.Location)},
				Time:     s.Start.TimeWindows[0].Start,
			},
		}
		if s.End != nil {
			out[i].End = &apiv1.PragmaticShiftPlace{
				Location: apiv1.PragmaticLocation{Index: int(s.End.Location)},
				Time:     s.End.TimeWindows[0].End,
			}
		}
	}
	return out
}
