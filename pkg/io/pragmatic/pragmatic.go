// Package pragmatic reads and writes the Pragmatic JSON problem/matrix/
// solution format (spec §6), over the versioned types in
// pkg/api/v1alpha1, matching original_source/pragmatic/src/json/mod.rs's
// shape (problem + matrices + solution) at the level the core treats as a
// black box. Unmarshalling goes through sigs.k8s.io/yaml, which accepts
// plain JSON as a YAML subset, the same library the solver config loader
// uses.
package pragmatic

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	apiv1 "github.com/vrpsolver/vrp/pkg/api/v1alpha1"
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/costs"
	"github.com/vrpsolver/vrp/pkg/model"
)

// ParseMatrix reads one profile's precomputed duration/distance tables.
func ParseMatrix(r io.Reader) (*apiv1.PragmaticMatrix, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io/pragmatic: %w", err)
	}
	var matrix apiv1.PragmaticMatrix
	if err := yaml.Unmarshal(data, &matrix); err != nil {
		return nil, fmt.Errorf("io/pragmatic: matrix: %w", err)
	}
	return &matrix, nil
}

// ParseProblem reads a Pragmatic problem document and its per-profile
// matrices (keyed by profile name), lowering both into a model.Problem
// plus the model.TransportCost a matrix-backed run needs.
func ParseProblem(r io.Reader, matrices map[string]*apiv1.PragmaticMatrix) (*model.Problem, model.TransportCost, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("io/pragmatic: %w", err)
	}
	var doc apiv1.PragmaticProblem
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("io/pragmatic: problem: %w", err)
	}

	transport, err := buildTransport(doc, matrices)
	if err != nil {
		return nil, nil, err
	}
	activityCost := costs.NewActivityEstimator(transport)

	fleet, err := buildFleet(doc)
	if err != nil {
		return nil, nil, err
	}

	jobs, err := buildJobs(doc)
	if err != nil {
		return nil, nil, err
	}

	problem, err := model.NewBuilder().
		WithFleet(fleet).
		WithJobs(jobs).
		WithTransport(transport).
		WithActivityCost(activityCost).
		Build()
	if err != nil {
		return nil, nil, err
	}
	return problem, transport, nil
}

func buildTransport(doc apiv1.PragmaticProblem, matrices map[string]*apiv1.PragmaticMatrix) (model.TransportCost, error) {
	var size int
	for _, profile := range doc.Fleet.Profiles {
		matrix, ok := matrices[profile.Name]
		if !ok {
			return nil, fmt.Errorf("io/pragmatic: no matrix supplied for profile %q", profile.Name)
		}
		n := len(matrix.Travel)
		if n == 0 {
			n = len(matrix.Distances)
		}
		if s := intSqrt(n); s > size {
			size = s
		}
	}
	transport := costs.NewMatrix(size)
	for _, profile := range doc.Fleet.Profiles {
		matrix := matrices[profile.Name]
		if err := transport.SetProfile(model.Profile(profile.Name), matrix.Travel, matrix.Distances); err != nil {
			return nil, fmt.Errorf("io/pragmatic: profile %q: %w", profile.Name, err)
		}
	}
	return transport, nil
}

func intSqrt(n int) int {
	for i := 0; i*i < n; i++ {
		if (i+1)*(i+1) >= n {
			return i + 1
		}
	}
	return 0
}

func buildFleet(doc apiv1.PragmaticProblem) (*model.Fleet, error) {
	var vehicles []*model.Vehicle
	for _, vt := range doc.Fleet.Vehicles {
		shifts, err := buildShifts(vt.Shifts)
		if err != nil {
			return nil, fmt.Errorf("io/pragmatic: vehicle type %q: %w", vt.TypeID, err)
		}
		dims := model.NewDimensions().Set(model.TagCapacity, vt.Capacity)
		if len(vt.Skills) > 0 {
			skills := make(map[string]struct{}, len(vt.Skills))
			for _, s := range vt.Skills {
				skills[s] = struct{}{}
			}
			dims.Set(model.TagSkills, skills)
		}
		for _, id := range vt.VehicleIds {
			vehicle, err := model.NewVehicle(id, model.Profile(vt.Profile), shifts, dims)
			if err != nil {
				return nil, fmt.Errorf("io/pragmatic: %w", err)
			}
			vehicle.CostPerDistance = vt.Costs.Distance
			vehicle.CostPerDuration = vt.Costs.Duration
			vehicle.CostPerWaiting = vt.Costs.Waiting
			vehicle.FixedCost = vt.Costs.Fixed
			vehicles = append(vehicles, vehicle)
		}
	}
	return model.NewFleet(vehicles, nil)
}

func buildShifts(pShifts []apiv1.PragmaticShift) ([]model.Shift, error) {
	var shifts []model.Shift
	for _, ps := range pShifts {
		start, err := model.NewPlace(model.Location(ps.Start.Location.Index), 0, []model.TimeWindow{{Start: ps.Start.Time, End: maxTime(ps)}})
		if err != nil {
			return nil, err
		}
		shift := model.Shift{Start: start}
		if ps.End != nil {
			end, err := model.NewPlace(model.Location(ps.End.Location.Index), 0, []model.TimeWindow{{Start: ps.Start.Time, End: ps.End.Time}})
			if err != nil {
				return nil, err
			}
			shift.End = &end
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

func maxTime(ps apiv1.PragmaticShift) float64 {
	if ps.End != nil {
		return ps.End.Time
	}
	return ps.Start.Time + 1e9
}

func buildJobs(doc apiv1.PragmaticProblem) ([]model.Job, error) {
	var jobs []model.Job
	for _, pj := range doc.Plan.Jobs {
		singles, err := buildSingles(pj)
		if err != nil {
			return nil, fmt.Errorf("io/pragmatic: job %q: %w", pj.ID, err)
		}
		dims := jobDimensions(pj)
		if len(singles) == 1 {
			singles[0].Id = pj.ID
			singles[0].Dims = dims
			jobs = append(jobs, singles[0])
			continue
		}
		var permutations [][]int
		if pj.Sequential {
			permutations = [][]int{identityPermutation(len(singles))}
		}
		multi, err := model.NewMulti(pj.ID, singles, permutations, dims)
		if err != nil {
			return nil, fmt.Errorf("io/pragmatic: job %q: %w", pj.ID, err)
		}
		jobs = append(jobs, multi)
	}
	return jobs, nil
}

func identityPermutation(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func jobDimensions(pj apiv1.PragmaticJob) model.Dimensions {
	dims := model.NewDimensions().Set(model.TagPriority, pj.Priority)
	if len(pj.Skills) > 0 {
		skills := make(map[string]struct{}, len(pj.Skills))
		for _, s := range pj.Skills {
			skills[s] = struct{}{}
		}
		dims.Set(model.TagSkills, skills)
	}
	return dims
}

func buildSingles(pj apiv1.PragmaticJob) ([]*model.Single, error) {
	var out []*model.Single
	for i, task := range pj.Pickups {
		single, err := taskToSingle(fmt.Sprintf("%s-pickup-%d", pj.ID, i), task)
		if err != nil {
			return nil, err
		}
		out = append(out, single)
	}
	for i, task := range pj.Deliveries {
		single, err := taskToSingle(fmt.Sprintf("%s-delivery-%d", pj.ID, i), task)
		if err != nil {
			return nil, err
		}
		out = append(out, single)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("job has no pickups or deliveries")
	}
	return out, nil
}

func taskToSingle(id string, task apiv1.PragmaticTask) (*model.Single, error) {
	windows := make([]model.TimeWindow, 0, len(task.TimeWindows))
	for _, tw := range task.TimeWindows {
		windows = append(windows, model.TimeWindow{Start: tw[0], End: tw[1]})
	}
	place, err := model.NewPlace(model.Location(task.Location.Index), task.Duration, windows)
	if err != nil {
		return nil, err
	}
	dims := model.NewDimensions()
	if len(task.Demand) > 0 {
		dims.Set(model.TagDemand, task.Demand)
	}
	return model.NewSingle(id, []model.Place{place}, dims)
}

// SerialiseSolution lowers a solved model.Solution into the Pragmatic
// solution JSON document and writes it to w.
func SerialiseSolution(w io.Writer, sol *model.Solution, totalCost float64) error {
	doc := apiv1.PragmaticSolution{Cost: totalCost}
	for _, route := range sol.Routes {
		if route.IsEmpty() {
			continue
		}
		tour := apiv1.PragmaticTour{VehicleID: route.Actor.Vehicle.Id}
		for _, a := range route.Tour.Activities {
			jobID := "depot"
			if a.Job != nil {
				jobID = a.Job.ID()
			}
			tour.Stops = append(tour.Stops, apiv1.PragmaticSolutionStop{
				JobID:     jobID,
				Location:  int(a.Place.Location),
				Arrival:   a.Schedule.Arrival,
				Departure: a.Schedule.Departure,
			})
		}
		doc.Tours = append(doc.Tours, tour)
	}
	for job, reason := range sol.Unassigned {
		doc.Unassigned = append(doc.Unassigned, apiv1.PragmaticUnassignedJob{
			JobID:  job.ID(),
			Reason: apierrors.InfeasibilityCode(reason.Code).String(),
		})
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("io/pragmatic: %w", err)
	}
	_, err = w.Write(out)
	return err
}
