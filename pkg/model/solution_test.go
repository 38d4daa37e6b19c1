package model_test

import (
	"testing"

	"github.com/vrpsolver/vrp/pkg/model"
)

func newTestVehicle(t *testing.T, id string, capacity int) *model.Vehicle {
	t.Helper()
	depot, err := model.NewPlace(model.Location(0), 0, nil)
	if err != nil {
		t.Fatalf("depot place: %v", err)
	}
	shift := model.Shift{Start: depot}
	dims := model.NewDimensions().Set(model.TagCapacity, map[string]int{"capacity": capacity})
	v, err := model.NewVehicle(id, "default", []model.Shift{shift}, dims)
	if err != nil {
		t.Fatalf("NewVehicle: %v", err)
	}
	return v
}

func newTestJob(t *testing.T, id string, demand int) *model.Single {
	t.Helper()
	place, err := model.NewPlace(model.Location(1), 5, nil)
	if err != nil {
		t.Fatalf("job place: %v", err)
	}
	dims := model.NewDimensions().Set(model.TagDemand, map[string]int{"capacity": demand})
	job, err := model.NewSingle(id, []model.Place{place}, dims)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	return job
}

func TestNewSolutionStartsFullyUnassigned(t *testing.T) {
	vehicle := newTestVehicle(t, "v1", 10)
	fleet, err := model.NewFleet([]*model.Vehicle{vehicle}, nil)
	if err != nil {
		t.Fatalf("NewFleet: %v", err)
	}
	job := newTestJob(t, "job-1", 3)
	problem, err := model.NewBuilder().
		WithFleet(fleet).
		WithJobs([]model.Job{job}).
		WithTransport(stubTransport{}).
		WithActivityCost(stubActivityCost{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sol := model.NewSolution(problem)
	if len(sol.Routes) != 0 {
		t.Fatalf("expected no routes in a fresh solution, got %d", len(sol.Routes))
	}
	if _, ok := sol.Unassigned[job]; !ok {
		t.Fatalf("expected job to start unassigned")
	}
	if sol.IsLocked(job) {
		t.Fatalf("a fresh solution must not lock any job")
	}
}

func TestMarkAssignedClearsUnassigned(t *testing.T) {
	vehicle := newTestVehicle(t, "v1", 10)
	fleet, err := model.NewFleet([]*model.Vehicle{vehicle}, nil)
	if err != nil {
		t.Fatalf("NewFleet: %v", err)
	}
	job := newTestJob(t, "job-1", 3)
	problem, err := model.NewBuilder().
		WithFleet(fleet).
		WithJobs([]model.Job{job}).
		WithTransport(stubTransport{}).
		WithActivityCost(stubActivityCost{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sol := model.NewSolution(problem)
	sol.MarkAssigned(job)
	if _, ok := sol.Unassigned[job]; ok {
		t.Fatalf("MarkAssigned must remove the job from Unassigned")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	vehicle := newTestVehicle(t, "v1", 10)
	fleet, err := model.NewFleet([]*model.Vehicle{vehicle}, nil)
	if err != nil {
		t.Fatalf("NewFleet: %v", err)
	}
	job := newTestJob(t, "job-1", 3)
	problem, err := model.NewBuilder().
		WithFleet(fleet).
		WithJobs([]model.Job{job}).
		WithTransport(stubTransport{}).
		WithActivityCost(stubActivityCost{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sol := model.NewSolution(problem)
	clone := sol.Clone()
	clone.MarkAssigned(job)

	if _, ok := sol.Unassigned[job]; !ok {
		t.Fatalf("mutating a clone must not affect the original solution")
	}
}

func TestBuilderRejectsEmptyFleetAndJobs(t *testing.T) {
	if _, err := model.NewBuilder().
		WithJobs([]model.Job{newTestJob(t, "job-1", 1)}).
		WithTransport(stubTransport{}).
		WithActivityCost(stubActivityCost{}).
		Build(); err == nil {
		t.Fatalf("expected a ConfigurationError for a missing fleet")
	}

	vehicle := newTestVehicle(t, "v1", 10)
	fleet, err := model.NewFleet([]*model.Vehicle{vehicle}, nil)
	if err != nil {
		t.Fatalf("NewFleet: %v", err)
	}
	if _, err := model.NewBuilder().
		WithFleet(fleet).
		WithTransport(stubTransport{}).
		WithActivityCost(stubActivityCost{}).
		Build(); err == nil {
		t.Fatalf("expected a ConfigurationError for an empty plan")
	}
}

func TestBuilderRejectsUnknownDemandDimension(t *testing.T) {
	vehicle := newTestVehicle(t, "v1", 10)
	fleet, err := model.NewFleet([]*model.Vehicle{vehicle}, nil)
	if err != nil {
		t.Fatalf("NewFleet: %v", err)
	}
	place, err := model.NewPlace(model.Location(1), 5, nil)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	dims := model.NewDimensions().Set(model.TagDemand, map[string]int{"volume": 2})
	job, err := model.NewSingle("job-1", []model.Place{place}, dims)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}

	_, err = model.NewBuilder().
		WithFleet(fleet).
		WithJobs([]model.Job{job}).
		WithTransport(stubTransport{}).
		WithActivityCost(stubActivityCost{}).
		Build()
	if err == nil {
		t.Fatalf("expected a ConfigurationError for a demand dimension the fleet doesn't declare capacity for")
	}
}

type stubTransport struct{}

func (stubTransport) Duration(model.Profile, model.Location, model.Location, float64) float64 {
	return 1
}
func (stubTransport) Distance(model.Profile, model.Location, model.Location, float64) float64 {
	return 1
}

type stubActivityCost struct{}

func (stubActivityCost) EstimateArrival(_ *model.Route, _ *model.Activity, departure float64) float64 {
	return departure
}
func (stubActivityCost) EstimateDeparture(_ *model.Route, activity *model.Activity, arrival float64) float64 {
	return arrival + activity.Place.ServiceDuration
}
func (stubActivityCost) Cost(*model.Route, *model.Activity, float64) float64 { return 0 }
