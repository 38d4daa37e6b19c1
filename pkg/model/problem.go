package model

import "fmt"

// TransportCost is the duration/distance oracle named in spec §4.B,
// implemented externally (pkg/costs) and injected into the Problem.
type TransportCost interface {
	Duration(profile Profile, from, to Location, departure float64) float64
	Distance(profile Profile, from, to Location, departure float64) float64
}

// ActivityCost computes arrival/departure/waiting+service cost for a single
// activity (spec §4.B).
type ActivityCost interface {
	EstimateArrival(route *Route, activity *Activity, departure float64) float64
	EstimateDeparture(route *Route, activity *Activity, arrival float64) float64
	Cost(route *Route, activity *Activity, arrival float64) float64
}

// Objective computes the scalar or vector fitness of a Solution (spec §1's
// composite objective: unassigned count, vehicle count, transport cost, plus
// optional balance/arrival terms). Implemented by pkg/objective.Composite
// for the specific terms a given run enables.
type Objective interface {
	// Fitness returns the objective vector for sol, lower-is-better in every
	// component.
	Fitness(sol *Solution) []float64
}

// Problem is the immutable, shared-by-every-solution input: fleet, jobs,
// cost oracles, constraint pipeline handle, objective, and an escape-hatch
// extras map for domain-specific extensions (spec §3).
type Problem struct {
	Fleet        *Fleet
	Jobs         []Job
	Transport    TransportCost
	ActivityCost ActivityCost
	Pipeline     ConstraintPipeline
	Objective    Objective
	Extras       map[string]interface{}
}

// ConstraintPipeline is the minimal surface pkg/model needs from
// pkg/framework's pipeline, kept here to avoid an import cycle (framework
// depends on model, not the reverse). pkg/framework.Pipeline implements it.
type ConstraintPipeline interface {
	AcceptRouteState(route *Route)
	AcceptSolutionState(sol *Solution)
}

// Builder assembles a Problem while enforcing spec §7's ConfigurationError
// checks (empty fleet, empty plan) at build time rather than at solve time.
type Builder struct {
	fleet        *Fleet
	jobs         []Job
	transport    TransportCost
	activityCost ActivityCost
	pipeline     ConstraintPipeline
	objective    Objective
	extras       map[string]interface{}
}

// NewBuilder returns an empty Problem builder.
func NewBuilder() *Builder {
	return &Builder{extras: make(map[string]interface{})}
}

func (b *Builder) WithFleet(f *Fleet) *Builder                    { b.fleet = f; return b }
func (b *Builder) WithJobs(jobs []Job) *Builder                   { b.jobs = jobs; return b }
func (b *Builder) WithTransport(t TransportCost) *Builder         { b.transport = t; return b }
func (b *Builder) WithActivityCost(a ActivityCost) *Builder       { b.activityCost = a; return b }
func (b *Builder) WithPipeline(p ConstraintPipeline) *Builder     { b.pipeline = p; return b }
func (b *Builder) WithObjective(o Objective) *Builder             { b.objective = o; return b }
func (b *Builder) WithExtra(key string, value interface{}) *Builder {
	b.extras[key] = value
	return b
}

// Build validates and returns the finished Problem, or a ConfigurationError
// (spec §7): empty fleet, empty plan (no jobs and no termination is handled
// by the evolution loop, not here), or a missing mandatory collaborator.
func (b *Builder) Build() (*Problem, error) {
	if b.fleet == nil || len(b.fleet.Actors) == 0 {
		return nil, &ConfigurationError{Reason: "fleet must have at least one actor"}
	}
	if len(b.jobs) == 0 {
		return nil, &ConfigurationError{Reason: "plan must have at least one job"}
	}
	if b.transport == nil {
		return nil, &ConfigurationError{Reason: "transport cost oracle is required"}
	}
	if b.activityCost == nil {
		return nil, &ConfigurationError{Reason: "activity cost oracle is required"}
	}
	if err := b.checkDemandDimensionality(); err != nil {
		return nil, err
	}
	return &Problem{
		Fleet:        b.fleet,
		Jobs:         b.jobs,
		Transport:    b.transport,
		ActivityCost: b.activityCost,
		Pipeline:     b.pipeline,
		Objective:    b.objective,
		Extras:       b.extras,
	}, nil
}

// checkDemandDimensionality enforces that a job's demand map shares its key
// set with the fleet's capacity maps, per spec §4.A.
func (b *Builder) checkDemandDimensionality() error {
	dims := make(map[string]struct{})
	for _, v := range b.fleet.Vehicles {
		for dim := range v.Dims.GetCapacity() {
			dims[dim] = struct{}{}
		}
	}
	if len(dims) == 0 {
		return nil
	}
	for _, job := range b.jobs {
		for dim := range job.Dimensions().GetDemand() {
			if _, ok := dims[dim]; !ok {
				return &ConfigurationError{Reason: fmt.Sprintf("job %s demands unknown capacity dimension %q", job.ID(), dim)}
			}
		}
	}
	return nil
}

// ConfigurationError is raised at Problem build time (spec §7): contradictory
// termination, empty fleet, empty plan, or any other structurally invalid
// configuration. The solver is never started when this is returned.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "model: configuration error: " + e.Reason
}
