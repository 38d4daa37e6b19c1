// Package v1alpha1 holds the versioned wire types for solver configuration
// and the Pragmatic problem/matrix/solution JSON formats (spec §6),
// unmarshalled via sigs.k8s.io/yaml the way the teacher's config surface
// unmarshals its own YAML-or-JSON input: sigs.k8s.io/yaml round-trips
// through encoding/json internally, so the same struct tags serve both a
// hand-written YAML solver config and a machine-generated Pragmatic JSON
// problem file.
package v1alpha1

// SolverConfig is the top-level solver run configuration (spec §4.I/§4.J
// knobs plus format/IO selection), loaded by pkg/config.
type SolverConfig struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`

	Format       string `json:"format"` // solomon|lilim|tsplib|pragmatic
	InputFiles   []string `json:"inputFiles"`
	OutResult    string `json:"outResult"`

	Termination TerminationConfig `json:"termination"`
	Population  PopulationConfig  `json:"population"`
	Learner     LearnerConfig     `json:"learner"`
	Parallelism ParallelismConfig `json:"parallelism"`
	Seed        int64             `json:"seed"`
}

// TerminationConfig mirrors spec §4.I's disjunctive criteria set.
type TerminationConfig struct {
	MaxGenerations      int      `json:"maxGenerations,omitempty"`
	MaxTimeSeconds       float64  `json:"maxTimeSeconds,omitempty"`
	TargetFitness        []float64 `json:"targetFitness,omitempty"`
	TargetThreshold      float64  `json:"targetThreshold,omitempty"`
	MaxUnassigned        int      `json:"maxUnassigned,omitempty"`
}

// PopulationConfig selects and sizes one of spec §4.H's three strategies.
type PopulationConfig struct {
	Strategy        string  `json:"strategy"` // nsga2|greedy|rosomaxa
	Capacity        int     `json:"capacity"`
	LearningRate    float64 `json:"learningRate,omitempty"`
	GrowthThreshold float64 `json:"growthThreshold,omitempty"`
}

// LearnerConfig tunes spec §4.J's MDP bandit.
type LearnerConfig struct {
	Alpha             float64 `json:"alpha"`
	Gamma             float64 `json:"gamma"`
	Epsilon0          float64 `json:"epsilon0"`
	AnnealGenerations int     `json:"annealGenerations"`
	StagnationWindow  int     `json:"stagnationWindow"`
	OffspringPerGen   int     `json:"offspringPerGeneration"`
	RegretK           int     `json:"regretK"`
	BlinkP            float64 `json:"blinkP"`
}

// ParallelismConfig selects spec §5's ParallelismDegree from config/flags.
type ParallelismConfig struct {
	Full bool `json:"full"`
	Max  int  `json:"max"`
}

// PragmaticProblem is the top-level Pragmatic JSON problem document (spec
// §6), treated as a black box by the core and lowered by pkg/io/pragmatic.
type PragmaticProblem struct {
	Plan    PragmaticPlan    `json:"plan"`
	Fleet   PragmaticFleet   `json:"fleet"`
	Objectives []PragmaticObjectiveTerm `json:"objectives,omitempty"`
}

// PragmaticPlan holds the job list.
type PragmaticPlan struct {
	Jobs []PragmaticJob `json:"jobs"`
}

// PragmaticJob is one plan entry: a bundle of pickup and/or delivery tasks
// that must all be served by the same vehicle, in an order the solver is
// free to choose among unless Sequential is set.
type PragmaticJob struct {
	ID         string             `json:"id"`
	Pickups    []PragmaticTask    `json:"pickups,omitempty"`
	Deliveries []PragmaticTask    `json:"deliveries,omitempty"`
	Sequential bool               `json:"sequential,omitempty"`
	Priority   int                `json:"priority,omitempty"`
	Skills     []string           `json:"skills,omitempty"`
}

// PragmaticTask is one place to visit with a demand delta and time windows.
type PragmaticTask struct {
	Location    PragmaticLocation `json:"location"`
	Duration    float64           `json:"duration"`
	TimeWindows [][2]float64      `json:"times,omitempty"`
	Demand      map[string]int    `json:"demand,omitempty"`
}

// PragmaticLocation indexes into the routing matrix by position, since
// Pragmatic problems reference a separate matrix file rather than
// embedding coordinates.
type PragmaticLocation struct {
	Index int `json:"index"`
}

// PragmaticFleet holds vehicle type and profile declarations.
type PragmaticFleet struct {
	Vehicles []PragmaticVehicle `json:"vehicles"`
	Profiles []PragmaticProfile `json:"profiles"`
}

// PragmaticVehicle is one vehicle type, expanded into VehicleIds actors.
type PragmaticVehicle struct {
	TypeID     string           `json:"typeId"`
	VehicleIds []string         `json:"vehicleIds"`
	Profile    string           `json:"profile"`
	Capacity   map[string]int   `json:"capacity"`
	Shifts     []PragmaticShift `json:"shifts"`
	Skills     []string         `json:"skills,omitempty"`
	Costs      PragmaticCosts   `json:"costs"`
}

// PragmaticShift is one (start[, end]) working window.
type PragmaticShift struct {
	Start PragmaticShiftPlace  `json:"start"`
	End   *PragmaticShiftPlace `json:"end,omitempty"`
}

// PragmaticShiftPlace is a shift boundary's location and earliest/latest
// time.
type PragmaticShiftPlace struct {
	Location PragmaticLocation `json:"location"`
	Time     float64           `json:"time"`
}

// PragmaticCosts carries the per-distance/duration/waiting rates and a
// fixed cost, mirrored onto model.Vehicle's cost fields.
type PragmaticCosts struct {
	Fixed    float64 `json:"fixed"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Waiting  float64 `json:"waiting,omitempty"`
}

// PragmaticProfile names a routing-matrix space a PragmaticMatrix is keyed
// by.
type PragmaticProfile struct {
	Name string `json:"name"`
}

// PragmaticObjectiveTerm names one term of a (possibly weighted, possibly
// multi-objective) solver run; the core's model.Objective implementation
// interprets the recognised term names.
type PragmaticObjectiveTerm struct {
	Type   string  `json:"type"`
	Weight float64 `json:"weight,omitempty"`
}

// PragmaticMatrix is one profile's precomputed duration/distance tables,
// row-major over the location indices PragmaticLocation.Index references.
type PragmaticMatrix struct {
	Profile   string    `json:"profile"`
	Travel    []float64 `json:"travelTimes"`
	Distances []float64 `json:"distances"`
}

// PragmaticSolution is the output document SerialiseSolution produces.
type PragmaticSolution struct {
	Tours      []PragmaticTour `json:"tours"`
	Unassigned []PragmaticUnassignedJob `json:"unassignedJobs,omitempty"`
	Cost       float64         `json:"cost"`
}

// PragmaticTour is one vehicle's serialised stop sequence.
type PragmaticTour struct {
	VehicleID string                `json:"vehicleId"`
	Stops     []PragmaticSolutionStop `json:"stops"`
}

// PragmaticSolutionStop is one visited activity.
type PragmaticSolutionStop struct {
	JobID    string  `json:"jobId"`
	Location int     `json:"locationIndex"`
	Arrival  float64 `json:"arrivalTime"`
	Departure float64 `json:"departureTime"`
}

// PragmaticUnassignedJob names a job the solver could not place, plus its
// reason code.
type PragmaticUnassignedJob struct {
	JobID  string `json:"jobId"`
	Reason string `json:"reason"`
}
