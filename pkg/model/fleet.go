package model

import "fmt"

// Profile identifies a routing-matrix space (e.g. "car", "truck"); Actors
// built from Vehicles sharing a Profile query the same TransportCost table.
type Profile string

// Shift is one (start[, end]) window a Vehicle may work, with optional break
// windows, reload stops, and a dispatch place.
type Shift struct {
	Start          Place
	End            *Place // nil means the vehicle need not return anywhere
	BreakWindows   []TimeWindow
	BreakDuration  float64
	Reloads        []Place
	Dispatch       *Place
}

// Vehicle is a fleet member: capacity, profile, one or more shifts, skills.
type Vehicle struct {
	Id       string
	Profile  Profile
	Shifts   []Shift
	Dims     Dimensions
	CostPerDistance float64
	CostPerDuration float64
	CostPerWaiting  float64
	FixedCost       float64
}

// NewVehicle constructs a Vehicle, enforcing "at least one shift" (spec §4.A).
func NewVehicle(id string, profile Profile, shifts []Shift, dims Dimensions) (*Vehicle, error) {
	if len(shifts) == 0 {
		return nil, &InvariantError{Entity: "vehicle", ID: id, Reason: "must declare at least one shift"}
	}
	if dims == nil {
		dims = NewDimensions()
	}
	return &Vehicle{Id: id, Profile: profile, Shifts: shifts, Dims: dims}, nil
}

// Driver is a fleet member whose schedule constrains which shifts it may
// crew; the core treats it as an opaque dimension carrier (spec §3 Fleet).
type Driver struct {
	Id   string
	Dims Dimensions
}

// Actor is the unit of assignment: a concrete (vehicle, shift) pairing.
// Actors compare by identity, never by value, since two actors with
// identical fields may still be distinct units of capacity.
type Actor struct {
	Vehicle    *Vehicle
	ShiftIndex int
	Driver     *Driver
}

// Shift returns the actor's concrete shift.
func (a *Actor) Shift() Shift {
	return a.Vehicle.Shifts[a.ShiftIndex]
}

// HasSkills reports whether the actor's vehicle carries every skill in req.
func (a *Actor) HasSkills(req map[string]struct{}) bool {
	have := a.Vehicle.Dims.GetSkills()
	for s := range req {
		if _, ok := have[s]; !ok {
			return false
		}
	}
	return true
}

// Fleet is the ordered, de-duplicated set of Vehicles, Drivers, and derived
// Actors that a Problem is built over.
type Fleet struct {
	Vehicles []*Vehicle
	Drivers  []*Driver
	Actors   []*Actor
	Profiles []Profile
}

// NewFleet builds a Fleet from vehicles and drivers, deriving one Actor per
// (vehicle, shift) pair and a de-duplicated Profile set, per spec §3.
func NewFleet(vehicles []*Vehicle, drivers []*Driver) (*Fleet, error) {
	if len(vehicles) == 0 {
		return nil, fmt.Errorf("model: fleet must have at least one vehicle")
	}
	seenProfile := make(map[Profile]struct{})
	var profiles []Profile
	var actors []*Actor
	var driver *Driver
	if len(drivers) > 0 {
		driver = drivers[0]
	}
	for _, v := range vehicles {
		if _, ok := seenProfile[v.Profile]; !ok {
			seenProfile[v.Profile] = struct{}{}
			profiles = append(profiles, v.Profile)
		}
		for si := range v.Shifts {
			actors = append(actors, &Actor{Vehicle: v, ShiftIndex: si, Driver: driver})
		}
	}
	return &Fleet{Vehicles: vehicles, Drivers: drivers, Actors: actors, Profiles: profiles}, nil
}
