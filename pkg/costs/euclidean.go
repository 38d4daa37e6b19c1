package costs

import (
	"math"

	"github.com/vrpsolver/vrp/pkg/model"
)

// Coordinate is a 2D point used by the on-demand Euclidean backend.
type Coordinate struct {
	X, Y float64
}

// Euclidean computes duration/distance on demand from a coordinate table,
// used when no precomputed Matrix is available (spec §4.B: "simple
// Euclidean on demand"). Speed converts distance to duration uniformly
// across profiles; per-profile speeds may be layered on top via Speeds.
type Euclidean struct {
	Coords []Coordinate
	Speed  float64
	Speeds map[model.Profile]float64
}

// NewEuclidean constructs an Euclidean backend over coords with a default
// speed (distance units per duration unit).
func NewEuclidean(coords []Coordinate, speed float64) *Euclidean {
	if speed <= 0 {
		speed = 1
	}
	return &Euclidean{Coords: coords, Speed: speed, Speeds: make(map[model.Profile]float64)}
}

func (e *Euclidean) speedFor(profile model.Profile) float64 {
	if s, ok := e.Speeds[profile]; ok && s > 0 {
		return s
	}
	return e.Speed
}

func (e *Euclidean) dist(from, to model.Location) float64 {
	if int(from) < 0 || int(to) < 0 || int(from) >= len(e.Coords) || int(to) >= len(e.Coords) {
		return math.Inf(1)
	}
	a, b := e.Coords[from], e.Coords[to]
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance returns the straight-line distance from -> to.
func (e *Euclidean) Distance(_ model.Profile, from, to model.Location, _ float64) float64 {
	return e.dist(from, to)
}

// Duration returns distance / profile speed.
func (e *Euclidean) Duration(profile model.Profile, from, to model.Location, _ float64) float64 {
	d := e.dist(from, to)
	if math.IsInf(d, 1) {
		return d
	}
	return d / e.speedFor(profile)
}

// UnknownLocationFallback wraps a TransportCost and returns zero duration
// and distance whenever either endpoint is model.UnknownLocation, per
// spec §4.B and §9 (one of the placeholder modules left unspecified by the
// source; zero is the only behaviour consistent with a synthetic activity
// that has no physical place to travel to or from).
type UnknownLocationFallback struct {
	Inner model.TransportCost
}

// NewUnknownLocationFallback wraps inner.
func NewUnknownLocationFallback(inner model.TransportCost) *UnknownLocationFallback {
	return &UnknownLocationFallback{Inner: inner}
}

func (f *UnknownLocationFallback) Duration(profile model.Profile, from, to model.Location, departure float64) float64 {
	if from == model.UnknownLocation || to == model.UnknownLocation {
		return 0
	}
	return f.Inner.Duration(profile, from, to, departure)
}

func (f *UnknownLocationFallback) Distance(profile model.Profile, from, to model.Location, departure float64) float64 {
	if from == model.UnknownLocation || to == model.UnknownLocation {
		return 0
	}
	return f.Inner.Distance(profile, from, to, departure)
}
