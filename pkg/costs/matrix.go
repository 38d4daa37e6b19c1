// Package costs implements the TransportCost and ActivityCost oracles named
// in spec §4.B: a dense per-profile matrix backend, an on-demand Euclidean
// fallback, and an UnknownLocationFallback wrapper for synthetic
// break/reload/dispatch activities that have no physical place.
package costs

import (
	"fmt"
	"math"

	"github.com/vrpsolver/vrp/pkg/model"
)

// Matrix is a dense duration/distance table per profile, grounded on the
// teacher's flat per-node resource tables (framework.NodeInfo). Durations
// and distances are assumed time-independent (departure is accepted for
// interface symmetry but ignored), matching the Solomon/Li&Lim/TSPLIB
// formats this backend is built to serve.
type Matrix struct {
	size      int
	durations map[model.Profile][]float64
	distances map[model.Profile][]float64
}

// NewMatrix constructs an empty Matrix sized for n locations.
func NewMatrix(n int) *Matrix {
	return &Matrix{size: n, durations: make(map[model.Profile][]float64), distances: make(map[model.Profile][]float64)}
}

// SetProfile installs the flattened row-major duration/distance tables for
// profile; both must have size n*n.
func (m *Matrix) SetProfile(profile model.Profile, durations, distances []float64) error {
	if len(durations) != m.size*m.size || len(distances) != m.size*m.size {
		return fmt.Errorf("costs: matrix for profile %s must be %d x %d", profile, m.size, m.size)
	}
	m.durations[profile] = durations
	m.distances[profile] = distances
	return nil
}

func (m *Matrix) index(from, to model.Location) (int, bool) {
	if int(from) < 0 || int(to) < 0 || int(from) >= m.size || int(to) >= m.size {
		return 0, false
	}
	return int(from)*m.size + int(to), true
}

// Duration returns the cached duration from -> to for profile, or +Inf if
// either location is unknown or out of range (the pair is unreachable).
func (m *Matrix) Duration(profile model.Profile, from, to model.Location, _ float64) float64 {
	idx, ok := m.index(from, to)
	table, hasTable := m.durations[profile]
	if !ok || !hasTable || idx >= len(table) {
		return math.Inf(1)
	}
	return table[idx]
}

// Distance returns the cached distance from -> to for profile, or +Inf if
// unreachable.
func (m *Matrix) Distance(profile model.Profile, from, to model.Location, _ float64) float64 {
	idx, ok := m.index(from, to)
	table, hasTable := m.distances[profile]
	if !ok || !hasTable || idx >= len(table) {
		return math.Inf(1)
	}
	return table[idx]
}
