package util

import (
	"math"

	"golang.org/x/exp/rand"
)

// RNG is the randomness contract threaded through the environment instead of
// relying on a process-global generator, so that a seeded solver run is
// reproducible as long as each instance is driven by a single goroutine at a
// time. An RNG is not safe for concurrent use by itself: a parallel worker
// pool must call Split on the driver to hand each worker its own instance
// before fanning out, never share one RNG across goroutines.
type RNG interface {
	// UniformInt returns an integer uniformly distributed on [min, max].
	UniformInt(min, max int) int
	// UniformReal returns a float64 uniformly distributed on [min, max).
	UniformReal(min, max float64) float64
	// IsHit flips a biased coin, returning true with probability p.
	IsHit(p float64) bool
	// Weighted returns an index into weights sampled proportionally to the
	// weights, using the smallest-exponential-draw trick (see original_source
	// core/src/utils/random.rs).
	Weighted(weights []int) int
	// Split derives an independent child RNG seeded from the receiver's
	// current state, mutating the receiver. Call it only from the goroutine
	// that already owns the receiver (typically the driver, once per
	// worker, before the workers start); the returned RNG is then that
	// worker's alone.
	Split() RNG
}

// DefaultRNG wraps golang.org/x/exp/rand.Rand, matching the generator the
// NSGA-II reference implementation already depends on.
type DefaultRNG struct {
	src *rand.Rand
}

// NewDefaultRNG constructs a seeded RNG. Two DefaultRNGs built from the same
// seed and driven with the same call sequence produce identical results.
func NewDefaultRNG(seed uint64) *DefaultRNG {
	return &DefaultRNG{src: rand.New(rand.NewSource(seed))}
}

func (r *DefaultRNG) UniformInt(min, max int) int {
	if min == max {
		return min
	}
	if min > max {
		min, max = max, min
	}
	return min + r.src.Intn(max-min+1)
}

func (r *DefaultRNG) UniformReal(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.src.Float64()*(max-min)
}

func (r *DefaultRNG) IsHit(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.src.Float64() < p
}

func (r *DefaultRNG) Weighted(weights []int) int {
	best := -1
	bestKey := math.Inf(1)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		draw := -math.Log(r.UniformReal(1e-12, 1)) / float64(w)
		if draw < bestKey {
			bestKey = draw
			best = i
		}
	}
	if best < 0 && len(weights) > 0 {
		best = r.UniformInt(0, len(weights)-1)
	}
	return best
}

// Split derives a new independent stream seeded from the parent's current
// state. It mutates r's own source, so it must be called from whichever
// goroutine already owns r; the child RNG it returns has no further ties to
// r and is safe for its one assigned worker to drive on its own.
func (r *DefaultRNG) Split() RNG {
	seed := r.src.Uint64()
	return NewDefaultRNG(seed)
}

// Noise perturbs a value with probability `probability` by a uniform
// multiplicative factor drawn from `lo, hi`.
type Noise struct {
	Probability float64
	Lo, Hi      float64
	RNG         RNG
}

// NewNoise constructs a Noise generator.
func NewNoise(probability, lo, hi float64, rng RNG) Noise {
	return Noise{Probability: probability, Lo: lo, Hi: hi, RNG: rng}
}

// Apply returns value perturbed by the configured noise, or value unchanged
// if the probabilistic hit does not fire.
func (n Noise) Apply(value float64) float64 {
	if n.RNG.IsHit(n.Probability) {
		return value * n.RNG.UniformReal(n.Lo, n.Hi)
	}
	return value
}
