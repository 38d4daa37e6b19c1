package model

import "github.com/vrpsolver/vrp/pkg/util"

// Job is either a Single or a Multi. Identity (not value) equality applies:
// two Job handles are the same job iff they point at the same instance.
type Job interface {
	// ID returns a stable, human-facing identifier.
	ID() string
	// Dimensions returns the job-level property bag (demand, skills, ...).
	Dimensions() Dimensions
	// Singles returns every Single that participates in this job, in the
	// order a Single job's own Places are visited, or a Multi's declared
	// jobs in index order.
	Singles() []*Single
}

// Single is a job with a non-empty ordered sequence of Places to visit
// (e.g. a delivery with one place, or a pickup-then-dropoff with two).
type Single struct {
	Id         string
	Places     []Place
	Dims       Dimensions
}

// NewSingle constructs a Single, enforcing the non-empty-places invariant.
func NewSingle(id string, places []Place, dims Dimensions) (*Single, error) {
	if len(places) == 0 {
		return nil, errNoPlaces(id)
	}
	if dims == nil {
		dims = NewDimensions()
	}
	return &Single{Id: id, Places: places, Dims: dims}, nil
}

func (s *Single) ID() string           { return s.Id }
func (s *Single) Dimensions() Dimensions { return s.Dims }
func (s *Single) Singles() []*Single    { return []*Single{s} }

// Multi bundles several Single jobs that must be visited together, subject
// to a restricted set of permitted orderings (Permutations). An empty
// Permutations set means "any ordering of s.Jobs is permitted".
type Multi struct {
	Id           string
	Jobs         []*Single
	Permutations [][]int
	Dims         Dimensions
}

// NewMulti constructs a Multi job.
func NewMulti(id string, jobs []*Single, permutations [][]int, dims Dimensions) (*Multi, error) {
	if len(jobs) == 0 {
		return nil, errNoPlaces(id)
	}
	if dims == nil {
		dims = NewDimensions()
	}
	for _, p := range permutations {
		if len(p) != len(jobs) {
			return nil, errBadPermutation(id)
		}
	}
	return &Multi{Id: id, Jobs: jobs, Permutations: permutations, Dims: dims}, nil
}

func (m *Multi) ID() string           { return m.Id }
func (m *Multi) Dimensions() Dimensions { return m.Dims }
func (m *Multi) Singles() []*Single    { return m.Jobs }

// PermittedOrderings returns the permutations of index [0, len(Jobs)) that
// are valid visiting orders for this Multi. When Permutations is empty every
// ordering is permitted, all of them generated by AllPermutations (Heap's
// algorithm).
func (m *Multi) PermittedOrderings() [][]int {
	if len(m.Permutations) > 0 {
		return m.Permutations
	}
	return AllPermutations(len(m.Jobs))
}

// AllPermutations enumerates every permutation of [0, n) using Heap's
// algorithm, matching original_source's here/src/utils/permutations.rs.
func AllPermutations(n int) [][]int {
	if n == 0 {
		return nil
	}
	idxs := make([]int, n)
	for i := range idxs {
		idxs[i] = i
	}
	var out [][]int
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			cp := make([]int, n)
			copy(cp, idxs)
			out = append(out, cp)
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				idxs[i], idxs[k-1] = idxs[k-1], idxs[i]
			} else {
				idxs[0], idxs[k-1] = idxs[k-1], idxs[0]
			}
		}
	}
	generate(n)
	return out
}

// SamplePermutations draws up to sampleSize orderings from the job's
// permitted set without replacement, matching the SAMPLE_SIZE=3 heuristic in
// original_source: the insertion evaluator need not exhaust every ordering of
// a large Multi, only a representative sample.
func SamplePermutations(m *Multi, sampleSize int, rng util.RNG) [][]int {
	all := m.PermittedOrderings()
	if len(all) <= sampleSize {
		return all
	}
	chosen := make(map[int]struct{}, sampleSize)
	out := make([][]int, 0, sampleSize)
	for len(out) < sampleSize {
		i := rng.UniformInt(0, len(all)-1)
		if _, seen := chosen[i]; seen {
			continue
		}
		chosen[i] = struct{}{}
		out = append(out, all[i])
	}
	return out
}

func errNoPlaces(id string) error {
	return &InvariantError{Entity: "job", ID: id, Reason: "must declare at least one place/single"}
}

func errBadPermutation(id string) error {
	return &InvariantError{Entity: "job", ID: id, Reason: "permutation length must equal job count"}
}

// InvariantError reports a violated build-time invariant (spec §4.A).
type InvariantError struct {
	Entity string
	ID     string
	Reason string
}

func (e *InvariantError) Error() string {
	return "model: invalid " + e.Entity + " " + e.ID + ": " + e.Reason
}
