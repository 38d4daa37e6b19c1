// Package population implements the three Population strategies of spec
// §4.H: NSGA-II (multi-objective non-dominated sort + crowding distance),
// Greedy (single-objective elitist), and Rosomaxa (GSOM-organised
// diversity search). NonDominatedSort, Dominates, and CrowdingDistance are
// generalised from the teacher's
// pkg/framework/plugins/multiobjective/algorithms/nsga2.go: the ranking
// math is unchanged, but individuals now wrap *model.Solution plus a
// fitness vector from model.Objective instead of the teacher's
// framework.Solution/IntegerSolution, and there is no crossover/mutation
// step — new individuals arrive from ruin-and-recreate (pkg/ruin,
// pkg/insertion), not genetic operators, since VRP tours have no natural
// crossover.
package population

import (
	"math"
	"sort"

	"github.com/vrpsolver/vrp/pkg/model"
)

// Individual wraps one evolved Solution with its cached objective vector
// and NSGA-II bookkeeping fields.
type Individual struct {
	Solution *model.Solution
	Value    []float64
	Rank     int
	Distance float64
}

// NewIndividual scores sol against objective and wraps it.
func NewIndividual(sol *model.Solution, objective model.Objective) *Individual {
	return &Individual{Solution: sol, Value: objective.Fitness(sol)}
}

// Dominates reports whether a Pareto-dominates b: no worse in every
// objective and strictly better in at least one (lower-is-better).
func Dominates(a, b *Individual) bool {
	better := false
	for i := range a.Value {
		if a.Value[i] > b.Value[i] {
			return false
		}
		if a.Value[i] < b.Value[i] {
			better = true
		}
	}
	return better
}

// NonDominatedSort partitions individuals into Pareto fronts, front 0 being
// non-dominated by anything else in the set, and assigns each individual's
// Rank to its front index.
func NonDominatedSort(individuals []*Individual) [][]*Individual {
	var fronts [][]*Individual
	dominated := make([][]int, len(individuals))
	domCount := make([]int, len(individuals))

	for i := range individuals {
		for j := range individuals {
			if i == j {
				continue
			}
			if Dominates(individuals[i], individuals[j]) {
				dominated[i] = append(dominated[i], j)
			} else if Dominates(individuals[j], individuals[i]) {
				domCount[i]++
			}
		}
	}

	var front []*Individual
	var frontIdx []int
	for i := range individuals {
		if domCount[i] == 0 {
			individuals[i].Rank = 0
			front = append(front, individuals[i])
			frontIdx = append(frontIdx, i)
		}
	}
	fronts = append(fronts, front)

	rank := 0
	for len(front) > 0 {
		var next []*Individual
		var nextIdx []int
		for _, i := range frontIdx {
			for _, j := range dominated[i] {
				domCount[j]--
				if domCount[j] == 0 {
					individuals[j].Rank = rank + 1
					next = append(next, individuals[j])
					nextIdx = append(nextIdx, j)
				}
			}
		}
		rank++
		if len(next) > 0 {
			fronts = append(fronts, next)
		}
		front, frontIdx = next, nextIdx
	}
	return fronts
}

// CrowdingDistance assigns each individual in front a measure of how
// isolated it is in objective space among its front-mates: boundary points
// get infinite distance, interior points the normalised sum of their
// neighbours' gaps per objective.
func CrowdingDistance(front []*Individual) {
	if len(front) <= 2 {
		for _, ind := range front {
			ind.Distance = math.Inf(1)
		}
		return
	}
	for _, ind := range front {
		ind.Distance = 0
	}
	numObjectives := len(front[0].Value)
	for m := 0; m < numObjectives; m++ {
		sort.Slice(front, func(i, j int) bool { return front[i].Value[m] < front[j].Value[m] })
		front[0].Distance = math.Inf(1)
		front[len(front)-1].Distance = math.Inf(1)
		span := front[len(front)-1].Value[m] - front[0].Value[m]
		if span == 0 {
			continue
		}
		for i := 1; i < len(front)-1; i++ {
			front[i].Distance += (front[i+1].Value[m] - front[i-1].Value[m]) / span
		}
	}
}

// TournamentSelect picks the better of size randomly drawn individuals,
// "better" meaning lower Rank, or (tied) higher crowding Distance.
func TournamentSelect(pool []*Individual, size int, pick func(n int) int) *Individual {
	if size < 2 {
		size = 2
	}
	best := pool[pick(len(pool))]
	for i := 1; i < size; i++ {
		contender := pool[pick(len(pool))]
		if contender.Rank < best.Rank || (contender.Rank == best.Rank && contender.Distance > best.Distance) {
			best = contender
		}
	}
	return best
}

// NSGAII is a fixed-capacity multi-objective population: Add admits a new
// individual, and every call to Prune re-sorts the combined pool into
// Pareto fronts and truncates to Capacity by crowding distance within the
// cut-off front, per spec §4.H.
type NSGAII struct {
	Capacity     int
	individuals  []*Individual
}

// NewNSGAII builds an empty NSGA-II population of the given capacity.
func NewNSGAII(capacity int) *NSGAII {
	return &NSGAII{Capacity: capacity}
}

// Add admits ind into the working pool, re-ranking and truncating to
// Capacity immediately so All/Best always reflect a pruned, ranked pool.
func (p *NSGAII) Add(ind *Individual) {
	p.individuals = append(p.individuals, ind)
	p.Prune()
}

// All returns the current pool, most-recently pruned ranking intact.
func (p *NSGAII) All() []*Individual { return p.individuals }

// Best returns the front-0 individual with the largest crowding distance,
// i.e. NSGA-II's best single representative.
func (p *NSGAII) Best() *Individual {
	if len(p.individuals) == 0 {
		return nil
	}
	best := p.individuals[0]
	for _, ind := range p.individuals[1:] {
		if ind.Rank < best.Rank || (ind.Rank == best.Rank && ind.Distance > best.Distance) {
			best = ind
		}
	}
	return best
}

// Prune re-ranks the pool via NonDominatedSort and truncates it to
// Capacity, keeping whole fronts until the next one would overflow, then
// filling the remainder from that front by descending crowding distance.
func (p *NSGAII) Prune() {
	if len(p.individuals) <= p.Capacity {
		fronts := NonDominatedSort(p.individuals)
		for _, f := range fronts {
			CrowdingDistance(f)
		}
		return
	}
	fronts := NonDominatedSort(p.individuals)
	kept := make([]*Individual, 0, p.Capacity)
	i := 0
	for i < len(fronts) && len(kept)+len(fronts[i]) <= p.Capacity {
		CrowdingDistance(fronts[i])
		kept = append(kept, fronts[i]...)
		i++
	}
	if len(kept) < p.Capacity && i < len(fronts) {
		CrowdingDistance(fronts[i])
		remaining := fronts[i]
		sort.Slice(remaining, func(a, b int) bool { return remaining[a].Distance > remaining[b].Distance })
		kept = append(kept, remaining[:p.Capacity-len(kept)]...)
	}
	p.individuals = kept
}
