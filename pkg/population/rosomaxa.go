package population

import "github.com/vrpsolver/vrp/pkg/clustering"

// Rosomaxa is the GSOM-backed exploratory Population of spec §4.H: it
// trains a clustering.Network on each admitted individual's fitness
// vector, spreading the population across the objective space instead of
// collapsing onto a single Pareto front, and exposes the best individual
// absorbed by any node (by Rank, then fitness vector, among everything
// seen) as its elite.
type Rosomaxa struct {
	learningRate    float64
	growthThreshold float64
	maxNodes        int

	network *clustering.Network
	nodeOf  map[*clustering.Node][]*Individual
	elite   *Individual
}

// NewRosomaxa builds an empty Rosomaxa population; the network is created
// lazily from the first admitted individual's fitness vector, since a GSOM
// network needs at least one weight vector to seed its first node.
func NewRosomaxa(learningRate, growthThreshold float64, maxNodes int) *Rosomaxa {
	return &Rosomaxa{
		learningRate:    learningRate,
		growthThreshold: growthThreshold,
		maxNodes:        maxNodes,
		nodeOf:          make(map[*clustering.Node][]*Individual),
	}
}

// Add trains the network on ind's fitness vector and files ind under the
// winning node. Every filed individual is retained: a node's list has no
// cap and nothing is evicted.
func (p *Rosomaxa) Add(ind *Individual) {
	input := weightInput(ind.Value)
	if p.network == nil {
		p.network = clustering.NewNetwork(input, p.learningRate, p.growthThreshold, p.maxNodes)
	}
	node := p.network.Train(input)
	p.nodeOf[node] = append(p.nodeOf[node], ind)

	if p.elite == nil || betterIndividual(ind, p.elite) {
		p.elite = ind
	}
}

// Best returns the best individual seen across every node, by the same
// Rank/Distance comparison NSGA-II's Best uses, falling back to a
// lexicographic comparison of the fitness vectors when Rank and Distance
// tie (Rosomaxa itself never assigns either).
func (p *Rosomaxa) Best() *Individual { return p.elite }

// All returns every individual currently retained by any node.
func (p *Rosomaxa) All() []*Individual {
	if p.network == nil {
		return nil
	}
	var out []*Individual
	for _, node := range p.network.Nodes {
		out = append(out, p.nodeOf[node]...)
	}
	return out
}

func betterIndividual(a, b *Individual) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	for i := 0; i < len(a.Value) && i < len(b.Value); i++ {
		if a.Value[i] != b.Value[i] {
			return a.Value[i] < b.Value[i]
		}
	}
	return false
}

type weightInput []float64

func (w weightInput) Weights() []float64 { return w }
