package clustering

import "math"

// Input is one weighted sample fed to a GSOM Network, grounded on
// original_source's vrp-core/src/algorithms/gsom/mod.rs Input trait.
type Input interface {
	Weights() []float64
}

// Node is one unit of a GSOM network: a weight vector plus the inputs it
// has absorbed since the last Drain.
type Node struct {
	Weights []float64
	inputs  []Input
	error   float64
}

// Network is a minimal Growing Self-Organizing Map over fixed-dimension
// Input weight vectors: nodes compete for each input by nearest weight
// vector (best matching unit), the winner's weights drift toward the
// input, and a node whose accumulated error exceeds growthThreshold spawns
// a neighbour by copying its weights. This trades the
// original's grid-growing topology for a flat, capacity-bounded node list,
// which is all population's Rosomaxa needs: a self-organising map from
// fitness vectors to representative solutions, not a faithful GSOM grid.
type Network struct {
	Nodes           []*Node
	LearningRate    float64
	GrowthThreshold float64
	MaxNodes        int
}

// NewNetwork builds a Network seeded from one initial node at seed's
// weights.
func NewNetwork(seed []float64, learningRate, growthThreshold float64, maxNodes int) *Network {
	weights := append([]float64{}, seed...)
	return &Network{
		Nodes:           []*Node{{Weights: weights}},
		LearningRate:    learningRate,
		GrowthThreshold: growthThreshold,
		MaxNodes:        maxNodes,
	}
}

// Train feeds one input through the network: finds the best matching unit,
// pulls its weights toward input, accumulates its error, and grows a new
// node from it once the error exceeds GrowthThreshold and MaxNodes has not
// been reached.
func (n *Network) Train(input Input) *Node {
	bmu := n.bestMatchingUnit(input.Weights())
	bmu.inputs = append(bmu.inputs, input)

	delta := 0.0
	for i, w := range bmu.Weights {
		diff := input.Weights()[i] - w
		bmu.Weights[i] = w + n.LearningRate*diff
		delta += diff * diff
	}
	bmu.error += math.Sqrt(delta)

	if bmu.error > n.GrowthThreshold && (n.MaxNodes <= 0 || len(n.Nodes) < n.MaxNodes) {
		n.grow(bmu)
		bmu.error = 0
	}
	return bmu
}

func (n *Network) bestMatchingUnit(weights []float64) *Node {
	best, bestDist := n.Nodes[0], sqDist(n.Nodes[0].Weights, weights)
	for _, node := range n.Nodes[1:] {
		d := sqDist(node.Weights, weights)
		if d < bestDist {
			best, bestDist = node, d
		}
	}
	return best
}

func (n *Network) grow(from *Node) {
	weights := make([]float64, len(from.Weights))
	copy(weights, from.Weights)
	n.Nodes = append(n.Nodes, &Node{Weights: weights})
}

// Drain removes and returns every input absorbed by every node, clearing
// each node's buffer, matching the Storage.drain contract.
func (n *Network) Drain() []Input {
	var out []Input
	for _, node := range n.Nodes {
		out = append(out, node.inputs...)
		node.inputs = nil
	}
	return out
}

func sqDist(a, b []float64) float64 {
	total := 0.0
	for i := range a {
		d := a[i] - b[i]
		total += d * d
	}
	return total
}
