package clustering

import "github.com/vrpsolver/vrp/pkg/util"

// KMedoids runs up to iterations PAM-style (partitioning-around-medoids)
// iterations over [0, n), stopping early once an iteration changes neither
// the assignment nor the medoids, and returns k medoid indices and each
// point's assigned medoid.
func KMedoids(n, k int, dist Distance, rng util.RNG, iterations int) (medoids []int, assignment []int) {
	if k <= 0 || n == 0 {
		return nil, make([]int, n)
	}
	if k > n {
		k = n
	}

	medoids = samplePoints(n, k, rng)
	assignment = make([]int, n)

	for iter := 0; iter < iterations; iter++ {
		changed := assignToNearest(n, medoids, dist, assignment)
		improved := refineMedoids(n, medoids, assignment, dist)
		if !changed && !improved {
			break
		}
	}
	assignToNearest(n, medoids, dist, assignment)
	return medoids, assignment
}

func samplePoints(n, k int, rng util.RNG) []int {
	chosen := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for len(out) < k {
		i := rng.UniformInt(0, n-1)
		if _, ok := chosen[i]; ok {
			continue
		}
		chosen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}

func assignToNearest(n int, medoids []int, dist Distance, assignment []int) bool {
	changed := false
	for p := 0; p < n; p++ {
		best, bestDist := -1, 0.0
		for mi, m := range medoids {
			d := dist(p, m)
			if best == -1 || d < bestDist {
				best, bestDist = mi, d
			}
		}
		if assignment[p] != best {
			assignment[p] = best
			changed = true
		}
	}
	return changed
}

// refineMedoids replaces each medoid with the member of its cluster that
// minimises total intra-cluster distance, one pass, returning whether any
// medoid moved.
func refineMedoids(n int, medoids []int, assignment []int, dist Distance) bool {
	improved := false
	for mi, current := range medoids {
		members := membersOf(n, assignment, mi)
		if len(members) == 0 {
			continue
		}
		bestCandidate, bestCost := current, totalDistance(members, current, dist)
		for _, cand := range members {
			cost := totalDistance(members, cand, dist)
			if cost < bestCost {
				bestCandidate, bestCost = cand, cost
			}
		}
		if bestCandidate != current {
			medoids[mi] = bestCandidate
			improved = true
		}
	}
	return improved
}

func membersOf(n int, assignment []int, cluster int) []int {
	var out []int
	for p := 0; p < n; p++ {
		if assignment[p] == cluster {
			out = append(out, p)
		}
	}
	return out
}

func totalDistance(members []int, center int, dist Distance) float64 {
	total := 0.0
	for _, p := range members {
		total += dist(p, center)
	}
	return total
}
