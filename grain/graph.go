package grain

import "math"

// MaxBondDisorientationDegrees is spec.md §4.6 step 4's graph-edge cutoff.
const MaxBondDisorientationDegrees = 4.0

// Graph is spec.md §4.6 step 4's sparse undirected weighted atom graph.
// Each node's edges are kept in a map keyed by neighbor atom index; the
// teacher's red-black-tree-backed adjacency (for ordered O(log d)
// membership) is represented here with Go's built-in map, which gives the
// same amortized membership/insertion complexity without a third-party
// ordered-map dependency (none exists in the examples pack; see
// DESIGN.md's grain package entry).
type Graph struct {
	Edges       []map[int]float64
	TotalWeight []float64
}

// edgeWeight is spec.md §4.6 step 4's w(theta) = exp(-theta^2/3), theta in
// degrees.
func edgeWeight(thetaDegrees float64) float64 {
	return math.Exp(-(thetaDegrees * thetaDegrees) / 3)
}

// BuildGraph constructs the weighted atom graph from bonds under
// MaxBondDisorientationDegrees, per spec.md §4.6 step 4.
func BuildGraph(n int, bonds []NeighborBond) *Graph {
	g := &Graph{
		Edges:       make([]map[int]float64, n),
		TotalWeight: make([]float64, n),
	}
	for i := range g.Edges {
		g.Edges[i] = make(map[int]float64)
	}

	for _, b := range bonds {
		if math.IsInf(b.Disorientation, 1) || b.Disorientation >= MaxBondDisorientationDegrees {
			continue
		}
		w := edgeWeight(b.Disorientation)
		g.Edges[b.A][b.B] = w
		g.Edges[b.B][b.A] = w
		g.TotalWeight[b.A] += w
		g.TotalWeight[b.B] += w
	}
	return g
}
