package grain

import (
	"math"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
	"github.com/katalvlaran/dxacore/spatial"
)

// NeighborBond is spec.md §4.6 step 1's per-bond record.
type NeighborBond struct {
	A, B           int
	Disorientation float64 // degrees; math.Inf(1) until computed
	Length         float64
}

// requiredNeighborCount is spec.md §4.6 step 1's per-structure neighbor
// count cap ("FCC 12, BCC 14, HCP 12, SC 6, diamonds 16, others limited to
// 8").
func requiredNeighborCount(s lattice.StructureType) int {
	switch s {
	case lattice.FCC, lattice.HCP:
		return 12
	case lattice.BCC:
		return 14
	case lattice.SC:
		return 6
	case lattice.CUBIC_DIAMOND, lattice.HEX_DIAMOND:
		return 16
	default:
		return 8
	}
}

// EnumerateBonds builds the undirected bond list of spec.md §4.6 step 1: for
// each atom of recognized structure, its ordered neighbors up to the
// structure's required count, emitted once per undirected pair (a < b).
func EnumerateBonds(positions []geom.Point3, idx *spatial.Index, structureProp *property.Property) []NeighborBond {
	n := len(positions)
	seen := make(map[[2]int]bool)
	var bonds []NeighborBond
	q := idx.NewQuery()

	for a := 0; a < n; a++ {
		s := lattice.StructureType(structureProp.Int(a, 0))
		if s == lattice.OTHER {
			continue
		}
		k := requiredNeighborCount(s)
		neighbors := q.FindNeighbors(positions[a], k, a)
		for _, nb := range neighbors {
			b := nb.Atom
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			key := [2]int{lo, hi}
			if seen[key] {
				continue
			}
			seen[key] = true
			bonds = append(bonds, NeighborBond{A: lo, B: hi, Disorientation: math.Inf(1), Length: nb.Delta.Norm()})
		}
	}
	return bonds
}
