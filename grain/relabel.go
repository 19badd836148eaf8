package grain

import (
	"container/heap"

	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
)

const interfaceDisorientationThreshold = 4.0 // degrees, spec.md §4.6 step 2

// relabelHeapItem is one candidate sibling-structure bond, ordered by
// ascending interfacial disorientation so the most coherent interfaces are
// relabeled first.
type relabelHeapItem struct {
	bondIdx        int
	disorientation float64
}

type relabelHeap []relabelHeapItem

func (h relabelHeap) Len() int            { return len(h) }
func (h relabelHeap) Less(i, j int) bool  { return h[i].disorientation < h[j].disorientation }
func (h relabelHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *relabelHeap) Push(x interface{}) { *h = append(*h, x.(relabelHeapItem)) }
func (h *relabelHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// RelabelCoherentInterfaces implements spec.md §4.6 step 2: for each bond
// between sibling structures (FCC/HCP, or cubic/hex diamond) with
// interfacial disorientation below 4 deg, relabel the lower-symmetry atom
// (HCP or hex-diamond) into its sibling parent structure. Iterate with a
// min-heap over candidate bonds until no further reductions occur.
func RelabelCoherentInterfaces(bonds []NeighborBond, structureProp, orientationProp *property.Property) {
	for relabelPass(bonds, structureProp, orientationProp) {
	}
}

// relabelPass runs one min-heap sweep over the current candidate bonds and
// reports whether it relabeled any atom.
func relabelPass(bonds []NeighborBond, structureProp, orientationProp *property.Property) bool {
	var h relabelHeap
	for i, b := range bonds {
		sa := lattice.StructureType(structureProp.Int(b.A, 0))
		sb := lattice.StructureType(structureProp.Int(b.B, 0))
		if parentPhaseOf(sa) == 0 || parentPhaseOf(sa) != parentPhaseOf(sb) || sa == sb {
			continue
		}
		d := interfacialDisorientation(orientationProp.QuaternionAt(b.A), orientationProp.QuaternionAt(b.B))
		if d < interfaceDisorientationThreshold {
			heap.Push(&h, relabelHeapItem{bondIdx: i, disorientation: d})
		}
	}

	relabeled := false
	for h.Len() > 0 {
		item := heap.Pop(&h).(relabelHeapItem)
		b := bonds[item.bondIdx]
		sa := lattice.StructureType(structureProp.Int(b.A, 0))
		sb := lattice.StructureType(structureProp.Int(b.B, 0))
		lower, parent := lowerSymmetryAtom(b.A, sa, b.B, sb)
		if lower < 0 {
			continue
		}
		structureProp.SetInt(lower, 0, int32(parent))
		relabeled = true
	}
	return relabeled
}

// lowerSymmetryAtom returns the atom whose structure is the lower-symmetry
// member of its sibling pair (HCP within FCC/HCP, hex-diamond within
// cubic/hex-diamond), and the parent structure to relabel it as.
func lowerSymmetryAtom(a int, sa lattice.StructureType, b int, sb lattice.StructureType) (int, lattice.StructureType) {
	switch {
	case sa == lattice.HCP && sb == lattice.FCC:
		return a, lattice.FCC
	case sb == lattice.HCP && sa == lattice.FCC:
		return b, lattice.FCC
	case sa == lattice.HEX_DIAMOND && sb == lattice.CUBIC_DIAMOND:
		return a, lattice.CUBIC_DIAMOND
	case sb == lattice.HEX_DIAMOND && sa == lattice.CUBIC_DIAMOND:
		return b, lattice.CUBIC_DIAMOND
	default:
		return -1, lattice.OTHER
	}
}
