package cluster

import (
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
)

// cnaCompatible implements spec.md §4.3.1's CNA compatibility test: build
// tm1 from the central atom's ideal lattice vectors (toward the neighbor
// and two common-neighbor directions, rotated into the central atom's
// current orientation frame by its assigned symmetry permutation), and tm2
// analogously from the neighbor's own frame; accept iff some lattice
// symmetry matches the candidate transition matrix T = tm1 * tm2^-1.
func cnaCompatible(central, neighbor int, s lattice.StructureType, in Inputs) bool {
	T, ok := cnaTransitionMatrix(central, neighbor, s, in)
	if !ok {
		return false
	}
	_, matched := matchTransitionSymmetry(T, s)
	if matched >= 0 {
		in.SymPermProp.SetInt(neighbor, 0, int32(matched))
		return true
	}
	return false
}

// cnaTransitionMatrix builds the candidate transition matrix T between
// central and neighbor, or ok=false if either atom's neighbor list does not
// contain the other (should not happen for bonded pairs, but defends
// against inconsistent inputs).
func cnaTransitionMatrix(central, neighbor int, s lattice.StructureType, in Inputs) (geom.Matrix3, bool) {
	tmpl := lattice.Get(s)
	if tmpl == nil {
		return geom.Matrix3{}, false
	}

	centralSlot := findNeighborSlot(in.NeighborList, central, neighbor)
	neighborSlot := findNeighborSlot(in.NeighborList, neighbor, central)
	if centralSlot < 0 || neighborSlot < 0 {
		return geom.Matrix3{}, false
	}

	c0, c1, ok := commonNeighborBasis(tmpl, centralSlot)
	if !ok {
		return geom.Matrix3{}, false
	}
	n0, n1, ok := commonNeighborBasis(tmpl, neighborSlot)
	if !ok {
		return geom.Matrix3{}, false
	}

	tm1 := localFrame(tmpl, symIndexOf(in.SymPermProp, central), centralSlot, c0, c1)
	tm2 := localFrame(tmpl, symIndexOf(in.SymPermProp, neighbor), neighborSlot, n0, n1)

	tm2Inv, err := tm2.Inverse()
	if err != nil {
		return geom.Matrix3{}, false
	}
	return tm1.MulMatrix(tm2Inv), true
}

func symIndexOf(symPermProp *property.Property, atom int) int {
	return int(symPermProp.Int(atom, 0))
}

// localFrame builds the 3x3 matrix whose rows are the ideal neighbor
// vectors at slots (mainSlot, c0, c1), rotated into the atom's current
// orientation frame by its assigned lattice symmetry.
func localFrame(tmpl *lattice.CoordinationStructure, symIdx, mainSlot, c0, c1 int) geom.Matrix3 {
	if symIdx < 0 || symIdx >= len(tmpl.Symmetries) {
		symIdx = 0
	}
	rot := tmpl.Symmetries[symIdx].Rotation
	return geom.Matrix3{Rows: [3]geom.Vector3{
		rot.MulVector(tmpl.NeighborVectors[mainSlot]),
		rot.MulVector(tmpl.NeighborVectors[c0]),
		rot.MulVector(tmpl.NeighborVectors[c1]),
	}}
}

// commonNeighborBasis finds a CommonNeighborPair involving slot and returns
// its two common-neighbor slots.
func commonNeighborBasis(tmpl *lattice.CoordinationStructure, slot int) (c0, c1 int, ok bool) {
	for _, pair := range tmpl.CommonNeighbors {
		if !pair.HasCommons {
			continue
		}
		if pair.I == slot || pair.J == slot {
			return pair.Common[0], pair.Common[1], true
		}
	}
	return 0, 0, false
}

// findNeighborSlot returns the template slot in atom's ordered neighbor
// list holding target, or -1 if not present.
func findNeighborSlot(neighborList *property.Property, atom, target int) int {
	for slot := 0; slot < neighborList.Components; slot++ {
		if int(neighborList.Int(atom, slot)) == target {
			return slot
		}
	}
	return -1
}

// matchTransitionSymmetry returns the matched symmetry and its index, or
// index -1 if T does not match any symmetry within CATransitionMatrixEpsilon.
func matchTransitionSymmetry(T geom.Matrix3, s lattice.StructureType) (geom.Matrix3, int) {
	tmpl := lattice.Get(s)
	if tmpl == nil {
		return geom.Matrix3{}, -1
	}
	for i, sym := range tmpl.Symmetries {
		if sym.Rotation.Equals(T, CATransitionMatrixEpsilon) {
			return sym.Rotation, i
		}
	}
	return geom.Matrix3{}, -1
}
