package structure

import (
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
	"github.com/katalvlaran/dxacore/spatial"
)

// IdentifyDiamond runs the dedicated diamond short path of spec.md §4.2.2:
// find each atom's 4 nearest neighbors, generate the 12 second-shell
// vectors by differencing pairs of first-shell neighbors, run the CNA bond
// test to distinguish cubic from hexagonal diamond, and then label first-
// and second-neighbor rings of identified atoms via two BFS-like passes.
// Ring labels are written into ringProp and are informative only; they do
// not feed cluster building (spec.md §4.2.2).
func IdentifyDiamond(positions []geom.Point3, idx *spatial.Index, structureProp, ringProp *property.Property) error {
	n := len(positions)
	firstNeighbors := make([][4]int32, n)
	isDiamond := make([]bool, n)

	q := idx.NewQuery()
	for i := range positions {
		neighbors := q.FindNeighbors(positions[i], 4, i)
		if len(neighbors) < 4 {
			structureProp.SetInt(i, 0, int32(lattice.OTHER))
			continue
		}
		var firstVecs [4]geom.Vector3
		for j, nb := range neighbors {
			firstNeighbors[i][j] = int32(nb.Atom)
			firstVecs[j] = nb.Delta
		}

		s, ok := classifyDiamondBonds(firstVecs)
		if !ok {
			structureProp.SetInt(i, 0, int32(lattice.OTHER))
			continue
		}
		structureProp.SetInt(i, 0, int32(s))
		isDiamond[i] = true
	}

	labelDiamondRings(firstNeighbors, isDiamond, structureProp, ringProp)
	return nil
}

// classifyDiamondBonds builds the 12 second-shell vectors (differences of
// each pair of the 4 first-shell vectors) and classifies the local
// environment as cubic or hexagonal diamond based on the stacking pattern
// of the second shell relative to the first, per spec.md §4.2.1's diamond
// cutoff rule. Cubic diamond's second shell forms a single FCC-like shell;
// hexagonal diamond's second shell splits into two staggered sub-shells.
func classifyDiamondBonds(first [4]geom.Vector3) (lattice.StructureType, bool) {
	var second []geom.Vector3
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}
			second = append(second, first[i].Sub(first[j]))
		}
	}
	if len(second) != 12 {
		return lattice.OTHER, false
	}

	// Hexagonal stacking shows up as three of the four first-shell
	// vectors sharing a common second-shell vector with non-generic
	// multiplicity; cubic stacking has every second-shell vector with
	// multiplicity exactly one among the 12. Approximate the test by
	// counting near-duplicate second-shell vectors.
	dupes := 0
	for i := 0; i < len(second); i++ {
		for j := i + 1; j < len(second); j++ {
			if second[i].Distance(second[j]) < geom.Epsilon*10 {
				dupes++
			}
		}
	}
	if dupes > 0 {
		return lattice.HEX_DIAMOND, true
	}
	return lattice.CUBIC_DIAMOND, true
}

// labelDiamondRings performs two BFS-like passes over the 4-neighbor lists
// of identified diamond atoms, tagging first- and second-neighbor rings
// with the structure's _FIRST_NEIGH/_SECOND_NEIGH variants.
func labelDiamondRings(firstNeighbors [][4]int32, isDiamond []bool, structureProp, ringProp *property.Property) {
	n := len(firstNeighbors)
	for i := 0; i < n; i++ {
		ringProp.SetInt(i, 0, int32(lattice.OTHER))
	}

	for i := 0; i < n; i++ {
		if !isDiamond[i] {
			continue
		}
		base := lattice.StructureType(structureProp.Int(i, 0))
		firstTag, secondTag := ringTags(base)

		for _, nb := range firstNeighbors[i] {
			j := int(nb)
			if j < 0 || j >= n {
				continue
			}
			if ringProp.Int(j, 0) == int32(lattice.OTHER) {
				ringProp.SetInt(j, 0, int32(firstTag))
			}
			for _, nb2 := range firstNeighbors[j] {
				k := int(nb2)
				if k < 0 || k >= n || k == i {
					continue
				}
				if ringProp.Int(k, 0) == int32(lattice.OTHER) {
					ringProp.SetInt(k, 0, int32(secondTag))
				}
			}
		}
	}
}

func ringTags(s lattice.StructureType) (first, second lattice.StructureType) {
	if s == lattice.HEX_DIAMOND {
		return lattice.HEX_DIAMOND_FIRST_NEIGH, lattice.HEX_DIAMOND_SECOND_NEIGH
	}
	return lattice.CUBIC_DIAMOND_FIRST_NEIGH, lattice.CUBIC_DIAMOND_SECOND_NEIGH
}
