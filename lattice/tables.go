package lattice

import (
	"math"
	"sync"

	"github.com/katalvlaran/dxacore/geom"
)

// CommonNeighborPair holds, for a bonded neighbor pair (i,j), the two
// further neighbor indices that together with i and j form a non-coplanar
// basis, per spec.md §3's CoordinationStructure field (iv).
type CommonNeighborPair struct {
	I, J       int
	Common     [2]int
	HasCommons bool
}

// CoordinationStructure is spec.md §3's per-structure immutable template:
// ideal neighbor vectors, CNA bond signature, per-neighbor sub-signatures,
// common-neighbor bases, primitive cell, and lattice symmetries with their
// Cayley tables.
type CoordinationStructure struct {
	Structure       StructureType
	NeighborVectors []geom.Vector3
	Bonds           [][]bool
	NeighborTag     []int // per-neighbor CNA sub-signature (coordination shell tag)
	CommonNeighbors []CommonNeighborPair
	PrimitiveCell   geom.Matrix3
	Symmetries      []Symmetry
	Product         [][]int
	InverseProduct  [][]int
	LocalCutoffHint float64 // reference cutoff for an ideal lattice at NN distance 1
}

var tableCache sync.Map // StructureType -> *CoordinationStructure

// Get returns the immutable CoordinationStructure for s, building it on
// first use. Returns nil for structures with no template (OTHER, ICO,
// GRAPHENE, the diamond-ring tags).
func Get(s StructureType) *CoordinationStructure {
	if cached, ok := tableCache.Load(s); ok {
		return cached.(*CoordinationStructure)
	}
	built := build(s)
	actual, _ := tableCache.LoadOrStore(s, built)
	return actual.(*CoordinationStructure)
}

func build(s StructureType) *CoordinationStructure {
	vectors := idealNeighborVectors(s)
	if vectors == nil {
		return nil
	}

	cs := &CoordinationStructure{
		Structure:       s,
		NeighborVectors: vectors,
		PrimitiveCell:   primitiveCell(s),
		LocalCutoffHint: localCutoffHint(s),
	}
	cs.Bonds, cs.NeighborTag = bondMatrix(s, vectors)
	cs.CommonNeighbors = commonNeighborBases(cs.Bonds)
	cs.Symmetries = symmetriesFor(s, vectors)
	cs.Product, cs.InverseProduct = buildCayleyTables(cs.Symmetries)
	return cs
}

// localCutoffHint reproduces spec.md §4.2.1's/§8's reference cutoff for an
// ideal lattice at nearest-neighbor distance 1: (1+sqrt(2))/2 for every
// structure family (the FCC/HCP/BCC/diamond formulas all reduce to this
// constant once distances are expressed in NN units; SC instead uses a
// perpendicularity test and has no scalar cutoff).
func localCutoffHint(s StructureType) float64 {
	const goldenish = (1 + math.Sqrt2) / 2
	if s == SC {
		return 0
	}
	return goldenish
}

// primitiveCell returns the conventional primitive-cell basis for s, stored
// as CoordinationStructure.PrimitiveCell; mesh elastic mapping does not use
// it (it snaps to NeighborVectors). Cubic lattices use a unit cube scaled to the NN-distance-1
// convention; HCP uses its hexagonal primitive cell.
func primitiveCell(s StructureType) geom.Matrix3 {
	switch s {
	case FCC:
		a := math.Sqrt2 // conventional cubic cell edge when NN distance = 1
		return geom.MatrixFromColumns(geom.Vector3{X: a}, geom.Vector3{Y: a}, geom.Vector3{Z: a})
	case BCC:
		a := 2 / math.Sqrt(3.0)
		return geom.MatrixFromColumns(geom.Vector3{X: a}, geom.Vector3{Y: a}, geom.Vector3{Z: a})
	case SC:
		return geom.MatrixFromColumns(geom.Vector3{X: 1}, geom.Vector3{Y: 1}, geom.Vector3{Z: 1})
	case CUBIC_DIAMOND, HEX_DIAMOND:
		a := 4 / math.Sqrt(3.0)
		return geom.MatrixFromColumns(geom.Vector3{X: a}, geom.Vector3{Y: a}, geom.Vector3{Z: a})
	case HCP:
		c := math.Sqrt(8.0 / 3.0)
		return geom.MatrixFromColumns(
			geom.Vector3{X: 1},
			geom.Vector3{X: -0.5, Y: math.Sqrt(3) / 2},
			geom.Vector3{Z: c},
		)
	default:
		return geom.Identity3()
	}
}

// bondMatrix builds the symmetric CNA bond bit-matrix between ideal
// neighbors (spec.md §4.2.1) and a per-neighbor sub-signature tag
// distinguishing coordination shells (first vs second shell for BCC and
// diamond; a single shell for FCC/HCP/SC).
func bondMatrix(s StructureType, vectors []geom.Vector3) ([][]bool, []int) {
	n := len(vectors)
	bonds := make([][]bool, n)
	for i := range bonds {
		bonds[i] = make([]bool, n)
	}
	tag := make([]int, n)

	firstShellCount := n
	switch s {
	case BCC:
		firstShellCount = 8
	case CUBIC_DIAMOND, HEX_DIAMOND:
		firstShellCount = 4
	}
	for i := 0; i < n; i++ {
		if i >= firstShellCount {
			tag[i] = 1
		}
	}

	cutoff := localCutoffHint(s)
	if s == SC {
		// Perpendicularity test in place of a distance cutoff, per spec.md
		// §4.2.1: two SC axis neighbors are "bonded" iff they are mutually
		// perpendicular (dist test would be ambiguous since all 6 vectors
		// are equidistant from the center).
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if math.Abs(vectors[i].Dot(vectors[j])) < geom.Epsilon {
					bonds[i][j] = true
					bonds[j][i] = true
				}
			}
		}
		return bonds, tag
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if s == CUBIC_DIAMOND || s == HEX_DIAMOND {
				// Only second-shell pairs matter; first-shell and
				// first/second crossings are forced to 0 (spec.md §4.2.1).
				if i < firstShellCount || j < firstShellCount {
					continue
				}
			}
			d := vectors[i].Distance(vectors[j])
			if d <= cutoff+1e-6 {
				bonds[i][j] = true
				bonds[j][i] = true
			}
		}
	}
	return bonds, tag
}

// commonNeighborBases finds, for every bonded pair (i,j), two further
// indices bonded to both i and j (spec.md §3 item (iv)); HasCommons is
// false if fewer than two such indices exist.
func commonNeighborBases(bonds [][]bool) []CommonNeighborPair {
	n := len(bonds)
	var pairs []CommonNeighborPair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !bonds[i][j] {
				continue
			}
			var commons []int
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				if bonds[i][k] && bonds[j][k] {
					commons = append(commons, k)
				}
				if len(commons) == 2 {
					break
				}
			}
			cp := CommonNeighborPair{I: i, J: j}
			if len(commons) == 2 {
				cp.Common = [2]int{commons[0], commons[1]}
				cp.HasCommons = true
			}
			pairs = append(pairs, cp)
		}
	}
	return pairs
}

// symmetriesFor selects the candidate point-group family for s and filters
// it down to the rotations that stabilize s's own neighbor template.
func symmetriesFor(s StructureType, vectors []geom.Vector3) []Symmetry {
	var candidates []geom.Matrix3
	switch s {
	case FCC, BCC, SC:
		candidates = cubicPointGroup()
	case CUBIC_DIAMOND, HEX_DIAMOND:
		candidates = tetrahedralPointGroup()
	case HCP:
		candidates = hexagonalPointGroup()
	default:
		return nil
	}
	return symmetriesForTemplate(candidates, vectors, 1e-3)
}
