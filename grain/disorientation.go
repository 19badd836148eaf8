package grain

import (
	"math"
	"sort"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
)

// parentPhaseOf is spec.md §4.6 step 2's "parent phase" grouping:
// FCC/HCP are siblings, as are cubic/hex diamond.
func parentPhaseOf(s lattice.StructureType) int {
	switch s {
	case lattice.FCC, lattice.HCP:
		return 1
	case lattice.CUBIC_DIAMOND, lattice.HEX_DIAMOND:
		return 2
	default:
		return 0
	}
}

// ComputeDisorientations fills in bonds' Disorientation field, per spec.md
// §4.6 step 3: the PTM disorientation angle (degrees) for same-structure
// bonds using lattice symmetries as the quotient group, the interfacial
// routine for cross-phase sibling bonds, and +Inf otherwise. Bonds are
// sorted ascending by disorientation afterward.
func ComputeDisorientations(bonds []NeighborBond, structureProp, orientationProp *property.Property) {
	symQuats := make(map[lattice.StructureType][]geom.Quaternion)
	quatOf := func(a int) geom.Quaternion { return orientationProp.QuaternionAt(a) }

	for i := range bonds {
		b := &bonds[i]
		sa := lattice.StructureType(structureProp.Int(b.A, 0))
		sb := lattice.StructureType(structureProp.Int(b.B, 0))

		if sa == sb {
			syms, ok := symQuats[sa]
			if !ok {
				tmpl := lattice.Get(sa)
				if tmpl != nil {
					syms = make([]geom.Quaternion, len(tmpl.Symmetries))
					for j, s := range tmpl.Symmetries {
						syms[j] = geom.QuaternionFromMatrix3(s.Rotation)
					}
				}
				symQuats[sa] = syms
			}
			if len(syms) == 0 {
				continue
			}
			angle := geom.DisorientationAngle(quatOf(b.A), quatOf(b.B), syms)
			b.Disorientation = angle * 180 / math.Pi
			continue
		}

		if parentPhaseOf(sa) != 0 && parentPhaseOf(sa) == parentPhaseOf(sb) {
			b.Disorientation = interfacialDisorientation(quatOf(b.A), quatOf(b.B))
		}
	}
	sort.Slice(bonds, func(i, j int) bool { return bonds[i].Disorientation < bonds[j].Disorientation })
}

// interfacialDisorientation is the supplemented cross-phase disorientation
// routine: the plain quaternion angle between the two
// atoms' orientations, in degrees, with no point-group quotient since the
// two phases do not share a common symmetry group.
func interfacialDisorientation(q1, q2 geom.Quaternion) float64 {
	angle := geom.DisorientationAngle(q1, q2, []geom.Quaternion{geom.IdentityQuaternion})
	return angle * 180 / math.Pi
}
