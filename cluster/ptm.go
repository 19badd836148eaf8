package cluster

import (
	"math"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
)

// ptmCompatible implements spec.md §4.3.1's PTM compatibility test: compare
// the central and neighbor atoms' orientation quaternions via q1^-1 * q2,
// convert to a rotation matrix R, and accept if trace(R * S^T) exceeds
// 1 + 2*cos(theta) for some lattice symmetry S, where theta is the strict
// (3 deg) threshold if both atoms' RMSD < 0.1, else the relaxed (8 deg)
// threshold; SC always uses the relaxed threshold.
func ptmCompatible(central, neighbor int, s lattice.StructureType, in Inputs) bool {
	q1 := in.OrientationProp.QuaternionAt(central)
	q2 := in.OrientationProp.QuaternionAt(neighbor)
	R := q1.Inverse().Mul(q2).ToMatrix3()

	strict := s != lattice.SC &&
		in.RMSDProp.Float(central, 0) < PTMStrictRMSDBound &&
		in.RMSDProp.Float(neighbor, 0) < PTMStrictRMSDBound
	theta := PTMRelaxedThresholdDegrees
	if strict {
		theta = PTMStrictThresholdDegrees
	}
	acceptThreshold := 1 + 2*math.Cos(theta*math.Pi/180)

	tmpl := lattice.Get(s)
	if tmpl == nil {
		return false
	}

	best := -1
	bestNorm := math.Inf(1)
	accepted := false
	for i, sym := range tmpl.Symmetries {
		candidate := R.MulMatrix(sym.Rotation.Transpose())
		trace := candidate.Rows[0].X + candidate.Rows[1].Y + candidate.Rows[2].Z
		if trace > acceptThreshold {
			accepted = true
		}
		diff := candidate.AddMatrix(geom.Identity3().Scale(-1))
		norm := diff.Rows[0].SquaredNorm() + diff.Rows[1].SquaredNorm() + diff.Rows[2].SquaredNorm()
		if norm < bestNorm {
			bestNorm, best = norm, i
		}
	}
	if accepted && best >= 0 {
		return true
	}
	return false
}

// ptmTransitionMatrix builds the candidate transition matrix between two
// PTM-identified atoms, for use by buildTransitions (spec.md §4.3.2), as
// the rotation taking central's orientation frame onto neighbor's.
func ptmTransitionMatrix(central, neighbor int, in Inputs) (geom.Matrix3, bool) {
	q1 := in.OrientationProp.QuaternionAt(central)
	q2 := in.OrientationProp.QuaternionAt(neighbor)
	return q1.Inverse().Mul(q2).ToMatrix3(), true
}
