package structure

import (
	"math"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
	"github.com/katalvlaran/dxacore/spatial"
)

// MaxInputNeighbors is spec.md §4.2.2's "up to MAX_INPUT_NEIGHBORS (~18)".
const MaxInputNeighbors = 18

// DefaultRMSDCutoff is spec.md §8's "default PTM RMSD cutoff = 0.10".
const DefaultRMSDCutoff = 0.10

// ptmCandidates is the fixed structure search order PTM tries per atom,
// per spec.md §4.2.2 (diamond handled by the dedicated short path in
// diamond.go, not here).
var ptmCandidates = []lattice.StructureType{
	lattice.FCC, lattice.HCP, lattice.BCC, lattice.SC,
}

// PTMResult is one atom's Polyhedral Template Matching outcome.
type PTMResult struct {
	Structure          lattice.StructureType
	Orientation        geom.Quaternion
	RMSD               float64
	Scale              float64
	InteratomicDistance float64
	TemplateIndex      int
	Correspondences    int64 // packed permutation + template index, spec.md §9's opaque code
	Neighbors          []int
}

// IdentifyPTM runs Polyhedral Template Matching for every position,
// trying ptmCandidates in order and keeping the lowest-RMSD match under
// rmsdCutoff. Atoms with no match under cutoff are demoted to OTHER with an
// identity orientation and zero RMSD, per spec.md §4.2.2; their neighbor-list
// row is left untouched.
func IdentifyPTM(positions []geom.Point3, idx *spatial.Index, rmsdCutoff float64, structureProp, orientationProp, rmsdProp, neighborList *property.Property) error {
	if rmsdCutoff <= 0 {
		rmsdCutoff = DefaultRMSDCutoff
	}
	q := idx.NewQuery()
	for i := range positions {
		res, ok := identifyOnePTM(positions, i, q, rmsdCutoff)
		if !ok {
			structureProp.SetInt(i, 0, int32(lattice.OTHER))
			orientationProp.SetQuaternionAt(i, geom.IdentityQuaternion)
			rmsdProp.SetFloat(i, 0, 0)
			continue
		}
		structureProp.SetInt(i, 0, int32(res.Structure))
		orientationProp.SetQuaternionAt(i, res.Orientation)
		rmsdProp.SetFloat(i, 0, res.RMSD)
		for c := 0; c < neighborList.Components; c++ {
			if c < len(res.Neighbors) {
				neighborList.SetInt(i, c, int32(res.Neighbors[c]))
			} else {
				neighborList.SetInt(i, c, -1)
			}
		}
	}
	return nil
}

func identifyOnePTM(positions []geom.Point3, i int, q *spatial.Query, rmsdCutoff float64) (PTMResult, bool) {
	best := PTMResult{RMSD: math.Inf(1)}
	found := false

	for templateIdx, s := range ptmCandidates {
		tmpl := lattice.Get(s)
		if tmpl == nil {
			continue
		}
		k := len(tmpl.NeighborVectors)
		neighbors := q.FindNeighbors(positions[i], k, i)
		if len(neighbors) < k {
			continue
		}

		observed := make([]geom.Vector3, k)
		meanDist := 0.0
		for j, n := range neighbors {
			observed[j] = n.Delta
			meanDist += n.Delta.Norm()
		}
		meanDist /= float64(k)

		bonds := observedBondMatrix(observed, meanDist)
		perm, ok := matchBondMatrix(bonds, tmpl.Bonds, tmpl.NeighborTag)
		if !ok {
			continue
		}

		rotation, rmsd, scale := fitRotation(observed, tmpl.NeighborVectors, perm, meanDist)
		if rmsd >= rmsdCutoff {
			continue
		}
		if rmsd < best.RMSD {
			ordered := make([]int, k)
			for tmplIdx, obsIdx := range perm {
				ordered[tmplIdx] = neighbors[obsIdx].Atom
			}
			best = PTMResult{
				Structure:           s,
				Orientation:         geom.QuaternionFromMatrix3(rotation),
				RMSD:                rmsd,
				Scale:               scale,
				InteratomicDistance: meanDist,
				TemplateIndex:       templateIdx,
				Correspondences:     packCorrespondences(perm, templateIdx),
				Neighbors:           ordered,
			}
			found = true
		}
	}
	return best, found
}

// observedBondMatrix builds the same kind of bond bit-matrix the CNA path
// uses, on the observed (not template) neighbor set, using meanDist-scaled
// cutoff so the topology comparison is scale-invariant.
func observedBondMatrix(observed []geom.Vector3, meanDist float64) [][]bool {
	const goldenish = (1 + math.Sqrt2) / 2
	cutoff := meanDist * goldenish
	n := len(observed)
	bonds := make([][]bool, n)
	for i := range bonds {
		bonds[i] = make([]bool, n)
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if observed[a].Distance(observed[b]) <= cutoff+1e-6*meanDist {
				bonds[a][b], bonds[b][a] = true, true
			}
		}
	}
	return bonds
}

// fitRotation computes the least-squares rigid rotation taking the
// template's ideal neighbor vectors onto the observed ones (scaled to
// meanDist), via Horn's quaternion method, plus the resulting RMSD and a
// scale factor. The scale is always 1, since the template is pre-scaled to
// meanDist rather than fitted.
func fitRotation(observed, template []geom.Vector3, perm []int, meanDist float64) (geom.Matrix3, float64, float64) {
	n := len(perm)
	scaledTemplate := make([]geom.Vector3, n)
	for i, t := range template {
		scaledTemplate[i] = t.Scale(meanDist)
	}

	var corr geom.Matrix3
	for tmplIdx, obsIdx := range perm {
		corr = corr.AddMatrix(geom.OuterProduct(scaledTemplate[tmplIdx], observed[obsIdx]))
	}

	q := optimalRotationQuaternion(corr)
	rotation := q.ToMatrix3()

	var sumSq float64
	for tmplIdx, obsIdx := range perm {
		mapped := rotation.MulVector(scaledTemplate[tmplIdx])
		diff := observed[obsIdx].Sub(mapped)
		sumSq += diff.SquaredNorm()
	}
	rmsd := math.Sqrt(sumSq/float64(n)) / meanDist
	return rotation, rmsd, 1.0
}

// optimalRotationQuaternion implements Horn's closed-form quaternion method
// for the orthogonal Procrustes problem: build the 4x4 symmetric matrix N
// from the cross-correlation matrix corr, and return its eigenvector of
// largest eigenvalue (power iteration, since no third-party linear-algebra
// dependency exists in the examples pack for small dense eigenproblems; see
// DESIGN.md's structure package entry).
func optimalRotationQuaternion(corr geom.Matrix3) geom.Quaternion {
	sxx, sxy, sxz := corr.Rows[0].X, corr.Rows[0].Y, corr.Rows[0].Z
	syx, syy, syz := corr.Rows[1].X, corr.Rows[1].Y, corr.Rows[1].Z
	szx, szy, szz := corr.Rows[2].X, corr.Rows[2].Y, corr.Rows[2].Z

	var n [4][4]float64
	n[0] = [4]float64{sxx + syy + szz, syz - szy, szx - sxz, sxy - syx}
	n[1] = [4]float64{syz - szy, sxx - syy - szz, sxy + syx, szx + sxz}
	n[2] = [4]float64{szx - sxz, sxy + syx, -sxx + syy - szz, syz + szy}
	n[3] = [4]float64{sxy - syx, szx + sxz, syz + szy, -sxx - syy + szz}

	v := [4]float64{1, 0, 0, 0}
	for iter := 0; iter < 64; iter++ {
		var next [4]float64
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				next[r] += n[r][c] * v[c]
			}
		}
		norm := math.Sqrt(next[0]*next[0] + next[1]*next[1] + next[2]*next[2] + next[3]*next[3])
		if norm < geom.Epsilon {
			break
		}
		for r := 0; r < 4; r++ {
			next[r] /= norm
		}
		v = next
	}
	return geom.Quaternion{W: v[0], X: v[1], Y: v[2], Z: v[3]}.Normalized()
}

// packCorrespondences packs the permutation and template index into a
// single 64-bit code, per spec.md §9's "64-bit packed encoding of a
// neighbor permutation and best template index". Treated as opaque outside
// this package; only the packing/unpacking pair here needs to agree.
func packCorrespondences(perm []int, templateIdx int) int64 {
	var code int64
	for _, p := range perm {
		code = (code << 5) | int64(p&0x1f)
	}
	code = (code << 8) | int64(templateIdx&0xff)
	return code
}
