package lattice

import (
	"math"

	"github.com/katalvlaran/dxacore/geom"
)

// Symmetry is a single lattice point-group element: a rotation matrix that
// fixes the lattice, plus the permutation of neighbor-template indices it
// induces (spec.md §3's "symmetry permutation").
type Symmetry struct {
	Rotation    geom.Matrix3
	Permutation []int
}

// closeRotationGroup expands a set of generator rotations into the full
// group they generate, via BFS closure under matrix multiplication. Matrix
// equality is tested within 1e-6 to deduplicate.
func closeRotationGroup(generators []geom.Matrix3) []geom.Matrix3 {
	group := []geom.Matrix3{geom.Identity3()}
	frontier := []geom.Matrix3{geom.Identity3()}

	contains := func(set []geom.Matrix3, m geom.Matrix3) bool {
		for _, e := range set {
			if e.Equals(m, 1e-6) {
				return true
			}
		}
		return false
	}

	for len(frontier) > 0 {
		var next []geom.Matrix3
		for _, f := range frontier {
			for _, g := range generators {
				cand := f.MulMatrix(g)
				if !contains(group, cand) {
					group = append(group, cand)
					next = append(next, cand)
				}
			}
		}
		frontier = next
	}
	return group
}

// rotationAboutAxis returns the rotation matrix for angle radians about the
// given (not necessarily unit) axis, via Rodrigues' formula.
func rotationAboutAxis(axis geom.Vector3, angle float64) geom.Matrix3 {
	a := axis.Normalized()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	return geom.Matrix3{Rows: [3]geom.Vector3{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c},
	}}
}

// cubicPointGroup returns the 24 proper rotations of the cube, generated by
// closing 90-degree rotations about X and Z.
func cubicPointGroup() []geom.Matrix3 {
	gx := rotationAboutAxis(geom.Vector3{X: 1}, math.Pi/2)
	gz := rotationAboutAxis(geom.Vector3{Z: 1}, math.Pi/2)
	return closeRotationGroup([]geom.Matrix3{gx, gz})
}

// tetrahedralPointGroup returns the 12 proper rotations of the regular
// tetrahedron (the diamond lattice's point group), generated by closing a
// 120-degree rotation about a body diagonal and a 180-degree rotation about
// a cube axis.
func tetrahedralPointGroup() []geom.Matrix3 {
	g3 := rotationAboutAxis(geom.Vector3{X: 1, Y: 1, Z: 1}, 2*math.Pi/3)
	g2 := rotationAboutAxis(geom.Vector3{Z: 1}, math.Pi)
	return closeRotationGroup([]geom.Matrix3{g3, g2})
}

// hexagonalPointGroup returns the 12 rotations of the D6 dihedral group
// (the basal-plane hexagonal symmetry relevant to HCP neighbor shells),
// generated by closing a 60-degree rotation about Z and a 180-degree
// rotation about X.
func hexagonalPointGroup() []geom.Matrix3 {
	g6 := rotationAboutAxis(geom.Vector3{Z: 1}, math.Pi/3)
	g2 := rotationAboutAxis(geom.Vector3{X: 1}, math.Pi)
	return closeRotationGroup([]geom.Matrix3{g6, g2})
}

// inducedPermutation returns the permutation that rotation R induces on
// vectors, i.e. perm[i] = j such that R applied to vectors[i] equals
// vectors[j] within tolerance. Returns ok=false if R does not map the set
// onto itself (some image has no match), in which case R is not a symmetry
// of this particular neighbor template and must be discarded.
func inducedPermutation(R geom.Matrix3, vectors []geom.Vector3, tol float64) ([]int, bool) {
	perm := make([]int, len(vectors))
	used := make([]bool, len(vectors))
	for i, v := range vectors {
		image := R.MulVector(v)
		match := -1
		for j, w := range vectors {
			if used[j] {
				continue
			}
			if image.Equals(w, tol) {
				match = j
				break
			}
		}
		if match < 0 {
			return nil, false
		}
		perm[i] = match
		used[match] = true
	}
	return perm, true
}

// symmetriesForTemplate builds the Symmetry list for a neighbor-vector
// template by generating the candidate rotation group for family, then
// keeping only those rotations whose induced permutation is a valid
// bijection of the template (see doc.go for rationale).
func symmetriesForTemplate(candidates []geom.Matrix3, vectors []geom.Vector3, tol float64) []Symmetry {
	var syms []Symmetry
	seen := make([]geom.Matrix3, 0, len(candidates))
	for _, R := range candidates {
		dup := false
		for _, s := range seen {
			if s.Equals(R, 1e-6) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		if perm, ok := inducedPermutation(R, vectors, tol); ok {
			syms = append(syms, Symmetry{Rotation: R, Permutation: perm})
			seen = append(seen, R)
		}
	}
	return syms
}

// buildCayleyTables computes the Cayley product and inverse-product tables
// over syms, per spec.md §3: "the product and inverse-product tables over
// all permutations". product[i][j] is the index k such that
// syms[k].Rotation ~= syms[i].Rotation * syms[j].Rotation; inverseProduct[i][j]
// is the index of syms[i].Rotation^-1 * syms[j].Rotation. Entries default to
// -1 if no exact match is found in syms (should not occur for a closed
// group, but guards against incomplete closures from tolerance effects).
func buildCayleyTables(syms []Symmetry) (product [][]int, inverseProduct [][]int) {
	n := len(syms)
	product = make([][]int, n)
	inverseProduct = make([][]int, n)
	for i := 0; i < n; i++ {
		product[i] = make([]int, n)
		inverseProduct[i] = make([]int, n)
		inv, err := syms[i].Rotation.Inverse()
		for j := 0; j < n; j++ {
			product[i][j] = findSymmetry(syms, syms[i].Rotation.MulMatrix(syms[j].Rotation))
			if err == nil {
				inverseProduct[i][j] = findSymmetry(syms, inv.MulMatrix(syms[j].Rotation))
			} else {
				inverseProduct[i][j] = -1
			}
		}
	}
	return product, inverseProduct
}

// findSymmetry returns the index of the symmetry in syms whose rotation
// matches m within tolerance, or -1 if none matches.
func findSymmetry(syms []Symmetry, m geom.Matrix3) int {
	for i, s := range syms {
		if s.Rotation.Equals(m, 1e-4) {
			return i
		}
	}
	return -1
}
