package mesh

import (
	"math"

	"github.com/katalvlaran/dxacore/geom"
)

// Tetrahedron is one Delaunay cell: four vertex indices into the point
// list passed to Tessellate, plus bookkeeping for the classification pass.
type Tetrahedron struct {
	Vertices     [4]int32
	Ghost        bool // true if any vertex is a ghost (periodic-image) copy
	Solid        bool
	Region       int
	Circumradius float64
	circumcenter geom.Vector3
}

// Tessellate builds the Delaunay tetrahedralization of points via
// incremental Bowyer-Watson insertion: start from a bounding super-tetra,
// insert points one at a time, retriangulating the cavity of tetrahedra
// whose circumsphere contains the new point, then discard every
// tetrahedron still touching a super-tetra vertex.
//
// ghost[i] marks points[i] as a periodic ghost copy (spec.md §4.4's "ghost
// copies of atoms within the ghost layer"); Tessellate itself is agnostic
// to this flag beyond propagating it onto Tetrahedron.Ghost.
func Tessellate(points []geom.Vector3, ghost []bool) ([]Tetrahedron, error) {
	if len(points) < 4 {
		return nil, ErrDegenerateInput
	}

	superPoints, superIdx := superTetrahedron(points)
	allPoints := append(append([]geom.Vector3(nil), points...), superPoints...)

	cells := []Tetrahedron{{Vertices: superIdx}}
	fillCircumsphere(&cells[0], allPoints)

	for i := range points {
		cells = insertPoint(cells, allPoints, int32(i))
	}

	var out []Tetrahedron
	for _, c := range cells {
		if touchesSuper(c, superIdx) {
			continue
		}
		g := ghost[c.Vertices[0]] || ghost[c.Vertices[1]] || ghost[c.Vertices[2]] || ghost[c.Vertices[3]]
		c.Ghost = g
		out = append(out, c)
	}
	return out, nil
}

func touchesSuper(c Tetrahedron, superIdx [4]int32) bool {
	for _, v := range c.Vertices {
		for _, s := range superIdx {
			if v == s {
				return true
			}
		}
	}
	return false
}

// superTetrahedron returns 4 points far enough outside the bounding box of
// points to guarantee every point lies inside their circumsphere-safe
// envelope, plus their indices appended after points in the combined list.
func superTetrahedron(points []geom.Vector3) ([]geom.Vector3, [4]int32) {
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = geom.Vector3{X: minf(min.X, p.X), Y: minf(min.Y, p.Y), Z: minf(min.Z, p.Z)}
		max = geom.Vector3{X: maxf(max.X, p.X), Y: maxf(max.Y, p.Y), Z: maxf(max.Z, p.Z)}
	}
	center := min.Add(max).Scale(0.5)
	extent := max.Sub(min).Norm() + 1
	scale := extent * 20

	p0 := center.Add(geom.Vector3{X: 0, Y: 0, Z: scale})
	p1 := center.Add(geom.Vector3{X: scale, Y: 0, Z: -scale})
	p2 := center.Add(geom.Vector3{X: -scale, Y: scale, Z: -scale})
	p3 := center.Add(geom.Vector3{X: -scale, Y: -scale, Z: -scale})
	base := int32(len(points))
	return []geom.Vector3{p0, p1, p2, p3}, [4]int32{base, base + 1, base + 2, base + 3}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// insertPoint performs one Bowyer-Watson insertion step for point index p.
func insertPoint(cells []Tetrahedron, points []geom.Vector3, p int32) []Tetrahedron {
	var bad []int
	for i, c := range cells {
		if inCircumsphere(c, points[p]) {
			bad = append(bad, i)
		}
	}
	if len(bad) == 0 {
		return cells
	}

	boundary := boundaryFaces(cells, bad)

	badSet := make(map[int]bool, len(bad))
	for _, i := range bad {
		badSet[i] = true
	}
	var kept []Tetrahedron
	for i, c := range cells {
		if !badSet[i] {
			kept = append(kept, c)
		}
	}

	for _, f := range boundary {
		nc := Tetrahedron{Vertices: [4]int32{f[0], f[1], f[2], p}}
		fillCircumsphere(&nc, points)
		kept = append(kept, nc)
	}
	return kept
}

// boundaryFaces returns the faces of the bad-tetrahedra cavity that are
// shared with exactly one bad tetrahedron (the cavity's outer boundary).
func boundaryFaces(cells []Tetrahedron, bad []int) [][3]int32 {
	count := make(map[[3]int32]int)
	order := make(map[[3]int32][3]int32)
	for _, i := range bad {
		for _, f := range facesOf(cells[i]) {
			key := sortedFace(f)
			count[key]++
			order[key] = f
		}
	}
	var boundary [][3]int32
	for key, c := range count {
		if c == 1 {
			boundary = append(boundary, order[key])
		}
	}
	return boundary
}

func facesOf(t Tetrahedron) [][3]int32 {
	v := t.Vertices
	return [][3]int32{
		{v[0], v[1], v[2]},
		{v[0], v[1], v[3]},
		{v[0], v[2], v[3]},
		{v[1], v[2], v[3]},
	}
}

func sortedFace(f [3]int32) [3]int32 {
	a, b, c := f[0], f[1], f[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]int32{a, b, c}
}

// fillCircumsphere computes and stores t's circumcenter and circumradius.
func fillCircumsphere(t *Tetrahedron, points []geom.Vector3) {
	a, b, c, d := points[t.Vertices[0]], points[t.Vertices[1]], points[t.Vertices[2]], points[t.Vertices[3]]
	center, radius := circumsphere(a, b, c, d)
	t.circumcenter = center
	t.Circumradius = radius
}

// circumsphere returns the center and radius of the sphere through a,b,c,d.
// The center, relative to a, is the offset solving
//
//	dot(ba, offset) = |ba|^2 / 2
//	dot(ca, offset) = |ca|^2 / 2
//	dot(da, offset) = |da|^2 / 2
//
// (the three perpendicular-bisector planes of (b-a),(c-a),(d-a)), solved
// directly via Cramer's rule rather than geom.Matrix3.Inverse to avoid any
// ambiguity between this equation's "matrix times column vector" shape and
// Matrix3's row-vector-on-the-left convention (DESIGN.md Open Question 1).
func circumsphere(a, b, c, d geom.Vector3) (geom.Vector3, float64) {
	ba, ca, da := b.Sub(a), c.Sub(a), d.Sub(a)
	rhs := geom.Vector3{
		X: 0.5 * ba.SquaredNorm(),
		Y: 0.5 * ca.SquaredNorm(),
		Z: 0.5 * da.SquaredNorm(),
	}

	det := ba.Dot(ca.Cross(da))
	if math.Abs(det) < 1e-12 {
		centroid := a.Add(b).Add(c).Add(d).Scale(0.25)
		return centroid, centroid.Distance(a)
	}

	// Cramer's rule: offset_k = det(replace column k of [ba;ca;da] with
	// rhs) / det([ba;ca;da]), using the rows-as-vectors / cross-product
	// identity for a 3x3 determinant with one column replaced.
	col0 := geom.Vector3{X: ba.X, Y: ca.X, Z: da.X}
	col1 := geom.Vector3{X: ba.Y, Y: ca.Y, Z: da.Y}
	col2 := geom.Vector3{X: ba.Z, Y: ca.Z, Z: da.Z}

	detX := rhs.Dot(geom.Vector3{X: col1.Y*col2.Z - col1.Z*col2.Y, Y: col1.Z*col2.X - col1.X*col2.Z, Z: col1.X*col2.Y - col1.Y*col2.X})
	detY := rhs.Dot(geom.Vector3{X: col0.Y*col2.Z - col0.Z*col2.Y, Y: col0.Z*col2.X - col0.X*col2.Z, Z: col0.X*col2.Y - col0.Y*col2.X})
	detZ := rhs.Dot(geom.Vector3{X: col0.Y*col1.Z - col0.Z*col1.Y, Y: col0.Z*col1.X - col0.X*col1.Z, Z: col0.X*col1.Y - col0.Y*col1.X})

	offset := geom.Vector3{X: detX / det, Y: -detY / det, Z: detZ / det}
	center := a.Add(offset)
	return center, center.Distance(a)
}

func inCircumsphere(t Tetrahedron, p geom.Vector3) bool {
	return t.circumcenter.Distance(p) <= t.Circumradius+1e-9
}
