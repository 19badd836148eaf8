package cell

import (
	"math"

	"github.com/katalvlaran/dxacore/geom"
)

// thinZExtent is the numerical-safety Z thickness forced onto a 2D cell's
// basis, per spec.md §4.1 step 1 ("force the Z axis to a thin non-zero
// value").
const thinZExtent = 1e-3

// SimulationCell is the simulation box: a 3x3 basis M, an origin, PBC flags
// per axis, and a 2D-ness flag. See spec.md §3.
type SimulationCell struct {
	basis    geom.Matrix3
	basisInv geom.Matrix3
	origin   geom.Point3
	periodic [3]bool
	is2D     bool
	volume   float64
}

// New constructs a SimulationCell from a basis (columns are the cell's edge
// vectors), an origin, and per-axis periodicity flags. If is2D is true, Z
// periodicity is forced off and the basis's Z column is replaced by a thin
// non-zero vector (spec.md §4.1 step 1), regardless of what was passed in.
//
// Returns ErrNonPositiveVolume if the resulting basis has non-positive
// signed volume.
func New(basis geom.Matrix3, origin geom.Point3, periodic [3]bool, is2D bool) (*SimulationCell, error) {
	if is2D {
		periodic[2] = false
		c0, c1 := basis.Col(0), basis.Col(1)
		basis = geom.MatrixFromColumns(c0, c1, geom.Vector3{Z: thinZExtent})
	}

	vol := basis.Determinant()
	if vol <= 0 {
		return nil, ErrNonPositiveVolume
	}

	inv, err := basis.Inverse()
	if err != nil {
		return nil, ErrNonPositiveVolume
	}

	return &SimulationCell{
		basis:    basis,
		basisInv: inv,
		origin:   origin,
		periodic: periodic,
		is2D:     is2D,
		volume:   vol,
	}, nil
}

// Basis returns the cell's 3x3 basis matrix (columns are edge vectors).
func (c *SimulationCell) Basis() geom.Matrix3 { return c.basis }

// Origin returns the cell's origin point.
func (c *SimulationCell) Origin() geom.Point3 { return c.origin }

// Volume returns the (positive) signed volume of the cell.
func (c *SimulationCell) Volume() float64 { return c.volume }

// Is2D reports whether this cell was constructed as a 2D cell.
func (c *SimulationCell) Is2D() bool { return c.is2D }

// Periodic reports whether axis i (0=X,1=Y,2=Z) is periodic.
func (c *SimulationCell) Periodic(i int) bool { return c.periodic[i] }

// CheckCutoff returns ErrCellTooSmall if any periodic axis's half-width is
// below cutoff, per spec.md §4.1 step 2 ("reject if any periodic cell
// half-width is below the intended query cutoff").
func (c *SimulationCell) CheckCutoff(cutoff float64) error {
	for axis := 0; axis < 3; axis++ {
		if !c.periodic[axis] {
			continue
		}
		edgeLen := c.basis.Col(axis).Norm()
		if edgeLen/2 < cutoff {
			return ErrCellTooSmall
		}
	}
	return nil
}

// AbsoluteToReduced maps an absolute-coordinate point to reduced (unit-cube
// for periodic axes) coordinates.
func (c *SimulationCell) AbsoluteToReduced(p geom.Point3) geom.Point3 {
	return c.basisInv.MulVector(p.Sub(c.origin))
}

// ReducedToAbsolute maps a reduced-coordinate point back to absolute space.
func (c *SimulationCell) ReducedToAbsolute(r geom.Point3) geom.Point3 {
	return c.basis.MulVector(r).Add(c.origin)
}

// WrapVector folds a displacement vector into the minimum-image convention
// on every periodic axis (each reduced component folded to [-0.5,0.5)),
// leaving non-periodic axes untouched. This is spec.md §3's "wrap(vector)";
// used by cluster.Build to recover the true neighbor displacement across a
// periodic boundary.
func (c *SimulationCell) WrapVector(v geom.Vector3) geom.Vector3 {
	r := c.basisInv.MulVector(v)
	out := r
	if c.periodic[0] {
		out.X = wrapMinImage(out.X)
	}
	if c.periodic[1] {
		out.Y = wrapMinImage(out.Y)
	}
	if c.periodic[2] {
		out.Z = wrapMinImage(out.Z)
	}
	return c.basis.MulVector(out)
}

// WrapPoint folds an absolute point back into the primary cell image on
// every periodic axis. This is spec.md §3's "wrap(point)".
func (c *SimulationCell) WrapPoint(p geom.Point3) geom.Point3 {
	r := c.AbsoluteToReduced(p)
	r = c.wrapReduced(r)
	return c.ReducedToAbsolute(r)
}

// wrapReduced folds reduced coordinates into [0,1) on periodic axes only.
func (c *SimulationCell) wrapReduced(r geom.Vector3) geom.Vector3 {
	out := r
	if c.periodic[0] {
		out.X = wrapUnit(out.X)
	}
	if c.periodic[1] {
		out.Y = wrapUnit(out.Y)
	}
	if c.periodic[2] {
		out.Z = wrapUnit(out.Z)
	}
	return out
}

// wrapUnit folds x into [0,1) via floor-based modular arithmetic.
func wrapUnit(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1.0 { // guard against floating point edge at exactly 1.0
		f -= 1.0
	}
	return f
}

// wrapMinImage folds x into [-0.5,0.5) via round-based modular arithmetic,
// the minimum-image convention for a reduced displacement component.
func wrapMinImage(x float64) float64 {
	f := x - math.Round(x)
	if f >= 0.5 { // guard against floating point edge at exactly 0.5
		f -= 1.0
	}
	return f
}

// FaceNormal returns the outward unit normal of the cell face spanned by
// the two basis vectors other than axis (0=X,1=Y,2=Z).
func (c *SimulationCell) FaceNormal(axis int) geom.Vector3 {
	a := c.basis.Col((axis + 1) % 3)
	b := c.basis.Col((axis + 2) % 3)
	n := a.Cross(b).Normalized()
	// Orient along the third (axis) basis vector: flip if it points away from it.
	if n.Dot(c.basis.Col(axis)) < 0 {
		n = n.Neg()
	}
	return n
}
