package geom

import "math"

// Vector3 is a three-component double-precision vector. It is also used to
// represent Point3 (spec.md §3): the two are the same underlying type, the
// distinction is purely one of intent at the call site.
type Vector3 struct {
	X, Y, Z float64
}

// Point3 is an alias for Vector3, matching spec.md §3's "Point3 / Vector3"
// data model entry: both are three doubles with arithmetic, dot, cross, norm.
type Point3 = Vector3

// Zero3 is the additive identity vector.
var Zero3 = Vector3{}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Dot returns the scalar dot product v . o.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector cross product v x o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// SquaredNorm returns |v|^2. Preferred over Norm when only comparisons
// between lengths are needed, since it avoids a sqrt on hot paths (spatial
// k-NN pruning in particular calls this per candidate).
func (v Vector3) SquaredNorm() float64 {
	return v.Dot(v)
}

// Norm returns the Euclidean length |v|.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.SquaredNorm())
}

// Normalized returns v scaled to unit length. If v is (numerically) zero,
// it returns v unchanged rather than dividing by zero.
func (v Vector3) Normalized() Vector3 {
	n := v.Norm()
	if n < Epsilon {
		return v
	}
	return v.Scale(1.0 / n)
}

// Equals reports whether v and o are equal within the given absolute
// per-component tolerance eps.
func (v Vector3) Equals(o Vector3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// SquaredDistance returns |v - o|^2.
func (v Vector3) SquaredDistance(o Vector3) float64 {
	return v.Sub(o).SquaredNorm()
}

// Distance returns |v - o|.
func (v Vector3) Distance(o Vector3) float64 {
	return math.Sqrt(v.SquaredDistance(o))
}
