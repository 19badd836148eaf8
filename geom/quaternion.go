package geom

import "math"

// Quaternion is a unit quaternion used by PTM to represent an atom's or
// cluster's crystallographic orientation. Storage order is (W, X, Y, Z) to
// match spec.md §4.2.2's "w-first in storage"; the API (NewQuaternion,
// accessors used by serializers) is x-first per spec.md's "x-first in API",
// which is why the constructor takes (x, y, z, w) but the struct fields are
// ordered (W, X, Y, Z).
type Quaternion struct {
	W, X, Y, Z float64
}

// NewQuaternion builds a Quaternion from x,y,z,w components (API order).
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{W: w, X: x, Y: y, Z: z}
}

// IdentityQuaternion is the identity rotation.
var IdentityQuaternion = Quaternion{W: 1}

// XYZW returns the quaternion's components in x,y,z,w (API) order, the
// layout spec.md §6 mandates for the orientations[N] output array.
func (q Quaternion) XYZW() [4]float64 {
	return [4]float64{q.X, q.Y, q.Z, q.W}
}

// Norm returns the Euclidean norm of q.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized returns q scaled to unit norm. Returns q unchanged if its norm
// is within Epsilon of zero.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n < Epsilon {
		return q
	}
	inv := 1.0 / n
	return Quaternion{q.W * inv, q.X * inv, q.Y * inv, q.Z * inv}
}

// Conjugate returns the conjugate of q (negated vector part).
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{q.W, -q.X, -q.Y, -q.Z}
}

// Inverse returns q^-1. For a unit quaternion this equals Conjugate(), but
// the general form is used so callers never need to pre-normalize.
func (q Quaternion) Inverse() Quaternion {
	n2 := q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
	if n2 < Epsilon {
		return q
	}
	c := q.Conjugate()
	inv := 1.0 / n2
	return Quaternion{c.W * inv, c.X * inv, c.Y * inv, c.Z * inv}
}

// Mul returns the Hamilton product q * o (apply o first, then q).
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// ToMatrix3 converts a unit quaternion to its equivalent rotation matrix,
// using the row-vector convention fixed in DESIGN.md Open Question 1.
func (q Quaternion) ToMatrix3() Matrix3 {
	q = q.Normalized()
	w, x, y, z := q.W, q.X, q.Y, q.Z
	x2, y2, z2 := x+x, y+y, z+z
	wx, wy, wz := w*x2, w*y2, w*z2
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2

	return Matrix3{[3]Vector3{
		{1 - (yy + zz), xy + wz, xz - wy},
		{xy - wz, 1 - (xx + zz), yz + wx},
		{xz + wy, yz - wx, 1 - (xx + yy)},
	}}
}

// QuaternionFromMatrix3 extracts the unit quaternion corresponding to
// rotation matrix m, using Shepperd's method for numerical stability across
// all rotation angles. m is read in the same row-vector layout ToMatrix3
// produces, so QuaternionFromMatrix3(q.ToMatrix3()) recovers q (up to sign).
func QuaternionFromMatrix3(m Matrix3) Quaternion {
	r00, r01, r02 := m.Rows[0].X, m.Rows[1].X, m.Rows[2].X
	r10, r11, r12 := m.Rows[0].Y, m.Rows[1].Y, m.Rows[2].Y
	r20, r21, r22 := m.Rows[0].Z, m.Rows[1].Z, m.Rows[2].Z
	trace := r00 + r11 + r22

	var q Quaternion
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		q = Quaternion{
			W: 0.25 / s,
			X: (r21 - r12) * s,
			Y: (r02 - r20) * s,
			Z: (r10 - r01) * s,
		}
	case r00 > r11 && r00 > r22:
		s := 2.0 * math.Sqrt(1.0+r00-r11-r22)
		q = Quaternion{
			W: (r21 - r12) / s,
			X: 0.25 * s,
			Y: (r01 + r10) / s,
			Z: (r02 + r20) / s,
		}
	case r11 > r22:
		s := 2.0 * math.Sqrt(1.0+r11-r00-r22)
		q = Quaternion{
			W: (r02 - r20) / s,
			X: (r01 + r10) / s,
			Y: 0.25 * s,
			Z: (r12 + r21) / s,
		}
	default:
		s := 2.0 * math.Sqrt(1.0+r22-r00-r11)
		q = Quaternion{
			W: (r10 - r01) / s,
			X: (r02 + r20) / s,
			Y: (r12 + r21) / s,
			Z: 0.25 * s,
		}
	}
	return q.Normalized()
}

// DisorientationAngle returns the minimal rotation angle (radians) between
// q1 and q2 under the point-group symmetries in syms (unit quaternions).
// This is spec.md's "disorientation": the smallest angle over all
// crystallographically equivalent representations of the misorientation.
func DisorientationAngle(q1, q2 Quaternion, syms []Quaternion) float64 {
	misorientation := q1.Inverse().Mul(q2)
	best := math.Pi
	for _, s := range syms {
		candidate := misorientation.Mul(s)
		w := math.Abs(candidate.Normalized().W)
		if w > 1 {
			w = 1
		}
		angle := 2 * math.Acos(w)
		if angle < best {
			best = angle
		}
	}
	return best
}
