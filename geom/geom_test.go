package geom_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector3Arithmetic(t *testing.T) {
	a := geom.Vector3{X: 1, Y: 2, Z: 3}
	b := geom.Vector3{X: 4, Y: 5, Z: 6}

	assert.Equal(t, geom.Vector3{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, geom.Vector3{X: -3, Y: -3, Z: -3}, a.Sub(b))
	assert.InDelta(t, 32.0, a.Dot(b), geom.Epsilon)
	assert.Equal(t, geom.Vector3{X: -3, Y: 6, Z: -3}, a.Cross(b))
}

func TestVector3Normalized(t *testing.T) {
	v := geom.Vector3{X: 3, Y: 4, Z: 0}
	n := v.Normalized()
	assert.InDelta(t, 1.0, n.Norm(), geom.Epsilon)

	zero := geom.Zero3.Normalized()
	assert.Equal(t, geom.Zero3, zero)
}

func TestMatrix3InverseRoundTrip(t *testing.T) {
	m := geom.Matrix3{Rows: [3]geom.Vector3{
		{2, 0, 0},
		{0, 3, 0},
		{1, 0, 4},
	}}
	inv, err := m.Inverse()
	require.NoError(t, err)

	roundTrip := m.MulMatrix(inv)
	assert.True(t, roundTrip.Equals(geom.Identity3(), 1e-9))
}

func TestMatrix3SingularInverse(t *testing.T) {
	m := geom.Matrix3{} // all zero: singular
	_, err := m.Inverse()
	require.ErrorIs(t, err, geom.ErrSingularMatrix)
}

func TestMatrix3IsRotation(t *testing.T) {
	assert.True(t, geom.Identity3().IsRotation())

	// 90 degree rotation about Z is a rotation.
	c, s := math.Cos(math.Pi/2), math.Sin(math.Pi/2)
	rotZ := geom.Matrix3{Rows: [3]geom.Vector3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}}
	assert.True(t, rotZ.IsRotation())

	// A reflection is orthogonal but not a rotation (det = -1).
	reflect := geom.Matrix3{Rows: [3]geom.Vector3{
		{-1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
	assert.True(t, reflect.IsOrthogonal())
	assert.False(t, reflect.IsRotation())
}

func TestQuaternionMatrixRoundTrip(t *testing.T) {
	q := geom.NewQuaternion(0.1, 0.2, 0.3, 0.9).Normalized()
	m := q.ToMatrix3()
	require.True(t, m.IsRotation())

	back := geom.QuaternionFromMatrix3(m)
	// q and -q represent the same rotation; compare via dot product sign.
	dot := q.W*back.W + q.X*back.X + q.Y*back.Y + q.Z*back.Z
	assert.InDelta(t, 1.0, math.Abs(dot), 1e-6)
}

func TestQuaternionInverseIsIdentity(t *testing.T) {
	q := geom.NewQuaternion(0.3, -0.1, 0.2, 0.8).Normalized()
	id := q.Mul(q.Inverse())
	assert.InDelta(t, 1.0, math.Abs(id.W), 1e-9)
	assert.InDelta(t, 0.0, id.X, 1e-9)
	assert.InDelta(t, 0.0, id.Y, 1e-9)
	assert.InDelta(t, 0.0, id.Z, 1e-9)
}

func TestDisorientationAngleIdentitySymmetryIsZero(t *testing.T) {
	q := geom.NewQuaternion(0.1, 0.2, 0.3, 0.9).Normalized()
	angle := geom.DisorientationAngle(q, q, []geom.Quaternion{geom.IdentityQuaternion})
	assert.InDelta(t, 0.0, angle, 1e-6)
}

func TestAffineTransformationInverseRoundTrip(t *testing.T) {
	a := geom.AffineTransformation{
		Linear:      geom.Matrix3{Rows: [3]geom.Vector3{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}},
		Translation: geom.Vector3{X: 1, Y: 2, Z: 3},
	}
	inv, err := a.Inverse()
	require.NoError(t, err)

	p := geom.Point3{X: 5, Y: -1, Z: 4}
	roundTrip := inv.Apply(a.Apply(p))
	assert.True(t, roundTrip.Equals(p, 1e-9))
}
