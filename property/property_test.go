package property_test

import (
	"testing"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/property"
	"github.com/stretchr/testify/assert"
)

func TestPropertyVector3Accessors(t *testing.T) {
	p := property.New("positions", property.Float64, 3, 4)
	v := geom.Vector3{X: 1, Y: 2, Z: 3}
	p.SetVector3At(2, v)
	assert.Equal(t, v, p.Vector3At(2))
	assert.Equal(t, geom.Vector3{}, p.Vector3At(0))
}

func TestPropertyQuaternionAccessors(t *testing.T) {
	p := property.New("orientations", property.Float64, 4, 2)
	q := geom.NewQuaternion(0.1, 0.2, 0.3, 0.9)
	p.SetQuaternionAt(1, q)
	got := p.QuaternionAt(1)
	assert.InDelta(t, q.X, got.X, 1e-12)
	assert.InDelta(t, q.W, got.W, 1e-12)
}

func TestNeighborListPaddedWithMinusOne(t *testing.T) {
	p := property.NewNeighborListProperty(3, 4)
	for i := 0; i < 3; i++ {
		for c := 0; c < 4; c++ {
			assert.EqualValues(t, -1, p.Int(i, c))
		}
	}
	p.SetInt(1, 0, 7)
	assert.EqualValues(t, 7, p.Int(1, 0))
	assert.EqualValues(t, -1, p.Int(1, 1))
}

func TestPropertyRelease(t *testing.T) {
	p := property.New("tmp", property.Int32, 1, 5)
	p.Release()
	assert.Equal(t, 0, p.Len())
}

func TestPropertyOutOfRangePanics(t *testing.T) {
	p := property.New("x", property.Int32, 1, 2)
	assert.Panics(t, func() { p.Int(5, 0) })
	assert.Panics(t, func() { p.Int(0, 5) })
}
