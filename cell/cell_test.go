package cell_test

import (
	"testing"

	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubicCell(t *testing.T, edge float64, periodic [3]bool) *cell.SimulationCell {
	t.Helper()
	basis := geom.MatrixFromColumns(
		geom.Vector3{X: edge},
		geom.Vector3{Y: edge},
		geom.Vector3{Z: edge},
	)
	c, err := cell.New(basis, geom.Point3{}, periodic, false)
	require.NoError(t, err)
	return c
}

func TestSimulationCellVolume(t *testing.T) {
	c := cubicCell(t, 4.0, [3]bool{true, true, true})
	assert.InDelta(t, 64.0, c.Volume(), 1e-9)
}

func TestSimulationCellNonPositiveVolume(t *testing.T) {
	basis := geom.Matrix3{} // all-zero basis: zero volume
	_, err := cell.New(basis, geom.Point3{}, [3]bool{}, false)
	require.ErrorIs(t, err, cell.ErrNonPositiveVolume)
}

func TestSimulationCellCheckCutoff(t *testing.T) {
	c := cubicCell(t, 4.0, [3]bool{true, true, true})
	assert.NoError(t, c.CheckCutoff(1.5))
	assert.ErrorIs(t, c.CheckCutoff(3.0), cell.ErrCellTooSmall)
}

func TestSimulationCellWrapPoint(t *testing.T) {
	c := cubicCell(t, 4.0, [3]bool{true, true, true})
	p := geom.Point3{X: 4.5, Y: -0.5, Z: 2.0}
	wrapped := c.WrapPoint(p)
	assert.InDelta(t, 0.5, wrapped.X, 1e-9)
	assert.InDelta(t, 3.5, wrapped.Y, 1e-9)
	assert.InDelta(t, 2.0, wrapped.Z, 1e-9)
}

func TestSimulationCell2DForcesNonPeriodicZ(t *testing.T) {
	basis := geom.MatrixFromColumns(
		geom.Vector3{X: 4},
		geom.Vector3{Y: 4},
		geom.Vector3{Z: 4},
	)
	c, err := cell.New(basis, geom.Point3{}, [3]bool{true, true, true}, true)
	require.NoError(t, err)
	assert.False(t, c.Periodic(2))
	assert.True(t, c.Is2D())
}

func TestSimulationCellReducedRoundTrip(t *testing.T) {
	c := cubicCell(t, 4.0, [3]bool{true, true, true})
	p := geom.Point3{X: 1.2, Y: 2.4, Z: 3.6}
	r := c.AbsoluteToReduced(p)
	back := c.ReducedToAbsolute(r)
	assert.True(t, back.Equals(p, 1e-9))
}
