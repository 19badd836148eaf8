package mesh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/mesh"
)

func TestTessellateRejectsTooFewPoints(t *testing.T) {
	_, err := mesh.Tessellate([]geom.Vector3{{}, {X: 1}, {Y: 1}}, []bool{false, false, false})
	assert.ErrorIs(t, err, mesh.ErrDegenerateInput)
}

func TestTessellateSingleTetrahedron(t *testing.T) {
	points := []geom.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	ghost := make([]bool, len(points))
	cells, err := mesh.Tessellate(points, ghost)
	require.NoError(t, err)
	assert.NotEmpty(t, cells)
	for _, c := range cells {
		assert.Greater(t, c.Circumradius, 0.0)
	}
}

func TestTessellateCubeLattice(t *testing.T) {
	var points []geom.Vector3
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				points = append(points, geom.Vector3{X: float64(x), Y: float64(y), Z: float64(z)})
			}
		}
	}
	ghost := make([]bool, len(points))
	cells, err := mesh.Tessellate(points, ghost)
	require.NoError(t, err)
	assert.NotEmpty(t, cells)

	mesh.Classify(cells, 1.5, func(v [4]int32) int { return 1 })
	region := mesh.SpaceFillingRegion(cells)
	assert.NotEqual(t, -2, region)
}
