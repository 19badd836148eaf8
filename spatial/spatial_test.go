package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/spatial"
)

func cubicCell(t *testing.T, length float64, periodic [3]bool) *cell.SimulationCell {
	t.Helper()
	basis := geom.MatrixFromColumns(
		geom.Vector3{X: length},
		geom.Vector3{Y: length},
		geom.Vector3{Z: length},
	)
	c, err := cell.New(basis, geom.Zero3, periodic, false)
	require.NoError(t, err)
	return c
}

func TestBuildRejectsEmptyPositions(t *testing.T) {
	c := cubicCell(t, 10, [3]bool{true, true, true})
	_, err := spatial.Build(nil, c, 1.0)
	assert.ErrorIs(t, err, spatial.ErrNoPositions)
}

func TestBuildRejectsCellTooSmall(t *testing.T) {
	c := cubicCell(t, 1.0, [3]bool{true, true, true})
	_, err := spatial.Build([]geom.Point3{{}}, c, 10.0)
	assert.ErrorIs(t, err, spatial.ErrCellTooSmall)
}

// TestFindNeighborsSimpleCubicLattice lays out a small non-periodic simple
// cubic lattice and checks that the 6 face neighbors of the central atom are
// found at unit distance, nearest first.
func TestFindNeighborsSimpleCubicLattice(t *testing.T) {
	var positions []geom.Point3
	centerIdx := -1
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				p := geom.Vector3{X: float64(x), Y: float64(y), Z: float64(z)}
				if x == 0 && y == 0 && z == 0 {
					centerIdx = len(positions)
				}
				positions = append(positions, p)
			}
		}
	}
	require.GreaterOrEqual(t, centerIdx, 0)

	c := cubicCell(t, 10.0, [3]bool{false, false, false})
	idx, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)

	q := idx.NewQuery()
	neighbors := q.FindNeighbors(positions[centerIdx], 6, centerIdx)
	require.Len(t, neighbors, 6)
	for _, n := range neighbors {
		assert.InDelta(t, 1.0, n.SquaredDistance, 1e-9)
		assert.NotEqual(t, centerIdx, n.Atom)
	}
}

// TestFindNeighborsPeriodicWrap verifies that an atom near a periodic
// boundary finds its neighbor across the boundary, not just atoms within the
// raw box.
func TestFindNeighborsPeriodicWrap(t *testing.T) {
	length := 5.0
	c := cubicCell(t, length, [3]bool{true, true, true})

	positions := []geom.Point3{
		{X: 0.1, Y: 0.1, Z: 0.1},
		{X: length - 0.1, Y: 0.1, Z: 0.1},
	}
	idx, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)

	q := idx.NewQuery()
	neighbors := q.FindNeighbors(positions[0], 1, 0)
	require.Len(t, neighbors, 1)
	assert.Equal(t, 1, neighbors[0].Atom)
	// True periodic separation is 0.2 along X, not (length - 0.2).
	assert.InDelta(t, 0.2*0.2, neighbors[0].SquaredDistance, 1e-9)
}

// TestFindNeighborsDeterministicRebuild validates spec.md §8's "rebuilding
// the spatial index twice on the same positions produces identical query
// results" invariant.
func TestFindNeighborsDeterministicRebuild(t *testing.T) {
	c := cubicCell(t, 10.0, [3]bool{false, false, false})
	var positions []geom.Point3
	for i := 0; i < 50; i++ {
		positions = append(positions, geom.Vector3{
			X: float64(i % 5),
			Y: float64((i / 5) % 5),
			Z: float64(i / 25),
		})
	}

	idx1, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)
	idx2, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)

	q1 := idx1.NewQuery()
	q2 := idx2.NewQuery()
	for i := range positions {
		n1 := q1.FindNeighbors(positions[i], 4, i)
		n2 := q2.FindNeighbors(positions[i], 4, i)
		require.Equal(t, len(n1), len(n2))
		for j := range n1 {
			assert.Equal(t, n1[j].Atom, n2[j].Atom)
			assert.InDelta(t, n1[j].SquaredDistance, n2[j].SquaredDistance, 1e-12)
		}
	}
}

func TestFindNeighborsExcludesSelf(t *testing.T) {
	c := cubicCell(t, 10.0, [3]bool{false, false, false})
	positions := []geom.Point3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
	}
	idx, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)

	q := idx.NewQuery()
	neighbors := q.FindNeighbors(positions[0], 2, 0)
	require.Len(t, neighbors, 1)
	assert.Equal(t, 1, neighbors[0].Atom)
}

func TestQueryOnUnpreparedIndexPanics(t *testing.T) {
	assert.Panics(t, func() {
		idx := &spatial.Index{}
		idx.NewQuery()
	})
}
