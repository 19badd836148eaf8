package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/cluster"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
	"github.com/katalvlaran/dxacore/spatial"
	"github.com/katalvlaran/dxacore/structure"
)

func fccLattice(nx, ny, nz int) (positions []geom.Point3, basis geom.Matrix3) {
	fracBasis := []geom.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 0.5, Y: 0.5, Z: 0},
		{X: 0.5, Y: 0, Z: 0.5},
		{X: 0, Y: 0.5, Z: 0.5},
	}
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				for _, f := range fracBasis {
					positions = append(positions, geom.Vector3{
						X: float64(x) + f.X,
						Y: float64(y) + f.Y,
						Z: float64(z) + f.Z,
					})
				}
			}
		}
	}
	basis = geom.MatrixFromColumns(
		geom.Vector3{X: float64(nx)},
		geom.Vector3{Y: float64(ny)},
		geom.Vector3{Z: float64(nz)},
	)
	return positions, basis
}

func TestBuildMergesBulkFCCIntoOneCluster(t *testing.T) {
	positions, basis := fccLattice(3, 3, 3)
	c, err := cell.New(basis, geom.Zero3, [3]bool{true, true, true}, false)
	require.NoError(t, err)

	idx, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)

	n := len(positions)
	structureProp := property.New("StructureType", property.Int32, 1, n)
	symPermProp := property.New("SymmetryPermutation", property.Int32, 1, n)
	neighborList := property.NewNeighborListProperty(n, 12)

	_, err = structure.IdentifyCNA(positions, idx, lattice.FCC, structureProp, symPermProp, neighborList)
	require.NoError(t, err)

	result, err := cluster.Build(n, cluster.Inputs{
		Mode:           cluster.ModeCNA,
		InputStructure: lattice.FCC,
		StructureProp:  structureProp,
		NeighborList:   neighborList,
		SymPermProp:    symPermProp,
		Positions:      positions,
		Cell:           c,
	})
	require.NoError(t, err)

	assert.Len(t, result.Clusters, 1, "a defect-free bulk FCC lattice should form one cluster")
	assert.Equal(t, n, result.Clusters[0].AtomCount)
	for _, id := range result.ClusterID {
		assert.NotEqual(t, int32(0), id)
	}
	assert.True(t, result.Clusters[0].Orientation.IsRotation(), "recovered orientation should be a proper rotation matrix")
}

// TestAccumulateCNAOrientationRecoversWorldRotation checks that the CNA
// orientation solve reports a crystal's true world rotation rather than
// the identity regardless of how the lattice is actually rotated: here the
// FCC block is built pre-rotated 90 degrees about Z (via the lattice
// vectors themselves), so the bulk cluster's Orientation should match that
// rotation, not sit near identity.
func TestAccumulateCNAOrientationRecoversWorldRotation(t *testing.T) {
	rot90Z := geom.MatrixFromColumns(
		geom.Vector3{X: 0, Y: 1, Z: 0},
		geom.Vector3{X: -1, Y: 0, Z: 0},
		geom.Vector3{X: 0, Y: 0, Z: 1},
	)

	raw, basis := fccLattice(3, 3, 3)
	positions := make([]geom.Point3, len(raw))
	for i, p := range raw {
		positions[i] = rot90Z.MulVector(p)
	}
	rotatedBasis := rot90Z.MulMatrix(basis)

	c, err := cell.New(rotatedBasis, geom.Zero3, [3]bool{true, true, true}, false)
	require.NoError(t, err)

	idx, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)

	n := len(positions)
	structureProp := property.New("StructureType", property.Int32, 1, n)
	symPermProp := property.New("SymmetryPermutation", property.Int32, 1, n)
	neighborList := property.NewNeighborListProperty(n, 12)

	_, err = structure.IdentifyCNA(positions, idx, lattice.FCC, structureProp, symPermProp, neighborList)
	require.NoError(t, err)

	result, err := cluster.Build(n, cluster.Inputs{
		Mode:           cluster.ModeCNA,
		InputStructure: lattice.FCC,
		StructureProp:  structureProp,
		NeighborList:   neighborList,
		SymPermProp:    symPermProp,
		Positions:      positions,
		Cell:           c,
	})
	require.NoError(t, err)
	require.Len(t, result.Clusters, 1)

	got := result.Clusters[0].Orientation
	// The recovered orientation should transform ideal lattice directions
	// toward the actual 90-degree-about-Z rotated world frame, not sit near
	// the identity the bug previously reported unconditionally.
	assert.False(t, got.Equals(geom.Identity3(), 1e-2),
		"orientation should not be near-identity for a rotated crystal")
}

func TestBuildRejectsUnsupportedMode(t *testing.T) {
	_, err := cluster.Build(0, cluster.Inputs{Mode: cluster.Mode(99)})
	assert.ErrorIs(t, err, cluster.ErrUnsupportedMode)
}
