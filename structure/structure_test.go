package structure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
	"github.com/katalvlaran/dxacore/spatial"
	"github.com/katalvlaran/dxacore/structure"
)

// fccLattice builds a small periodic conventional FCC lattice (lattice
// parameter a=1, so nearest-neighbor distance = a/sqrt(2)) of nx*ny*nz
// conventional cells, 4 atoms each.
func fccLattice(nx, ny, nz int) (positions []geom.Point3, basis geom.Matrix3) {
	const a = 1.0
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
						X: (float64(x) + f.X) * a,
						Y: (float64(y) + f.Y) * a,
						Z: (float64(z) + f.Z) * a,
					})
				}
			}
		}
	}
	basis = geom.MatrixFromColumns(
		geom.Vector3{X: float64(nx) * a},
		geom.Vector3{Y: float64(ny) * a},
		geom.Vector3{Z: float64(nz) * a},
	)
	return positions, basis
}

func TestIdentifyCNAFindsFCCBulk(t *testing.T) {
	positions, basis := fccLattice(4, 4, 4)
	c, err := cell.New(basis, geom.Zero3, [3]bool{true, true, true}, false)
	require.NoError(t, err)

	idx, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)

	n := len(positions)
	structureProp := property.New("StructureType", property.Int32, 1, n)
	symPermProp := property.New("SymmetryPermutation", property.Int32, 1, n)
	neighborList := property.NewNeighborListProperty(n, 12)

	maxDist, err := structure.IdentifyCNA(positions, idx, lattice.FCC, structureProp, symPermProp, neighborList)
	require.NoError(t, err)
	assert.Greater(t, maxDist, 0.0)

	fccCount := 0
	for i := 0; i < n; i++ {
		if lattice.StructureType(structureProp.Int(i, 0)) == lattice.FCC {
			fccCount++
		}
	}
	assert.Equal(t, n, fccCount, "every atom in a bulk periodic FCC lattice should identify as FCC")
}

func TestIdentifyPTMFindsFCCBulk(t *testing.T) {
	positions, basis := fccLattice(4, 4, 4)
	c, err := cell.New(basis, geom.Zero3, [3]bool{true, true, true}, false)
	require.NoError(t, err)

	idx, err := spatial.Build(positions, c, 1.0)
	require.NoError(t, err)

	n := len(positions)
	structureProp := property.New("StructureType", property.Int32, 1, n)
	orientationProp := property.New("Orientation", property.Float64, 4, n)
	rmsdProp := property.New("RMSD", property.Float64, 1, n)
	neighborList := property.NewNeighborListProperty(n, 12)

	err = structure.IdentifyPTM(positions, idx, structure.DefaultRMSDCutoff, structureProp, orientationProp, rmsdProp, neighborList)
	require.NoError(t, err)

	fccCount := 0
	for i := 0; i < n; i++ {
		if lattice.StructureType(structureProp.Int(i, 0)) == lattice.FCC {
			fccCount++
			assert.Less(t, rmsdProp.Float(i, 0), structure.DefaultRMSDCutoff)
		}
	}
	assert.Equal(t, n, fccCount, "every atom in a bulk periodic FCC lattice should identify as FCC under PTM")
}
