package lattice_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFCCLocalCutoff verifies spec.md §8's boundary behavior: "The CNA
// local cutoff for an ideal FCC lattice at nearest-neighbor distance 1
// equals (1+sqrt(2))/2 ~= 1.2071068".
func TestFCCLocalCutoff(t *testing.T) {
	cs := lattice.Get(lattice.FCC)
	require.NotNil(t, cs)
	assert.InDelta(t, 1.2071068, cs.LocalCutoffHint, 1e-6)
}

func TestCoordinationNumbers(t *testing.T) {
	assert.Equal(t, 12, lattice.CoordinationNumber(lattice.FCC))
	assert.Equal(t, 12, lattice.CoordinationNumber(lattice.HCP))
	assert.Equal(t, 14, lattice.CoordinationNumber(lattice.BCC))
	assert.Equal(t, 16, lattice.CoordinationNumber(lattice.CUBIC_DIAMOND))
	assert.Equal(t, 6, lattice.CoordinationNumber(lattice.SC))
	assert.Equal(t, 0, lattice.CoordinationNumber(lattice.OTHER))
}

func TestFCCTemplateHasTwelveNeighborsAtUnitDistance(t *testing.T) {
	cs := lattice.Get(lattice.FCC)
	require.Len(t, cs.NeighborVectors, 12)
	for _, v := range cs.NeighborVectors {
		assert.InDelta(t, 1.0, v.Norm(), 1e-9)
	}
}

func TestDiamondTemplateHasSixteenNeighbors(t *testing.T) {
	cs := lattice.Get(lattice.CUBIC_DIAMOND)
	require.NotNil(t, cs)
	assert.Len(t, cs.NeighborVectors, 16)
}

// TestSymmetryGroupClosedUnderCayleyTable spot-checks spec.md §3's
// requirement that product/inverse-product tables are consistent: for
// every symmetry i, product[i][identity] == i.
func TestSymmetryGroupClosedUnderCayleyTable(t *testing.T) {
	cs := lattice.Get(lattice.FCC)
	require.NotEmpty(t, cs.Symmetries)

	identityIdx := -1
	for i, s := range cs.Symmetries {
		if s.Rotation.Equals(geom.Identity3(), 1e-6) {
			identityIdx = i
			break
		}
	}
	require.GreaterOrEqual(t, identityIdx, 0)

	for i := range cs.Symmetries {
		assert.Equal(t, i, cs.Product[i][identityIdx])
		assert.Equal(t, i, cs.Product[identityIdx][i])
	}
}

func TestFCCHasFullCubicSymmetryGroup(t *testing.T) {
	cs := lattice.Get(lattice.FCC)
	// The FCC 12-neighbor shell (cuboctahedron) is stable under the full
	// 24-element proper cubic rotation group.
	assert.Len(t, cs.Symmetries, 24)
}

func TestBondMatrixSymmetric(t *testing.T) {
	cs := lattice.Get(lattice.FCC)
	n := len(cs.Bonds)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, cs.Bonds[i][j], cs.Bonds[j][i])
		}
	}
}

func TestHCPPrimitiveCellVolumePositive(t *testing.T) {
	cs := lattice.Get(lattice.HCP)
	require.NotNil(t, cs)
	assert.Greater(t, math.Abs(cs.PrimitiveCell.Determinant()), 0.0)
}
