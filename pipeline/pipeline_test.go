package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/dxaerr"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/pipeline"
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

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	c := cubicCell(t, 10, [3]bool{true, true, true})
	result, err := pipeline.Analyze(context.Background(), nil, c, nil)
	require.Error(t, err)
	assert.True(t, result.IsFailed)
	assert.ErrorIs(t, err, dxaerr.ErrZeroAtoms)
}

func TestAnalyzeRejectsNilCell(t *testing.T) {
	result, err := pipeline.Analyze(context.Background(), []geom.Point3{{}}, nil, nil)
	require.Error(t, err)
	assert.True(t, result.IsFailed)
	assert.ErrorIs(t, err, dxaerr.ErrDegenerateCell)
}

func TestAnalyzeRejectsNegativeSmoothingLevel(t *testing.T) {
	c := cubicCell(t, 10, [3]bool{true, true, true})
	_, err := pipeline.Analyze(context.Background(), []geom.Point3{{}}, c, nil, pipeline.WithSmoothingLevel(-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, dxaerr.ErrBadOption)
}

func TestAnalyzeSingleIsolatedAtom(t *testing.T) {
	c := cubicCell(t, 10, [3]bool{false, false, false})
	positions := []geom.Point3{{}}
	result, err := pipeline.Analyze(context.Background(), positions, c, nil, pipeline.WithInputStructure(lattice.FCC))
	require.NoError(t, err)
	require.False(t, result.IsFailed)
	require.Len(t, result.StructureTypes, 1)
	assert.Equal(t, int32(lattice.OTHER), result.StructureTypes[0])
	assert.Empty(t, result.Clusters)
}

// fccConventionalCell builds a 4-atom periodic conventional FCC cell with
// lattice parameter a, used to check spec.md §8's "perfect defect-free FCC
// crystal" boundary behavior (one cluster, zero transitions).
func fccConventionalCell(t *testing.T, a float64) ([]geom.Point3, *cell.SimulationCell) {
	t.Helper()
	c := cubicCell(t, a, [3]bool{true, true, true})
	positions := []geom.Point3{
		{X: 0, Y: 0, Z: 0},
		{X: a / 2, Y: a / 2, Z: 0},
		{X: a / 2, Y: 0, Z: a / 2},
		{X: 0, Y: a / 2, Z: a / 2},
	}
	return positions, c
}

func TestAnalyzePerfectFCCSingleCluster(t *testing.T) {
	positions, c := fccConventionalCell(t, 4.0)
	result, err := pipeline.Analyze(context.Background(), positions, c, nil,
		pipeline.WithInputStructure(lattice.FCC), pipeline.WithMode(pipeline.ModeCNA))
	require.NoError(t, err)
	require.False(t, result.IsFailed)

	for _, s := range result.StructureTypes {
		assert.Equal(t, int32(lattice.FCC), s)
	}
	require.Len(t, result.Clusters, 1)
	assert.Equal(t, len(positions), result.Clusters[0].AtomCount)
	assert.Empty(t, result.ClusterTransitions)
}
