package grain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/grain"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
)

// twoCliqueBonds builds a small graph of two tightly-coherent groups of
// atoms (near-zero disorientation within each group) joined by a single
// high-disorientation bridge bond, so the dendrogram should cluster each
// group internally long before it ever merges across the bridge.
func twoCliqueBonds() []grain.NeighborBond {
	// Group A: atoms 0-3, Group B: atoms 4-7.
	var bonds []grain.NeighborBond
	groupA := []int{0, 1, 2, 3}
	groupB := []int{4, 5, 6, 7}
	for i := 0; i < len(groupA); i++ {
		for j := i + 1; j < len(groupA); j++ {
			bonds = append(bonds, grain.NeighborBond{A: groupA[i], B: groupA[j], Disorientation: 0.1, Length: 1.0})
		}
	}
	for i := 0; i < len(groupB); i++ {
		for j := i + 1; j < len(groupB); j++ {
			bonds = append(bonds, grain.NeighborBond{A: groupB[i], B: groupB[j], Disorientation: 0.1, Length: 1.0})
		}
	}
	bonds = append(bonds, grain.NeighborBond{A: 3, B: 4, Disorientation: 3.9, Length: 1.0})
	return bonds
}

func identityOrientations(n int) []geom.Quaternion {
	out := make([]geom.Quaternion, n)
	for i := range out {
		out[i] = geom.IdentityQuaternion
	}
	return out
}

func TestBuildGraphSkipsBondsAtOrAboveCutoff(t *testing.T) {
	bonds := []grain.NeighborBond{
		{A: 0, B: 1, Disorientation: 3.0},
		{A: 1, B: 2, Disorientation: 4.0}, // excluded: >= cutoff
	}
	g := grain.BuildGraph(3, bonds)
	assert.Contains(t, g.Edges[0], 1)
	assert.NotContains(t, g.Edges[1], 2)
}

func TestBuildDendrogramMergesWithinGroupsBeforeBridge(t *testing.T) {
	bonds := twoCliqueBonds()
	g := grain.BuildGraph(8, bonds)
	dendrogram := grain.BuildDendrogram(g, identityOrientations(8))
	require.NotEmpty(t, dendrogram)

	// The bridge merge (combining the two fully-grown groups) must be the
	// last merge recorded, and should involve the largest component sizes.
	last := dendrogram[len(dendrogram)-1]
	assert.GreaterOrEqual(t, last.Size, 7)
}

func TestSuggestedMergingThresholdIsNotNaN(t *testing.T) {
	bonds := twoCliqueBonds()
	g := grain.BuildGraph(8, bonds)
	dendrogram := grain.BuildDendrogram(g, identityOrientations(8))
	threshold := grain.SuggestedMergingThreshold(dendrogram)
	assert.False(t, threshold != threshold) // not NaN
}

func TestAssignGrainsDiscardsSmallComponents(t *testing.T) {
	bonds := twoCliqueBonds()
	g := grain.BuildGraph(8, bonds)
	dendrogram := grain.BuildDendrogram(g, identityOrientations(8))

	// A threshold below the bridge merge's distance keeps the two groups
	// of 4 separate; minGrainAtomCount above 4 should discard both.
	bridgeDistance := dendrogram[len(dendrogram)-1].Distance
	smallThreshold := bridgeDistance - 1 // above every within-group merge, below the bridge merge
	grains := grain.AssignGrains(8, dendrogram, smallThreshold, 5, identityOrientations(8))
	assert.Empty(t, grains)

	grains = grain.AssignGrains(8, dendrogram, smallThreshold, 2, identityOrientations(8))
	assert.Len(t, grains, 2)
	for i, gr := range grains {
		assert.Equal(t, i+1, gr.ID)
		assert.Len(t, gr.Atoms, 4)
	}
}

func TestStructurePropertyStoresStructureType(t *testing.T) {
	structureProp := property.New("structure", property.Int32, 1, 2)
	structureProp.SetInt(0, 0, int32(lattice.FCC))
	structureProp.SetInt(1, 0, int32(lattice.OTHER))
	assert.Equal(t, int32(lattice.FCC), structureProp.Int(0, 0))
}

func TestLowerSymmetryAtomPrefersHCPWithinFCC(t *testing.T) {
	bonds := []grain.NeighborBond{{A: 0, B: 1}}
	structureProp := property.New("structure", property.Int32, 1, 2)
	structureProp.SetInt(0, 0, int32(lattice.FCC))
	structureProp.SetInt(1, 0, int32(lattice.HCP))
	orientationProp := property.New("orientation", property.Float64, 4, 2)
	orientationProp.SetQuaternionAt(0, geom.IdentityQuaternion)
	orientationProp.SetQuaternionAt(1, geom.IdentityQuaternion)

	grain.RelabelCoherentInterfaces(bonds, structureProp, orientationProp)
	assert.Equal(t, int32(lattice.FCC), structureProp.Int(1, 0))
}
