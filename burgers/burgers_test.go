package burgers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/dxacore/burgers"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/mesh"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := burgers.DefaultConfig(0)
	assert.Equal(t, burgers.DefaultMaxTrialCircuitSize, cfg.MaxTrialCircuitSize)
	assert.Equal(t, burgers.DefaultCircuitStretchability, cfg.CircuitStretchability)
}

func TestFindSeedsFlagsNonClosingFace(t *testing.T) {
	v1, v2, v3 := geom.Vector3{X: 1}, geom.Vector3{Y: 1}, geom.Vector3{Z: 1}
	m := &mesh.Mesh{Faces: []mesh.Face{
		{Vertices: [3]int32{0, 1, 2}, LatticeVecs: [3]*geom.Vector3{&v1, &v2, &v3}},
	}}
	seeds := burgers.FindSeeds(m, 1e-6)
	assert.Len(t, seeds, 1)
}

func TestFindSeedsSkipsBalancedFace(t *testing.T) {
	v1, v2 := geom.Vector3{X: 1}, geom.Vector3{X: -1}
	zero := geom.Vector3{}
	m := &mesh.Mesh{Faces: []mesh.Face{
		{Vertices: [3]int32{0, 1, 2}, LatticeVecs: [3]*geom.Vector3{&v1, &v2, &zero}},
	}}
	seeds := burgers.FindSeeds(m, 1e-6)
	assert.Empty(t, seeds)
}

func TestMergeProvenanceChainsOverlappingSegments(t *testing.T) {
	segments := []burgers.Segment{
		{ID: 1, ReplacedWith: -1},
		{ID: 2, ReplacedWith: -1},
	}
	sets := []map[int]bool{
		{0: true, 1: true},
		{1: true, 2: true},
	}
	burgers.MergeProvenance(segments, sets)
	assert.True(t, segments[0].ReplacedWith == -1 || segments[1].ReplacedWith == -1)
}
