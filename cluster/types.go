package cluster

import (
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
)

// Mode selects which structure-identification output cluster building
// consumes, per spec.md §4.3.
type Mode int

const (
	ModeCNA Mode = iota
	ModePTM
)

// CATransitionMatrixEpsilon is spec.md §8's "CA_TRANSITION_MATRIX_EPSILON
// (1e-6)", the tolerance for matching a candidate transition matrix T
// against a lattice symmetry.
const CATransitionMatrixEpsilon = 1e-6

// PTMStrictThresholdDegrees / PTMRelaxedThresholdDegrees are spec.md §8's
// PTM orientation-compatibility thresholds.
const (
	PTMStrictThresholdDegrees  = 3.0
	PTMRelaxedThresholdDegrees = 8.0
	PTMStrictRMSDBound         = 0.1
)

// Cluster is spec.md §4.3's per-cluster record: a contiguous set of atoms
// sharing a structure type and an orientation frame.
type Cluster struct {
	ID                     int
	Structure              lattice.StructureType
	AtomCount              int
	Orientation            geom.Matrix3
	SymmetryTransformation int // index into lattice symmetries chosen by the preferred-orientation post-rotation; recorded only, super-grain merging does not read it

	// parentTransition is the super-grain union-find's path-compressed
	// link to this cluster's root, encoding the net rotation from this
	// cluster to its root crystal cluster. Nil until merged (§4.3.3).
	parentTransition *Transition

	// accV, accW accumulate the CNA orientation solve's lattice-lattice
	// and lattice-spatial outer-product matrices (spec.md §4.3.1); unused
	// for PTM clusters, whose orientation is set directly from the seed
	// atom's quaternion.
	accV, accW geom.Matrix3
}

// Transition is spec.md §4.3.2's cluster-cluster adjacency record: a
// rotation matrix mapping cluster From's orientation frame onto cluster
// To's, plus a contact area (bond count).
type Transition struct {
	From, To int
	TM       geom.Matrix3
	Area     int
	distance int // 1 for direct atom-adjacency transitions, 2 for super-grain merge transitions (§4.3.3)
}

// Result bundles everything cluster.Build produces.
type Result struct {
	ClusterID   []int32 // per-atom cluster id, 0 = unassigned
	Clusters    []*Cluster
	Transitions []*Transition
}
