package pipeline

import (
	"github.com/katalvlaran/dxacore/burgers"
	"github.com/katalvlaran/dxacore/cluster"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/grain"
	"github.com/katalvlaran/dxacore/mesh"
	"github.com/katalvlaran/dxacore/property"
)

// Result bundles spec.md §6's output contract.
type Result struct {
	StructureTypes      []int32
	AtomClusters        []int32
	Orientations        []geom.Quaternion
	Clusters            []*cluster.Cluster
	ClusterTransitions  []*cluster.Transition
	AtomicStrain        []cluster.AtomicStrain
	InterfaceMesh       *mesh.Mesh
	DislocationSegments []burgers.Segment
	Grains              []grain.Grain
	AtomGrainIDs        []int32

	// IsFailed and Error carry spec.md §7's "result bundle carries an
	// is_failed boolean and, when true, an error string" contract.
	IsFailed bool
	Error    string

	// properties retains the raw per-atom Property arrays backing the
	// slices above, in case a caller wants direct typed-array access
	// (e.g. to feed a visualization layer) rather than the copied
	// convenience slices.
	properties map[string]*property.Property
}

// Property returns the named per-atom property array backing this result
// (e.g. "structure", "orientation", "rmsd", "neighborList"), or nil if not
// retained.
func (r *Result) Property(name string) *property.Property {
	return r.properties[name]
}
