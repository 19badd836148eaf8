package grain

import (
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/property"
	"github.com/katalvlaran/dxacore/spatial"
)

// Options configures Segment, spec.md §4.6's end-to-end grain segmentation
// entry point.
type Options struct {
	// RelabelCoherentInterfaces enables step 2's sibling-structure
	// relabeling pass before bonds are disoriented and graphed.
	RelabelCoherentInterfaces bool
	// MinGrainAtomCount is step 7's discard floor; 0 uses
	// DefaultMinGrainAtomCount.
	MinGrainAtomCount int
	// Threshold overrides the regression-suggested cut (step 6) when
	// non-zero; most callers leave this at zero to use the automatic fit.
	Threshold float64
}

// Result is Segment's output.
type Result struct {
	Bonds      []NeighborBond
	Graph      *Graph
	Dendrogram []DendrogramNode
	Threshold  float64
	Grains     []Grain
}

// Segment runs spec.md §4.6 steps 1-7 in sequence: enumerate bonds,
// optionally relabel coherent interfaces, compute disorientations, build
// the weighted atom graph, cluster it with the nearest-neighbor-chain
// dendrogram, fit the threshold regression (unless overridden), and
// assign final grains.
func Segment(positions []geom.Point3, idx *spatial.Index, structureProp, orientationProp *property.Property, opts Options) *Result {
	n := len(positions)

	bonds := EnumerateBonds(positions, idx, structureProp)

	if opts.RelabelCoherentInterfaces {
		ComputeDisorientations(bonds, structureProp, orientationProp)
		RelabelCoherentInterfaces(bonds, structureProp, orientationProp)
	}
	ComputeDisorientations(bonds, structureProp, orientationProp)

	g := BuildGraph(n, bonds)

	atomOrientation := make([]geom.Quaternion, n)
	for a := 0; a < n; a++ {
		atomOrientation[a] = orientationProp.QuaternionAt(a)
	}

	dendrogram := BuildDendrogram(g, atomOrientation)

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = suggestedThresholdOrDefault(SuggestedMergingThreshold(dendrogram))
	}

	grains := AssignGrains(n, dendrogram, threshold, opts.MinGrainAtomCount, atomOrientation)

	return &Result{
		Bonds:      bonds,
		Graph:      g,
		Dendrogram: dendrogram,
		Threshold:  threshold,
		Grains:     grains,
	}
}
