package burgers

import (
	"sort"

	"github.com/katalvlaran/dxacore/cluster"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/mesh"
)

// Segment is one traced dislocation line, per spec.md §4.5's finalization.
type Segment struct {
	ID           int
	Points       []geom.Point3 // smoothed, resampled polyline (circuit centroids)
	BurgersLocal geom.Vector3  // in the crystal's lattice basis
	BurgersWorld geom.Vector3  // in world coordinates, via the owning cluster's orientation
	CoreAtoms    []int32
	ReplacedWith int // -1 unless this segment merged/branched into another (spec.md §4.5)
}

// Trace runs the full circuit-tracing pipeline of spec.md §4.5: find seed
// faces, grow and close a trial circuit from each (sequential; a seed face
// already used by an earlier circuit is skipped, but a later circuit may
// still grow over faces an earlier one used), then
// smooth and resample the resulting polyline. Degenerate segments (zero
// Burgers vector, or fewer than 2 points after smoothing) are pruned.
// clusters resolves each traced circuit's owning cluster (majority of its
// faces' Region) so BurgersWorld can be re-expressed via that cluster's
// orientation, per spec.md §6's "burgersVectorWorld (via cluster.orientation)".
// Segments whose traced face sets overlap (a merge or branch point) are
// chained via MergeProvenance before returning, per spec.md §4.5. When
// markCoreAtoms is set, each segment's CoreAtoms records the distinct atom
// indices forming its traced faces' vertices (spec.md §4.5's "optionally
// mark atoms whose mesh vertices lie on a traced face as core atoms").
func Trace(m *mesh.Mesh, positions []geom.Point3, clusters []*cluster.Cluster, cfg Config, smoothingLevel int, pointInterval float64, markCoreAtoms bool) []Segment {
	const tol = 1e-3
	seeds := FindSeeds(m, tol)
	used := make(map[int]bool)

	clusterByID := make(map[int]*cluster.Cluster, len(clusters))
	for _, c := range clusters {
		clusterByID[c.ID] = c
	}

	var segments []Segment
	var faceSets []map[int]bool
	for _, seed := range seeds {
		if used[seed] {
			continue
		}
		burgersLocal, faceOrder, ok := growAndClose(m, seed, cfg, tol)
		if !ok {
			continue
		}
		if burgersLocal.Norm() < tol {
			continue
		}
		faceSet := make(map[int]bool, len(faceOrder))
		for _, f := range faceOrder {
			used[f] = true
			faceSet[f] = true
		}

		points := centroids(m, positions, faceOrder)
		points = smoothPolyline(points, smoothingLevel)
		points = resample(points, pointInterval)
		if len(points) < 2 {
			continue
		}

		var coreAtoms []int32
		if markCoreAtoms {
			coreAtoms = faceVertexAtoms(m, faceOrder)
		}

		segments = append(segments, Segment{
			ID:           len(segments) + 1,
			Points:       points,
			BurgersLocal: burgersLocal,
			BurgersWorld: burgersWorld(m, faceOrder, burgersLocal, clusterByID),
			CoreAtoms:    coreAtoms,
			ReplacedWith: -1,
		})
		faceSets = append(faceSets, faceSet)
	}

	MergeProvenance(segments, faceSets)
	return segments
}

// burgersWorld re-expresses burgersLocal through the orientation of the
// cluster owning the majority of faceOrder's faces, falling back to
// burgersLocal unchanged if no owning cluster can be resolved (e.g. the
// circuit crosses an unclassified region).
func burgersWorld(m *mesh.Mesh, faceOrder []int, burgersLocal geom.Vector3, clusterByID map[int]*cluster.Cluster) geom.Vector3 {
	counts := make(map[int]int, len(faceOrder))
	best, bestCount := 0, 0
	for _, fi := range faceOrder {
		region := m.Faces[fi].Region
		counts[region]++
		if counts[region] > bestCount {
			best, bestCount = region, counts[region]
		}
	}
	c, ok := clusterByID[best]
	if !ok {
		return burgersLocal
	}
	return c.Orientation.MulVector(burgersLocal)
}

// faceVertexAtoms returns the distinct atom indices forming the vertices of
// faceOrder's faces, sorted ascending.
func faceVertexAtoms(m *mesh.Mesh, faceOrder []int) []int32 {
	seen := make(map[int32]bool)
	for _, fi := range faceOrder {
		for _, v := range m.Faces[fi].Vertices {
			seen[v] = true
		}
	}
	atoms := make([]int32, 0, len(seen))
	for v := range seen {
		atoms = append(atoms, v)
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i] < atoms[j] })
	return atoms
}

// centroids returns the centroid of each face in faceOrder, in world
// coordinates.
func centroids(m *mesh.Mesh, positions []geom.Point3, faceOrder []int) []geom.Point3 {
	pts := make([]geom.Point3, len(faceOrder))
	for i, fi := range faceOrder {
		f := m.Faces[fi]
		sum := positions[f.Vertices[0]].Add(positions[f.Vertices[1]]).Add(positions[f.Vertices[2]])
		pts[i] = sum.Scale(1.0 / 3.0)
	}
	return pts
}
