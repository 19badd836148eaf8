package grain

import (
	"math"
	"sort"

	"github.com/katalvlaran/dxacore/dsu"
	"github.com/katalvlaran/dxacore/geom"
)

// DefaultMinGrainAtomCount is spec.md §4.6 step 7's default discard floor.
const DefaultMinGrainAtomCount = 100

// Grain is one final segmented grain, numbered 1..G.
type Grain struct {
	ID          int
	Atoms       []int
	Orientation geom.Quaternion
}

// AssignGrains implements spec.md §4.6 step 7: replay every dendrogram
// merge whose Distance is at most threshold, skipping the others, union
// the corresponding atoms via a disjoint set,
// discard resulting components smaller than minGrainAtomCount, renumber
// the survivors 1..G, and compute each grain's mean orientation from its
// atoms' per-atom orientations.
func AssignGrains(n int, dendrogram []DendrogramNode, threshold float64, minGrainAtomCount int, atomOrientation []geom.Quaternion) []Grain {
	if minGrainAtomCount <= 0 {
		minGrainAtomCount = DefaultMinGrainAtomCount
	}

	d := dsu.New(n)
	for _, node := range dendrogram {
		if node.Distance > threshold {
			continue
		}
		d.Merge(node.Parent, node.Child)
	}

	members := make(map[int][]int)
	for atom := 0; atom < n; atom++ {
		root := d.Find(atom)
		members[root] = append(members[root], atom)
	}

	roots := make([]int, 0, len(members))
	for root := range members {
		if len(members[root]) >= minGrainAtomCount {
			roots = append(roots, root)
		}
	}
	sort.Ints(roots)

	grains := make([]Grain, 0, len(roots))
	for i, root := range roots {
		atoms := members[root]
		grains = append(grains, Grain{
			ID:          i + 1,
			Atoms:       atoms,
			Orientation: meanOrientation(atoms, atomOrientation),
		})
	}
	return grains
}

// meanOrientation averages the quaternions of atoms, renormalizing the
// result; this is an unweighted arithmetic mean suitable once all
// quaternions within a grain are already close (post coherent-interface
// relabeling and dendrogram merge), matching the blending rule used by
// mapAndAccumulate during dendrogram construction.
func meanOrientation(atoms []int, atomOrientation []geom.Quaternion) geom.Quaternion {
	if len(atoms) == 0 {
		return geom.IdentityQuaternion
	}
	var sum geom.Quaternion
	ref := atomOrientation[atoms[0]]
	for _, a := range atoms {
		q := atomOrientation[a]
		dot := q.W*ref.W + q.X*ref.X + q.Y*ref.Y + q.Z*ref.Z
		if dot < 0 {
			q = geom.Quaternion{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
		}
		sum.W += q.W
		sum.X += q.X
		sum.Y += q.Y
		sum.Z += q.Z
	}
	n := float64(len(atoms))
	sum.W /= n
	sum.X /= n
	sum.Y /= n
	sum.Z /= n
	if sum.W == 0 && sum.X == 0 && sum.Y == 0 && sum.Z == 0 {
		return geom.IdentityQuaternion
	}
	return sum.Normalized()
}

// suggestedThresholdOrDefault passes a finite regression-suggested
// threshold through unchanged (negative values included) and replaces a
// NaN or infinite one with +Inf (merge everything).
func suggestedThresholdOrDefault(threshold float64) float64 {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return math.Inf(1)
	}
	return threshold
}
