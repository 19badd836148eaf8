package burgers

import "github.com/katalvlaran/dxacore/dsu"

// MergeProvenance groups segments whose traced face sets overlap (a merge
// or branch point, spec.md §4.5) via the shared dsu package, and sets
// ReplacedWith on every non-root segment to the id of its group's
// disjoint-set root segment, per spec.md §4.5's "readers must follow this
// chain to the final segment id". The root follows dsu's union-by-size
// rule, so it is not necessarily the group's lowest-index segment.
func MergeProvenance(segments []Segment, sharedFaceSets []map[int]bool) {
	n := len(segments)
	d := dsu.New(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if overlaps(sharedFaceSets[i], sharedFaceSets[j]) {
				d.Merge(i, j)
			}
		}
	}
	for i := range segments {
		root := d.Find(i)
		if root != i {
			segments[i].ReplacedWith = segments[root].ID
		}
	}
}

func overlaps(a, b map[int]bool) bool {
	small, big := a, b
	if len(a) > len(b) {
		small, big = b, a
	}
	for k := range small {
		if big[k] {
			return true
		}
	}
	return false
}
