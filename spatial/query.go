package spatial

import (
	"container/heap"

	"github.com/katalvlaran/dxacore/geom"
)

// Neighbor is one result of a FindNeighbors query: the atom index and its
// squared distance (in the image actually found nearest) from the query
// point, plus the displacement vector query -> neighbor (including any
// periodic image shift), so callers can recover the true relative vector
// without recomputing PBC wrapping themselves.
type Neighbor struct {
	Atom            int
	Delta           geom.Vector3
	SquaredDistance float64
}

// neighborHeap is a bounded max-heap (by SquaredDistance) of at most k
// Neighbor entries: the root is always the current worst (farthest) of the
// best-k seen so far, so a candidate only needs comparing against the root.
type neighborHeap []Neighbor

func (h neighborHeap) Len() int            { return len(h) }
func (h neighborHeap) Less(i, j int) bool  { return h[i].SquaredDistance > h[j].SquaredDistance }
func (h neighborHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x interface{}) { *h = append(*h, x.(Neighbor)) }
func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Query is thread-local scratch state for repeated FindNeighbors calls,
// matching spec.md §4.1's "the query struct carries thread-local scratch
// (priority queue, reduced-coord query point)". Create one per goroutine
// doing a parallel scan over atoms; do not share across goroutines.
type Query struct {
	idx *Index
	pq  neighborHeap
}

// NewQuery returns scratch query state bound to idx.
func (idx *Index) NewQuery() *Query {
	if !idx.prepared {
		panic(errUnprepared)
	}
	return &Query{idx: idx}
}

// FindNeighbors returns the k nearest neighbors (across all periodic
// images) of queryPoint, excluding any occurrence of excludeAtom at zero
// displacement (pass -1 to exclude nothing). Results are sorted nearest
// first.
func (q *Query) FindNeighbors(queryPoint geom.Point3, k int, excludeAtom int) []Neighbor {
	if !q.idx.prepared {
		panic(errUnprepared)
	}
	q.pq = q.pq[:0]

	for _, shift := range q.idx.shifts {
		// Searching image `shift` is equivalent to searching the
		// unshifted tree with the query point translated by -shift: any
		// atom p found at distance d from (queryPoint - shift) lies at
		// distance d from queryPoint's image p+shift.
		translated := queryPoint.Sub(shift)

		// Whole-image pruning: skip this image entirely once the
		// current k-th best distance already beats the closest possible
		// point in the root's bounding box.
		if len(q.pq) == k {
			if boxDistanceSquared(translated, q.idx.nodes[q.idx.root].bboxMin, q.idx.nodes[q.idx.root].bboxMax) >= q.pq[0].SquaredDistance {
				continue
			}
		}

		q.searchNode(q.idx.root, queryPoint, translated, shift, k, excludeAtom, shift.SquaredNorm() < geom.Epsilon)
	}

	out := make([]Neighbor, len(q.pq))
	copy(out, q.pq)
	// Sort ascending by distance (the heap itself is only worst-first).
	insertionSortNeighbors(out)
	return out
}

// searchNode recursively traverses the tree rooted at nodeIdx, searching
// for neighbors of translated (== queryPoint - shift) and recording hits
// (in original, untranslated coordinates) into q.pq.
func (q *Query) searchNode(nodeIdx int, queryPoint, translated, shift geom.Vector3, k int, excludeAtom int, isZeroShift bool) {
	n := &q.idx.nodes[nodeIdx]

	if len(q.pq) == k {
		if boxDistanceSquared(translated, n.bboxMin, n.bboxMax) >= q.pq[0].SquaredDistance {
			return
		}
	}

	if n.atoms != nil {
		for _, a := range n.atoms {
			atom := int(a)
			if isZeroShift && atom == excludeAtom {
				continue
			}
			p := q.idx.positions[atom]
			d2 := translated.SquaredDistance(p)
			if d2 < geom.Epsilon && isZeroShift {
				// Coincident point in the same image (self, or a
				// duplicate position): spec.md §4.1 excludes zero
				// distance neighbors.
				continue
			}
			q.offer(Neighbor{Atom: atom, Delta: p.Add(shift).Sub(queryPoint), SquaredDistance: d2}, k)
		}
		return
	}

	// Visit the nearer child first so pruning the farther child is more
	// effective once k results have been collected.
	first, second := n.left, n.right
	if component(translated, n.axis) > n.splitPos {
		first, second = second, first
	}
	q.searchNode(first, queryPoint, translated, shift, k, excludeAtom, isZeroShift)
	q.searchNode(second, queryPoint, translated, shift, k, excludeAtom, isZeroShift)
}

// offer inserts candidate into the bounded max-heap, evicting the current
// worst entry if the heap is already at capacity k and candidate is closer.
func (q *Query) offer(candidate Neighbor, k int) {
	if len(q.pq) < k {
		heap.Push(&q.pq, candidate)
		return
	}
	if candidate.SquaredDistance < q.pq[0].SquaredDistance {
		q.pq[0] = candidate
		heap.Fix(&q.pq, 0)
	}
}

// boxDistanceSquared returns the squared distance from p to the closest
// point of the axis-aligned box [bboxMin, bboxMax].
func boxDistanceSquared(p, bboxMin, bboxMax geom.Vector3) float64 {
	d := 0.0
	for axis := 0; axis < 3; axis++ {
		v := component(p, axis)
		lo, hi := component(bboxMin, axis), component(bboxMax, axis)
		if v < lo {
			d += (lo - v) * (lo - v)
		} else if v > hi {
			d += (v - hi) * (v - hi)
		}
	}
	return d
}

// insertionSortNeighbors sorts a small slice of Neighbor ascending by
// SquaredDistance. Insertion sort is appropriate since k is always small
// (bounded-k nearest neighbor queries, typically <= 18).
func insertionSortNeighbors(ns []Neighbor) {
	for i := 1; i < len(ns); i++ {
		for j := i; j > 0 && ns[j].SquaredDistance < ns[j-1].SquaredDistance; j-- {
			ns[j], ns[j-1] = ns[j-1], ns[j]
		}
	}
}
