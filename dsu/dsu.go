package dsu

// DisjointSet is a union-find structure over the dense integer index range
// [0, n). It uses path halving (spec.md §4.7: "parents[x] = parents[parents[x]]")
// rather than full path compression, and union-by-size.
//
// Complexity: Find and Merge are O(alpha(n)) amortized; NodeSize is O(1).
type DisjointSet struct {
	parent []int
	size   []int
}

// New constructs a DisjointSet over n singleton sets {0}, {1}, ..., {n-1}.
func New(n int) *DisjointSet {
	d := &DisjointSet{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	d.Clear()
	return d
}

// Clear resets every node to its own singleton set, without reallocating
// the backing slices.
func (d *DisjointSet) Clear() {
	for i := range d.parent {
		d.parent[i] = i
		d.size[i] = 1
	}
}

// Len returns the number of nodes tracked by d.
func (d *DisjointSet) Len() int {
	return len(d.parent)
}

// Find returns the representative root of x's set, halving the path from x
// to the root along the way.
func (d *DisjointSet) Find(x int) int {
	for d.parent[x] != x {
		// Path halving: point x at its grandparent, then advance.
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// Merge unions the sets containing a and b, attaching the smaller set under
// the larger (union-by-size), and returns the resulting root. If a and b are
// already in the same set, it returns that set's root without modification.
func (d *DisjointSet) Merge(a, b int) int {
	rootA, rootB := d.Find(a), d.Find(b)
	if rootA == rootB {
		return rootA
	}
	if d.size[rootA] < d.size[rootB] {
		rootA, rootB = rootB, rootA
	}
	d.parent[rootB] = rootA
	d.size[rootA] += d.size[rootB]
	return rootA
}

// Connected reports whether a and b are in the same set.
func (d *DisjointSet) Connected(a, b int) bool {
	return d.Find(a) == d.Find(b)
}

// NodeSize returns the size of the set containing x.
func (d *DisjointSet) NodeSize(x int) int {
	return d.size[d.Find(x)]
}
