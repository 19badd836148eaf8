// Package cluster implements spec.md §4.3: seeded BFS growth of atoms into
// same-structure, same-orientation clusters, cluster-cluster transition
// bookkeeping, and merging of defect-bounded cluster islands into
// super-grains via a priority disjoint-set union.
//
// The BFS-over-equal-value-neighbors growth is grounded on the teacher's
// gridgraph package's connected-component scan (generalized from a 2D
// grid's 4-neighborhood to an atom's structure-dependent neighbor list);
// the super-grain merge reuses the dsu package, itself grounded on
// prim_kruskal's inline union-find.
package cluster
