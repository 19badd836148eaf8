// Package mesh implements spec.md §4.4: a Delaunay tessellation of atom
// positions plus periodic ghost images, an alpha-test solid/empty
// classification of tetrahedra, half-edge interface-facet extraction
// between differently-labeled regions, and elastic (lattice-vector)
// mapping of mesh edges.
//
// The half-edge mesh is a single slice of Face records per spec.md §9's
// re-architecture guidance (index-addressed, not pointer-linked), grounded
// on the teacher's matrix.Dense row-major storage discipline; adjacency
// bookkeeping is grounded on core's nested-map adjacency list, generalized
// to maps keyed by sorted vertex tuples (sorted triples for facet
// adjacency, sorted endpoint pairs for opposite-edge lookup).
package mesh
