// Package structure implements spec.md §4.2's per-atom structure
// identification, in two modes: Common Neighbor Analysis (CNA), a
// bond-matrix permutation match against lattice.CoordinationStructure
// templates, and Polyhedral Template Matching (PTM), a least-squares
// rigid-fit against the same templates producing an orientation quaternion
// and an RMSD.
//
// Both modes are grounded on the teacher's bfs package for the
// neighbor-exploration discipline (CNA's permutation search explores
// candidate orderings depth-first with backtracking, abandoning a partial
// assignment as soon as it contradicts the template's bonds) and on core's
// adjacency-matrix conventions
// for the bond bit-matrices themselves.
package structure
