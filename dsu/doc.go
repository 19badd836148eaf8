// Package dsu provides the disjoint-set-union (union-find) primitive shared
// by three dxacore subsystems per spec.md §4.7: super-grain merging
// (cluster), grain assignment (grain), and dislocation-segment provenance
// merging (burgers).
//
// It generalizes the teacher's inline string-keyed DSU
// (prim_kruskal/kruskal.go, parent/rank maps over vertex IDs) to a
// slice-backed, index-keyed structure: every caller here addresses nodes by
// dense integer index (atom index, cluster id, segment id) rather than by
// string vertex ID, so a map-based implementation would be pure overhead.
package dsu
