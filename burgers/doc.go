// Package burgers implements spec.md §4.5: enumeration of closed circuits
// on the interface mesh that enclose dislocation cores, by summing the
// mesh's per-edge lattice vectors around a growing trial loop until it
// closes on a lattice translation.
//
// The trial-circuit frontier growth is grounded on the teacher's dijkstra
// package's priority-frontier expansion (generalized from shortest-path
// relaxation to circuit-closure search); polyline smoothing/resampling is
// grounded on dtw's windowed averaging recurrence; segment provenance
// merging reuses the dsu package.
package burgers
