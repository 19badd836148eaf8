// Package grain implements spec.md §4.6's grain segmentation engine:
// neighbor bond enumeration over PTM-identified atoms, an optional
// coherent-interface relabeling pass, a weighted atom graph, a
// nearest-neighbor-chain dendrogram, and a threshold cut choosing which
// dendrogram merges become grain boundaries.
//
// Sorted-edge processing is grounded on the teacher's tsp package's MST
// and bound-one-tree routines (generalized from a complete-graph TSP bound
// to a sparse disorientation graph); the IRLS regression loop follows
// matrix/ops/eigen.go's iterative numeric style; the NN-chain frontier
// reuses dijkstra's priority-queue discipline.
package grain
