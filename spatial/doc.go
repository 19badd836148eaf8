// Package spatial implements the bounded-k nearest-neighbor spatial index
// of spec.md §4.1: a k-d tree over reduced coordinates, augmented with
// periodic image shifts so that findNeighbors(point, k) searches across
// every periodic image of the simulation cell.
//
// The priority-queue discipline (bounded-capacity, nearest-first pruning)
// is grounded on the teacher's dijkstra package (priority-queue-driven
// search over a bounded frontier); the leaf/offset bookkeeping is grounded
// on gridgraph's precomputed neighborOffsets and InBounds/Coordinate style,
// generalized from a 2D grid to a 3D point cloud with periodic images.
package spatial
