// Package dxacore implements a dislocation-extraction and crystal-defect
// analysis engine: given atomic positions and a periodic simulation cell,
// it identifies local crystal structure, partitions atoms into oriented
// clusters, builds an interface mesh between structurally distinct
// regions, traces Burgers circuits to extract dislocation lines, and
// optionally segments the sample into misorientation-bounded grains.
//
// Subpackages, in pipeline order:
//
//	spatial/   — periodic k-d tree neighbor queries
//	structure/ — Common Neighbor Analysis, Polyhedral Template Matching,
//	             and the dedicated diamond-lattice identification path
//	cluster/   — seeded-growth cluster construction, cluster-cluster
//	             transitions, and super-grain merging
//	mesh/      — Delaunay tessellation and half-edge interface mesh
//	             construction between clusters
//	burgers/   — Burgers circuit tracing and dislocation-segment
//	             finalization
//	grain/     — disorientation-graph grain segmentation
//	lattice/   — per-structure coordination templates and symmetry groups
//	cell/      — periodic simulation cell geometry
//	property/  — typed per-atom array storage
//	dsu/       — disjoint-set union with path halving
//	dxaerr/    — the error taxonomy shared across subsystems
//	dxalog/    — structured logging for pipeline stage timing and
//	             recoverable-failure demotions
//	pipeline/  — Analyze, the single end-to-end entry point
package dxacore
