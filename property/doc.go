// Package property implements ParticleProperty (spec.md §3): contiguous
// typed arrays keyed by atom index, exposing uniform accessors over
// positions, structure types, orientations, neighbor lists, cluster ids,
// symmetry permutation indices, correspondences codes and PTM RMSD.
//
// There is no ownership graph here, matching spec.md §3's "No ownership
// graph — the core owns these as plain arrays and hands views to
// subsystems": a Property is a flat, typed, fixed-arity slice that any
// stage can read, and whose backing array a pipeline can drop (Release)
// once no downstream stage needs it, bounding peak RSS per spec.md §5.
package property
