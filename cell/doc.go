// Package cell implements SimulationCell (spec.md §3): the simulation box
// basis, origin, periodic boundary flags and the periodic wrapping and
// reduced<->absolute coordinate transforms every other subsystem depends on.
//
// SimulationCell is deliberately the one place in dxacore that knows about
// periodicity; spatial and pipeline consume its periodic flags and
// reduced<->absolute transforms, and cluster its WrapVector, rather than
// re-deriving periodic logic themselves.
package cell
