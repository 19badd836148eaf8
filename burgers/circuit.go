package burgers

import (
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/mesh"
)

// DefaultMaxTrialCircuitSize is spec.md §8's "maxTrialCircuitSize (default
// 14)".
const DefaultMaxTrialCircuitSize = 14

// DefaultCircuitStretchability is spec.md §8's "circuitStretchability
// (default 9)".
const DefaultCircuitStretchability = 9

// Config controls circuit tracing, per spec.md §4.5 and §4.8's flags.
type Config struct {
	MaxTrialCircuitSize   int
	CircuitStretchability int
	OnlyPerfectDislocations bool
	Structure             lattice.StructureType
}

// DefaultConfig returns the spec.md §8 default circuit-tracing parameters.
func DefaultConfig(s lattice.StructureType) Config {
	return Config{
		MaxTrialCircuitSize:   DefaultMaxTrialCircuitSize,
		CircuitStretchability: DefaultCircuitStretchability,
		Structure:             s,
	}
}

// faceSumsToZero reports whether a face's three (possibly nil) lattice
// vectors are all assigned and sum within tolerance to zero.
func faceSumsToZero(f mesh.Face, tol float64) (bool, bool) {
	for _, v := range f.LatticeVecs {
		if v == nil {
			return false, false
		}
	}
	sum := f.LatticeVecs[0].Add(*f.LatticeVecs[1]).Add(*f.LatticeVecs[2])
	return sum.Norm() < tol, true
}

// FindSeeds scans the mesh for faces whose three lattice vectors are all
// assigned but do not sum to zero, per spec.md §4.5's seeding step.
func FindSeeds(m *mesh.Mesh, tol float64) []int {
	var seeds []int
	for i, f := range m.Faces {
		zero, assigned := faceSumsToZero(f, tol)
		if assigned && !zero {
			seeds = append(seeds, i)
		}
	}
	return seeds
}

// circuitState is the trial circuit's growing face set plus the order in
// which faces joined it; the boundary sum is recomputed by boundarySum.
type circuitState struct {
	faces map[int]bool
	order []int
}

// growAndClose attempts to grow a trial circuit from seed into a closed
// loop whose boundary lattice-vector sum matches one of cfg.Structure's
// template neighbor vectors, per spec.md §4.5, and returns that sum.
// cfg.OnlyPerfectDislocations is not consulted: every template neighbor
// vector is accepted, whether or not it is a perfect lattice translation.
func growAndClose(m *mesh.Mesh, seed int, cfg Config, tol float64) (geom.Vector3, []int, bool) {
	tmpl := lattice.Get(cfg.Structure)
	if tmpl == nil {
		return geom.Vector3{}, nil, false
	}

	state := &circuitState{faces: map[int]bool{seed: true}, order: []int{seed}}
	stretch := 0

	for step := 0; step < cfg.MaxTrialCircuitSize; step++ {
		sum, ok := boundarySum(m, state)
		if ok {
			if _, matched := matchesLatticeVector(sum, tmpl, tol); matched {
				return sum, state.order, true
			}
		}

		grew := growOneFace(m, state)
		if !grew {
			stretch++
			if stretch > cfg.CircuitStretchability {
				break
			}
		}
	}
	return geom.Vector3{}, nil, false
}

// boundarySum sums the lattice vectors of every edge on the circuit's
// boundary (edges whose opposite face is not part of the circuit).
// ok=false if any boundary edge is unassigned (defective).
func boundarySum(m *mesh.Mesh, state *circuitState) (geom.Vector3, bool) {
	var sum geom.Vector3
	for fi := range state.faces {
		f := m.Faces[fi]
		for e := 0; e < 3; e++ {
			opp := f.Opposite[e]
			if opp >= 0 && state.faces[int(opp)] {
				continue
			}
			if f.LatticeVecs[e] == nil {
				return geom.Vector3{}, false
			}
			sum = sum.Add(*f.LatticeVecs[e])
		}
	}
	return sum, true
}

// growOneFace adds one new face adjacent to the circuit's boundary: the
// first face, scanning circuit faces in insertion order, that lies across
// one of their edges and is not yet in the circuit. Whether the shared edge
// has a lattice vector plays no part in the choice. Returns false if no
// such face exists.
func growOneFace(m *mesh.Mesh, state *circuitState) bool {
	for _, fi := range state.order {
		f := m.Faces[fi]
		for e := 0; e < 3; e++ {
			opp := f.Opposite[e]
			if opp < 0 || state.faces[int(opp)] {
				continue
			}
			state.faces[int(opp)] = true
			state.order = append(state.order, int(opp))
			return true
		}
	}
	return false
}

// matchesLatticeVector reports whether v matches one of tmpl's ideal
// neighbor vectors within tol, returning the matched vector. When several
// candidates lie within tol, the one of smallest magnitude wins (the
// perfect-over-partial tiebreak of spec.md §9).
func matchesLatticeVector(v geom.Vector3, tmpl *lattice.CoordinationStructure, tol float64) (geom.Vector3, bool) {
	var best geom.Vector3
	found := false
	for _, candidate := range tmpl.NeighborVectors {
		if candidate.Distance(v) < tol && (!found || candidate.Norm() < best.Norm()) {
			best, found = candidate, true
		}
	}
	return best, found
}
