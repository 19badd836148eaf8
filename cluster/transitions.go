package cluster

import (
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
)

// buildTransitions implements spec.md §4.3.2: for every atom in a cluster,
// for every neighbor assigned to a different cluster, either grow an
// existing transition's area or create a new one (and its reverse) when
// the candidate matrix is orthogonal.
func buildTransitions(n int, clusterID []int32, clusters []*Cluster, in Inputs) []*Transition {
	existing := make(map[[2]int]*Transition)
	var transitions []*Transition

	for atom := 0; atom < n; atom++ {
		cid := int(clusterID[atom])
		if cid == 0 {
			continue
		}
		s := lattice.StructureType(in.StructureProp.Int(atom, 0))

		for slot := 0; slot < in.NeighborList.Components; slot++ {
			nb := int(in.NeighborList.Int(atom, slot))
			if nb < 0 {
				continue
			}
			nbID := int(clusterID[nb])
			if nbID == 0 || nbID == cid {
				continue
			}

			key := [2]int{cid, nbID}
			if t, ok := existing[key]; ok {
				t.Area++
				if rev, ok := existing[[2]int{nbID, cid}]; ok {
					rev.Area++
				}
				continue
			}

			var T geom.Matrix3
			var ok bool
			switch in.Mode {
			case ModeCNA:
				T, ok = cnaTransitionMatrix(atom, nb, s, in)
			case ModePTM:
				T, ok = ptmTransitionMatrix(atom, nb, in)
			}
			if !ok || !T.IsOrthogonal() {
				continue
			}

			fwd := &Transition{From: cid, To: nbID, TM: T, Area: 1, distance: 1}
			rev := &Transition{From: nbID, To: cid, TM: T.Transpose(), Area: 1, distance: 1}
			existing[key] = fwd
			existing[[2]int{nbID, cid}] = rev
			transitions = append(transitions, fwd, rev)
		}
	}
	return transitions
}
