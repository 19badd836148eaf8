package cluster

import (
	"github.com/katalvlaran/dxacore/dsu"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
)

// MergeSuperGrains implements spec.md §4.3.3: for each defect cluster
// (structure != inputStructure), look at pairs of distance-1 transitions
// that land in input-crystal clusters; where the composed rotation matches
// a lattice symmetry, create a distance-2 transition directly between the
// two crystal clusters, then union them via the dsu package.
//
// Clusters are addressed by (ID-1) since dsu is 0-indexed and cluster IDs
// are assigned starting at 1 (0 means "atom unassigned", per spec.md
// §4.3's ClusterID property convention).
func MergeSuperGrains(result *Result, inputStructure lattice.StructureType) {
	byCluster := make(map[int][]*Transition)
	for _, t := range result.Transitions {
		if t.distance == 1 {
			byCluster[t.From] = append(byCluster[t.From], t)
		}
	}

	d := dsu.New(len(result.Clusters))
	clusterByID := make(map[int]*Cluster, len(result.Clusters))
	for _, c := range result.Clusters {
		clusterByID[c.ID] = c
	}

	var distance2 []*Transition
	for _, c := range result.Clusters {
		if c.Structure == inputStructure {
			continue
		}
		edges := byCluster[c.ID]
		for i := 0; i < len(edges); i++ {
			for j := i + 1; j < len(edges); j++ {
				t1, t2 := edges[i], edges[j]
				a, b := clusterByID[t1.To], clusterByID[t2.To]
				if a == nil || b == nil || a.Structure != inputStructure || b.Structure != inputStructure {
					continue
				}
				composed := t2.TM.MulMatrix(t1.TM.Transpose())
				if _, idx := matchTransitionSymmetry(composed, inputStructure); idx >= 0 {
					distance2 = append(distance2, &Transition{From: a.ID, To: b.ID, TM: composed, distance: 2})
				}
			}
		}
	}

	for _, t := range distance2 {
		rootA, tmA := getParentGrain(clusterByID, t.From)
		rootB, tmB := getParentGrain(clusterByID, t.To)
		if rootA == rootB {
			continue
		}
		net := tmB.Transpose().MulMatrix(tmA)
		newRoot := d.Merge(rootA-1, rootB-1) + 1
		var child int
		if newRoot == rootA {
			child = rootB
		} else {
			child = rootA
			net = net.Transpose()
		}
		clusterByID[child].parentTransition = &Transition{From: child, To: newRoot, TM: net, distance: 2}
	}

	for _, c := range result.Clusters {
		compressParentChain(clusterByID, c.ID)
	}
}

// getParentGrain walks c's parentTransition chain to its root, concatenating
// rotations along the way (spec.md §4.3.3's ClusterGraph.concatenate).
func getParentGrain(byID map[int]*Cluster, id int) (rootID int, tm geom.Matrix3) {
	tm = geom.Identity3()
	cur := byID[id]
	for cur.parentTransition != nil {
		tm = cur.parentTransition.TM.MulMatrix(tm)
		cur = byID[cur.parentTransition.To]
	}
	return cur.ID, tm
}

// compressParentChain path-compresses c's parentTransition directly to its
// root, per spec.md §4.3.3's final walk.
func compressParentChain(byID map[int]*Cluster, id int) {
	c := byID[id]
	if c.parentTransition == nil {
		return
	}
	root, tm := getParentGrain(byID, id)
	if root == id {
		c.parentTransition = nil
		return
	}
	c.parentTransition = &Transition{From: id, To: root, TM: tm, distance: 2}
}
