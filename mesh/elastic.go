package mesh

import (
	"github.com/katalvlaran/dxacore/cluster"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
)

// AssignLatticeVectors implements spec.md §4.4's elastic mapping: for every
// mesh edge (u,v), find the ideal lattice vector representing the
// crystallographic displacement u->v, expressed through the orientation of
// u's cluster. Cluster transitions are not applied: when v lies in a
// different cluster of the same structure, u's cluster orientation is used
// alone. Edges with an endpoint outside any known cluster, or whose two
// clusters differ in structure, are left nil (defective).
func AssignLatticeVectors(m *Mesh, clusterID []int32, clusters []*cluster.Cluster, positions []geom.Point3) {
	clusterByID := make(map[int]*cluster.Cluster, len(clusters))
	for _, c := range clusters {
		clusterByID[c.ID] = c
	}

	for fi := range m.Faces {
		f := &m.Faces[fi]
		for e := 0; e < 3; e++ {
			u, v := f.Vertices[e], f.Vertices[(e+1)%3]
			f.LatticeVecs[e] = latticeVectorFor(u, v, clusterID, clusterByID, positions)
		}
	}
}

func latticeVectorFor(u, v int32, clusterID []int32, clusterByID map[int]*cluster.Cluster, positions []geom.Point3) *geom.Vector3 {
	cu, cv := int(clusterID[u]), int(clusterID[v])
	if cu == 0 || cv == 0 {
		return nil
	}
	a, ok := clusterByID[cu]
	if !ok {
		return nil
	}

	displacement := positions[v].Sub(positions[u])
	orientation := a.Orientation
	if cu != cv {
		if _, ok := clusterByID[cv]; !ok {
			return nil
		}
		// Same-structure adjacent clusters only: without a stored
		// transition lookup here (owned by the cluster package), fall
		// back to the requesting cluster's own orientation frame; a
		// defective edge is still preferable to a silently wrong vector
		// when the clusters are of different structures.
		if clusterByID[cv].Structure != a.Structure {
			return nil
		}
	}

	inv, err := orientation.Inverse()
	if err != nil {
		return nil
	}
	ideal := inv.MulVector(displacement)
	rounded := snapToLattice(ideal, a.Structure)
	return &rounded
}

// snapToLattice rounds ideal onto the nearest ideal neighbor vector of s's
// template (scaled to the observed length), or returns ideal unchanged if
// s has no template.
func snapToLattice(ideal geom.Vector3, s lattice.StructureType) geom.Vector3 {
	tmpl := lattice.Get(s)
	if tmpl == nil {
		return ideal
	}
	best := ideal
	bestDist := -1.0
	for _, v := range tmpl.NeighborVectors {
		scale := ideal.Norm() / v.Norm()
		candidate := v.Scale(scale)
		d := candidate.Distance(ideal)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
