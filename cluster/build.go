package cluster

import (
	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
)

// Inputs bundles the per-atom properties cluster.Build reads, produced by
// the structure package.
type Inputs struct {
	Mode            Mode
	InputStructure  lattice.StructureType // preferred/expected crystal type, for final re-orientation (§4.3.1)
	StructureProp   *property.Property    // Int32, arity 1
	NeighborList    *property.Property    // Int32, -1-padded
	SymPermProp     *property.Property    // Int32, arity 1 (CNA mode only)
	OrientationProp *property.Property    // Float64, arity 4, x,y,z,w (PTM mode only)
	RMSDProp        *property.Property    // Float64, arity 1 (PTM mode only)
	Positions       []geom.Point3         // atom positions, for the CNA orientation solve's spatial side (§4.3.1)
	Cell            *cell.SimulationCell  // wraps neighbor displacements across periodic boundaries
}

// Build partitions identified atoms into clusters via seeded BFS growth
// (spec.md §4.3.1), then constructs cluster-cluster transitions (§4.3.2).
// Super-grain merging is a separate pass (merge.go) run after Build.
func Build(n int, in Inputs) (*Result, error) {
	if in.Mode != ModeCNA && in.Mode != ModePTM {
		return nil, ErrUnsupportedMode
	}

	clusterID := make([]int32, n)
	var clusters []*Cluster
	visited := make([]bool, n)

	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}
		s := lattice.StructureType(in.StructureProp.Int(seed, 0))
		if s == lattice.OTHER {
			continue
		}

		c := &Cluster{ID: len(clusters) + 1, Structure: s, AtomCount: 0}
		if in.Mode == ModePTM {
			c.Orientation = in.OrientationProp.QuaternionAt(seed).ToMatrix3()
		}

		queue := []int{seed}
		visited[seed] = true
		for len(queue) > 0 {
			atom := queue[0]
			queue = queue[1:]
			clusterID[atom] = int32(c.ID)
			c.AtomCount++

			if in.Mode == ModeCNA {
				accumulateCNAOrientation(c, atom, s, in)
			}

			for slot := 0; slot < in.NeighborList.Components; slot++ {
				nb := int(in.NeighborList.Int(atom, slot))
				if nb < 0 || visited[nb] {
					continue
				}
				if lattice.StructureType(in.StructureProp.Int(nb, 0)) != s {
					continue
				}

				var ok bool
				switch in.Mode {
				case ModeCNA:
					ok = cnaCompatible(atom, nb, s, in)
				case ModePTM:
					ok = ptmCompatible(atom, nb, s, in)
				}
				if !ok {
					continue
				}
				visited[nb] = true
				queue = append(queue, nb)
			}
		}

		if in.Mode == ModeCNA {
			finalizeCNAOrientation(c)
		}
		applyPreferredOrientation(c, in.InputStructure)
		clusters = append(clusters, c)
	}

	transitions := buildTransitions(n, clusterID, clusters, in)
	return &Result{ClusterID: clusterID, Clusters: clusters, Transitions: transitions}, nil
}

// accumulateCNAOrientation folds atom's contribution into its cluster's
// V (lattice*lattice) and W (lattice*spatial) accumulators, per spec.md
// §4.3.1's CNA orientation solve: V is the ideal template directions'
// self outer-product (rotated by atom's assigned symmetry permutation),
// and W pairs each of those same directions against the real,
// periodic-wrapped displacement to the corresponding observed neighbor
// (in.NeighborList is recorded in template order, see structure.CNAResult).
// orientation = W*V^-1 then recovers the crystal's true world rotation,
// rather than reporting near-identity for every atom regardless of how the
// crystal is actually oriented.
func accumulateCNAOrientation(c *Cluster, atom int, s lattice.StructureType, in Inputs) {
	tmpl := lattice.Get(s)
	if tmpl == nil {
		return
	}
	symIdx := int(in.SymPermProp.Int(atom, 0))
	if symIdx < 0 || symIdx >= len(tmpl.Symmetries) {
		symIdx = 0
	}
	rot := tmpl.Symmetries[symIdx].Rotation
	for slot, v := range tmpl.NeighborVectors {
		latticeVec := rot.MulVector(v)
		c.accV = c.accV.AddMatrix(geom.OuterProduct(latticeVec, latticeVec))

		nb := int(in.NeighborList.Int(atom, slot))
		if nb < 0 {
			continue
		}
		spatialVec := in.Cell.WrapVector(in.Positions[nb].Sub(in.Positions[atom]))
		c.accW = c.accW.AddMatrix(geom.OuterProduct(latticeVec, spatialVec))
	}
}

// finalizeCNAOrientation sets cluster.Orientation = W * V^-1, per spec.md
// §4.3.1. Leaves the identity orientation if V is singular (degenerate,
// single-atom cluster with no template, which cannot happen in practice
// since every seeded atom contributes its full neighbor shell).
func finalizeCNAOrientation(c *Cluster) {
	vInv, err := c.accV.Inverse()
	if err != nil {
		c.Orientation = geom.Identity3()
		return
	}
	c.Orientation = c.accW.MulMatrix(vInv)
}

// applyPreferredOrientation post-rotates c's orientation by the lattice
// symmetry minimizing distance to identity when c's structure matches the
// preferred input crystal type, per spec.md §4.3.1.
func applyPreferredOrientation(c *Cluster, preferred lattice.StructureType) {
	if c.Structure != preferred {
		return
	}
	tmpl := lattice.Get(c.Structure)
	if tmpl == nil {
		return
	}
	best := -1
	bestDist := -1.0
	for i, sym := range tmpl.Symmetries {
		candidate := c.Orientation.MulMatrix(sym.Rotation)
		d := l1DistanceToIdentity(candidate)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		c.Orientation = c.Orientation.MulMatrix(tmpl.Symmetries[best].Rotation)
		c.SymmetryTransformation = best
	}
}

func l1DistanceToIdentity(m geom.Matrix3) float64 {
	id := geom.Identity3()
	d := m.AddMatrix(id.Scale(-1))
	sum := 0.0
	for r := 0; r < 3; r++ {
		row := d.Row(r)
		sum += absf(row.X) + absf(row.Y) + absf(row.Z)
	}
	return sum
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
