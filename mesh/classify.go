package mesh

// Classify runs spec.md §4.4's alpha-test cell classification: a cell is
// solid if its circumradius is within alpha, or — when ambiguous — if none
// of its four neighbors is definitively empty (sliver rescue). Solid cells
// are assigned a region via regionOf, typically the majority cluster id of
// the cell's four vertices.
func Classify(cells []Tetrahedron, alpha float64, regionOf func(vertices [4]int32) int) {
	neighborOf := buildFaceAdjacency(cells)
	definitivelyEmpty := make([]bool, len(cells))
	for i, c := range cells {
		definitivelyEmpty[i] = c.Circumradius > alpha*1.5
	}

	for i := range cells {
		c := &cells[i]
		if c.Circumradius <= alpha {
			c.Solid = true
		} else if c.Circumradius <= alpha*1.5 {
			c.Solid = !anyNeighborDefinitivelyEmpty(neighborOf, definitivelyEmpty, i)
		}
		if c.Solid {
			c.Region = regionOf(c.Vertices)
		}
	}
}

func anyNeighborDefinitivelyEmpty(neighborOf map[faceAdjKey]faceAdjValue, empty []bool, cell int) bool {
	for facet := 0; facet < 4; facet++ {
		if n, ok := neighborOf[faceAdjKey{cell, facet}]; ok && empty[n.cell] {
			return true
		}
	}
	return false
}

// SpaceFillingRegion computes spec.md §4.4's spaceFillingRegion over the
// solid non-ghost cells: 0 if there are none, the common region if every
// such cell shares one, else -1.
func SpaceFillingRegion(cells []Tetrahedron) int {
	seen := -2
	for _, c := range cells {
		if c.Ghost || !c.Solid {
			continue
		}
		if seen == -2 {
			seen = c.Region
		} else if seen != c.Region {
			return -1
		}
	}
	if seen == -2 {
		return 0
	}
	return seen
}
