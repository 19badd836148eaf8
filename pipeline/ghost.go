package pipeline

import (
	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/geom"
)

// buildGhostLayer replicates every atom within width of a periodic cell
// boundary across that boundary, per spec.md §4.4's "Delaunay tessellation
// of all positions plus ghost copies of atoms within the ghost layer...
// across each periodic boundary". Returns the combined point list (real
// atoms first, in original order, then ghosts) and a parallel isGhost
// flag array.
func buildGhostLayer(positions []geom.Point3, c *cell.SimulationCell, width float64) ([]geom.Point3, []bool) {
	n := len(positions)
	points := make([]geom.Point3, n, n*2)
	copy(points, positions)
	isGhost := make([]bool, n, n*2)

	if width <= 0 {
		return points, isGhost
	}

	edgeLengths := [3]float64{c.Basis().Col(0).Norm(), c.Basis().Col(1).Norm(), c.Basis().Col(2).Norm()}

	// perAxisDirs[axis] lists which of {-1,0,+1} this atom needs a copy
	// shifted by, covering face, edge and corner ghost images together.
	var perAxisDirs [3][]int
	for i := 0; i < n; i++ {
		r := c.AbsoluteToReduced(positions[i])
		for axis := 0; axis < 3; axis++ {
			perAxisDirs[axis] = perAxisDirs[axis][:0]
			if !c.Periodic(axis) || edgeLengths[axis] <= 0 {
				continue
			}
			frac := width / edgeLengths[axis]
			comp := component(r, axis)
			if comp < frac {
				perAxisDirs[axis] = append(perAxisDirs[axis], 1)
			}
			if comp > 1-frac {
				perAxisDirs[axis] = append(perAxisDirs[axis], -1)
			}
		}

		for _, dx := range withZero(perAxisDirs[0]) {
			for _, dy := range withZero(perAxisDirs[1]) {
				for _, dz := range withZero(perAxisDirs[2]) {
					if dx == 0 && dy == 0 && dz == 0 {
						continue
					}
					shifted := r
					shifted.X += float64(dx)
					shifted.Y += float64(dy)
					shifted.Z += float64(dz)
					points = append(points, c.ReducedToAbsolute(shifted))
					isGhost = append(isGhost, true)
				}
			}
		}
	}

	return points, isGhost
}

// withZero returns dirs with a leading 0, so the triple product in
// buildGhostLayer always considers "no shift on this axis" alongside any
// needed shifts.
func withZero(dirs []int) []int {
	return append([]int{0}, dirs...)
}

func component(v geom.Point3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
