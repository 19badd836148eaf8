package spatial

import (
	"math"
	"sort"

	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/geom"
)

// DefaultLeafBucket is the default maximum atom count per leaf node,
// spec.md §4.1's "leaves bucket <= B atoms (default 8)".
const DefaultLeafBucket = 8

// DefaultMaxDepth is spec.md §4.1's "depth limit reached (default 17)".
const DefaultMaxDepth = 17

// node is one k-d tree node, arena-allocated into Index.nodes. Leaves carry
// a non-empty atoms slice; internal nodes carry left/right child indices
// into the same arena (-1 for "no child").
type node struct {
	left, right int
	axis        int
	splitPos    float64
	bboxMin     geom.Vector3
	bboxMax     geom.Vector3
	atoms       []int32
}

// Index is a read-only-after-build k-d tree over atom positions, augmented
// with periodic image shifts drawn from the owning SimulationCell.
type Index struct {
	prepared  bool
	positions []geom.Point3
	cell      *cell.SimulationCell
	nodes     []node
	root      int
	leafSize  int
	maxDepth  int
	shifts    []geom.Vector3 // periodic image shift vectors, sorted by squared length
}

// Build constructs an Index over positions within c, validating that every
// periodic axis can support the given cutoff (spec.md §4.1 steps 1-2).
// Returns ErrNoPositions or ErrCellTooSmall on invalid input; both are
// InvalidInput/CellTooSmall per spec.md §7 and should halt the pipeline.
func Build(positions []geom.Point3, c *cell.SimulationCell, cutoff float64) (*Index, error) {
	if len(positions) == 0 {
		return nil, ErrNoPositions
	}
	if err := c.CheckCutoff(cutoff); err != nil {
		return nil, ErrCellTooSmall
	}

	idx := &Index{
		positions: positions,
		cell:      c,
		leafSize:  DefaultLeafBucket,
		maxDepth:  DefaultMaxDepth,
		shifts:    buildImageShifts(c),
	}

	indices := make([]int32, len(positions))
	for i := range indices {
		indices[i] = int32(i)
	}
	bboxMin, bboxMax := idx.reducedBoundingBox()
	idx.root = idx.buildNode(indices, bboxMin, bboxMax, 0)
	idx.prepared = true
	return idx, nil
}

// reducedBoundingBox returns the bounding box (in absolute coordinates) that
// spans [0,1] on periodic axes (reduced-coordinate unit cube, mapped to
// absolute space) and the atom extents on non-periodic axes, per spec.md
// §4.1 step 3.
func (idx *Index) reducedBoundingBox() (geom.Vector3, geom.Vector3) {
	lo := geom.Vector3{X: 0, Y: 0, Z: 0}
	hi := geom.Vector3{X: 1, Y: 1, Z: 1}
	for axis := 0; axis < 3; axis++ {
		if idx.cell.Periodic(axis) {
			continue
		}
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range idx.positions {
			r := idx.cell.AbsoluteToReduced(p)
			v := component(r, axis)
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		setComponent(&lo, axis, minV)
		setComponent(&hi, axis, maxV)
	}
	return idx.cell.ReducedToAbsolute(lo), idx.cell.ReducedToAbsolute(hi)
}

// buildImageShifts precomputes the Cartesian product of {-1,0,+1} shifts
// along each periodic axis (0 only on non-periodic axes), sorted by
// squared absolute length so nearby images are probed first (spec.md §4.1).
func buildImageShifts(c *cell.SimulationCell) []geom.Vector3 {
	choices := func(axis int) []float64 {
		if c.Periodic(axis) {
			return []float64{-1, 0, 1}
		}
		return []float64{0}
	}

	var shifts []geom.Vector3
	for _, sx := range choices(0) {
		for _, sy := range choices(1) {
			for _, sz := range choices(2) {
				reduced := geom.Vector3{X: sx, Y: sy, Z: sz}
				abs := c.Basis().MulVector(reduced)
				shifts = append(shifts, abs)
			}
		}
	}
	sort.Slice(shifts, func(i, j int) bool {
		return shifts[i].SquaredNorm() < shifts[j].SquaredNorm()
	})
	return shifts
}

func component(v geom.Vector3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func setComponent(v *geom.Vector3, axis int, val float64) {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
}
