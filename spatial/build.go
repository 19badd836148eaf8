package spatial

import (
	"sort"

	"github.com/katalvlaran/dxacore/geom"
)

// buildNode recursively partitions atoms into the k-d tree, splitting on
// the axis of largest absolute-coordinate extent of the current bounding
// box, and returns the index of the newly-created node in idx.nodes.
//
// Complexity: O(n log^2 n) overall (each level sorts its slice by the split
// axis to find the median); acceptable here since the index is built once
// per snapshot and queried many times.
func (idx *Index) buildNode(atoms []int32, bboxMin, bboxMax geom.Vector3, depth int) int {
	n := node{left: -1, right: -1, bboxMin: bboxMin, bboxMax: bboxMax}

	if len(atoms) <= idx.leafSize || depth >= idx.maxDepth {
		n.atoms = atoms
		idx.nodes = append(idx.nodes, n)
		return len(idx.nodes) - 1
	}

	axis := largestExtentAxis(bboxMin, bboxMax)
	sort.Slice(atoms, func(i, j int) bool {
		return component(idx.positions[atoms[i]], axis) < component(idx.positions[atoms[j]], axis)
	})
	mid := len(atoms) / 2
	splitPos := component(idx.positions[atoms[mid]], axis)

	leftAtoms := append([]int32(nil), atoms[:mid]...)
	rightAtoms := append([]int32(nil), atoms[mid:]...)

	leftMax := bboxMax
	setComponent(&leftMax, axis, splitPos)
	rightMin := bboxMin
	setComponent(&rightMin, axis, splitPos)

	n.axis = axis
	n.splitPos = splitPos

	selfIdx := len(idx.nodes)
	idx.nodes = append(idx.nodes, n)

	left := idx.buildNode(leftAtoms, bboxMin, leftMax, depth+1)
	right := idx.buildNode(rightAtoms, rightMin, bboxMax, depth+1)
	idx.nodes[selfIdx].left = left
	idx.nodes[selfIdx].right = right
	return selfIdx
}

// largestExtentAxis returns the axis (0,1,2) with the greatest extent
// between bboxMin and bboxMax.
func largestExtentAxis(bboxMin, bboxMax geom.Vector3) int {
	ext := bboxMax.Sub(bboxMin)
	axis := 0
	best := ext.X
	if ext.Y > best {
		axis, best = 1, ext.Y
	}
	if ext.Z > best {
		axis = 2
	}
	return axis
}
