package mesh

import (
	"github.com/katalvlaran/dxacore/geom"
)

// Face is one interface-mesh triangle: three vertex (atom) indices, the
// opposite half-edge face index across each of its three edges (-1 if
// unlinked), the region it bounds on its solid side, and, once elastic
// mapping runs, the ideal lattice vector for each of its three directed
// edges (nil entries mark a defective/unassignable edge, spec.md §4.4).
type Face struct {
	Vertices    [3]int32
	Opposite    [3]int32
	Region      int
	LatticeVecs [3]*geom.Vector3
}

// Mesh is the half-edge interface mesh of spec.md §4.4: a slice of Face
// records extracted from solid/empty tetrahedron boundaries.
type Mesh struct {
	Faces []Face
}

// ExtractFaces builds the interface mesh from classified tetrahedra: one
// Face per (solid cell, non-solid or differently-regioned neighbor) facet,
// per spec.md §4.4's interface facet extraction step.
func ExtractFaces(cells []Tetrahedron) *Mesh {
	neighborOf := buildFaceAdjacency(cells)

	var faces []Face
	faceIndexByKey := make(map[[3]int32]int)

	for ci, c := range cells {
		if !c.Solid {
			continue
		}
		for fi, f := range facesOf(c) {
			key := sortedFace(f)
			neighborCell, ok := neighborOf[faceAdjKey{ci, fi}]
			if ok && cells[neighborCell.cell].Solid && cells[neighborCell.cell].Region == c.Region {
				continue
			}
			idx := len(faces)
			faces = append(faces, Face{Vertices: f, Region: c.Region, Opposite: [3]int32{-1, -1, -1}})
			faceIndexByKey[key] = idx
		}
	}

	linkOppositeEdges(faces, faceIndexByKey)
	return &Mesh{Faces: faces}
}

type faceAdjKey struct {
	cell, facet int
}

type faceAdjValue struct {
	cell int
}

// buildFaceAdjacency maps each (cell, facet) to the neighboring cell that
// shares that facet, by grouping cells' four facets by their sorted vertex
// triple (shared facets appear in exactly two cells' facet lists).
func buildFaceAdjacency(cells []Tetrahedron) map[faceAdjKey]faceAdjValue {
	bySortedFace := make(map[[3]int32][]struct {
		cell, facet int
	})
	for ci, c := range cells {
		for fi, f := range facesOf(c) {
			key := sortedFace(f)
			bySortedFace[key] = append(bySortedFace[key], struct{ cell, facet int }{ci, fi})
		}
	}

	result := make(map[faceAdjKey]faceAdjValue)
	for _, entries := range bySortedFace {
		if len(entries) != 2 {
			continue
		}
		a, b := entries[0], entries[1]
		result[faceAdjKey{a.cell, a.facet}] = faceAdjValue{b.cell}
		result[faceAdjKey{b.cell, b.facet}] = faceAdjValue{a.cell}
	}
	return result
}

// linkOppositeEdges pairs each face's three edges with the interface face
// on the other side of that edge, by the shared-edge's sorted endpoint
// pair, per spec.md §4.4's edge opposite-linking step.
func linkOppositeEdges(faces []Face, faceIndexByKey map[[3]int32]int) {
	type edgeKey struct{ a, b int32 }
	byEdge := make(map[edgeKey][]int)

	edgesOf := func(f Face) [3]edgeKey {
		v := f.Vertices
		mk := func(a, b int32) edgeKey {
			if a > b {
				a, b = b, a
			}
			return edgeKey{a, b}
		}
		return [3]edgeKey{mk(v[0], v[1]), mk(v[1], v[2]), mk(v[2], v[0])}
	}

	for i, f := range faces {
		for _, e := range edgesOf(f) {
			byEdge[e] = append(byEdge[e], i)
		}
	}

	for i := range faces {
		for ei, e := range edgesOf(faces[i]) {
			for _, j := range byEdge[e] {
				if j != i {
					faces[i].Opposite[ei] = int32(j)
					break
				}
			}
		}
	}
}
