package structure

import (
	"math"
	"sort"

	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/property"
	"github.com/katalvlaran/dxacore/spatial"
)

// CNAResult is one atom's Common Neighbor Analysis outcome.
type CNAResult struct {
	Structure    lattice.StructureType
	SymPerm      int            // symmetry permutation index; 0 (identity) on first assignment
	Neighbors    []int          // atom indices, ordered to match the template, len == template neighbor count
	MaxNeighDist float64        // max observed neighbor distance, feeds the ghost-layer width (spec.md §4.2.1 side effect)
}

// IdentifyCNA runs Common Neighbor Analysis for every position against a
// single candidate inputStructure, writing results into structureProp
// (Int32, arity 1) and neighborList (Int32, arity >= template neighbor
// count, spec.md §4.2's shared neighbor-list property). Returns the maximum
// observed neighbor distance across all successfully-identified atoms,
// which callers use to size the interface-mesh ghost layer.
func IdentifyCNA(positions []geom.Point3, idx *spatial.Index, inputStructure lattice.StructureType, structureProp, symPermProp, neighborList *property.Property) (float64, error) {
	tmpl := lattice.Get(inputStructure)
	if tmpl == nil {
		return 0, ErrNoTemplate
	}
	k := lattice.CoordinationNumber(inputStructure)

	var maxDist float64
	q := idx.NewQuery()
	for i := range positions {
		res, ok := identifyOneCNA(positions, i, q, inputStructure, tmpl, k)
		if !ok {
			structureProp.SetInt(i, 0, int32(lattice.OTHER))
			continue
		}
		structureProp.SetInt(i, 0, int32(res.Structure))
		symPermProp.SetInt(i, 0, int32(res.SymPerm))
		for c := 0; c < neighborList.Components; c++ {
			if c < len(res.Neighbors) {
				neighborList.SetInt(i, c, int32(res.Neighbors[c]))
			} else {
				neighborList.SetInt(i, c, -1)
			}
		}
		if res.MaxNeighDist > maxDist {
			maxDist = res.MaxNeighDist
		}
	}
	return maxDist, nil
}

// identifyOneCNA runs CNA for a single atom i.
func identifyOneCNA(positions []geom.Point3, i int, q *spatial.Query, s lattice.StructureType, tmpl *lattice.CoordinationStructure, k int) (CNAResult, bool) {
	requestK := k + 1
	neighbors := q.FindNeighbors(positions[i], requestK, i)
	if len(neighbors) < requestK {
		return CNAResult{}, false
	}

	near := neighbors[:k]
	extra := neighbors[k]

	cutoff, maxDist := cnaLocalCutoff(s, near)
	if extra.SquaredDistance <= cutoff*cutoff {
		// The (K+1)-th neighbor is itself within the local cutoff: the
		// environment is not crystalline (non-isolated shell), per
		// spec.md §4.2.1.
		return CNAResult{}, false
	}

	bonds := make([][]bool, k)
	for a := range bonds {
		bonds[a] = make([]bool, k)
	}
	if s == lattice.SC {
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if math.Abs(near[a].Delta.Dot(near[b].Delta)) < geom.Epsilon*near[a].Delta.Norm()*near[b].Delta.Norm() {
					bonds[a][b], bonds[b][a] = true, true
				}
			}
		}
	} else {
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				d := near[a].Delta.Distance(near[b].Delta)
				if d <= cutoff+1e-6 {
					bonds[a][b], bonds[b][a] = true, true
				}
			}
		}
	}

	perm, ok := matchBondMatrix(bonds, tmpl.Bonds, tmpl.NeighborTag)
	if !ok {
		return CNAResult{}, false
	}

	ordered := make([]int, k)
	for tmplIdx, obsIdx := range perm {
		ordered[tmplIdx] = near[obsIdx].Atom
	}

	return CNAResult{
		Structure:    s,
		SymPerm:      0,
		Neighbors:    ordered,
		MaxNeighDist: maxDist,
	}, true
}

// cnaLocalCutoff computes the structure-dependent reference cutoff and the
// maximum observed neighbor distance, per spec.md §4.2.1.
func cnaLocalCutoff(s lattice.StructureType, near []spatial.Neighbor) (cutoff, maxDist float64) {
	const goldenish = (1 + math.Sqrt2) / 2

	dists := make([]float64, len(near))
	for i, n := range near {
		dists[i] = math.Sqrt(n.SquaredDistance)
		if dists[i] > maxDist {
			maxDist = dists[i]
		}
	}

	switch s {
	case lattice.BCC:
		sort.Float64s(dists)
		sum := 0.0
		for i := 0; i < 8 && i < len(dists); i++ {
			sum += dists[i]
		}
		mean := sum / 8
		return (mean / (math.Sqrt(3) / 2)) * goldenish, maxDist
	case lattice.CUBIC_DIAMOND, lattice.HEX_DIAMOND:
		// Second-shell mean length, from the 12 vectors generated by
		// differencing pairs of first-shell neighbors (spec.md §4.2.1).
		var sum float64
		var count int
		for a := 0; a < 4 && a < len(near); a++ {
			for b := 0; b < 4 && b < len(near); b++ {
				if a == b {
					continue
				}
				sum += near[a].Delta.Sub(near[b].Delta).Norm()
				count++
			}
		}
		if count == 0 {
			return 0, maxDist
		}
		return (sum / float64(count)) * goldenish, maxDist
	default:
		sum := 0.0
		for _, d := range dists {
			sum += d
		}
		mean := sum / float64(len(dists))
		return mean * goldenish, maxDist
	}
}

// matchBondMatrix searches for a permutation perm (template index ->
// observed index) such that bonds[perm[i]][perm[j]] == template[i][j] for
// all i,j, and observed neighbors respect the template's per-neighbor tag
// partition. The search is a depth-first backtracking assignment with
// early pruning (spec.md §4.2.1's "bitmap-sort to prune inconsistent
// permutations"): candidates for template slot i are restricted to
// observed indices matching i's coordination-shell tag and not yet used.
//
// Observed indices arrive sorted nearest-first (spatial.Query.FindNeighbors'
// contract), the same convention the template uses for tmplTag (first-shell
// entries before second-shell ones), so the observed shell of index obs is
// derived by rank rather than a recomputed distance.
func matchBondMatrix(bonds, tmplBonds [][]bool, tmplTag []int) ([]int, bool) {
	n := len(tmplBonds)
	if len(bonds) != n {
		return nil, false
	}

	firstShellCount := 0
	for _, tag := range tmplTag {
		if tag == 0 {
			firstShellCount++
		}
	}
	obsTag := func(obs int) int {
		if obs < firstShellCount {
			return 0
		}
		return 1
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = -1
	}
	used := make([]bool, n)

	var assign func(tmplIdx int) bool
	assign = func(tmplIdx int) bool {
		if tmplIdx == n {
			return true
		}
		for obs := 0; obs < n; obs++ {
			if used[obs] {
				continue
			}
			if tmplTag[tmplIdx] != obsTag(obs) {
				continue
			}
			if !bondsConsistent(bonds, tmplBonds, perm, tmplIdx, obs) {
				continue
			}
			perm[tmplIdx] = obs
			used[obs] = true
			if assign(tmplIdx + 1) {
				return true
			}
			used[obs] = false
			perm[tmplIdx] = -1
		}
		return false
	}

	if !assign(0) {
		return nil, false
	}
	return perm, true
}

// bondsConsistent checks that assigning observed index obs to template
// slot tmplIdx keeps every already-assigned pair's bond status consistent
// between the observed bond matrix and the template's.
func bondsConsistent(bonds, tmplBonds [][]bool, perm []int, tmplIdx, obs int) bool {
	for j := 0; j < tmplIdx; j++ {
		other := perm[j]
		if other < 0 {
			continue
		}
		if bonds[obs][other] != tmplBonds[tmplIdx][j] {
			return false
		}
	}
	return true
}
