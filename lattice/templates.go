package lattice

import (
	"math"

	"github.com/katalvlaran/dxacore/geom"
)

// idealNeighborVectors returns the ideal neighbor-template vectors for s, in
// units where the nearest-neighbor distance is 1 (except BCC, whose vectors
// use a unit cube edge; see bccNeighbors), following
// original_source/opendxa/src/lattice/*.cpp and
// .../core/coordination_structures.cpp. Order matters: it is the canonical
// neighbor ordering CNA/PTM match candidate permutations against.
func idealNeighborVectors(s StructureType) []geom.Vector3 {
	switch s {
	case FCC:
		return fccNeighbors()
	case HCP:
		return hcpNeighbors()
	case BCC:
		return bccNeighbors()
	case SC:
		return scNeighbors()
	case CUBIC_DIAMOND, HEX_DIAMOND:
		return diamondNeighbors()
	default:
		return nil
	}
}

// fccNeighbors returns the 12 nearest-neighbor vectors of FCC: permutations
// of (+-1,+-1,0)/sqrt2, each of unit length.
func fccNeighbors() []geom.Vector3 {
	s := 1.0 / math.Sqrt2
	signs := []float64{1, -1}
	var out []geom.Vector3
	for _, sx := range signs {
		for _, sy := range signs {
			out = append(out, geom.Vector3{X: sx * s, Y: sy * s, Z: 0})
		}
	}
	for _, sx := range signs {
		for _, sz := range signs {
			out = append(out, geom.Vector3{X: sx * s, Y: 0, Z: sz * s})
		}
	}
	for _, sy := range signs {
		for _, sz := range signs {
			out = append(out, geom.Vector3{X: 0, Y: sy * s, Z: sz * s})
		}
	}
	return out
}

// bccNeighbors returns BCC's 14 neighbors: 8 body-diagonal first neighbors
// at distance sqrt(3)/2, then 6 axis-aligned second neighbors at distance 1
// (cube edge length), matching spec.md §4.2.1's "14 for BCC".
func bccNeighbors() []geom.Vector3 {
	var out []geom.Vector3
	signs := []float64{0.5, -0.5}
	for _, sx := range signs {
		for _, sy := range signs {
			for _, sz := range signs {
				out = append(out, geom.Vector3{X: sx, Y: sy, Z: sz})
			}
		}
	}
	out = append(out,
		geom.Vector3{X: 1}, geom.Vector3{X: -1},
		geom.Vector3{Y: 1}, geom.Vector3{Y: -1},
		geom.Vector3{Z: 1}, geom.Vector3{Z: -1},
	)
	return out
}

// scNeighbors returns SC's 6 axis-aligned neighbors.
func scNeighbors() []geom.Vector3 {
	return []geom.Vector3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
}

// hcpNeighbors returns HCP's 12 ideal neighbors: 6 in-plane at distance 1,
// and 6 out-of-plane (3 above, 3 below) at distance 1, using the ideal
// hcp c/a = sqrt(8/3) ratio.
func hcpNeighbors() []geom.Vector3 {
	var out []geom.Vector3
	for k := 0; k < 6; k++ {
		theta := float64(k) * math.Pi / 3
		out = append(out, geom.Vector3{X: math.Cos(theta), Y: math.Sin(theta), Z: 0})
	}
	z := math.Sqrt(2.0 / 3.0)
	r := 1.0 / math.Sqrt(3.0)
	for k := 0; k < 3; k++ {
		theta := math.Pi/6 + float64(k)*2*math.Pi/3
		out = append(out, geom.Vector3{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: z})
	}
	for k := 0; k < 3; k++ {
		theta := math.Pi/2 + float64(k)*2*math.Pi/3
		out = append(out, geom.Vector3{X: r * math.Cos(theta), Y: r * math.Sin(theta), Z: -z})
	}
	return out
}

// diamondTetrahedralDirections returns the 4 unit tetrahedral bond
// directions of one diamond sublattice.
func diamondTetrahedralDirections() []geom.Vector3 {
	s := 1.0 / math.Sqrt(3.0)
	return []geom.Vector3{
		{X: s, Y: s, Z: s},
		{X: s, Y: -s, Z: -s},
		{X: -s, Y: s, Z: -s},
		{X: -s, Y: -s, Z: s},
	}
}

// diamondNeighbors returns diamond's 16 neighbors per spec.md §4.2.1: the 4
// first neighbors followed by the 12 second neighbors generated by
// expanding through each first neighbor (spec.md's recursive construction).
func diamondNeighbors() []geom.Vector3 {
	first := diamondTetrahedralDirections()
	out := append([]geom.Vector3{}, first...)
	for i, di := range first {
		for j, dj := range first {
			if i == j {
				continue
			}
			// Second-shell vector reached via first neighbor i, continuing
			// to one of its own first neighbors other than the back-bond.
			second := di.Sub(dj)
			out = append(out, second)
		}
	}
	return out
}
