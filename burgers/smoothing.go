package burgers

import "github.com/katalvlaran/dxacore/geom"

// smoothPolyline applies `level` passes of iterative neighbor averaging to
// the interior points of points, per spec.md §4.5's lineSmoothingLevel.
// Endpoints are held fixed. Points are averaged as given, with no periodic
// unwrapping; Trace passes face centroids of the raw atom positions, so a
// segment crossing a periodic boundary is not unwrapped first.
func smoothPolyline(points []geom.Point3, level int) []geom.Point3 {
	if len(points) < 3 || level <= 0 {
		return points
	}
	cur := append([]geom.Point3(nil), points...)
	for pass := 0; pass < level; pass++ {
		next := append([]geom.Point3(nil), cur...)
		for i := 1; i < len(cur)-1; i++ {
			avg := cur[i-1].Add(cur[i].Scale(2)).Add(cur[i+1]).Scale(0.25)
			next[i] = avg
		}
		cur = next
	}
	return cur
}

// resample re-parameterizes points to approximately equal spacing
// interval, per spec.md §4.5's linePointInterval, via linear interpolation
// along the polyline's cumulative arc length.
func resample(points []geom.Point3, interval float64) []geom.Point3 {
	if len(points) < 2 || interval <= 0 {
		return points
	}

	total := 0.0
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
		cum[i] = total
	}
	if total < interval {
		return points
	}

	n := int(total/interval) + 1
	out := make([]geom.Point3, 0, n+1)
	out = append(out, points[0])
	seg := 0
	for s := 1; s <= n; s++ {
		target := float64(s) * interval
		if target >= total {
			break
		}
		for seg < len(cum)-2 && cum[seg+1] < target {
			seg++
		}
		segLen := cum[seg+1] - cum[seg]
		var t float64
		if segLen > 1e-12 {
			t = (target - cum[seg]) / segLen
		}
		p := points[seg].Add(points[seg+1].Sub(points[seg]).Scale(t))
		out = append(out, p)
	}
	out = append(out, points[len(points)-1])
	return out
}
