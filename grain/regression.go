package grain

import "math"

// regressionPoint is one dendrogram merge's (log-distance, log-size) sample
// for the threshold regression of spec.md §4.6 step 6.
type regressionPoint struct {
	logDistance float64
	logSize     float64
}

// SuggestedMergingThreshold implements spec.md §4.6 step 6: fit an
// iteratively-reweighted linear regression of log(distance) against
// log(merge_size) — the harmonic mean 2/(1/|A|+1/|B|) of the two pre-merge
// cluster sizes, not their combined total — over the dendrogram's merge
// sequence, then return the largest log(distance) among inlier points
// (residual below 1.5*MAD of the final fit).
//
// The IRLS loop runs a fixed 100 iterations; each one refits the line and
// then sets every weight to 1 / max(1e-4, |r_i|) from that fit's residuals,
// following spec.md's recipe; no third-party
// statistics/regression library exists anywhere in the examples pack (see
// DESIGN.md's grain package entry), so this is implemented directly.
func SuggestedMergingThreshold(dendrogram []DendrogramNode) float64 {
	points := make([]regressionPoint, 0, len(dendrogram))
	for _, node := range dendrogram {
		if node.MergeSize < 2 || math.IsInf(node.Distance, 0) || math.IsNaN(node.Distance) {
			continue
		}
		points = append(points, regressionPoint{
			logDistance: node.Distance,
			logSize:     math.Log(node.MergeSize),
		})
	}
	if len(points) < 2 {
		if len(dendrogram) > 0 {
			return dendrogram[len(dendrogram)-1].Distance
		}
		return 0
	}

	weights := make([]float64, len(points))
	for i := range weights {
		weights[i] = 1
	}

	var slope, intercept float64
	for iter := 0; iter < 100; iter++ {
		slope, intercept = weightedLinearFit(points, weights)
		for i, p := range points {
			residual := math.Abs(p.logDistance - (slope*p.logSize + intercept))
			weights[i] = 1 / math.Max(1e-4, residual)
		}
	}

	residuals := make([]float64, len(points))
	for i, p := range points {
		residuals[i] = p.logDistance - (slope*p.logSize + intercept)
	}
	mad := medianAbsoluteDeviation(residuals)

	threshold := math.Inf(-1)
	for i, p := range points {
		if math.Abs(residuals[i]) < 1.5*mad {
			if p.logDistance > threshold {
				threshold = p.logDistance
			}
		}
	}
	if math.IsInf(threshold, -1) {
		threshold = points[len(points)-1].logDistance
	}
	return threshold
}

// weightedLinearFit solves the weighted least-squares line y = slope*x +
// intercept through points, weighted by weights.
func weightedLinearFit(points []regressionPoint, weights []float64) (slope, intercept float64) {
	var sumW, sumWX, sumWY, sumWXX, sumWXY float64
	for i, p := range points {
		w := weights[i]
		x, y := p.logSize, p.logDistance
		sumW += w
		sumWX += w * x
		sumWY += w * y
		sumWXX += w * x * x
		sumWXY += w * x * y
	}
	denom := sumW*sumWXX - sumWX*sumWX
	if math.Abs(denom) < 1e-12 {
		return 0, sumWY / math.Max(sumW, 1e-12)
	}
	slope = (sumW*sumWXY - sumWX*sumWY) / denom
	intercept = (sumWY - slope*sumWX) / sumW
	return slope, intercept
}

// medianAbsoluteDeviation returns the median of |residuals - median(residuals)|.
func medianAbsoluteDeviation(residuals []float64) float64 {
	med := median(residuals)
	abs := make([]float64, len(residuals))
	for i, r := range residuals {
		abs[i] = math.Abs(r - med)
	}
	return median(abs)
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	insertionSortFloat64(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func insertionSortFloat64(xs []float64) {
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
}
