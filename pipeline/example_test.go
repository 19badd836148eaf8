// Package pipeline_test provides runnable examples demonstrating
// pipeline.Analyze, following the teacher's "go test -run Example"
// convention.
package pipeline_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/pipeline"
)

// ExampleAnalyze runs the pipeline over a perfect, defect-free FCC unit
// cell and prints the resulting cluster count, matching spec.md §8's
// "exactly one cluster... clusterTransitions.length = 0" boundary case.
func ExampleAnalyze() {
	const a = 4.0
	basis := geom.MatrixFromColumns(
		geom.Vector3{X: a},
		geom.Vector3{Y: a},
		geom.Vector3{Z: a},
	)
	simCell, err := cell.New(basis, geom.Zero3, [3]bool{true, true, true}, false)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	positions := []geom.Point3{
		{X: 0, Y: 0, Z: 0},
		{X: a / 2, Y: a / 2, Z: 0},
		{X: a / 2, Y: 0, Z: a / 2},
		{X: 0, Y: a / 2, Z: a / 2},
	}

	result, err := pipeline.Analyze(context.Background(), positions, simCell, nil,
		pipeline.WithInputStructure(lattice.FCC),
		pipeline.WithMode(pipeline.ModeCNA),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("clusters=%d transitions=%d\n", len(result.Clusters), len(result.ClusterTransitions))
	// Output: clusters=1 transitions=0
}
