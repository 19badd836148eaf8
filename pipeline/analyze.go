package pipeline

import (
	"context"

	"github.com/katalvlaran/dxacore/burgers"
	"github.com/katalvlaran/dxacore/cell"
	"github.com/katalvlaran/dxacore/cluster"
	"github.com/katalvlaran/dxacore/dxaerr"
	"github.com/katalvlaran/dxacore/dxalog"
	"github.com/katalvlaran/dxacore/geom"
	"github.com/katalvlaran/dxacore/grain"
	"github.com/katalvlaran/dxacore/lattice"
	"github.com/katalvlaran/dxacore/mesh"
	"github.com/katalvlaran/dxacore/property"
	"github.com/katalvlaran/dxacore/spatial"
	"github.com/katalvlaran/dxacore/structure"
)

// Analyze runs spec.md §6's full dislocation-extraction pipeline:
// spatial index -> structure identification -> cluster building -> super
// grain merge -> interface mesh -> Burgers circuit tracing -> optional
// grain segmentation.
//
// Fatal taxonomy classes (InvalidInput, CellTooSmall, ConfigurationError)
// are returned as *dxaerr.Error and halt before any work begins, per
// spec.md §7's propagation policy. Recoverable classes are absorbed
// internally and logged via logger at Debug (nil logger disables this).
func Analyze(ctx context.Context, positions []geom.Point3, c *cell.SimulationCell, logger *dxalog.Logger, opts ...Option) (*Result, error) {
	if logger == nil {
		logger = dxalog.Default()
	}
	cfg := newConfig(opts...)

	if err := validateConfig(cfg); err != nil {
		logger.Fatal(ctx, err)
		return &Result{IsFailed: true, Error: err.Error()}, err
	}
	if len(positions) == 0 {
		err := dxaerr.New(dxaerr.InvalidInput, "pipeline", dxaerr.ErrZeroAtoms)
		logger.Fatal(ctx, err)
		return &Result{IsFailed: true, Error: err.Error()}, err
	}
	if c == nil || c.Volume() <= 0 {
		err := dxaerr.New(dxaerr.InvalidInput, "pipeline", dxaerr.ErrDegenerateCell)
		logger.Fatal(ctx, err)
		return &Result{IsFailed: true, Error: err.Error()}, err
	}

	n := len(positions)
	initialCutoff := estimateInitialCutoff(cfg.inputStructure)

	idx, err := spatial.Build(positions, c, initialCutoff)
	if err != nil {
		class := dxaerr.CellTooSmall
		sentinel := dxaerr.ErrCellTooThin
		if err == spatial.ErrNoPositions {
			class, sentinel = dxaerr.InvalidInput, dxaerr.ErrZeroAtoms
		}
		e := dxaerr.New(class, "spatial", sentinel)
		logger.Fatal(ctx, e)
		return &Result{IsFailed: true, Error: e.Error()}, e
	}

	structureProp := property.New("structure", property.Int32, 1, n)
	orientationProp := property.New("orientation", property.Float64, 4, n)
	rmsdProp := property.New("rmsd", property.Float64, 1, n)
	symPermProp := property.New("symPerm", property.Int32, 1, n)
	ringProp := property.New("ring", property.Int32, 1, n)

	var maxNeighborDist float64
	var clusterMode cluster.Mode
	neighborList := property.NewNeighborListProperty(n, structure.MaxInputNeighbors)

	switch cfg.mode {
	case ModePTM:
		clusterMode = cluster.ModePTM
		if err := structure.IdentifyPTM(positions, idx, cfg.rmsdCutoff, structureProp, orientationProp, rmsdProp, neighborList); err != nil {
			e := dxaerr.New(dxaerr.ConfigurationError, "structure", err)
			logger.Fatal(ctx, e)
			return &Result{IsFailed: true, Error: e.Error()}, e
		}
		maxNeighborDist = estimatePTMMaxNeighborDist(positions, idx, structureProp)
	case ModeDiamond:
		clusterMode = cluster.ModeCNA
		if err := structure.IdentifyDiamond(positions, idx, structureProp, ringProp); err != nil {
			e := dxaerr.New(dxaerr.ConfigurationError, "structure", err)
			logger.Fatal(ctx, e)
			return &Result{IsFailed: true, Error: e.Error()}, e
		}
		maxNeighborDist = estimatePTMMaxNeighborDist(positions, idx, structureProp)
	default:
		clusterMode = cluster.ModeCNA
		dist, err := structure.IdentifyCNA(positions, idx, cfg.inputStructure, structureProp, symPermProp, neighborList)
		if err != nil {
			e := dxaerr.New(dxaerr.ConfigurationError, "structure", err)
			logger.Fatal(ctx, e)
			return &Result{IsFailed: true, Error: e.Error()}, e
		}
		maxNeighborDist = dist
	}

	clusterResult, err := cluster.Build(n, cluster.Inputs{
		Mode:            clusterMode,
		InputStructure:  cfg.inputStructure,
		StructureProp:   structureProp,
		NeighborList:    neighborList,
		SymPermProp:     symPermProp,
		OrientationProp: orientationProp,
		RMSDProp:        rmsdProp,
		Positions:       positions,
		Cell:            c,
	})
	if err != nil {
		e := dxaerr.New(dxaerr.ConfigurationError, "cluster", err)
		logger.Fatal(ctx, e)
		return &Result{IsFailed: true, Error: e.Error()}, e
	}
	cluster.MergeSuperGrains(clusterResult, cfg.inputStructure)

	atomicStrain := cluster.ComputeAtomicStrain(positions, idx, structureProp)

	ghostLayerWidth := cfg.ghostLayerFactor * maxNeighborDist
	interfaceMesh, dislocationSegments := buildMeshAndCircuits(positions, c, idx, clusterResult, cfg, ghostLayerWidth, logger, ctx)

	result := &Result{
		StructureTypes:      readInt32Property(structureProp, n),
		AtomClusters:        clusterResult.ClusterID,
		Orientations:        readOrientations(orientationProp, n),
		Clusters:            clusterResult.Clusters,
		ClusterTransitions:  clusterResult.Transitions,
		AtomicStrain:        atomicStrain,
		InterfaceMesh:       interfaceMesh,
		DislocationSegments: dislocationSegments,
		properties: map[string]*property.Property{
			"structure":    structureProp,
			"orientation":  orientationProp,
			"rmsd":         rmsdProp,
			"symPerm":      symPermProp,
			"ring":         ringProp,
			"neighborList": neighborList,
		},
	}

	if cfg.segmentGrains {
		segResult := grain.Segment(positions, idx, structureProp, orientationProp, grain.Options{
			RelabelCoherentInterfaces: cfg.handleCoherentInterfaces,
			MinGrainAtomCount:         cfg.minGrainAtomCount,
		})
		result.Grains = segResult.Grains
		result.AtomGrainIDs = assignAtomGrainIDs(n, segResult.Grains)
	}

	return result, nil
}

func validateConfig(cfg *config) *dxaerr.Error {
	if cfg.smoothingLevel < 0 {
		return dxaerr.Newf(dxaerr.ConfigurationError, "pipeline", dxaerr.ErrBadOption, "smoothingLevel=%d", cfg.smoothingLevel)
	}
	if cfg.pointInterval <= 0 {
		return dxaerr.Newf(dxaerr.ConfigurationError, "pipeline", dxaerr.ErrBadOption, "pointInterval=%f", cfg.pointInterval)
	}
	if cfg.maxTrialCircuitSize <= 0 {
		return dxaerr.Newf(dxaerr.ConfigurationError, "pipeline", dxaerr.ErrBadOption, "maxTrialCircuitSize=%d", cfg.maxTrialCircuitSize)
	}
	if cfg.minGrainAtomCount <= 0 {
		return dxaerr.Newf(dxaerr.ConfigurationError, "pipeline", dxaerr.ErrBadOption, "minGrainAtomCount=%d", cfg.minGrainAtomCount)
	}
	return nil
}

// estimatePTMMaxNeighborDist scans the nearest-neighbor distance of every
// recognized atom, feeding the interface-mesh ghost-layer width the same
// way structure.IdentifyCNA's returned maxDist does for CNA mode (spec.md
// §4.2.1's "feeds the ghost-layer width" side effect).
func estimatePTMMaxNeighborDist(positions []geom.Point3, idx *spatial.Index, structureProp *property.Property) float64 {
	q := idx.NewQuery()
	var maxDist float64
	for i := range positions {
		if lattice.StructureType(structureProp.Int(i, 0)) == lattice.OTHER {
			continue
		}
		neighbors := q.FindNeighbors(positions[i], 1, i)
		if len(neighbors) == 0 {
			continue
		}
		d := neighbors[0].Delta.Norm()
		if d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

func estimateInitialCutoff(s lattice.StructureType) float64 {
	tmpl := lattice.Get(s)
	if tmpl == nil {
		return 2.0
	}
	return tmpl.LocalCutoffHint * 1.5
}

func buildMeshAndCircuits(positions []geom.Point3, c *cell.SimulationCell, idx *spatial.Index, clusterResult *cluster.Result, cfg *config, ghostLayerWidth float64, logger *dxalog.Logger, ctx context.Context) (*mesh.Mesh, []burgers.Segment) {
	ghostPoints, ghostFlags := buildGhostLayer(positions, c, ghostLayerWidth)

	cells, err := mesh.Tessellate(ghostPoints, ghostFlags)
	if err != nil {
		logger.Demotion(ctx, dxaerr.CircuitCloseFailure, "mesh", -1, err.Error())
		return &mesh.Mesh{}, nil
	}

	mesh.Classify(cells, ghostLayerWidth/cfg.ghostLayerFactor, func(vertices [4]int32) int {
		return majorityClusterRegion(vertices, clusterResult.ClusterID, len(positions))
	})

	m := mesh.ExtractFaces(cells)
	mesh.AssignLatticeVectors(m, clusterResult.ClusterID, clusterResult.Clusters, positions)

	burgersCfg := burgers.DefaultConfig(cfg.inputStructure)
	burgersCfg.MaxTrialCircuitSize = cfg.maxTrialCircuitSize
	burgersCfg.CircuitStretchability = cfg.circuitStretchability
	burgersCfg.OnlyPerfectDislocations = cfg.onlyPerfectDislocations

	segments := burgers.Trace(m, positions, clusterResult.Clusters, burgersCfg, cfg.smoothingLevel, cfg.pointInterval, cfg.markCoreAtoms)
	return m, segments
}

func assignAtomGrainIDs(n int, grains []grain.Grain) []int32 {
	ids := make([]int32, n)
	for _, g := range grains {
		for _, a := range g.Atoms {
			ids[a] = int32(g.ID)
		}
	}
	return ids
}

func readInt32Property(p *property.Property, n int) []int32 {
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = p.Int(i, 0)
	}
	return out
}

func readOrientations(p *property.Property, n int) []geom.Quaternion {
	out := make([]geom.Quaternion, n)
	for i := 0; i < n; i++ {
		out[i] = p.QuaternionAt(i)
	}
	return out
}

// majorityClusterRegion returns the cluster id shared by the most of a
// tetrahedron's four vertices (ghost vertices, indices >= the original
// atom count, are excluded), per spec.md §4.4's "cluster id of the
// majority of the cell's vertices".
func majorityClusterRegion(vertices [4]int32, clusterID []int32, n int) int {
	counts := make(map[int]int)
	best, bestCount := 0, 0
	for _, v := range vertices {
		if int(v) >= n || v < 0 {
			continue
		}
		cid := int(clusterID[v])
		counts[cid]++
		if counts[cid] > bestCount {
			best, bestCount = cid, counts[cid]
		}
	}
	return best
}
