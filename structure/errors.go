package structure

import "errors"

// Sentinel errors for structure identification, per spec.md §7's
// StructureIdFailure class.
var (
	// ErrTooFewNeighbors is returned when fewer than the required K
	// nearest neighbors exist for the requested structure template.
	ErrTooFewNeighbors = errors.New("structure: fewer neighbors than required by template")

	// ErrNoTemplate is returned when CNA/PTM is requested against a
	// StructureType with no lattice.CoordinationStructure template (e.g.
	// OTHER, ICO, GRAPHENE).
	ErrNoTemplate = errors.New("structure: no coordination template for requested type")
)
