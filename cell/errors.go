package cell

import "errors"

// Sentinel errors for SimulationCell construction.
var (
	// ErrNonPositiveVolume indicates the cell basis is degenerate (zero or
	// negative signed volume); spec.md §3's "volume > 0" invariant.
	ErrNonPositiveVolume = errors.New("cell: non-positive volume")

	// ErrCellTooSmall indicates a periodic axis is thinner than twice the
	// requested cutoff, per spec.md §4.1 step 2 and §7's CellTooSmall class.
	ErrCellTooSmall = errors.New("cell: cell too small for requested cutoff")
)
