package spatial

import "errors"

// Sentinel errors for Index construction and queries.
var (
	// ErrCellTooSmall is returned by Build when a periodic axis is thinner
	// than twice the requested cutoff (spec.md §4.1 step 2).
	ErrCellTooSmall = errors.New("spatial: cell too small for requested cutoff")

	// ErrNoPositions is returned by Build when there are zero atoms.
	ErrNoPositions = errors.New("spatial: no positions to index")
)

// errUnprepared is panicked (not returned) by Query on an Index that failed
// to Build, matching spec.md §4.1's "queries on an unprepared index panic
// (programmer error)".
var errUnprepared = errors.New("spatial: index not prepared")
