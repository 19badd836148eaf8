// Package dxaerr implements spec.md §7's error taxonomy: a typed envelope
// carrying which class of failure occurred and which subsystem detected
// it, plus the sentinel errors each class wraps.
//
// Only fatal classes (InvalidInput, CellTooSmall, ConfigurationError)
// surface as returned *dxaerr.Error values that halt the pipeline;
// recoverable classes (StructureIdFailure, ClusterCompatibilityFailure,
// CircuitCloseFailure) are absorbed at the site of occurrence by the
// subsystem packages and never returned here — callers of this package
// construct them only to log a demotion notice via dxalog, never to
// propagate them.
package dxaerr
