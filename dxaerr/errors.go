// errors.go — sentinel errors and the typed taxonomy envelope for dxaerr.
//
// Error policy (matching the teacher's builder package convention):
//   - Only sentinel variables are exposed for errors.Is comparisons.
//   - Sentinels are never stringified into other sentinels; context is
//     attached by wrapping with %w via New/Newf.
//   - Callers branch on class with errors.Is(err, dxaerr.ErrX), never by
//     matching Error() strings.
package dxaerr

import (
	"errors"
	"fmt"
)

// Class is spec.md §7's error taxonomy enum.
type Class int

const (
	// InvalidInput: zero atoms, non-positive cell volume, degenerate cell.
	InvalidInput Class = iota
	// CellTooSmall: a periodic axis thinner than twice the required cutoff.
	CellTooSmall
	// StructureIdFailure: an atom's local environment is not classifiable.
	StructureIdFailure
	// ClusterCompatibilityFailure: a transition matrix is not orthogonal.
	ClusterCompatibilityFailure
	// CircuitCloseFailure: a trial Burgers circuit cannot close in budget.
	CircuitCloseFailure
	// ConfigurationError: an out-of-range numeric option.
	ConfigurationError
)

// String renders the class name used in Error.Error() and the result
// bundle's reported error string.
func (c Class) String() string {
	switch c {
	case InvalidInput:
		return "InvalidInput"
	case CellTooSmall:
		return "CellTooSmall"
	case StructureIdFailure:
		return "StructureIdFailure"
	case ClusterCompatibilityFailure:
		return "ClusterCompatibilityFailure"
	case CircuitCloseFailure:
		return "CircuitCloseFailure"
	case ConfigurationError:
		return "ConfigurationError"
	default:
		return "Unknown"
	}
}

// IsFatal reports whether class c halts the pipeline per spec.md §7's
// propagation policy, as opposed to being absorbed at its point of origin.
func (c Class) IsFatal() bool {
	switch c {
	case InvalidInput, CellTooSmall, ConfigurationError:
		return true
	default:
		return false
	}
}

// Sentinel errors, one per taxonomy class, wrapped by Error.Err.
var (
	ErrZeroAtoms       = errors.New("dxaerr: zero atoms")
	ErrDegenerateCell  = errors.New("dxaerr: non-positive cell volume or degenerate basis")
	ErrCellTooThin     = errors.New("dxaerr: periodic axis thinner than twice the required cutoff")
	ErrBadOption       = errors.New("dxaerr: out-of-range configuration option")
	ErrNotClassifiable = errors.New("dxaerr: local environment not classifiable")
	ErrNonOrthogonal   = errors.New("dxaerr: transition matrix not orthogonal")
	ErrCircuitBudget   = errors.New("dxaerr: trial circuit exhausted its budget")
)

// Error is spec.md §7's "typed error to the caller" envelope: which
// taxonomy class fired, which subsystem detected it, and the wrapped
// sentinel (plus any attached context via %w).
type Error struct {
	Class     Class
	Subsystem string
	Err       error
}

// Error implements the error interface, formatted as
// "<Subsystem>: <Class>: <message>".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Subsystem, e.Class, e.Err)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped sentinel.
func (e *Error) Unwrap() error { return e.Err }

// New constructs a *Error, attaching subsystem context without stringifying
// the sentinel.
func New(class Class, subsystem string, err error) *Error {
	return &Error{Class: class, Subsystem: subsystem, Err: err}
}

// Newf wraps sentinel with a formatted context message via %w, then tags it
// with class/subsystem. Use this when the sentinel alone doesn't say which
// value was out of range.
func Newf(class Class, subsystem string, sentinel error, format string, args ...interface{}) *Error {
	return &Error{Class: class, Subsystem: subsystem, Err: fmt.Errorf(format+": %w", append(args, sentinel)...)}
}
