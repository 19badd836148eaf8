package burgers

import "errors"

// ErrNoClosingCircuit names the case where no trial circuit starting at a
// seed face closes within MaxTrialCircuitSize growth steps. No function in
// this package returns it: Trace abandons such seeds silently, per spec.md
// §4.5's failure semantics.
var ErrNoClosingCircuit = errors.New("burgers: no closing circuit found from seed")
