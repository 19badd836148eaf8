package geom

// Epsilon is the generic numeric tolerance used across dxacore wherever
// spec.md does not mandate a more specific constant. It matches spec.md §6's
// "EPSILON generic = 1e-6".
const Epsilon = 1e-6

// TransitionEpsilon is spec.md §6's CA_TRANSITION_MATRIX_EPSILON. No code
// in dxacore reads it: symmetry matching uses cluster.CATransitionMatrixEpsilon,
// Matrix3.IsOrthogonal uses 1e-4, and burgers.Trace tests face sums with 1e-3.
const TransitionEpsilon = 1e-6
