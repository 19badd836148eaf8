package mesh

import "errors"

// ErrDegenerateInput is returned when fewer than 4 points are available to
// tessellate; coplanarity is not checked.
var ErrDegenerateInput = errors.New("mesh: fewer than 4 non-degenerate points to tessellate")
