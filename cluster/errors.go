package cluster

import "errors"

// ErrUnsupportedMode is returned when Build is called with a Mode other
// than ModeCNA or ModePTM.
var ErrUnsupportedMode = errors.New("cluster: unsupported identification mode")
