package core

import "errors"

// ErrInvalidGeometry is wrapped by every construction-time geometry failure:
// zero vectors, degenerate planes and polygons, non-positive radii or heights.
var ErrInvalidGeometry = errors.New("invalid geometry")
