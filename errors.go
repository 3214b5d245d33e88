package anim

import "errors"

// Sentinel errors returned by path mutations and computations. Call sites
// wrap them with detail via fmt.Errorf("%w: ..."), so callers should test
// with errors.Is.
var (
	// ErrValidation reports malformed input: a non-positive frame offset,
	// a non-positive resampling step or zoom factor, or a computation
	// requested on fewer than two waypoints.
	ErrValidation = errors.New("invalid path input")

	// ErrTypeKind reports a time increment whose kind is foreign to the
	// path's time domain, e.g. a frame offset given to a timestamp path.
	ErrTypeKind = errors.New("wrong increment kind for time domain")

	// ErrOrdering reports an appended marker that does not advance past
	// the path's most recent marker.
	ErrOrdering = errors.New("marker does not advance")

	// ErrDomain reports a sample position outside the waypoint span.
	// The path never extrapolates.
	ErrDomain = errors.New("sample outside waypoint span")
)
