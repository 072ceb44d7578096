package stats

import "errors"

var (
	// ErrMalformedCache is returned by Load when a sidecar file does not hold a numeric sequence.
	ErrMalformedCache = errors.New("malformed stats cache")

	// ErrStaleCache is returned by Load under WithLengthCheck when the cached
	// sequences do not have one entry per frame.
	ErrStaleCache = errors.New("stale stats cache")
)

// ErrInvalidSummary is returned by Save when the four sequences differ in length.
var ErrInvalidSummary = errors.New("invalid stats summary")
