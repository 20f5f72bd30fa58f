package textrun

import "errors"

// Sentinel errors for the textrun package.
//
// Contract violations (character index out of range, mismatched array
// lengths at construction) are not errors: they are caller defects and
// panic. The errors here cover the shaping bridge, which deals with
// externally produced data.
var (
	// ErrEmptyOutput is returned when a shaping output contains no glyphs
	// and no rune range.
	ErrEmptyOutput = errors.New("textrun: empty shaping output")

	// ErrVerticalText is returned when a shaping output uses a vertical
	// direction, which this run model does not cover.
	ErrVerticalText = errors.New("textrun: vertical text is not supported")

	// ErrRangeOutOfBounds is returned when a shaping output's rune range
	// does not fit inside the provided source text.
	ErrRangeOutOfBounds = errors.New("textrun: shaping output range outside source text")

	// ErrMalformedClusters is returned when a shaping output's cluster
	// indices do not cover its rune range monotonically.
	ErrMalformedClusters = errors.New("textrun: malformed cluster indices in shaping output")
)
