// Package textrun models a single shaped run of bidirectional text.
//
// A run is the output of a text shaper for one contiguous span of uniform
// direction and style: glyph ids, per-glyph offsets and advances, a cluster
// map from code units to glyph indices, and caret edges at every character
// boundary. GlyphRun owns that data and answers the questions interactive
// text needs answered exactly right:
//
//   - Cluster boundaries: snap a character index to the full extent of the
//     ligature or combining sequence it belongs to, so a caret never lands
//     inside a cluster.
//   - Character to glyph: the leading and trailing glyph of any character's
//     cluster, bidi-aware.
//   - Caret geometry: the pen distance of any character boundary, the width
//     of any character range, and the nearest character to a pixel distance
//     (pointer hit-testing), with a fixed midpoint tie-break.
//   - Glyph-range geometry: typographic extent and renderer-delegated
//     bounding boxes over aligned glyph sub-slices.
//
// # Example usage
//
//	// Shape text with go-text/typesetting (or any shaper), then:
//	run, err := textrun.FromShapingOutput(src, out, level)
//
//	// Hit-test a pointer position against the run.
//	idx := run.NearestCharacterIndex(px - run.Origin.X)
//
//	// Snap to a cluster boundary for caret placement.
//	caret := run.ClusterStart(idx)
//	x := run.Origin.X + run.DistanceForCharacter(caret)
//
// Rasterization, glyph caching, and pixel drawing are not part of this
// package; they sit behind the Renderer interface. Font parsing, line
// breaking, and upstream bidi resolution are likewise external; the run
// receives already-resolved shaping data.
//
// A GlyphRun is immutable after construction except for the exported Origin
// field (assigned by a layout engine) and an idempotent lazy width cache.
// All query operations are safe for concurrent use.
package textrun
