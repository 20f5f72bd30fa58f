package textrun

import (
	"fmt"
	"math"
)

// TypographicExtent returns the sum of glyph advances over the half-open
// glyph range.
func (r *GlyphRun) TypographicExtent(glyphRange Range) float64 {
	r.checkGlyphRange("TypographicExtent", glyphRange)
	extent := 0.0
	for _, adv := range r.advances[glyphRange.Start:glyphRange.End] {
		extent += adv
	}
	return extent
}

// Width returns the run's full typographic extent, computed at most once
// and memoized. Concurrent callers may recompute redundantly; the
// computation is a pure function of the immutable advances, so every store
// writes the same bits.
func (r *GlyphRun) Width() float64 {
	if bits := r.widthBits.Load(); bits != widthSentinel {
		return math.Float64frombits(bits)
	}
	width := r.TypographicExtent(Range{Start: 0, End: len(r.advances)})
	r.widthBits.Store(math.Float64bits(width))
	return width
}

// BoundingBox delegates glyph-shape geometry for the glyph range to the
// renderer, passing index-aligned sub-slices of the glyph arrays.
func (r *GlyphRun) BoundingBox(glyphRange Range, renderer Renderer) Rect {
	r.checkGlyphRange("BoundingBox", glyphRange)
	return renderer.ComputeBoundingBox(
		r.glyphIDs[glyphRange.Start:glyphRange.End],
		r.offsets[glyphRange.Start:glyphRange.End],
		r.advances[glyphRange.Start:glyphRange.End],
	)
}

// checkGlyphRange panics unless rng lies within [0, GlyphCount].
func (r *GlyphRun) checkGlyphRange(op string, rng Range) {
	if rng.Start > rng.End || rng.Start < 0 || rng.End > len(r.glyphIDs) {
		panic(fmt.Sprintf("textrun: %s: glyph range [%d, %d) outside run of %d glyphs",
			op, rng.Start, rng.End, len(r.glyphIDs)))
	}
}
