package textrun

import (
	"math"

	"github.com/go-text/typesetting/font"
)

// Renderer rasterizes glyphs. Implementations (GPU, software, test fakes)
// live outside this package; the run model only produces correctly aligned
// glyph sub-slices and per-slice drawing state for them.
type Renderer interface {
	// ComputeBoundingBox returns the ink bounding box of the glyph
	// sub-sequence, in pen coordinates relative to the first glyph's pen
	// position.
	ComputeBoundingBox(glyphIDs []font.GID, offsets []Point, advances []float64) Rect

	// DrawGlyphs draws the glyph sub-sequence with the given context.
	// Glyphs must be clipped to dc.Clip; sides of the clip are infinite
	// when unclipped.
	DrawGlyphs(dc *DrawContext, glyphIDs []font.GID, offsets []Point, advances []float64)
}

// DrawContext carries the state a renderer needs for one glyph slice.
type DrawContext struct {
	// Face and Size identify the typeface and shaping size.
	Face *font.Face
	Size float64

	// Direction is the run's reading direction.
	Direction Direction

	// Origin is the absolute pen position of the slice's first glyph.
	Origin Point

	// Clip bounds drawing in absolute coordinates. Unclipped sides are
	// infinite.
	Clip Rect

	// ScaleX and ScaleY are the draw scale factors.
	ScaleX, ScaleY float64
}

// GlyphSlice is one piece of the boundary-aware draw decomposition: a glyph
// range, its pen translation, and horizontal clip bounds in run-local pen
// coordinates (the same coordinate space as the caret edges). Unclipped
// sides are infinite.
type GlyphSlice struct {
	Glyphs    Range
	Offset    float64
	ClipLeft  float64
	ClipRight float64
}

// Clipped reports whether either side of the slice is clipped.
func (s GlyphSlice) Clipped() bool {
	return !math.IsInf(s.ClipLeft, -1) || !math.IsInf(s.ClipRight, 1)
}

// Decompose splits the run into up to three glyph slices for drawing: a
// first edge cluster, a middle chunk, and a last edge cluster, in character
// order.
//
// An edge cluster is extracted only when the matching extra length is
// non-zero; a run whose boundary character starts its own cluster keeps
// that character in the middle chunk. An extracted edge cluster is clipped
// to the run's own character span at the caret edge of the run boundary, so
// a cluster shared with a neighboring run is drawn exactly once across both
// runs and never as an unclipped half-glyph. When both edge clusters exist
// and the run is shorter than a shared cluster's reach, their glyph ranges
// are clamped against each other; a slice left without glyphs is dropped.
func (r *GlyphRun) Decompose() []GlyphSlice {
	if r.start == r.end {
		return nil
	}
	m := r.clusterMap
	glyphCount := len(r.glyphIDs)
	chunkStart := r.startExtra
	chunkEnd := chunkStart + (r.end - r.start)

	var (
		firstSpan, lastSpan Range
		haveFirst, haveLast bool
	)
	if r.startExtra > 0 {
		firstSpan = Range{
			Start: clusterStart(m, chunkStart),
			End:   clusterEnd(m, chunkStart),
		}
		haveFirst = true
	}
	if r.endExtra > 0 {
		lastSpan = Range{
			Start: clusterStart(m, chunkEnd-1),
			End:   clusterEnd(m, chunkEnd-1),
		}
		haveLast = true
		if haveFirst && lastSpan.Start == firstSpan.Start {
			// Both boundaries fall in one shared cluster: a single slice
			// carries the clip for both sides.
			haveLast = false
		}
	}

	midSpan := Range{Start: chunkStart, End: chunkEnd}
	if haveFirst {
		midSpan.Start = firstSpan.End
	}
	if haveLast {
		midSpan.End = lastSpan.Start
	}

	var gFirst, gLast Range
	if haveFirst {
		gFirst = glyphRangeForClusters(m, firstSpan, r.backward, glyphCount)
	}
	if haveLast {
		gLast = glyphRangeForClusters(m, lastSpan, r.backward, glyphCount)
	}
	gMid := glyphRangeForClusters(m, midSpan, r.backward, glyphCount)

	if haveFirst && haveLast {
		// Keep the two edge clusters from emitting any glyph twice.
		if r.backward {
			// The last characters own the lowest glyph indices.
			if gLast.End > gFirst.Start {
				gLast.End = gFirst.Start
			}
			if gFirst.Start < gLast.End {
				gFirst.Start = gLast.End
			}
		} else {
			if gFirst.End > gLast.Start {
				gFirst.End = gLast.Start
			}
			if gLast.Start < gFirst.End {
				gLast.Start = gFirst.End
			}
		}
	}

	slices := make([]GlyphSlice, 0, 3)
	appendSlice := func(span, glyphs Range, clipped bool) {
		if glyphs.Empty() {
			return
		}
		s := GlyphSlice{
			Glyphs:    glyphs,
			Offset:    r.penOffset(span),
			ClipLeft:  math.Inf(-1),
			ClipRight: math.Inf(1),
		}
		if clipped {
			s.ClipLeft, s.ClipRight = r.clipForSpan(span, chunkStart, chunkEnd)
		}
		slices = append(slices, s)
	}

	if haveFirst {
		appendSlice(firstSpan, gFirst, true)
	}
	appendSlice(midSpan, gMid, false)
	if haveLast {
		appendSlice(lastSpan, gLast, true)
	}
	return slices
}

// penOffset returns the visual-leading caret edge of a cluster-aligned
// array span: the pen position a left-to-right glyph renderer starts from,
// for both LTR and RTL runs.
func (r *GlyphRun) penOffset(span Range) float64 {
	return math.Min(r.caretEdges[span.Start], r.caretEdges[span.End])
}

// clipForSpan computes the horizontal clip bounds for an edge cluster whose
// character span may extend past the run's own range. The clipped side sits
// at the caret edge of the run boundary; the other side stays infinite.
func (r *GlyphRun) clipForSpan(span Range, chunkStart, chunkEnd int) (left, right float64) {
	left, right = math.Inf(-1), math.Inf(1)
	if span.Start < chunkStart {
		edge := r.caretEdges[chunkStart]
		if r.IsRTL() {
			// Characters before the run sit to the right.
			right = edge
		} else {
			left = edge
		}
	}
	if span.End > chunkEnd {
		edge := r.caretEdges[chunkEnd]
		if r.IsRTL() {
			left = edge
		} else {
			right = edge
		}
	}
	return left, right
}

// Draw renders the run through the renderer, one decomposed slice at a
// time. Pen offsets and clip bounds are translated by the run's Origin and
// scaled by the draw config before they reach the renderer.
func (r *GlyphRun) Draw(renderer Renderer, opts ...DrawOption) {
	cfg := newDrawConfig(opts)
	slices := r.Decompose()
	Logger().Debug("textrun: drawing run", "slices", len(slices), "glyphs", len(r.glyphIDs))
	for _, s := range slices {
		dc := &DrawContext{
			Face:      r.face,
			Size:      r.size,
			Direction: r.direction,
			Origin:    Point{X: r.Origin.X + s.Offset*cfg.scaleX, Y: r.Origin.Y},
			Clip: Rect{
				MinX: translateClip(r.Origin.X, s.ClipLeft, cfg.scaleX),
				MinY: math.Inf(-1),
				MaxX: translateClip(r.Origin.X, s.ClipRight, cfg.scaleX),
				MaxY: math.Inf(1),
			},
			ScaleX: cfg.scaleX,
			ScaleY: cfg.scaleY,
		}
		renderer.DrawGlyphs(dc,
			r.glyphIDs[s.Glyphs.Start:s.Glyphs.End],
			r.offsets[s.Glyphs.Start:s.Glyphs.End],
			r.advances[s.Glyphs.Start:s.Glyphs.End],
		)
	}
}

// translateClip maps a run-local clip bound to absolute coordinates,
// preserving infinities.
func translateClip(origin, bound, scale float64) float64 {
	if math.IsInf(bound, 0) {
		return bound
	}
	return origin + bound*scale
}
