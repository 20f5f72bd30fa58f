package textrun

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
)

// RunSpec is the full construction tuple for a GlyphRun, as produced by a
// shaping pipeline. All slices are retained by the run; callers must not
// modify them afterwards.
type RunSpec struct {
	// Source is the backing character sequence, shared across all runs of a
	// shaped paragraph. Indices below are rune offsets into it.
	Source []rune

	// Start and End delimit the half-open character range [Start, End) the
	// run covers.
	Start, End int

	// StartExtra and EndExtra count additional code units, immediately
	// before Start and after End, that belong to clusters straddling the
	// run boundary (a ligature split across two runs). The accessible span
	// is [Start-StartExtra, End+EndExtra).
	StartExtra, EndExtra int

	// Backward reports whether glyph order is reversed relative to
	// character order within the run.
	Backward bool

	// BidiLevel is the resolved embedding level; odd parity means
	// right-to-left.
	BidiLevel uint8

	// Direction is the overall run direction, consistent with BidiLevel
	// parity.
	Direction Direction

	// Face, Size, and Metrics are shaping metadata, forwarded to rendering
	// collaborators and otherwise opaque to the run model.
	Face    *font.Face
	Size    float64
	Metrics Metrics

	// GlyphIDs, Offsets, and Advances are index-aligned glyph arrays of
	// equal length.
	GlyphIDs []font.GID
	Offsets  []Point
	Advances []float64

	// ClusterMap maps each code unit of the extended span to the first
	// glyph index of its cluster. Length must equal the extended span.
	ClusterMap []int

	// CaretEdges holds the cumulative pen position, in character order, at
	// every character boundary of the extended span including both outer
	// boundaries. Length must be len(ClusterMap)+1.
	CaretEdges []float64
}

// GlyphRun is one shaped run of text: a maximal contiguous span sharing
// direction, level, and style, already shaped into glyphs.
//
// A GlyphRun is immutable after construction except for Origin and an
// idempotent lazy width cache; all query methods are safe for concurrent
// use. Slices returned by accessors alias internal state and must not be
// modified.
type GlyphRun struct {
	source     []rune
	start, end int
	startExtra int
	endExtra   int
	backward   bool
	bidiLevel  uint8
	direction  Direction
	face       *font.Face
	size       float64
	metrics    Metrics
	glyphIDs   []font.GID
	offsets    []Point
	advances   []float64
	clusterMap []int
	caretEdges []float64

	// widthBits is the lazy width cache: float64 bits with a -Inf sentinel
	// for "not computed". Width is a pure function of the immutable
	// advances, so concurrent redundant recomputation stores the same
	// value and needs no lock.
	widthBits atomic.Uint64

	// Origin is the run's placement point, assigned by a layout
	// collaborator after construction. No query in this package reads it.
	Origin Point
}

// widthSentinel marks the width cache as not yet computed.
var widthSentinel = math.Float64bits(math.Inf(-1))

// NewGlyphRun constructs a run from a fully populated RunSpec.
// It panics if the spec violates the data-model invariants: the defect is
// in the shaping pipeline, and a silently repaired run would corrupt caret
// placement downstream.
func NewGlyphRun(spec RunSpec) *GlyphRun {
	if spec.Start > spec.End {
		panic(fmt.Sprintf("textrun: start %d after end %d", spec.Start, spec.End))
	}
	if spec.StartExtra < 0 || spec.EndExtra < 0 {
		panic(fmt.Sprintf("textrun: negative extra length %d/%d", spec.StartExtra, spec.EndExtra))
	}
	if spec.Start-spec.StartExtra < 0 || spec.End+spec.EndExtra > len(spec.Source) {
		panic(fmt.Sprintf("textrun: span [%d, %d) outside source of %d runes",
			spec.Start-spec.StartExtra, spec.End+spec.EndExtra, len(spec.Source)))
	}
	glyphCount := len(spec.GlyphIDs)
	if len(spec.Offsets) != glyphCount || len(spec.Advances) != glyphCount {
		panic(fmt.Sprintf("textrun: glyph arrays misaligned: %d ids, %d offsets, %d advances",
			glyphCount, len(spec.Offsets), len(spec.Advances)))
	}
	span := spec.EndExtra + (spec.End - spec.Start) + spec.StartExtra
	if len(spec.ClusterMap) != span {
		panic(fmt.Sprintf("textrun: cluster map length %d, extended span %d",
			len(spec.ClusterMap), span))
	}
	if len(spec.CaretEdges) != span+1 {
		panic(fmt.Sprintf("textrun: caret edges length %d, want %d",
			len(spec.CaretEdges), span+1))
	}
	for i, g := range spec.ClusterMap {
		if g < 0 || g >= glyphCount {
			panic(fmt.Sprintf("textrun: cluster map entry %d is glyph %d, have %d glyphs",
				i, g, glyphCount))
		}
	}

	r := &GlyphRun{
		source:     spec.Source,
		start:      spec.Start,
		end:        spec.End,
		startExtra: spec.StartExtra,
		endExtra:   spec.EndExtra,
		backward:   spec.Backward,
		bidiLevel:  spec.BidiLevel,
		direction:  spec.Direction,
		face:       spec.Face,
		size:       spec.Size,
		metrics:    spec.Metrics,
		glyphIDs:   spec.GlyphIDs,
		offsets:    spec.Offsets,
		advances:   spec.Advances,
		clusterMap: spec.ClusterMap,
		caretEdges: spec.CaretEdges,
	}
	r.widthBits.Store(widthSentinel)
	return r
}

// Start returns the first character index covered by the run.
func (r *GlyphRun) Start() int { return r.start }

// End returns one past the last character index covered by the run.
func (r *GlyphRun) End() int { return r.end }

// Runes returns the run's character range in the source text.
func (r *GlyphRun) Runes() Range { return Range{Start: r.start, End: r.end} }

// StartExtra returns the count of boundary-straddling code units before Start.
func (r *GlyphRun) StartExtra() int { return r.startExtra }

// EndExtra returns the count of boundary-straddling code units after End.
func (r *GlyphRun) EndExtra() int { return r.endExtra }

// Source returns the shared backing character sequence.
func (r *GlyphRun) Source() []rune { return r.source }

// IsBackward reports whether glyph order is reversed relative to character
// order.
func (r *GlyphRun) IsBackward() bool { return r.backward }

// BidiLevel returns the resolved embedding level.
func (r *GlyphRun) BidiLevel() uint8 { return r.bidiLevel }

// IsRTL reports whether the run reads right to left (odd embedding level).
func (r *GlyphRun) IsRTL() bool { return r.bidiLevel&1 == 1 }

// Direction returns the run's overall reading direction.
func (r *GlyphRun) Direction() Direction { return r.direction }

// Face returns the typeface the run was shaped with.
func (r *GlyphRun) Face() *font.Face { return r.face }

// Size returns the shaping size in pixels.
func (r *GlyphRun) Size() float64 { return r.size }

// Metrics returns the run's font metrics at the shaping size.
func (r *GlyphRun) Metrics() Metrics { return r.metrics }

// GlyphCount returns the number of glyphs in the run.
func (r *GlyphRun) GlyphCount() int { return len(r.glyphIDs) }

// GlyphIDs returns the glyph identifier array.
func (r *GlyphRun) GlyphIDs() []font.GID { return r.glyphIDs }

// Offsets returns the per-glyph pen-relative placement adjustments.
func (r *GlyphRun) Offsets() []Point { return r.offsets }

// Advances returns the per-glyph pen advances.
func (r *GlyphRun) Advances() []float64 { return r.advances }

// ClusterMap returns the code-unit to glyph-index map over the extended span.
func (r *GlyphRun) ClusterMap() []int { return r.clusterMap }

// CaretEdges returns the caret edge array over the extended span.
func (r *GlyphRun) CaretEdges() []float64 { return r.caretEdges }

// arrayIndex translates a character index into an index into the extended
// span arrays (clusterMap, caretEdges).
func (r *GlyphRun) arrayIndex(charIndex int) int {
	return charIndex - r.start + r.startExtra
}

// charIndex translates an extended-span array index back to a character
// index.
func (r *GlyphRun) charIndex(arrayIndex int) int {
	return arrayIndex + r.start - r.startExtra
}

// checkCharIndex panics unless charIndex lies in [start, end).
func (r *GlyphRun) checkCharIndex(op string, charIndex int) {
	if charIndex < r.start || charIndex >= r.end {
		panic(fmt.Sprintf("textrun: %s: character index %d outside run [%d, %d)",
			op, charIndex, r.start, r.end))
	}
}

// checkCharRange panics unless rng lies within [start, end].
// A range end may equal the run end: ranges address boundaries, not
// characters.
func (r *GlyphRun) checkCharRange(op string, rng Range) {
	if rng.Start > rng.End || rng.Start < r.start || rng.End > r.end {
		panic(fmt.Sprintf("textrun: %s: character range [%d, %d) outside run [%d, %d)",
			op, rng.Start, rng.End, r.start, r.end))
	}
}
