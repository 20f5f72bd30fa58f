package textrun

import (
	"errors"
	"math"
	"testing"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// outGlyph builds a shaping glyph with the given cluster and advance.
func outGlyph(cluster int, advance float64) shaping.Glyph {
	return shaping.Glyph{
		GlyphID:      gid(100 + cluster),
		ClusterIndex: cluster,
		XAdvance:     floatToFixed(advance),
	}
}

func TestFromShapingOutputSimple(t *testing.T) {
	src := []rune("abc")
	out := shaping.Output{
		Direction: di.DirectionLTR,
		Runes:     shaping.Range{Offset: 0, Count: 3},
		Size:      fixed.I(16),
		Glyphs: []shaping.Glyph{
			outGlyph(0, 10),
			outGlyph(1, 10),
			outGlyph(2, 10),
		},
	}

	r, err := FromShapingOutput(src, out, 0)
	if err != nil {
		t.Fatalf("FromShapingOutput: %v", err)
	}
	if r.Start() != 0 || r.End() != 3 {
		t.Errorf("range = [%d, %d), want [0, 3)", r.Start(), r.End())
	}
	if r.IsBackward() || r.Direction() != DirectionLTR {
		t.Errorf("direction = %v backward=%v, want LTR forward", r.Direction(), r.IsBackward())
	}
	if r.Size() != 16 {
		t.Errorf("Size() = %g, want 16", r.Size())
	}

	wantMap := []int{0, 1, 2}
	for i, g := range r.ClusterMap() {
		if g != wantMap[i] {
			t.Errorf("clusterMap[%d] = %d, want %d", i, g, wantMap[i])
		}
	}
	wantEdges := []float64{0, 10, 20, 30}
	for i, e := range r.CaretEdges() {
		if math.Abs(e-wantEdges[i]) > 1e-9 {
			t.Errorf("caretEdges[%d] = %g, want %g", i, e, wantEdges[i])
		}
	}
	if math.Abs(r.Width()-30) > 1e-9 {
		t.Errorf("Width() = %g, want 30", r.Width())
	}
}

func TestFromShapingOutputLigature(t *testing.T) {
	// "fi" shapes to one glyph covering two runes; its advance is spread
	// evenly across both code units.
	src := []rune("fix")
	out := shaping.Output{
		Direction: di.DirectionLTR,
		Runes:     shaping.Range{Offset: 0, Count: 3},
		Size:      fixed.I(16),
		Glyphs: []shaping.Glyph{
			outGlyph(0, 15),
			outGlyph(2, 10),
		},
	}

	r, err := FromShapingOutput(src, out, 0)
	if err != nil {
		t.Fatalf("FromShapingOutput: %v", err)
	}
	wantMap := []int{0, 0, 1}
	for i, g := range r.ClusterMap() {
		if g != wantMap[i] {
			t.Errorf("clusterMap[%d] = %d, want %d", i, g, wantMap[i])
		}
	}
	wantEdges := []float64{0, 7.5, 15, 25}
	for i, e := range r.CaretEdges() {
		if math.Abs(e-wantEdges[i]) > 1e-9 {
			t.Errorf("caretEdges[%d] = %g, want %g", i, e, wantEdges[i])
		}
	}
}

func TestFromShapingOutputRTL(t *testing.T) {
	// Glyphs arrive in visual order: the character-order first cluster
	// sits last in the buffer.
	src := []rune("אבג")
	out := shaping.Output{
		Direction: di.DirectionRTL,
		Runes:     shaping.Range{Offset: 0, Count: 3},
		Size:      fixed.I(16),
		Glyphs: []shaping.Glyph{
			outGlyph(2, 10),
			outGlyph(1, 10),
			outGlyph(0, 10),
		},
	}

	r, err := FromShapingOutput(src, out, 1)
	if err != nil {
		t.Fatalf("FromShapingOutput: %v", err)
	}
	if !r.IsBackward() || !r.IsRTL() {
		t.Error("RTL output must build a backward, odd-level run")
	}
	wantMap := []int{2, 1, 0}
	for i, g := range r.ClusterMap() {
		if g != wantMap[i] {
			t.Errorf("clusterMap[%d] = %d, want %d", i, g, wantMap[i])
		}
	}
	wantEdges := []float64{30, 20, 10, 0}
	for i, e := range r.CaretEdges() {
		if math.Abs(e-wantEdges[i]) > 1e-9 {
			t.Errorf("caretEdges[%d] = %g, want %g", i, e, wantEdges[i])
		}
	}
	if got := r.DistanceForCharacters(Range{0, 3}); math.Abs(got-30) > 1e-9 {
		t.Errorf("DistanceForCharacters(full) = %g, want 30", got)
	}
}

func TestFromShapingOutputOffsetRange(t *testing.T) {
	// A run in the middle of a paragraph: cluster indices are absolute.
	src := []rune("hello world")
	out := shaping.Output{
		Direction: di.DirectionLTR,
		Runes:     shaping.Range{Offset: 6, Count: 5},
		Size:      fixed.I(12),
		Glyphs: []shaping.Glyph{
			outGlyph(6, 7), outGlyph(7, 7), outGlyph(8, 7), outGlyph(9, 7), outGlyph(10, 7),
		},
	}

	r, err := FromShapingOutput(src, out, 0)
	if err != nil {
		t.Fatalf("FromShapingOutput: %v", err)
	}
	if r.Start() != 6 || r.End() != 11 {
		t.Errorf("range = [%d, %d), want [6, 11)", r.Start(), r.End())
	}
	if got := r.DistanceForCharacter(8); math.Abs(got-14) > 1e-9 {
		t.Errorf("DistanceForCharacter(8) = %g, want 14", got)
	}
}

func TestFromShapingOutputMetricsAndOffsets(t *testing.T) {
	src := []rune("a")
	g := outGlyph(0, 10)
	g.XOffset = fixed.I(2)
	g.YOffset = fixed.I(-3)
	out := shaping.Output{
		Direction: di.DirectionLTR,
		Runes:     shaping.Range{Offset: 0, Count: 1},
		Size:      fixed.I(16),
		Glyphs:    []shaping.Glyph{g},
		LineBounds: shaping.Bounds{
			Ascent:  fixed.I(12),
			Descent: fixed.I(-4),
			Gap:     fixed.I(2),
		},
	}

	r, err := FromShapingOutput(src, out, 0)
	if err != nil {
		t.Fatalf("FromShapingOutput: %v", err)
	}
	m := r.Metrics()
	if m.Ascent != 12 || m.Descent != 4 || m.Leading != 2 {
		t.Errorf("Metrics = %+v, want {12 4 2}", m)
	}
	if m.LineHeight() != 18 {
		t.Errorf("LineHeight() = %g, want 18", m.LineHeight())
	}
	off := r.Offsets()[0]
	if off.X != 2 || off.Y != -3 {
		t.Errorf("offset = %+v, want {2 -3}", off)
	}
}

func TestFromShapingOutputErrors(t *testing.T) {
	src := []rune("abc")

	t.Run("vertical", func(t *testing.T) {
		out := shaping.Output{Direction: di.DirectionTTB, Runes: shaping.Range{Count: 3}}
		if _, err := FromShapingOutput(src, out, 0); !errors.Is(err, ErrVerticalText) {
			t.Errorf("err = %v, want ErrVerticalText", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		out := shaping.Output{Direction: di.DirectionLTR}
		if _, err := FromShapingOutput(src, out, 0); !errors.Is(err, ErrEmptyOutput) {
			t.Errorf("err = %v, want ErrEmptyOutput", err)
		}
	})

	t.Run("range outside source", func(t *testing.T) {
		out := shaping.Output{
			Direction: di.DirectionLTR,
			Runes:     shaping.Range{Offset: 2, Count: 5},
			Glyphs:    []shaping.Glyph{outGlyph(2, 10)},
		}
		if _, err := FromShapingOutput(src, out, 0); !errors.Is(err, ErrRangeOutOfBounds) {
			t.Errorf("err = %v, want ErrRangeOutOfBounds", err)
		}
	})

	t.Run("cluster outside range", func(t *testing.T) {
		out := shaping.Output{
			Direction: di.DirectionLTR,
			Runes:     shaping.Range{Offset: 0, Count: 3},
			Glyphs:    []shaping.Glyph{outGlyph(5, 10)},
		}
		if _, err := FromShapingOutput(src, out, 0); !errors.Is(err, ErrMalformedClusters) {
			t.Errorf("err = %v, want ErrMalformedClusters", err)
		}
	})

	t.Run("runes without glyphs", func(t *testing.T) {
		out := shaping.Output{
			Direction: di.DirectionLTR,
			Runes:     shaping.Range{Offset: 0, Count: 3},
		}
		if _, err := FromShapingOutput(src, out, 0); !errors.Is(err, ErrMalformedClusters) {
			t.Errorf("err = %v, want ErrMalformedClusters", err)
		}
	})

	t.Run("clusters not covering run start", func(t *testing.T) {
		out := shaping.Output{
			Direction: di.DirectionLTR,
			Runes:     shaping.Range{Offset: 0, Count: 3},
			Glyphs:    []shaping.Glyph{outGlyph(1, 10), outGlyph(2, 10)},
		}
		if _, err := FromShapingOutput(src, out, 0); !errors.Is(err, ErrMalformedClusters) {
			t.Errorf("err = %v, want ErrMalformedClusters", err)
		}
	})
}

func TestFixedConversionRoundTrip(t *testing.T) {
	values := []float64{0, 1, 10.5, 16, 0.25}
	for _, v := range values {
		if got := fixedToFloat(floatToFixed(v)); got != v {
			t.Errorf("fixedToFloat(floatToFixed(%g)) = %g", v, got)
		}
	}
}
