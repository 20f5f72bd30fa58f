package textrun

import (
	"math"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// FromShapingOutput builds a GlyphRun from one go-text/typesetting shaping
// output over the given source text. The output's rune range must lie
// inside source; level is the run's resolved embedding level (see
// ResolveLevels).
//
// The cluster map is derived from the glyphs' ClusterIndex values and the
// caret edges by distributing each cluster's advance evenly across its code
// units, in character order. Runs produced here have no extra lengths:
// boundary-straddling clusters only arise when a pipeline splits shaped
// text mid-cluster, which calls for a hand-built RunSpec.
func FromShapingOutput(source []rune, out shaping.Output, level uint8) (*GlyphRun, error) {
	if out.Direction.IsVertical() {
		return nil, ErrVerticalText
	}
	start := out.Runes.Offset
	end := start + out.Runes.Count
	if out.Runes.Count == 0 && len(out.Glyphs) == 0 {
		return nil, ErrEmptyOutput
	}
	if start < 0 || end > len(source) {
		return nil, ErrRangeOutOfBounds
	}

	backward := out.Direction.Progression() == di.TowardTopLeft

	glyphCount := len(out.Glyphs)
	glyphIDs := make([]font.GID, glyphCount)
	offsets := make([]Point, glyphCount)
	advances := make([]float64, glyphCount)
	for i, g := range out.Glyphs {
		glyphIDs[i] = g.GlyphID
		offsets[i] = Point{
			X: fixedToFloat(g.XOffset),
			Y: fixedToFloat(g.YOffset),
		}
		advances[i] = fixedToFloat(g.XAdvance)
	}

	clusterMap, caretEdges, err := buildClusterGeometry(out, advances, backward)
	if err != nil {
		return nil, err
	}

	Logger().Debug("textrun: built run from shaping output",
		"start", start, "end", end, "glyphs", len(glyphIDs), "backward", backward)

	return NewGlyphRun(RunSpec{
		Source:    source,
		Start:     start,
		End:       end,
		Backward:  backward,
		BidiLevel: level,
		Direction: runDirection(out.Direction),
		Face:      out.Face,
		Size:      fixedToFloat(out.Size),
		Metrics: Metrics{
			Ascent:  fixedToFloat(out.LineBounds.Ascent),
			Descent: math.Abs(fixedToFloat(out.LineBounds.Descent)),
			Leading: fixedToFloat(out.LineBounds.Gap),
		},
		GlyphIDs:   glyphIDs,
		Offsets:    offsets,
		Advances:   advances,
		ClusterMap: clusterMap,
		CaretEdges: caretEdges,
	}), nil
}

// outputCluster is one group of consecutive glyphs sharing a ClusterIndex.
type outputCluster struct {
	rel    int // cluster's first code unit, relative to the run start
	gStart int // first glyph, inclusive
	gEnd   int // last glyph, exclusive
}

// buildClusterGeometry derives the cluster map and caret edges from a
// shaping output. Glyphs arrive in visual order; for backward runs that is
// the reverse of character order.
func buildClusterGeometry(out shaping.Output, advances []float64, backward bool) ([]int, []float64, error) {
	count := out.Runes.Count
	clusterMap := make([]int, count)
	caretEdges := make([]float64, count+1)
	if count == 0 {
		return clusterMap, caretEdges, nil
	}
	if len(out.Glyphs) == 0 {
		return nil, nil, ErrMalformedClusters
	}

	// Group the glyph buffer into clusters.
	var clusters []outputCluster
	for i := 0; i < len(out.Glyphs); {
		rel := out.Glyphs[i].ClusterIndex - out.Runes.Offset
		if rel < 0 || rel >= count {
			return nil, nil, ErrMalformedClusters
		}
		j := i + 1
		for j < len(out.Glyphs) && out.Glyphs[j].ClusterIndex == out.Glyphs[i].ClusterIndex {
			j++
		}
		clusters = append(clusters, outputCluster{rel: rel, gStart: i, gEnd: j})
		i = j
	}

	// Each cluster's code units run from its own start to the next
	// cluster's start in character order; for backward runs the
	// character-order successor is the previous buffer entry.
	perUnit := make([]float64, count)
	for k, c := range clusters {
		relEnd := count
		if backward {
			if k > 0 {
				relEnd = clusters[k-1].rel
			}
		} else {
			if k+1 < len(clusters) {
				relEnd = clusters[k+1].rel
			}
		}
		if relEnd <= c.rel {
			return nil, nil, ErrMalformedClusters
		}

		advance := 0.0
		for g := c.gStart; g < c.gEnd; g++ {
			advance += advances[g]
		}
		unit := advance / float64(relEnd-c.rel)
		for u := c.rel; u < relEnd; u++ {
			clusterMap[u] = c.gStart
			perUnit[u] = unit
		}
	}

	// Verify full coverage: the character-order first cluster must start
	// at the run start.
	firstRel := clusters[0].rel
	if backward {
		firstRel = clusters[len(clusters)-1].rel
	}
	if firstRel != 0 {
		return nil, nil, ErrMalformedClusters
	}

	// Caret edges accumulate in character order; for backward runs they
	// count down from the run's total advance so that the visual start
	// carries the full width and the visual end zero.
	if backward {
		total := 0.0
		for _, w := range perUnit {
			total += w
		}
		caretEdges[0] = total
		for u := 0; u < count; u++ {
			caretEdges[u+1] = caretEdges[u] - perUnit[u]
		}
	} else {
		for u := 0; u < count; u++ {
			caretEdges[u+1] = caretEdges[u] + perUnit[u]
		}
	}
	return clusterMap, caretEdges, nil
}

// runDirection converts go-text's di.Direction to a run Direction.
func runDirection(d di.Direction) Direction {
	switch d {
	case di.DirectionRTL:
		return DirectionRTL
	case di.DirectionTTB:
		return DirectionTTB
	case di.DirectionBTT:
		return DirectionBTT
	default:
		return DirectionLTR
	}
}

// floatToFixed converts a float64 value to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
