package textrun

// Cluster-map utilities.
//
// A cluster map associates each code unit of a run's extended span with the
// first glyph index of its cluster. Entries are monotonic in the run's glyph
// order: non-decreasing for forward runs, non-increasing for backward runs.
// All functions here operate on array indices into the extended span, not on
// character indices; GlyphRun does the translation.

// clusterStart returns the first array index of the contiguous span of
// entries sharing the glyph value at arrayIndex.
func clusterStart(clusterMap []int, arrayIndex int) int {
	common := clusterMap[arrayIndex]
	i := arrayIndex - 1
	for i >= 0 && clusterMap[i] == common {
		i--
	}
	return i + 1
}

// clusterEnd returns one past the last array index of the contiguous span of
// entries sharing the glyph value at arrayIndex.
func clusterEnd(clusterMap []int, arrayIndex int) int {
	common := clusterMap[arrayIndex]
	i := arrayIndex + 1
	for i < len(clusterMap) && clusterMap[i] == common {
		i++
	}
	return i
}

// forwardGlyphLimit returns one past the highest glyph index belonging to
// the cluster ending (exclusively) at array index end, for a forward run.
// The limit is the next cluster's first glyph, or glyphCount at the run end.
func forwardGlyphLimit(clusterMap []int, end, glyphCount int) int {
	if end < len(clusterMap) {
		return clusterMap[end]
	}
	return glyphCount
}

// backwardGlyphLimit returns one past the highest glyph index belonging to
// the cluster starting at array index start, for a backward run. Earlier
// characters sit at higher glyph indices, so the limit is the previous
// cluster's first glyph, or glyphCount at the run start.
func backwardGlyphLimit(clusterMap []int, start, glyphCount int) int {
	if start > 0 {
		return clusterMap[start-1]
	}
	return glyphCount
}

// leadingGlyphIndex returns the glyph index of the cluster containing
// arrayIndex that is nearest the run's visual start (the side adjacent to
// the preceding character). For forward runs that is the cluster's lowest
// glyph; for backward runs the highest. The result is clamped to
// [0, glyphCount).
func leadingGlyphIndex(clusterMap []int, arrayIndex int, backward bool, glyphCount int) int {
	if backward {
		start := clusterStart(clusterMap, arrayIndex)
		return clampGlyph(backwardGlyphLimit(clusterMap, start, glyphCount)-1, glyphCount)
	}
	return clampGlyph(clusterMap[arrayIndex], glyphCount)
}

// trailingGlyphIndex returns the glyph index of the cluster containing
// arrayIndex that is nearest the run's visual end (the side adjacent to the
// following character). The forward/backward roles mirror leadingGlyphIndex.
// The result is clamped to [0, glyphCount).
func trailingGlyphIndex(clusterMap []int, arrayIndex int, backward bool, glyphCount int) int {
	if backward {
		return clampGlyph(clusterMap[arrayIndex], glyphCount)
	}
	end := clusterEnd(clusterMap, arrayIndex)
	return clampGlyph(forwardGlyphLimit(clusterMap, end, glyphCount)-1, glyphCount)
}

// glyphRangeForClusters returns the half-open glyph range owned by the
// cluster-aligned array span [span.Start, span.End). The span must begin
// and end on cluster boundaries. An empty span yields an empty range.
func glyphRangeForClusters(clusterMap []int, span Range, backward bool, glyphCount int) Range {
	if span.Empty() {
		return Range{Start: span.Start, End: span.Start}
	}
	if backward {
		return Range{
			Start: clusterMap[span.End-1],
			End:   backwardGlyphLimit(clusterMap, span.Start, glyphCount),
		}
	}
	return Range{
		Start: clusterMap[span.Start],
		End:   forwardGlyphLimit(clusterMap, span.End, glyphCount),
	}
}

// clampGlyph clamps a glyph index to [0, glyphCount).
func clampGlyph(g, glyphCount int) int {
	if g < 0 {
		return 0
	}
	if g >= glyphCount {
		return glyphCount - 1
	}
	return g
}
