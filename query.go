package textrun

// Character/glyph queries.
//
// All character-index parameters must lie in [Start, End); range parameters
// in [Start, End]. Violations panic, see checkCharIndex. Every query
// translates to extended-span array space, delegates to the cluster-map
// utilities, and translates back.

// ClusterStart returns the first character index of the cluster containing
// charIndex, clamped to the run's own range. A caret snapped to this index
// never lands inside a ligature or combining sequence.
func (r *GlyphRun) ClusterStart(charIndex int) int {
	r.checkCharIndex("ClusterStart", charIndex)
	start := r.charIndex(clusterStart(r.clusterMap, r.arrayIndex(charIndex)))
	if start < r.start {
		return r.start
	}
	return start
}

// ClusterEnd returns one past the last character index of the cluster
// containing charIndex, clamped to the run's own range.
func (r *GlyphRun) ClusterEnd(charIndex int) int {
	r.checkCharIndex("ClusterEnd", charIndex)
	end := r.charIndex(clusterEnd(r.clusterMap, r.arrayIndex(charIndex)))
	if end > r.end {
		return r.end
	}
	return end
}

// LeadingGlyphIndex returns the glyph index, within the cluster containing
// charIndex, nearest the run's visual start.
func (r *GlyphRun) LeadingGlyphIndex(charIndex int) int {
	r.checkCharIndex("LeadingGlyphIndex", charIndex)
	return leadingGlyphIndex(r.clusterMap, r.arrayIndex(charIndex), r.backward, len(r.glyphIDs))
}

// TrailingGlyphIndex returns the glyph index, within the cluster containing
// charIndex, nearest the run's visual end.
func (r *GlyphRun) TrailingGlyphIndex(charIndex int) int {
	r.checkCharIndex("TrailingGlyphIndex", charIndex)
	return trailingGlyphIndex(r.clusterMap, r.arrayIndex(charIndex), r.backward, len(r.glyphIDs))
}

// DistanceForCharacter returns the caret edge of the boundary at charIndex:
// the cumulative pen position, in character order, from the run's start.
func (r *GlyphRun) DistanceForCharacter(charIndex int) float64 {
	r.checkCharIndex("DistanceForCharacter", charIndex)
	return r.caretEdges[r.arrayIndex(charIndex)]
}

// DistanceForCharacters returns the pen distance covered by the character
// range. The result is sign-adjusted for right-to-left runs so that
// visually ordered consumers always receive a non-negative forward-reading
// span.
func (r *GlyphRun) DistanceForCharacters(rng Range) float64 {
	r.checkCharRange("DistanceForCharacters", rng)
	lower := r.caretEdges[r.arrayIndex(rng.Start)]
	upper := r.caretEdges[r.arrayIndex(rng.End)]
	if r.IsRTL() {
		return lower - upper
	}
	return upper - lower
}

// NearestCharacterIndex returns the character boundary whose caret edge is
// nearest the given pen distance. It scans from the run's visual start
// toward its visual end; at the exact midpoint of two adjacent edges the
// leading (character-order-earlier) boundary wins. Distances before the
// run's first edge return Start, distances beyond its last edge return End;
// these are defined results, not errors.
func (r *GlyphRun) NearestCharacterIndex(distance float64) int {
	first := r.startExtra
	last := first + (r.end - r.start)

	if r.IsRTL() {
		// Caret edges decrease with character index: the visual start of
		// a right-to-left run is its highest edge.
		if distance >= r.caretEdges[first] {
			return r.start
		}
		for a := first; a < last; a++ {
			leading := r.caretEdges[a]
			trailing := r.caretEdges[a+1]
			if distance >= trailing {
				if distance >= (leading+trailing)/2 {
					return r.charIndex(a)
				}
				return r.charIndex(a + 1)
			}
		}
		return r.end
	}

	if distance <= r.caretEdges[first] {
		return r.start
	}
	for a := first; a < last; a++ {
		leading := r.caretEdges[a]
		trailing := r.caretEdges[a+1]
		if distance <= trailing {
			if distance <= (leading+trailing)/2 {
				return r.charIndex(a)
			}
			return r.charIndex(a + 1)
		}
	}
	return r.end
}
