package textrun

import "golang.org/x/text/unicode/bidi"

// ResolveLevels resolves an embedding level for every rune of a paragraph
// using the Unicode bidirectional algorithm. The levels feed RunSpec's
// BidiLevel when a shaping pipeline splits the paragraph into runs: even
// parity is left-to-right, odd is right-to-left.
//
// An LTR span embedded in an RTL paragraph receives level 2 so that parity
// stays meaningful at every nesting the algorithm reports.
func ResolveLevels(paragraph []rune, base Direction) []uint8 {
	levels := make([]uint8, len(paragraph))
	if len(paragraph) == 0 {
		return levels
	}

	baseRTL := base == DirectionRTL
	if baseRTL {
		for i := range levels {
			levels[i] = 1
		}
	}

	defaultDir := bidi.Neutral
	if baseRTL {
		defaultDir = bidi.RightToLeft
	}

	p := bidi.Paragraph{}
	_, _ = p.SetString(string(paragraph), bidi.DefaultDirection(defaultDir))

	ordering, err := p.Order()
	if err != nil {
		return levels
	}

	// run.Pos() returns rune indices (start, end inclusive).
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		startRune, endRune := run.Pos()
		var level uint8
		switch {
		case run.Direction() == bidi.RightToLeft:
			level = 1
		case baseRTL:
			level = 2
		}
		for j := startRune; j <= endRune && j < len(levels); j++ {
			levels[j] = level
		}
	}

	return levels
}

// ParagraphDirection returns the base reading direction of a paragraph as
// determined by its first strong directional character, defaulting to LTR
// for neutral text.
func ParagraphDirection(paragraph []rune) Direction {
	p := bidi.Paragraph{}
	_, _ = p.SetString(string(paragraph))
	ordering, err := p.Order()
	if err != nil {
		return DirectionLTR
	}
	if ordering.Direction() == bidi.RightToLeft {
		return DirectionRTL
	}
	return DirectionLTR
}
