package textrun

// Metrics holds the font metrics of a run at its shaping size.
// These are shaping metadata: the run model forwards them to layout and
// rendering collaborators but never computes with them.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font
	// (positive, below baseline).
	Descent float64

	// Leading is the recommended extra gap between lines.
	Leading float64
}

// LineHeight returns the total line height (ascent + descent + leading).
// This is the recommended vertical distance between baselines of consecutive lines.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.Leading
}
