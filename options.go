package textrun

import "fmt"

// DrawOption configures a draw pass.
type DrawOption func(*drawConfig)

// drawConfig holds configuration for Draw.
// It replaces draw-time attribute introspection with a closed set of named
// fields, validated when the config is built.
type drawConfig struct {
	scaleX float64
	scaleY float64
}

// defaultDrawConfig returns the default draw configuration.
func defaultDrawConfig() drawConfig {
	return drawConfig{
		scaleX: 1,
		scaleY: 1,
	}
}

// newDrawConfig applies options and validates the result.
// Non-positive scale factors are contract violations: a zero or negative
// scale silently collapses glyph geometry, so it fails loudly instead.
func newDrawConfig(opts []DrawOption) drawConfig {
	cfg := defaultDrawConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scaleX <= 0 || cfg.scaleY <= 0 {
		panic(fmt.Sprintf("textrun: non-positive draw scale %g/%g", cfg.scaleX, cfg.scaleY))
	}
	return cfg
}

// WithScaleX sets the horizontal scale factor applied to pen offsets and
// clip bounds during drawing. The default is 1.
func WithScaleX(s float64) DrawOption {
	return func(c *drawConfig) {
		c.scaleX = s
	}
}

// WithScaleY sets the vertical scale factor forwarded to the renderer.
// The default is 1.
func WithScaleY(s float64) DrawOption {
	return func(c *drawConfig) {
		c.scaleY = s
	}
}
