// Package viz derives the layered background visualization from the
// current prompt mix, the grid layout, and the audio level.
package viz

import (
	"fmt"
	"strings"

	"github.com/1-abhinav/PromptDJ-DeepMind/prompt"
)

// DefaultBaseRadius is the falloff radius for a weight-1 prompt at
// zero audio level, in viewport-proportional units.
const DefaultBaseRadius = 25.0

// Layer is one radial color falloff: the prompt's color at full
// opacity in the center fading to transparent at Size. X and Y are
// percentages of the surface; Size is in vmin.
type Layer struct {
	X     float64
	Y     float64
	Size  float64
	Color string
}

// Engine computes the layer stack.
type Engine struct {
	BaseRadius float64
}

// New creates an engine with the given base radius (<= 0 uses the
// default).
func New(baseRadius float64) *Engine {
	if baseRadius <= 0 {
		baseRadius = DefaultBaseRadius
	}
	return &Engine{BaseRadius: baseRadius}
}

// Render produces one layer per active prompt, in collection order.
// Returns nil when nothing is active.
//
// A prompt's grid slot comes from its index in the full collection,
// not the active subset, so toggling neighbors on and off never moves
// it. Single-row and single-column layouts center the coordinate
// instead of dividing by zero.
func (e *Engine) Render(prompts []prompt.Prompt, muted func(string) bool, columns int, audioLevel float64) []Layer {
	if columns < 1 {
		columns = 1
	}
	numRows := (len(prompts) + columns - 1) / columns

	var layers []Layer
	for i, p := range prompts {
		if !p.Active(muted) {
			continue
		}
		row := i / columns
		col := i % columns

		y := 50.0
		if numRows > 1 {
			y = float64(row) / float64(numRows-1) * 100
		}
		x := 50.0
		if columns > 1 {
			x = float64(col) / float64(columns-1) * 100
		}

		layers = append(layers, Layer{
			X:     x,
			Y:     y,
			Size:  e.BaseRadius * p.Weight * (1 + audioLevel),
			Color: p.Color,
		})
	}
	return layers
}

// Background renders the layer stack as a declarative paint string,
// later layers over earlier. Empty string when there are no layers.
func Background(layers []Layer) string {
	if len(layers) == 0 {
		return ""
	}
	parts := make([]string, len(layers))
	for i, l := range layers {
		// Color at full then zero opacity; the 00 suffix is the
		// transparent alpha channel of the same hex color.
		parts[i] = fmt.Sprintf("radial-gradient(circle at %.1f%% %.1f%%, %s 0%%, %s00 %.1fvmin)",
			l.X, l.Y, l.Color, l.Color, l.Size)
	}
	return strings.Join(parts, ", ")
}
