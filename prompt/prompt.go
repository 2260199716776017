package prompt

import "github.com/google/uuid"

// Weight bounds for a prompt's influence on generation.
const (
	MinWeight = 0.0
	MaxWeight = 2.0
)

// Prompt is a weighted text directive steering the generation engine.
// Weight 0 means inactive. CC is the MIDI control-change number bound
// to this prompt's weight knob.
type Prompt struct {
	ID     string  `json:"promptId"`
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
	CC     int     `json:"cc"`
	Color  string  `json:"color"`
}

// New creates a prompt with a fresh identity.
func New(text string, weight float64, cc int, color string) Prompt {
	return Prompt{
		ID:     "prompt-" + uuid.NewString(),
		Text:   text,
		Weight: clampWeight(weight),
		CC:     cc,
		Color:  color,
	}
}

// Active reports whether the prompt contributes to generation and
// visualization: nonzero weight and not muted.
func (p Prompt) Active(muted func(string) bool) bool {
	return p.Weight > 0 && !muted(p.Text)
}

func clampWeight(w float64) float64 {
	if w < MinWeight {
		return MinWeight
	}
	if w > MaxWeight {
		return MaxWeight
	}
	return w
}
