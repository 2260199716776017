package theme

type RGB [3]uint8

// Palette is an ordered set of colors sampled by normalized position.
type Palette struct {
	Name   string
	Colors []RGB
}

// PromptWheel is the default palette for prompt colors: the hue wheel
// the surface cycles through when new prompts are created.
func PromptWheel() *Palette {
	return &Palette{
		Name: "prompt-wheel",
		Colors: []RGB{
			{0x99, 0x00, 0xff}, // violet
			{0x52, 0x00, 0xff}, // indigo
			{0xff, 0x25, 0xf6}, // magenta
			{0x2a, 0xf6, 0xde}, // aqua
			{0xff, 0xdd, 0x28}, // gold
			{0x3d, 0xff, 0xab}, // mint
			{0xd8, 0xff, 0x3e}, // lime
			{0xd9, 0xb2, 0xff}, // lavender
		},
	}
}

// Lookup samples the palette at a normalized position 0-1, blending
// linearly between the two nearest entries.
func (p *Palette) Lookup(norm float64) RGB {
	last := len(p.Colors) - 1
	if norm <= 0 || last == 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[last]
	}

	scaled := norm * float64(last)
	lo := int(scaled)
	return mix(p.Colors[lo], p.Colors[lo+1], scaled-float64(lo))
}

// mix blends a toward b by t per channel
func mix(a, b RGB, t float64) RGB {
	var out RGB
	for i := range out {
		out[i] = uint8(float64(a[i]) + (float64(b[i])-float64(a[i]))*t)
	}
	return out
}

// Index returns color at specific index, wrapping around the wheel.
func (p *Palette) Index(i int) RGB {
	if len(p.Colors) == 0 {
		return RGB{}
	}
	if i < 0 {
		i = 0
	}
	return p.Colors[i%len(p.Colors)]
}
