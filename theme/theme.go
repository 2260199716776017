package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps the palette onto display roles for the control surface.
type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = PromptWheel()
	}
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.1
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleWarning = 0.6
)

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

// PromptColor returns the hex color for the i-th prompt on the wheel.
func (t *Theme) PromptColor(i int) string {
	return Hex(t.Palette.Index(i))
}

// Hex formats an RGB as a #rrggbb string.
func Hex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}
